package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/price-alert-notifier/internal/api/client"
)

// sendConfig holds the client settings for the send command. Flags win over
// PAN_* environment variables.
var sendConfig = viper.New()

func sendCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "send <listing-id>",
		Short: "Ask a running server to notify a listing's subscribers",
		Long: "Calls the notify endpoint of a running server for one listing. With --dry-run\n" +
			"the server renders the message and lists its recipients without sending mail.\n" +
			"The server URL and API key can be set with PAN_SERVER and PAN_API_KEY.",
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return sendConfig.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			out := cmd.OutOrStdout()
			if dryRun {
				p, err := c.Preview(ctx, args[0])
				if err != nil {
					return err
				}
				if jsonOutput() {
					return printJSON(out, p)
				}
				return printPreview(out, p)
			}

			res, err := c.Notify(ctx, args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return printJSON(out, res)
			}
			return printNotifyResult(out, res)
		},
	}

	cmd.Flags().String("server", "http://localhost:8080", "API server URL")
	cmd.Flags().String("api-key", "", "shared API key")
	cmd.Flags().String("output", "table", "output format (table, json)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview the message without sending")

	sendConfig.SetEnvPrefix("PAN")
	sendConfig.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	sendConfig.AutomaticEnv()

	return cmd
}

func newClient() (*apiclient.Client, error) {
	key := sendConfig.GetString("api-key")
	if key == "" {
		return nil, errors.New("an API key is required (--api-key or PAN_API_KEY)")
	}
	return apiclient.New(sendConfig.GetString("server"), key), nil
}

func jsonOutput() bool {
	return sendConfig.GetString("output") == "json"
}
