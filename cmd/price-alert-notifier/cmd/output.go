package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	apiclient "github.com/donaldgifford/price-alert-notifier/internal/api/client"
	domain "github.com/donaldgifford/price-alert-notifier/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printNotifyResult(w io.Writer, res *apiclient.NotifyResult) error {
	tw := newTabWriter(w)
	tw.writef("MESSAGE\tSENT\tFAILED\n")
	tw.writef("%s\t%d\t%d\n", res.Message, res.Sent, res.Failed)
	return tw.finish()
}

func printPreview(w io.Writer, p *domain.Preview) error {
	tw := newTabWriter(w)
	tw.writef("LISTING\t%s\n", p.ListingID)
	tw.writef("SUBJECT\t%s\n", p.Subject)
	tw.writef("RECIPIENTS\t%d\n", len(p.Recipients))
	for _, r := range p.Recipients {
		tw.writef("\t%s\n", r)
	}
	return tw.finish()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
