package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/donaldgifford/price-alert-notifier/internal/api/handlers"
	"github.com/donaldgifford/price-alert-notifier/internal/api/middleware"
	"github.com/donaldgifford/price-alert-notifier/internal/config"
	"github.com/donaldgifford/price-alert-notifier/internal/engine"
	"github.com/donaldgifford/price-alert-notifier/internal/notify"
	"github.com/donaldgifford/price-alert-notifier/internal/store"
	"github.com/donaldgifford/price-alert-notifier/internal/telemetry"
	"github.com/donaldgifford/price-alert-notifier/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the notification API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, logCloser := newLogger(cfg.Logging)
	defer logCloser.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Options{
		Enabled:        cfg.Tracing.Enabled,
		Endpoint:       cfg.Tracing.Endpoint,
		Insecure:       cfg.Tracing.Insecure,
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: Version,
	})
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}

	s, closeStore, err := newStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeStore()

	mailer := newMailer(cfg.Mail, log)
	dispatcher := engine.NewDispatcher(s, mailer, cfg.Auth.APIKey, engine.WithLogger(log))

	e := newServer(log, s, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      otelhttp.NewHandler(e, "price-alert-notifier"),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Info("starting server",
		"addr", srv.Addr,
		"store", cfg.Database.Driver,
		"mail_backend", cfg.Mail.Backend,
		"tracing", cfg.Tracing.Enabled,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Warn("flushing telemetry", "error", err)
	}

	log.Info("server stopped")
	return nil
}

// loadConfig reads the dotenv file, then the optional config file and the
// environment.
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func newLogger(cfg config.LoggingConfig) (*slog.Logger, io.Closer) {
	if cfg.File == "" {
		return logger.New(cfg.Level, cfg.Format), closerFunc(func() error { return nil })
	}
	return logger.NewWithFile(cfg.Level, cfg.Format, logger.FileOptions{
		Path:       cfg.File,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	})
}

// newStore opens the data store selected by cfg.Driver. The returned func
// releases its resources.
func newStore(ctx context.Context, cfg config.DatabaseConfig) (store.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pg, err := store.NewPostgresStore(ctx, cfg.URL,
			store.WithPoolSize(cfg.PoolSize),
			store.WithPassword(cfg.ServiceKey),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		return pg, pg.Close, nil
	default:
		rest := store.NewRESTStore(cfg.URL, cfg.ServiceKey, store.WithHTTPClient(&http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}))
		return rest, func() {}, nil
	}
}

// newMailer builds the mail transport selected by cfg.Backend.
func newMailer(cfg config.MailConfig, log *slog.Logger) notify.Mailer {
	switch cfg.Backend {
	case config.MailBackendSMTP:
		return notify.NewSMTPMailer(notify.SMTPOptions{
			Host:       cfg.SMTP.Host,
			Port:       cfg.SMTP.Port,
			Username:   cfg.SMTP.Username,
			Password:   cfg.SMTP.Password,
			From:       cfg.SMTP.From,
			Encryption: cfg.SMTP.Encryption,
		})
	case config.MailBackendNoop:
		return notify.NewNoOpMailer(log)
	default:
		return notify.NewMailAPI(cfg.Endpoint, cfg.Token, notify.WithHTTPClient(&http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}))
	}
}

// newServer builds the Echo server with middleware and every route.
func newServer(log *slog.Logger, s store.Store, d *engine.Dispatcher) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(s, log)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handlers.RegisterNotifyRoutes(e, handlers.NewNotifyHandler(d, log))

	api := humaecho.New(e, huma.DefaultConfig("price-alert-notifier API", Version))
	handlers.RegisterPreviewRoutes(api, handlers.NewPreviewHandler(d))

	return e
}
