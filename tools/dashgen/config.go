package main

import "errors"

// KnownMetrics is the set of metric names exported by price-alert-notifier
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"pan_http_request_duration_seconds": true,
	"pan_http_requests_total":           true,

	// Health metrics.
	"pan_healthz_up": true,
	"pan_readyz_up":  true,

	// Notification metrics.
	"pan_notify_requests_total":   true,
	"pan_subscribers_per_request": true,

	// Mail metrics.
	"pan_mail_sends_total":           true,
	"pan_mail_send_duration_seconds": true,

	// Recording rules.
	"pan:http_requests:rate5m":      true,
	"pan:http_errors:rate5m":        true,
	"pan:notify_requests:rate5m":    true,
	"pan:mail_sends:rate5m":         true,
	"pan:mail_failures:rate5m":      true,
	"pan:mail_send_duration:p95_5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
