package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// MailSendRate returns a timeseries panel showing mail sends per second by
// result.
func MailSendRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Mail Sends").
		Description("Per-recipient send attempts per second by result").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`pan:mail_sends:rate5m`, "{{result}}", "A")).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// MailSendLatency returns a timeseries panel showing p50 and p95 latency of
// a single mail send.
func MailSendLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Mail Send Latency").
		Description("Duration of a single send to the mail backend").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(pan_mail_send_duration_seconds_bucket{job="price-alert-notifier"}[5m])) by (le))`,
			"p50",
			"A",
		)).
		WithTarget(PromQuery(`pan:mail_send_duration:p95_5m`, "p95", "B")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// MailFailures returns a stat panel showing failed sends in the past 24 hours.
func MailFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Mail Failures (24h)").
		Description("Sends rejected by the mail backend in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(pan_mail_sends_total{job="price-alert-notifier",result="failed"}[24h]))`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// MailFailureRatio returns a timeseries panel showing the share of sends that
// failed.
func MailFailureRatio() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Mail Failure %").
		Description("Failed sends as a percentage of all send attempts").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`pan:mail_failures:rate5m / sum(pan:mail_sends:rate5m) * 100`,
			"failed %", "A",
		)).
		Unit("percent").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}
