package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// NotifyOutcomes returns a timeseries panel showing notification requests
// per second split by outcome.
func NotifyOutcomes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Notify Requests by Outcome").
		Description("Notification requests per second by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`pan:notify_requests:rate5m`, "{{outcome}}", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RejectedRequests returns a timeseries panel showing requests turned away
// before any lookup, by invalid key or missing listing ID.
func RejectedRequests() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Rejected Requests").
		Description("Requests with an invalid API key or no listing ID").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(pan_notify_requests_total{job="price-alert-notifier",outcome=~"unauthorized|bad_request"}[5m])) by (outcome)`,
			"{{outcome}}", "A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SubscriberFanout returns a bar gauge panel showing how many subscribers
// each dispatched notification reached.
func SubscriberFanout() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Subscribers per Notification").
		Description("Distribution of resolved recipients per notification request").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(FullWidth).
		WithTarget(PromQuery(
			`sum(increase(pan_subscribers_per_request_bucket{job="price-alert-notifier"}[1h])) by (le)`,
			"{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}
