package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "pan-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "pan-recording",
					Rules: []Rule{
						{
							Record: "pan:http_requests:rate5m",
							Expr:   `sum(rate(pan_http_requests_total[5m]))`,
						},
						{
							Record: "pan:http_errors:rate5m",
							Expr:   `sum(rate(pan_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "pan:notify_requests:rate5m",
							Expr:   `sum(rate(pan_notify_requests_total[5m])) by (outcome)`,
						},
						{
							Record: "pan:mail_sends:rate5m",
							Expr:   `sum(rate(pan_mail_sends_total[5m])) by (result)`,
						},
						{
							Record: "pan:mail_failures:rate5m",
							Expr:   `sum(rate(pan_mail_sends_total{result="failed"}[5m]))`,
						},
						{
							Record: "pan:mail_send_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum(rate(pan_mail_send_duration_seconds_bucket[5m])) by (le))`,
						},
					},
				},
			},
		},
	}
}
