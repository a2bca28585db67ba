package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// price-alert-notifier operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "pan-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "pan-alerts",
					Rules: []Rule{
						{
							Alert: "PanDown",
							Expr:  `absent(up{job="price-alert-notifier"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Price Alert Notifier is down",
								"description": "The price-alert-notifier job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "PanReadinessDown",
							Expr:  `pan_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Price Alert Notifier cannot reach its data store",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "PanHighErrorRate",
							Expr:  `pan:http_errors:rate5m / pan:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on Price Alert Notifier",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "PanMailFailures",
							Expr:  `pan:mail_failures:rate5m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Mail delivery failures detected",
								"description": "The mail backend has been rejecting sends for more than 5 minutes.",
							},
						},
						{
							Alert: "PanMailBackendDown",
							Expr:  `pan:mail_failures:rate5m > 0 and on() sum(rate(pan_mail_sends_total{result="ok"}[10m])) == 0`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Every mail send is failing",
								"description": "No send has succeeded for 10 minutes while attempts keep failing.",
							},
						},
						{
							Alert: "PanUnauthorizedSpike",
							Expr:  `sum(rate(pan_notify_requests_total{outcome="unauthorized"}[5m])) > 1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Many requests with an invalid API key",
								"description": "More than one request per second has been rejected for an invalid API key over the last 5 minutes.",
							},
						},
					},
				},
			},
		},
	}
}
