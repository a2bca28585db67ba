package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
	assert.NotNil(t, NotifyRequestsTotal)
	assert.NotNil(t, SubscribersPerRequest)
	assert.NotNil(t, MailSendsTotal)
	assert.NotNil(t, MailSendDuration)
}

func TestMetricsGathered(t *testing.T) {
	t.Parallel()

	NotifyRequestsTotal.WithLabelValues(OutcomeSent).Inc()
	MailSendsTotal.WithLabelValues(ResultOK).Inc()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}

	assert.Contains(t, byName, "pan_notify_requests_total")
	assert.Contains(t, byName, "pan_mail_sends_total")
	assert.Equal(t, dto.MetricType_COUNTER, byName["pan_mail_sends_total"].GetType())
}
