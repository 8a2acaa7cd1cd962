package observability

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics(time.Now())
	m.Commands.Inc()
	m.Commands.Inc()
	m.Connections.WithLabelValues("telnet").Inc()
	m.Playing.Set(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Commands))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Connections.WithLabelValues("telnet")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Playing))
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(time.Now())
		NewMetrics(time.Now())
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(time.Now())
	m.Logins.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "circle_logins_total 1")
	assert.Contains(t, string(body), "circle_uptime_seconds")
}
