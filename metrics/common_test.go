package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

var testCounter = NewCounter("test_total", "metrics", "counter used by tests", []string{"label"})

func TestHandlerExposesRegisteredMetrics(t *testing.T) {
	testCounter.WithLabelValues("value").Inc()

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `govsnap_metrics_test_total{label="value"} 1`)
}

func TestHistogramBuckets(t *testing.T) {
	hist := NewHistogramWithBuckets("test_seconds", "metrics", "histogram used by tests", []string{}, []float64{1, 2})
	hist.WithLabelValues().Observe(1.5)
	hist.WithLabelValues().Observe(3)

	var m dto.Metric
	require.NoError(t, hist.WithLabelValues().(prometheus.Metric).Write(&m))
	require.EqualValues(t, 2, m.GetHistogram().GetSampleCount())
	require.InDelta(t, 4.5, m.GetHistogram().GetSampleSum(), 1e-9)
	buckets := m.GetHistogram().GetBucket()
	require.Len(t, buckets, 2)
	require.EqualValues(t, 0, buckets[0].GetCumulativeCount())
	require.EqualValues(t, 1, buckets[1].GetCumulativeCount())
}

func TestGauge(t *testing.T) {
	gauge := NewGauge("test_inflight", "metrics", "gauge used by tests", []string{"backend"})
	gauge.WithLabelValues("remote").Inc()
	gauge.WithLabelValues("remote").Inc()
	gauge.WithLabelValues("remote").Dec()

	var m dto.Metric
	require.NoError(t, gauge.WithLabelValues("remote").Write(&m))
	require.EqualValues(t, 1, m.GetGauge().GetValue())
}
