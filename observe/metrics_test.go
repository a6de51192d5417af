package observe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/lixenwraith/word-fall/arcade"
)

// newTestMetrics returns Metrics backed by a ManualReader for inspection
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumTotal adds up all data points of an int64 sum
func sumTotal(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()
	require.NotNil(t, m)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is %T", m.Name, m.Data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestRecordEvent(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordEvent(ctx, arcade.Event{Type: arcade.EventSpawn})
	m.RecordEvent(ctx, arcade.Event{Type: arcade.EventSpawn})
	m.RecordEvent(ctx, arcade.Event{Type: arcade.EventMatch, IsNew: true})
	m.RecordEvent(ctx, arcade.Event{Type: arcade.EventMatch})
	m.RecordEvent(ctx, arcade.Event{Type: arcade.EventMiss})
	m.RecordEvent(ctx, arcade.Event{Type: arcade.EventNearMiss})
	m.RecordEvent(ctx, arcade.Event{Type: arcade.EventGameOver})

	rm := collect(t, reader)
	assert.Equal(t, int64(2), sumTotal(t, findMetric(rm, "wordfall.spawns")))
	assert.Equal(t, int64(2), sumTotal(t, findMetric(rm, "wordfall.matches")))
	assert.Equal(t, int64(1), sumTotal(t, findMetric(rm, "wordfall.misses")))
	assert.Equal(t, int64(1), sumTotal(t, findMetric(rm, "wordfall.near_misses")))

	matches := findMetric(rm, "wordfall.matches").Data.(metricdata.Sum[int64])
	var newWords int64
	for _, dp := range matches.DataPoints {
		if v, ok := dp.Attributes.Value(attribute.Key("new")); ok && v.AsBool() {
			newWords += dp.Value
		}
	}
	assert.Equal(t, int64(1), newWords)
}

func TestSessionLifecycle(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.SessionStarted(ctx)
	m.SessionStarted(ctx)
	m.SessionFinished(ctx, arcade.Result{Score: 120, Duration: 90 * time.Second, GameOver: true})

	rm := collect(t, reader)
	assert.Equal(t, int64(1), sumTotal(t, findMetric(rm, "wordfall.active_sessions")))
	assert.Equal(t, int64(1), sumTotal(t, findMetric(rm, "wordfall.sessions")))

	score := findMetric(rm, "wordfall.session.score")
	require.NotNil(t, score)
	hist, ok := score.Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
	assert.Equal(t, int64(120), hist.DataPoints[0].Sum)

	sessions := findMetric(rm, "wordfall.sessions").Data.(metricdata.Sum[int64])
	v, ok := sessions.DataPoints[0].Attributes.Value(attribute.Key("outcome"))
	require.True(t, ok)
	assert.Equal(t, "game_over", v.AsString())
}

func TestDefaultMetricsSingleton(t *testing.T) {
	assert.Same(t, DefaultMetrics(), DefaultMetrics())
}

func TestHandlerServesMetrics(t *testing.T) {
	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
