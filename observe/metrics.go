// Package observe records word-fall session metrics through the OpenTelemetry
// metrics API. InitProvider installs an SDK provider with a Prometheus bridge;
// without it every instrument is a no-op on the global provider.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/word-fall/arcade"
)

const meterName = "github.com/lixenwraith/word-fall"

// Metrics holds the session instruments
type Metrics struct {
	// Spawns counts falling words created
	Spawns metric.Int64Counter

	// Matches counts typed words. Attribute: new (bool)
	Matches metric.Int64Counter

	// Misses counts words that reached the bottom
	Misses metric.Int64Counter

	// NearMisses counts rejected submits close to a live word
	NearMisses metric.Int64Counter

	// Sessions counts finished sessions. Attribute: outcome ("game_over" | "exit")
	Sessions metric.Int64Counter

	// ActiveSessions is the number of open sessions
	ActiveSessions metric.Int64UpDownCounter

	// FinalScore is the score distribution at session end
	FinalScore metric.Int64Histogram

	// SessionDuration is simulated play time per session, seconds
	SessionDuration metric.Float64Histogram
}

var scoreBuckets = []float64{0, 10, 50, 100, 200, 300, 500, 1000}

var durationBuckets = []float64{10, 30, 60, 120, 300, 600, 1200}

// NewMetrics creates all instruments on mp
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Spawns, err = m.Int64Counter("wordfall.spawns",
		metric.WithDescription("Falling words spawned."),
	); err != nil {
		return nil, err
	}
	if met.Matches, err = m.Int64Counter("wordfall.matches",
		metric.WithDescription("Falling words typed correctly."),
	); err != nil {
		return nil, err
	}
	if met.Misses, err = m.Int64Counter("wordfall.misses",
		metric.WithDescription("Falling words that reached the bottom."),
	); err != nil {
		return nil, err
	}
	if met.NearMisses, err = m.Int64Counter("wordfall.near_misses",
		metric.WithDescription("Submitted answers close to a live word."),
	); err != nil {
		return nil, err
	}
	if met.Sessions, err = m.Int64Counter("wordfall.sessions",
		metric.WithDescription("Finished sessions by outcome."),
	); err != nil {
		return nil, err
	}
	if met.ActiveSessions, err = m.Int64UpDownCounter("wordfall.active_sessions",
		metric.WithDescription("Open sessions."),
	); err != nil {
		return nil, err
	}
	if met.FinalScore, err = m.Int64Histogram("wordfall.session.score",
		metric.WithDescription("Score at session end."),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	); err != nil {
		return nil, err
	}
	if met.SessionDuration, err = m.Float64Histogram("wordfall.session.duration",
		metric.WithDescription("Play time per session."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package instance bound to the global provider.
// Call InitProvider first when metrics should be exported.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// SessionStarted marks a session open
func (m *Metrics) SessionStarted(ctx context.Context) {
	m.ActiveSessions.Add(ctx, 1)
}

// RecordEvent counts one drained session event
func (m *Metrics) RecordEvent(ctx context.Context, ev arcade.Event) {
	switch ev.Type {
	case arcade.EventSpawn:
		m.Spawns.Add(ctx, 1)
	case arcade.EventMatch:
		m.Matches.Add(ctx, 1, metric.WithAttributes(attribute.Bool("new", ev.IsNew)))
	case arcade.EventMiss:
		m.Misses.Add(ctx, 1)
	case arcade.EventNearMiss:
		m.NearMisses.Add(ctx, 1)
	}
}

// SessionFinished records the result and closes the session
func (m *Metrics) SessionFinished(ctx context.Context, res arcade.Result) {
	outcome := "exit"
	if res.GameOver {
		outcome = "game_over"
	}
	m.ActiveSessions.Add(ctx, -1)
	m.Sessions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	m.FinalScore.Record(ctx, int64(res.Score))
	m.SessionDuration.Record(ctx, res.Duration.Seconds())
}
