// Package telemetry provides Prometheus metrics, correlation-id aware logging
// helpers, and OpenTelemetry tracing setup.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters, labeled by command name.
	CommandsHandled *prometheus.CounterVec
	CommandsFailed  *prometheus.CounterVec

	// Histograms (seconds)
	CommandDuration prometheus.Observer

	// Gauges
	IRCConnectedGauge prometheus.Gauge
	StoreUpGauge      *prometheus.GaugeVec // labeled by store name, 1=up 0=down
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		CommandsHandled = promauto.NewCounterVec(prometheus.CounterOpts{Name: "evespai_commands_handled_total", Help: "Number of chat commands dispatched"}, []string{"command"})
		CommandsFailed = promauto.NewCounterVec(prometheus.CounterOpts{Name: "evespai_commands_failed_total", Help: "Number of chat commands that ended in an error"}, []string{"command"})
		CommandDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "evespai_command_duration_seconds", Help: "Command execution duration seconds", Buckets: prometheus.DefBuckets})
		IRCConnectedGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "evespai_irc_connected", Help: "IRC client connected=1 disconnected=0"})
		StoreUpGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{Name: "evespai_store_up", Help: "Database store reachable=1 unreachable=0"}, []string{"store"})
	})
}

// IncCommandHandled counts a dispatched command.
func IncCommandHandled(name string) {
	if CommandsHandled != nil {
		CommandsHandled.WithLabelValues(name).Inc()
	}
}

// IncCommandFailed counts a command that ended in an error.
func IncCommandFailed(name string) {
	if CommandsFailed != nil {
		CommandsFailed.WithLabelValues(name).Inc()
	}
}

// SetIRCConnected records the IRC connection state.
func SetIRCConnected(connected bool) {
	if IRCConnectedGauge == nil {
		return
	}
	if connected {
		IRCConnectedGauge.Set(1)
	} else {
		IRCConnectedGauge.Set(0)
	}
}

// SetStoreUp records whether a store answered its last ping.
func SetStoreUp(store string, up bool) {
	if StoreUpGauge == nil {
		return
	}
	v := 0.0
	if up {
		v = 1
	}
	StoreUpGauge.WithLabelValues(store).Set(v)
}

// TimeFunc measures the duration of fn and records it in obs if non-nil.
func TimeFunc(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}

// Correlation ID helpers ----------------------------------------------------

type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context embedding the correlation id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns the correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	if s, ok := ctx.Value(corrKey).(string); ok {
		return s
	}
	return ""
}
