package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the game server's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	Descriptors   prometheus.Gauge
	Playing       prometheus.Gauge
	Characters    prometheus.Gauge
	Objects       prometheus.Gauge
	Connections   *prometheus.CounterVec
	Commands      prometheus.Counter
	Logins        prometheus.Counter
	BadPasswords  prometheus.Counter
	Overflows     prometheus.Counter
	MissedPulses  prometheus.Counter
	ZoneResets    prometheus.Counter
	BridgedIn     *prometheus.CounterVec
	TickDuration  prometheus.Histogram
	UptimeSeconds prometheus.GaugeFunc
}

// NewMetrics creates the collectors on a private registry, together with
// the Go runtime and process collectors.
func NewMetrics(startTime time.Time) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Descriptors: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "circle_descriptors",
			Help: "Number of open connections.",
		}),
		Playing: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "circle_players_playing",
			Help: "Number of connections in the game.",
		}),
		Characters: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "circle_characters",
			Help: "Characters in the world, players and mobiles.",
		}),
		Objects: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "circle_objects",
			Help: "Objects in the world.",
		}),
		Connections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "circle_connections_total",
			Help: "Connections accepted by transport.",
		}, []string{"transport"}),
		Commands: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "circle_commands_total",
			Help: "Command lines interpreted.",
		}),
		Logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "circle_logins_total",
			Help: "Characters that entered the game.",
		}),
		BadPasswords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "circle_bad_passwords_total",
			Help: "Failed password attempts.",
		}),
		Overflows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "circle_output_overflows_total",
			Help: "Output buffers that overflowed.",
		}),
		MissedPulses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "circle_missed_pulses_total",
			Help: "Pulses run late to catch up with the clock.",
		}),
		ZoneResets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "circle_zone_resets_total",
			Help: "Zones repopulated by the periodic reset.",
		}),
		BridgedIn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "circle_bridged_messages_total",
			Help: "Channel messages received from other servers.",
		}, []string{"channel"}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "circle_tick_duration_seconds",
			Help:    "Time spent processing one game pulse.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		UptimeSeconds: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "circle_uptime_seconds",
			Help: "Server uptime in seconds.",
		}, func() float64 { return time.Since(startTime).Seconds() }),
	}

	reg.MustRegister(
		m.Descriptors,
		m.Playing,
		m.Characters,
		m.Objects,
		m.Connections,
		m.Commands,
		m.Logins,
		m.BadPasswords,
		m.Overflows,
		m.MissedPulses,
		m.ZoneResets,
		m.BridgedIn,
		m.TickDuration,
		m.UptimeSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
