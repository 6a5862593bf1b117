package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the engine's Prometheus collectors. The scene
// coordinator updates TickDuration and ActiveProjectile on every Tick;
// ActiveClusters, BakeQueueDepth, SupportJobsTotal and BlocksDestroyed are
// registered but nothing in the engine updates them. The caller chooses the
// registerer so tests can use a private registry instead of the global
// default one.
type Metrics struct {
	TickDuration     prometheus.Histogram
	ActiveProjectile prometheus.Gauge
	ActiveClusters   prometheus.Gauge
	BakeQueueDepth   prometheus.Gauge
	SupportJobsTotal prometheus.Counter
	BlocksDestroyed  prometheus.Counter
}

// NewMetrics builds a Metrics bundle and registers every collector on reg.
// Passing nil uses prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "battlearena",
			Subsystem: "scene",
			Name:      "tick_duration_seconds",
			Help:      "Wall-clock duration of one coordinator tick (all fixed steps of a frame plus the runtime tick).",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		ActiveProjectile: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "battlearena",
			Subsystem: "projectile",
			Name:      "active",
			Help:      "Number of currently flying projectiles.",
		}),
		ActiveClusters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "battlearena",
			Subsystem: "cluster",
			Name:      "active",
			Help:      "Number of unsettled falling voxel clusters.",
		}),
		BakeQueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "battlearena",
			Subsystem: "bake",
			Name:      "queue_depth",
			Help:      "Number of entities awaiting an SDF bake or re-bake.",
		}),
		SupportJobsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "battlearena",
			Subsystem: "support",
			Name:      "jobs_total",
			Help:      "Number of support-solver jobs dispatched.",
		}),
		BlocksDestroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "battlearena",
			Subsystem: "building",
			Name:      "blocks_destroyed_total",
			Help:      "Number of building blocks destroyed by damage.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.TickDuration, m.ActiveProjectile, m.ActiveClusters,
		m.BakeQueueDepth, m.SupportJobsTotal, m.BlocksDestroyed,
	} {
		// Re-registration (e.g. repeated tests against the default
		// registry) is tolerated: keep the already-registered collector.
		if err := reg.Register(c); err != nil {
			if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
				_ = are
				continue
			}
		}
	}

	return m
}

// NewUnregisteredMetrics builds a Metrics bundle backed by its own private
// registry, convenient for tests that run in parallel against the same
// package-level default registry.
func NewUnregisteredMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}
