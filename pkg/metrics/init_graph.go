package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.ModelsRegistered = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "thermosim_models_registered",
			Help: "Number of models registered in the system graph",
		},
	)

	r.BlocksRegistered = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "thermosim_blocks_registered",
			Help: "Number of blocks registered in the system graph",
		},
	)

	r.PortsRegistered = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "thermosim_ports_registered",
			Help: "Number of ports registered in the system graph",
		},
	)

	r.ConnectionsTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "thermosim_connections_total",
			Help: "Number of user-declared port connections",
		},
	)
}
