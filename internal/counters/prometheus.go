// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package counters

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus is a Sink backed by a Prometheus counter vector labelled by
// counter name.
type Prometheus struct {
	total *prometheus.CounterVec
}

// NewPrometheus creates the citematch_ref_markers_total collector and
// registers it with reg. Every counter label is pre-initialized so that
// zero values are exported.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	total := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citematch_ref_markers_total",
			Help: "Reference marker matching outcomes by counter name.",
		},
		[]string{"counter"},
	)
	if err := reg.Register(total); err != nil {
		return nil, fmt.Errorf("registering counters: %w", err)
	}
	for _, c := range All() {
		total.WithLabelValues(c.String())
	}
	return &Prometheus{total: total}, nil
}

// Increment adds one to the series for c.
func (p *Prometheus) Increment(c Counter) {
	p.total.WithLabelValues(c.String()).Inc()
}

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format used by the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
