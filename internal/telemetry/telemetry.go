// Package telemetry wraps the Prometheus counters and gauges the traversal
// driver updates once per frame, mirroring the plain Go counters it
// already maintains for correctness (spec.md §5's shared resources).
package telemetry

import (
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Frame observes one planet's per-frame quadtree accounting.
type Frame struct {
	nodesCreated       prometheus.Counter
	nodesRendered      prometheus.Gauge
	splits             prometheus.Counter
	seamNegotiations   prometheus.Counter
	minCurrZoom        prometheus.Gauge
	maxCurrZoom        prometheus.Gauge

	lastCreatedNodes uint64
}

// NewFrame registers the quadtree metrics against the default Prometheus
// registry and returns a Frame ready to observe frames. planet labels the
// metrics when more than one planet/driver shares a process; an empty
// planet gets a generated UUID so metrics from an unnamed driver never
// collide with another unnamed driver's series in the same registry.
func NewFrame(planet string) *Frame {
	if planet == "" {
		planet = uuid.NewString()
	}
	labels := prometheus.Labels{"planet": planet}
	return &Frame{
		nodesCreated: promauto.With(prometheus.DefaultRegisterer).NewCounter(prometheus.CounterOpts{
			Name:        "quadtree_nodes_created_total",
			Help:        "Total quadtree nodes constructed since startup.",
			ConstLabels: labels,
		}),
		nodesRendered: promauto.With(prometheus.DefaultRegisterer).NewGauge(prometheus.GaugeOpts{
			Name:        "quadtree_nodes_rendered",
			Help:        "Number of nodes registered for rendering in the most recent frame.",
			ConstLabels: labels,
		}),
		splits: promauto.With(prometheus.DefaultRegisterer).NewCounter(prometheus.CounterOpts{
			Name:        "quadtree_splits_total",
			Help:        "Total node splits (createChildrenNodes calls) since startup.",
			ConstLabels: labels,
		}),
		seamNegotiations: promauto.With(prometheus.DefaultRegisterer).NewCounter(prometheus.CounterOpts{
			Name:        "quadtree_seam_negotiations_total",
			Help:        "Total per-side seam tessellation negotiations since startup.",
			ConstLabels: labels,
		}),
		minCurrZoom: promauto.With(prometheus.DefaultRegisterer).NewGauge(prometheus.GaugeOpts{
			Name:        "quadtree_min_curr_zoom",
			Help:        "Shallowest tileZoom rendered in the most recent frame.",
			ConstLabels: labels,
		}),
		maxCurrZoom: promauto.With(prometheus.DefaultRegisterer).NewGauge(prometheus.GaugeOpts{
			Name:        "quadtree_max_curr_zoom",
			Help:        "Deepest tileZoom rendered in the most recent frame.",
			ConstLabels: labels,
		}),
		lastCreatedNodes: 0,
	}
}

// RecordSplit increments the split counter. Called once per
// createChildrenNodes.
func (f *Frame) RecordSplit() {
	if f == nil {
		return
	}
	f.splits.Inc()
}

// RecordSeamNegotiation increments the seam-negotiation counter. Called
// once per addToRender pair that negotiates sideSize for the first time.
func (f *Frame) RecordSeamNegotiation() {
	if f == nil {
		return
	}
	f.seamNegotiations.Inc()
}

// Observe is called once per frame by the driver after renderTree has run
// on every root: totalCreatedNodes is the driver's running counter,
// rendered is len(Rendered), and minZoom/maxZoom are the frame's bounds.
func (f *Frame) Observe(totalCreatedNodes uint64, rendered int, minZoom, maxZoom uint32) {
	if f == nil {
		return
	}
	if delta := totalCreatedNodes - f.lastCreatedNodes; delta > 0 {
		f.nodesCreated.Add(float64(delta))
	}
	f.lastCreatedNodes = totalCreatedNodes
	f.nodesRendered.Set(float64(rendered))
	f.minCurrZoom.Set(float64(minZoom))
	f.maxCurrZoom.Set(float64(maxZoom))
}
