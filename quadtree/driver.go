package quadtree

import (
	"github.com/planetcore/quadtree/geodesy"
	"github.com/planetcore/quadtree/host"
	"github.com/planetcore/quadtree/internal/telemetry"
)

// Driver is the per-planet traversal context: the root set, the
// per-frame rendered-node accumulator, and the host collaborators every
// node consults while traversing (spec.md §9's "keep accumulators as
// explicit per-frame context objects" note, formalized as this type).
type Driver struct {
	Roots       []*Node
	Rendered    []*Node
	MinCurrZoom uint32
	MaxCurrZoom uint32

	CreatedNodes uint64

	Ellipsoid      geodesy.Ellipsoid
	Projection     geodesy.Projection
	TerrainConfig  host.TerrainConfig
	TerrainHost    host.TerrainHost
	NormalMapQueue host.NormalMapQueue
	LightEnabled   bool

	// Visibility tuning, overridable per deployment (internal/config);
	// NewDriver fills these with the package defaults below.
	VisibleDistance             float64
	NearFieldAltitudeM          float64
	CollectRenderNodesAltitudeM float64

	stats *telemetry.Frame
}

// NewDriver constructs a Driver with no roots yet. AddRoot must be called
// at least once before the first Frame.
func NewDriver(ellipsoid geodesy.Ellipsoid, proj geodesy.Projection, terrain host.TerrainHost, normalMaps host.NormalMapQueue, stats *telemetry.Frame) *Driver {
	return &Driver{
		Ellipsoid:                   ellipsoid,
		Projection:                  proj,
		TerrainConfig:               terrain.Config(),
		TerrainHost:                 terrain,
		NormalMapQueue:              normalMaps,
		VisibleDistance:             VisibleDistance,
		NearFieldAltitudeM:          NearFieldAltitudeM,
		CollectRenderNodesAltitudeM: CollectRenderNodesAltitudeM,
		stats:                       stats,
	}
}

// AddRoot constructs and registers a new root node covering extent.
func (d *Driver) AddRoot(extent geodesy.Extent) *Node {
	r := NewRoot(d, extent)
	d.Roots = append(d.Roots, r)
	return r
}

// Frame runs one traversal pass over every root against cam, resetting the
// per-frame accumulators first (spec.md §2 item 5, §4.12).
func (d *Driver) Frame(cam host.Camera) {
	d.Rendered = d.Rendered[:0]
	d.MinCurrZoom, d.MaxCurrZoom = ^uint32(0), 0
	for _, r := range d.Roots {
		r.renderTree(d, cam)
	}
	if len(d.Rendered) == 0 {
		d.MinCurrZoom = 0
	}
	if d.stats != nil {
		d.stats.Observe(d.CreatedNodes, len(d.Rendered), d.MinCurrZoom, d.MaxCurrZoom)
	}
}

// ClearAll runs clearTree on every root, collapsing any subtree that is no
// longer rendered or relevant.
func (d *Driver) ClearAll() {
	for _, r := range d.Roots {
		r.clearTree()
	}
}

// TraverseAll visits every live node in every root via traverseTree.
func (d *Driver) TraverseAll(visit func(*Node)) {
	for _, r := range d.Roots {
		r.traverseTree(visit)
	}
}
