// Package host declares the external collaborators the quadtree core
// depends on but never implements itself: the camera/frustum math library,
// the asynchronous terrain provider, and the normal-map generation worker.
// Production code wires concrete implementations of these in; this repo
// ships test and demo doubles only (see internal/testhost).
package host

import (
	"github.com/planetcore/quadtree/pkg/mathutil"
	"github.com/planetcore/quadtree/segment"
)

// Camera is the planet render node's active camera, exposed to the core
// only through this narrow boundary (spec §6).
type Camera interface {
	// Eye returns the camera position in ellipsoid-centered Cartesian space.
	Eye() mathutil.Vec3

	// LonLat returns the camera's ground projection in equirectangular
	// degrees, plus its altitude in meters.
	LonLat() (lon, lat, heightM float64)

	// LonLatMerc returns the camera's ground projection reprojected into
	// web-mercator degrees.
	LonLatMerc() (lon, lat float64)

	// FrustumContainsSphere reports whether the given bounding sphere is
	// at least partially inside the camera's view frustum.
	FrustumContainsSphere(center mathutil.Vec3, radius float64) bool

	// SetInsideSegment records which segment the camera's ground
	// projection currently falls within, for host use (minimap, debug
	// overlays, etc.).
	SetInsideSegment(s *segment.Segment)
}

// TerrainConfig is the terrain provider's static configuration, read by the
// core to decide split depth and sub-grid sizes.
type TerrainConfig struct {
	MinZoom        uint32
	MaxZoom        uint32
	FileGridSize   uint32
	GridSizeByZoom []uint32
}

// GridSizeAt returns the configured mesh grid size for the given zoom,
// clamped to the table's last entry above it.
func (c TerrainConfig) GridSizeAt(zoom uint32) uint32 {
	if len(c.GridSizeByZoom) == 0 {
		return 1
	}
	if int(zoom) >= len(c.GridSizeByZoom) {
		return c.GridSizeByZoom[len(c.GridSizeByZoom)-1]
	}
	return c.GridSizeByZoom[zoom]
}

// TerrainHost is the asynchronous terrain provider. LoadTerrain is
// fire-and-forget: it must eventually flip the segment's terrain-ready
// flags and publish vertices, or leave them in their current (inherited or
// plain) state forever. The core never awaits it.
type TerrainHost interface {
	Config() TerrainConfig
	LoadTerrain(s *segment.Segment)
}

// NormalMapQueue is the normal-map generation worker's enqueue point.
// Queue must be safe to call repeatedly for the same segment; the core
// guards against redundant enqueues with Segment.InTheQueue, but the queue
// itself must also tolerate it (spec §5, "must accept enqueues
// idempotently").
type NormalMapQueue interface {
	Queue(s *segment.Segment)
}
