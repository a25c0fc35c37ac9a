// Package segment implements a single quadtree tile: its extent, bounding
// sphere, terrain mesh (own, inherited, or plain ellipsoidal), and the
// flags that track where that mesh came from. A Segment never walks the
// tree itself — that is Node's job — it only knows how to synthesize and
// hold its own patch of the planet.
package segment

import (
	"math"

	"go.uber.org/zap"

	"github.com/planetcore/quadtree/geodesy"
	"github.com/planetcore/quadtree/internal/logging"
	"github.com/planetcore/quadtree/pkg/mathutil"
)

// BoundingSphere is the culling primitive a Segment offers the host's
// frustum test.
type BoundingSphere struct {
	Center mathutil.Vec3
	Radius float64
}

// NormalMapBias selects the subregion of an ancestor's normal map this
// segment should sample from while its own normal map is not ready:
// (u-offset, v-offset, scale).
type NormalMapBias struct {
	U, V, Scale float64
}

// TerrainSource is the asynchronous terrain provider, as seen by a
// Segment. It is a subset of host.TerrainHost so that any host.TerrainHost
// value can be passed here without this package importing host.
type TerrainSource interface {
	LoadTerrain(s *Segment)
}

// NormalMapQueue is the normal-map worker's enqueue point, as seen by a
// Segment. A subset of host.NormalMapQueue for the same reason.
type NormalMapQueue interface {
	Queue(s *Segment)
}

// Segment is one quadtree cell's surface patch.
type Segment struct {
	TileZoom       uint32
	TileX, TileY   uint32
	Extent         geodesy.Extent // in the segment's own Projection
	Projection     geodesy.Projection
	extentLonLat   geodesy.Extent // always equirectangular
	Bsphere        BoundingSphere
	GridSize       uint32
	TerrainVertices []mathutil.Vec3 // row-major, (GridSize+1)^2 entries

	NormalMapNormals    []mathutil.Vec3
	NormalMapNormalsRaw []mathutil.Vec3

	Ready                bool // plain segment has been materialized
	TerrainReady         bool
	TerrainIsLoading     bool
	TerrainExists        bool // real data existed, vs. plain ellipsoid fallback
	NormalMapReady       bool
	ParentNormalMapReady bool
	InTheQueue           bool
	RefreshIndexesBuffer bool

	NormalMapTexture     any
	NormalMapTextureBias NormalMapBias

	// Destroyed guards against an async terrain/normal-map completion
	// writing into a segment whose owning node has already been torn down.
	Destroyed bool

	ellipsoid geodesy.Ellipsoid
}

// New constructs a Segment for the given tile coordinates and extent. The
// extent is expressed in proj; extentLonLat is derived immediately so
// getCommonSide and camera-inside tests always have an equirectangular
// extent to compare against, regardless of proj.
func New(ellipsoid geodesy.Ellipsoid, tileZoom, tileX, tileY uint32, extent geodesy.Extent, proj geodesy.Projection) *Segment {
	s := &Segment{
		TileZoom:   tileZoom,
		TileX:      tileX,
		TileY:      tileY,
		Extent:     extent,
		Projection: proj,
		ellipsoid:  ellipsoid,
	}
	s.SetExtentLonLat()
	return s
}

// SetExtentLonLat recomputes extentLonLat from Extent/Projection. Called at
// construction and whenever Extent changes.
func (s *Segment) SetExtentLonLat() {
	if s.Projection == geodesy.EPSG3857 {
		s.extentLonLat = geodesy.NewExtent(s.Extent.SouthWest.ToGeographic(), s.Extent.NorthEast.ToGeographic())
		return
	}
	s.extentLonLat = s.Extent
}

// ExtentLonLat returns the segment's extent, always in equirectangular
// degrees regardless of Projection.
func (s *Segment) ExtentLonLat() geodesy.Extent {
	return s.extentLonLat
}

// Ellipsoid returns the ellipsoid this segment's geometry is built against.
func (s *Segment) Ellipsoid() geodesy.Ellipsoid {
	return s.ellipsoid
}

// CreateBoundsByExtent fits a bounding sphere from ellipsoidal surface
// samples at the extent's corners and midpoints. Used when no ancestor has
// terrain yet, or when the tile is below terrain.minZoom.
func (s *Segment) CreateBoundsByExtent() {
	samples := s.extentLonLat.CornersAndMidpoints()
	points := make([]mathutil.Vec3, len(samples))
	for i, ll := range samples {
		points[i] = s.ellipsoid.Cartesian(ll)
	}
	s.Bsphere = fitSphere(points)
}

// CreatePlainSegment materializes a flat, ellipsoid-only mesh for this
// tile at gridSize 1 (a single quad), marking Ready. This is the fallback
// mesh used while real terrain is unavailable and no ancestor has any
// either.
func (s *Segment) CreatePlainSegment() {
	s.GridSize = 1
	s.TerrainVertices = s.sampleEllipsoidGrid(1)
	s.Ready = true
}

// SampleEllipsoidGrid exposes sampleEllipsoidGrid for terrain providers
// that synthesize tiles directly from the ellipsoid (no real elevation
// source), such as the demo/test terrain host.
func (s *Segment) SampleEllipsoidGrid(grid uint32) []mathutil.Vec3 {
	return s.sampleEllipsoidGrid(grid)
}

// sampleEllipsoidGrid builds a (grid+1)x(grid+1) vertex grid by bilinear
// interpolation of the extent's corners in lon/lat, then projecting each
// sample onto the ellipsoid. Row-major along (lat-row, lon-col), matching
// TerrainVertices' documented layout.
func (s *Segment) sampleEllipsoidGrid(grid uint32) []mathutil.Vec3 {
	n := int(grid) + 1
	out := make([]mathutil.Vec3, n*n)
	sw, ne := s.extentLonLat.SouthWest, s.extentLonLat.NorthEast
	for row := 0; row < n; row++ {
		v := float64(row) / float64(grid)
		lat := sw.Lat + v*(ne.Lat-sw.Lat)
		for col := 0; col < n; col++ {
			u := float64(col) / float64(grid)
			lon := sw.Lon + u*(ne.Lon-sw.Lon)
			out[row*n+col] = s.ellipsoid.Cartesian(geodesy.LonLat{Lon: lon, Lat: lat})
		}
	}
	return out
}

// RequestTerrain marks the segment as awaiting terrain and hands off to
// the host's terrain provider. Fire-and-forget: the caller never awaits
// the result, it only observes TerrainReady on a later frame.
func (s *Segment) RequestTerrain(ts TerrainSource) {
	if s.TerrainIsLoading || s.TerrainReady {
		return
	}
	s.TerrainIsLoading = true
	ts.LoadTerrain(s)
}

// EnqueueNormalMap enqueues the segment for normal-map generation exactly
// once; repeat calls before the worker clears InTheQueue are no-ops (spec
// §8 property 5, idempotent enqueue).
func (s *Segment) EnqueueNormalMap(q NormalMapQueue) {
	if s.InTheQueue {
		return
	}
	s.InTheQueue = true
	q.Queue(s)
}

// AcceptForRendering is the segment-level visibility policy consulted when
// no explicit terrain.maxZoom is configured: it estimates whether this
// tile's mesh resolution is already fine enough not to need a split, given
// the camera distance to its bounding sphere.
func (s *Segment) AcceptForRendering(eye mathutil.Vec3) bool {
	d := eye.Distance(s.Bsphere.Center) - s.Bsphere.Radius
	if d <= 0 {
		return false
	}
	// A tile edge subtending less than ~2 degrees of the view no longer
	// benefits visually from another split.
	edge := s.Bsphere.Radius * 2
	return edge/d < 0.035
}

// ApplyTerrain publishes a completed terrain load: gridSize and vertices
// become the segment's own mesh, TerrainReady is set, and TerrainExists
// records whether the source had real data for this tile (vs. an empty
// response that still completes the load). A load that completes after
// the segment was destroyed is silently discarded (spec §7).
func (s *Segment) ApplyTerrain(gridSize uint32, vertices []mathutil.Vec3, exists bool) {
	if s.Destroyed {
		logging.Debug("terrain load completed after destroy, discarding",
			zap.Uint32("tileZoom", s.TileZoom), zap.Uint32("tileX", s.TileX), zap.Uint32("tileY", s.TileY))
		return
	}
	s.GridSize = gridSize
	s.TerrainVertices = vertices
	s.TerrainReady = true
	s.TerrainIsLoading = false
	s.TerrainExists = exists
	s.RefreshIndexesBuffer = true
}

// ApplyNormalMap publishes a completed normal-map build, discarding it if
// the segment was destroyed first (spec §7).
func (s *Segment) ApplyNormalMap(texture any, normals, raw []mathutil.Vec3) {
	if s.Destroyed {
		logging.Debug("normal-map build completed after destroy, discarding",
			zap.Uint32("tileZoom", s.TileZoom), zap.Uint32("tileX", s.TileX), zap.Uint32("tileY", s.TileY))
		return
	}
	s.NormalMapTexture = texture
	s.NormalMapNormals = normals
	s.NormalMapNormalsRaw = raw
	s.NormalMapReady = true
	s.InTheQueue = false
}

// CollectRenderNodes is the hook the imagery/material layer attaches to
// when a segment becomes part of the rendered set; that layer lives
// outside this module, so this is intentionally a no-op here.
func (s *Segment) CollectRenderNodes() {}

// DeleteMaterials releases the segment's imagery/material resources while
// keeping its geometry, for clearBranches. The material layer is external
// to this module, so there is nothing to release here.
func (s *Segment) DeleteMaterials() {}

// Destroy marks the segment as no longer owned by a live node and drops
// its mesh and normal-map data. A TerrainSource or NormalMapQueue that
// completes after this must check Destroyed before writing into the
// segment's fields (spec §7).
func (s *Segment) Destroy() {
	s.Destroyed = true
	s.TerrainVertices = nil
	s.NormalMapNormals = nil
	s.NormalMapNormalsRaw = nil
	s.NormalMapTexture = nil
}

// fitSphere returns the smallest sphere (by this package's construction
// rule) enclosing the given points: center is their centroid-of-extremes
// midpoint, radius the max distance from it. For the two-point case used
// throughout this package (diagonal corners of a sub-patch), this is exact.
func fitSphere(points []mathutil.Vec3) BoundingSphere {
	if len(points) == 0 {
		return BoundingSphere{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = mathutil.Vec3{X: math.Min(min.X, p.X), Y: math.Min(min.Y, p.Y), Z: math.Min(min.Z, p.Z)}
		max = mathutil.Vec3{X: math.Max(max.X, p.X), Y: math.Max(max.Y, p.Y), Z: math.Max(max.Z, p.Z)}
	}
	center := min.Midpoint(max)
	radius := 0.0
	for _, p := range points {
		if d := center.Distance(p); d > radius {
			radius = d
		}
	}
	return BoundingSphere{Center: center, Radius: radius}
}

// SphereFromDiagonal returns the smallest enclosing sphere of two diagonal
// points, per createBounds strategy 3: center at their midpoint, radius
// half their separation.
func SphereFromDiagonal(a, b mathutil.Vec3) BoundingSphere {
	return BoundingSphere{Center: a.Midpoint(b), Radius: a.Distance(b) / 2}
}
