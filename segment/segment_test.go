package segment

import (
	"testing"

	"github.com/planetcore/quadtree/geodesy"
	"github.com/planetcore/quadtree/pkg/mathutil"
)

func TestNewSetsExtentLonLatForGeographic(t *testing.T) {
	ext := geodesy.NewExtent(geodesy.LonLat{Lon: 0, Lat: 0}, geodesy.LonLat{Lon: 10, Lat: 10})
	s := New(geodesy.WGS84(), 1, 0, 0, ext, geodesy.EPSG4326)
	if s.ExtentLonLat() != ext {
		t.Errorf("ExtentLonLat() = %+v, want %+v", s.ExtentLonLat(), ext)
	}
}

func TestNewSetsExtentLonLatForMercatorReprojects(t *testing.T) {
	merc := geodesy.NewExtent(geodesy.LonLat{Lon: 0, Lat: 0}, geodesy.LonLat{Lon: 10, Lat: 10})
	s := New(geodesy.WGS84(), 1, 0, 0, merc, geodesy.EPSG3857)
	got := s.ExtentLonLat()
	if got == merc {
		t.Error("mercator extent should reproject to a different lat range in lon/lat")
	}
	if got.SouthWest.Lon != merc.SouthWest.Lon {
		t.Errorf("longitude must be unchanged: got %v, want %v", got.SouthWest.Lon, merc.SouthWest.Lon)
	}
}

func TestCreateBoundsByExtentRootSphere(t *testing.T) {
	// S1: whole-globe extent, ellipsoid a=6378137.
	ext := geodesy.NewExtent(geodesy.LonLat{Lon: -180, Lat: -90}, geodesy.LonLat{Lon: 180, Lat: 90})
	s := New(geodesy.WGS84(), 0, 0, 0, ext, geodesy.EPSG4326)
	s.CreateBoundsByExtent()

	if r := s.Bsphere.Radius; r < geodesy.WGS84EquatorialRadius*0.5 {
		t.Errorf("radius too small for a whole-globe extent: %v", r)
	}
}

func TestCreatePlainSegment(t *testing.T) {
	ext := geodesy.NewExtent(geodesy.LonLat{Lon: 0, Lat: 0}, geodesy.LonLat{Lon: 10, Lat: 10})
	s := New(geodesy.WGS84(), 5, 0, 0, ext, geodesy.EPSG4326)
	s.CreatePlainSegment()

	if !s.Ready {
		t.Error("CreatePlainSegment should set Ready")
	}
	if len(s.TerrainVertices) != 4 {
		t.Errorf("gridSize=1 plain segment should have 4 vertices, got %d", len(s.TerrainVertices))
	}
}

func TestSphereFromDiagonal(t *testing.T) {
	a := mathutil.Vec3{X: 0, Y: 0, Z: 0}
	b := mathutil.Vec3{X: 10, Y: 0, Z: 0}
	sph := SphereFromDiagonal(a, b)
	if sph.Center != (mathutil.Vec3{X: 5, Y: 0, Z: 0}) {
		t.Errorf("center = %+v, want (5,0,0)", sph.Center)
	}
	if sph.Radius != 5 {
		t.Errorf("radius = %v, want 5", sph.Radius)
	}
}

func TestExtractSubgridVerticesMatchesDiagonal(t *testing.T) {
	anc := &Segment{GridSize: 4}
	anc.TerrainVertices = make([]mathutil.Vec3, 5*5)
	for row := uint32(0); row < 5; row++ {
		for col := uint32(0); col < 5; col++ {
			anc.TerrainVertices[gridIndex(4, row, col)] = mathutil.Vec3{X: float64(col), Y: float64(row)}
		}
	}

	// dZ2=2 -> subGrid=2, offset (1,0): i0=2*0=0, j0=2*1=2.
	sub := anc.ExtractSubgridVertices(2, 1, 0)
	if len(sub) != 9 {
		t.Fatalf("want 9 vertices, got %d", len(sub))
	}
	a, b := anc.DiagonalOfSubgrid(2, 1, 0)
	if sub[0] != a {
		t.Errorf("sub[0] = %+v, want %+v", sub[0], a)
	}
	if sub[len(sub)-1] != b {
		t.Errorf("sub[last] = %+v, want %+v", sub[len(sub)-1], b)
	}
}

func TestInterpolateInTriangleContinuousAcrossDiagonal(t *testing.T) {
	v00 := mathutil.Vec3{X: 0, Y: 0, Z: 0}
	v01 := mathutil.Vec3{X: 1, Y: 0, Z: 0}
	v10 := mathutil.Vec3{X: 0, Y: 1, Z: 0}
	v11 := mathutil.Vec3{X: 1, Y: 1, Z: 5} // raised, to show the diagonal is shared not averaged

	// On the diagonal fx+fy==1, both triangles must agree exactly.
	pUpper := interpolateInTriangle(v00, v01, v10, v11, 0.5, 0.5)
	// fx+fy == 1 is the boundary; nudge fy down a hair to land strictly
	// in the upper-left triangle, and up a hair for the complementary one,
	// and confirm they converge to the same point in the limit.
	a := interpolateInTriangle(v00, v01, v10, v11, 0.5, 0.4999999)
	b := interpolateInTriangle(v00, v01, v10, v11, 0.5, 0.5000001)
	if d := a.Distance(b); d > 1e-4 {
		t.Errorf("triangles disagree across the diagonal: %v", d)
	}
	_ = pUpper
}

func TestAcceptForRenderingFarIsAccepted(t *testing.T) {
	s := &Segment{Bsphere: BoundingSphere{Center: mathutil.Vec3{}, Radius: 1000}}
	eye := mathutil.Vec3{X: 1_000_000, Y: 0, Z: 0}
	if !s.AcceptForRendering(eye) {
		t.Error("a small tile far from the camera should be accepted for rendering without further split")
	}
}

func TestAcceptForRenderingCloseIsRejected(t *testing.T) {
	s := &Segment{Bsphere: BoundingSphere{Center: mathutil.Vec3{}, Radius: 100_000}}
	eye := mathutil.Vec3{X: 150_000, Y: 0, Z: 0}
	if s.AcceptForRendering(eye) {
		t.Error("a large tile close to the camera should need another split")
	}
}

type fakeTerrainSource struct{ loaded []*Segment }

func (f *fakeTerrainSource) LoadTerrain(s *Segment) { f.loaded = append(f.loaded, s) }

func TestRequestTerrainCallsSourceOnce(t *testing.T) {
	s := &Segment{}
	src := &fakeTerrainSource{}
	s.RequestTerrain(src)
	s.RequestTerrain(src) // already loading, must not call again
	if len(src.loaded) != 1 {
		t.Errorf("LoadTerrain called %d times, want 1", len(src.loaded))
	}
	if !s.TerrainIsLoading {
		t.Error("TerrainIsLoading should be set")
	}
}

type fakeNormalMapQueue struct{ queued []*Segment }

func (f *fakeNormalMapQueue) Queue(s *Segment) { f.queued = append(f.queued, s) }

func TestEnqueueNormalMapIdempotent(t *testing.T) {
	s := &Segment{}
	q := &fakeNormalMapQueue{}
	s.EnqueueNormalMap(q)
	s.EnqueueNormalMap(q)
	if len(q.queued) != 1 {
		t.Errorf("Queue called %d times, want 1 (spec property 5: idempotent enqueue)", len(q.queued))
	}
}
