package quadtree

import (
	"testing"

	"github.com/planetcore/quadtree/geodesy"
)

func TestGetCommonSideMatchesS3(t *testing.T) {
	tree := testDriver()
	parent := tree.AddRoot(geodesy.NewExtent(geodesy.LonLat{Lon: 0, Lat: 0}, geodesy.LonLat{Lon: 10, Lat: 10}))
	parent.createChildrenNodes()
	a := parent.children[SW] // [0,0]..[5,5]
	b := parent.children[SE] // [5,0]..[10,5]

	if cs := getCommonSide(a, b); Side(cs) != E {
		t.Errorf("getCommonSide(A,B) = %v, want E", Side(cs))
	}
	if cs := getCommonSide(b, a); Side(cs) != W {
		t.Errorf("getCommonSide(B,A) = %v, want W", Side(cs))
	}
}

func TestAddToRenderMatchesS3(t *testing.T) {
	tree := testDriver()
	parent := tree.AddRoot(geodesy.NewExtent(geodesy.LonLat{Lon: 0, Lat: 0}, geodesy.LonLat{Lon: 10, Lat: 10}))
	parent.createChildrenNodes()
	a := parent.children[SW]
	b := parent.children[SE]
	a.Seg.GridSize = 32
	b.Seg.GridSize = 32
	a.Seg.TerrainReady = true // skip loading path for this test
	b.Seg.TerrainReady = true

	tree.Rendered = nil
	b.addToRender(tree, false)
	a.addToRender(tree, false)

	if a.neighbors[E] != b || b.neighbors[W] != a {
		t.Fatalf("A/B did not link as E/W neighbors: a.neighbors[E]=%v b.neighbors[W]=%v", a.neighbors[E], b.neighbors[W])
	}
	if a.sideSize[E] != 32 || b.sideSize[W] != 32 {
		t.Errorf("sideSize[E]=%d sideSize[W]=%d, want 32/32", a.sideSize[E], b.sideSize[W])
	}
}

func TestAddToRenderSeamRatioMatchesS4(t *testing.T) {
	tree := testDriver()
	a := tree.AddRoot(geodesy.NewExtent(geodesy.LonLat{Lon: 0, Lat: 0}, geodesy.LonLat{Lon: 10, Lat: 10}))
	b := tree.AddRoot(geodesy.NewExtent(geodesy.LonLat{Lon: 10, Lat: 0}, geodesy.LonLat{Lon: 20, Lat: 10}))
	a.Seg.TileZoom, a.Seg.GridSize = 5, 32
	b.Seg.TileZoom, b.Seg.GridSize = 3, 32
	a.Seg.TerrainReady = true
	b.Seg.TerrainReady = true

	tree.Rendered = nil
	b.addToRender(tree, false)
	a.addToRender(tree, false)

	if a.sideSize[E] != 8 {
		t.Errorf("A.sideSize[E] = %d, want 8", a.sideSize[E])
	}
	if b.sideSize[W] != 32 {
		t.Errorf("B.sideSize[W] = %d, want 32", b.sideSize[W])
	}
}

func TestGetEqualNeighborMatchesS6(t *testing.T) {
	tree := testDriver()
	root := tree.AddRoot(wholeGlobeExtent())
	root.createChildrenNodes()
	root.children[NW].createChildrenNodes() // self = NW's NE child
	root.children[NE].createChildrenNodes() // so the mirror target has its own NW child

	// S6: self is an NE child (here, root.children[NW].children[NE]) asking
	// for side E, where NEIGHBOUR[E][NE] == -1. The walk steps up to self's
	// parent (root.children[NW], partId NW), where NEIGHBOUR[E][NW] finds
	// root.children[NE] as the sibling match; descending back down
	// mirrored by OPPART[E][NE] == NW lands on that sibling's NW child.
	self := root.children[NW].children[NE]
	got := self.getEqualNeighbor(E)
	want := root.children[NE].children[NW]
	if got != want {
		t.Errorf("getEqualNeighbor(E) = %v, want %v (S6: E-neighbor's NW child)", got, want)
	}
}

func TestGetEqualNeighborSameParentFastPath(t *testing.T) {
	tree := testDriver()
	parent := tree.AddRoot(wholeGlobeExtent())
	parent.createChildrenNodes()

	sw := parent.children[SW]
	if got := sw.getEqualNeighbor(E); got != parent.children[SE] {
		t.Errorf("SW.getEqualNeighbor(E) = %v, want SE sibling", got)
	}
}

func TestGetEqualNeighborMirrorsAcrossParentBoundary(t *testing.T) {
	tree := testDriver()
	root := tree.AddRoot(wholeGlobeExtent())
	root.createChildrenNodes()
	root.children[NW].createChildrenNodes()
	root.children[NE].createChildrenNodes()

	self := root.children[NE].children[NE]
	got := self.getEqualNeighbor(W)
	want := root.children[NE].children[NW] // same-parent fast path, not cross-boundary
	if got != want {
		t.Errorf("getEqualNeighbor(W) = %v, want %v (same-parent sibling)", got, want)
	}

	// Now ask across the boundary: NE-of-root's NW child's W neighbor is
	// NW-of-root's NE child (mirror of NW across W, per S6's pattern).
	selfAcross := root.children[NE].children[NW]
	gotAcross := selfAcross.getEqualNeighbor(W)
	wantAcross := root.children[NW].children[NE]
	if gotAcross != wantAcross {
		t.Errorf("cross-boundary getEqualNeighbor(W) = %v, want %v", gotAcross, wantAcross)
	}
}
