package quadtree

import (
	"testing"

	"github.com/planetcore/quadtree/host"
	"github.com/planetcore/quadtree/pkg/mathutil"
	"github.com/planetcore/quadtree/segment"
)

// fillGrid gives n a synthetic ready terrain mesh of the given grid size,
// so descendants can exercise inheritance against known vertex values.
func fillGrid(n *Node, size uint32) {
	side := int(size) + 1
	verts := make([]mathutil.Vec3, side*side)
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			verts[row*side+col] = mathutil.Vec3{X: float64(col), Y: float64(row), Z: 0}
		}
	}
	n.Seg.GridSize = size
	n.Seg.TerrainVertices = verts
	n.Seg.TerrainReady = true
	n.Seg.TerrainExists = true
}

func TestWhileTerrainLoadingSubgridInheritance(t *testing.T) {
	tree := testDriver()
	root := tree.AddRoot(wholeGlobeExtent())
	root.createChildrenNodes()
	ancestor := root.children[SW]
	fillGrid(ancestor, 4)

	ancestor.createChildrenNodes()
	self := ancestor.children[SE]

	cont := self.whileTerrainLoading(tree)
	if !cont {
		t.Fatal("whileTerrainLoading must always return true (spec §9 open question 4)")
	}

	dZ2, offsetX, offsetY := self.ancestorOffsets(ancestor)
	want := ancestor.Seg.ExtractSubgridVertices(ancestor.Seg.GridSize/dZ2, offsetX, offsetY)
	if len(self.Seg.TerrainVertices) != len(want) {
		t.Fatalf("inherited %d vertices, want %d", len(self.Seg.TerrainVertices), len(want))
	}
	for i := range want {
		if self.Seg.TerrainVertices[i] != want[i] {
			t.Errorf("vertex %d = %+v, want %+v", i, self.Seg.TerrainVertices[i], want[i])
		}
	}
	if self.appliedTerrainNodeID != ancestor.nodeID {
		t.Errorf("appliedTerrainNodeID = %d, want %d", self.appliedTerrainNodeID, ancestor.nodeID)
	}
}

func TestWhileTerrainLoadingBilinearInheritanceWhenDeeperThanAncestorCell(t *testing.T) {
	tree := testDriver()
	root := tree.AddRoot(wholeGlobeExtent())
	root.createChildrenNodes()
	ancestor := root.children[SW]
	fillGrid(ancestor, 1)

	ancestor.createChildrenNodes()
	mid := ancestor.children[SE]
	mid.createChildrenNodes()
	self := mid.children[SE]

	self.whileTerrainLoading(tree)

	if self.Seg.GridSize != 1 {
		t.Errorf("GridSize = %d, want 1 (minimum 2x2 patch)", self.Seg.GridSize)
	}
	if len(self.Seg.TerrainVertices) != 4 {
		t.Errorf("got %d vertices, want 4", len(self.Seg.TerrainVertices))
	}
}

func TestWhileTerrainLoadingNoAncestorReturnsTrueWithoutCrashing(t *testing.T) {
	tree := testDriver()
	root := tree.AddRoot(wholeGlobeExtent())
	if !root.whileTerrainLoading(tree) {
		t.Error("whileTerrainLoading must return true even with no terrain-ready ancestor")
	}
	if !root.Seg.Ready {
		t.Error("whileTerrainLoading should have materialized a plain segment")
	}
}

func TestWhileNormalMapCreatingIdempotentEnqueue(t *testing.T) {
	tree := testDriver()
	tree.TerrainConfig = host.TerrainConfig{MinZoom: 0, MaxZoom: 0, FileGridSize: 2, GridSizeByZoom: []uint32{1, 1}}
	tree.NormalMapQueue = &fakeQueue{}
	tree.LightEnabled = true

	root := tree.AddRoot(wholeGlobeExtent())
	root.Seg.TerrainReady = true

	root.whileNormalMapCreating(tree)
	root.whileNormalMapCreating(tree)

	q := tree.NormalMapQueue.(*fakeQueue)
	if q.calls != 1 {
		t.Errorf("Queue called %d times, want 1", q.calls)
	}
}

type fakeQueue struct{ calls int }

func (q *fakeQueue) Queue(s *segment.Segment) { q.calls++ }
