// Package quadtree implements the planet-scale LOD tree: nodes that split
// or coarsen in response to a moving camera, inherit mesh and normal-map
// data from ancestors while their own terrain is in flight, and negotiate
// seam tessellation with their registered neighbors.
package quadtree

import (
	"github.com/planetcore/quadtree/geodesy"
	"github.com/planetcore/quadtree/pkg/mathutil"
	"github.com/planetcore/quadtree/segment"
)

// Node is one quadtree cell: a Segment plus the tree structure, neighbor
// bookkeeping, and per-frame traversal state around it.
type Node struct {
	tree   *Driver
	Seg    *segment.Segment
	parent *Node

	children [4]*Node
	ready    bool // children slots are populated

	neighbors   [4]*Node
	hasNeighbor [4]bool
	sideSize    [4]uint32

	partId Child
	nodeID int64

	state        State
	cameraInside bool

	appliedTerrainNodeID int64
}

// NewRoot constructs a root node covering extent, with no parent. Roots
// live for the planet's lifetime.
func NewRoot(tree *Driver, extent geodesy.Extent) *Node {
	n := newNode(tree, nil, NW, 0, extent)
	n.nodeID = 0
	return n
}

// newNode builds a fresh Node with a freshly constructed Segment and runs
// createBounds immediately, per spec §4.1.
func newNode(tree *Driver, parent *Node, partId Child, tileZoom uint32, extent geodesy.Extent) *Node {
	n := &Node{
		tree:                 tree,
		parent:               parent,
		partId:               partId,
		state:                WALKTHROUGH,
		appliedTerrainNodeID: -1,
	}
	if parent != nil {
		n.nodeID = int64(partId) + parent.nodeID*4 + 1
	}
	tileX, tileY := childTileCoords(parent, partId)
	n.Seg = segment.New(tree.Ellipsoid, tileZoom, tileX, tileY, extent, tree.Projection)
	n.createBounds()
	tree.CreatedNodes++
	return n
}

// childTileCoords derives a child's (tileX, tileY) from its parent's and
// its quadrant, doubling the parent's coordinates and offsetting by column
// (east) and row (north). At the root (parent == nil) this returns (0, 0).
func childTileCoords(parent *Node, partId Child) (tileX, tileY uint32) {
	if parent == nil {
		return 0, 0
	}
	tileX = parent.Seg.TileX * 2
	tileY = parent.Seg.TileY * 2
	switch partId {
	case NW:
		tileY++
	case NE:
		tileX++
		tileY++
	case SE:
		tileX++
	}
	return
}

// TileZoom is the node's depth in the tree (root is 0).
func (n *Node) TileZoom() uint32 { return n.Seg.TileZoom }

// NodeID returns this node's stable identifier (spec §3).
func (n *Node) NodeID() int64 { return n.nodeID }

// Parent returns this node's owning node, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Child returns the named child, or nil if the node has not split.
func (n *Node) Child(c Child) *Node { return n.children[c] }

// Ready reports whether this node's four children are populated.
func (n *Node) Ready() bool { return n.ready }

// State returns this node's traversal state as of the last frame.
func (n *Node) State() State { return n.state }

// isBrother reports whether a and b share a parent, by pointer identity —
// Node has no separate "id" field distinct from nodeID, so this is the
// direct translation of the source's parent-equality test (spec §9 note 2).
func isBrother(a, b *Node) bool {
	return a.parent != nil && a.parent == b.parent
}

// createChildrenNodes splits the node's extent into four equal quadrants
// and instantiates the NW/NE/SW/SE children (spec §4.1). It is idempotent
// only between destroyBranches cycles: calling it on an already-ready node
// is a no-op.
func (n *Node) createChildrenNodes() {
	if n.ready {
		return
	}
	nw, ne, sw, se := n.Seg.ExtentLonLat().Quadrants()
	childZoom := n.Seg.TileZoom + 1
	n.children[NW] = newNode(n.tree, n, NW, childZoom, nw)
	n.children[NE] = newNode(n.tree, n, NE, childZoom, ne)
	n.children[SW] = newNode(n.tree, n, SW, childZoom, sw)
	n.children[SE] = newNode(n.tree, n, SE, childZoom, se)
	n.ready = true
}

// findAncestorWithTerrain walks up from n (exclusive) to the nearest
// ancestor whose segment has TerrainReady, or nil if none exists.
func (n *Node) findAncestorWithTerrain() *Node {
	for a := n.parent; a != nil; a = a.parent {
		if a.Seg.TerrainReady {
			return a
		}
	}
	return nil
}

// ancestorAtZoom walks up from n (inclusive) to the ancestor at exactly
// zoom, or nil if the tree does not reach that high.
func (n *Node) ancestorAtZoom(zoom uint32) *Node {
	for a := n; a != nil; a = a.parent {
		if a.Seg.TileZoom == zoom {
			return a
		}
	}
	return nil
}

// ancestorOffsets returns dZ2 (2 to the power of the zoom difference),
// offsetX and offsetY of n relative to ancestor, per spec §4.2/§4.7's
// shared offset computation.
func (n *Node) ancestorOffsets(ancestor *Node) (dZ2, offsetX, offsetY uint32) {
	scale := n.Seg.TileZoom - ancestor.Seg.TileZoom
	dZ2 = uint32(1) << scale
	offsetX = n.Seg.TileX - ancestor.Seg.TileX*dZ2
	offsetY = n.Seg.TileY - ancestor.Seg.TileY*dZ2
	return
}

// createBounds computes the node's bounding sphere using one of the four
// strategies in spec §4.2.
func (n *Node) createBounds() {
	if n.Seg.TileZoom == 0 {
		n.Seg.Bsphere = segment.BoundingSphere{
			Center: mathutil.Vec3{},
			Radius: n.Seg.Ellipsoid().EquatorialRadius,
		}
		return
	}

	cfg := n.tree.TerrainConfig
	if n.Seg.TileZoom < cfg.MinZoom {
		n.Seg.CreateBoundsByExtent()
		return
	}

	ancestor := n.findAncestorWithTerrain()
	if ancestor == nil {
		n.Seg.CreateBoundsByExtent()
		return
	}

	dZ2, offsetX, offsetY := n.ancestorOffsets(ancestor)
	subGrid := ancestor.Seg.GridSize / dZ2
	if subGrid >= 1 {
		a, b := ancestor.Seg.DiagonalOfSubgrid(subGrid, offsetX, offsetY)
		n.Seg.Bsphere = segment.SphereFromDiagonal(a, b)
		return
	}
	a, b := ancestor.Seg.BilinearDiagonal(dZ2, offsetX, offsetY)
	n.Seg.Bsphere = segment.SphereFromDiagonal(a, b)
}
