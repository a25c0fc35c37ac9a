package quadtree

import "github.com/planetcore/quadtree/geodesy"

// getCommonSide reports which side of a's extent, if any, is shared with
// b's extent (spec §4.5). Returns -1 if the two extents share no edge.
//
// Both polar-wrap longitude rules resolve to E, including the one on a's
// west edge (a.W == -Pole against b.E == +Pole), where a mirror W might be
// expected; that behavior is preserved rather than guessed at (spec §9 open
// question 1).
func getCommonSide(a, b *Node) int {
	aExt := a.Seg.ExtentLonLat()
	bExt := b.Seg.ExtentLonLat()
	aN, aS := aExt.NorthEast.Lat, aExt.SouthWest.Lat
	aE, aW := aExt.NorthEast.Lon, aExt.SouthWest.Lon
	bN, bS := bExt.NorthEast.Lat, bExt.SouthWest.Lat
	bE, bW := bExt.NorthEast.Lon, bExt.SouthWest.Lon

	latNested := (aN <= bN && aS >= bS) || (bN <= aN && bS >= aS)
	if latNested {
		switch {
		case aE == bW:
			return int(E)
		case aW == bE:
			return int(W)
		}
		if a.Seg.TileZoom > 0 {
			if aE == geodesy.Pole && bW == -geodesy.Pole {
				return int(E)
			}
			if aW == -geodesy.Pole && bE == geodesy.Pole {
				return int(E)
			}
		}
		return -1
	}

	lonNested := (aE <= bE && aW >= bW) || (bE <= aE && bW >= aW)
	if lonNested {
		switch {
		case aN == bS:
			return int(N)
		case aS == bN:
			return int(S)
		}
		if aN == geodesy.Pole && bS == geodesy.MaxLat {
			return int(N)
		}
		if aS == -geodesy.Pole && bN == -geodesy.MaxLat {
			return int(S)
		}
		return -1
	}

	return -1
}

// getEqualNeighbor resolves the neighbor of n on side using the precomputed
// adjacency tables (spec §4.6): a non-negative NEIGHBOUR entry is a sibling
// within the same parent; otherwise n walks up recording its path of
// partIds until an ancestor's table entry is non-negative, then walks back
// down the opposite subtree mirroring that path with OPPART. Returns the
// same-depth neighbor if the full path resolves, the deepest available
// ancestor at the boundary if a step of the descent hits an unsplit node,
// or nil if the boundary lies outside the tree entirely.
func (n *Node) getEqualNeighbor(side Side) *Node {
	cur := n
	var path []Child
	for cur != nil {
		entry := NEIGHBOUR[side][cur.partId]
		if entry >= 0 {
			if cur == n {
				if n.parent == nil {
					return nil
				}
				return n.parent.children[entry]
			}
			if cur.parent == nil {
				return nil
			}
			neighbor := cur.parent.children[entry]
			for i := len(path) - 1; i >= 0; i-- {
				if neighbor == nil {
					return nil
				}
				next := neighbor.children[OPPART[side][path[i]]]
				if next == nil {
					return neighbor
				}
				neighbor = next
			}
			return neighbor
		}
		path = append(path, cur.partId)
		cur = cur.parent
	}
	return nil
}
