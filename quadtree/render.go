package quadtree

import "math"

// addToRender marks n as rendering, triggers its terrain and normal-map
// inheritance/loading, negotiates seam tessellation with any already-
// registered neighbor sharing an edge, and appends n to the planet's
// rendered list (spec §4.4). onlyTerrain suppresses the visible
// registration (scan, seam negotiation, and append) while still running
// the loading steps above it.
func (n *Node) addToRender(tree *Driver, onlyTerrain bool) {
	n.state = RENDERING

	if !n.Seg.TerrainReady {
		if n.whileTerrainLoading(tree) {
			n.Seg.RequestTerrain(tree.TerrainHost)
		}
	}
	if tree.LightEnabled {
		n.whileNormalMapCreating(tree)
	}

	if onlyTerrain {
		return
	}

	for i := len(tree.Rendered) - 1; i >= 0; i-- {
		other := tree.Rendered[i]
		cs := getCommonSide(n, other)
		if cs < 0 {
			continue
		}
		side := Side(cs)
		opside := OPSIDE[side]

		if n.hasNeighbor[side] || other.hasNeighbor[opside] {
			continue
		}

		n.neighbors[side] = other
		other.neighbors[opside] = n
		n.hasNeighbor[side] = true
		other.hasNeighbor[opside] = true

		zoomDiff := int(other.Seg.TileZoom) - int(n.Seg.TileZoom)
		ld := float64(n.Seg.GridSize) / (float64(other.Seg.GridSize) * math.Pow(2, float64(zoomDiff)))
		switch {
		case ld > 1:
			n.sideSize[side] = uint32(math.Ceil(float64(n.Seg.GridSize) / ld))
			other.sideSize[opside] = other.Seg.GridSize
		case ld < 1:
			n.sideSize[side] = n.Seg.GridSize
			other.sideSize[opside] = uint32(math.Ceil(float64(other.Seg.GridSize) * ld))
		default:
			n.sideSize[side] = n.Seg.GridSize
			other.sideSize[opside] = other.Seg.GridSize
		}
		tree.stats.RecordSeamNegotiation()
	}

	tree.Rendered = append(tree.Rendered, n)
	if n.Seg.TileZoom < tree.MinCurrZoom {
		tree.MinCurrZoom = n.Seg.TileZoom
	}
	if n.Seg.TileZoom > tree.MaxCurrZoom {
		tree.MaxCurrZoom = n.Seg.TileZoom
	}
}
