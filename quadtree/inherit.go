package quadtree

import (
	"go.uber.org/zap"

	"github.com/planetcore/quadtree/internal/logging"
	"github.com/planetcore/quadtree/segment"
)

// whileTerrainLoading synthesizes a usable mesh from the nearest ancestor
// with terrain while n's own terrain request is outstanding (spec §4.7).
// It always returns true: the boolean is consulted by the caller but no
// policy currently suppresses the load (spec §9 open question 4).
func (n *Node) whileTerrainLoading(tree *Driver) bool {
	if !n.Seg.Ready {
		n.Seg.CreatePlainSegment()
	}

	ancestor := n.findAncestorWithTerrain()
	if ancestor == nil {
		logging.Debug("no ancestor with terrain yet, staying on plain segment",
			zap.Uint32("tileZoom", n.Seg.TileZoom), zap.Uint32("tileX", n.Seg.TileX), zap.Uint32("tileY", n.Seg.TileY))
		return true
	}

	dZ2, offsetX, offsetY := n.ancestorOffsets(ancestor)

	if ancestor.Seg.TerrainExists && n.appliedTerrainNodeID != ancestor.nodeID {
		n.Seg.RefreshIndexesBuffer = true

		subGrid := ancestor.Seg.GridSize / dZ2
		if subGrid >= 1 {
			n.Seg.GridSize = subGrid
			for s := range n.sideSize {
				n.sideSize[s] = subGrid
			}
			n.Seg.TerrainVertices = ancestor.Seg.ExtractSubgridVertices(subGrid, offsetX, offsetY)

			cfg := tree.TerrainConfig
			if fileSubGrid := cfg.FileGridSize / dZ2; fileSubGrid >= 1 && len(ancestor.Seg.NormalMapNormals) > 0 {
				n.Seg.NormalMapNormalsRaw = segment.ExtractSubgrid(ancestor.Seg.NormalMapNormals, cfg.FileGridSize, fileSubGrid, offsetX, offsetY)
			}
		} else {
			n.Seg.GridSize = 1
			quad := ancestor.Seg.BilinearQuad(dZ2, offsetX, offsetY)
			n.Seg.TerrainVertices = quad[:]
		}

		n.appliedTerrainNodeID = ancestor.nodeID
	}

	cfg := tree.TerrainConfig
	if cfg.MaxZoom > 0 && n.Seg.TileZoom > cfg.MaxZoom {
		if ancestor.Seg.TileZoom >= cfg.MaxZoom {
			n.Seg.TerrainReady = true
			n.Seg.TerrainExists = ancestor.Seg.TerrainExists
		} else if target := n.ancestorAtZoom(cfg.MaxZoom); target != nil {
			if !target.Seg.Ready {
				target.Seg.CreatePlainSegment()
			}
			target.Seg.RequestTerrain(tree.TerrainHost)
		}
	}

	return true
}

// whileNormalMapCreating enqueues n for normal-map generation once its own
// terrain is ready, and in the meantime inherits the nearest ancestor's
// normal map with a sampling bias so the shader can crop into it (spec
// §4.8).
func (n *Node) whileNormalMapCreating(tree *Driver) {
	cfg := tree.TerrainConfig
	withinMaxZoom := cfg.MaxZoom == 0 || n.Seg.TileZoom <= cfg.MaxZoom
	if withinMaxZoom && n.Seg.TerrainReady && !n.Seg.TerrainIsLoading && !n.Seg.InTheQueue {
		n.Seg.EnqueueNormalMap(tree.NormalMapQueue)
	}

	ancestor := n.findAncestorWithNormalMap()
	if ancestor == nil {
		return
	}

	dZ2, offsetX, offsetY := n.ancestorOffsets(ancestor)
	n.Seg.NormalMapTexture = ancestor.Seg.NormalMapTexture
	n.Seg.NormalMapTextureBias = segment.NormalMapBias{
		U:     float64(offsetX),
		V:     float64(offsetY),
		Scale: 1 / float64(dZ2),
	}

	if cfg.MaxZoom > 0 && n.Seg.TileZoom > cfg.MaxZoom {
		if ancestor.Seg.TileZoom == cfg.MaxZoom {
			n.Seg.ParentNormalMapReady = true
			return
		}
		target := n.ancestorAtZoom(cfg.MaxZoom)
		if target == nil {
			return
		}
		if !target.Seg.Ready {
			target.Seg.CreatePlainSegment()
		}
		if !target.Seg.TerrainReady {
			target.Seg.RequestTerrain(tree.TerrainHost)
		}
		target.Seg.EnqueueNormalMap(tree.NormalMapQueue)
	}
}

// findAncestorWithNormalMap walks up from n (exclusive) to the nearest
// ancestor whose segment has NormalMapReady, or nil if none exists.
func (n *Node) findAncestorWithNormalMap() *Node {
	for a := n.parent; a != nil; a = a.parent {
		if a.Seg.NormalMapReady {
			return a
		}
	}
	return nil
}
