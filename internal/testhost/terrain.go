package testhost

import (
	"sync"

	"github.com/planetcore/quadtree/host"
	"github.com/planetcore/quadtree/segment"
)

// ScriptedTerrain is a host.TerrainHost that synthesizes every tile
// directly from the ellipsoid (no real elevation data), completing loads
// either synchronously on the calling goroutine or, if Async is set, on a
// worker goroutine the way a real network-backed terrain provider would —
// publishing its result via Segment.ApplyTerrain, never by handing control
// back to the caller.
type ScriptedTerrain struct {
	Cfg   host.TerrainConfig
	Async bool

	mu      sync.Mutex
	loads   int
	missing map[[3]uint32]bool // tiles this host reports as having no real data
}

// NewScriptedTerrain builds a ScriptedTerrain serving cfg.
func NewScriptedTerrain(cfg host.TerrainConfig) *ScriptedTerrain {
	return &ScriptedTerrain{Cfg: cfg, missing: map[[3]uint32]bool{}}
}

// Config implements host.TerrainHost.
func (t *ScriptedTerrain) Config() host.TerrainConfig { return t.Cfg }

// MarkMissing makes tile (zoom, x, y) complete its load with
// TerrainExists == false, simulating an empty or failed source tile.
func (t *ScriptedTerrain) MarkMissing(zoom, x, y uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.missing[[3]uint32{zoom, x, y}] = true
}

// Loads returns the number of LoadTerrain calls served so far.
func (t *ScriptedTerrain) Loads() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loads
}

// LoadTerrain implements host.TerrainHost.
func (t *ScriptedTerrain) LoadTerrain(s *segment.Segment) {
	t.mu.Lock()
	t.loads++
	exists := !t.missing[[3]uint32{s.TileZoom, s.TileX, s.TileY}]
	t.mu.Unlock()

	grid := t.Cfg.GridSizeAt(s.TileZoom)
	complete := func() {
		if !exists {
			s.ApplyTerrain(grid, s.SampleEllipsoidGrid(grid), false)
			return
		}
		s.ApplyTerrain(grid, s.SampleEllipsoidGrid(grid), true)
	}

	if t.Async {
		go complete()
		return
	}
	complete()
}

// ScriptedNormalMaps is a host.NormalMapQueue that synthesizes a flat
// normal map (every normal pointing along the local ellipsoid surface
// normal) for whatever segment is enqueued.
type ScriptedNormalMaps struct {
	Cfg   host.TerrainConfig
	Async bool
}

// Queue implements host.NormalMapQueue.
func (q *ScriptedNormalMaps) Queue(s *segment.Segment) {
	build := func() {
		grid := q.Cfg.FileGridSize
		normals := s.SampleEllipsoidGrid(grid)
		for i, v := range normals {
			normals[i] = v.Normalize()
		}
		s.ApplyNormalMap(struct{}{}, normals, normals)
	}
	if q.Async {
		go build()
		return
	}
	build()
}
