package quadtree

import (
	"math"

	"github.com/planetcore/quadtree/geodesy"
	"github.com/planetcore/quadtree/host"
)

// underBottom is reserved for a near-ground visibility branch that is
// permanently disabled in this core (spec §9 open question 3).
const underBottom = false

// renderTree is the per-frame visibility classification and split/render
// decision for n and, recursively, its subtree (spec §4.3).
func (n *Node) renderTree(tree *Driver, cam host.Camera) {
	n.state = WALKTHROUGH
	n.neighbors = [4]*Node{}
	n.hasNeighbor = [4]bool{}

	n.updateCameraInside(cam)

	_, _, h := cam.LonLat()
	inFrustum := cam.FrustumContainsSphere(n.Seg.Bsphere.Center, n.Seg.Bsphere.Radius)
	dist := cam.Eye().Distance(n.Seg.Bsphere.Center) - n.Seg.Bsphere.Radius
	altVis := dist < tree.VisibleDistance*math.Sqrt(h) && !underBottom

	visible := inFrustum || n.cameraInside
	cfg := tree.TerrainConfig
	if visible {
		lastZoomIdx := len(cfg.GridSizeByZoom) - 1
		switch {
		case n.Seg.TileZoom < 2 && n.Seg.NormalMapReady:
			n.splitAndRecurse(tree, cam)
		case (cfg.MaxZoom > 0 && n.Seg.TileZoom == cfg.MaxZoom) ||
			(cfg.MaxZoom == 0 && n.Seg.AcceptForRendering(cam.Eye())):
			n.prepareForRendering(tree, h, altVis, false)
		case lastZoomIdx > 0 && int(n.Seg.TileZoom) < lastZoomIdx:
			n.splitAndRecurse(tree, cam)
		default:
			n.prepareForRendering(tree, h, altVis, false)
		}
	} else {
		n.state = NOTRENDERING
	}

	if inFrustum && (altVis || h > tree.CollectRenderNodesAltitudeM) {
		n.Seg.CollectRenderNodes()
	}
}

// updateCameraInside propagates the root-is-always-inside fact down the
// tree and records the segment the camera's ground projection currently
// falls within (spec §4.3 step 2).
func (n *Node) updateCameraInside(cam host.Camera) {
	if n.parent == nil {
		n.cameraInside = true
		cam.SetInsideSegment(n.Seg)
		return
	}
	if !n.parent.cameraInside {
		n.cameraInside = false
		return
	}

	lon, lat, _ := cam.LonLat()
	p := geodesy.LonLat{Lon: lon, Lat: lat}
	if n.Seg.Projection == geodesy.EPSG3857 && math.Abs(lat) <= geodesy.MaxLat {
		mlon, mlat := cam.LonLatMerc()
		p = geodesy.LonLat{Lon: mlon, Lat: mlat}
	}

	if n.Seg.Extent.Inside(p) {
		n.cameraInside = true
		cam.SetInsideSegment(n.Seg)
		return
	}
	n.cameraInside = false
}

// splitAndRecurse ensures n has children (recording a split in telemetry
// the first time) and recurses renderTree into all four.
func (n *Node) splitAndRecurse(tree *Driver, cam host.Camera) {
	firstSplit := !n.ready
	n.createChildrenNodes()
	if firstSplit {
		tree.stats.RecordSplit()
	}
	for _, c := range n.children {
		c.renderTree(tree, cam)
	}
}

// prepareForRendering applies the near-field visibility rule and, if the
// node survives it, registers the node for rendering (spec §4.3's
// "prepareForRendering"). onlyTerrain suppresses visible registration
// while still triggering terrain/normal-map loading.
func (n *Node) prepareForRendering(tree *Driver, h float64, altVis bool, onlyTerrain bool) {
	if h < tree.NearFieldAltitudeM && !altVis {
		n.state = NOTRENDERING
		return
	}
	n.addToRender(tree, onlyTerrain)
}
