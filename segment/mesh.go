package segment

import "github.com/planetcore/quadtree/pkg/mathutil"

// gridIndex returns the row-major index of grid cell (row, col) in a
// (size+1)x(size+1) vertex grid.
func gridIndex(size, row, col uint32) int {
	n := int(size) + 1
	return int(row)*n + int(col)
}

// DiagonalOfSubgrid returns the two diagonal corner vertices
// (i0, j0)..(i0+subGrid, j0+subGrid) of the ancestor's vertex grid, where
// i0 = subGrid*offsetY and j0 = subGrid*offsetX. Used by createBounds
// strategy 3 when subGrid >= 1 (spec §4.2).
func (anc *Segment) DiagonalOfSubgrid(subGrid, offsetX, offsetY uint32) (a, b mathutil.Vec3) {
	i0, j0 := subGrid*offsetY, subGrid*offsetX
	a = anc.TerrainVertices[gridIndex(anc.GridSize, i0, j0)]
	b = anc.TerrainVertices[gridIndex(anc.GridSize, i0+subGrid, j0+subGrid)]
	return a, b
}

// ExtractSubgrid extracts the (subGrid+1)x(subGrid+1) block of a
// (gridSize+1)x(gridSize+1) row-major vertex grid starting at (i0, j0) =
// (subGrid*offsetY, subGrid*offsetX). Shared by terrain-vertex and
// normal-map subregion extraction (spec §4.7), which run against grids of
// different resolutions (gridSize vs. fileGridSize).
func ExtractSubgrid(grid []mathutil.Vec3, gridSize, subGrid, offsetX, offsetY uint32) []mathutil.Vec3 {
	i0, j0 := subGrid*offsetY, subGrid*offsetX
	n := subGrid + 1
	out := make([]mathutil.Vec3, n*n)
	for row := uint32(0); row < n; row++ {
		for col := uint32(0); col < n; col++ {
			out[row*n+col] = grid[gridIndex(gridSize, i0+row, j0+col)]
		}
	}
	return out
}

// ExtractSubgridVertices extracts the (subGrid+1)x(subGrid+1) block of the
// ancestor's vertex grid starting at (i0, j0) = (subGrid*offsetY,
// subGrid*offsetX), row-major. Used by whileTerrainLoading when subGrid >= 1.
func (anc *Segment) ExtractSubgridVertices(subGrid, offsetX, offsetY uint32) []mathutil.Vec3 {
	return ExtractSubgrid(anc.TerrainVertices, anc.GridSize, subGrid, offsetX, offsetY)
}

// ancestorQuad locates the ancestor's single 2x2 vertex patch a self tile
// deeper than one ancestor grid cell per axis falls within, and the
// fractional (fx, fy) position of self's own (0,0) extent corner inside
// that patch's unit square. subGrid is ancestor.GridSize/dZ2, already < 1.
func (anc *Segment) ancestorQuad(subGrid float64, offsetX, offsetY uint32) (v00, v01, v10, v11 mathutil.Vec3, fx, fy float64) {
	px := subGrid * float64(offsetX)
	py := subGrid * float64(offsetY)
	i0 := uint32(py)
	j0 := uint32(px)
	// Clamp so the 2x2 patch never reads past the ancestor's own grid.
	if i0 >= anc.GridSize {
		i0 = anc.GridSize - 1
	}
	if j0 >= anc.GridSize {
		j0 = anc.GridSize - 1
	}
	v00 = anc.TerrainVertices[gridIndex(anc.GridSize, i0, j0)]
	v01 = anc.TerrainVertices[gridIndex(anc.GridSize, i0, j0+1)]
	v10 = anc.TerrainVertices[gridIndex(anc.GridSize, i0+1, j0)]
	v11 = anc.TerrainVertices[gridIndex(anc.GridSize, i0+1, j0+1)]
	fx, fy = px-float64(j0), py-float64(i0)
	return
}

// interpolateInTriangle follows the ancestor mesh's own triangulation of
// the quad v00(top-left)/v01(top-right)/v10(bottom-left)/v11(bottom-right)
// instead of plain bilinear interpolation, so the result never strays off
// the ancestor's rendered surface (spec §4.2's "diagonal of the parent
// quad is essential"). The quad is split along its v01-v10 diagonal: points
// with fx+fy < 1 fall in the upper-left triangle anchored at v00 (edge
// vectors vn, vw); the rest fall in the complementary triangle anchored at
// v11 (edge vectors vs, ve).
func interpolateInTriangle(v00, v01, v10, v11 mathutil.Vec3, fx, fy float64) mathutil.Vec3 {
	const insideSize = 1.0
	if fy+fx < insideSize {
		vn := v01.Sub(v00)
		vw := v10.Sub(v00)
		return v00.Add(vn.Scale(fx)).Add(vw.Scale(fy))
	}
	vs := v01.Sub(v11)
	ve := v10.Sub(v11)
	return v11.Add(vs.Scale(1 - fy)).Add(ve.Scale(1 - fx))
}

// BilinearDiagonal returns the two diagonal points of self's extent,
// interpolated within the single ancestor quad self falls into, per
// createBounds strategy 3's subGrid < 1 branch.
func (anc *Segment) BilinearDiagonal(dZ2 uint32, offsetX, offsetY uint32) (a, b mathutil.Vec3) {
	subGrid := float64(anc.GridSize) / float64(dZ2)
	v00, v01, v10, v11, fx, fy := anc.ancestorQuad(subGrid, offsetX, offsetY)
	a = interpolateInTriangle(v00, v01, v10, v11, fx, fy)
	b = interpolateInTriangle(v00, v01, v10, v11, fx+subGrid, fy+subGrid)
	return a, b
}

// BilinearQuad returns the 2x2 vertex mesh (self's four extent corners)
// synthesized the same way as BilinearDiagonal, for whileTerrainLoading's
// subGrid < 1 branch. Order: (0,0),(0,1),(1,0),(1,1) row-major.
func (anc *Segment) BilinearQuad(dZ2 uint32, offsetX, offsetY uint32) [4]mathutil.Vec3 {
	subGrid := float64(anc.GridSize) / float64(dZ2)
	v00, v01, v10, v11, fx, fy := anc.ancestorQuad(subGrid, offsetX, offsetY)
	return [4]mathutil.Vec3{
		interpolateInTriangle(v00, v01, v10, v11, fx, fy),
		interpolateInTriangle(v00, v01, v10, v11, fx+subGrid, fy),
		interpolateInTriangle(v00, v01, v10, v11, fx, fy+subGrid),
		interpolateInTriangle(v00, v01, v10, v11, fx+subGrid, fy+subGrid),
	}
}
