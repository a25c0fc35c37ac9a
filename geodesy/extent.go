package geodesy

// Extent is an axis-aligned lon/lat rectangle. Invariant: SW.Lon <= NE.Lon
// and SW.Lat <= NE.Lat.
type Extent struct {
	SouthWest LonLat
	NorthEast LonLat
}

// NewExtent builds an Extent from its two corners.
func NewExtent(sw, ne LonLat) Extent {
	return Extent{SouthWest: sw, NorthEast: ne}
}

// Width returns the extent's longitude span.
func (e Extent) Width() float64 {
	return e.NorthEast.Lon - e.SouthWest.Lon
}

// Height returns the extent's latitude span.
func (e Extent) Height() float64 {
	return e.NorthEast.Lat - e.SouthWest.Lat
}

// Inside reports whether p lies within the extent, inclusive of the
// boundary.
func (e Extent) Inside(p LonLat) bool {
	return p.Lon >= e.SouthWest.Lon && p.Lon <= e.NorthEast.Lon &&
		p.Lat >= e.SouthWest.Lat && p.Lat <= e.NorthEast.Lat
}

// Midpoint returns the extent's center, computed the same way
// createChildrenNodes computes its split point: sw + 0.5*(ne-sw). Child
// extents that share a split origin therefore remain exactly equal at their
// shared edge, which is what keeps getCommonSide's exact-float comparisons
// stable across levels.
func (e Extent) Midpoint() LonLat {
	return LonLat{
		Lon: e.SouthWest.Lon + 0.5*e.Width(),
		Lat: e.SouthWest.Lat + 0.5*e.Height(),
	}
}

// Quadrants splits the extent into its four equal NW/NE/SW/SE children,
// using the same midpoint formula as Midpoint.
func (e Extent) Quadrants() (nw, ne, sw, se Extent) {
	mid := e.Midpoint()

	nw = NewExtent(LonLat{Lon: e.SouthWest.Lon, Lat: mid.Lat}, LonLat{Lon: mid.Lon, Lat: e.NorthEast.Lat})
	ne = NewExtent(mid, e.NorthEast)
	sw = NewExtent(e.SouthWest, mid)
	se = NewExtent(LonLat{Lon: mid.Lon, Lat: e.SouthWest.Lat}, LonLat{Lon: e.NorthEast.Lon, Lat: mid.Lat})
	return
}

// CornersAndMidpoints returns the 4 corners and 4 edge/center midpoints of
// the extent, in a fixed order, for createBoundsByExtent's surface
// sampling.
func (e Extent) CornersAndMidpoints() [9]LonLat {
	mid := e.Midpoint()
	sw, ne := e.SouthWest, e.NorthEast
	nw := LonLat{Lon: sw.Lon, Lat: ne.Lat}
	se := LonLat{Lon: ne.Lon, Lat: sw.Lat}

	return [9]LonLat{
		sw, se, ne, nw,
		{Lon: mid.Lon, Lat: sw.Lat}, // south mid
		{Lon: ne.Lon, Lat: mid.Lat}, // east mid
		{Lon: mid.Lon, Lat: ne.Lat}, // north mid
		{Lon: sw.Lon, Lat: mid.Lat}, // west mid
		mid,
	}
}
