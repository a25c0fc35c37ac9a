// Package geodesy provides the lon/lat extent and projection arithmetic the
// quadtree core needs to place tiles on an ellipsoid: equirectangular and
// web-mercator conversions, the polar cap constants, and ellipsoid radius
// access. It knows nothing about tiles, meshes, or trees.
package geodesy

import (
	"math"

	"github.com/planetcore/quadtree/pkg/mathutil"
)

// Projection identifies which of the two projections a Segment's extent is
// expressed in. The core handles both, with the polar cap above MaxLat
// rendered in EPSG4326.
type Projection int

const (
	EPSG4326 Projection = iota
	EPSG3857
)

func (p Projection) String() string {
	if p == EPSG3857 {
		return "EPSG:3857"
	}
	return "EPSG:4326"
}

const (
	// Pole is the longitude/latitude extreme of the equirectangular grid.
	Pole = 180.0

	// MaxLat is the web-mercator cutoff latitude, above which mercator
	// tiles no longer cover the surface and the polar cap is rendered in
	// EPSG4326 instead.
	MaxLat = 85.0511287798

	// WGS84EquatorialRadius is the ellipsoid's equatorial radius in meters.
	WGS84EquatorialRadius = 6378137.0
)

// LonLat is a geographic coordinate in degrees.
type LonLat struct {
	Lon, Lat float64
}

// ForwardMercator converts a geodetic latitude (degrees) to its web-mercator
// latitude (degrees, before the usual meters-per-pixel scale is applied).
func ForwardMercator(lat float64) float64 {
	return radToDeg(math.Log(math.Tan(math.Pi/4+degToRad(lat)/2)))
}

// InverseMercator converts a web-mercator latitude back to geodetic degrees.
func InverseMercator(y float64) float64 {
	return radToDeg(2*math.Atan(math.Exp(degToRad(y))) - math.Pi/2)
}

// ToMercator returns ll re-expressed in EPSG3857 (its longitude is
// unchanged; only latitude is reprojected).
func (ll LonLat) ToMercator() LonLat {
	return LonLat{Lon: ll.Lon, Lat: ForwardMercator(ll.Lat)}
}

// ToGeographic returns ll, assumed to be in EPSG3857, re-expressed in
// EPSG4326.
func (ll LonLat) ToGeographic() LonLat {
	return LonLat{Lon: ll.Lon, Lat: InverseMercator(ll.Lat)}
}

func degToRad(d float64) float64 { return d * math.Pi / 180.0 }
func radToDeg(r float64) float64 { return r * 180.0 / math.Pi }

// Ellipsoid gives the core access to the planet's scale without pulling in
// the full geodetic ellipsoid model the renderer backend owns.
type Ellipsoid struct {
	EquatorialRadius float64
}

// WGS84 returns the standard WGS84 equatorial radius ellipsoid.
func WGS84() Ellipsoid {
	return Ellipsoid{EquatorialRadius: WGS84EquatorialRadius}
}

// Cartesian returns the ellipsoid-centered Cartesian position of ll on the
// ellipsoid's surface, treating it as a sphere of the equatorial radius.
// This is the approximation createBoundsByExtent relies on to fit a
// bounding sphere from a handful of surface samples.
func (e Ellipsoid) Cartesian(ll LonLat) mathutil.Vec3 {
	latR, lonR := degToRad(ll.Lat), degToRad(ll.Lon)
	cosLat := math.Cos(latR)
	return mathutil.Vec3{
		X: e.EquatorialRadius * cosLat * math.Cos(lonR),
		Y: e.EquatorialRadius * math.Sin(latR),
		Z: e.EquatorialRadius * cosLat * math.Sin(lonR),
	}
}
