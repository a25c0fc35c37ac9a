// Package testhost provides small, non-production implementations of the
// host interfaces (camera, terrain provider, normal-map queue) so the
// quadtree core can be exercised end-to-end by tests and the demo CLI
// without a real renderer or network terrain service.
package testhost

import (
	"math"

	"github.com/planetcore/quadtree/geodesy"
	"github.com/planetcore/quadtree/pkg/mathutil"
	"github.com/planetcore/quadtree/segment"
)

// OrbitCamera is a host.Camera orbiting the planet at a fixed lon/lat
// looking straight down (nadir), with altitude standing in for the
// original engine's orbit distance.
type OrbitCamera struct {
	Ellipsoid geodesy.Ellipsoid

	Lon, Lat  float64
	AltitudeM float64

	MinAltitudeM float64
	MaxAltitudeM float64

	// FovHalfAngle is the half-angle, in radians, of the cone around nadir
	// this camera treats as "in frustum". A real frustum test belongs to
	// the renderer; this is a cheap stand-in for driving the core.
	FovHalfAngle float64

	ZoomSensitivity float64

	insideSegment *segment.Segment
}

// NewOrbitCamera creates a camera looking straight down at (lon, lat) from
// altitudeM, with defaults modeled on a typical orbit-camera's distance
// bounds and sensitivity.
func NewOrbitCamera(ellipsoid geodesy.Ellipsoid, lon, lat, altitudeM float64) *OrbitCamera {
	return &OrbitCamera{
		Ellipsoid:       ellipsoid,
		Lon:             lon,
		Lat:             lat,
		AltitudeM:       altitudeM,
		MinAltitudeM:    100,
		MaxAltitudeM:    ellipsoid.EquatorialRadius * 10,
		FovHalfAngle:    math.Pi / 3,
		ZoomSensitivity: 0.1,
	}
}

// Eye returns the camera's ellipsoid-centered Cartesian position: the
// ellipsoid surface point under (Lon, Lat), pushed out along its own
// surface normal by AltitudeM.
func (c *OrbitCamera) Eye() mathutil.Vec3 {
	surface := c.Ellipsoid.Cartesian(geodesy.LonLat{Lon: c.Lon, Lat: c.Lat})
	up := surface.Normalize()
	return surface.Add(up.Scale(c.AltitudeM))
}

// LonLat implements host.Camera.
func (c *OrbitCamera) LonLat() (lon, lat, heightM float64) {
	return c.Lon, c.Lat, c.AltitudeM
}

// LonLatMerc implements host.Camera, reprojecting the camera's ground
// position into web-mercator degrees.
func (c *OrbitCamera) LonLatMerc() (lon, lat float64) {
	m := geodesy.LonLat{Lon: c.Lon, Lat: c.Lat}.ToMercator()
	return m.Lon, m.Lat
}

// FrustumContainsSphere approximates the view frustum as a cone around
// nadir with half-angle FovHalfAngle, widened by the sphere's own angular
// radius as seen from the eye.
func (c *OrbitCamera) FrustumContainsSphere(center mathutil.Vec3, radius float64) bool {
	eye := c.Eye()
	toCenter := center.Sub(eye)
	dist := toCenter.Length()
	if dist <= radius {
		return true
	}

	nadir := eye.Scale(-1).Normalize()
	cosAngle := mathutil.Clamp(nadir.Dot(toCenter)/dist, -1, 1)
	angle := math.Acos(cosAngle)
	angularRadius := math.Asin(mathutil.Clamp(radius/dist, 0, 1))

	return angle <= c.FovHalfAngle+angularRadius
}

// SetInsideSegment records the segment the camera's ground position
// currently falls within.
func (c *OrbitCamera) SetInsideSegment(s *segment.Segment) {
	c.insideSegment = s
}

// InsideSegment returns the segment last recorded by SetInsideSegment.
func (c *OrbitCamera) InsideSegment() *segment.Segment {
	return c.insideSegment
}

// HandleZoom adjusts altitude by delta, scaled by the camera's current
// altitude, and clamps to [MinAltitudeM, MaxAltitudeM] — the same
// proportional-zoom feel as the original orbit camera's distance control.
func (c *OrbitCamera) HandleZoom(delta float64) {
	c.AltitudeM -= delta * c.AltitudeM * c.ZoomSensitivity
	if c.AltitudeM < c.MinAltitudeM {
		c.AltitudeM = c.MinAltitudeM
	}
	if c.AltitudeM > c.MaxAltitudeM {
		c.AltitudeM = c.MaxAltitudeM
	}
}

// HandlePan moves the camera's ground position by (deltaLon, deltaLat)
// degrees, clamping latitude to the poles.
func (c *OrbitCamera) HandlePan(deltaLon, deltaLat float64) {
	c.Lon += deltaLon
	c.Lat = mathutil.Clamp(c.Lat+deltaLat, -geodesy.Pole/2, geodesy.Pole/2)
}
