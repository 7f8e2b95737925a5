package core

import (
	"github.com/signalsfoundry/transit-planner/model"
)

const (
	// sharedEndpointTolSq is the squared-distance tolerance under which two
	// segment endpoints are considered the same station. Segments that share
	// an endpoint never count as crossing: tubes legally fan out from a
	// common station.
	sharedEndpointTolSq = 1e-5

	// orientationEps treats near-collinear triples as collinear, so grazing
	// contacts do not register as crossings.
	orientationEps = 1e-7
)

// Orientation returns the signed area of triangle a,b,c (the cross product
// of b-a and c-a). Positive means a counter-clockwise turn, negative
// clockwise, zero collinear.
func Orientation(a, b, c model.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// SegmentsIntersect reports whether open segments ab and cd cross
// transversally. Segments sharing an endpoint (within tolerance) are deemed
// non-intersecting. Collinear overlaps are not detected; station layouts
// avoid exact collinearity.
func SegmentsIntersect(a, b, c, d model.Point) bool {
	if a.SquaredDistanceTo(c) < sharedEndpointTolSq ||
		a.SquaredDistanceTo(d) < sharedEndpointTolSq ||
		b.SquaredDistanceTo(c) < sharedEndpointTolSq ||
		b.SquaredDistanceTo(d) < sharedEndpointTolSq {
		return false
	}

	o1 := Orientation(a, b, c)
	o2 := Orientation(a, b, d)
	o3 := Orientation(c, d, a)
	o4 := Orientation(c, d, b)

	return ((o1 > orientationEps && o2 < -orientationEps) || (o1 < -orientationEps && o2 > orientationEps)) &&
		((o3 > orientationEps && o4 < -orientationEps) || (o3 < -orientationEps && o4 > orientationEps))
}

// PointToSegmentDistance returns the distance from p to the closest point of
// segment ab. The projection parameter is clamped to [0,1], so an endpoint
// is the nearest point when p projects beyond the segment's extent. A
// zero-length segment degenerates to plain point distance.
func PointToSegmentDistance(p, a, b model.Point) float64 {
	v := b.Sub(a)
	lenSq := v.Dot(v)
	if lenSq == 0 {
		return p.DistanceTo(a)
	}

	t := p.Sub(a).Dot(v) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := model.Point{X: a.X + v.X*t, Y: a.Y + v.Y*t}
	return p.DistanceTo(closest)
}
