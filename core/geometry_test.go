package core

import (
	"math"
	"testing"

	"github.com/signalsfoundry/transit-planner/model"
)

func TestSegmentsIntersect_Crossing(t *testing.T) {
	a := model.Point{X: 0, Y: 0}
	b := model.Point{X: 10, Y: 10}
	c := model.Point{X: 0, Y: 10}
	d := model.Point{X: 10, Y: 0}

	if !SegmentsIntersect(a, b, c, d) {
		t.Errorf("expected diagonals of a square to intersect")
	}
}

func TestSegmentsIntersect_Disjoint(t *testing.T) {
	a := model.Point{X: 0, Y: 0}
	b := model.Point{X: 1, Y: 0}
	c := model.Point{X: 0, Y: 5}
	d := model.Point{X: 1, Y: 5}

	if SegmentsIntersect(a, b, c, d) {
		t.Errorf("expected parallel segments not to intersect")
	}
}

func TestSegmentsIntersect_Symmetric(t *testing.T) {
	a := model.Point{X: 0, Y: 0}
	b := model.Point{X: 10, Y: 10}
	c := model.Point{X: 0, Y: 10}
	d := model.Point{X: 10, Y: 0}

	if SegmentsIntersect(a, b, c, d) != SegmentsIntersect(c, d, a, b) {
		t.Errorf("intersection test must be symmetric in its segments")
	}
}

func TestSegmentsIntersect_SharedEndpoint(t *testing.T) {
	// Segments share the endpoint (5,5) and would otherwise cross.
	shared := model.Point{X: 5, Y: 5}
	a := model.Point{X: 0, Y: 0}
	d := model.Point{X: 0, Y: 10}

	if SegmentsIntersect(a, shared, shared, d) {
		t.Errorf("segments sharing an endpoint must not count as intersecting")
	}
}

func TestSegmentsIntersect_TouchWithoutCrossing(t *testing.T) {
	// cd ends exactly on ab without crossing it; grazing contact is treated
	// as non-crossing.
	a := model.Point{X: 0, Y: 0}
	b := model.Point{X: 10, Y: 0}
	c := model.Point{X: 5, Y: 0}
	d := model.Point{X: 5, Y: 5}

	if SegmentsIntersect(a, b, c, d) {
		t.Errorf("grazing contact should not register as a crossing")
	}
}

func TestOrientation_Signs(t *testing.T) {
	a := model.Point{X: 0, Y: 0}
	b := model.Point{X: 1, Y: 0}

	if Orientation(a, b, model.Point{X: 0, Y: 1}) <= 0 {
		t.Errorf("expected positive orientation for a left turn")
	}
	if Orientation(a, b, model.Point{X: 0, Y: -1}) >= 0 {
		t.Errorf("expected negative orientation for a right turn")
	}
	if Orientation(a, b, model.Point{X: 2, Y: 0}) != 0 {
		t.Errorf("expected zero orientation for collinear points")
	}
}

func TestPointToSegmentDistance_Projection(t *testing.T) {
	a := model.Point{X: 0, Y: 0}
	b := model.Point{X: 10, Y: 0}

	if got := PointToSegmentDistance(model.Point{X: 5, Y: 3}, a, b); math.Abs(got-3) > 1e-9 {
		t.Errorf("expected perpendicular distance 3, got %v", got)
	}
}

func TestPointToSegmentDistance_ClampsToEndpoints(t *testing.T) {
	a := model.Point{X: 0, Y: 0}
	b := model.Point{X: 10, Y: 0}

	// p projects past b; nearest point is b itself.
	if got := PointToSegmentDistance(model.Point{X: 13, Y: 4}, a, b); math.Abs(got-5) > 1e-9 {
		t.Errorf("expected clamped distance 5, got %v", got)
	}
}

func TestPointToSegmentDistance_ZeroLengthSegment(t *testing.T) {
	a := model.Point{X: 2, Y: 2}

	if got := PointToSegmentDistance(model.Point{X: 2, Y: 7}, a, a); math.Abs(got-5) > 1e-9 {
		t.Errorf("expected point distance 5 for degenerate segment, got %v", got)
	}
}
