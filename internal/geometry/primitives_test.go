package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

func TestAngleRangeAndSymmetry(t *testing.T) {
	cases := []struct {
		name    string
		a, b, c r2.Point
	}{
		{"right angle", r2.Point{X: 1, Y: 0}, r2.Point{X: 0, Y: 0}, r2.Point{X: 0, Y: 1}},
		{"acute", r2.Point{X: 10, Y: 0}, r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 3}},
		{"obtuse", r2.Point{X: -5, Y: 1}, r2.Point{X: 0, Y: 0}, r2.Point{X: 7, Y: 2}},
		{"clinical", r2.Point{X: 100, Y: 100}, r2.Point{X: 150, Y: 90}, r2.Point{X: 170, Y: 160}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Angle(tc.a, tc.b, tc.c)
			if err != nil {
				t.Fatalf("Angle returned error: %v", err)
			}
			if got < 0 || got > 180 {
				t.Fatalf("Angle = %v, want value in [0, 180]", got)
			}

			rev, err := Angle(tc.c, tc.b, tc.a)
			if err != nil {
				t.Fatalf("reversed Angle returned error: %v", err)
			}
			if got != rev {
				t.Fatalf("Angle(A,B,C) = %v, Angle(C,B,A) = %v, want equal", got, rev)
			}
		})
	}
}

func TestAngleCollinearBetween(t *testing.T) {
	a := r2.Point{X: 0, Y: 0}
	b := r2.Point{X: 5, Y: 5}
	c := r2.Point{X: 10, Y: 10}

	got, err := Angle(a, b, c)
	if err != nil {
		t.Fatalf("Angle returned error: %v", err)
	}
	if math.Abs(got-180) > 1e-9 {
		t.Fatalf("Angle for B between A and C = %v, want 180", got)
	}
}

func TestAngleDegenerateVertex(t *testing.T) {
	p := r2.Point{X: 3, Y: 4}

	if _, err := Angle(p, p, r2.Point{X: 9, Y: 9}); err == nil {
		t.Fatal("expected error for A == B")
	} else {
		var dg *DegenerateGeometryError
		if !errors.As(err, &dg) {
			t.Fatalf("expected DegenerateGeometryError, got %T", err)
		}
	}

	if _, err := Angle(r2.Point{X: 9, Y: 9}, p, p); err == nil {
		t.Fatal("expected error for C == B")
	}
}

func TestAngleVectorsSigned(t *testing.T) {
	origin := r2.Point{}
	right := r2.Point{X: 1, Y: 0}
	up := r2.Point{X: 0, Y: 1}
	down := r2.Point{X: 0, Y: -1}

	ccw, err := AngleVectors(origin, right, origin, up)
	if err != nil {
		t.Fatalf("AngleVectors returned error: %v", err)
	}
	if math.Abs(ccw-90) > 1e-9 {
		t.Fatalf("AngleVectors right→up = %v, want 90", ccw)
	}

	cw, err := AngleVectors(origin, right, origin, down)
	if err != nil {
		t.Fatalf("AngleVectors returned error: %v", err)
	}
	if math.Abs(cw+90) > 1e-9 {
		t.Fatalf("AngleVectors right→down = %v, want -90", cw)
	}
}

func TestAngleVectorsDegenerate(t *testing.T) {
	p := r2.Point{X: 2, Y: 2}
	if _, err := AngleVectors(p, p, r2.Point{}, r2.Point{X: 1, Y: 1}); err == nil {
		t.Fatal("expected error for zero-length vector")
	}
}

func TestDistance(t *testing.T) {
	got := Distance(r2.Point{X: 0, Y: 0}, r2.Point{X: 3, Y: 4})
	if got != 5 {
		t.Fatalf("Distance = %v, want 5", got)
	}
}

func TestPointToLineDistanceOnLine(t *testing.T) {
	cases := []struct {
		name                 string
		lineA, lineB, point  r2.Point
	}{
		{"horizontal", r2.Point{X: 0, Y: 2}, r2.Point{X: 10, Y: 2}, r2.Point{X: 4, Y: 2}},
		{"sloped", r2.Point{X: 0, Y: 0}, r2.Point{X: 4, Y: 8}, r2.Point{X: 2, Y: 4}},
		{"vertical", r2.Point{X: 3, Y: 0}, r2.Point{X: 3, Y: 9}, r2.Point{X: 3, Y: 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := PointToLineDistance(tc.lineA, tc.lineB, tc.point)
			if err != nil {
				t.Fatalf("PointToLineDistance returned error: %v", err)
			}
			if got != 0 {
				t.Fatalf("distance for point on line = %v, want 0", got)
			}
		})
	}
}

func TestPointToLineDistanceVerticalSpecialCase(t *testing.T) {
	lineA := r2.Point{X: 5, Y: 0}
	lineB := r2.Point{X: 5, Y: 100}

	got, err := PointToLineDistance(lineA, lineB, r2.Point{X: 12, Y: 50})
	if err != nil {
		t.Fatalf("PointToLineDistance returned error: %v", err)
	}
	if got != 7 {
		t.Fatalf("vertical-line distance = %v, want 7", got)
	}

	got, err = PointToLineDistance(lineA, lineB, r2.Point{X: 1, Y: 50})
	if err != nil {
		t.Fatalf("PointToLineDistance returned error: %v", err)
	}
	if got != -4 {
		t.Fatalf("vertical-line distance = %v, want -4", got)
	}
}

func TestPointToLineDistanceSidesDiffer(t *testing.T) {
	lineA := r2.Point{X: 0, Y: 0}
	lineB := r2.Point{X: 10, Y: 10}

	left, err := PointToLineDistance(lineA, lineB, r2.Point{X: 0, Y: 5})
	if err != nil {
		t.Fatalf("PointToLineDistance returned error: %v", err)
	}
	right, err := PointToLineDistance(lineA, lineB, r2.Point{X: 5, Y: 0})
	if err != nil {
		t.Fatalf("PointToLineDistance returned error: %v", err)
	}

	if left == 0 || right == 0 {
		t.Fatalf("off-line points gave zero distance: %v, %v", left, right)
	}
	if math.Signbit(left) == math.Signbit(right) {
		t.Fatalf("points on opposite sides share sign: %v, %v", left, right)
	}
}

func TestPointToLineDistanceDegenerate(t *testing.T) {
	p := r2.Point{X: 1, Y: 1}
	if _, err := PointToLineDistance(p, p, r2.Point{X: 4, Y: 4}); err == nil {
		t.Fatal("expected error for coincident line points")
	}
}

func TestIntersectParallel(t *testing.T) {
	_, ok := Intersect(
		r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0},
		r2.Point{X: 0, Y: 1}, r2.Point{X: 1, Y: 1},
	)
	if ok {
		t.Fatal("expected no intersection for parallel lines")
	}
}

func TestIntersectDegenerateSegment(t *testing.T) {
	p := r2.Point{X: 2, Y: 3}
	_, ok := Intersect(p, p, r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1})
	if ok {
		t.Fatal("expected no intersection for degenerate segment")
	}
}

func TestIntersectCrossing(t *testing.T) {
	got, ok := Intersect(
		r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 10},
		r2.Point{X: 0, Y: 10}, r2.Point{X: 10, Y: 0},
	)
	if !ok {
		t.Fatal("expected intersection")
	}
	if got.X != 5 || got.Y != 5 {
		t.Fatalf("intersection = %v, want (5, 5)", got)
	}
}
