package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Distance calculates the Euclidean distance between two points in pixels
func Distance(p, q r2.Point) float64 {
	return p.Sub(q).Norm()
}

// Angle calculates the unsigned angle at vertex B formed by rays B→A and B→C
// using the law of cosines over the three pairwise distances.
// Returns degrees in [0, 180]. For collinear points with B between A and C
// the result is 180.
func Angle(a, b, c r2.Point) (float64, error) {
	ab := Distance(a, b)
	bc := Distance(c, b)
	if ab == 0 || bc == 0 {
		return 0, &DegenerateGeometryError{Reason: "angle vertex coincides with a ray endpoint"}
	}

	ac := Distance(a, c)
	cos := (bc*bc + ab*ab - ac*ac) / (2 * bc * ab)

	// Clamp rounding noise so acos stays defined for collinear inputs
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}

	return math.Acos(cos) * 180 / math.Pi, nil
}

// AngleVectors calculates the signed angle between vector B−A and vector D−C
// using atan2. The result is in degrees and is deliberately left
// unnormalized (it can exceed ±180) so superimposition callers keep the
// directional sign. Measurement code folds it into [0, 180] itself.
func AngleVectors(a, b, c, d r2.Point) (float64, error) {
	v1 := b.Sub(a)
	v2 := d.Sub(c)
	if v1.Norm() == 0 || v2.Norm() == 0 {
		return 0, &DegenerateGeometryError{Reason: "zero-length direction vector"}
	}

	rad := math.Atan2(v2.Y, v2.X) - math.Atan2(v1.Y, v1.X)
	return rad * 180 / math.Pi, nil
}

// PointToLineDistance calculates the signed perpendicular distance from
// point to the infinite line through lineA and lineB. The sign indicates
// which side of the line the point falls on, flipped with the slope sign
// so lip-projection values read consistently ("in front of" vs "behind"
// the reference line).
// A vertical line has infinite slope and is special-cased as horizontal
// pixel distance point.X − lineA.X.
func PointToLineDistance(lineA, lineB, point r2.Point) (float64, error) {
	if lineA == lineB {
		return 0, &DegenerateGeometryError{Reason: "line endpoints coincide"}
	}

	if lineA.X == lineB.X {
		return point.X - lineA.X, nil
	}

	slope := (lineB.Y - lineA.Y) / (lineB.X - lineA.X)
	intercept := lineA.Y - slope*lineA.X

	dist := (slope*point.X - point.Y + intercept) / math.Sqrt(slope*slope+1)
	if slope < 0 {
		dist = -dist
	}

	return dist, nil
}

// Intersect calculates the intersection of the infinite lines AB and CD
// using the determinant method. Returns ok=false when the lines are
// parallel or either segment is degenerate.
func Intersect(a, b, c, d r2.Point) (r2.Point, bool) {
	if a == b || c == d {
		return r2.Point{}, false
	}

	den := (a.X-b.X)*(c.Y-d.Y) - (a.Y-b.Y)*(c.X-d.X)
	if den == 0 {
		return r2.Point{}, false
	}

	det1 := a.X*b.Y - a.Y*b.X
	det2 := c.X*d.Y - c.Y*d.X

	return r2.Point{
		X: (det1*(c.X-d.X) - (a.X-b.X)*det2) / den,
		Y: (det1*(c.Y-d.Y) - (a.Y-b.Y)*det2) / den,
	}, true
}
