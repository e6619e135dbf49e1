package geometry

import "fmt"

// MissingLandmarkError indicates a required landmark name was absent
// from the set a measurement was computed against.
type MissingLandmarkError struct {
	Name string
}

func (e *MissingLandmarkError) Error() string {
	return fmt.Sprintf("missing required landmark: %s", e.Name)
}

// DegenerateGeometryError indicates coincident points produced an
// undefined result (zero denominator). Raised instead of returning NaN.
type DegenerateGeometryError struct {
	Reason string
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate geometry: %s", e.Reason)
}
