package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// Canonical landmark names used by the measurement computations.
// These match the names carried in catalog definitions and seed data.
const (
	Sella            = "Sella"
	Nasion           = "Nasion"
	APoint           = "A Point"
	BPoint           = "B Point"
	Pogonion         = "Pogonion"
	Menton           = "Menton"
	Gonion           = "Gonion"
	Porion           = "Porion"
	Orbitale         = "Orbitale"
	Pronasale        = "Pronasale"
	LabraleSuperius  = "Labrale Superius"
	LabraleInferius  = "Labrale Inferius"
	UpperIncisorTip  = "Upper Incisor Tip"
	UpperIncisorApex = "Upper Incisor Apex"
	LowerIncisorTip  = "Lower Incisor Tip"
	LowerIncisorApex = "Lower Incisor Apex"
)

// Landmarks maps landmark names to pixel positions for one computation.
type Landmarks map[string]r2.Point

// Computation is one named clinical measurement: the landmark names it
// requires and the formula over them. Fn may assume every required name
// is present; Compute checks first.
type Computation struct {
	Required []string
	Fn       func(lm Landmarks) (float64, error)
}

// Registry maps measurement IDs to their computations
var Registry = map[string]Computation{
	"sna": {
		Required: []string{Sella, Nasion, APoint},
		Fn: func(lm Landmarks) (float64, error) {
			return Angle(lm[Sella], lm[Nasion], lm[APoint])
		},
	},
	"snb": {
		Required: []string{Sella, Nasion, BPoint},
		Fn: func(lm Landmarks) (float64, error) {
			return Angle(lm[Sella], lm[Nasion], lm[BPoint])
		},
	},
	"anb": {
		Required: []string{Sella, Nasion, APoint, BPoint},
		Fn: func(lm Landmarks) (float64, error) {
			sna, err := Angle(lm[Sella], lm[Nasion], lm[APoint])
			if err != nil {
				return 0, err
			}
			snb, err := Angle(lm[Sella], lm[Nasion], lm[BPoint])
			if err != nil {
				return 0, err
			}
			return sna - snb, nil
		},
	},
	"fma": {
		Required: []string{Porion, Orbitale, Gonion, Menton},
		Fn: func(lm Landmarks) (float64, error) {
			// Frankfort horizontal vs mandibular plane
			return lineAngle(lm[Porion], lm[Orbitale], lm[Gonion], lm[Menton])
		},
	},
	"impa": {
		Required: []string{Gonion, Menton, LowerIncisorApex, LowerIncisorTip},
		Fn: func(lm Landmarks) (float64, error) {
			return lineAngle(lm[Gonion], lm[Menton], lm[LowerIncisorApex], lm[LowerIncisorTip])
		},
	},
	"fmia": {
		// Tweed triangle: the three angles always close to 180
		Required: []string{Porion, Orbitale, Gonion, Menton, LowerIncisorApex, LowerIncisorTip},
		Fn: func(lm Landmarks) (float64, error) {
			fma, err := lineAngle(lm[Porion], lm[Orbitale], lm[Gonion], lm[Menton])
			if err != nil {
				return 0, err
			}
			impa, err := lineAngle(lm[Gonion], lm[Menton], lm[LowerIncisorApex], lm[LowerIncisorTip])
			if err != nil {
				return 0, err
			}
			return 180 - fma - impa, nil
		},
	},
	"interincisal_angle": {
		Required: []string{UpperIncisorApex, UpperIncisorTip, LowerIncisorApex, LowerIncisorTip},
		Fn: func(lm Landmarks) (float64, error) {
			return lineAngle(lm[UpperIncisorApex], lm[UpperIncisorTip], lm[LowerIncisorApex], lm[LowerIncisorTip])
		},
	},
	"facial_convexity": {
		// Downs convention: deviation of A from the N-Pog facial plane,
		// 0 for a straight profile, positive for a convex one
		Required: []string{Nasion, APoint, Pogonion},
		Fn: func(lm Landmarks) (float64, error) {
			a, err := Angle(lm[Nasion], lm[APoint], lm[Pogonion])
			if err != nil {
				return 0, err
			}
			return 180 - a, nil
		},
	},
	"anterior_facial_height": {
		Required: []string{Nasion, Menton},
		Fn: func(lm Landmarks) (float64, error) {
			return Distance(lm[Nasion], lm[Menton]), nil
		},
	},
	"posterior_facial_height": {
		Required: []string{Sella, Gonion},
		Fn: func(lm Landmarks) (float64, error) {
			return Distance(lm[Sella], lm[Gonion]), nil
		},
	},
	"eline_upper_lip": {
		Required: []string{Pronasale, Pogonion, LabraleSuperius},
		Fn: func(lm Landmarks) (float64, error) {
			return PointToLineDistance(lm[Pronasale], lm[Pogonion], lm[LabraleSuperius])
		},
	},
	"eline_lower_lip": {
		Required: []string{Pronasale, Pogonion, LabraleInferius},
		Fn: func(lm Landmarks) (float64, error) {
			return PointToLineDistance(lm[Pronasale], lm[Pogonion], lm[LabraleInferius])
		},
	},
	"overjet": {
		Required: []string{UpperIncisorTip, LowerIncisorTip},
		Fn: func(lm Landmarks) (float64, error) {
			return math.Abs(lm[UpperIncisorTip].X - lm[LowerIncisorTip].X), nil
		},
	},
	"overbite": {
		Required: []string{UpperIncisorTip, LowerIncisorTip},
		Fn: func(lm Landmarks) (float64, error) {
			return math.Abs(lm[UpperIncisorTip].Y - lm[LowerIncisorTip].Y), nil
		},
	},
}

// Compute evaluates the measurement with the given ID against a landmark
// set. A required landmark absent from the set fails with
// MissingLandmarkError naming it; it is never defaulted to zero.
func Compute(id string, lm Landmarks) (float64, error) {
	comp, ok := Registry[id]
	if !ok {
		return 0, fmt.Errorf("unknown measurement: %s", id)
	}

	for _, name := range comp.Required {
		if _, present := lm[name]; !present {
			return 0, &MissingLandmarkError{Name: name}
		}
	}

	return comp.Fn(lm)
}

// RequiredLandmarks returns the landmark names a measurement needs,
// or nil for an unknown measurement ID.
func RequiredLandmarks(id string) []string {
	comp, ok := Registry[id]
	if !ok {
		return nil
	}
	return comp.Required
}

// lineAngle is the angle between lines AB and CD folded into the
// clinical [0, 180] range. AngleVectors itself stays signed and
// unnormalized; only named measurements fold.
func lineAngle(a, b, c, d r2.Point) (float64, error) {
	deg, err := AngleVectors(a, b, c, d)
	if err != nil {
		return 0, err
	}
	return foldDegrees(deg), nil
}

// foldDegrees maps any angle in degrees onto [0, 180]
func foldDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg > 180 {
		deg = 360 - deg
	}
	return deg
}
