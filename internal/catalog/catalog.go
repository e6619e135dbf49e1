// Package catalog holds the static analysis methodology definitions.
// The catalog is read-only configuration: changing it is a deployment
// concern, not a runtime one.
package catalog

import (
	"github.com/cephaloview/ceph-backend-go/internal/geometry"
	"github.com/cephaloview/ceph-backend-go/internal/models"
)

// Definition declares one measurement within a methodology: which
// landmarks it needs, the formula id to apply, and the normal range
// used to flag results.
type Definition struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Landmarks   []string           `json:"landmarks"`
	NormalRange models.NormalRange `json:"normalRange"`
	Unit        string             `json:"unit,omitempty"`
}

// Template groups the measurements of one named analysis methodology
type Template struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Measurements []Definition `json:"measurements"`
}

// def builds a Definition, pulling the landmark list from the geometry
// registry so catalog and formula never disagree about requirements.
func def(id, name string, min, max float64, unit string) Definition {
	return Definition{
		ID:          id,
		Name:        name,
		Landmarks:   geometry.RequiredLandmarks(id),
		NormalRange: models.NormalRange{Min: min, Max: max},
		Unit:        unit,
	}
}

var templates = []Template{
	{
		ID:          "steiner",
		Name:        "Steiner",
		Description: "Sagittal skeletal relationship relative to the anterior cranial base",
		Measurements: []Definition{
			def("sna", "SNA", 80, 84, "deg"),
			def("snb", "SNB", 78, 82, "deg"),
			def("anb", "ANB", 0, 4, "deg"),
			def("interincisal_angle", "Interincisal Angle", 124, 136, "deg"),
		},
	},
	{
		ID:          "tweed",
		Name:        "Tweed",
		Description: "Tweed diagnostic triangle over the Frankfort horizontal",
		Measurements: []Definition{
			def("fma", "FMA", 22, 28, "deg"),
			def("impa", "IMPA", 85, 95, "deg"),
			def("fmia", "FMIA", 60, 72, "deg"),
		},
	},
	{
		ID:          "downs",
		Name:        "Downs",
		Description: "Facial profile typing after Downs",
		Measurements: []Definition{
			def("facial_convexity", "Angle of Convexity", -8.5, 10, "deg"),
			def("interincisal_angle", "Interincisal Angle", 130, 150, "deg"),
		},
	},
	{
		ID:          "ricketts",
		Name:        "Ricketts",
		Description: "Esthetic line soft-tissue assessment after Ricketts",
		Measurements: []Definition{
			def("eline_upper_lip", "Upper Lip to E-Line", -6, -2, "mm"),
			def("eline_lower_lip", "Lower Lip to E-Line", -4, 0, "mm"),
			def("facial_convexity", "Angle of Convexity", -8.5, 10, "deg"),
		},
	},
	{
		ID:          "mcnamara",
		Name:        "McNamara",
		Description: "Vertical facial proportions and incisor relationship",
		Measurements: []Definition{
			def("anterior_facial_height", "Anterior Facial Height (N-Me)", 105, 125, "mm"),
			def("posterior_facial_height", "Posterior Facial Height (S-Go)", 70, 90, "mm"),
			def("overjet", "Overjet", 1, 4, "mm"),
			def("overbite", "Overbite", 1, 4, "mm"),
		},
	},
}

// Templates returns all methodology templates
func Templates() []Template {
	return templates
}

// TemplateByID looks up a methodology template by its ID
func TemplateByID(id string) (*Template, bool) {
	for i := range templates {
		if templates[i].ID == id {
			return &templates[i], true
		}
	}
	return nil, false
}
