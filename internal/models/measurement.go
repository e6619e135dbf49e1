package models

// NormalRange is the clinically normal interval for a measurement
type NormalRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Measurement is a derived clinical value, recomputed from a landmark
// snapshot plus a catalog definition; never stored or mutated directly.
type Measurement struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Value       float64     `json:"value"`
	Unit        string      `json:"unit,omitempty"`
	NormalRange NormalRange `json:"normalRange"`
	IsNormal    bool        `json:"isNormal"`
}

// MeasurementError reports a single failed measurement within a batch
// Other measurements in the batch are unaffected.
type MeasurementError struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// MeasurementBatch is the outcome of computing a template against a
// landmark set: successful values plus per-measurement failures.
type MeasurementBatch struct {
	TemplateID   string             `json:"templateId"`
	Measurements []Measurement      `json:"measurements"`
	Errors       []MeasurementError `json:"errors,omitempty"`
}

// ComputeRequest is the body of POST /api/measurements/compute
type ComputeRequest struct {
	TemplateID string     `json:"templateId" binding:"required"`
	Landmarks  []Landmark `json:"landmarks" binding:"required"`
}
