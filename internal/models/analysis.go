package models

import "encoding/json"

// Analysis is a persisted snapshot of computed measurements for one
// (patient, image) pair. Results are stored opaque; the server never
// recomputes them.
type Analysis struct {
	ID         string          `json:"id" db:"id"`
	PatientID  string          `json:"patientId" db:"patient_id"`
	ImageID    string          `json:"imageId" db:"image_id"`
	TemplateID string          `json:"templateId" db:"template_id"`
	Landmarks  []Landmark      `json:"landmarks"`
	Results    json.RawMessage `json:"results" db:"results"`
	CreatedAt  string          `json:"createdAt" db:"created_at"`
	UpdatedAt  string          `json:"updatedAt" db:"updated_at"`
}

// AnalysisRequest is the body of POST /api/analyses and PUT /api/analyses/:id
type AnalysisRequest struct {
	PatientID  string          `json:"patientId" binding:"required"`
	ImageID    string          `json:"imageId" binding:"required"`
	TemplateID string          `json:"templateId" binding:"required"`
	Landmarks  []Landmark      `json:"landmarks" binding:"required"`
	Results    json.RawMessage `json:"results" binding:"required"`
}

// AnalysisFilter represents filter parameters for querying analyses
type AnalysisFilter struct {
	PatientID string `form:"patientId"`
	ImageID   string `form:"imageId"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

// AnalysesResponse represents a paginated response of analyses
type AnalysesResponse struct {
	Data       []Analysis `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
	TotalPages int        `json:"totalPages"`
}
