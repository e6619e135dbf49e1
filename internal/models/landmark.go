package models

// Landmark represents a named anatomical point on a radiograph
// Coordinates are in image pixel space and are not clamped to image
// bounds here; bounding is a UI concern.
type Landmark struct {
	ID           string   `json:"id" db:"id"`
	Name         string   `json:"name" db:"name"`
	Abbreviation string   `json:"abbreviation" db:"abbreviation"`
	X            float64  `json:"x" db:"x"`
	Y            float64  `json:"y" db:"y"`
	Description  string   `json:"description,omitempty" db:"description"`
	Confidence   *float64 `json:"confidence,omitempty" db:"confidence"` // 0..1, set only for auto-detected points
}

// LandmarksCollection is the full set of landmarks annotated on one image
// Landmark IDs are unique within the collection; order is irrelevant.
type LandmarksCollection struct {
	ID             string     `json:"id" db:"id"`
	PatientID      string     `json:"patientId" db:"patient_id"`
	ImageID        string     `json:"imageId" db:"image_id"`
	Landmarks      []Landmark `json:"landmarks"`
	CreatedAt      int64      `json:"createdAt" db:"created_at"`   // Unix timestamp in milliseconds
	UpdatedAt      int64      `json:"updatedAt" db:"updated_at"`   // Unix timestamp in milliseconds
	LastModifiedBy string     `json:"lastModifiedBy" db:"last_modified_by"`
}

// CollaborationParticipant is an ephemeral connected user
// It exists only for the lifetime of a connection and is never persisted.
type CollaborationParticipant struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// SeedPoint represents one automatically detected landmark position
type SeedPoint struct {
	Landmark    string      `json:"landmark"`
	Coordinates Coordinates `json:"coordinates"`
	Confidence  *float64    `json:"confidence,omitempty"`
}

// Coordinates is a bare pixel position
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BoundingBox is the detection region reported with seed landmarks
type BoundingBox struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// SeedLandmarksData is the payload of GET /api/landmarks
type SeedLandmarksData struct {
	Points []SeedPoint `json:"points"`
	Box    BoundingBox `json:"box"`
}
