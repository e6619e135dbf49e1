package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cephaloview/ceph-backend-go/internal/models"
)

// AnalysisRepository handles database operations for analysis snapshots
type AnalysisRepository struct {
	db *sql.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create inserts a new analysis snapshot
func (r *AnalysisRepository) Create(a *models.Analysis) error {
	landmarks, err := json.Marshal(a.Landmarks)
	if err != nil {
		return fmt.Errorf("failed to encode landmarks: %w", err)
	}

	query := `INSERT INTO analyses (id, patient_id, image_id, template_id, landmarks, results)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err = r.db.Exec(query, a.ID, a.PatientID, a.ImageID, a.TemplateID, string(landmarks), string(a.Results))
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	return nil
}

// GetByID retrieves a single analysis by ID; returns nil when not found
func (r *AnalysisRepository) GetByID(id string) (*models.Analysis, error) {
	query := `SELECT id, patient_id, image_id, template_id, landmarks, results, created_at, updated_at
		FROM analyses WHERE id = ?`

	var a models.Analysis
	var landmarks, results string
	err := r.db.QueryRow(query, id).Scan(
		&a.ID, &a.PatientID, &a.ImageID, &a.TemplateID, &landmarks, &results, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis: %w", err)
	}

	if err := json.Unmarshal([]byte(landmarks), &a.Landmarks); err != nil {
		return nil, fmt.Errorf("failed to decode landmarks: %w", err)
	}
	a.Results = json.RawMessage(results)

	return &a, nil
}

// Update replaces the stored snapshot for an existing analysis.
// Returns false when no analysis with the given ID exists.
func (r *AnalysisRepository) Update(id string, req *models.AnalysisRequest) (bool, error) {
	landmarks, err := json.Marshal(req.Landmarks)
	if err != nil {
		return false, fmt.Errorf("failed to encode landmarks: %w", err)
	}

	query := `UPDATE analyses
		SET patient_id = ?, image_id = ?, template_id = ?, landmarks = ?, results = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	res, err := r.db.Exec(query, req.PatientID, req.ImageID, req.TemplateID, string(landmarks), string(req.Results), id)
	if err != nil {
		return false, fmt.Errorf("failed to update analysis: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return affected > 0, nil
}

// List retrieves analyses with filtering and pagination
func (r *AnalysisRepository) List(filter models.AnalysisFilter) ([]models.Analysis, int64, error) {
	query := `SELECT id, patient_id, image_id, template_id, landmarks, results, created_at, updated_at
		FROM analyses`

	var conditions []string
	var args []interface{}

	if filter.PatientID != "" {
		conditions = append(conditions, "patient_id = ?")
		args = append(args, filter.PatientID)
	}
	if filter.ImageID != "" {
		conditions = append(conditions, "image_id = ?")
		args = append(args, filter.ImageID)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// Get total count
	countQuery := "SELECT COUNT(*) FROM analyses"
	if len(conditions) > 0 {
		countQuery += " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count analyses: %w", err)
	}

	// Add pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	offset := (filter.Page - 1) * filter.PageSize
	query += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []models.Analysis
	for rows.Next() {
		var a models.Analysis
		var landmarks, results string
		err := rows.Scan(&a.ID, &a.PatientID, &a.ImageID, &a.TemplateID, &landmarks, &results, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan analysis: %w", err)
		}
		if err := json.Unmarshal([]byte(landmarks), &a.Landmarks); err != nil {
			return nil, 0, fmt.Errorf("failed to decode landmarks: %w", err)
		}
		a.Results = json.RawMessage(results)
		analyses = append(analyses, a)
	}

	return analyses, total, nil
}
