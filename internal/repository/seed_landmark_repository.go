package repository

import (
	"database/sql"
	"fmt"

	"github.com/cephaloview/ceph-backend-go/internal/models"
)

// SeedLandmarkRepository handles database operations for automatically
// detected seed landmarks
type SeedLandmarkRepository struct {
	db *sql.DB
}

// NewSeedLandmarkRepository creates a new seed landmark repository
func NewSeedLandmarkRepository(db *sql.DB) *SeedLandmarkRepository {
	return &SeedLandmarkRepository{db: db}
}

// GetSeedData retrieves the detected points and bounding box for an
// image. An empty imageID matches the unscoped seed set.
func (r *SeedLandmarkRepository) GetSeedData(imageID string) (*models.SeedLandmarksData, error) {
	rows, err := r.db.Query(
		"SELECT landmark, x, y, confidence FROM seed_landmarks WHERE image_id = ?", imageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query seed landmarks: %w", err)
	}
	defer rows.Close()

	data := &models.SeedLandmarksData{Points: []models.SeedPoint{}}
	for rows.Next() {
		var p models.SeedPoint
		var confidence sql.NullFloat64
		if err := rows.Scan(&p.Landmark, &p.Coordinates.X, &p.Coordinates.Y, &confidence); err != nil {
			return nil, fmt.Errorf("failed to scan seed landmark: %w", err)
		}
		if confidence.Valid {
			c := confidence.Float64
			p.Confidence = &c
		}
		data.Points = append(data.Points, p)
	}

	err = r.db.QueryRow(
		"SELECT box_left, box_right, box_top, box_bottom FROM seed_boxes WHERE image_id = ?", imageID).
		Scan(&data.Box.Left, &data.Box.Right, &data.Box.Top, &data.Box.Bottom)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to query seed box: %w", err)
	}

	return data, nil
}

// SaveSeedData replaces the stored seed set for an image
func (r *SeedLandmarkRepository) SaveSeedData(imageID string, data *models.SeedLandmarksData) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM seed_landmarks WHERE image_id = ?", imageID); err != nil {
		return fmt.Errorf("failed to clear seed landmarks: %w", err)
	}

	for _, p := range data.Points {
		var confidence interface{}
		if p.Confidence != nil {
			confidence = *p.Confidence
		}
		_, err := tx.Exec(
			"INSERT INTO seed_landmarks (image_id, landmark, x, y, confidence) VALUES (?, ?, ?, ?, ?)",
			imageID, p.Landmark, p.Coordinates.X, p.Coordinates.Y, confidence)
		if err != nil {
			return fmt.Errorf("failed to insert seed landmark: %w", err)
		}
	}

	_, err = tx.Exec(`INSERT INTO seed_boxes (image_id, box_left, box_right, box_top, box_bottom)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(image_id) DO UPDATE SET
			box_left = excluded.box_left, box_right = excluded.box_right,
			box_top = excluded.box_top, box_bottom = excluded.box_bottom`,
		imageID, data.Box.Left, data.Box.Right, data.Box.Top, data.Box.Bottom)
	if err != nil {
		return fmt.Errorf("failed to upsert seed box: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}
	return nil
}
