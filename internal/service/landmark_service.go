package service

import (
	"fmt"
	"math"

	"github.com/cephaloview/ceph-backend-go/internal/models"
	"github.com/cephaloview/ceph-backend-go/internal/repository"
)

// LandmarkService handles business logic for seed landmark data
type LandmarkService struct {
	seedRepo *repository.SeedLandmarkRepository
}

// NewLandmarkService creates a new landmark service
func NewLandmarkService(seedRepo *repository.SeedLandmarkRepository) *LandmarkService {
	return &LandmarkService{seedRepo: seedRepo}
}

// GetSeedData retrieves the auto-detected landmark seed set for an image
func (s *LandmarkService) GetSeedData(imageID string) (*models.SeedLandmarksData, error) {
	data, err := s.seedRepo.GetSeedData(imageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seed data: %w", err)
	}
	return data, nil
}

// SaveSeedData validates and stores a detection result for an image
func (s *LandmarkService) SaveSeedData(imageID string, data *models.SeedLandmarksData) error {
	for _, p := range data.Points {
		if p.Landmark == "" {
			return fmt.Errorf("seed point has no landmark name")
		}
		if math.IsNaN(p.Coordinates.X) || math.IsInf(p.Coordinates.X, 0) ||
			math.IsNaN(p.Coordinates.Y) || math.IsInf(p.Coordinates.Y, 0) {
			return fmt.Errorf("seed point %s has non-finite coordinates", p.Landmark)
		}
		if p.Confidence != nil && (*p.Confidence < 0 || *p.Confidence > 1) {
			return fmt.Errorf("seed point %s confidence outside [0,1]", p.Landmark)
		}
	}

	if err := s.seedRepo.SaveSeedData(imageID, data); err != nil {
		return fmt.Errorf("failed to save seed data: %w", err)
	}
	return nil
}
