package service

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/cephaloview/ceph-backend-go/internal/catalog"
	"github.com/cephaloview/ceph-backend-go/internal/models"
	"github.com/cephaloview/ceph-backend-go/internal/repository"
)

// AnalysisService handles business logic for analysis snapshots.
// Results are validated for shape and stored opaque; the server does
// not recompute them.
type AnalysisService struct {
	analysisRepo *repository.AnalysisRepository
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(analysisRepo *repository.AnalysisRepository) *AnalysisService {
	return &AnalysisService{analysisRepo: analysisRepo}
}

// Create validates and persists a new analysis snapshot
func (s *AnalysisService) Create(req *models.AnalysisRequest) (*models.Analysis, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	a := &models.Analysis{
		ID:         uuid.NewString(),
		PatientID:  req.PatientID,
		ImageID:    req.ImageID,
		TemplateID: req.TemplateID,
		Landmarks:  req.Landmarks,
		Results:    req.Results,
	}

	if err := s.analysisRepo.Create(a); err != nil {
		return nil, fmt.Errorf("failed to create analysis: %w", err)
	}

	// Re-read for the database-assigned timestamps
	stored, err := s.analysisRepo.GetByID(a.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back analysis: %w", err)
	}
	return stored, nil
}

// Get retrieves a single analysis; returns nil when not found
func (s *AnalysisService) Get(id string) (*models.Analysis, error) {
	a, err := s.analysisRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return a, nil
}

// Update validates and replaces an existing analysis snapshot.
// Returns nil when no analysis with the given ID exists.
func (s *AnalysisService) Update(id string, req *models.AnalysisRequest) (*models.Analysis, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	updated, err := s.analysisRepo.Update(id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update analysis: %w", err)
	}
	if !updated {
		return nil, nil
	}

	return s.analysisRepo.GetByID(id)
}

// ListByPatient retrieves the analyses of one patient, paginated
func (s *AnalysisService) ListByPatient(patientID string, filter models.AnalysisFilter) (*models.AnalysesResponse, error) {
	filter.PatientID = patientID

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	if filter.PageSize > 1000 {
		filter.PageSize = 1000
	}

	analyses, total, err := s.analysisRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.PageSize)))

	return &models.AnalysesResponse{
		Data:       analyses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// validateRequest checks the schema-level invariants of an analysis
// snapshot: a known template, valid JSON results, unique landmark IDs,
// and finite coordinates.
func validateRequest(req *models.AnalysisRequest) error {
	if _, ok := catalog.TemplateByID(req.TemplateID); !ok {
		return fmt.Errorf("unknown analysis template: %s", req.TemplateID)
	}
	if len(req.Results) == 0 || !json.Valid(req.Results) {
		return fmt.Errorf("results must be valid JSON")
	}

	seen := make(map[string]bool, len(req.Landmarks))
	for _, lm := range req.Landmarks {
		if lm.ID == "" {
			return fmt.Errorf("landmark %q has no id", lm.Name)
		}
		if seen[lm.ID] {
			return fmt.Errorf("duplicate landmark id: %s", lm.ID)
		}
		seen[lm.ID] = true

		if math.IsNaN(lm.X) || math.IsInf(lm.X, 0) || math.IsNaN(lm.Y) || math.IsInf(lm.Y, 0) {
			return fmt.Errorf("landmark %s has non-finite coordinates", lm.ID)
		}
		if lm.Confidence != nil && (*lm.Confidence < 0 || *lm.Confidence > 1) {
			return fmt.Errorf("landmark %s confidence outside [0,1]", lm.ID)
		}
	}

	return nil
}
