package service

import (
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/cephaloview/ceph-backend-go/internal/catalog"
	"github.com/cephaloview/ceph-backend-go/internal/geometry"
	"github.com/cephaloview/ceph-backend-go/internal/models"
)

// MeasurementService computes measurement batches from landmark sets
type MeasurementService struct{}

// NewMeasurementService creates a new measurement service
func NewMeasurementService() *MeasurementService {
	return &MeasurementService{}
}

// ComputeBatch evaluates every measurement of a template against a
// landmark set. A failed measurement (missing landmark, degenerate
// geometry) is reported in the batch errors and never aborts the
// remaining independent measurements.
func (s *MeasurementService) ComputeBatch(templateID string, landmarks []models.Landmark) (*models.MeasurementBatch, error) {
	tpl, ok := catalog.TemplateByID(templateID)
	if !ok {
		return nil, fmt.Errorf("unknown analysis template: %s", templateID)
	}

	lm := toGeometry(landmarks)

	batch := &models.MeasurementBatch{
		TemplateID:   templateID,
		Measurements: []models.Measurement{},
	}
	for _, d := range tpl.Measurements {
		value, err := geometry.Compute(d.ID, lm)
		if err != nil {
			batch.Errors = append(batch.Errors, models.MeasurementError{ID: d.ID, Message: err.Error()})
			continue
		}

		batch.Measurements = append(batch.Measurements, models.Measurement{
			ID:          d.ID,
			Name:        d.Name,
			Value:       value,
			Unit:        d.Unit,
			NormalRange: d.NormalRange,
			IsNormal:    value >= d.NormalRange.Min && value <= d.NormalRange.Max,
		})
	}

	return batch, nil
}

// toGeometry indexes landmarks by name for the geometry engine
func toGeometry(landmarks []models.Landmark) geometry.Landmarks {
	lm := make(geometry.Landmarks, len(landmarks))
	for _, l := range landmarks {
		lm[l.Name] = r2.Point{X: l.X, Y: l.Y}
	}
	return lm
}
