package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cephaloview/ceph-backend-go/internal/catalog"
	"github.com/cephaloview/ceph-backend-go/internal/models"
	"github.com/cephaloview/ceph-backend-go/internal/service"
	"github.com/cephaloview/ceph-backend-go/pkg/response"
)

// MeasurementHandler handles HTTP requests for measurement computation
// and the analysis template catalog
type MeasurementHandler struct {
	measurementService *service.MeasurementService
}

// NewMeasurementHandler creates a new measurement handler
func NewMeasurementHandler(measurementService *service.MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{
		measurementService: measurementService,
	}
}

// GetTemplates handles GET /api/analysis-templates
func (h *MeasurementHandler) GetTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Templates())
}

// ComputeMeasurements handles POST /api/measurements/compute
func (h *MeasurementHandler) ComputeMeasurements(c *gin.Context) {
	var req models.ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid compute payload")
		return
	}

	batch, err := h.measurementService.ComputeBatch(req.TemplateID, req.Landmarks)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, batch)
}
