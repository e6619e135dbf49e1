package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cephaloview/ceph-backend-go/internal/models"
	"github.com/cephaloview/ceph-backend-go/internal/service"
	"github.com/cephaloview/ceph-backend-go/pkg/response"
)

// AnalysisHandler handles HTTP requests for analysis snapshots
type AnalysisHandler struct {
	analysisService *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisService *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
	}
}

// CreateAnalysis handles POST /api/analyses
func (h *AnalysisHandler) CreateAnalysis(c *gin.Context) {
	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid analysis payload")
		return
	}

	analysis, err := h.analysisService.Create(&req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, analysis)
}

// GetAnalysis handles GET /api/analyses/:id
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	id := c.Param("id")

	analysis, err := h.analysisService.Get(id)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	if analysis == nil {
		response.NotFound(c, "Analysis not found")
		return
	}

	response.Success(c, analysis)
}

// UpdateAnalysis handles PUT /api/analyses/:id
func (h *AnalysisHandler) UpdateAnalysis(c *gin.Context) {
	id := c.Param("id")

	var req models.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid analysis payload")
		return
	}

	analysis, err := h.analysisService.Update(id, &req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if analysis == nil {
		response.NotFound(c, "Analysis not found")
		return
	}

	response.Success(c, analysis)
}

// GetPatientAnalyses handles GET /api/patients/:id/analyses
func (h *AnalysisHandler) GetPatientAnalyses(c *gin.Context) {
	patientID := c.Param("id")

	var filter models.AnalysisFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.analysisService.ListByPatient(patientID, filter)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, result)
}
