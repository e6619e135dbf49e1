package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cephaloview/ceph-backend-go/internal/models"
	"github.com/cephaloview/ceph-backend-go/internal/service"
	"github.com/cephaloview/ceph-backend-go/pkg/response"
)

// LandmarkHandler handles HTTP requests for seed landmark data
type LandmarkHandler struct {
	landmarkService *service.LandmarkService
}

// NewLandmarkHandler creates a new landmark handler
func NewLandmarkHandler(landmarkService *service.LandmarkService) *LandmarkHandler {
	return &LandmarkHandler{
		landmarkService: landmarkService,
	}
}

// GetSeedLandmarks handles GET /api/landmarks
func (h *LandmarkHandler) GetSeedLandmarks(c *gin.Context) {
	imageID := c.Query("imageId")

	data, err := h.landmarkService.GetSeedData(imageID)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.Status(c, data)
}

// SaveSeedLandmarks handles POST /api/landmarks
func (h *LandmarkHandler) SaveSeedLandmarks(c *gin.Context) {
	imageID := c.Query("imageId")

	var data models.SeedLandmarksData
	if err := c.ShouldBindJSON(&data); err != nil {
		response.BadRequest(c, "Invalid seed landmark payload")
		return
	}

	if err := h.landmarkService.SaveSeedData(imageID, &data); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Status(c, gin.H{"count": len(data.Points)})
}
