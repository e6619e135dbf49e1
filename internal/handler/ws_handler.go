package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cephaloview/ceph-backend-go/internal/collab"
)

// WSHandler upgrades connections into the collaboration hub
type WSHandler struct {
	hub *collab.Hub
}

// NewWSHandler creates a new WebSocket handler
func NewWSHandler(hub *collab.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Serve handles GET /ws
func (h *WSHandler) Serve(c *gin.Context) {
	collab.ServeWS(h.hub, c.Writer, c.Request)
}
