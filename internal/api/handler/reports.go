package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studyzen/backend/internal/models"
)

type reportRequest struct {
	Room     string   `json:"room" binding:"required"`
	Reported string   `json:"reported" binding:"required"`
	Reasons  []string `json:"reasons" binding:"required,min=1"`
}

// FileReport accepts a complaint about a chat partner. The reporter's id
// comes from their token, never from the payload.
func (h *Handler) FileReport(c *gin.Context) {
	reporterID, err := h.anonIDFromRequest(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing token"})
		return
	}

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid report payload"})
		return
	}

	rep := &models.Report{
		ReporterID: reporterID,
		ReportedID: req.Reported,
		RoomID:     req.Room,
		Reasons:    req.Reasons,
	}
	if err := h.Reports.HandleReport(rep); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to file report"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": rep.Status})
}

// OnlineStats reports how many chat connections are currently online.
func (h *Handler) OnlineStats(c *gin.Context) {
	count, err := h.Storage.GetOnlineCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read presence"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"online": count})
}
