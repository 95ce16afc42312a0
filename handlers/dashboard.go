package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-lifeline/engine"
	"go-lifeline/types"
)

// GetDashboard returns the latest aggregation frame. 503 until the first
// stream delivery has produced one.
func GetDashboard(c *gin.Context, eng *engine.Engine) {
	frame, ok := eng.LatestFrame()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"message": "No aggregation pass has run yet",
		})
		return
	}
	c.JSON(http.StatusOK, frame)
}

// GetAlerts returns the most recently raised alerts, oldest first.
func GetAlerts(c *gin.Context, eng *engine.Engine) {
	c.JSON(http.StatusOK, gin.H{
		"alerts": eng.RecentAlerts(),
	})
}

// GetStatus surfaces the sticky stream-health flags and the audio gate.
func GetStatus(c *gin.Context, eng *engine.Engine) {
	c.JSON(http.StatusOK, gin.H{
		"streams":       eng.StreamStatus(),
		"audioUnlocked": eng.AudioUnlocked(),
		"viewerClass":   eng.Viewer().Class,
		"viewerRegion":  eng.Viewer().Region,
	})
}

// MarkSeen flags an incident as seen for this viewer class.
func MarkSeen(c *gin.Context, eng *engine.Engine) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing incident id"})
		return
	}
	if err := eng.MarkSeen(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to persist seen flag",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": id})
}

// UnlockAudio runs the one-time user-gesture probe.
func UnlockAudio(c *gin.Context, eng *engine.Engine) {
	if err := eng.UnlockAudio(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Audio unlock probe failed",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"audioUnlocked": true})
}

// Simulate injects a synthetic incident snapshot straight into the engine.
// Demo tool only; nothing is persisted.
func Simulate(c *gin.Context, eng *engine.Engine) {
	var incidents []types.Incident
	if err := c.ShouldBindJSON(&incidents); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident payload", "details": err.Error()})
		return
	}
	eng.Push(engine.Snapshot{Stream: engine.StreamIncidents, Incidents: incidents})
	c.JSON(http.StatusOK, gin.H{"injected": len(incidents)})
}
