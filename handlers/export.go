package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"go-lifeline/engine"
)

// ExportDashboard dumps the latest frame to a local JSON file for the
// offline formatters and returns it inline as well.
func ExportDashboard(c *gin.Context, eng *engine.Engine) {
	log.Println("Received request to export dashboard frame...")

	frame, ok := eng.LatestFrame()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"message": "No aggregation pass has run yet",
		})
		return
	}

	jsonData, err := json.MarshalIndent(frame, "", "  ")
	if err != nil {
		log.Printf("Error marshaling frame for export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to format dashboard frame",
			"details": err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("dashboard_export_%s.json", time.Now().UTC().Format("20060102T150405Z"))
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		log.Printf("Error writing export file %s: %v", filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to write export file",
			"details": err.Error(),
		})
		return
	}

	log.Printf("Exported dashboard frame to %s (%d regions, %d activity items)",
		filename, len(frame.Regions), len(frame.Activity))
	c.JSON(http.StatusOK, gin.H{
		"file":  filename,
		"frame": frame,
	})
}
