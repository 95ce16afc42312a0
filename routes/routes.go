package routes

import (
	"github.com/gin-gonic/gin"

	"go-lifeline/engine"
	"go-lifeline/handlers"
)

func SetupRouter(eng *engine.Engine) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to Lifeline Ops!",
		})
	})

	// api routes
	api := r.Group("/api/lifeline")
	{
		api.GET("/dashboard", func(c *gin.Context) { handlers.GetDashboard(c, eng) })
		api.GET("/alerts", func(c *gin.Context) { handlers.GetAlerts(c, eng) })
		api.GET("/status", func(c *gin.Context) { handlers.GetStatus(c, eng) })
		api.GET("/export", func(c *gin.Context) { handlers.ExportDashboard(c, eng) })
		api.POST("/incidents/:id/seen", func(c *gin.Context) { handlers.MarkSeen(c, eng) })
		api.POST("/audio/unlock", func(c *gin.Context) { handlers.UnlockAudio(c, eng) })
		api.POST("/simulate", func(c *gin.Context) { handlers.Simulate(c, eng) })
	}

	return r
}
