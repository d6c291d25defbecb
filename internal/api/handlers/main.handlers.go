package routes

import (
	"github.com/gin-gonic/gin"

	"planforge/internal/config"
)

// SetupMainHandlers registers the main application endpoints
func SetupMainHandlers(router *gin.RouterGroup, cfg config.Config) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":        "planforge",
			"port":           cfg.Port,
			"wall_thickness": cfg.WallThickness,
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}
