package api

import (
	routes "planforge/internal/api/handlers"
	"planforge/internal/config"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, cfg config.Config) {
	// API group
	api := r.Group("/api")

	// Setup main handlers
	routes.SetupMainHandlers(r.Group(""), cfg)

	// Setup plan handlers
	routes.SetupPlanHandlers(api, cfg)

	// Setup analysis handlers
	routes.SetupAnalysisHandlers(api)
}
