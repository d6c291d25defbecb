package routes

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"planforge/internal/config"
	"planforge/internal/geometry"
	"planforge/internal/model"
	"planforge/internal/service/plan"
	"planforge/internal/validate"
)

// GeneratePlanRequest is the plan generation payload: the design spec plus
// the floor to synthesize and an optional wall thickness override
type GeneratePlanRequest struct {
	Spec          model.DesignSpec `json:"spec" binding:"required"`
	FloorLevel    int              `json:"floor_level"`
	WallThickness float64          `json:"wall_thickness" binding:"min=0"`
}

// PlanSummary is the list view of a generated plan
type PlanSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	FloorLevel int     `json:"floor_level"`
	RoomCount  int     `json:"room_count"`
	TotalArea  float64 `json:"total_area"`
}

// SetupPlanHandlers registers the plan management endpoints
func SetupPlanHandlers(router *gin.RouterGroup, cfg config.Config) {
	planGroup := router.Group("/plans")

	planGroup.POST("", func(c *gin.Context) { GeneratePlan(c, cfg) })
	planGroup.GET("", ListPlans)
	planGroup.GET("/:id", GetPlan)
	planGroup.GET("/:id/primitives", GetPlanPrimitives)
	planGroup.GET("/:id/metrics", GetPlanMetrics)
	planGroup.GET("/:id/rooms/at", GetRoomAtPoint)
	planGroup.DELETE("/:id", DeletePlan)
}

// GeneratePlan validates a design spec and synthesizes one floor
func GeneratePlan(c *gin.Context, cfg config.Config) {
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error(), "fields": bindingFieldErrors(err)})
		return
	}

	level := req.FloorLevel
	if level == 0 {
		level = 1
	}
	thickness := req.WallThickness
	if thickness == 0 {
		thickness = cfg.WallThickness
	}

	generated, err := plan.GetPlanService().GeneratePlan(c.Request.Context(), &req.Spec, level, thickness)
	if err != nil {
		var issues validate.Errors
		if errors.As(err, &issues) {
			c.JSON(422, gin.H{"errors": issues.Messages()})
			return
		}
		if errors.Is(err, geometry.ErrWallIndexOutOfRange) {
			c.JSON(422, gin.H{"errors": []string{err.Error()}})
			return
		}
		log.Printf("Plan generation failed: %v", err)
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, generated)
}

// bindingFieldErrors extracts per-field messages from a gin binding failure
func bindingFieldErrors(err error) []string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return nil
	}
	messages := make([]string, len(fieldErrors))
	for i, fe := range fieldErrors {
		messages[i] = fmt.Sprintf("%s: failed %q validation", fe.Namespace(), fe.Tag())
	}
	return messages
}

// ListPlans returns summaries of all plans in memory
func ListPlans(c *gin.Context) {
	plans := plan.GetPlanService().ListPlans()

	summaries := make([]PlanSummary, 0, len(plans))
	for _, p := range plans {
		summaries = append(summaries, PlanSummary{
			ID:         p.ID,
			Name:       p.Name,
			FloorLevel: p.FloorLevel,
			RoomCount:  len(p.Rooms),
			TotalArea:  p.TotalArea,
		})
	}
	c.JSON(200, gin.H{"plans": summaries})
}

// GetPlan returns a full plan by ID
func GetPlan(c *gin.Context) {
	p, exists := plan.GetPlanService().GetPlan(c.Param("id"))
	if !exists {
		c.JSON(404, gin.H{"error": "plan not found"})
		return
	}
	c.JSON(200, p)
}

// GetPlanPrimitives returns only the drawable primitive list of a plan,
// the contract consumed by the format writers
func GetPlanPrimitives(c *gin.Context) {
	p, exists := plan.GetPlanService().GetPlan(c.Param("id"))
	if !exists {
		c.JSON(404, gin.H{"error": "plan not found"})
		return
	}
	c.JSON(200, gin.H{"primitives": p.Primitives})
}

// GetPlanMetrics returns the per-room scalar metrics of a plan
func GetPlanMetrics(c *gin.Context) {
	p, exists := plan.GetPlanService().GetPlan(c.Param("id"))
	if !exists {
		c.JSON(404, gin.H{"error": "plan not found"})
		return
	}
	c.JSON(200, gin.H{
		"rooms":      p.Rooms,
		"total_area": p.TotalArea,
	})
}

// GetRoomAtPoint returns the rooms of a plan containing a query point
func GetRoomAtPoint(c *gin.Context) {
	id := c.Param("id")
	if _, exists := plan.GetPlanService().GetPlan(id); !exists {
		c.JSON(404, gin.H{"error": "plan not found"})
		return
	}

	x, errX := strconv.ParseFloat(c.Query("x"), 64)
	y, errY := strconv.ParseFloat(c.Query("y"), 64)
	if errX != nil || errY != nil {
		c.JSON(400, gin.H{"error": "x and y query parameters are required"})
		return
	}

	rooms := plan.GetPlanService().RoomAtPoint(id, x, y)
	c.JSON(200, gin.H{"rooms": rooms})
}

// DeletePlan removes a plan
func DeletePlan(c *gin.Context) {
	if !plan.GetPlanService().DeletePlan(c.Request.Context(), c.Param("id")) {
		c.JSON(404, gin.H{"error": "plan not found"})
		return
	}
	c.JSON(200, gin.H{"status": "deleted"})
}
