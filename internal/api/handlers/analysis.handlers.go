package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"

	"planforge/internal/geometry"
	"planforge/internal/model"
)

// PolygonRequest carries one polygon ring in spec coordinate form
type PolygonRequest struct {
	Coordinates [][2]float64 `json:"coordinates" binding:"required,min=3"`
}

// OverlapRequest carries the two rings of a pairwise overlap query
type OverlapRequest struct {
	A PolygonRequest `json:"a" binding:"required"`
	B PolygonRequest `json:"b" binding:"required"`
}

// SimplifyRequest carries a ring plus the simplification tolerance
type SimplifyRequest struct {
	Coordinates [][2]float64 `json:"coordinates" binding:"required,min=3"`
	Tolerance   float64      `json:"tolerance" binding:"min=0"`
}

// ContainsRequest carries a ring and a query point
type ContainsRequest struct {
	Coordinates [][2]float64 `json:"coordinates" binding:"required,min=3"`
	Point       [2]float64   `json:"point"`
}

func (r PolygonRequest) ring() orb.Ring {
	return model.Polygon{Coordinates: r.Coordinates}.Ring()
}

// SetupAnalysisHandlers registers the stateless polygon analysis endpoints
func SetupAnalysisHandlers(router *gin.RouterGroup) {
	analysisGroup := router.Group("/analysis")

	analysisGroup.POST("/polygon", AnalyzePolygon)
	analysisGroup.POST("/overlap", AnalyzeOverlap)
	analysisGroup.POST("/simplify", SimplifyPolygon)
	analysisGroup.POST("/contains", ContainsPoint)
}

// AnalyzePolygon returns the scalar metrics of one polygon. Degenerate
// input yields zero values, never an error.
func AnalyzePolygon(c *gin.Context) {
	var req PolygonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	ring := req.ring()
	c.JSON(200, gin.H{
		"area":       geometry.Area(ring),
		"perimeter":  geometry.Perimeter(ring),
		"centroid":   geometry.Centroid(ring),
		"bounds":     geometry.BoundingBox(ring),
		"degenerate": geometry.IsDegenerate(ring),
	})
}

// AnalyzeOverlap returns the pairwise intersection test and overlap area
func AnalyzeOverlap(c *gin.Context) {
	var req OverlapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	a := req.A.ring()
	b := req.B.ring()
	c.JSON(200, gin.H{
		"intersects":        geometry.Intersects(a, b),
		"intersection_area": geometry.IntersectionArea(a, b),
	})
}

// SimplifyPolygon removes near-collinear vertices within the tolerance
func SimplifyPolygon(c *gin.Context) {
	var req SimplifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	simplified := geometry.Simplify(model.Polygon{Coordinates: req.Coordinates}.Ring(), req.Tolerance)
	c.JSON(200, gin.H{"coordinates": simplified})
}

// ContainsPoint reports whether the point lies inside the polygon
// (boundary counts as inside)
func ContainsPoint(c *gin.Context) {
	var req ContainsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	ring := model.Polygon{Coordinates: req.Coordinates}.Ring()
	point := orb.Point{req.Point[0], req.Point[1]}
	c.JSON(200, gin.H{"contains": geometry.ContainsPoint(ring, point)})
}
