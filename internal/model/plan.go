package model

import (
	"encoding/json"
	"time"

	"github.com/paulmach/orb"
	"gorm.io/gorm"
)

// RoomMetrics holds the scalar analysis results for one room. Compliance and
// structural calculators consume these as black-box inputs.
type RoomMetrics struct {
	Name      string    `json:"name"`
	Type      RoomType  `json:"type"`
	Ring      orb.Ring  `json:"ring"`
	Area      float64   `json:"area"`
	Perimeter float64   `json:"perimeter"`
	Centroid  orb.Point `json:"centroid"`
	Bounds    orb.Bound `json:"bounds"`
}

// Plan is a generated floor plan: the synthesized primitive list plus the
// per-room metrics, for one floor of one design specification.
type Plan struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	FloorLevel    int           `json:"floor_level"`
	WallThickness float64       `json:"wall_thickness"`
	Rooms         []RoomMetrics `json:"rooms"`
	TotalArea     float64       `json:"total_area"`
	Primitives    []Primitive   `json:"primitives"`

	UpdatedAt time.Time      `json:"updated_at"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-"`
}

// PlanPG model for PostgreSQL storage. The spec and primitive payloads are
// kept as JSON text columns; the scalar summary columns are queryable.
type PlanPG struct {
	ID            string  `gorm:"primaryKey"`
	Name          string  `gorm:"size:255;not null"`
	FloorLevel    int     `gorm:"not null"`
	WallThickness float64 `gorm:"not null"`
	RoomCount     int     `gorm:"not null"`
	TotalArea     float64 `gorm:"not null"`
	Rooms         string  `gorm:"type:text;not null"`
	Primitives    string  `gorm:"type:text;not null"`

	UpdatedAt time.Time      `gorm:"column:updated_at"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName overrides the table name
func (PlanPG) TableName() string {
	return "plans"
}

// ToPG converts a Plan into its PostgreSQL row form
func (p *Plan) ToPG() (*PlanPG, error) {
	roomsJSON, err := json.Marshal(p.Rooms)
	if err != nil {
		return nil, err
	}
	primitivesJSON, err := json.Marshal(p.Primitives)
	if err != nil {
		return nil, err
	}
	return &PlanPG{
		ID:            p.ID,
		Name:          p.Name,
		FloorLevel:    p.FloorLevel,
		WallThickness: p.WallThickness,
		RoomCount:     len(p.Rooms),
		TotalArea:     p.TotalArea,
		Rooms:         string(roomsJSON),
		Primitives:    string(primitivesJSON),
		UpdatedAt:     p.UpdatedAt,
		CreatedAt:     p.CreatedAt,
		DeletedAt:     p.DeletedAt,
	}, nil
}

// PlanFromPG creates a Plan from its PostgreSQL row form
func PlanFromPG(pg *PlanPG) (*Plan, error) {
	plan := &Plan{
		ID:            pg.ID,
		Name:          pg.Name,
		FloorLevel:    pg.FloorLevel,
		WallThickness: pg.WallThickness,
		TotalArea:     pg.TotalArea,
		UpdatedAt:     pg.UpdatedAt,
		CreatedAt:     pg.CreatedAt,
		DeletedAt:     pg.DeletedAt,
	}
	if err := json.Unmarshal([]byte(pg.Rooms), &plan.Rooms); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(pg.Primitives), &plan.Primitives); err != nil {
		return nil, err
	}
	return plan, nil
}
