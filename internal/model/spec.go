package model

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
)

// RoomType represents the functional type of a room
type RoomType int

const (
	RoomOther RoomType = iota
	RoomLivingRoom
	RoomBedroom
	RoomKitchen
	RoomBathroom
	RoomDiningRoom
	RoomStudy
	RoomStorage
	RoomHallway
	RoomBalcony
	RoomUtility
	RoomEntrance
	RoomParking
)

var roomTypeNames = map[RoomType]string{
	RoomOther:      "other",
	RoomLivingRoom: "living_room",
	RoomBedroom:    "bedroom",
	RoomKitchen:    "kitchen",
	RoomBathroom:   "bathroom",
	RoomDiningRoom: "dining_room",
	RoomStudy:      "study",
	RoomStorage:    "storage",
	RoomHallway:    "hallway",
	RoomBalcony:    "balcony",
	RoomUtility:    "utility",
	RoomEntrance:   "entrance",
	RoomParking:    "parking",
}

// DoorType represents the door construction type
type DoorType int

const (
	DoorSingle DoorType = iota
	DoorDouble
	DoorSliding
	DoorFolding
)

var doorTypeNames = map[DoorType]string{
	DoorSingle:  "single",
	DoorDouble:  "double",
	DoorSliding: "sliding",
	DoorFolding: "folding",
}

// WindowType represents the window construction type
type WindowType int

const (
	WindowSliding WindowType = iota
	WindowFixed
	WindowCasement
	WindowAwning
)

var windowTypeNames = map[WindowType]string{
	WindowSliding:  "sliding",
	WindowFixed:    "fixed",
	WindowCasement: "casement",
	WindowAwning:   "awning",
}

// SwingDirection represents which side of the wall a door opens toward
type SwingDirection int

const (
	SwingInward SwingDirection = iota
	SwingOutward
)

var swingDirectionNames = map[SwingDirection]string{
	SwingInward:  "inward",
	SwingOutward: "outward",
}

// FurnitureType represents the furniture category
type FurnitureType int

const (
	FurnitureOther FurnitureType = iota
	FurnitureBed
	FurnitureDesk
	FurnitureChair
	FurnitureSofa
	FurnitureTable
	FurnitureCabinet
	FurnitureWardrobe
	FurnitureRefrigerator
	FurnitureStove
	FurnitureSink
	FurnitureToilet
	FurnitureBathtub
	FurnitureShower
)

var furnitureTypeNames = map[FurnitureType]string{
	FurnitureOther:        "other",
	FurnitureBed:          "bed",
	FurnitureDesk:         "desk",
	FurnitureChair:        "chair",
	FurnitureSofa:         "sofa",
	FurnitureTable:        "table",
	FurnitureCabinet:      "cabinet",
	FurnitureWardrobe:     "wardrobe",
	FurnitureRefrigerator: "refrigerator",
	FurnitureStove:        "stove",
	FurnitureSink:         "sink",
	FurnitureToilet:       "toilet",
	FurnitureBathtub:      "bathtub",
	FurnitureShower:       "shower",
}

// defaultDimensions is the per-type furniture footprint table (width, depth,
// height in meters). Types without an entry fall back to minimalFootprint.
var defaultDimensions = map[FurnitureType]Dimensions{
	FurnitureBed:          {Width: 2.0, Depth: 1.5, Height: 0.5},
	FurnitureDesk:         {Width: 1.2, Depth: 0.6, Height: 0.75},
	FurnitureChair:        {Width: 0.5, Depth: 0.5, Height: 0.9},
	FurnitureSofa:         {Width: 2.0, Depth: 0.9, Height: 0.85},
	FurnitureTable:        {Width: 1.5, Depth: 0.9, Height: 0.75},
	FurnitureCabinet:      {Width: 0.9, Depth: 0.45, Height: 1.8},
	FurnitureWardrobe:     {Width: 1.2, Depth: 0.6, Height: 2.0},
	FurnitureRefrigerator: {Width: 0.7, Depth: 0.7, Height: 1.8},
	FurnitureStove:        {Width: 0.6, Depth: 0.6, Height: 0.9},
	FurnitureSink:         {Width: 0.6, Depth: 0.5, Height: 0.85},
	FurnitureToilet:       {Width: 0.4, Depth: 0.7, Height: 0.8},
	FurnitureBathtub:      {Width: 1.7, Depth: 0.8, Height: 0.6},
	FurnitureShower:       {Width: 0.9, Depth: 0.9, Height: 2.0},
}

var minimalFootprint = Dimensions{Width: 1.0, Depth: 1.0, Height: 0.5}

func (t RoomType) String() string      { return roomTypeNames[t] }
func (t DoorType) String() string      { return doorTypeNames[t] }
func (t WindowType) String() string    { return windowTypeNames[t] }
func (t FurnitureType) String() string { return furnitureTypeNames[t] }
func (d SwingDirection) String() string {
	return swingDirectionNames[d]
}

// ParseRoomType maps a spec string tag to its RoomType; unknown tags map to RoomOther
func ParseRoomType(s string) RoomType {
	for t, name := range roomTypeNames {
		if name == s {
			return t
		}
	}
	return RoomOther
}

// ParseFurnitureType maps a spec string tag to its FurnitureType; unknown tags map to FurnitureOther
func ParseFurnitureType(s string) FurnitureType {
	for t, name := range furnitureTypeNames {
		if name == s {
			return t
		}
	}
	return FurnitureOther
}

// ParseDoorType maps a spec string tag to its DoorType
func ParseDoorType(s string) (DoorType, error) {
	for t, name := range doorTypeNames {
		if name == s {
			return t, nil
		}
	}
	return DoorSingle, fmt.Errorf("unknown door type %q", s)
}

// ParseWindowType maps a spec string tag to its WindowType
func ParseWindowType(s string) (WindowType, error) {
	for t, name := range windowTypeNames {
		if name == s {
			return t, nil
		}
	}
	return WindowSliding, fmt.Errorf("unknown window type %q", s)
}

// ParseSwingDirection maps a spec string tag to its SwingDirection
func ParseSwingDirection(s string) (SwingDirection, error) {
	for d, name := range swingDirectionNames {
		if name == s {
			return d, nil
		}
	}
	return SwingInward, fmt.Errorf("unknown swing direction %q", s)
}

func (t RoomType) MarshalJSON() ([]byte, error)      { return json.Marshal(t.String()) }
func (t DoorType) MarshalJSON() ([]byte, error)      { return json.Marshal(t.String()) }
func (t WindowType) MarshalJSON() ([]byte, error)    { return json.Marshal(t.String()) }
func (t FurnitureType) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }
func (d SwingDirection) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (t *RoomType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParseRoomType(s)
	return nil
}

func (t *FurnitureType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = ParseFurnitureType(s)
	return nil
}

func (t *DoorType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDoorType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t *WindowType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseWindowType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (d *SwingDirection) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseSwingDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ProjectInfo holds project metadata from the design specification
type ProjectInfo struct {
	Name      string `json:"name" binding:"required,min=1"`
	Client    string `json:"client,omitempty"`
	Address   string `json:"address,omitempty"`
	Architect string `json:"architect,omitempty"`
	Date      string `json:"date,omitempty"`
}

// Polygon is a room boundary ring in the GeoJSON-like spec form:
// an ordered list of [x, y] pairs, closed by repeating the first pair.
type Polygon struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates" binding:"required,min=3"`
}

// Ring converts the spec coordinates into an orb.Ring
func (p Polygon) Ring() orb.Ring {
	ring := make(orb.Ring, len(p.Coordinates))
	for i, c := range p.Coordinates {
		ring[i] = orb.Point{c[0], c[1]}
	}
	return ring
}

// Door is a door opening placed on a wall segment
type Door struct {
	WallIndex int            `json:"wall_index" binding:"min=0"`
	Position  float64        `json:"position" binding:"min=0,max=1"`
	Width     float64        `json:"width" binding:"required,gt=0"`
	Height    float64        `json:"height,omitempty"`
	Type      DoorType       `json:"type,omitempty"`
	Swing     SwingDirection `json:"swing_direction,omitempty"`
}

// Window is a window opening placed on a wall segment
type Window struct {
	WallIndex  int        `json:"wall_index" binding:"min=0"`
	Position   float64    `json:"position" binding:"min=0,max=1"`
	Width      float64    `json:"width" binding:"required,gt=0"`
	Height     float64    `json:"height,omitempty"`
	SillHeight float64    `json:"sill_height,omitempty"`
	Type       WindowType `json:"type,omitempty"`
}

// Position is a 2D placement with rotation in degrees, clockwise from the +X axis
type Position struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation,omitempty" binding:"min=0,max=360"`
}

// Dimensions is a width/depth/height triple in meters. Zero values mean
// "not supplied" and are filled in by Resolve.
type Dimensions struct {
	Width  float64 `json:"width,omitempty" binding:"min=0"`
	Depth  float64 `json:"depth,omitempty" binding:"min=0"`
	Height float64 `json:"height,omitempty" binding:"min=0"`
}

// Furniture is a single furniture placement inside a room
type Furniture struct {
	Type       FurnitureType `json:"type"`
	Position   Position      `json:"position" binding:"required"`
	Dimensions *Dimensions   `json:"dimensions,omitempty"`
	Label      string        `json:"label,omitempty"`
}

// Resolve returns the furniture footprint with defaults applied. Explicit
// dimensions win; absent ones come from the per-type table, and types with
// no table entry get the minimal 1x1 footprint. Synthesis always operates
// on resolved values.
func (f Furniture) Resolve() Dimensions {
	resolved, ok := defaultDimensions[f.Type]
	if !ok {
		resolved = minimalFootprint
	}
	if f.Dimensions != nil {
		if f.Dimensions.Width > 0 {
			resolved.Width = f.Dimensions.Width
		}
		if f.Dimensions.Depth > 0 {
			resolved.Depth = f.Dimensions.Depth
		}
		if f.Dimensions.Height > 0 {
			resolved.Height = f.Dimensions.Height
		}
	}
	return resolved
}

// Room is a single room specification: boundary polygon plus placements
type Room struct {
	Name      string      `json:"name" binding:"required,min=1"`
	Type      RoomType    `json:"type,omitempty"`
	Geometry  Polygon     `json:"geometry" binding:"required"`
	Doors     []Door      `json:"doors,omitempty"`
	Windows   []Window    `json:"windows,omitempty"`
	Furniture []Furniture `json:"furniture,omitempty"`
}

// Floor is a single floor: level, floor-to-floor height and its rooms
type Floor struct {
	Level  int     `json:"level"`
	Height float64 `json:"height,omitempty"`
	Rooms  []Room  `json:"rooms" binding:"required,min=1,dive"`
}

// Building groups the floors of a design specification
type Building struct {
	Floors []Floor `json:"floors" binding:"required,min=1,dive"`
}

// DesignSpec is the complete architectural design specification supplied by
// the caller. The engine never mutates it.
type DesignSpec struct {
	ProjectInfo ProjectInfo `json:"project_info" binding:"required"`
	Building    Building    `json:"building" binding:"required"`
}

// FindFloor returns the floor with the given level, or nil if absent
func (s *DesignSpec) FindFloor(level int) *Floor {
	for i := range s.Building.Floors {
		if s.Building.Floors[i].Level == level {
			return &s.Building.Floors[i]
		}
	}
	return nil
}
