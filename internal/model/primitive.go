package model

import (
	"encoding/json"

	"github.com/paulmach/orb"
)

// Layer is the semantic CAD layer a primitive belongs to. Renderers use the
// layer tag for z-ordering, not the primitive's position in the output list.
type Layer int

const (
	LayerWall Layer = iota
	LayerDoor
	LayerWindow
	LayerFurniture
	LayerText
)

var layerNames = map[Layer]string{
	LayerWall:      "WALL",
	LayerDoor:      "DOOR",
	LayerWindow:    "WINDOW",
	LayerFurniture: "FURNITURE",
	LayerText:      "TEXT",
}

func (l Layer) String() string { return layerNames[l] }

func (l Layer) MarshalJSON() ([]byte, error) { return json.Marshal(l.String()) }

func (l *Layer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for layer, name := range layerNames {
		if name == s {
			*l = layer
			return nil
		}
	}
	*l = LayerWall
	return nil
}

// PrimitiveKind discriminates the geometric payload of a Primitive
type PrimitiveKind int

const (
	KindLine PrimitiveKind = iota
	KindArc
	KindPolyline
	KindText
)

var kindNames = map[PrimitiveKind]string{
	KindLine:     "line",
	KindArc:      "arc",
	KindPolyline: "polyline",
	KindText:     "text",
}

func (k PrimitiveKind) String() string { return kindNames[k] }

func (k PrimitiveKind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

func (k *PrimitiveKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for kind, name := range kindNames {
		if name == s {
			*k = kind
			return nil
		}
	}
	*k = KindLine
	return nil
}

// Line is a straight segment between two points
type Line struct {
	Start orb.Point `json:"start"`
	End   orb.Point `json:"end"`
}

// Arc is a circular arc. Angles are in degrees, counterclockwise from the
// +X axis, matching the CAD arc convention the format writers consume.
type Arc struct {
	Center     orb.Point `json:"center"`
	Radius     float64   `json:"radius"`
	StartAngle float64   `json:"start_angle"`
	EndAngle   float64   `json:"end_angle"`
}

// Polyline is an ordered open or closed point chain
type Polyline struct {
	Points []orb.Point `json:"points"`
	Closed bool        `json:"closed"`
}

// TextAnchor is a label placement point
type TextAnchor struct {
	Point  orb.Point `json:"point"`
	Text   string    `json:"text"`
	Height float64   `json:"height"`
}

// Primitive is a single drawable unit tagged with its kind and semantic
// layer. Exactly one payload field is set, matching Kind.
type Primitive struct {
	Kind     PrimitiveKind `json:"kind"`
	Layer    Layer         `json:"layer"`
	Line     *Line         `json:"line,omitempty"`
	Arc      *Arc          `json:"arc,omitempty"`
	Polyline *Polyline     `json:"polyline,omitempty"`
	Text     *TextAnchor   `json:"text,omitempty"`
}

// NewLine builds a line primitive on the given layer
func NewLine(layer Layer, start, end orb.Point) Primitive {
	return Primitive{Kind: KindLine, Layer: layer, Line: &Line{Start: start, End: end}}
}

// NewArc builds an arc primitive on the given layer
func NewArc(layer Layer, center orb.Point, radius, startAngle, endAngle float64) Primitive {
	return Primitive{Kind: KindArc, Layer: layer, Arc: &Arc{
		Center:     center,
		Radius:     radius,
		StartAngle: startAngle,
		EndAngle:   endAngle,
	}}
}

// NewPolyline builds a polyline primitive on the given layer
func NewPolyline(layer Layer, points []orb.Point, closed bool) Primitive {
	return Primitive{Kind: KindPolyline, Layer: layer, Polyline: &Polyline{Points: points, Closed: closed}}
}

// NewText builds a text anchor primitive on the given layer
func NewText(layer Layer, at orb.Point, text string, height float64) Primitive {
	return Primitive{Kind: KindText, Layer: layer, Text: &TextAnchor{Point: at, Text: text, Height: height}}
}
