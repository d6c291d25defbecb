package geometry

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"planforge/internal/model"
)

func rectRoom(name string) model.Room {
	return model.Room{
		Name: name,
		Geometry: model.Polygon{
			Type:        "Polygon",
			Coordinates: [][2]float64{{0, 0}, {6, 0}, {6, 4}, {0, 4}, {0, 0}},
		},
	}
}

func linesOnLayer(primitives []model.Primitive, layer model.Layer) []model.Primitive {
	var result []model.Primitive
	for _, p := range primitives {
		if p.Kind == model.KindLine && p.Layer == layer {
			result = append(result, p)
		}
	}
	return result
}

func TestSynthesizeBareRoom(t *testing.T) {
	room := rectRoom("living")
	primitives, err := SynthesizeRoom(&room, 0.2)
	require.NoError(t, err)

	// 4 line primitives per wall (outer pair + two end caps) plus the label
	require.Len(t, primitives, 4*4+1)
	require.Len(t, linesOnLayer(primitives, model.LayerWall), 16)

	label := primitives[len(primitives)-1]
	require.Equal(t, model.KindText, label.Kind)
	require.Equal(t, model.LayerText, label.Layer)
	require.Equal(t, "living", label.Text.Text)
	require.InDelta(t, 3.0, label.Text.Point[0], 1e-9)
	require.InDelta(t, 2.0, label.Text.Point[1], 1e-9)
}

func TestSynthesizeWallOffsets(t *testing.T) {
	room := rectRoom("r")
	primitives, err := SynthesizeRoom(&room, 0.2)
	require.NoError(t, err)

	// Wall 0 runs (0,0)->(6,0); its left perpendicular is +Y, so the two
	// boundary lines sit at y=0.1 and y=-0.1.
	outer1 := primitives[0].Line
	outer2 := primitives[1].Line
	require.InDelta(t, 0.1, outer1.Start[1], 1e-9)
	require.InDelta(t, 0.1, outer1.End[1], 1e-9)
	require.InDelta(t, -0.1, outer2.Start[1], 1e-9)
	require.InDelta(t, -0.1, outer2.End[1], 1e-9)

	// End caps connect the corresponding endpoints
	capStart := primitives[2].Line
	require.Equal(t, outer1.Start, capStart.Start)
	require.Equal(t, outer2.Start, capStart.End)
	capEnd := primitives[3].Line
	require.Equal(t, outer1.End, capEnd.Start)
	require.Equal(t, outer2.End, capEnd.End)
}

func TestSynthesizeDoor(t *testing.T) {
	room := rectRoom("r")
	room.Doors = []model.Door{
		{WallIndex: 0, Position: 0.5, Width: 0.9, Swing: model.SwingInward},
	}

	primitives, err := SynthesizeRoom(&room, 0.2)
	require.NoError(t, err)
	// 16 wall lines + door line + swing arc + label
	require.Len(t, primitives, 19)

	// The door follows wall 0's four lines immediately
	opening := primitives[4]
	require.Equal(t, model.KindLine, opening.Kind)
	require.Equal(t, model.LayerDoor, opening.Layer)
	require.InDelta(t, 2.55, opening.Line.Start[0], 1e-9)
	require.InDelta(t, 0.0, opening.Line.Start[1], 1e-9)
	require.InDelta(t, 3.45, opening.Line.End[0], 1e-9)
	require.InDelta(t, 0.0, opening.Line.End[1], 1e-9)

	arc := primitives[5]
	require.Equal(t, model.KindArc, arc.Kind)
	require.Equal(t, model.LayerDoor, arc.Layer)
	require.Equal(t, opening.Line.Start, arc.Arc.Center)
	require.InDelta(t, 0.9, arc.Arc.Radius, 1e-9)
	// Wall 0 points along +X (angle 0), inward swing starts at +90
	require.InDelta(t, 90.0, arc.Arc.StartAngle, 1e-9)
	require.InDelta(t, 180.0, arc.Arc.EndAngle, 1e-9)
}

func TestSynthesizeDoorOutwardSwing(t *testing.T) {
	room := rectRoom("r")
	room.Doors = []model.Door{
		{WallIndex: 0, Position: 0.5, Width: 0.9, Swing: model.SwingOutward},
	}

	primitives, err := SynthesizeRoom(&room, 0.2)
	require.NoError(t, err)

	arc := primitives[5].Arc
	require.InDelta(t, -90.0, arc.StartAngle, 1e-9)
	require.InDelta(t, 0.0, arc.EndAngle, 1e-9)
}

func TestSynthesizeWindow(t *testing.T) {
	room := rectRoom("r")
	room.Windows = []model.Window{
		{WallIndex: 2, Position: 0.5, Width: 1.5, SillHeight: 0.9},
	}

	primitives, err := SynthesizeRoom(&room, 0.2)
	require.NoError(t, err)
	// 16 wall lines + opening + sill + label
	require.Len(t, primitives, 19)

	windowLines := linesOnLayer(primitives, model.LayerWindow)
	require.Len(t, windowLines, 2)

	// Wall 2 runs (6,4)->(0,4); the opening is centered on (3,4)
	opening := windowLines[0].Line
	require.InDelta(t, 3.75, opening.Start[0], 1e-9)
	require.InDelta(t, 4.0, opening.Start[1], 1e-9)
	require.InDelta(t, 2.25, opening.End[0], 1e-9)
	require.InDelta(t, 4.0, opening.End[1], 1e-9)

	// The sill line sits a fixed perpendicular offset off the opening
	sill := windowLines[1].Line
	require.InDelta(t, 3.95, sill.Start[1], 1e-9)
	require.InDelta(t, 3.95, sill.End[1], 1e-9)
}

func TestSynthesizeFurnitureDefaults(t *testing.T) {
	room := rectRoom("bedroom")
	room.Furniture = []model.Furniture{
		{Type: model.FurnitureBed, Position: model.Position{X: 2, Y: 2}},
	}

	primitives, err := SynthesizeRoom(&room, 0.2)
	require.NoError(t, err)

	footprint := primitives[len(primitives)-1]
	require.Equal(t, model.KindPolyline, footprint.Kind)
	require.Equal(t, model.LayerFurniture, footprint.Layer)
	require.True(t, footprint.Polyline.Closed)
	require.Len(t, footprint.Polyline.Points, 5)

	// Bed default is 2.0 x 1.5, centered on the position
	pts := footprint.Polyline.Points
	require.Equal(t, pts[0], pts[4])
	require.InDelta(t, 1.0, pts[0][0], 1e-9)
	require.InDelta(t, 1.25, pts[0][1], 1e-9)
	require.InDelta(t, 3.0, pts[2][0], 1e-9)
	require.InDelta(t, 2.75, pts[2][1], 1e-9)
}

func TestSynthesizeFurnitureRotationClockwise(t *testing.T) {
	room := rectRoom("study")
	room.Furniture = []model.Furniture{
		{
			Type:     model.FurnitureDesk,
			Position: model.Position{X: 0, Y: 0, Rotation: 90},
		},
	}

	primitives, err := SynthesizeRoom(&room, 0.2)
	require.NoError(t, err)

	pts := primitives[len(primitives)-1].Polyline.Points
	// Desk default is 1.2 x 0.6; corner (-0.6,-0.3) rotated 90 degrees
	// clockwise lands at (-0.3, 0.6)
	require.InDelta(t, -0.3, pts[0][0], 1e-9)
	require.InDelta(t, 0.6, pts[0][1], 1e-9)
}

func TestSynthesizeFurnitureLabel(t *testing.T) {
	room := rectRoom("r")
	room.Furniture = []model.Furniture{
		{Type: model.FurnitureSofa, Position: model.Position{X: 1, Y: 1}, Label: "sofa 1"},
	}

	primitives, err := SynthesizeRoom(&room, 0.2)
	require.NoError(t, err)

	label := primitives[len(primitives)-1]
	require.Equal(t, model.KindText, label.Kind)
	require.Equal(t, "sofa 1", label.Text.Text)
	require.Equal(t, orb.Point{1, 1}, label.Text.Point)
}

func TestSynthesizeAutoClosesRing(t *testing.T) {
	room := model.Room{
		Name: "open",
		Geometry: model.Polygon{
			Coordinates: [][2]float64{{0, 0}, {6, 0}, {6, 4}, {0, 4}},
		},
	}

	primitives, err := SynthesizeRoom(&room, 0.2)
	require.NoError(t, err)
	require.Len(t, primitives, 4*4+1)
}

func TestSynthesizeSkipsZeroLengthSegment(t *testing.T) {
	room := model.Room{
		Name: "degen",
		Geometry: model.Polygon{
			Coordinates: [][2]float64{{0, 0}, {0, 0}, {6, 0}, {6, 4}, {0, 4}, {0, 0}},
		},
	}

	primitives, err := SynthesizeRoom(&room, 0.2)
	require.NoError(t, err)
	// The duplicate vertex contributes no wall
	require.Len(t, linesOnLayer(primitives, model.LayerWall), 16)
}

func TestSynthesizeWallIndexOutOfRange(t *testing.T) {
	room := rectRoom("r")
	room.Doors = []model.Door{{WallIndex: 7, Position: 0.5, Width: 0.9}}

	_, err := SynthesizeRoom(&room, 0.2)
	require.ErrorIs(t, err, ErrWallIndexOutOfRange)

	room = rectRoom("r")
	room.Windows = []model.Window{{WallIndex: -1, Position: 0.5, Width: 0.9}}

	_, err = SynthesizeRoom(&room, 0.2)
	require.ErrorIs(t, err, ErrWallIndexOutOfRange)
}

func TestSynthesizeDefaultThickness(t *testing.T) {
	room := rectRoom("r")
	primitives, err := SynthesizeRoom(&room, 0)
	require.NoError(t, err)

	// Non-positive thickness falls back to the 0.2 m default
	outer1 := primitives[0].Line
	require.InDelta(t, 0.1, outer1.Start[1], 1e-9)
}

func TestOpeningEndpointsSymmetry(t *testing.T) {
	start := orb.Point{1, 1}
	end := orb.Point{5, 4} // length 5

	openingStart, openingEnd := OpeningEndpoints(start, end, 0.3, 1.0)

	// Both endpoints lie on the segment, symmetric around the position point
	center := orb.Point{1 + 0.3*4, 1 + 0.3*3}
	require.InDelta(t, center[0], (openingStart[0]+openingEnd[0])/2, 1e-9)
	require.InDelta(t, center[1], (openingStart[1]+openingEnd[1])/2, 1e-9)
	require.InDelta(t, 1.0, distance(openingStart, openingEnd), 1e-9)

	// Collinear with the wall
	require.InDelta(t, 0.0, perpendicularDistance(start, end, openingStart), 1e-9)
	require.InDelta(t, 0.0, perpendicularDistance(start, end, openingEnd), 1e-9)
}

func TestOpeningEndpointsZeroLengthWall(t *testing.T) {
	p := orb.Point{2, 2}
	s, e := OpeningEndpoints(p, p, 0.5, 1.0)
	require.Equal(t, p, s)
	require.Equal(t, p, e)
}

func TestWallAngle(t *testing.T) {
	require.InDelta(t, 0.0, WallAngle(orb.Point{0, 0}, orb.Point{1, 0}), 1e-9)
	require.InDelta(t, 90.0, WallAngle(orb.Point{0, 0}, orb.Point{0, 1}), 1e-9)
	require.InDelta(t, 180.0, WallAngle(orb.Point{1, 0}, orb.Point{0, 0}), 1e-9)
}
