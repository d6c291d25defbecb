package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"

	"planforge/internal/model"
)

const (
	// DefaultWallThickness is the wall thickness in meters used when the
	// caller does not supply one.
	DefaultWallThickness = 0.2

	// sillOffset is the perpendicular distance of the window sill line
	// from the opening line, representing the far pane.
	sillOffset = 0.05

	roomLabelHeight      = 0.3
	furnitureLabelHeight = 0.2
)

// ErrWallIndexOutOfRange is returned when an opening references a wall
// segment the room polygon does not have.
var ErrWallIndexOutOfRange = errors.New("wall index out of range")

// SynthesizeRoom produces the drawable primitives for one room: offset wall
// line pairs with end caps, door openings with swing arcs, window openings
// with sill lines, a room label at the centroid and rotated furniture
// footprints. The output order is fixed: walls with their openings in
// polygon edge order, then the room label, then furniture in input order.
// The input room is only read, never retained.
//
// A non-positive thickness falls back to DefaultWallThickness. The only
// structured failure is an opening whose wall index does not address an
// existing segment; every other irregularity degrades per the engine's
// degenerate-input policy.
func SynthesizeRoom(room *model.Room, thickness float64) ([]model.Primitive, error) {
	if thickness <= 0 {
		thickness = DefaultWallThickness
	}

	ring := CloseRing(room.Geometry.Ring())
	segments := len(ring) - 1
	if segments < 1 {
		segments = 0
	}

	doorsByWall := make(map[int][]model.Door, len(room.Doors))
	for _, door := range room.Doors {
		if door.WallIndex < 0 || door.WallIndex >= segments {
			return nil, fmt.Errorf("room %q: door on wall %d of %d: %w",
				room.Name, door.WallIndex, segments, ErrWallIndexOutOfRange)
		}
		doorsByWall[door.WallIndex] = append(doorsByWall[door.WallIndex], door)
	}

	windowsByWall := make(map[int][]model.Window, len(room.Windows))
	for _, window := range room.Windows {
		if window.WallIndex < 0 || window.WallIndex >= segments {
			return nil, fmt.Errorf("room %q: window on wall %d of %d: %w",
				room.Name, window.WallIndex, segments, ErrWallIndexOutOfRange)
		}
		windowsByWall[window.WallIndex] = append(windowsByWall[window.WallIndex], window)
	}

	primitives := make([]model.Primitive, 0, 4*segments+2)

	for i := 0; i < segments; i++ {
		start, end := ring[i], ring[i+1]
		if start == end {
			// Zero-length segment: no wall, and any opening placed on
			// it has no direction to follow.
			continue
		}

		primitives = append(primitives, synthesizeWall(start, end, thickness)...)

		for _, door := range doorsByWall[i] {
			primitives = append(primitives, synthesizeDoor(start, end, door)...)
		}
		for _, window := range windowsByWall[i] {
			primitives = append(primitives, synthesizeWindow(start, end, window)...)
		}
	}

	primitives = append(primitives,
		model.NewText(model.LayerText, Centroid(ring), room.Name, roomLabelHeight))

	for _, item := range room.Furniture {
		primitives = append(primitives, synthesizeFurniture(item)...)
	}

	return primitives, nil
}

// synthesizeWall emits the two offset boundary lines and the two end caps
// of a single wall segment
func synthesizeWall(start, end orb.Point, thickness float64) []model.Primitive {
	perp := leftPerpendicular(start, end).Mul(thickness / 2)

	outer1Start := offset(start, perp)
	outer1End := offset(end, perp)
	outer2Start := offset(start, perp.Mul(-1))
	outer2End := offset(end, perp.Mul(-1))

	return []model.Primitive{
		model.NewLine(model.LayerWall, outer1Start, outer1End),
		model.NewLine(model.LayerWall, outer2Start, outer2End),
		model.NewLine(model.LayerWall, outer1Start, outer2Start),
		model.NewLine(model.LayerWall, outer1End, outer2End),
	}
}

// synthesizeDoor emits the trimmed opening line plus a 90 degree swing arc
// pivoting on the opening's start point
func synthesizeDoor(start, end orb.Point, door model.Door) []model.Primitive {
	openingStart, openingEnd := OpeningEndpoints(start, end, door.Position, door.Width)

	swingStart := WallAngle(start, end)
	if door.Swing == model.SwingInward {
		swingStart += 90
	} else {
		swingStart -= 90
	}

	return []model.Primitive{
		model.NewLine(model.LayerDoor, openingStart, openingEnd),
		model.NewArc(model.LayerDoor, openingStart, door.Width, swingStart, swingStart+90),
	}
}

// synthesizeWindow emits the trimmed opening line plus the offset sill line
func synthesizeWindow(start, end orb.Point, window model.Window) []model.Primitive {
	openingStart, openingEnd := OpeningEndpoints(start, end, window.Position, window.Width)

	perp := leftPerpendicular(start, end).Mul(sillOffset)
	sillStart := offset(openingStart, perp)
	sillEnd := offset(openingEnd, perp)

	return []model.Primitive{
		model.NewLine(model.LayerWindow, openingStart, openingEnd),
		model.NewLine(model.LayerWindow, sillStart, sillEnd),
	}
}

// synthesizeFurniture emits the rotated rectangular footprint and, when a
// label was supplied, a text anchor at the furniture position
func synthesizeFurniture(item model.Furniture) []model.Primitive {
	dims := item.Resolve()
	halfW := dims.Width / 2
	halfD := dims.Depth / 2

	corners := []r2.Point{
		{X: -halfW, Y: -halfD},
		{X: halfW, Y: -halfD},
		{X: halfW, Y: halfD},
		{X: -halfW, Y: halfD},
	}

	// Rotation is clockwise in degrees, so the angle is negated for the
	// standard counterclockwise rotation matrix.
	theta := -item.Position.Rotation * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)

	ring := make([]orb.Point, 0, len(corners)+1)
	for _, c := range corners {
		ring = append(ring, orb.Point{
			c.X*cos - c.Y*sin + item.Position.X,
			c.X*sin + c.Y*cos + item.Position.Y,
		})
	}
	ring = append(ring, ring[0])

	primitives := []model.Primitive{
		model.NewPolyline(model.LayerFurniture, ring, true),
	}
	if item.Label != "" {
		at := orb.Point{item.Position.X, item.Position.Y}
		primitives = append(primitives,
			model.NewText(model.LayerText, at, item.Label, furnitureLabelHeight))
	}
	return primitives
}

// OpeningEndpoints returns the two endpoints of an opening of the given
// width centered at the fractional position along the wall segment. The
// endpoints are symmetric around the position point; a width larger than
// the segment produces endpoints past the wall's own ends, which the engine
// does not clip (the validator reports it instead). A zero-length segment
// yields the segment's own endpoints.
func OpeningEndpoints(start, end orb.Point, position, width float64) (orb.Point, orb.Point) {
	dir := r2.Point{X: end[0] - start[0], Y: end[1] - start[1]}
	length := dir.Norm()
	if length == 0 {
		return start, end
	}

	unit := dir.Mul(1 / length)
	center := r2.Point{X: start[0], Y: start[1]}.Add(dir.Mul(position))
	half := unit.Mul(width / 2)

	openingStart := center.Sub(half)
	openingEnd := center.Add(half)
	return orb.Point{openingStart.X, openingStart.Y}, orb.Point{openingEnd.X, openingEnd.Y}
}

// WallAngle returns the direction angle of a wall segment in degrees,
// counterclockwise from the +X axis
func WallAngle(start, end orb.Point) float64 {
	return math.Atan2(end[1]-start[1], end[0]-start[0]) * 180 / math.Pi
}

// leftPerpendicular returns the unit left-hand perpendicular of the segment
// direction. Returns the zero vector for a zero-length segment.
func leftPerpendicular(start, end orb.Point) r2.Point {
	dir := r2.Point{X: end[0] - start[0], Y: end[1] - start[1]}
	length := dir.Norm()
	if length == 0 {
		return r2.Point{}
	}
	return dir.Ortho().Mul(1 / length)
}

func offset(p orb.Point, by r2.Point) orb.Point {
	return orb.Point{p[0] + by.X, p[1] + by.Y}
}
