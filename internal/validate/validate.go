// Package validate checks design specifications before synthesis. The
// geometry engine itself tolerates degenerate input; this package is where
// spec-level violations are surfaced to the caller as an aggregated list.
package validate

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/paulmach/orb"

	"planforge/internal/geometry"
	"planforge/internal/model"
)

var (
	// ErrUnclosedPolygon flags a room ring whose first and last vertex differ
	ErrUnclosedPolygon = errors.New("polygon is not closed")
	// ErrTooFewVertices flags a ring with fewer than 3 distinct vertices
	ErrTooFewVertices = errors.New("polygon has fewer than 3 distinct vertices")
	// ErrZeroLengthWall flags two equal consecutive vertices
	ErrZeroLengthWall = errors.New("zero-length wall segment")
	// ErrWallIndexOutOfRange flags an opening addressing a missing segment
	ErrWallIndexOutOfRange = errors.New("wall index out of range")
	// ErrPositionOutOfRange flags an opening position outside [0,1]
	ErrPositionOutOfRange = errors.New("opening position outside [0,1]")
	// ErrOpeningTooWide flags an opening wider than its wall segment
	ErrOpeningTooWide = errors.New("opening width exceeds wall segment length")
	// ErrOverlappingOpenings flags two openings sharing wall space
	ErrOverlappingOpenings = errors.New("overlapping openings on one wall segment")
)

// Errors aggregates every violation found in one validation pass
type Errors []error

func (e Errors) Error() string {
	messages := make([]string, len(e))
	for i, err := range e {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "; ")
}

// Messages returns the violations as plain strings for API responses
func (e Errors) Messages() []string {
	messages := make([]string, len(e))
	for i, err := range e {
		messages[i] = err.Error()
	}
	return messages
}

// opening is the wall-interval view of a door or window
type opening struct {
	kind  string
	index int
	start float64
	end   float64
}

// DesignSpec validates every floor of the specification and returns the
// full list of violations, empty when the spec is clean. Synthesis must not
// be invoked for a spec with a non-empty result.
func DesignSpec(spec *model.DesignSpec) []error {
	var issues []error
	for i := range spec.Building.Floors {
		issues = append(issues, Floor(&spec.Building.Floors[i])...)
	}
	return issues
}

// Floor validates all rooms of one floor
func Floor(floor *model.Floor) []error {
	var issues []error
	for i := range floor.Rooms {
		issues = append(issues, Room(&floor.Rooms[i])...)
	}
	return issues
}

// Room validates one room: ring shape, then every opening against the ring
func Room(room *model.Room) []error {
	var issues []error
	ring := room.Geometry.Ring()

	if len(ring) >= 2 && ring[0] != ring[len(ring)-1] {
		issues = append(issues, fmt.Errorf("room %q: first %v != last %v: %w",
			room.Name, ring[0], ring[len(ring)-1], ErrUnclosedPolygon))
	}
	if geometry.IsDegenerate(ring) {
		issues = append(issues, fmt.Errorf("room %q: %w", room.Name, ErrTooFewVertices))
	}

	closed := geometry.CloseRing(ring)
	for i := 0; i+1 < len(closed); i++ {
		if closed[i] == closed[i+1] {
			issues = append(issues, fmt.Errorf("room %q: segment %d: %w",
				room.Name, i, ErrZeroLengthWall))
		}
	}

	segments := len(closed) - 1
	byWall := make(map[int][]opening)

	for i, door := range room.Doors {
		issues = append(issues, checkOpening(room.Name, "door", i, closed, segments,
			door.WallIndex, door.Position, door.Width, byWall)...)
	}
	for i, window := range room.Windows {
		issues = append(issues, checkOpening(room.Name, "window", i, closed, segments,
			window.WallIndex, window.Position, window.Width, byWall)...)
	}

	issues = append(issues, checkOverlaps(room.Name, byWall)...)
	return issues
}

// checkOpening validates one door/window record and, when it addresses a
// real segment, registers its wall interval for the overlap pass
func checkOpening(roomName, kind string, index int, ring orb.Ring, segments,
	wallIndex int, position, width float64, byWall map[int][]opening) []error {

	var issues []error

	if wallIndex < 0 || wallIndex >= segments {
		issues = append(issues, fmt.Errorf("room %q: %s %d on wall %d of %d: %w",
			roomName, kind, index, wallIndex, segments, ErrWallIndexOutOfRange))
		return issues
	}
	if position < 0 || position > 1 {
		issues = append(issues, fmt.Errorf("room %q: %s %d position %.3f: %w",
			roomName, kind, index, position, ErrPositionOutOfRange))
	}

	start, end := ring[wallIndex], ring[wallIndex+1]
	length := math.Hypot(end[0]-start[0], end[1]-start[1])
	if width > length {
		issues = append(issues, fmt.Errorf("room %q: %s %d width %.3f on wall %d of length %.3f: %w",
			roomName, kind, index, width, wallIndex, length, ErrOpeningTooWide))
	}

	center := position * length
	byWall[wallIndex] = append(byWall[wallIndex], opening{
		kind:  kind,
		index: index,
		start: center - width/2,
		end:   center + width/2,
	})
	return issues
}

// checkOverlaps flags pairs of openings whose wall intervals intersect.
// The geometry engine never resolves these; they are a spec defect.
func checkOverlaps(roomName string, byWall map[int][]opening) []error {
	var issues []error

	walls := make([]int, 0, len(byWall))
	for wall := range byWall {
		walls = append(walls, wall)
	}
	sort.Ints(walls)

	for _, wall := range walls {
		openings := byWall[wall]
		sort.Slice(openings, func(i, j int) bool {
			return openings[i].start < openings[j].start
		})
		for i := 1; i < len(openings); i++ {
			prev, cur := openings[i-1], openings[i]
			if cur.start < prev.end {
				issues = append(issues, fmt.Errorf("room %q: wall %d: %s %d and %s %d: %w",
					roomName, wall, prev.kind, prev.index, cur.kind, cur.index,
					ErrOverlappingOpenings))
			}
		}
	}
	return issues
}
