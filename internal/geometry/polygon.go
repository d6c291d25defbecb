// Package geometry is the floor-plan geometry engine: stateless polygon
// analysis plus wall/opening/furniture synthesis. All functions are pure and
// safe to call concurrently; degenerate input yields neutral values rather
// than errors (validation is a separate concern, see internal/validate).
package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// degenerateAreaEps is the signed-area threshold below which a polygon is
// treated as zero-area for centroid purposes.
const degenerateAreaEps = 1e-12

// CloseRing returns the ring in closed form (first vertex repeated as last).
// This is the only place closure is enforced; every other function assumes
// either form and normalizes through openRing. The input is never mutated.
func CloseRing(ring orb.Ring) orb.Ring {
	if len(ring) == 0 {
		return ring
	}
	if ring[0] == ring[len(ring)-1] {
		return ring
	}
	closed := make(orb.Ring, len(ring)+1)
	copy(closed, ring)
	closed[len(ring)] = ring[0]
	return closed
}

// openRing strips the closing duplicate vertex if present
func openRing(ring orb.Ring) orb.Ring {
	if len(ring) >= 2 && ring[0] == ring[len(ring)-1] {
		return ring[:len(ring)-1]
	}
	return ring
}

// distinctCount counts distinct vertices of the open ring
func distinctCount(open orb.Ring) int {
	seen := make(map[orb.Point]struct{}, len(open))
	for _, p := range open {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// IsDegenerate reports whether the ring has fewer than 3 distinct vertices
// after removing the closing duplicate
func IsDegenerate(ring orb.Ring) bool {
	return distinctCount(openRing(ring)) < 3
}

// signedArea computes the shoelace sum over the open ring. Positive for
// counterclockwise winding.
func signedArea(open orb.Ring) float64 {
	n := len(open)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += open[i][0] * open[j][1]
		area -= open[j][0] * open[i][1]
	}
	return area / 2
}

// Area returns the unsigned polygon area via the shoelace formula.
// Degenerate input (collinear or fewer than 3 distinct vertices) yields 0.
func Area(ring orb.Ring) float64 {
	open := openRing(ring)
	if distinctCount(open) < 3 {
		return 0
	}
	return math.Abs(signedArea(open))
}

// Perimeter returns the sum of Euclidean edge lengths including the closing
// edge. Degenerate input yields 0.
func Perimeter(ring orb.Ring) float64 {
	open := openRing(ring)
	if distinctCount(open) < 3 {
		return 0
	}
	total := 0.0
	for i := range open {
		j := (i + 1) % len(open)
		total += distance(open[i], open[j])
	}
	return total
}

// Centroid returns the area-weighted polygon centroid. When the polygon has
// near-zero area the vertex average is returned instead.
func Centroid(ring orb.Ring) orb.Point {
	open := openRing(ring)
	if len(open) == 0 {
		return orb.Point{}
	}

	area := signedArea(open)
	if math.Abs(area) < degenerateAreaEps {
		return vertexAverage(open)
	}

	var cx, cy float64
	for i := range open {
		j := (i + 1) % len(open)
		cross := open[i][0]*open[j][1] - open[j][0]*open[i][1]
		cx += (open[i][0] + open[j][0]) * cross
		cy += (open[i][1] + open[j][1]) * cross
	}
	factor := 1.0 / (6.0 * area)
	return orb.Point{cx * factor, cy * factor}
}

func vertexAverage(open orb.Ring) orb.Point {
	var sx, sy float64
	for _, p := range open {
		sx += p[0]
		sy += p[1]
	}
	n := float64(len(open))
	return orb.Point{sx / n, sy / n}
}

// BoundingBox returns the min/max extent of the ring
func BoundingBox(ring orb.Ring) orb.Bound {
	if len(ring) == 0 {
		return orb.Bound{}
	}
	return ring.Bound()
}

// ContainsPoint reports whether the point lies inside the polygon using ray
// casting. Points exactly on the boundary count as inside.
func ContainsPoint(ring orb.Ring, pt orb.Point) bool {
	open := openRing(ring)
	if distinctCount(open) < 3 {
		return false
	}

	// Boundary check first so the crossing count cannot misclassify
	// on-edge points.
	for i := range open {
		j := (i + 1) % len(open)
		if onSegment(open[i], open[j], pt) {
			return true
		}
	}

	inside := false
	for i := range open {
		j := (i + 1) % len(open)
		a, b := open[i], open[j]
		if (a[1] > pt[1]) != (b[1] > pt[1]) {
			xCross := a[0] + (pt[1]-a[1])/(b[1]-a[1])*(b[0]-a[0])
			if pt[0] < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// onSegment reports whether p lies on the segment ab within a small epsilon
func onSegment(a, b, p orb.Point) bool {
	const eps = 1e-9
	cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
	if math.Abs(cross) > eps {
		return false
	}
	dot := (p[0]-a[0])*(b[0]-a[0]) + (p[1]-a[1])*(b[1]-a[1])
	if dot < -eps {
		return false
	}
	lenSq := (b[0]-a[0])*(b[0]-a[0]) + (b[1]-a[1])*(b[1]-a[1])
	return dot <= lenSq+eps
}

// Simplify removes vertices whose perpendicular deviation from the line
// through their neighbors is at most tolerance. The result is always closed
// and never has fewer than 3 distinct vertices; degenerate input is returned
// unchanged. Used by export consumers for size control, not rendering.
func Simplify(ring orb.Ring, tolerance float64) orb.Ring {
	open := openRing(ring)
	if distinctCount(open) < 3 {
		return ring
	}

	kept := make(orb.Ring, 0, len(open))
	for i := range open {
		prev := open[(i-1+len(open))%len(open)]
		next := open[(i+1)%len(open)]
		if perpendicularDistance(prev, next, open[i]) > tolerance {
			kept = append(kept, open[i])
		}
	}

	if distinctCount(kept) < 3 {
		return CloseRing(open)
	}
	return CloseRing(kept)
}

// perpendicularDistance returns the distance from p to the infinite line
// through a and b. Coincident a and b degrade to point distance.
func perpendicularDistance(a, b, p orb.Point) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	length := math.Hypot(dx, dy)
	if length == 0 {
		return distance(a, p)
	}
	return math.Abs(dy*p[0]-dx*p[1]+b[0]*a[1]-b[1]*a[0]) / length
}

func distance(a, b orb.Point) float64 {
	return math.Hypot(b[0]-a[0], b[1]-a[1])
}
