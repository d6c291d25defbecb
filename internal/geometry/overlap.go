package geometry

import (
	polyclip "github.com/akavel/polyclip-go"
	"github.com/paulmach/orb"
)

// Intersects reports whether two polygons share any point: overlapping
// interiors, one containing the other, or merely touching boundaries.
// Degenerate input never intersects anything.
func Intersects(a, b orb.Ring) bool {
	if IsDegenerate(a) || IsDegenerate(b) {
		return false
	}

	// Cheap rejection on bounding boxes before the precise checks.
	if !BoundingBox(a).Intersects(BoundingBox(b)) {
		return false
	}

	openA := openRing(a)
	openB := openRing(b)

	// Containment in either direction (covers one polygon fully inside
	// the other, where no edges cross).
	if ContainsPoint(b, openA[0]) || ContainsPoint(a, openB[0]) {
		return true
	}

	for i := range openA {
		a1 := openA[i]
		a2 := openA[(i+1)%len(openA)]
		for j := range openB {
			b1 := openB[j]
			b2 := openB[(j+1)%len(openB)]
			if segmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// IntersectionArea returns the area of the overlap region of two polygons,
// 0 if they are disjoint or either is degenerate.
func IntersectionArea(a, b orb.Ring) float64 {
	if IsDegenerate(a) || IsDegenerate(b) {
		return 0
	}

	subject := polyclip.Polygon{toContour(a)}
	clipping := polyclip.Polygon{toContour(b)}

	result := subject.Construct(polyclip.INTERSECTION, clipping)

	total := 0.0
	for _, contour := range result {
		if len(contour) < 3 {
			continue
		}
		ring := make(orb.Ring, len(contour))
		for i, p := range contour {
			ring[i] = orb.Point{p.X, p.Y}
		}
		total += Area(ring)
	}
	return total
}

// toContour converts the open form of a ring into a polyclip contour
func toContour(ring orb.Ring) polyclip.Contour {
	open := openRing(ring)
	contour := make(polyclip.Contour, len(open))
	for i, p := range open {
		contour[i] = polyclip.Point{X: p[0], Y: p[1]}
	}
	return contour
}

// segmentsIntersect reports whether segments p1p2 and p3p4 share a point,
// including endpoint touches and collinear overlap
func segmentsIntersect(p1, p2, p3, p4 orb.Point) bool {
	d1 := orientation(p3, p4, p1)
	d2 := orientation(p3, p4, p2)
	d3 := orientation(p1, p2, p3)
	d4 := orientation(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}
	return false
}

// orientation returns the signed cross product of ab x ap
func orientation(a, b, p orb.Point) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}
