package geometry

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

// rect6x4 is the reference rectangular room used across the suite
func rect6x4() orb.Ring {
	return orb.Ring{{0, 0}, {6, 0}, {6, 4}, {0, 4}, {0, 0}}
}

// rotateRing cyclically rotates the open vertex list by n and re-closes
func rotateRing(ring orb.Ring, n int) orb.Ring {
	open := ring[:len(ring)-1]
	rotated := make(orb.Ring, 0, len(open))
	for i := range open {
		rotated = append(rotated, open[(i+n)%len(open)])
	}
	return CloseRing(rotated)
}

// reverseRing reverses the open vertex order and re-closes
func reverseRing(ring orb.Ring) orb.Ring {
	open := ring[:len(ring)-1]
	reversed := make(orb.Ring, len(open))
	for i, p := range open {
		reversed[len(open)-1-i] = p
	}
	return CloseRing(reversed)
}

func TestAreaRectangle(t *testing.T) {
	require.InDelta(t, 24.0, Area(rect6x4()), 1e-9)
}

func TestAreaInvariantUnderRotationAndReversal(t *testing.T) {
	ring := orb.Ring{{0, 0}, {5, 0}, {7, 3}, {4, 6}, {-1, 2}, {0, 0}}
	want := Area(ring)
	require.Greater(t, want, 0.0)

	for n := 1; n < 5; n++ {
		require.InDelta(t, want, Area(rotateRing(ring, n)), 1e-9,
			"area changed after cyclic rotation by %d", n)
	}
	require.InDelta(t, want, Area(reverseRing(ring)), 1e-9,
		"area changed after vertex order reversal")
}

func TestAreaDegenerate(t *testing.T) {
	require.Equal(t, 0.0, Area(orb.Ring{}))
	require.Equal(t, 0.0, Area(orb.Ring{{1, 1}}))
	require.Equal(t, 0.0, Area(orb.Ring{{0, 0}, {1, 1}, {0, 0}}))
	// Three distinct but collinear vertices
	require.Equal(t, 0.0, Area(orb.Ring{{0, 0}, {1, 1}, {2, 2}, {0, 0}}))
}

func TestPerimeterRectangle(t *testing.T) {
	require.InDelta(t, 20.0, Perimeter(rect6x4()), 1e-9)
}

func TestPerimeterMatchesEdgeSum(t *testing.T) {
	ring := CloseRing(orb.Ring{{0, 0}, {5, 0}, {7, 3}, {4, 6}, {-1, 2}})

	sum := 0.0
	for i := 0; i+1 < len(ring); i++ {
		sum += distance(ring[i], ring[i+1])
	}
	require.InDelta(t, sum, Perimeter(ring), 1e-9)
}

func TestCentroidRectangle(t *testing.T) {
	c := Centroid(rect6x4())
	require.InDelta(t, 3.0, c[0], 1e-9)
	require.InDelta(t, 2.0, c[1], 1e-9)
}

func TestCentroidZeroAreaFallsBackToVertexAverage(t *testing.T) {
	c := Centroid(orb.Ring{{0, 0}, {2, 2}, {4, 4}, {0, 0}})
	require.InDelta(t, 2.0, c[0], 1e-9)
	require.InDelta(t, 2.0, c[1], 1e-9)
}

func TestBoundingBox(t *testing.T) {
	bound := BoundingBox(orb.Ring{{1, 2}, {5, -1}, {3, 7}, {1, 2}})
	require.Equal(t, orb.Point{1, -1}, bound.Min)
	require.Equal(t, orb.Point{5, 7}, bound.Max)
}

func TestContainsPoint(t *testing.T) {
	ring := rect6x4()

	require.True(t, ContainsPoint(ring, orb.Point{3, 2}))
	require.False(t, ContainsPoint(ring, orb.Point{7, 2}))
	require.False(t, ContainsPoint(ring, orb.Point{3, -0.5}))

	// Boundary counts as inside: edge midpoint and vertex
	require.True(t, ContainsPoint(ring, orb.Point{3, 0}))
	require.True(t, ContainsPoint(ring, orb.Point{0, 0}))
	require.True(t, ContainsPoint(ring, orb.Point{6, 4}))
}

func TestContainsPointConcave(t *testing.T) {
	// L-shaped room
	ring := CloseRing(orb.Ring{{0, 0}, {4, 0}, {4, 2}, {2, 2}, {2, 4}, {0, 4}})

	require.True(t, ContainsPoint(ring, orb.Point{1, 3}))
	require.True(t, ContainsPoint(ring, orb.Point{3, 1}))
	require.False(t, ContainsPoint(ring, orb.Point{3, 3}))
}

func TestContainsPointDegenerate(t *testing.T) {
	require.False(t, ContainsPoint(orb.Ring{{0, 0}, {1, 1}, {0, 0}}, orb.Point{0, 0}))
}

func TestSimplifyZeroToleranceRoundTrip(t *testing.T) {
	ring := CloseRing(orb.Ring{{0, 0}, {5, 0}, {7, 3}, {4, 6}, {-1, 2}})
	simplified := Simplify(ring, 0)

	require.Equal(t, ring, simplified)
	require.InDelta(t, Area(ring), Area(simplified), 1e-9)
	require.InDelta(t, Perimeter(ring), Perimeter(simplified), 1e-9)
}

func TestSimplifyRemovesCollinearVertex(t *testing.T) {
	ring := orb.Ring{{0, 0}, {3, 0}, {6, 0}, {6, 4}, {0, 4}, {0, 0}}
	simplified := Simplify(ring, 0)

	require.Len(t, simplified, 5)
	require.NotContains(t, simplified, orb.Point{3, 0})
	require.InDelta(t, 24.0, Area(simplified), 1e-9)
	require.InDelta(t, 20.0, Perimeter(simplified), 1e-9)
}

func TestSimplifyWithinTolerance(t *testing.T) {
	// (3, 0.01) deviates 0.01 from the chord between its neighbors
	ring := orb.Ring{{0, 0}, {3, 0.01}, {6, 0}, {6, 4}, {0, 4}, {0, 0}}

	require.Len(t, Simplify(ring, 0.05), 5)
	require.Len(t, Simplify(ring, 0.001), 6)
}

func TestSimplifyNeverDropsBelowTriangle(t *testing.T) {
	// Near-degenerate sliver: aggressive tolerance must not destroy it
	ring := CloseRing(orb.Ring{{0, 0}, {4, 0.01}, {8, 0}})
	simplified := Simplify(ring, 10)

	require.GreaterOrEqual(t, distinctCount(openRing(simplified)), 3)
	require.Equal(t, simplified[0], simplified[len(simplified)-1])
}

func TestCloseRing(t *testing.T) {
	open := orb.Ring{{0, 0}, {6, 0}, {6, 4}, {0, 4}}
	closed := CloseRing(open)

	require.Len(t, closed, 5)
	require.Equal(t, closed[0], closed[len(closed)-1])

	// Already-closed input is returned as is
	require.Equal(t, closed, CloseRing(closed))

	// The input stays untouched
	require.Len(t, open, 4)
}

func TestIsDegenerate(t *testing.T) {
	require.True(t, IsDegenerate(orb.Ring{}))
	require.True(t, IsDegenerate(orb.Ring{{0, 0}, {1, 0}, {0, 0}}))
	require.False(t, IsDegenerate(rect6x4()))
}
