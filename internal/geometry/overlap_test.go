package geometry

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func square(x, y, size float64) orb.Ring {
	return orb.Ring{
		{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y},
	}
}

func TestIntersectionAreaOffsetSquares(t *testing.T) {
	// Two identical 2x2 squares offset by (1,1) overlap in a 1x1 region
	a := square(0, 0, 2)
	b := square(1, 1, 2)

	require.True(t, Intersects(a, b))
	require.InDelta(t, 1.0, IntersectionArea(a, b), 1e-9)
}

func TestIntersectionDisjoint(t *testing.T) {
	a := square(0, 0, 2)
	b := square(5, 5, 2)

	require.False(t, Intersects(a, b))
	require.Equal(t, 0.0, IntersectionArea(a, b))
}

func TestIntersectionContainment(t *testing.T) {
	outer := square(0, 0, 10)
	inner := square(4, 4, 1)

	require.True(t, Intersects(outer, inner))
	require.True(t, Intersects(inner, outer))
	require.InDelta(t, 1.0, IntersectionArea(outer, inner), 1e-9)
}

func TestIntersectionTouchingEdge(t *testing.T) {
	a := square(0, 0, 2)
	b := square(2, 0, 2)

	// Shared edge means touching, but no overlap area
	require.True(t, Intersects(a, b))
	require.InDelta(t, 0.0, IntersectionArea(a, b), 1e-9)
}

func TestIntersectionIdentical(t *testing.T) {
	a := square(0, 0, 3)
	require.InDelta(t, 9.0, IntersectionArea(a, square(0, 0, 3)), 1e-9)
}

func TestIntersectionDegenerate(t *testing.T) {
	line := orb.Ring{{0, 0}, {2, 2}, {0, 0}}
	a := square(0, 0, 2)

	require.False(t, Intersects(a, line))
	require.Equal(t, 0.0, IntersectionArea(a, line))
}
