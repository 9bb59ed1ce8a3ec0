package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircle(t *testing.T) {
	c := Circle(Pt(2, -3), 10, 32)
	require.Len(t, c, 32)

	// Every vertex sits on the radius and the center is contained.
	for _, p := range c {
		assert.InDelta(t, 10.0, p.Dist(Pt(2, -3)), 1e-9)
	}
	assert.True(t, c.Contains(Pt(2, -3)))

	// The inscribed area approaches pi*r^2 from below.
	assert.Greater(t, c.Area(), 0.95*math.Pi*100)
	assert.Less(t, c.Area(), math.Pi*100)
}

func TestCircleDefaults(t *testing.T) {
	assert.Len(t, Circle(Pt(0, 0), 1, 0), DefaultSegments)
	assert.Nil(t, Circle(Pt(0, 0), 0, 32))
	assert.Nil(t, Circle(Pt(0, 0), -1, 32))
}

// TestStrokeSinglePoint verifies the degenerate case: a click without
// movement paints a circle.
func TestStrokeSinglePoint(t *testing.T) {
	s := Stroke([]Point{Pt(5, 5)}, 3, 32)
	require.Len(t, s, 32)
	for _, p := range s {
		assert.InDelta(t, 3.0, p.Dist(Pt(5, 5)), 1e-9)
	}
}

func TestStrokeCapsule(t *testing.T) {
	// Horizontal drag from (0,0) to (20,0) with radius 2: the ribbon
	// must contain every path point and points within the radius of
	// the segment, and exclude points clearly beyond it.
	s := Stroke([]Point{Pt(0, 0), Pt(10, 0), Pt(20, 0)}, 2, 32)
	require.True(t, s.Valid())

	for _, p := range []Point{Pt(0, 0), Pt(10, 0), Pt(20, 0), Pt(5, 1.5), Pt(15, -1.5), Pt(-1.5, 0), Pt(21.5, 0)} {
		assert.True(t, s.Contains(p), "expected %v inside stroke footprint", p)
	}
	for _, p := range []Point{Pt(10, 3), Pt(10, -3), Pt(-3, 0), Pt(23, 0)} {
		assert.False(t, s.Contains(p), "expected %v outside stroke footprint", p)
	}

	// Capsule area: rectangle 40x... length 20 * width 4 plus the two
	// half-discs, within the polygonal approximation error.
	want := 20*4 + math.Pi*4
	assert.InDelta(t, want, s.Area(), 0.05*want)
}

func TestStrokeDuplicatePoints(t *testing.T) {
	// Repeated pointer positions (pointer held still) must not break
	// tangent computation.
	s := Stroke([]Point{Pt(0, 0), Pt(0, 0), Pt(10, 0), Pt(10, 0)}, 2, 32)
	require.True(t, s.Valid())
	assert.True(t, s.Contains(Pt(5, 0)))
}

func TestStrokeEmptyPath(t *testing.T) {
	assert.Nil(t, Stroke(nil, 2, 32))
	assert.Nil(t, Stroke([]Point{Pt(0, 0)}, 0, 32))
}
