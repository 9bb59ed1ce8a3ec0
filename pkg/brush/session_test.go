package brush

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rtcontour/pkg/geometry"
)

func testSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(testEngine(t), nil)
}

func TestSessionDrawCommit(t *testing.T) {
	s := testSession(t)
	require.Equal(t, Idle, s.State())

	s.PrimaryDown(geometry.Pt(50, 50), false)
	require.Equal(t, Drawing, s.State())
	s.PointerMove(geometry.Pt(55, 50))
	s.PrimaryUp()

	assert.Equal(t, Idle, s.State())
	assert.Len(t, s.Engine().StructureSet().Structures[0].Contours, 1)
}

// TestMutualExclusion feeds interleaved primary/secondary sequences
// and asserts only one interaction is ever active: secondary events
// during Drawing are ignored, primary events during Resizing are
// ignored.
func TestMutualExclusion(t *testing.T) {
	s := testSession(t)

	// Secondary press during a stroke must not enter Resizing, and
	// its release must not break the stroke.
	s.PrimaryDown(geometry.Pt(50, 50), false)
	radius := s.Engine().Radius()
	s.SecondaryDown(geometry.Pt(60, 60))
	assert.Equal(t, Drawing, s.State())
	s.PointerMove(geometry.Pt(55, 55))
	s.SecondaryUp()
	assert.Equal(t, Drawing, s.State())
	assert.Equal(t, radius, s.Engine().Radius())
	s.PrimaryUp()
	assert.Equal(t, Idle, s.State())

	// Primary press during a resize must not start a stroke.
	contours := len(s.Engine().StructureSet().Structures[0].Contours)
	s.SecondaryDown(geometry.Pt(60, 60))
	assert.Equal(t, Resizing, s.State())
	s.PrimaryDown(geometry.Pt(50, 50), false)
	assert.Equal(t, Resizing, s.State())
	assert.False(t, s.Engine().Drawing())
	s.PrimaryUp()
	assert.Equal(t, Resizing, s.State())
	s.SecondaryUp()
	assert.Equal(t, Idle, s.State())
	assert.Len(t, s.Engine().StructureSet().Structures[0].Contours, contours)
}

// TestCommitOnLeave: pointer leaving the canvas mid-stroke commits
// with the captured path instead of leaving the state stuck.
func TestCommitOnLeave(t *testing.T) {
	s := testSession(t)
	s.PrimaryDown(geometry.Pt(50, 50), false)
	s.PointerMove(geometry.Pt(70, 50))
	s.PointerLeave()

	assert.Equal(t, Idle, s.State())
	assert.Len(t, s.Engine().StructureSet().Structures[0].Contours, 1)

	// Leaving during a resize just ends the resize.
	s.SecondaryDown(geometry.Pt(10, 80))
	s.PointerLeave()
	assert.Equal(t, Idle, s.State())

	// Leaving while idle is a no-op.
	s.PointerLeave()
	assert.Equal(t, Idle, s.State())
}

func TestResizeDrag(t *testing.T) {
	s := testSession(t)
	base := s.Engine().Radius()

	s.SecondaryDown(geometry.Pt(40, 80))
	s.PointerMove(geometry.Pt(40, 30)) // drag up 50px -> +5mm
	s.SecondaryUp()

	assert.InDelta(t, base+5, s.Engine().Radius(), 1e-9)
}

func TestWheelResize(t *testing.T) {
	s := testSession(t)
	base := s.Engine().Radius()

	s.Wheel(4)
	assert.InDelta(t, base+2, s.Engine().Radius(), 1e-9)

	// Wheel during a stroke is ignored: the footprint radius stays
	// locked for the gesture.
	s.PrimaryDown(geometry.Pt(50, 50), false)
	s.Wheel(10)
	assert.InDelta(t, base+2, s.Engine().Radius(), 1e-9)
	s.PrimaryUp()
}

// TestNoSelectionNoOps: with no active structure every interaction
// leaves the session Idle and the set untouched.
func TestNoSelectionNoOps(t *testing.T) {
	e := NewEngine(testSet(), Options{}, nil)
	e.SetTransformer(testTransformer(t))
	s := NewSession(e, nil)

	var strokeErr error
	s.OnStrokeError(func(err error) { strokeErr = err })

	s.PrimaryDown(geometry.Pt(50, 50), false)
	assert.Equal(t, Idle, s.State())
	assert.ErrorIs(t, strokeErr, ErrNoStructureSelected)

	s.SecondaryDown(geometry.Pt(50, 50))
	assert.Equal(t, Idle, s.State())

	r := e.Radius()
	s.Wheel(3)
	assert.Equal(t, r, e.Radius())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "drawing", Drawing.String())
	assert.Equal(t, "resizing", Resizing.String())
}
