package brush

import (
	"context"
	"log/slog"

	"rtcontour/pkg/geometry"
)

// State is the interactive input state.
type State int

const (
	// Idle: no pointer interaction in progress.
	Idle State = iota
	// Drawing: primary button held, stroke path being captured.
	Drawing
	// Resizing: secondary button held, brush radius being adjusted.
	Resizing
)

func (s State) String() string {
	switch s {
	case Drawing:
		return "drawing"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// resizeGain converts vertical drag pixels to mm of brush radius.
const resizeGain = 0.1

// wheelStep is the radius change in mm per wheel notch.
const wheelStep = 0.5

// Session is the pointer-lifecycle state machine in front of an
// Engine. Drawing and Resizing are mutually exclusive: events for the
// other interaction are ignored while one is active, and
// pointer-leave always resolves an active stroke so no state can get
// stuck. With no structure selected every interaction is a no-op.
//
// Session expects to be driven from a single event-dispatch goroutine,
// like the Engine beneath it.
type Session struct {
	engine *Engine
	logger *slog.Logger

	state        State
	resizeStartY float64
	resizeBase   float64

	onError func(error)
}

// NewSession wraps an Engine. logger may be nil.
func NewSession(engine *Engine, logger *slog.Logger) *Session {
	if logger == nil {
		logger = nopLogger()
	}
	return &Session{engine: engine, logger: logger}
}

// State returns the current interaction state.
func (s *Session) State() State {
	return s.state
}

// Engine returns the wrapped engine.
func (s *Session) Engine() *Engine {
	return s.engine
}

// OnStrokeError registers a callback for dropped strokes, so the host
// can surface a transient notification. Errors are otherwise only
// logged; the store is always left in its last valid state.
func (s *Session) OnStrokeError(fn func(error)) {
	s.onError = fn
}

// PrimaryDown starts a stroke. Ignored while Resizing or when no
// structure is selected.
func (s *Session) PrimaryDown(pt geometry.Point, invert bool) {
	if s.state != Idle {
		return
	}
	if err := s.engine.BeginStroke(pt, invert); err != nil {
		s.fail(err)
		return
	}
	s.state = Drawing
}

// PointerMove extends an active stroke or adjusts the radius during a
// resize drag. While Idle it only moves the preview cursor.
func (s *Session) PointerMove(pt geometry.Point) Cursor {
	switch s.state {
	case Drawing:
		return s.engine.ExtendStroke(pt)
	case Resizing:
		s.engine.SetRadius(s.resizeBase + (s.resizeStartY-pt.Y)*resizeGain)
		return Cursor{Center: pt, Radius: s.engine.canvasRadius(), Mode: s.engine.Mode()}
	default:
		return s.engine.ExtendStroke(pt)
	}
}

// PrimaryUp commits the active stroke. Ignored in any other state.
func (s *Session) PrimaryUp() {
	if s.state != Drawing {
		return
	}
	s.state = Idle
	if _, err := s.engine.EndStroke(); err != nil {
		s.fail(err)
	}
}

// SecondaryDown enters radius-resize mode. Ignored while Drawing or
// when no structure is selected.
func (s *Session) SecondaryDown(pt geometry.Point) {
	if s.state != Idle {
		return
	}
	if s.engine.SelectedStructure() == nil {
		return
	}
	s.state = Resizing
	s.resizeStartY = pt.Y
	s.resizeBase = s.engine.Radius()
}

// SecondaryUp leaves resize mode. Ignored in any other state.
func (s *Session) SecondaryUp() {
	if s.state != Resizing {
		return
	}
	s.state = Idle
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "brush resized",
		slog.Float64("radius_mm", s.engine.Radius()))
}

// PointerLeave resolves whatever interaction is active: an in-flight
// stroke commits with the path captured so far, a resize simply ends.
func (s *Session) PointerLeave() {
	switch s.state {
	case Drawing:
		s.PrimaryUp()
	case Resizing:
		s.SecondaryUp()
	}
}

// Wheel adjusts the brush radius by notches. Ignored while Drawing so
// a stroke's footprint radius stays the one it started with.
func (s *Session) Wheel(steps float64) {
	if s.state == Drawing {
		return
	}
	if s.engine.SelectedStructure() == nil {
		return
	}
	s.engine.SetRadius(s.engine.Radius() + steps*wheelStep)
}

func (s *Session) fail(err error) {
	s.logger.LogAttrs(context.Background(), slog.LevelWarn, "stroke dropped",
		slog.String("error", err.Error()))
	if s.onError != nil {
		s.onError(err)
	}
}
