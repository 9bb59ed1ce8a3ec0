// Package brush converts freehand pointer strokes into boolean
// mutations of a structure's per-slice contours. Engine owns one
// stroke at a time: mode decision on the first point, path capture,
// and the commit pipeline (canvas → patient transform, footprint
// generation, union/difference clip, slice replacement).
//
// Everything here runs on the host UI's single event-dispatch
// goroutine; the package does no locking of its own.
package brush

import (
	"context"
	"fmt"
	"log/slog"

	"rtcontour/pkg/geometry"
	"rtcontour/pkg/rtstruct"
	"rtcontour/pkg/transform"
)

// Mode is the boolean operation a stroke applies.
type Mode int

const (
	// Additive strokes union the brush footprint into the slice.
	Additive Mode = iota
	// Subtractive strokes carve the footprint out of the slice.
	Subtractive
)

func (m Mode) String() string {
	if m == Subtractive {
		return "subtractive"
	}
	return "additive"
}

// Options configures an Engine. Zero values select clinical defaults.
type Options struct {
	// Radius is the initial brush radius in mm.
	Radius float64
	// MinRadius and MaxRadius clamp interactive resizing, in mm.
	MinRadius float64
	MaxRadius float64
	// Segments is the circle approximation quality for footprints.
	Segments int
	// CleanTolerance is the post-clip vertex collapse distance in mm.
	CleanTolerance float64
	// SliceTolerance is the contour-to-slice fuzz match distance in mm.
	SliceTolerance float64
}

func (o Options) withDefaults() Options {
	if o.Radius <= 0 {
		o.Radius = 5.0
	}
	if o.MinRadius <= 0 {
		o.MinRadius = 0.5
	}
	if o.MaxRadius <= 0 {
		o.MaxRadius = 50.0
	}
	if o.Segments < 3 {
		o.Segments = geometry.DefaultSegments
	}
	if o.CleanTolerance <= 0 {
		o.CleanTolerance = 0.01
	}
	if o.SliceTolerance <= 0 {
		o.SliceTolerance = rtstruct.SliceTolerance
	}
	return o
}

// Cursor is the live brush preview: a radius-sized ring at the pointer
// colored by operation mode (additive green, subtractive red).
type Cursor struct {
	Center geometry.Point // canvas px
	Radius float64        // canvas px
	Mode   Mode
}

// Engine applies brush strokes to one structure set. The set passed in
// is never mutated: each commit snapshots it, mutates the snapshot and
// makes the snapshot the new working set, handing it to the commit
// callback so the caller can diff or push undo state.
type Engine struct {
	opts   Options
	logger *slog.Logger

	set       *rtstruct.StructureSet
	roiNumber int
	tr        *transform.Transformer

	radius   float64
	drawing  bool
	mode     Mode
	path     []geometry.Point // canvas space, in capture order
	onCommit func(*rtstruct.StructureSet)
}

// NewEngine builds an Engine over the given working set. logger may be
// nil for silence.
func NewEngine(set *rtstruct.StructureSet, opts Options, logger *slog.Logger) *Engine {
	opts = opts.withDefaults()
	if logger == nil {
		logger = nopLogger()
	}
	return &Engine{
		opts:   opts,
		logger: logger,
		set:    set,
		radius: opts.Radius,
	}
}

// SetTransformer installs the canvas↔patient mapping for the currently
// displayed image. Pass nil when spatial metadata is unavailable; all
// strokes then fail fast with ErrMissingMetadata.
func (e *Engine) SetTransformer(tr *transform.Transformer) {
	e.tr = tr
}

// SelectStructure makes the structure with the given ROI number the
// stroke target. 0 deselects.
func (e *Engine) SelectStructure(roiNumber int) {
	e.roiNumber = roiNumber
}

// SelectedStructure returns the active structure in the working set,
// or nil.
func (e *Engine) SelectedStructure() *rtstruct.Structure {
	if e.set == nil || e.roiNumber == 0 {
		return nil
	}
	return e.set.FindStructure(e.roiNumber)
}

// StructureSet returns the current working set.
func (e *Engine) StructureSet() *rtstruct.StructureSet {
	return e.set
}

// Radius returns the current brush radius in mm.
func (e *Engine) Radius() float64 {
	return e.radius
}

// SetRadius sets the brush radius, clamped to the configured range.
func (e *Engine) SetRadius(r float64) {
	if r < e.opts.MinRadius {
		r = e.opts.MinRadius
	}
	if r > e.opts.MaxRadius {
		r = e.opts.MaxRadius
	}
	e.radius = r
}

// Drawing reports whether a stroke is currently being captured.
func (e *Engine) Drawing() bool {
	return e.drawing
}

// Mode returns the operation locked for the in-flight stroke. Only
// meaningful while Drawing.
func (e *Engine) Mode() Mode {
	return e.mode
}

// OnCommit registers the callback invoked with the updated structure
// set after every committed stroke. The external layer persists it.
func (e *Engine) OnCommit(fn func(*rtstruct.StructureSet)) {
	e.onCommit = fn
}

// BeginStroke starts capturing a stroke at the given canvas point and
// locks the operation mode for its duration.
//
// The mode is decided by testing the first point against the target
// slice's existing geometry: inside means additive, outside means
// subtractive, and invert swaps that. A slice with no contours forces
// additive regardless of invert.
func (e *Engine) BeginStroke(pt geometry.Point, invert bool) error {
	if e.drawing {
		return ErrStrokeInFlight
	}
	s := e.SelectedStructure()
	if s == nil {
		return ErrNoStructureSelected
	}
	if e.tr == nil {
		return fmt.Errorf("begin stroke: %w", transform.ErrMissingMetadata)
	}
	p, err := e.tr.ToPatient(pt)
	if err != nil {
		return fmt.Errorf("begin stroke: %w", err)
	}

	existing := rtstruct.SlicePolygons(s, e.tr.SlicePosition(), e.opts.SliceTolerance)
	switch {
	case len(existing) == 0:
		e.mode = Additive
	case geometry.AnyContains(existing, geometry.Pt(p.X, p.Y)) != invert:
		e.mode = Additive
	default:
		e.mode = Subtractive
	}

	e.drawing = true
	e.path = e.path[:0]
	e.path = append(e.path, pt)
	e.logger.LogAttrs(context.Background(), slog.LevelDebug, "stroke started",
		slog.Int("roi", e.roiNumber),
		slog.String("mode", e.mode.String()),
		slog.Float64("radius_mm", e.radius))
	return nil
}

// ExtendStroke appends a pointer position to the in-progress path and
// returns the cursor preview. Contour geometry is untouched until
// EndStroke. Calling it while idle just moves the preview cursor.
func (e *Engine) ExtendStroke(pt geometry.Point) Cursor {
	if e.drawing {
		e.path = append(e.path, pt)
	}
	return Cursor{Center: pt, Radius: e.canvasRadius(), Mode: e.mode}
}

// EndStroke commits the captured stroke: the path is transformed to
// patient space, swept into a brush footprint, and clipped against the
// slice's existing rings. The mutation lands on a fresh snapshot which
// becomes the new working set and is handed to the commit callback.
//
// On any error the previous working set is untouched and remains
// current. An empty result after subtraction is not an error: the
// slice record is deleted.
func (e *Engine) EndStroke() (*rtstruct.StructureSet, error) {
	if !e.drawing {
		return nil, nil
	}
	e.drawing = false

	s := e.SelectedStructure()
	if s == nil {
		return nil, ErrNoStructureSelected
	}

	patient := make([]geometry.Point, 0, len(e.path))
	for _, cp := range e.path {
		p, err := e.tr.ToPatient(cp)
		if err != nil {
			continue
		}
		patient = append(patient, geometry.Pt(p.X, p.Y))
	}
	if len(patient) == 0 || (len(patient) < 3 && len(patient) < len(e.path)) {
		return nil, fmt.Errorf("%d of %d points usable: %w", len(patient), len(e.path), ErrInsufficientGeometry)
	}

	footprint := geometry.Stroke(patient, e.radius, e.opts.Segments)
	if !footprint.Valid() {
		return nil, fmt.Errorf("degenerate footprint: %w", ErrInsufficientGeometry)
	}

	pos := e.tr.SlicePosition()
	existing := rtstruct.SlicePolygons(s, pos, e.opts.SliceTolerance)

	var result []geometry.Polygon
	if e.mode == Additive {
		result = geometry.Union(existing, []geometry.Polygon{footprint})
	} else {
		result = geometry.Difference(existing, []geometry.Polygon{footprint})
	}
	result = geometry.Clean(result, e.opts.CleanTolerance)
	if len(result) == 0 && e.mode == Subtractive {
		e.logger.LogAttrs(context.Background(), slog.LevelDebug, "subtraction emptied slice",
			slog.Int("roi", e.roiNumber), slog.Float64("slice_mm", pos))
	}

	snap := rtstruct.Snapshot(e.set)
	target := snap.FindStructure(e.roiNumber)
	rtstruct.ReplaceSlice(target, pos, e.opts.SliceTolerance, result)
	e.set = snap

	e.logger.LogAttrs(context.Background(), slog.LevelInfo, "stroke committed",
		slog.Int("roi", e.roiNumber),
		slog.String("mode", e.mode.String()),
		slog.Float64("slice_mm", pos),
		slog.Int("rings", len(result)))
	if e.onCommit != nil {
		e.onCommit(snap)
	}
	return snap, nil
}

// canvasRadius converts the mm brush radius to canvas pixels for the
// preview cursor.
func (e *Engine) canvasRadius() float64 {
	if e.tr == nil {
		return 0
	}
	origin, err := e.tr.ToPatient(geometry.Pt(0, 0))
	if err != nil {
		return 0
	}
	c0 := e.tr.ToCanvas(origin)
	origin.X += e.radius
	c1 := e.tr.ToCanvas(origin)
	return c0.Dist(c1)
}
