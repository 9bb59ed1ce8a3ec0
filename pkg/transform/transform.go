package transform

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"rtcontour/pkg/geometry"
)

// View describes the interactive viewport: zoom multiplier on top of
// the base fit scale, and pan offsets in canvas pixels.
type View struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}

// Canvas is the host drawing surface size in pixels.
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Transformer converts between canvas pixel coordinates and DICOM
// patient coordinates for one image under one view state. It is an
// immutable snapshot: build a new one when the view or image changes.
// Safe for concurrent use.
type Transformer struct {
	meta  *ImageMetadata
	scale float64
	offX  float64
	offY  float64
}

// New builds a Transformer for the given view, canvas and image
// metadata. It fails with ErrMissingMetadata when the metadata is
// incomplete or the view scale is unusable.
func New(view View, canvas Canvas, meta *ImageMetadata) (*Transformer, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	if view.Zoom <= 0 {
		return nil, fmt.Errorf("zoom %v: %w", view.Zoom, ErrMissingMetadata)
	}
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return nil, fmt.Errorf("canvas %dx%d: %w", canvas.Width, canvas.Height, ErrMissingMetadata)
	}

	// Base fit: the image covers the canvas, preserving aspect ratio.
	scale := math.Max(
		float64(canvas.Width)/float64(meta.Columns),
		float64(canvas.Height)/float64(meta.Rows),
	) * view.Zoom

	return &Transformer{
		meta:  meta,
		scale: scale,
		offX:  (float64(canvas.Width)-float64(meta.Columns)*scale)/2 + view.PanX,
		offY:  (float64(canvas.Height)-float64(meta.Rows)*scale)/2 + view.PanY,
	}, nil
}

// SlicePosition returns the image's position along the slice normal.
func (t *Transformer) SlicePosition() float64 {
	return t.meta.SlicePosition()
}

// ToPatient maps a canvas point to patient space (mm).
//
// The pixel-to-patient affine follows the DICOM convention: the column
// index advances along the row direction cosine scaled by the column
// spacing (PixelSpacing[1]), and the row index advances along the
// column direction cosine scaled by the row spacing (PixelSpacing[0]).
// The cross-pairing is deliberate and covered by an explicit test.
func (t *Transformer) ToPatient(c geometry.Point) (r3.Vec, error) {
	col := (c.X - t.offX) / t.scale
	row := (c.Y - t.offY) / t.scale

	m := t.meta
	p := r3.Vec{
		X: m.ImagePositionPatient[0],
		Y: m.ImagePositionPatient[1],
		Z: m.ImagePositionPatient[2],
	}
	p = r3.Add(p, r3.Scale(col*m.PixelSpacing[1], m.RowDir()))
	p = r3.Add(p, r3.Scale(row*m.PixelSpacing[0], m.ColDir()))
	return p, nil
}

// ToCanvas maps a patient-space point (mm) back to canvas pixels by
// projecting onto the image plane axes and applying the view scale.
func (t *Transformer) ToCanvas(p r3.Vec) geometry.Point {
	m := t.meta
	d := r3.Sub(p, r3.Vec{
		X: m.ImagePositionPatient[0],
		Y: m.ImagePositionPatient[1],
		Z: m.ImagePositionPatient[2],
	})
	col := r3.Dot(d, m.RowDir()) / m.PixelSpacing[1]
	row := r3.Dot(d, m.ColDir()) / m.PixelSpacing[0]
	return geometry.Point{
		X: col*t.scale + t.offX,
		Y: row*t.scale + t.offY,
	}
}
