// Package render rasterizes a structure's slice contours and the live
// brush cursor into an RGBA image for preview output. The interactive
// host normally draws onto its own canvas; this renderer exists for
// headless use (batch CLI, tests, thumbnails) and as the reference for
// how contours map back through the coordinate transformer.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r3"

	"rtcontour/pkg/brush"
	"rtcontour/pkg/geometry"
	"rtcontour/pkg/rtstruct"
	"rtcontour/pkg/transform"
)

// Mode preview colors, by convention: additive paints green,
// subtractive red.
var (
	additiveColor    = color.NRGBA{R: 0, G: 200, B: 80, A: 255}
	subtractiveColor = color.NRGBA{R: 220, G: 40, B: 40, A: 255}
)

// Renderer draws slice previews. Construct one per output surface;
// there is no hidden global configuration.
type Renderer struct {
	width, height int
	background    color.Color
	fillAlpha     uint8
	cursorWidth   float64
}

// Opts configures a Renderer.
type Opts struct {
	Width, Height int
	// Background fills the image before contours; nil means black.
	Background color.Color
	// FillAlpha is the opacity of the contour fill, 0 selecting the
	// default translucent wash.
	FillAlpha uint8
	// CursorWidth is the cursor ring line width in px (default 2).
	CursorWidth float64
}

// New builds a Renderer.
func New(o Opts) *Renderer {
	if o.Background == nil {
		o.Background = color.Black
	}
	if o.FillAlpha == 0 {
		o.FillAlpha = 96
	}
	if o.CursorWidth <= 0 {
		o.CursorWidth = 2
	}
	return &Renderer{
		width:       o.Width,
		height:      o.Height,
		background:  o.Background,
		fillAlpha:   o.FillAlpha,
		cursorWidth: o.CursorWidth,
	}
}

// Slice renders the structure's contours on the given slice, mapped
// through tr, plus an optional brush cursor ring. Hole rings come out
// of the boolean kernel wound opposite their outer ring, so the
// non-zero fill used here leaves them unpainted.
func (r *Renderer) Slice(s *rtstruct.Structure, tr *transform.Transformer, cursor *brush.Cursor) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)

	if s != nil && tr != nil {
		pos := tr.SlicePosition()
		rings := rtstruct.SlicePolygons(s, pos, rtstruct.SliceTolerance)
		if len(rings) > 0 {
			fill := color.NRGBA{R: s.Color[0], G: s.Color[1], B: s.Color[2], A: r.fillAlpha}
			ras := vector.NewRasterizer(r.width, r.height)
			for _, ring := range rings {
				r.addRing(ras, ring, tr, pos)
			}
			ras.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{})
		}
	}

	if cursor != nil {
		r.drawCursor(img, *cursor)
	}
	return img
}

// addRing appends one contour ring, converted to canvas coordinates,
// to the rasterizer path.
func (r *Renderer) addRing(ras *vector.Rasterizer, ring geometry.Polygon, tr *transform.Transformer, pos float64) {
	if !ring.Valid() {
		return
	}
	first := tr.ToCanvas(r3.Vec{X: ring[0].X, Y: ring[0].Y, Z: pos})
	ras.MoveTo(float32(first.X), float32(first.Y))
	for _, p := range ring[1:] {
		c := tr.ToCanvas(r3.Vec{X: p.X, Y: p.Y, Z: pos})
		ras.LineTo(float32(c.X), float32(c.Y))
	}
	ras.ClosePath()
}

// drawCursor paints the radius ring at the pointer as an annulus: the
// outer circle and a reversed inner circle cancel under non-zero fill,
// leaving a line of cursorWidth pixels.
func (r *Renderer) drawCursor(img *image.RGBA, cur brush.Cursor) {
	if cur.Radius <= 0 {
		return
	}
	col := additiveColor
	if cur.Mode == brush.Subtractive {
		col = subtractiveColor
	}
	ras := vector.NewRasterizer(r.width, r.height)
	outer := geometry.Circle(cur.Center, cur.Radius+r.cursorWidth/2, 64)
	inner := geometry.Circle(cur.Center, cur.Radius-r.cursorWidth/2, 64)

	ras.MoveTo(float32(outer[0].X), float32(outer[0].Y))
	for _, p := range outer[1:] {
		ras.LineTo(float32(p.X), float32(p.Y))
	}
	ras.ClosePath()
	if inner != nil {
		ras.MoveTo(float32(inner[0].X), float32(inner[0].Y))
		for i := len(inner) - 1; i > 0; i-- {
			ras.LineTo(float32(inner[i].X), float32(inner[i].Y))
		}
		ras.ClosePath()
	}
	ras.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{})
}
