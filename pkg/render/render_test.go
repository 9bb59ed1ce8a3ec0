package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rtcontour/pkg/brush"
	"rtcontour/pkg/geometry"
	"rtcontour/pkg/rtstruct"
	"rtcontour/pkg/transform"
)

func testTransformer(t *testing.T) *transform.Transformer {
	t.Helper()
	tr, err := transform.New(
		transform.View{Zoom: 1},
		transform.Canvas{Width: 100, Height: 100},
		&transform.ImageMetadata{
			ImagePositionPatient:    [3]float64{0, 0, 0},
			PixelSpacing:            [2]float64{1, 1},
			ImageOrientationPatient: [6]float64{1, 0, 0, 0, 1, 0},
			Columns:                 100,
			Rows:                    100,
		},
	)
	require.NoError(t, err)
	return tr
}

func TestSliceFillsContourInterior(t *testing.T) {
	s := &rtstruct.Structure{ROINumber: 1, Color: [3]uint8{255, 0, 0}}
	rtstruct.ReplaceSlice(s, 0, rtstruct.SliceTolerance, []geometry.Polygon{{
		geometry.Pt(20, 20), geometry.Pt(80, 20), geometry.Pt(80, 80), geometry.Pt(20, 80),
	}})

	r := New(Opts{Width: 100, Height: 100})
	img := r.Slice(s, testTransformer(t), nil)

	require.Equal(t, 100, img.Bounds().Dx())

	// Interior painted, exterior still background.
	in := img.RGBAAt(50, 50)
	out := img.RGBAAt(5, 5)
	assert.Greater(t, in.R, out.R)
	assert.Equal(t, uint8(0), out.G)
}

func TestSliceEmptyStructure(t *testing.T) {
	r := New(Opts{Width: 50, Height: 50, Background: color.White})
	img := r.Slice(&rtstruct.Structure{}, testTransformer(t), nil)

	c := img.RGBAAt(25, 25)
	assert.Equal(t, uint8(255), c.R)
}

func TestCursorRing(t *testing.T) {
	r := New(Opts{Width: 100, Height: 100})
	img := r.Slice(nil, nil, &brush.Cursor{
		Center: geometry.Pt(50, 50),
		Radius: 20,
		Mode:   brush.Additive,
	})

	// On the ring: green. At the center: untouched background.
	on := img.RGBAAt(70, 50)
	center := img.RGBAAt(50, 50)
	assert.Greater(t, on.G, uint8(100))
	assert.Equal(t, uint8(0), center.G)
}
