// Package transform maps between canvas pixel coordinates and DICOM
// patient coordinates (millimeters). The external DICOM layer supplies
// the spatial metadata; this package owns the affine math and the
// parsing of the raw backslash-delimited tag strings.
package transform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrMissingMetadata indicates that required spatial metadata is
// absent or invalid, so a point cannot be placed in patient space.
// Callers must abort the operation on that point rather than
// substitute a default.
var ErrMissingMetadata = errors.New("missing or invalid image metadata")

// ImageMetadata holds the DICOM spatial tags needed to locate image
// pixels in patient space.
type ImageMetadata struct {
	// ImagePositionPatient is the patient-space position (mm) of the
	// center of the top-left pixel (DICOM tag 0020,0032).
	ImagePositionPatient [3]float64 `json:"imagePositionPatient"`

	// PixelSpacing is [row spacing, column spacing] in mm
	// (tag 0028,0030). Row spacing is the distance between rows.
	PixelSpacing [2]float64 `json:"pixelSpacing"`

	// ImageOrientationPatient holds the row direction cosines followed
	// by the column direction cosines (tag 0020,0037).
	ImageOrientationPatient [6]float64 `json:"imageOrientationPatient"`

	// Columns and Rows are the image dimensions in pixels.
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

// Validate reports ErrMissingMetadata (wrapped with the failing field)
// when any spatial tag is absent or unusable.
func (m *ImageMetadata) Validate() error {
	if m == nil {
		return fmt.Errorf("metadata is nil: %w", ErrMissingMetadata)
	}
	if m.Columns <= 0 || m.Rows <= 0 {
		return fmt.Errorf("image dimensions %dx%d: %w", m.Columns, m.Rows, ErrMissingMetadata)
	}
	if m.PixelSpacing[0] <= 0 || m.PixelSpacing[1] <= 0 {
		return fmt.Errorf("pixel spacing %v: %w", m.PixelSpacing, ErrMissingMetadata)
	}
	if r3.Norm(m.RowDir()) == 0 || r3.Norm(m.ColDir()) == 0 {
		return fmt.Errorf("degenerate orientation %v: %w", m.ImageOrientationPatient, ErrMissingMetadata)
	}
	return nil
}

// RowDir returns the unit vector along an image row (the direction of
// increasing column index).
func (m *ImageMetadata) RowDir() r3.Vec {
	return r3.Vec{
		X: m.ImageOrientationPatient[0],
		Y: m.ImageOrientationPatient[1],
		Z: m.ImageOrientationPatient[2],
	}
}

// ColDir returns the unit vector along an image column (the direction
// of increasing row index).
func (m *ImageMetadata) ColDir() r3.Vec {
	return r3.Vec{
		X: m.ImageOrientationPatient[3],
		Y: m.ImageOrientationPatient[4],
		Z: m.ImageOrientationPatient[5],
	}
}

// Normal returns the slice-stack normal: the cross product of the row
// and column direction cosines.
func (m *ImageMetadata) Normal() r3.Vec {
	return r3.Cross(m.RowDir(), m.ColDir())
}

// SlicePosition returns the scalar position of this image along the
// slice-stack normal, in mm.
func (m *ImageMetadata) SlicePosition() float64 {
	return r3.Dot(m.Normal(), r3.Vec{
		X: m.ImagePositionPatient[0],
		Y: m.ImagePositionPatient[1],
		Z: m.ImagePositionPatient[2],
	})
}

// parseTag splits a DICOM backslash-delimited numeric string into
// exactly want floats.
func parseTag(s string, want int) ([]float64, error) {
	parts := strings.Split(strings.TrimSpace(s), "\\")
	if len(parts) != want {
		return nil, fmt.Errorf("tag %q: expected %d values, got %d: %w", s, want, len(parts), ErrMissingMetadata)
	}
	vals := make([]float64, want)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("tag %q: value %d: %w", s, i, ErrMissingMetadata)
		}
		vals[i] = v
	}
	return vals, nil
}

// ParsePositionTag parses an ImagePositionPatient tag string.
func ParsePositionTag(s string) ([3]float64, error) {
	var out [3]float64
	vals, err := parseTag(s, 3)
	if err != nil {
		return out, err
	}
	copy(out[:], vals)
	return out, nil
}

// ParseSpacingTag parses a PixelSpacing tag string.
func ParseSpacingTag(s string) ([2]float64, error) {
	var out [2]float64
	vals, err := parseTag(s, 2)
	if err != nil {
		return out, err
	}
	copy(out[:], vals)
	return out, nil
}

// ParseOrientationTag parses an ImageOrientationPatient tag string.
func ParseOrientationTag(s string) ([6]float64, error) {
	var out [6]float64
	vals, err := parseTag(s, 6)
	if err != nil {
		return out, err
	}
	copy(out[:], vals)
	return out, nil
}
