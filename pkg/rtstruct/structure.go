// Package rtstruct holds the structure-set data model shared with the
// external DICOM RTSTRUCT parser and persistence layer, and the
// per-slice contour mutation protocol the brush engine drives.
//
// Coordinates are patient-space millimeters. A Contour stores exactly
// one closed ring as a flat (x, y, z) triple array; a slice holding
// several disjoint rings is represented by several Contour records
// sharing the same SlicePosition.
package rtstruct

import (
	"errors"
	"fmt"

	"rtcontour/pkg/geometry"
)

// SliceTolerance is the default fuzz distance (mm) for deciding that a
// contour belongs to the slice being viewed. Slice positions derived
// through different coordinate paths rarely compare exactly equal.
const SliceTolerance = 2.0

// ErrMalformed indicates boundary input that cannot be normalized into
// the strict data model.
var ErrMalformed = errors.New("malformed structure data")

// Contour is the outline of a structure on one image slice.
type Contour struct {
	// SlicePosition locates the slice along the stack normal, in mm.
	SlicePosition float64 `json:"slicePosition"`

	// Points is a flat array of repeating (x, y, z) mm triples. The z
	// value duplicates SlicePosition; it is kept for export fidelity.
	Points []float64 `json:"points"`

	// NumberOfPoints is always len(Points)/3.
	NumberOfPoints int `json:"numberOfPoints"`
}

// Structure is a single ROI: a named, colored set of contours.
type Structure struct {
	ROINumber int       `json:"roiNumber"`
	Name      string    `json:"structureName"`
	Color     [3]uint8  `json:"color"`
	Contours  []Contour `json:"contours"`
}

// StructureSet owns the structures for one imaging series.
type StructureSet struct {
	FrameOfReferenceUID string       `json:"frameOfReferenceUID,omitempty"`
	SeriesUID           string       `json:"seriesUID,omitempty"`
	Structures          []*Structure `json:"structures"`
}

// Ring converts the contour's flat coordinate array to a 2D ring,
// dropping the z component of every triple.
func (c *Contour) Ring() geometry.Polygon {
	n := len(c.Points) / 3
	ring := make(geometry.Polygon, n)
	for i := 0; i < n; i++ {
		ring[i] = geometry.Point{X: c.Points[3*i], Y: c.Points[3*i+1]}
	}
	return ring
}

// NewContour builds a Contour from a 2D ring at the given slice
// position, writing z = pos into every triple. Invalid rings yield a
// zero Contour; callers prune those rather than store them.
func NewContour(pos float64, ring geometry.Polygon) Contour {
	if !ring.Valid() {
		return Contour{}
	}
	pts := make([]float64, 0, len(ring)*3)
	for _, p := range ring {
		pts = append(pts, p.X, p.Y, pos)
	}
	return Contour{
		SlicePosition:  pos,
		Points:         pts,
		NumberOfPoints: len(ring),
	}
}

// Normalize validates and repairs boundary input in place: the point
// count is recomputed, ragged flat arrays are truncated to whole
// triples, and contours left with fewer than 3 points are reported as
// ErrMalformed.
func (c *Contour) Normalize() error {
	if rem := len(c.Points) % 3; rem != 0 {
		c.Points = c.Points[:len(c.Points)-rem]
	}
	c.NumberOfPoints = len(c.Points) / 3
	if c.NumberOfPoints < 3 {
		return fmt.Errorf("contour at %.3f has %d points: %w", c.SlicePosition, c.NumberOfPoints, ErrMalformed)
	}
	return nil
}

// Normalize repairs every contour of the structure, dropping the ones
// that cannot be repaired. It returns the number dropped.
func (s *Structure) Normalize() int {
	kept := s.Contours[:0]
	dropped := 0
	for i := range s.Contours {
		if err := s.Contours[i].Normalize(); err != nil {
			dropped++
			continue
		}
		kept = append(kept, s.Contours[i])
	}
	s.Contours = kept
	return dropped
}

// Normalize repairs every structure in the set. Structures themselves
// are never dropped; a structure may legitimately have no contours
// yet. It returns the total number of contours dropped.
func (set *StructureSet) Normalize() int {
	dropped := 0
	for _, s := range set.Structures {
		dropped += s.Normalize()
	}
	return dropped
}

// FindStructure returns the structure with the given ROI number, or
// nil when the set has none.
func (set *StructureSet) FindStructure(roiNumber int) *Structure {
	for _, s := range set.Structures {
		if s.ROINumber == roiNumber {
			return s
		}
	}
	return nil
}
