package rtstruct

import (
	"math"

	"rtcontour/pkg/geometry"
)

// SlicePolygons gathers every contour of the structure within tol mm
// of pos and returns their 2D rings. The result may be empty and may
// hold several rings (disjoint regions or hole rings on one slice).
func SlicePolygons(s *Structure, pos, tol float64) []geometry.Polygon {
	var out []geometry.Polygon
	for i := range s.Contours {
		if math.Abs(s.Contours[i].SlicePosition-pos) <= tol {
			out = append(out, s.Contours[i].Ring())
		}
	}
	return out
}

// ReplaceSlice removes every contour of the structure within tol mm of
// pos and inserts one contour per valid ring in polys, each carrying
// pos as the z of every point triple. Rings below 3 points are pruned,
// never stored. An empty polys deletes the slice outright. Other
// slices are untouched.
func ReplaceSlice(s *Structure, pos, tol float64, polys []geometry.Polygon) {
	kept := s.Contours[:0]
	for i := range s.Contours {
		if math.Abs(s.Contours[i].SlicePosition-pos) > tol {
			kept = append(kept, s.Contours[i])
		}
	}
	for _, ring := range polys {
		if !ring.Valid() {
			continue
		}
		kept = append(kept, NewContour(pos, ring))
	}
	s.Contours = kept
}

// Snapshot deep-clones the set for copy-on-write handoff: the caller
// can mutate the clone and hand it to the persistence boundary while
// the original stays intact for diff/undo.
func Snapshot(set *StructureSet) *StructureSet {
	if set == nil {
		return nil
	}
	out := &StructureSet{
		FrameOfReferenceUID: set.FrameOfReferenceUID,
		SeriesUID:           set.SeriesUID,
		Structures:          make([]*Structure, len(set.Structures)),
	}
	for i, s := range set.Structures {
		cs := &Structure{
			ROINumber: s.ROINumber,
			Name:      s.Name,
			Color:     s.Color,
			Contours:  make([]Contour, len(s.Contours)),
		}
		for j, c := range s.Contours {
			pts := make([]float64, len(c.Points))
			copy(pts, c.Points)
			cs.Contours[j] = Contour{
				SlicePosition:  c.SlicePosition,
				Points:         pts,
				NumberOfPoints: c.NumberOfPoints,
			}
		}
		out.Structures[i] = cs
	}
	return out
}
