package geometry

import (
	"math"

	clipper "github.com/ctessum/go.clipper"
)

// clipperScale converts millimeters to the integer coordinate space
// the Vatti clipper operates in. 1000 gives 1 micrometer resolution,
// far below any clinically meaningful contour tolerance while staying
// comfortably inside the clipper's coordinate range.
const clipperScale = 1000.0

// minRingArea is the area (mm^2) below which a result ring is treated
// as numeric debris and dropped.
const minRingArea = 1e-6

// Union merges the regions described by a and b into a minimal set of
// result rings: overlapping rings fuse into one, disjoint rings stay
// separate. Self-intersecting input rings are resolved under the
// non-zero fill rule. Either argument may be empty.
func Union(a, b []Polygon) []Polygon {
	return clip(clipper.CtUnion, a, b)
}

// Difference subtracts the region described by b from the region
// described by a, splitting rings where the subtraction bisects them.
// An empty result is a legitimate outcome (b fully covered a).
func Difference(a, b []Polygon) []Polygon {
	return clip(clipper.CtDifference, a, b)
}

// Intersection returns the region common to a and b.
func Intersection(a, b []Polygon) []Polygon {
	return clip(clipper.CtIntersection, a, b)
}

func clip(op clipper.ClipType, a, b []Polygon) []Polygon {
	subj := toPaths(a)
	cl := toPaths(b)
	if len(subj) == 0 && len(cl) == 0 {
		return nil
	}
	c := clipper.NewClipper(clipper.IoNone)
	if len(subj) > 0 {
		c.AddPaths(subj, clipper.PtSubject, true)
	}
	if len(cl) > 0 {
		c.AddPaths(cl, clipper.PtClip, true)
	}
	sol, ok := c.Execute1(op, clipper.PftNonZero, clipper.PftNonZero)
	if !ok {
		return nil
	}
	return fromPaths(sol)
}

// Clean collapses vertices closer than tolerance (mm) along each ring
// and removes the collinear spikes that collapse exposes, then drops
// rings left degenerate. tolerance <= 0 still prunes invalid rings.
func Clean(polys []Polygon, tolerance float64) []Polygon {
	paths := toPaths(polys)
	if len(paths) == 0 {
		return nil
	}
	if tolerance > 0 {
		c := clipper.NewClipper(clipper.IoNone)
		paths = c.CleanPolygons(paths, tolerance*clipperScale)
	}
	return fromPaths(paths)
}

func toPaths(polys []Polygon) clipper.Paths {
	paths := make(clipper.Paths, 0, len(polys))
	for _, p := range polys {
		if !p.Valid() {
			continue
		}
		path := make(clipper.Path, len(p))
		for i, pt := range p {
			path[i] = &clipper.IntPoint{
				X: clipper.CInt(math.Round(pt.X * clipperScale)),
				Y: clipper.CInt(math.Round(pt.Y * clipperScale)),
			}
		}
		paths = append(paths, path)
	}
	return paths
}

func fromPaths(paths clipper.Paths) []Polygon {
	polys := make([]Polygon, 0, len(paths))
	for _, path := range paths {
		if len(path) < 3 {
			continue
		}
		ring := make(Polygon, len(path))
		for i, ip := range path {
			ring[i] = Point{
				X: float64(ip.X) / clipperScale,
				Y: float64(ip.Y) / clipperScale,
			}
		}
		if ring.Area() < minRingArea {
			continue
		}
		polys = append(polys, ring)
	}
	return polys
}
