package geometry

import "math"

// DefaultSegments is the circle approximation quality used when a
// caller passes a non-positive segment count. 32 keeps faceting
// invisible at clinically typical brush radii without bloating rings.
const DefaultSegments = 32

// Circle returns a regular polygon approximating a circle of the given
// radius around center. segments <= 0 selects DefaultSegments; radius
// <= 0 yields nil.
func Circle(center Point, radius float64, segments int) Polygon {
	if radius <= 0 {
		return nil
	}
	if segments < 3 {
		segments = DefaultSegments
	}
	ring := make(Polygon, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		ring[i] = Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		}
	}
	return ring
}

// Stroke returns the footprint swept by a round brush of the given
// radius dragged along path: a capsule-like ribbon built from the
// left and right perpendicular offsets of the path with semicircular
// caps at both ends. A single-point path degenerates to Circle.
//
// The ribbon of a sharply concave path can self-intersect; callers
// feed the result through the boolean kernel (which resolves
// self-intersections under its non-zero fill rule) before storing it.
func Stroke(path []Point, radius float64, segments int) Polygon {
	if radius <= 0 {
		return nil
	}
	if segments < 3 {
		segments = DefaultSegments
	}
	pts := dedupe(path)
	if len(pts) == 0 {
		return nil
	}
	if len(pts) == 1 {
		return Circle(pts[0], radius, segments)
	}

	n := len(pts)
	left := make([]Point, n)
	right := make([]Point, n)
	for i, pt := range pts {
		var dir Point
		switch {
		case i == 0:
			dir = pts[1].Sub(pts[0])
		case i == n-1:
			dir = pts[n-1].Sub(pts[n-2])
		default:
			dir = pts[i+1].Sub(pts[i-1])
		}
		if dir.Norm() == 0 {
			// Interior point whose neighbors coincide (path doubles
			// back); use the incoming segment direction instead.
			dir = pts[i].Sub(pts[i-1])
		}
		off := dir.Unit().Perp().Scale(radius)
		left[i] = pt.Add(off)
		right[i] = pt.Sub(off)
	}

	capSegs := segments / 2
	ring := make(Polygon, 0, 2*n+2*capSegs)
	ring = append(ring, left...)
	ring = append(ring, endCap(pts[n-1], left[n-1], capSegs)...)
	for i := n - 1; i >= 0; i-- {
		ring = append(ring, right[i])
	}
	ring = append(ring, endCap(pts[0], right[0], capSegs)...)
	return ring
}

// endCap returns the interior points of a semicircular arc around
// center, starting just past the from offset point and sweeping half a
// turn clockwise (so the cap bulges away from the ribbon body).
func endCap(center, from Point, segs int) []Point {
	r := from.Sub(center)
	start := math.Atan2(r.Y, r.X)
	radius := r.Norm()
	arc := make([]Point, 0, segs)
	for i := 1; i < segs; i++ {
		a := start - math.Pi*float64(i)/float64(segs)
		arc = append(arc, Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		})
	}
	return arc
}

// dedupe drops consecutive duplicate path points.
func dedupe(path []Point) []Point {
	out := make([]Point, 0, len(path))
	for _, pt := range path {
		if len(out) > 0 && out[len(out)-1] == pt {
			continue
		}
		out = append(out, pt)
	}
	return out
}
