package geometry

import "math"

// Polygon is an ordered ring of points, implicitly closed: the edge
// from the last point back to the first is assumed and the first point
// is never repeated at the end. A ring needs at least 3 points to be
// valid; anything smaller is treated as empty geometry.
type Polygon []Point

// Valid reports whether the ring has enough points to enclose area.
func (p Polygon) Valid() bool {
	return len(p) >= 3
}

// SignedArea returns the shoelace area of the ring. The sign encodes
// winding: positive for counter-clockwise in a Y-up coordinate frame.
func (p Polygon) SignedArea() float64 {
	if len(p) < 3 {
		return 0
	}
	a := 0.0
	j := len(p) - 1
	for i := range p {
		a += p[j].Cross(p[i])
		j = i
	}
	return a / 2
}

// Area returns the absolute enclosed area.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Centroid returns the area centroid of the ring. For degenerate rings
// it falls back to the mean of the vertices.
func (p Polygon) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	a := p.SignedArea()
	if a == 0 {
		var m Point
		for _, q := range p {
			m = m.Add(q)
		}
		return m.Scale(1 / float64(len(p)))
	}
	var c Point
	j := len(p) - 1
	for i := range p {
		w := p[j].Cross(p[i])
		c = c.Add(p[j].Add(p[i]).Scale(w))
		j = i
	}
	return c.Scale(1 / (6 * a))
}

// Bounds returns the axis-aligned bounding box as (min, max) corners.
func (p Polygon) Bounds() (min, max Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	min, max = p[0], p[0]
	for _, q := range p[1:] {
		min.X = math.Min(min.X, q.X)
		min.Y = math.Min(min.Y, q.Y)
		max.X = math.Max(max.X, q.X)
		max.Y = math.Max(max.Y, q.Y)
	}
	return min, max
}

// Contains reports whether pt lies inside the ring, using an even-odd
// ray cast. Points exactly on an edge resolve deterministically by the
// strict comparisons below but are not guaranteed to count as inside.
// Rings with fewer than 3 points contain nothing.
func (p Polygon) Contains(pt Point) bool {
	if len(p) < 3 {
		return false
	}
	in := false
	j := len(p) - 1
	for i := range p {
		if (p[i].Y > pt.Y) != (p[j].Y > pt.Y) &&
			pt.X < (p[j].X-p[i].X)*(pt.Y-p[i].Y)/(p[j].Y-p[i].Y)+p[i].X {
			in = !in
		}
		j = i
	}
	return in
}

// Clone returns an independent copy of the ring.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// AnyContains reports whether pt is inside the region described by the
// ring set, with even-odd parity across rings so that hole rings carve
// the point back out.
func AnyContains(polys []Polygon, pt Point) bool {
	in := false
	for _, p := range polys {
		if p.Contains(pt) {
			in = !in
		}
	}
	return in
}
