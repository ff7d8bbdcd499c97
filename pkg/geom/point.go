// Package geom defines the plain 2-D geometry types shared by the
// routing graph, the linear-referencing math, and the MVT adapter.
package geom

// Point is an ordered (x, y) pair. In the public API x is longitude
// and y is latitude (WGS84 degrees); internally all math treats a
// Point as a point in the Euclidean plane, which is an intentional
// approximation appropriate at single-tile (zoom 14) scales.
type Point struct {
	X, Y float64
}

// Polyline is an ordered sequence of two or more Points. It is
// immutable after construction; callers must not mutate a Polyline
// returned from a Segment once it has been pushed into a Network.
type Polyline []Point

// Equal reports whether two points are exactly equal.
func (p Point) Equal(o Point) bool {
	return p.X == o.X && p.Y == o.Y
}
