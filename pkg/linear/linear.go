// Package linear implements the linear-referencing operations the
// router needs over a polyline: converting between a point and its
// fractional position along the line, and measuring distances.
//
// All math is planar Euclidean (no geographic projection); see
// geom.Point's doc comment for why that's the right approximation
// here.
package linear

import (
	"math"

	"github.com/azybler/tileroute/pkg/geom"
)

// ClosestKind classifies the result of ClosestPoint.
type ClosestKind int

const (
	// Intersection means p lies exactly on L.
	Intersection ClosestKind = iota
	// SinglePoint means there is a unique nearest point on L.
	SinglePoint
	// Indeterminate means more than one point on L is equally close.
	// No current caller produces inputs where this arises; treated as
	// a programmer error (see ClosestPoint).
	Indeterminate
)

// Closest is the result of a nearest-point-on-polyline query.
type Closest struct {
	Kind  ClosestKind
	Point geom.Point
}

func dist(a, b geom.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// projection is the result of dropping a perpendicular from p onto a
// single segment (a, b): the closest point on that segment, its
// local fraction t in [0,1], and the distance from p.
type projection struct {
	point geom.Point
	t     float64
	dist  float64
}

func projectToSegment(p, a, b geom.Point) projection {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy

	if lenSq == 0 {
		return projection{point: a, t: 0, dist: dist(p, a)}
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := geom.Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return projection{point: closest, t: t, dist: dist(p, closest)}
}

// Length returns the total Euclidean length of L.
func Length(l geom.Polyline) float64 {
	var total float64
	for i := 0; i+1 < len(l); i++ {
		total += dist(l[i], l[i+1])
	}
	return total
}

// LocatePoint returns the fractional position t in [0,1] of the foot
// of perpendicular from p onto L, found by projecting p onto every
// segment of L, keeping the segment that minimizes distance, and
// converting its local fraction to a cumulative-length fraction.
//
// L must have at least 2 vertices and nonzero length; violating this
// is a programmer error and panics.
func LocatePoint(l geom.Polyline, p geom.Point) float64 {
	if len(l) < 2 {
		panic("linear: LocatePoint requires a polyline with at least 2 vertices")
	}
	total := Length(l)
	if total == 0 {
		panic("linear: LocatePoint on a zero-length polyline")
	}

	bestDist := math.Inf(1)
	bestLen := 0.0
	var accLen float64

	for i := 0; i+1 < len(l); i++ {
		segLen := dist(l[i], l[i+1])
		proj := projectToSegment(p, l[i], l[i+1])
		if proj.dist < bestDist {
			bestDist = proj.dist
			bestLen = accLen + proj.t*segLen
		}
		accLen += segLen
	}

	return bestLen / total
}

// InterpolatePoint returns the point at cumulative-length fraction t
// along L. t is clamped to [0,1].
func InterpolatePoint(l geom.Polyline, t float64) geom.Point {
	if len(l) < 2 {
		panic("linear: InterpolatePoint requires a polyline with at least 2 vertices")
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	total := Length(l)
	if total == 0 {
		return l[0]
	}
	target := t * total

	var acc float64
	for i := 0; i+1 < len(l); i++ {
		segLen := dist(l[i], l[i+1])
		if acc+segLen >= target || i+2 == len(l) {
			remaining := target - acc
			localT := 0.0
			if segLen > 0 {
				localT = remaining / segLen
				if localT > 1 {
					localT = 1
				} else if localT < 0 {
					localT = 0
				}
			}
			a, b := l[i], l[i+1]
			return geom.Point{X: a.X + localT*(b.X-a.X), Y: a.Y + localT*(b.Y-a.Y)}
		}
		acc += segLen
	}
	return l[len(l)-1]
}

// PointToPolylineDistance returns the minimum Euclidean distance from
// p to any point on L.
func PointToPolylineDistance(l geom.Polyline, p geom.Point) float64 {
	best := math.Inf(1)
	for i := 0; i+1 < len(l); i++ {
		proj := projectToSegment(p, l[i], l[i+1])
		if proj.dist < best {
			best = proj.dist
		}
	}
	return best
}

// ClosestPoint returns the point on L nearest to p, classifying
// whether p lies exactly on L, whether the nearest point is unique,
// or (never expected in practice) whether it's ambiguous.
func ClosestPoint(l geom.Polyline, p geom.Point) Closest {
	if len(l) < 2 {
		panic("linear: ClosestPoint requires a polyline with at least 2 vertices")
	}

	best := math.Inf(1)
	var bestPoint geom.Point
	ambiguous := false

	for i := 0; i+1 < len(l); i++ {
		proj := projectToSegment(p, l[i], l[i+1])
		switch {
		case proj.dist < best:
			best = proj.dist
			bestPoint = proj.point
			ambiguous = false
		case proj.dist == best && !proj.point.Equal(bestPoint):
			ambiguous = true
		}
	}

	if ambiguous {
		panic("linear: ClosestPoint is indeterminate for this input")
	}
	if best == 0 {
		return Closest{Kind: Intersection, Point: bestPoint}
	}
	return Closest{Kind: SinglePoint, Point: bestPoint}
}
