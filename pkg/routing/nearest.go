package routing

import (
	"math"

	"github.com/azybler/tileroute/pkg/geom"
	"github.com/azybler/tileroute/pkg/graph"
	"github.com/azybler/tileroute/pkg/linear"
)

// segmentWithPosition pairs a segment with a fractional position
// along its geometry, as produced by nearest-segment lookup.
type segmentWithPosition struct {
	segment  graph.Segment
	position float64
}

func (s segmentWithPosition) point() geom.Point {
	return linear.InterpolatePoint(s.segment.Geometry, s.position)
}

const initialSearchRadius = 0.01 // degrees; doubled until a stable nearest is found

// findNearest returns the segment in n minimizing point-to-polyline
// distance to p, along with the fractional position of the foot of
// perpendicular on that segment. Ties are broken by first-seen
// (insertion) order. Fails only when n has no segments.
//
// The rtree index is used to prune the candidate set with an
// expanding search radius; the comparison itself always runs over the
// full candidate set found so far and tie-breaks on insertion index,
// so the result is identical to a brute-force scan regardless of the
// index's internal iteration order.
func findNearest(n *graph.Network, p geom.Point) (segmentWithPosition, bool) {
	segments := n.Segments()
	if len(segments) == 0 {
		return segmentWithPosition{}, false
	}

	radius := initialSearchRadius
	var bestIdx = -1
	var bestDist = math.Inf(1)

	for attempt := 0; attempt < 32; attempt++ {
		bestIdx = -1
		bestDist = math.Inf(1)

		n.CandidateSegments(p, radius, func(idx int) {
			d := linear.PointToPolylineDistance(segments[idx].Geometry, p)
			if d < bestDist || (d == bestDist && idx < bestIdx) {
				bestDist = d
				bestIdx = idx
			}
		})

		if bestIdx >= 0 && bestDist <= radius {
			break
		}
		radius *= 2
	}

	// Fall back to a brute-force scan if the expanding search somehow
	// failed to converge (e.g. a pathologically large network); this
	// keeps the operation total rather than returning "not found".
	if bestIdx < 0 || bestDist > radius {
		for idx, s := range segments {
			d := linear.PointToPolylineDistance(s.Geometry, p)
			if d < bestDist {
				bestDist = d
				bestIdx = idx
			}
		}
	}

	s := segments[bestIdx]
	pos := linear.LocatePoint(s.Geometry, p)
	return segmentWithPosition{segment: s, position: pos}, true
}
