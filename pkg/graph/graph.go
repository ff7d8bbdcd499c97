// Package graph holds the routing graph's data model: Connectors (the
// graph's nodes) and Segments (named polylines that contribute a
// complete subgraph over the connectors they reference). A Network is
// rebuilt from empty for every routing query (see pkg/tilenet); it
// never persists across queries.
package graph

import (
	"github.com/azybler/tileroute/pkg/geom"
	"github.com/tidwall/rtree"
)

// Connector is a named point: a node of the routing graph. Ids are
// unique within a live Network. The two reserved ids "#start" and
// "#stop" are never produced by tile parsing; they're owned by the
// search (pkg/routing).
type Connector struct {
	ID    string
	Point geom.Point
}

// Segment is a named polyline with an associated list of connector
// ids. Ids in ConnectorIDs that don't resolve against the Network's
// connectors are silently ignored at search time rather than erroring.
type Segment struct {
	ID           string
	Geometry     geom.Polyline
	ConnectorIDs []string
}

// Network is a mutable, append-only store of segments and connectors.
// Insertion order is preserved for first-seen tie-breaking in nearest-
// segment search.
type Network struct {
	segments   []Segment
	connectors []Connector

	index rtree.RTreeG[int] // segment bounding box -> index into segments
}

// New returns an empty Network.
func New() *Network {
	return &Network{}
}

// PushSegment appends a segment to the network and indexes its
// bounding box for nearest-segment search.
func (n *Network) PushSegment(s Segment) {
	idx := len(n.segments)
	n.segments = append(n.segments, s)

	min, max := boundingBox(s.Geometry)
	n.index.Insert(min, max, idx)
}

// PushConnector appends a connector to the network.
func (n *Network) PushConnector(c Connector) {
	n.connectors = append(n.connectors, c)
}

// SegmentsLen returns the number of segments currently in the network.
func (n *Network) SegmentsLen() int { return len(n.segments) }

// ConnectorsLen returns the number of connectors currently in the network.
func (n *Network) ConnectorsLen() int { return len(n.connectors) }

// Segments returns the network's segments in insertion order. The
// returned slice must not be mutated.
func (n *Network) Segments() []Segment { return n.segments }

// Connectors returns the network's connectors in insertion order. The
// returned slice must not be mutated.
func (n *Network) Connectors() []Connector { return n.connectors }

// CandidateSegments invokes fn for every segment whose bounding box
// could contain the nearest point to p within radius (an upper bound
// on the distance worth considering), used by routing's nearest-
// segment search to prune the O(segments) brute-force scan down to
// the segments actually near p. fn receives the segment's index into
// the order returned by Segments.
func (n *Network) CandidateSegments(p geom.Point, radius float64, fn func(idx int)) {
	min := [2]float64{p.X - radius, p.Y - radius}
	max := [2]float64{p.X + radius, p.Y + radius}
	n.index.Search(min, max, func(_, _ [2]float64, idx int) bool {
		fn(idx)
		return true
	})
}

func boundingBox(l geom.Polyline) (min, max [2]float64) {
	min = [2]float64{l[0].X, l[0].Y}
	max = min
	for _, p := range l[1:] {
		if p.X < min[0] {
			min[0] = p.X
		}
		if p.Y < min[1] {
			min[1] = p.Y
		}
		if p.X > max[0] {
			max[0] = p.X
		}
		if p.Y > max[1] {
			max[1] = p.Y
		}
	}
	return min, max
}
