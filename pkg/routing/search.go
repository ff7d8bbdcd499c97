package routing

import (
	"math"

	"github.com/azybler/tileroute/pkg/geom"
	"github.com/azybler/tileroute/pkg/graph"
	"github.com/azybler/tileroute/pkg/linear"
)

const (
	startConnectorID = "#start"
	stopConnectorID  = "#stop"
)

type neighbour struct {
	connID  string
	segment graph.Segment
	length  float64
}

type connectorData struct {
	distance            float64
	neighbours          []neighbour
	previousSegment     graph.Segment
	previousConnectorID string
}

// FindRoute runs the best-first search described in the routing
// design over n between start and stop, returning a Route whose
// segments' cut geometry approximates the path.
func FindRoute(n *graph.Network, start, stop geom.Point) (*Route, error) {
	if n.SegmentsLen() == 0 {
		return nil, ErrMissingSegments
	}

	startSnap, ok := findNearest(n, start)
	if !ok {
		return nil, ErrMissingSegments
	}
	stopSnap, ok := findNearest(n, stop)
	if !ok {
		return nil, ErrMissingSegments
	}

	startPoint := startSnap.point()
	stopPoint := stopSnap.point()

	points := make(map[string]geom.Point, n.ConnectorsLen()+2)
	connMap := make(map[string]*connectorData, n.ConnectorsLen()+2)
	for _, c := range n.Connectors() {
		points[c.ID] = c.Point
		connMap[c.ID] = &connectorData{distance: math.Inf(1)}
	}
	points[startConnectorID] = startPoint
	points[stopConnectorID] = stopPoint
	connMap[startConnectorID] = &connectorData{distance: math.Inf(1)}
	connMap[stopConnectorID] = &connectorData{distance: math.Inf(1)}

	buildNeighbours(n, connMap, startSnap.segment.ID, stopSnap.segment.ID)

	connMap[startConnectorID].distance = 0

	var open openSet
	open.Push(priority(0, startPoint, stopPoint), startConnectorID)

	found := false
	for open.Len() > 0 {
		item := open.Pop()
		current := item.connID
		if current == stopConnectorID {
			found = true
			break
		}

		data := connMap[current]
		for _, nb := range data.neighbours {
			newDist := data.distance + nb.length
			target := connMap[nb.connID]
			if newDist >= target.distance {
				continue
			}
			target.distance = newDist
			target.previousSegment = nb.segment
			target.previousConnectorID = current
			open.Push(priority(newDist, points[nb.connID], stopPoint), nb.connID)
		}
	}

	if !found {
		return nil, ErrCouldNotFindRoute
	}

	return reconstruct(connMap, points, startSnap, stopSnap, start, stop), nil
}

// priority computes the A* f-value g+h, scaled by 1000 and rounded to
// an integer so ties can break deterministically on connector id.
func priority(g float64, from, to geom.Point) int64 {
	h := math.Hypot(to.X-from.X, to.Y-from.Y)
	return int64(math.Round((g + h) * 1000))
}

// buildNeighbours populates each connector's neighbour list: for
// every segment, the resolved connector set (its own ids that exist
// in connMap, plus "#start"/"#stop" if it hosts that synthetic
// endpoint) forms a complete subgraph of pairwise neighbours.
func buildNeighbours(n *graph.Network, connMap map[string]*connectorData, startHostID, stopHostID string) {
	for _, s := range n.Segments() {
		resolved := make([]string, 0, len(s.ConnectorIDs)+2)
		for _, cid := range s.ConnectorIDs {
			if _, ok := connMap[cid]; ok {
				resolved = append(resolved, cid)
			}
		}
		if s.ID == startHostID {
			resolved = append(resolved, startConnectorID)
		}
		if s.ID == stopHostID {
			resolved = append(resolved, stopConnectorID)
		}

		length := linear.Length(s.Geometry)
		for _, a := range resolved {
			for _, b := range resolved {
				if a == b {
					continue
				}
				connMap[a].neighbours = append(connMap[a].neighbours, neighbour{
					connID:  b,
					segment: s,
					length:  length,
				})
			}
		}
	}
}

type hop struct {
	segment    graph.Segment
	start, stop float64
}

func reconstruct(connMap map[string]*connectorData, points map[string]geom.Point, startSnap, stopSnap segmentWithPosition, start, stop geom.Point) *Route {
	var hops []hop

	current := stopConnectorID
	for {
		data := connMap[current]
		if data.previousConnectorID == "" {
			break
		}
		prevID := data.previousConnectorID
		seg := data.previousSegment

		startPos := linear.LocatePoint(seg.Geometry, points[prevID])
		stopPos := linear.LocatePoint(seg.Geometry, points[current])
		hops = append(hops, hop{segment: seg, start: startPos, stop: stopPos})

		current = prevID
	}

	// Override the ends with the exact nearest-segment positions
	// rather than the recomputed LocatePoint values, avoiding the
	// rounding hazard of re-deriving a position that was originally
	// produced by interpolation.
	hops[0].stop = stopSnap.position
	hops[len(hops)-1].start = startSnap.position

	for i, j := 0, len(hops)-1; i < j; i, j = i+1, j-1 {
		hops[i], hops[j] = hops[j], hops[i]
	}

	segments := make([]RouteSegment, len(hops))
	for i, h := range hops {
		segments[i] = RouteSegment{Segment: h.segment, Start: h.start, Stop: h.stop}
	}

	return &Route{Stops: [2]geom.Point{start, stop}, Segments: segments}
}
