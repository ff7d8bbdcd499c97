package graph

import (
	"testing"

	"github.com/azybler/tileroute/pkg/geom"
)

func TestNetworkPushAndLen(t *testing.T) {
	n := New()
	n.PushConnector(Connector{ID: "a", Point: geom.Point{X: 0, Y: 0}})
	n.PushSegment(Segment{ID: "1", Geometry: geom.Polyline{{X: 0, Y: 0}, {X: 1, Y: 1}}})

	if n.ConnectorsLen() != 1 {
		t.Errorf("ConnectorsLen = %d, want 1", n.ConnectorsLen())
	}
	if n.SegmentsLen() != 1 {
		t.Errorf("SegmentsLen = %d, want 1", n.SegmentsLen())
	}
}

func TestCandidateSegments(t *testing.T) {
	n := New()
	n.PushSegment(Segment{ID: "near", Geometry: geom.Polyline{{X: 0, Y: 0}, {X: 1, Y: 0}}})
	n.PushSegment(Segment{ID: "far", Geometry: geom.Polyline{{X: 100, Y: 100}, {X: 101, Y: 100}}})

	var found []int
	n.CandidateSegments(geom.Point{X: 0, Y: 0}, 5, func(idx int) {
		found = append(found, idx)
	})

	if len(found) != 1 || n.Segments()[found[0]].ID != "near" {
		t.Errorf("expected only the near segment as a candidate, got %v", found)
	}
}
