package mvt

import (
	"testing"

	"github.com/azybler/tileroute/pkg/graph"
	"github.com/paulmach/orb"
	encmvt "github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
)

// A hand-built two-layer tile: one connector and one segment
// referencing it. Coordinates are written directly in tile-pixel
// space (skipping the usual WGS84-to-tile projection step) so the
// fixture matches the layout exactly; Parse's own
// Layer.ProjectToWGS84 call converts them back on the way in, and
// this test only asserts on the resulting counts, not positions.
func TestParseMVTBuffer(t *testing.T) {
	connectors := geojson.NewFeatureCollection()
	cf := geojson.NewFeature(orb.Point{0, 0})
	cf.Properties["id"] = "foo"
	connectors.Append(cf)

	segments := geojson.NewFeatureCollection()
	sf := geojson.NewFeature(orb.LineString{
		{0, 0}, {1024, 0}, {1024, 2048}, {4096, 4096},
	})
	sf.Properties["id"] = "foo"
	sf.Properties["connector_ids"] = `["foo"]`
	segments.Append(sf)

	layers := encmvt.NewLayers(map[string]*geojson.FeatureCollection{
		connectorsLayer: connectors,
		segmentsLayer:   segments,
	})

	data, err := encmvt.Marshal(layers)
	if err != nil {
		t.Fatalf("marshal fixture tile: %v", err)
	}

	n := graph.New()
	tile := maptile.New(0, 0, 0)
	if err := Parse(n, data, tile, true); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if n.SegmentsLen() != 1 {
		t.Errorf("expected 1 segment, got %d", n.SegmentsLen())
	}
	if n.ConnectorsLen() != 1 {
		t.Errorf("expected 1 connector, got %d", n.ConnectorsLen())
	}
}

// A segment missing connector_ids is always a hard parse error.
func TestParseMissingConnectorIDs(t *testing.T) {
	segments := geojson.NewFeatureCollection()
	sf := geojson.NewFeature(orb.LineString{{0, 0}, {1024, 0}})
	sf.Properties["id"] = "bar"
	segments.Append(sf)

	layers := encmvt.NewLayers(map[string]*geojson.FeatureCollection{
		segmentsLayer: segments,
	})
	data, err := encmvt.Marshal(layers)
	if err != nil {
		t.Fatalf("marshal fixture tile: %v", err)
	}

	n := graph.New()
	tile := maptile.New(0, 0, 0)
	if err := Parse(n, data, tile, true); err == nil {
		t.Fatal("expected error for missing connector_ids")
	}
}

// A reserved id on a connector feature is rejected in strict mode
// and skipped in non-strict mode.
func TestParseReservedConnectorID(t *testing.T) {
	connectors := geojson.NewFeatureCollection()
	cf := geojson.NewFeature(orb.Point{0, 0})
	cf.Properties["id"] = "#start"
	connectors.Append(cf)

	layers := encmvt.NewLayers(map[string]*geojson.FeatureCollection{
		connectorsLayer: connectors,
	})
	data, err := encmvt.Marshal(layers)
	if err != nil {
		t.Fatalf("marshal fixture tile: %v", err)
	}

	n := graph.New()
	tile := maptile.New(0, 0, 0)
	if err := Parse(n, data, tile, true); err == nil {
		t.Fatal("expected error for reserved connector id in strict mode")
	}

	n2 := graph.New()
	if err := Parse(n2, data, tile, false); err != nil {
		t.Fatalf("non-strict parse should skip, not fail: %v", err)
	}
	if n2.ConnectorsLen() != 0 {
		t.Errorf("expected reserved connector to be skipped, got %d", n2.ConnectorsLen())
	}
}
