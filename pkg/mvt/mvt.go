// Package mvt decodes Mapbox Vector Tiles into a routing graph.Network.
// It consumes exactly two layers, "connectors" and "segments", mapping
// tile-local coordinates to WGS84 using the tile's geographic bounds.
package mvt

import (
	"encoding/json"
	"log"

	"github.com/azybler/tileroute/pkg/geom"
	"github.com/azybler/tileroute/pkg/graph"
	"github.com/paulmach/orb"
	encmvt "github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/pkg/errors"
)

const (
	connectorsLayer = "connectors"
	segmentsLayer   = "segments"
	extent          = 4096.0
)

// ParseError distinguishes the two malformation kinds the adapter can
// report: a bad connector feature (only reported in strict mode; in
// non-strict mode it's logged and skipped) and a bad segment property
// (always reported, regardless of strict — see Parse's doc comment).
type ParseError struct {
	Kind string // "connector" or "segment"
	ID   string
	Err  error
}

func (e *ParseError) Error() string {
	return "mvt: invalid " + e.Kind + " " + e.ID + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes buf (an MVT tile, gzipped or raw) at coordinate tile
// and populates n with its connectors and segments.
//
// In strict mode, the first malformed connector feature aborts the
// whole parse with a *ParseError. In non-strict mode, malformed
// connector features are logged and skipped. Segment features do not
// honor strict: a segment with no id is logged and skipped, a
// non-line geometry is silently skipped, and a segment with a
// reserved id or a missing or misformatted "connector_ids" is always
// a parse error, strict or not.
func Parse(n *graph.Network, buf []byte, tile maptile.Tile, strict bool) error {
	layers, err := encmvt.UnmarshalGzipped(buf)
	if err != nil {
		layers, err = encmvt.Unmarshal(buf)
		if err != nil {
			return errors.Wrap(err, "mvt: decode")
		}
	}

	for _, layer := range layers {
		switch layer.Name {
		case connectorsLayer:
			layer.ProjectToWGS84(tile)
			if err := parseConnectors(n, layer, strict); err != nil {
				return err
			}
		case segmentsLayer:
			layer.ProjectToWGS84(tile)
			if err := parseSegments(n, layer); err != nil {
				return err
			}
		}
	}

	return nil
}

func parseConnectors(n *graph.Network, layer *encmvt.Layer, strict bool) error {
	for _, f := range layer.Features {
		id, ok := featureID(f)
		if !ok {
			if strict {
				return &ParseError{Kind: "connector", ID: "<unknown>", Err: errors.New("missing id property")}
			}
			log.Printf("mvt: skipping connector feature with missing id")
			continue
		}
		if id == reservedStartID || id == reservedStopID {
			if strict {
				return &ParseError{Kind: "connector", ID: id, Err: errors.New("reserved connector id")}
			}
			log.Printf("mvt: skipping connector %q: reserved id", id)
			continue
		}

		p, ok := connectorPoint(f.Geometry)
		if !ok {
			if strict {
				return &ParseError{Kind: "connector", ID: id, Err: errors.New("missing or invalid point geometry")}
			}
			log.Printf("mvt: skipping connector %q: invalid geometry", id)
			continue
		}

		n.PushConnector(graph.Connector{ID: id, Point: geom.Point{X: p[0], Y: p[1]}})
	}
	return nil
}

func parseSegments(n *graph.Network, layer *encmvt.Layer) error {
	for _, f := range layer.Features {
		id, ok := featureID(f)
		if !ok {
			log.Printf("mvt: skipping segment feature with missing id")
			continue
		}
		if id == reservedStartID || id == reservedStopID {
			return &ParseError{Kind: "segment", ID: id, Err: errors.New("reserved segment id")}
		}

		line, ok := segmentLine(f.Geometry)
		if !ok {
			// Multi-linestring or non-line geometry: silently skipped,
			// regardless of strict.
			continue
		}

		connectorIDs, err := connectorIDsProperty(f.Properties)
		if err != nil {
			return &ParseError{Kind: "segment", ID: id, Err: err}
		}

		poly := make(geom.Polyline, len(line))
		for i, p := range line {
			poly[i] = geom.Point{X: p[0], Y: p[1]}
		}

		n.PushSegment(graph.Segment{ID: id, Geometry: poly, ConnectorIDs: connectorIDs})
	}
	return nil
}

const (
	reservedStartID = "#start"
	reservedStopID  = "#stop"
)

// featureID reads the "id" property, which is the canonical place a
// connector or segment's identifier is stored; the MVT feature's own
// numeric id is unrelated and only used as a fallback when the
// property is absent, for tolerance of hand-built tiles.
func featureID(f *geojson.Feature) (string, bool) {
	if s, ok := f.Properties["id"].(string); ok && s != "" {
		return s, true
	}
	switch v := f.ID.(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case float64:
		return formatID(v), true
	case int64:
		return formatID(float64(v)), true
	}
	return "", false
}

func formatID(v float64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func connectorPoint(g orb.Geometry) ([2]float64, bool) {
	switch p := g.(type) {
	case orb.Point:
		return [2]float64{p[0], p[1]}, true
	case orb.MultiPoint:
		if len(p) == 0 {
			return [2]float64{}, false
		}
		return [2]float64{p[0][0], p[0][1]}, true
	}
	return [2]float64{}, false
}

func segmentLine(g orb.Geometry) (orb.LineString, bool) {
	switch l := g.(type) {
	case orb.LineString:
		if len(l) < 2 {
			return nil, false
		}
		return l, true
	default:
		// Includes orb.MultiLineString: silently skipped.
		return nil, false
	}
}

func connectorIDsProperty(props geojson.Properties) ([]string, error) {
	raw, ok := props["connector_ids"]
	if !ok {
		return nil, errors.New("missing connector_ids property")
	}
	s, ok := raw.(string)
	if !ok {
		return nil, errors.New("connector_ids property is not a string")
	}
	var ids []string
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		return nil, errors.Wrap(err, "connector_ids is not a JSON array of strings")
	}
	return ids, nil
}
