package routing

import (
	"encoding/json"

	"github.com/azybler/tileroute/pkg/geom"
	"github.com/azybler/tileroute/pkg/graph"
	"github.com/azybler/tileroute/pkg/linear"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RouteSegment is one leg of a Route: a host segment and the
// fractional interval of it that the route uses. Start may exceed
// Stop, which records the traversal direction; CutGeometry normalizes
// the interval but callers can read direction from the unordered pair.
type RouteSegment struct {
	Segment    graph.Segment
	Start, Stop float64
}

// CutGeometry extracts the sub-polyline of the segment's geometry
// between Start and Stop (in either order). Vertices are retained by
// their computed fractional position, which for an endpoint may land
// marginally off 0 or 1; the prepend/append decision is therefore
// keyed on the *original*, unordered Start/Stop values, not on the
// normalized (lo, hi) bounds used for the retention filter.
func (rs RouteSegment) CutGeometry() geom.Polyline {
	l := rs.Segment.Geometry
	lo, hi := rs.Start, rs.Stop
	if lo > hi {
		lo, hi = hi, lo
	}

	startPoint := linear.InterpolatePoint(l, lo)
	stopPoint := linear.InterpolatePoint(l, hi)

	filtered := make(geom.Polyline, 0, len(l))
	for _, v := range l {
		pos := linear.LocatePoint(l, v)
		if pos >= lo && pos <= hi {
			filtered = append(filtered, v)
		}
	}

	if rs.Start != 0 {
		filtered = append(geom.Polyline{startPoint}, filtered...)
	}
	if rs.Stop != 1 {
		filtered = append(filtered, stopPoint)
	}

	return filtered
}

// ToGeoJSON returns a GeoJSON Feature string for the cut geometry,
// with the host segment's id as the feature id.
func (rs RouteSegment) ToGeoJSON() string {
	ls := make(orb.LineString, 0)
	for _, p := range rs.CutGeometry() {
		ls = append(ls, orb.Point{p.X, p.Y})
	}
	f := geojson.NewFeature(ls)
	f.ID = rs.Segment.ID
	f.Properties = geojson.Properties{}
	b, err := json.Marshal(f)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// Route is the result of a successful FindRoute: the original query
// endpoints and the ordered RouteSegments approximating the path
// between them.
type Route struct {
	Stops    [2]geom.Point
	Segments []RouteSegment
}

// SegmentsAsGeoJSON returns a GeoJSON FeatureCollection string of the
// route's segments, in order.
func (r *Route) SegmentsAsGeoJSON() string {
	fc := geojson.NewFeatureCollection()
	for _, rs := range r.Segments {
		ls := make(orb.LineString, 0)
		for _, p := range rs.CutGeometry() {
			ls = append(ls, orb.Point{p.X, p.Y})
		}
		f := geojson.NewFeature(ls)
		f.ID = rs.Segment.ID
		f.Properties = geojson.Properties{}
		fc.Append(f)
	}
	b, err := json.Marshal(fc)
	if err != nil {
		panic(err)
	}
	return string(b)
}
