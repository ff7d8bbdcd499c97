package graph

import (
	"encoding/json"

	"github.com/azybler/tileroute/pkg/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

func toOrbLineString(l geom.Polyline) orb.LineString {
	ls := make(orb.LineString, len(l))
	for i, p := range l {
		ls[i] = orb.Point{p.X, p.Y}
	}
	return ls
}

// ToGeoJSON emits a FeatureCollection of every segment's polyline,
// each tagged with its segment id.
func (n *Network) ToGeoJSON() string {
	fc := geojson.NewFeatureCollection()
	for _, s := range n.segments {
		f := geojson.NewFeature(toOrbLineString(s.Geometry))
		f.ID = s.ID
		f.Properties = geojson.Properties{}
		fc.Append(f)
	}
	b, err := json.Marshal(fc)
	if err != nil {
		// Marshaling a FeatureCollection built from valid geometry
		// never fails; a failure here means orb itself is broken.
		panic(err)
	}
	return string(b)
}
