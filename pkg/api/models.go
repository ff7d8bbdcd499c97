package api

import "encoding/json"

// RouteRequest is the JSON body for POST /api/v1/route.
type RouteRequest struct {
	Start LatLngJSON `json:"start"`
	End   LatLngJSON `json:"end"`
}

// LatLngJSON represents a point in JSON. Field names stay lat/lng on
// the wire even though pkg/geom.Point stores the same pair as (X, Y)
// in a planar frame.
type LatLngJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteResponse is the JSON response for a successful route query:
// the route's cut geometry as a GeoJSON FeatureCollection, plus the
// ordered per-segment breakdown that produced it.
type RouteResponse struct {
	Geometry json.RawMessage `json:"geometry"`
	Segments []SegmentJSON   `json:"segments"`
}

// SegmentJSON summarizes one leg of a route: the host segment id and
// the fractional interval of it the route uses.
type SegmentJSON struct {
	SegmentID string  `json:"segment_id"`
	Start     float64 `json:"start"`
	Stop      float64 `json:"stop"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	TileCacheCapacity int `json:"tile_cache_capacity"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
