package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"

	"github.com/azybler/tileroute/pkg/geom"
	"github.com/azybler/tileroute/pkg/routing"
)

// RouteFinder is the routing collaborator Handlers depends on.
// tilenet.CachedNetwork satisfies this.
type RouteFinder interface {
	FindRoute(ctx context.Context, start, stop geom.Point) (*routing.Route, error)
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	finder RouteFinder
	stats  StatsResponse
}

// NewHandlers creates handlers with the given route finder.
func NewHandlers(finder RouteFinder, stats StatsResponse) *Handlers {
	return &Handlers{
		finder: finder,
		stats:  stats,
	}
}

// HandleRoute handles POST /api/v1/route.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	// Enforce Content-Type.
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	// Parse request.
	var req RouteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	// Validate coordinates.
	if err := validateCoord(req.Start); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "start")
		return
	}
	if err := validateCoord(req.End); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "end")
		return
	}

	start := geom.Point{X: req.Start.Lng, Y: req.Start.Lat}
	stop := geom.Point{X: req.End.Lng, Y: req.End.Lat}

	route, err := h.finder.FindRoute(r.Context(), start, stop)
	if err != nil {
		switch {
		case errors.Is(err, routing.ErrCouldNotFindRoute):
			writeError(w, http.StatusNotFound, "no_route_found", "")
		case errors.Is(err, routing.ErrMissingSegments):
			writeError(w, http.StatusUnprocessableEntity, "point_too_far_from_road", "")
		case errors.Is(err, routing.ErrTileFetchingError):
			writeError(w, http.StatusServiceUnavailable, "tile_fetching_error", "")
		case errors.Is(err, routing.ErrTileParsingError):
			writeError(w, http.StatusInternalServerError, "tile_parsing_error", "")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "")
		}
		return
	}

	resp := RouteResponse{
		Geometry: json.RawMessage(route.SegmentsAsGeoJSON()),
	}
	for _, rs := range route.Segments {
		resp.Segments = append(resp.Segments, SegmentJSON{
			SegmentID: rs.Segment.ID,
			Start:     rs.Start,
			Stop:      rs.Stop,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.stats)
}

func validateCoord(ll LatLngJSON) error {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
