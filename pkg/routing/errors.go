package routing

import "errors"

// RoutingError values are the coarse taxonomy the router exposes to
// callers; routing failures are treated as opaque beyond this set.
var (
	// ErrMissingSegments is returned when a search is invoked on a
	// graph with no segments.
	ErrMissingSegments = errors.New("routing: no segments in graph")

	// ErrTileFetchingError is returned by pkg/tilenet when every tile
	// in a query's window failed to fetch. The core search itself
	// never produces it.
	ErrTileFetchingError = errors.New("routing: failed to fetch any tile for this query")

	// ErrTileParsingError is returned when a tile failed to parse into
	// the graph.
	ErrTileParsingError = errors.New("routing: failed to parse tile")

	// ErrCouldNotFindRoute is returned when the search exhausts its
	// queue without reaching the stop connector.
	ErrCouldNotFindRoute = errors.New("routing: could not find a route")
)
