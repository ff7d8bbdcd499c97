// Package tilenet maintains an LRU cache of fetched vector tiles and
// assembles a fresh routing graph from the current 3x3 tile window on
// every query.
package tilenet

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/pkg/errors"

	"github.com/azybler/tileroute/pkg/geom"
	"github.com/azybler/tileroute/pkg/graph"
	"github.com/azybler/tileroute/pkg/mvt"
	"github.com/azybler/tileroute/pkg/routing"
)

const (
	cacheCapacity = 27
	queryZoom     = maptile.Zoom(14)
)

// Fetcher retrieves the raw MVT bytes for a single tile.
type Fetcher interface {
	FetchTile(ctx context.Context, t maptile.Tile) ([]byte, error)
}

// DiskFetcher reads tiles from a local directory tree laid out as
// {Root}/{z}/{x}/{y}.mvt.
type DiskFetcher struct {
	Root string
}

func (f DiskFetcher) FetchTile(ctx context.Context, t maptile.Tile) ([]byte, error) {
	path := filepath.Join(f.Root, fmt.Sprint(t.Z), fmt.Sprint(t.X), fmt.Sprintf("%d.mvt", t.Y))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "tilenet: read %s", path)
	}
	return data, nil
}

// HTTPFetcher fetches tiles over HTTP from {Base}/{z}/{x}/{y}.mvt.
// Client defaults to http.DefaultClient when nil.
type HTTPFetcher struct {
	Base   string
	Client *http.Client
}

func (f HTTPFetcher) FetchTile(ctx context.Context, t maptile.Tile) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	url := fmt.Sprintf("%s/%d/%d/%d.mvt", f.Base, t.Z, t.X, t.Y)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "tilenet: build request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "tilenet: fetch tile")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("tilenet: fetch tile: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "tilenet: read response body")
	}
	return data, nil
}

// CachedNetwork is a tile-backed routing network. Each FindRoute call
// rebuilds a fresh graph.Network from the current 3x3 tile window
// around the start point, fetching whatever tiles the LRU doesn't
// already hold.
type CachedNetwork struct {
	fetcher Fetcher
	strict  bool

	mu    sync.Mutex
	tiles *lru.Cache[maptile.Tile, []byte]
}

// New creates a CachedNetwork backed by fetcher. strict controls the
// MVT parsing mode passed through to mvt.Parse.
func New(fetcher Fetcher, strict bool) *CachedNetwork {
	cache, err := lru.New[maptile.Tile, []byte](cacheCapacity)
	if err != nil {
		// Only fails for a non-positive size, which cacheCapacity never is.
		panic(err)
	}
	return &CachedNetwork{fetcher: fetcher, strict: strict, tiles: cache}
}

// tileWindow returns the 3x3 block of tiles centered on center,
// dropping any that would fall outside the valid coordinate range for
// its zoom level (only possible near the poles/antimeridian).
func tileWindow(center maptile.Tile) []maptile.Tile {
	span := int64(1) << uint(center.Z)
	window := make([]maptile.Tile, 0, 9)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			x := int64(center.X) + dx
			y := int64(center.Y) + dy
			if x < 0 || x >= span || y < 0 || y >= span {
				continue
			}
			window = append(window, maptile.Tile{X: uint32(x), Y: uint32(y), Z: center.Z})
		}
	}
	return window
}

// FindRoute rebuilds the routing graph from the tile window around
// start and finds a route to stop. It fetches any tiles missing from
// the cache concurrently, awaiting all of them; a tile that fails to
// fetch is logged and dropped rather than retried. If none of the
// window's tiles end up available (cached or freshly fetched),
// FindRoute reports ErrTileFetchingError rather than silently running
// the search over an empty graph and reporting a topology gap that
// doesn't really exist.
func (c *CachedNetwork) FindRoute(ctx context.Context, start, stop geom.Point) (*routing.Route, error) {
	center := maptile.At(orb.Point{start.X, start.Y}, queryZoom)
	window := tileWindow(center)

	c.mu.Lock()
	var missing []maptile.Tile
	for _, t := range window {
		if !c.tiles.Contains(t) {
			missing = append(missing, t)
		}
	}
	c.mu.Unlock()

	if len(missing) > 0 {
		data := make([][]byte, len(missing))
		fetchErrs := make([]error, len(missing))

		var wg sync.WaitGroup
		wg.Add(len(missing))
		for i, t := range missing {
			go func(i int, t maptile.Tile) {
				defer wg.Done()
				d, err := c.fetcher.FetchTile(ctx, t)
				data[i] = d
				fetchErrs[i] = err
			}(i, t)
		}
		wg.Wait()

		c.mu.Lock()
		for i, t := range missing {
			if fetchErrs[i] != nil {
				log.Printf("tilenet: could not fetch tile %v: %v", t, fetchErrs[i])
				continue
			}
			c.tiles.Add(t, data[i])
		}
		c.mu.Unlock()
	}

	n := graph.New()
	available := 0

	c.mu.Lock()
	for _, t := range window {
		tileData, ok := c.tiles.Get(t)
		if !ok {
			continue
		}
		available++
		if err := mvt.Parse(n, tileData, t, c.strict); err != nil {
			c.mu.Unlock()
			log.Printf("tilenet: tile parsing error at %v: %v", t, err)
			return nil, routing.ErrTileParsingError
		}
	}
	c.mu.Unlock()

	if available == 0 {
		return nil, routing.ErrTileFetchingError
	}

	return routing.FindRoute(n, start, stop)
}
