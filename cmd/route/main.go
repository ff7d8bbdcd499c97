// Command route is a one-shot CLI that resolves a single route query
// against a tile source and prints the resulting GeoJSON to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/azybler/tileroute/pkg/geom"
	"github.com/azybler/tileroute/pkg/tilenet"
)

func main() {
	tileDir := flag.String("tile-dir", "", "Local directory of {z}/{x}/{y}.mvt tiles")
	tileURL := flag.String("tile-url", "", "Base URL serving {z}/{x}/{y}.mvt tiles")
	strict := flag.Bool("strict", false, "Abort on any malformed tile feature instead of skipping it")
	startLng := flag.Float64("start-lng", 0, "Start point longitude")
	startLat := flag.Float64("start-lat", 0, "Start point latitude")
	stopLng := flag.Float64("stop-lng", 0, "Stop point longitude")
	stopLat := flag.Float64("stop-lat", 0, "Stop point latitude")
	flag.Parse()

	if (*tileDir == "") == (*tileURL == "") {
		fmt.Fprintln(os.Stderr, "Usage: route [--tile-dir dir | --tile-url base] --start-lng --start-lat --stop-lng --stop-lat")
		os.Exit(1)
	}

	var fetcher tilenet.Fetcher
	switch {
	case *tileDir != "":
		fetcher = tilenet.DiskFetcher{Root: *tileDir}
	case *tileURL != "":
		fetcher = tilenet.HTTPFetcher{Base: *tileURL}
	}

	network := tilenet.New(fetcher, *strict)

	start := geom.Point{X: *startLng, Y: *startLat}
	stop := geom.Point{X: *stopLng, Y: *stopLat}

	route, err := network.FindRoute(context.Background(), start, stop)
	if err != nil {
		log.Fatalf("find route: %v", err)
	}

	fmt.Println(route.SegmentsAsGeoJSON())
}
