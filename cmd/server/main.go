package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/azybler/tileroute/pkg/api"
	"github.com/azybler/tileroute/pkg/tilenet"
)

func main() {
	tileDir := flag.String("tile-dir", "", "Local directory of {z}/{x}/{y}.mvt tiles")
	tileURL := flag.String("tile-url", "", "Base URL serving {z}/{x}/{y}.mvt tiles")
	strict := flag.Bool("strict", false, "Abort on any malformed tile feature instead of skipping it")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	if (*tileDir == "") == (*tileURL == "") {
		log.Fatalf("exactly one of -tile-dir or -tile-url is required")
	}

	var fetcher tilenet.Fetcher
	switch {
	case *tileDir != "":
		log.Printf("Serving tiles from disk: %s", *tileDir)
		fetcher = tilenet.DiskFetcher{Root: *tileDir}
	case *tileURL != "":
		log.Printf("Serving tiles from %s", *tileURL)
		fetcher = tilenet.HTTPFetcher{Base: *tileURL}
	}

	start := time.Now()
	network := tilenet.New(fetcher, *strict)
	log.Printf("Ready in %s", time.Since(start).Round(time.Millisecond))

	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	stats := api.StatsResponse{TileCacheCapacity: 27}

	handlers := api.NewHandlers(network, stats)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
