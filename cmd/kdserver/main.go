package main

import (
	"flag"
	"log"
	"net/http"
	"strings"
	"time"

	"kuanb/kdindex/geom"
	"kuanb/kdindex/kdtree"
	"kuanb/kdindex/osm"
)

// lonLat is the domain of an index over OSM coordinates
var lonLat = geom.Rect{MinX: -180, MinY: -90, MaxX: 180, MaxY: 90}

// buildIndex loads the nodes of pbfFile, if any, into a new index
func buildIndex(pbfFile string, opts osm.LoadOptions) (*kdtree.Sync[int64], error) {
	tree, err := kdtree.NewBounded[int64](lonLat)
	if err != nil {
		return nil, err
	}
	if pbfFile == "" {
		return kdtree.NewSync(tree), nil
	}

	log.Printf("Loading nodes from %s", pbfFile)
	nodes, err := osm.LoadNodes(pbfFile, opts)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if err := tree.Insert(n.Point(), int64(n.ID)); err != nil {
			log.Printf("Skipping node %d: %v", n.ID, err)
		}
	}
	log.Printf("Built index with %d points", tree.Len())
	return kdtree.NewSync(tree), nil
}

func main() {
	pbfFile := flag.String("pbf", "", "OSM PBF file to index (empty starts with no points)")
	addr := flag.String("addr", ":8080", "listen address")
	tagged := flag.Bool("tagged", true, "index only nodes that carry tags")
	tags := flag.String("tags", "", "comma separated tag keys; index only nodes with one of them")
	metricsInterval := flag.Duration("metrics-interval", 30*time.Second, "interval between metrics log lines")
	flag.Parse()

	log.Println("kdserver starting...")

	opts := osm.LoadOptions{TaggedOnly: *tagged}
	if *tags != "" {
		opts.Tags = strings.Split(*tags, ",")
	}
	index, err := buildIndex(*pbfFile, opts)
	if err != nil {
		log.Fatal(err)
	}

	server := NewServer(index)
	server.startMetricsLogger(*metricsInterval, make(chan struct{}))

	log.Printf("Listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, server.Handler()))
}
