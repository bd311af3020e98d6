package osm

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/qedus/osmpbf"
)

// LoadNodes decodes the nodes of an OSM PBF file, keeping those selected by
// opts. Ways and relations are skipped.
func LoadNodes(filePath string, opts LoadOptions) ([]*OsmNode, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeNodes(f, opts)
}

// DecodeNodes is LoadNodes over an already opened PBF stream.
func DecodeNodes(r io.Reader, opts LoadOptions) ([]*OsmNode, error) {
	d := osmpbf.NewDecoder(r)

	// use more memory from the start, it is faster
	d.SetBufferSize(osmpbf.MaxBlobSize)

	// start decoding with several goroutines, it is faster
	if err := d.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return nil, fmt.Errorf("osm: start decoder: %w", err)
	}

	var nodes []*OsmNode
	var nc, wc, rc uint64
	for {
		v, err := d.Decode()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("osm: decode: %w", err)
		}
		switch v := v.(type) {
		case *osmpbf.Node:
			nc++
			if !opts.keep(v.Tags) {
				continue
			}
			nodes = append(nodes, &OsmNode{
				ID:   OsmNodeId(v.ID),
				Lat:  v.Lat,
				Lon:  v.Lon,
				Name: v.Tags["name"],
			})
		case *osmpbf.Way:
			wc++
		case *osmpbf.Relation:
			rc++
		default:
			return nil, fmt.Errorf("osm: unknown type %T", v)
		}
	}
	log.Printf("Decoded %d nodes, %d ways, %d relations (kept %d nodes)", nc, wc, rc, len(nodes))
	return nodes, nil
}
