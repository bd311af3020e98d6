package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"

	"kuanb/kdindex/geom"
	"kuanb/kdindex/kdtree"
)

// Server holds the point index shared by all handlers
type Server struct {
	index *kdtree.Sync[int64]
}

// NewServer creates a server over an index of point ids
func NewServer(index *kdtree.Sync[int64]) *Server {
	return &Server{index: index}
}

// Handler registers the routes on a new mux
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/nearest", s.handleNearest)
	mux.HandleFunc("/range", s.handleRange)
	mux.HandleFunc("/insert", s.handleInsert)
	mux.HandleFunc("/render", s.handleRender)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.collectMetrics())
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// readFeatures parses a GeoJSON FeatureCollection from a POST body
func readFeatures(w http.ResponseWriter, r *http.Request) (*geojson.FeatureCollection, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		http.Error(w, "Invalid GeoJSON: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return fc, true
}

func idFeature(p geom.Point, id int64) *geojson.Feature {
	f := geom.PointFeature(p)
	f.Properties["id"] = id
	return f
}

// handleNearest answers one nearest neighbor query per point in the request
func (s *Server) handleNearest(w http.ResponseWriter, r *http.Request) {
	fc, ok := readFeatures(w, r)
	if !ok {
		return
	}
	queries := geom.PointsFromFeatures(fc)
	if len(queries) == 0 {
		http.Error(w, "No coordinates found in GeoJSON", http.StatusBadRequest)
		return
	}

	log.Printf("Processing nearest request with %d coordinates", len(queries))

	out := geojson.NewFeatureCollection()
	for _, q := range queries {
		p, id, found := s.index.NearestValue(q)
		if !found {
			continue
		}
		f := idFeature(p, id)
		f.Properties["query"] = []float64{q.X, q.Y}
		f.Properties["distance_squared"] = p.DistanceSquared(q)
		f.Properties["meters"] = geom.GreatCircleDistance(q, p)
		out.Append(f)
	}
	writeJSON(w, out)
}

// parseBBox parses "minx,miny,maxx,maxy"
func parseBBox(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rect{}, fmt.Errorf("bbox needs 4 values, got %d", len(parts))
	}
	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geom.Rect{}, fmt.Errorf("bbox value %d: %w", i, err)
		}
		v[i] = f
	}
	return geom.NewRect(v[0], v[1], v[2], v[3])
}

// handleRange returns every indexed point inside ?bbox=minx,miny,maxx,maxy
func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	rect, err := parseBBox(r.URL.Query().Get("bbox"))
	if err != nil {
		http.Error(w, "Invalid bbox: "+err.Error(), http.StatusBadRequest)
		return
	}

	out := geojson.NewFeatureCollection()
	err = s.index.RangeFunc(rect, func(p geom.Point, id int64) bool {
		out.Append(idFeature(p, id))
		return true
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, out)
}

// featureID reads the integer "id" property of f
func featureID(f *geojson.Feature) (int64, error) {
	raw, ok := f.Properties["id"]
	if !ok {
		return 0, errors.New("missing id property")
	}
	v, ok := raw.(float64)
	if !ok || v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("id %v is not an integer", raw)
	}
	return int64(v), nil
}

type idPoint struct {
	p  geom.Point
	id int64
}

// handleInsert adds every point in the request, using the "id" property as
// the value. The whole request is validated before anything is inserted.
func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	fc, ok := readFeatures(w, r)
	if !ok {
		return
	}

	var batch []idPoint
	for i, f := range fc.Features {
		id, err := featureID(f)
		if err != nil {
			http.Error(w, fmt.Sprintf("feature %d: %v", i, err), http.StatusBadRequest)
			return
		}
		for _, p := range geom.FeaturePoints(f) {
			if !p.Valid() {
				http.Error(w, fmt.Sprintf("feature %d: invalid point %v", i, p), http.StatusBadRequest)
				return
			}
			batch = append(batch, idPoint{p: p, id: id})
		}
	}

	for _, e := range batch {
		if err := s.index.Insert(e.p, e.id); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, map[string]int{"inserted": len(batch), "size": s.index.Len()})
}

// handleRender draws the tree's partition as GeoJSON
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.index.GeoJSON())
}
