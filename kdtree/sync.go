package kdtree

import (
	"sync"

	"github.com/paulmach/orb/geojson"

	"kuanb/kdindex/geom"
)

// Sync guards a Tree with a read-write lock so that inserts can run
// alongside queries. Inserts are exclusive; queries share the lock.
type Sync[V any] struct {
	mu   sync.RWMutex
	tree *Tree[V]
}

// NewSync wraps t. t must not be used directly afterwards.
func NewSync[V any](t *Tree[V]) *Sync[V] {
	return &Sync[V]{tree: t}
}

func (s *Sync[V]) Insert(p geom.Point, val V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Insert(p, val)
}

func (s *Sync[V]) Contains(p geom.Point) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Contains(p)
}

func (s *Sync[V]) Get(p geom.Point) (V, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Get(p)
}

func (s *Sync[V]) Range(r geom.Rect) ([]geom.Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Range(r)
}

// RangeFunc holds the read lock while fn runs, so fn must not insert.
func (s *Sync[V]) RangeFunc(r geom.Rect, fn func(p geom.Point, val V) bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.RangeFunc(r, fn)
}

func (s *Sync[V]) Nearest(q geom.Point) (geom.Point, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Nearest(q)
}

func (s *Sync[V]) NearestValue(q geom.Point) (geom.Point, V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.NearestValue(q)
}

func (s *Sync[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Len()
}

func (s *Sync[V]) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.IsEmpty()
}

func (s *Sync[V]) Bounds() geom.Rect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Bounds()
}

func (s *Sync[V]) GeoJSON() *geojson.FeatureCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.GeoJSON()
}
