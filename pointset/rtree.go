package pointset

import (
	"fmt"

	"github.com/tidwall/geoindex"
	"github.com/tidwall/geoindex/algo"
	"github.com/tidwall/rtree"

	"kuanb/kdindex/geom"
	"kuanb/kdindex/kdtree"
)

type rtreeEntry[V any] struct {
	p   geom.Point
	val V
}

// RTree stores points in tidwall/rtree, wrapped by tidwall/geoindex for
// nearest neighbor queries.
type RTree[V any] struct {
	index *geoindex.Index
	count int
}

// NewRTree returns an empty RTree set.
func NewRTree[V any]() *RTree[V] {
	return &RTree[V]{
		index: geoindex.Wrap(&rtree.RTree{}),
	}
}

func box(p geom.Point) [2]float64 {
	return [2]float64{p.X, p.Y}
}

func (r *RTree[V]) lookup(p geom.Point) *rtreeEntry[V] {
	var found *rtreeEntry[V]
	r.index.Search(box(p), box(p), func(_, _ [2]float64, data interface{}) bool {
		e := data.(*rtreeEntry[V])
		if e.p == p {
			found = e
			return false
		}
		return true
	})
	return found
}

func (r *RTree[V]) Insert(p geom.Point, val V) error {
	if !p.Valid() {
		return fmt.Errorf("%w: point %v", kdtree.ErrInvalidArgument, p)
	}
	if e := r.lookup(p); e != nil {
		e.val = val
		return nil
	}
	r.index.Insert(box(p), box(p), &rtreeEntry[V]{p: p, val: val})
	r.count++
	return nil
}

func (r *RTree[V]) Contains(p geom.Point) bool {
	if !p.Valid() {
		return false
	}
	return r.lookup(p) != nil
}

func (r *RTree[V]) Get(p geom.Point) (V, error) {
	var zero V
	if !p.Valid() {
		return zero, fmt.Errorf("%w: point %v", kdtree.ErrInvalidArgument, p)
	}
	e := r.lookup(p)
	if e == nil {
		return zero, fmt.Errorf("%w: %v", kdtree.ErrNotFound, p)
	}
	return e.val, nil
}

// Range returns the stored points inside rect, bounds inclusive.
func (r *RTree[V]) Range(rect geom.Rect) ([]geom.Point, error) {
	if !rect.Valid() {
		return nil, fmt.Errorf("%w: rect %v", kdtree.ErrInvalidArgument, rect)
	}
	points := make([]geom.Point, 0)
	r.index.Search(
		[2]float64{rect.MinX, rect.MinY},
		[2]float64{rect.MaxX, rect.MaxY},
		func(_, _ [2]float64, data interface{}) bool {
			points = append(points, data.(*rtreeEntry[V]).p)
			return true
		},
	)
	return points, nil
}

// Nearest returns the first item of the index's distance-ordered scan.
func (r *RTree[V]) Nearest(q geom.Point) (geom.Point, bool) {
	if r.count == 0 || !q.Valid() {
		return geom.Point{}, false
	}
	var champ geom.Point
	found := false
	r.index.Nearby(
		algo.Box(box(q), box(q), false, nil),
		func(_, _ [2]float64, data interface{}, _ float64) bool {
			champ, found = data.(*rtreeEntry[V]).p, true
			return false
		},
	)
	return champ, found
}

func (r *RTree[V]) Len() int {
	return r.count
}

func (r *RTree[V]) IsEmpty() bool {
	return r.count == 0
}
