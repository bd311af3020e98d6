package pointset

import (
	"fmt"
	"math"

	"kuanb/kdindex/geom"
	"kuanb/kdindex/kdtree"
)

// Linear answers every query by scanning all stored points.
type Linear[V any] struct {
	points map[geom.Point]V
}

// NewLinear returns an empty Linear set.
func NewLinear[V any]() *Linear[V] {
	return &Linear[V]{points: make(map[geom.Point]V)}
}

func (l *Linear[V]) Insert(p geom.Point, val V) error {
	if !p.Valid() {
		return fmt.Errorf("%w: point %v", kdtree.ErrInvalidArgument, p)
	}
	l.points[p] = val
	return nil
}

func (l *Linear[V]) Contains(p geom.Point) bool {
	_, ok := l.points[p]
	return ok
}

func (l *Linear[V]) Get(p geom.Point) (V, error) {
	if !p.Valid() {
		var zero V
		return zero, fmt.Errorf("%w: point %v", kdtree.ErrInvalidArgument, p)
	}
	val, ok := l.points[p]
	if !ok {
		return val, fmt.Errorf("%w: %v", kdtree.ErrNotFound, p)
	}
	return val, nil
}

// Range returns the stored points inside r, bounds inclusive.
func (l *Linear[V]) Range(r geom.Rect) ([]geom.Point, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: rect %v", kdtree.ErrInvalidArgument, r)
	}
	var points []geom.Point
	for p := range l.points {
		if r.Contains(p) {
			points = append(points, p)
		}
	}
	return points, nil
}

// Nearest returns a stored point at minimum squared distance from q.
func (l *Linear[V]) Nearest(q geom.Point) (geom.Point, bool) {
	if !q.Valid() {
		return geom.Point{}, false
	}
	var champ geom.Point
	best := math.Inf(+1)
	found := false
	for p := range l.points {
		if d := p.DistanceSquared(q); !found || d < best {
			champ, best, found = p, d, true
		}
	}
	return champ, found
}

func (l *Linear[V]) Len() int {
	return len(l.points)
}

func (l *Linear[V]) IsEmpty() bool {
	return len(l.points) == 0
}
