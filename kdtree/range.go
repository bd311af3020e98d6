package kdtree

import (
	"fmt"

	"kuanb/kdindex/geom"
)

// Range returns every stored point inside r, bounds inclusive. The order of
// the result is unspecified.
func (t *Tree[V]) Range(r geom.Rect) ([]geom.Point, error) {
	var points []geom.Point
	err := t.RangeFunc(r, func(p geom.Point, _ V) bool {
		points = append(points, p)
		return true
	})
	return points, err
}

// RangeFunc calls fn for every stored point inside r with its value. The
// search stops when fn returns false.
func (t *Tree[V]) RangeFunc(r geom.Rect, fn func(p geom.Point, val V) bool) error {
	if !r.Valid() {
		return fmt.Errorf("%w: rect %v", ErrInvalidArgument, r)
	}
	search(t.root, r, fn)
	return nil
}

func search[V any](n *node[V], r geom.Rect, fn func(geom.Point, V) bool) bool {
	if n == nil {
		return true
	}
	split, lo, hi := n.p.X, r.MinX, r.MaxX
	if n.orient == Horizontal {
		split, lo, hi = n.p.Y, r.MinY, r.MaxY
	}

	// Both halves are visited when r straddles the splitting line.
	if split >= lo {
		if !search(n.low, r, fn) {
			return false
		}
	}
	if split <= hi {
		if !search(n.high, r, fn) {
			return false
		}
	}
	if r.Contains(n.p) {
		return fn(n.p, n.val)
	}
	return true
}
