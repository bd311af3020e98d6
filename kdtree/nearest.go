package kdtree

import (
	"math"

	"kuanb/kdindex/geom"
)

// nearestSearch is the state of a single nearest neighbor query.
type nearestSearch[V any] struct {
	query geom.Point
	best  float64 // squared distance from query to champion
	champ *node[V]
}

// Nearest returns a stored point closest to q. When several points are at the
// same distance any one of them may be returned. ok is false when the tree is
// empty or q is invalid.
func (t *Tree[V]) Nearest(q geom.Point) (p geom.Point, ok bool) {
	p, _, ok = t.NearestValue(q)
	return p, ok
}

// NearestValue is like Nearest but also returns the value stored under the
// point found.
func (t *Tree[V]) NearestValue(q geom.Point) (p geom.Point, val V, ok bool) {
	if t.root == nil || !q.Valid() {
		return p, val, false
	}
	s := &nearestSearch[V]{query: q, best: math.Inf(+1)}
	s.visit(t.root, t.bounds)
	return s.champ.p, s.champ.val, true
}

// visit searches the subtree rooted at n, whose points all lie in region.
func (s *nearestSearch[V]) visit(n *node[V], region geom.Rect) {
	if n == nil {
		return
	}

	if d := n.p.DistanceSquared(s.query); s.champ == nil || d < s.best {
		s.best = d
		s.champ = n
	}
	if s.best == 0 {
		return
	}

	lowRect, highRect := n.split(region)
	near, far := n.low, n.high
	nearRect, farRect := lowRect, highRect
	if !n.goesLow(s.query) {
		near, far = far, near
		nearRect, farRect = farRect, nearRect
	}

	// Going to the query's side first tightens best before the far side is
	// tested against it.
	s.visit(near, nearRect)
	if s.best == 0 {
		return
	}
	if farRect.DistanceSquared(s.query) <= s.best {
		s.visit(far, farRect)
	}
}
