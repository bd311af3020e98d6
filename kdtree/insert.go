package kdtree

import (
	"fmt"

	"kuanb/kdindex/geom"
)

// Insert stores val under p. If p is already present its value is replaced
// and the size is unchanged.
func (t *Tree[V]) Insert(p geom.Point, val V) error {
	if !p.Valid() {
		return fmt.Errorf("%w: point %v", ErrInvalidArgument, p)
	}

	// The root slot behaves as the child of a horizontal node.
	slot, orient := &t.root, Vertical
	for *slot != nil {
		n := *slot
		if n.p == p {
			n.val = val
			return nil
		}
		if n.goesLow(p) {
			slot = &n.low
		} else {
			slot = &n.high
		}
		orient = !n.orient
	}

	*slot = &node[V]{p: p, val: val, orient: orient}
	t.count++
	t.bounds = t.bounds.Extend(p)
	return nil
}

// find returns the node holding p, or nil.
func (t *Tree[V]) find(p geom.Point) *node[V] {
	n := t.root
	for n != nil {
		if n.p == p {
			return n
		}
		if n.goesLow(p) {
			n = n.low
		} else {
			n = n.high
		}
	}
	return nil
}

// Contains reports whether p is stored in the tree. It is false for an
// invalid point.
func (t *Tree[V]) Contains(p geom.Point) bool {
	if !p.Valid() {
		return false
	}
	return t.find(p) != nil
}

// Get returns the value stored under p.
func (t *Tree[V]) Get(p geom.Point) (V, error) {
	var zero V
	if !p.Valid() {
		return zero, fmt.Errorf("%w: point %v", ErrInvalidArgument, p)
	}
	n := t.find(p)
	if n == nil {
		return zero, fmt.Errorf("%w: %v", ErrNotFound, p)
	}
	return n.val, nil
}

// Set is a tree used as a plain point set.
type Set = Tree[struct{}]

// NewSet returns an empty point set over the unit square.
func NewSet() *Set {
	return New[struct{}]()
}
