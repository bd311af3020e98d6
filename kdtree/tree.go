// Package kdtree implements a 2-d tree: a binary space partitioning tree over
// points in the plane that alternates between splitting on x and on y at each
// level. Each point carries a value, so the tree acts as a point-keyed map.
//
// The tree is not rebalanced; its depth depends on insertion order and is n
// in the worst case. A Tree is not safe for concurrent mutation. Concurrent
// queries are safe while nothing is inserted. Use Sync when reads and writes
// overlap.
package kdtree

import (
	"errors"
	"fmt"

	"kuanb/kdindex/geom"
)

var (
	// ErrInvalidArgument is returned when a point has a NaN coordinate or a
	// rectangle is malformed. Nothing is modified when it is returned.
	ErrInvalidArgument = errors.New("kdtree: invalid argument")

	// ErrNotFound is returned by Get for a point that is not stored.
	ErrNotFound = errors.New("kdtree: point not found")
)

// Orientation is the axis a node splits its region on.
type Orientation bool

const (
	// Vertical nodes split on x with a vertical line. The root is vertical.
	Vertical Orientation = true
	// Horizontal nodes split on y with a horizontal line.
	Horizontal Orientation = false
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

type node[V any] struct {
	p      geom.Point
	val    V
	orient Orientation
	low    *node[V] // coordinate on the split axis strictly less than p's
	high   *node[V] // coordinate on the split axis greater than or equal to p's
}

// key returns the node's coordinate on its split axis and q's on the same axis.
func (n *node[V]) key(q geom.Point) (split, query float64) {
	if n.orient == Vertical {
		return n.p.X, q.X
	}
	return n.p.Y, q.Y
}

// goesLow reports whether q belongs in the low subtree of n. Ties on the
// split axis go high.
func (n *node[V]) goesLow(q geom.Point) bool {
	split, query := n.key(q)
	return split > query
}

// split divides region into the parts covered by n's low and high subtrees.
func (n *node[V]) split(region geom.Rect) (low, high geom.Rect) {
	low, high = region, region
	if n.orient == Vertical {
		low.MaxX, high.MinX = n.p.X, n.p.X
	} else {
		low.MaxY, high.MinY = n.p.Y, n.p.Y
	}
	return low, high
}

// Tree is a 2-d tree mapping points to values of type V. The zero value is
// not usable; create trees with New or NewBounded.
type Tree[V any] struct {
	root   *node[V]
	count  int
	bounds geom.Rect
}

// New returns an empty tree whose domain is the unit square.
func New[V any]() *Tree[V] {
	return &Tree[V]{bounds: geom.UnitSquare}
}

// NewBounded returns an empty tree over the given domain rectangle, which
// must have finite bounds.
func NewBounded[V any](bounds geom.Rect) (*Tree[V], error) {
	lo := geom.Point{X: bounds.MinX, Y: bounds.MinY}
	hi := geom.Point{X: bounds.MaxX, Y: bounds.MaxY}
	if !bounds.Valid() || !lo.Valid() || !hi.Valid() {
		return nil, fmt.Errorf("%w: bounds %v", ErrInvalidArgument, bounds)
	}
	return &Tree[V]{bounds: bounds}, nil
}

// Len returns the number of distinct points in the tree.
func (t *Tree[V]) Len() int {
	return t.count
}

// IsEmpty reports whether the tree holds no points.
func (t *Tree[V]) IsEmpty() bool {
	return t.root == nil
}

// Bounds returns the tree's domain: the configured rectangle extended to
// cover every inserted point.
func (t *Tree[V]) Bounds() geom.Rect {
	return t.bounds
}
