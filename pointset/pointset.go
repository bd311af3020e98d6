// Package pointset holds point-keyed maps with the same contract as
// kdtree.Tree, used as reference implementations when checking the tree.
package pointset

import (
	"kuanb/kdindex/geom"
	"kuanb/kdindex/kdtree"
)

// Index is the operation set shared by kdtree.Tree and the sets in this
// package.
type Index[V any] interface {
	Insert(p geom.Point, val V) error
	Contains(p geom.Point) bool
	Get(p geom.Point) (V, error)
	Range(r geom.Rect) ([]geom.Point, error)
	Nearest(q geom.Point) (geom.Point, bool)
	Len() int
	IsEmpty() bool
}

var (
	_ Index[int] = (*kdtree.Tree[int])(nil)
	_ Index[int] = (*kdtree.Sync[int])(nil)
	_ Index[int] = (*Linear[int])(nil)
	_ Index[int] = (*RTree[int])(nil)
)
