package geom

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// ErrInvalidRect is returned when a rectangle has NaN bounds or a minimum
// greater than its maximum.
var ErrInvalidRect = errors.New("invalid rectangle")

// Rect is an immutable axis-aligned rectangle [MinX, MaxX] x [MinY, MaxY].
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// UnitSquare is the default domain of a tree.
var UnitSquare = Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}

// NewRect creates a rectangle, checking that the bounds are ordered.
func NewRect(minX, minY, maxX, maxY float64) (Rect, error) {
	r := Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
	if !r.Valid() {
		return Rect{}, fmt.Errorf("%w: %v", ErrInvalidRect, r)
	}
	return r, nil
}

// Valid reports whether r has no NaN bound and MinX <= MaxX, MinY <= MaxY.
func (r Rect) Valid() bool {
	return r.MinX <= r.MaxX && r.MinY <= r.MaxY
}

// Contains reports whether p lies inside r. All four bounds are inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX &&
		p.Y >= r.MinY && p.Y <= r.MaxY
}

// DistanceSquared returns the squared distance from p to the closest point
// of r, which is 0 when p is inside or on the boundary.
func (r Rect) DistanceSquared(p Point) float64 {
	var dx, dy float64
	if p.X < r.MinX {
		dx = p.X - r.MinX
	} else if p.X > r.MaxX {
		dx = p.X - r.MaxX
	}
	if p.Y < r.MinY {
		dy = p.Y - r.MinY
	} else if p.Y > r.MaxY {
		dy = p.Y - r.MaxY
	}
	return dx*dx + dy*dy
}

// Extend returns the smallest rectangle covering both r and p.
func (r Rect) Extend(p Point) Rect {
	return Rect{
		MinX: math.Min(r.MinX, p.X),
		MinY: math.Min(r.MinY, p.Y),
		MaxX: math.Max(r.MaxX, p.X),
		MaxY: math.Max(r.MaxY, p.Y),
	}
}

// Bound converts r to an orb.Bound.
func (r Rect) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{r.MinX, r.MinY},
		Max: orb.Point{r.MaxX, r.MaxY},
	}
}

// RectFromBound converts an orb.Bound to a Rect.
func RectFromBound(b orb.Bound) Rect {
	return Rect{MinX: b.Min[0], MinY: b.Min[1], MaxX: b.Max[0], MaxY: b.Max[1]}
}
