package geom

import (
	"math"
	"strconv"

	"github.com/paulmach/orb"
)

// Point is an immutable location in the plane. Two points are equal when both
// coordinates are exactly equal.
type Point struct {
	X float64
	Y float64
}

// Valid reports whether both coordinates of p are finite. A NaN coordinate
// marks an absent point; an infinite one has no usable distance.
func (p Point) Valid() bool {
	return finite(p.X) && finite(p.Y)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DistanceSquared returns the squared euclidean distance between p and q.
func (p Point) DistanceSquared(q Point) float64 {
	return DistanceSquared(p, q)
}

func (p Point) String() string {
	return "(" + strconv.FormatFloat(p.X, 'f', -1, 64) + ", " + strconv.FormatFloat(p.Y, 'f', -1, 64) + ")"
}

// Orb converts p to an orb.Point.
func (p Point) Orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

// FromOrb converts an orb.Point (x/lon first) to a Point.
func FromOrb(p orb.Point) Point {
	return Point{X: p[0], Y: p[1]}
}

// DistanceSquared is the sum of the squared coordinate differences. All
// distance comparisons in this module are made in squared space.
func DistanceSquared(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}
