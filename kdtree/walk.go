package kdtree

import (
	"github.com/paulmach/orb/geojson"

	"kuanb/kdindex/geom"
)

// NodeInfo describes one node of the tree for drawing or inspection.
type NodeInfo struct {
	Point       geom.Point
	Orientation Orientation
	Depth       int
	// Region is the part of the domain the node's subtree partitions.
	Region geom.Rect
	// SplitFrom and SplitTo are the ends of the splitting line, clipped to
	// Region.
	SplitFrom, SplitTo geom.Point
}

// Walk calls fn for every node in pre-order until fn returns false.
func (t *Tree[V]) Walk(fn func(NodeInfo) bool) {
	walk(t.root, t.bounds, 0, fn)
}

func walk[V any](n *node[V], region geom.Rect, depth int, fn func(NodeInfo) bool) bool {
	if n == nil {
		return true
	}
	info := NodeInfo{
		Point:       n.p,
		Orientation: n.orient,
		Depth:       depth,
		Region:      region,
	}
	if n.orient == Vertical {
		info.SplitFrom = geom.Point{X: n.p.X, Y: region.MinY}
		info.SplitTo = geom.Point{X: n.p.X, Y: region.MaxY}
	} else {
		info.SplitFrom = geom.Point{X: region.MinX, Y: n.p.Y}
		info.SplitTo = geom.Point{X: region.MaxX, Y: n.p.Y}
	}
	if !fn(info) {
		return false
	}
	low, high := n.split(region)
	return walk(n.low, low, depth+1, fn) && walk(n.high, high, depth+1, fn)
}

// GeoJSON renders the tree as a feature collection: the outline of the
// domain, a LineString per splitting line (red for vertical, blue for
// horizontal), then a Point per stored point.
func (t *Tree[V]) GeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	outline := geom.RectFeature(t.bounds)
	outline.Properties["role"] = "bounds"
	fc.Append(outline)

	var points []*geojson.Feature
	t.Walk(func(info NodeInfo) bool {
		line := geom.SegmentFeature(info.SplitFrom, info.SplitTo)
		line.Properties["orientation"] = info.Orientation.String()
		line.Properties["depth"] = info.Depth
		if info.Orientation == Vertical {
			line.Properties["stroke"] = "#FF0000"
		} else {
			line.Properties["stroke"] = "#0000FF"
		}
		fc.Append(line)

		pt := geom.PointFeature(info.Point)
		pt.Properties["depth"] = info.Depth
		points = append(points, pt)
		return true
	})
	for _, pt := range points {
		fc.Append(pt)
	}
	return fc
}
