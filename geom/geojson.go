package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// PointFeature builds a GeoJSON Point feature for p.
func PointFeature(p Point) *geojson.Feature {
	return geojson.NewFeature(p.Orb())
}

// SegmentFeature builds a GeoJSON LineString feature from a to b.
func SegmentFeature(a, b Point) *geojson.Feature {
	return geojson.NewFeature(orb.LineString{a.Orb(), b.Orb()})
}

// RectFeature builds a GeoJSON Polygon feature outlining r.
func RectFeature(r Rect) *geojson.Feature {
	return geojson.NewFeature(r.Bound().ToPolygon())
}

// PointsFromFeatures collects the coordinates of every feature in fc, in
// order.
func PointsFromFeatures(fc *geojson.FeatureCollection) []Point {
	var points []Point
	for _, f := range fc.Features {
		points = append(points, FeaturePoints(f)...)
	}
	return points
}

// FeaturePoints returns the coordinates of a Point, MultiPoint or LineString
// feature. Other geometry types yield nothing.
func FeaturePoints(f *geojson.Feature) []Point {
	var points []Point
	switch g := f.Geometry.(type) {
	case orb.Point:
		points = append(points, FromOrb(g))
	case orb.MultiPoint:
		for _, p := range g {
			points = append(points, FromOrb(p))
		}
	case orb.LineString:
		for _, p := range g {
			points = append(points, FromOrb(p))
		}
	}
	return points
}
