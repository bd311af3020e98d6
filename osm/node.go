package osm

import "kuanb/kdindex/geom"

type OsmNodeId int64

type OsmNode struct {
	ID   OsmNodeId
	Lat  float64
	Lon  float64
	Name string
}

// Point returns the node's location with longitude as X and latitude as Y.
func (n *OsmNode) Point() geom.Point {
	return geom.Point{X: n.Lon, Y: n.Lat}
}

// LoadOptions selects which nodes LoadNodes keeps.
type LoadOptions struct {
	// TaggedOnly drops nodes without tags, which are mostly way vertices.
	TaggedOnly bool
	// Tags keeps only nodes carrying at least one of these keys. Empty keeps
	// all.
	Tags []string
}

func (o LoadOptions) keep(tags map[string]string) bool {
	if o.TaggedOnly && len(tags) == 0 {
		return false
	}
	if len(o.Tags) == 0 {
		return true
	}
	for _, k := range o.Tags {
		if _, ok := tags[k]; ok {
			return true
		}
	}
	return false
}
