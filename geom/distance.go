package geom

import "math"

const EarthRadiusMeters = 6371000.0

// GreatCircleDistance returns the haversine distance in meters between two
// points whose X is a longitude and Y a latitude, both in degrees.
func GreatCircleDistance(a, b Point) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180.0 }

	dLat := toRad(b.Y - a.Y)
	dLon := toRad(b.X - a.X)
	lat1Rad := toRad(a.Y)
	lat2Rad := toRad(b.Y)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}
