// Package geo provides great-circle distance and radius filtering over
// latitude/longitude points.
package geo

import (
	"math"
	"sort"
)

// EarthRadiusKm is the mean Earth radius used by Distance.
const EarthRadiusKm = 6371.0

// kmPerDegree approximates the length of one degree of latitude.
const kmPerDegree = 111.0

// Locatable is anything with a position in degrees (WGS84).
type Locatable interface {
	Coordinates() (lat, lon float64)
}

// Hit pairs an item with its distance from the query point.
type Hit[T any] struct {
	Item       T
	DistanceKm float64
}

// Box is an axis-aligned latitude/longitude rectangle.
type Box struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Distance returns the haversine distance in kilometers between two points
// given in degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := degToRad(lat1)
	lat2Rad := degToRad(lat2)
	dLat := degToRad(lat2 - lat1)
	dLon := degToRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// HasLocation reports whether a coordinate pair is usable. (0, 0) is the
// placeholder written by catalogs that lack a position.
func HasLocation(lat, lon float64) bool {
	return lat != 0 || lon != 0
}

// BoundingBox returns a box that contains every point within radiusKm of
// (lat, lon). The box over-approximates the circle, so callers still apply
// Distance to the points it keeps.
func BoundingBox(lat, lon, radiusKm float64) Box {
	latDelta := radiusKm / kmPerDegree
	cosLat := math.Cos(degToRad(lat))

	lonDelta := 180.0
	if cosLat > 1e-9 {
		lonDelta = math.Min(180, radiusKm/(kmPerDegree*cosLat))
	}

	return Box{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLon: lon - lonDelta,
		MaxLon: lon + lonDelta,
	}
}

// Contains reports whether the point lies inside the box. Longitudes that
// wrap the antimeridian are compared modulo 360.
func (b Box) Contains(lat, lon float64) bool {
	if lat < b.MinLat || lat > b.MaxLat {
		return false
	}
	if b.MaxLon-b.MinLon >= 360 {
		return true
	}
	if lon >= b.MinLon && lon <= b.MaxLon {
		return true
	}
	return lon+360 <= b.MaxLon || lon-360 >= b.MinLon
}

// Nearby returns the items within radiusKm of (lat, lon), closest first.
// Items at equal distance keep their input order. A non-positive radius
// yields an empty result.
func Nearby[T Locatable](lat, lon, radiusKm float64, items []T) []Hit[T] {
	hits := []Hit[T]{}
	if radiusKm <= 0 {
		return hits
	}

	box := BoundingBox(lat, lon, radiusKm)
	for _, item := range items {
		itemLat, itemLon := item.Coordinates()
		if !box.Contains(itemLat, itemLon) {
			continue
		}
		d := Distance(lat, lon, itemLat, itemLon)
		if d <= radiusKm {
			hits = append(hits, Hit[T]{Item: item, DistanceKm: d})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].DistanceKm < hits[j].DistanceKm
	})
	return hits
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
