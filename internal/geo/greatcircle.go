// Package geo computes great-circle distances on a spherical Earth.
package geo

import (
	"gps-route-service/internal/domain"
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean Earth radius used for every distance in the service.
const EarthRadiusKm = 6371.0

// GreatCircleKm returns the great-circle distance between a and b in kilometers.
// s2 computes the central angle with the haversine formula.
func GreatCircleKm(a, b domain.Coordinates) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// HaversineKm is the closed-form haversine distance. It matches GreatCircleKm
// and mirrors the expression the Postgres store evaluates in SQL.
func HaversineKm(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// PathKm sums the great-circle distance between consecutive points.
// Fewer than two points yield 0.
func PathKm(points []domain.Coordinates) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += GreatCircleKm(points[i-1], points[i])
	}
	return total
}
