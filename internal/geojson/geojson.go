// Package geojson renders route paths as GeoJSON FeatureCollections.
package geojson

import (
	"gps-route-service/internal/domain"
	"gps-route-service/internal/geo"
	"time"
)

// FeatureCollection represents a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature represents a GeoJSON Feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry represents a GeoJSON Geometry.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// PointCoordinates is [longitude, latitude].
type PointCoordinates [2]float64

// LineCoordinates is a sequence of [longitude, latitude] pairs.
type LineCoordinates []PointCoordinates

// RoutePath builds one LineString for the whole path followed by one Point
// per waypoint. The LineString is omitted for paths with fewer than two waypoints.
// Waypoints must already be in travel order.
func RoutePath(id domain.RouteID, waypoints []domain.Waypoint) *FeatureCollection {
	features := make([]Feature, 0, len(waypoints)+1)

	if len(waypoints) >= 2 {
		line := make(LineCoordinates, len(waypoints))
		path := make([]domain.Coordinates, len(waypoints))
		for i, wp := range waypoints {
			line[i] = PointCoordinates{wp.Coords.Lon, wp.Coords.Lat}
			path[i] = wp.Coords
		}
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "LineString",
				Coordinates: line,
			},
			Properties: map[string]any{
				"route_id":    int64(id),
				"km":          geo.PathKm(path),
				"point_count": len(waypoints),
			},
		})
	}

	for i, wp := range waypoints {
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: PointCoordinates{wp.Coords.Lon, wp.Coords.Lat},
			},
			Properties: map[string]any{
				"route_id":    int64(id),
				"index":       i,
				"recorded_at": wp.RecordedAt.UTC().Format(time.RFC3339Nano),
			},
		})
	}

	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
