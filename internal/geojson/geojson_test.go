package geojson

import (
	"gps-route-service/internal/domain"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestRoutePath(t *testing.T) {
	base := time.Date(1984, 1, 28, 0, 0, 0, 0, time.UTC)
	wps := []domain.Waypoint{
		{RouteID: 0, Coords: domain.Coordinates{Lon: -82.45843, Lat: 27.94752}, RecordedAt: base},
		{RouteID: 0, Coords: domain.Coordinates{Lon: -89.11673, Lat: 32.77152}, RecordedAt: base.Add(time.Second)},
	}

	fc := RoutePath(0, wps)

	if fc.Type != "FeatureCollection" {
		t.Errorf("expected FeatureCollection type, got %s", fc.Type)
	}
	if len(fc.Features) != 3 {
		t.Fatalf("expected 3 features, got %d", len(fc.Features))
	}

	line := fc.Features[0]
	if line.Geometry.Type != "LineString" {
		t.Fatalf("expected LineString first, got %s", line.Geometry.Type)
	}
	if km, _ := line.Properties["km"].(float64); km < 700 || km > 900 {
		t.Errorf("unexpected line length %v", line.Properties["km"])
	}
	coords, ok := line.Geometry.Coordinates.(LineCoordinates)
	if !ok || len(coords) != 2 {
		t.Fatalf("unexpected line coordinates %#v", line.Geometry.Coordinates)
	}
	// GeoJSON uses [lng, lat] order
	if coords[0][0] != -82.45843 || coords[0][1] != 27.94752 {
		t.Errorf("unexpected first vertex %v", coords[0])
	}

	pt := fc.Features[2]
	if pt.Geometry.Type != "Point" || pt.Properties["index"] != 1 {
		t.Errorf("unexpected point feature %+v", pt)
	}
	if pt.Properties["recorded_at"] != "1984-01-28T00:00:01Z" {
		t.Errorf("unexpected recorded_at %v", pt.Properties["recorded_at"])
	}
}

func TestRoutePathSinglePoint(t *testing.T) {
	fc := RoutePath(3, []domain.Waypoint{{RouteID: 3, Coords: domain.Coordinates{Lon: 1, Lat: 2}}})

	if len(fc.Features) != 1 || fc.Features[0].Geometry.Type != "Point" {
		t.Fatalf("expected a single Point, got %+v", fc.Features)
	}
}

func TestRoutePathJSON(t *testing.T) {
	fc := RoutePath(1, []domain.Waypoint{
		{Coords: domain.Coordinates{Lon: 1, Lat: 2}},
		{Coords: domain.Coordinates{Lon: 3, Lat: 4}},
	})

	data, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var parsed struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Type != "FeatureCollection" || len(parsed.Features) != 3 {
		t.Fatalf("unexpected document %s", data)
	}
	if got := string(parsed.Features[0].Geometry.Coordinates); got != "[[1,2],[3,4]]" {
		t.Errorf("line coordinates = %s", got)
	}
}
