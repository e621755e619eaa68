package domain

import "time"

// RouteID identifies a route. Ids are allocated contiguously from 0.
type RouteID int64

// Represents a single GPS track.
// A Route is created once and never modified afterwards, except for the
// derived LengthKm that is refreshed whenever its length is computed.
// It only accepts waypoints on the calendar day of CreatedAt.
type Route struct {
	ID        RouteID
	CreatedAt time.Time
	LengthKm  float64
}

// CreationDay returns the calendar day the route was created on, in loc.
func (r Route) CreationDay(loc *time.Location) Day {
	return DayOf(r.CreatedAt.In(loc))
}

// Represents one GPS sample of a route.
// Waypoints are append-only. Within a route they are ordered by RecordedAt,
// with Seq (store insertion order) breaking ties.
type Waypoint struct {
	RouteID    RouteID
	Coords     Coordinates
	RecordedAt time.Time
	Seq        int64
}

// RouteLength is the computed length of a single route.
type RouteLength struct {
	RouteID   RouteID
	Km        float64
	Waypoints int
}

// DayAggregate is the longest route recorded within one day-window.
// It is derived data and only persisted by result stores.
type DayAggregate struct {
	Day     Day
	RouteID RouteID
	TotalKm float64
}
