package ports

import "time"

// Clock supplies "now" in the zone that defines calendar days.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}
