package domain

import "fmt"

// Immutable WGS84 coordinates (longitude, latitude), unprojected.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Validate reports ErrInvalidCoordinates when either component is out of range.
func (c Coordinates) Validate() error {
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: lon %v outside [-180, 180]", ErrInvalidCoordinates, c.Lon)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: lat %v outside [-90, 90]", ErrInvalidCoordinates, c.Lat)
	}
	return nil
}
