package dto

type CreateRouteResponse struct {
	RouteID int64 `json:"route_id"`
}

// Pointers distinguish a missing coordinate from 0.
type AddWaypointRequest struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon *float64 `json:"lon" validate:"required,gte=-180,lte=180"`
}

type RouteLengthResponse struct {
	RouteID int64   `json:"route_id"`
	Km      float64 `json:"km"`
}

type LongestRouteResponse struct {
	Date    string  `json:"date"`
	RouteID int64   `json:"route_id"`
	Km      float64 `json:"km"`
}

type ErrorResponse struct {
	Error string `json:"Error"`
}
