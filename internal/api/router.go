package api

import (
	"gps-route-service/internal/api/handlers"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the services behind the HTTP surface.
type Deps struct {
	Registry   handlers.RouteCreator
	Ledger     handlers.WaypointAdder
	Calculator handlers.RouteMeasurer
	Query      handlers.LongestRouteFinder
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(chimiddleware.Recoverer)

	routes := &handlers.RouteHandler{
		Registry:   d.Registry,
		Ledger:     d.Ledger,
		Calculator: d.Calculator,
	}
	longest := &handlers.LongestRouteHandler{Query: d.Query}

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/route/", routes.Create)
	r.Post("/route/{route_id:[0-9]+}/way_point/", routes.AddWaypoint)
	r.Get("/route/{route_id:[0-9]+}/length/", routes.Length)
	r.Get("/route/{route_id:[0-9]+}/points-in-path/", routes.PointsInPath)
	r.Get("/longest-route/{date}", longest.Get)

	return r
}
