package handlers

import (
	"context"
	"gps-route-service/internal/api/dto"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/geojson"
	"gps-route-service/internal/services"
	"net/http"
)

const (
	msgRouteNotFound = "route_id does not exist!"
	msgRouteTooOld   = "Route too old! New waypoints can not be added to this route."
	msgNoWaypoints   = "route_id has not added any waypoints"
)

type RouteCreator interface {
	CreateRoute(ctx context.Context) (domain.Route, error)
}

type WaypointAdder interface {
	Admit(ctx context.Context, id domain.RouteID) (services.Admission, error)
	Append(ctx context.Context, adm services.Admission, coords domain.Coordinates) error
}

type RouteMeasurer interface {
	ComputeLength(ctx context.Context, id domain.RouteID) (domain.RouteLength, error)
	Path(ctx context.Context, id domain.RouteID) ([]domain.Waypoint, error)
}

// RouteHandler exposes route creation, waypoint ingestion and per-route queries.
type RouteHandler struct {
	Registry   RouteCreator
	Ledger     WaypointAdder
	Calculator RouteMeasurer
}

func (h *RouteHandler) Create(w http.ResponseWriter, r *http.Request) {
	route, err := h.Registry.CreateRoute(r.Context())
	if err != nil {
		writeInternal(w, r, "create route", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.CreateRouteResponse{RouteID: int64(route.ID)})
}

// AddWaypoint checks the route before the body so a stale route is reported
// as stale whatever the payload.
func (h *RouteHandler) AddWaypoint(w http.ResponseWriter, r *http.Request) {
	id, ok := routeIDParam(r)
	if !ok {
		writeError(w, r, http.StatusNotFound, msgRouteNotFound)
		return
	}

	adm, err := h.Ledger.Admit(r.Context(), id)
	if err != nil {
		h.writeLedgerError(w, r, err)
		return
	}

	var req dto.AddWaypointRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	coords := domain.Coordinates{Lon: *req.Lon, Lat: *req.Lat}
	if err := h.Ledger.Append(r.Context(), adm, coords); err != nil {
		h.writeLedgerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *RouteHandler) writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	switch domain.Kind(err) {
	case domain.KindNotFound:
		writeError(w, r, http.StatusNotFound, msgRouteNotFound)
	case domain.KindStaleRoute:
		writeError(w, r, http.StatusForbidden, msgRouteTooOld)
	case domain.KindValidation:
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		writeInternal(w, r, "add waypoint", err)
	}
}

func (h *RouteHandler) Length(w http.ResponseWriter, r *http.Request) {
	id, ok := routeIDParam(r)
	if !ok {
		writeError(w, r, http.StatusNotFound, msgNoWaypoints)
		return
	}

	length, err := h.Calculator.ComputeLength(r.Context(), id)
	if err != nil {
		writeInternal(w, r, "compute length", err)
		return
	}
	if length.Waypoints == 0 {
		writeError(w, r, http.StatusNotFound, msgNoWaypoints)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.RouteLengthResponse{RouteID: int64(id), Km: length.Km})
}

// PointsInPath returns the route as a GeoJSON FeatureCollection.
func (h *RouteHandler) PointsInPath(w http.ResponseWriter, r *http.Request) {
	id, ok := routeIDParam(r)
	if !ok {
		writeError(w, r, http.StatusNotFound, msgNoWaypoints)
		return
	}

	wps, err := h.Calculator.Path(r.Context(), id)
	if err != nil {
		writeInternal(w, r, "route path", err)
		return
	}
	if len(wps) == 0 {
		writeError(w, r, http.StatusNotFound, msgNoWaypoints)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	writeJSON(w, r, http.StatusOK, geojson.RoutePath(id, wps))
}
