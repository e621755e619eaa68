package handlers

import (
	"context"
	"fmt"
	"gps-route-service/internal/api/dto"
	"gps-route-service/internal/domain"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const (
	msgPastOnly  = "The request will only query days in the past."
	msgBadDate   = "date must be formatted as YYYY-MM-DD"
	msgNoRoutesF = "No routes recorded for %s"
)

type LongestRouteFinder interface {
	Longest(ctx context.Context, day domain.Day) (domain.DayAggregate, error)
}

type LongestRouteHandler struct {
	Query LongestRouteFinder
}

func (h *LongestRouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")
	day, err := domain.ParseDay(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, msgBadDate)
		return
	}

	agg, err := h.Query.Longest(r.Context(), day)
	if err != nil {
		switch domain.Kind(err) {
		case domain.KindFutureOrPresentDate:
			writeError(w, r, http.StatusForbidden, msgPastOnly)
		case domain.KindNoDataForDay:
			writeError(w, r, http.StatusNotFound, fmt.Sprintf(msgNoRoutesF, day))
		default:
			writeInternal(w, r, "longest route", err)
		}
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.LongestRouteResponse{
		Date:    day.String(),
		RouteID: int64(agg.RouteID),
		Km:      agg.TotalKm,
	})
}
