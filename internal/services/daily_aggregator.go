package services

import (
	"context"
	"fmt"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/geo"
	"gps-route-service/internal/platform/metrics"
	"gps-route-service/internal/platform/obs"
	"gps-route-service/internal/ports"
	"slices"
	"time"
)

// DailyAggregator finds the route with the greatest length inside a day-window.
//
// Only segments whose both ends fall inside the window are counted, so a
// route's contribution to a day can be shorter than its full length.
// The past-day precondition is enforced by LongestRouteQuery, not here.
type DailyAggregator struct {
	Store ports.WaypointStore
	// Location defines where a day starts. Defaults to UTC.
	Location *time.Location
}

func NewDailyAggregator(store ports.WaypointStore, loc *time.Location) *DailyAggregator {
	return &DailyAggregator{Store: store, Location: loc}
}

// LongestRouteForDay returns the longest route of day, or domain.ErrNoDataForDay
// when no waypoint falls in the window. Exact ties go to the lowest route id.
func (a *DailyAggregator) LongestRouteForDay(ctx context.Context, day domain.Day) (_ domain.DayAggregate, err error) {
	defer obs.Time(ctx, "aggregator.LongestRouteForDay")(&err)

	loc := a.Location
	if loc == nil {
		loc = time.UTC
	}
	start, end := day.Window(loc)

	// Prefer evaluating the window inside the datastore when supported.
	if q, ok := a.Store.(ports.DayLengthQuerier); ok {
		metrics.AggregatorScans.WithLabelValues("pushdown").Inc()

		id, km, found, err := q.LongestInWindow(ctx, start, end, geo.EarthRadiusKm)
		if err != nil {
			return domain.DayAggregate{}, fmt.Errorf("longest route for %s: %w", day, err)
		}
		if !found {
			return domain.DayAggregate{}, fmt.Errorf("longest route for %s: %w", day, domain.ErrNoDataForDay)
		}
		return domain.DayAggregate{Day: day, RouteID: id, TotalKm: km}, nil
	}

	metrics.AggregatorScans.WithLabelValues("in_process").Inc()

	wps, err := a.Store.ListInWindow(ctx, start, end)
	if err != nil {
		return domain.DayAggregate{}, fmt.Errorf("longest route for %s: list window: %w", day, err)
	}
	if len(wps) == 0 {
		return domain.DayAggregate{}, fmt.Errorf("longest route for %s: %w", day, domain.ErrNoDataForDay)
	}

	totals := RouteTotals(wps)

	ids := make([]domain.RouteID, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	best := ids[0]
	for _, id := range ids[1:] {
		// Strictly greater keeps the lowest id on ties; ids are ascending.
		if totals[id] > totals[best] {
			best = id
		}
	}

	return domain.DayAggregate{Day: day, RouteID: best, TotalKm: totals[best]}, nil
}

// RouteTotals groups waypoints by route, orders each group by (RecordedAt, Seq)
// and sums the consecutive great-circle distances.
func RouteTotals(wps []domain.Waypoint) map[domain.RouteID]float64 {
	byRoute := make(map[domain.RouteID][]domain.Waypoint)
	for _, wp := range wps {
		byRoute[wp.RouteID] = append(byRoute[wp.RouteID], wp)
	}

	totals := make(map[domain.RouteID]float64, len(byRoute))
	for id, group := range byRoute {
		slices.SortStableFunc(group, func(a, b domain.Waypoint) int {
			if c := a.RecordedAt.Compare(b.RecordedAt); c != 0 {
				return c
			}
			switch {
			case a.Seq < b.Seq:
				return -1
			case a.Seq > b.Seq:
				return 1
			}
			return 0
		})
		totals[id] = geo.PathKm(coordsOf(group))
	}
	return totals
}
