package memory

import (
	"context"
	"fmt"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/ports"
	"sort"
	"sync"
	"time"
)

// Store is an in-process RouteRepository and WaypointStore.
// It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	routes    []domain.Route
	waypoints []domain.Waypoint
	nextSeq   int64
}

var (
	_ ports.RouteRepository = (*Store)(nil)
	_ ports.WaypointStore   = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{}
}

// Ids are contiguous from 0, so a route's id is its index.
func (s *Store) CreateRoute(ctx context.Context, createdAt time.Time) (domain.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := domain.Route{ID: domain.RouteID(len(s.routes)), CreatedAt: createdAt}
	s.routes = append(s.routes, r)
	return r, nil
}

func (s *Store) GetRoute(ctx context.Context, id domain.RouteID) (domain.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id < 0 || int(id) >= len(s.routes) {
		return domain.Route{}, fmt.Errorf("get route %d: %w", id, domain.ErrRouteNotFound)
	}
	return s.routes[id], nil
}

func (s *Store) UpdateRouteLength(ctx context.Context, id domain.RouteID, km float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 0 || int(id) >= len(s.routes) {
		return fmt.Errorf("update route length %d: %w", id, domain.ErrRouteNotFound)
	}
	s.routes[id].LengthKm = km
	return nil
}

func (s *Store) AppendWaypoint(ctx context.Context, wp domain.Waypoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if wp.RouteID < 0 || int(wp.RouteID) >= len(s.routes) {
		return fmt.Errorf("append waypoint route=%d: %w", wp.RouteID, domain.ErrRouteNotFound)
	}

	s.nextSeq++
	wp.Seq = s.nextSeq
	s.waypoints = append(s.waypoints, wp)
	return nil
}

func (s *Store) ListByRoute(ctx context.Context, id domain.RouteID) ([]domain.Waypoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Waypoint, 0)
	for _, wp := range s.waypoints {
		if wp.RouteID == id {
			out = append(out, wp)
		}
	}
	sortWaypoints(out)
	return out, nil
}

func (s *Store) ListInWindow(ctx context.Context, start, end time.Time) ([]domain.Waypoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Waypoint, 0)
	for _, wp := range s.waypoints {
		if !wp.RecordedAt.Before(start) && wp.RecordedAt.Before(end) {
			out = append(out, wp)
		}
	}
	sortWaypoints(out)
	return out, nil
}

// Seed creates a route at createdAt and appends waypoints to it.
func (s *Store) Seed(createdAt time.Time, waypoints ...domain.Waypoint) domain.RouteID {
	r, _ := s.CreateRoute(context.Background(), createdAt)
	for _, wp := range waypoints {
		wp.RouteID = r.ID
		_ = s.AppendWaypoint(context.Background(), wp)
	}
	return r.ID
}

func sortWaypoints(wps []domain.Waypoint) {
	sort.SliceStable(wps, func(i, j int) bool {
		a, b := wps[i], wps[j]
		if a.RouteID != b.RouteID {
			return a.RouteID < b.RouteID
		}
		if !a.RecordedAt.Equal(b.RecordedAt) {
			return a.RecordedAt.Before(b.RecordedAt)
		}
		return a.Seq < b.Seq
	})
}
