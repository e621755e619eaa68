package domain

import "errors"

var (
	ErrRouteNotFound       = errors.New("route_id does not exist")
	ErrStaleRoute          = errors.New("route too old: new waypoints can not be added to this route")
	ErrFutureOrPresentDate = errors.New("day is not in the past")
	ErrNoDataForDay        = errors.New("no routes recorded for day")
	ErrNoWaypoints         = errors.New("route has not added any waypoints")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
)

// ErrorKind classifies errors surfaced to callers.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindStaleRoute
	KindFutureOrPresentDate
	KindNoDataForDay
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindStaleRoute:
		return "stale_route"
	case KindFutureOrPresentDate:
		return "future_or_present_date"
	case KindNoDataForDay:
		return "no_data_for_day"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// Kind maps a (possibly wrapped) error to its kind.
func Kind(err error) ErrorKind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrRouteNotFound), errors.Is(err, ErrNoWaypoints):
		return KindNotFound
	case errors.Is(err, ErrStaleRoute):
		return KindStaleRoute
	case errors.Is(err, ErrFutureOrPresentDate):
		return KindFutureOrPresentDate
	case errors.Is(err, ErrNoDataForDay):
		return KindNoDataForDay
	case errors.Is(err, ErrInvalidCoordinates):
		return KindValidation
	default:
		return KindInternal
	}
}
