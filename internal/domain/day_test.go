package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestParseDayRoundTrip(t *testing.T) {
	d, err := ParseDay("1984-01-28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d != (Day{Year: 1984, Month: time.January, Day: 28}) {
		t.Fatalf("day = %+v", d)
	}
	if d.String() != "1984-01-28" {
		t.Fatalf("String() = %q, want 1984-01-28", d.String())
	}
}

func TestParseDayRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "1984-1-28", "28-01-1984", "1984-02-30", "today"} {
		if _, err := ParseDay(s); err == nil {
			t.Errorf("ParseDay(%q) returned no error", s)
		}
	}
}

func TestDayWindow(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	d := Day{Year: 2026, Month: time.March, Day: 9}

	start, end := d.Window(loc)
	if !start.Equal(time.Date(2026, 3, 9, 3, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v", start)
	}
	if end.Sub(start) != 24*time.Hour {
		t.Fatalf("window length = %v, want 24h", end.Sub(start))
	}
}

func TestDayBefore(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"2026-01-01", "2026-01-02", true},
		{"2026-01-02", "2026-01-01", false},
		{"2026-01-01", "2026-01-01", false},
		{"2025-12-31", "2026-01-01", true},
		{"2026-02-01", "2026-01-31", false},
	}

	for _, tt := range tests {
		a, _ := ParseDay(tt.a)
		b, _ := ParseDay(tt.b)
		if got := a.Before(b); got != tt.want {
			t.Errorf("%s.Before(%s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRouteCreationDayUsesLocation(t *testing.T) {
	r := Route{ID: 1, CreatedAt: time.Date(2026, 5, 1, 1, 30, 0, 0, time.UTC)}

	west := time.FixedZone("UTC-5", -5*60*60)
	if got := r.CreationDay(west).String(); got != "2026-04-30" {
		t.Fatalf("creation day = %s, want 2026-04-30", got)
	}
	if got := r.CreationDay(time.UTC).String(); got != "2026-05-01" {
		t.Fatalf("creation day = %s, want 2026-05-01", got)
	}
}

func TestCoordinatesValidate(t *testing.T) {
	valid := []Coordinates{{0, 0}, {-180, -90}, {180, 90}, {18.23526, 59.23425}}
	for _, c := range valid {
		if err := c.Validate(); err != nil {
			t.Errorf("%+v: unexpected error: %v", c, err)
		}
	}

	invalid := []Coordinates{{-180.01, 0}, {180.5, 0}, {0, 90.1}, {0, -91}}
	for _, c := range invalid {
		err := c.Validate()
		if !errors.Is(err, ErrInvalidCoordinates) {
			t.Errorf("%+v: err = %v, want ErrInvalidCoordinates", c, err)
		}
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{fmt.Errorf("add waypoint: %w", ErrRouteNotFound), KindNotFound},
		{fmt.Errorf("length: %w", ErrNoWaypoints), KindNotFound},
		{fmt.Errorf("add waypoint: %w", ErrStaleRoute), KindStaleRoute},
		{ErrFutureOrPresentDate, KindFutureOrPresentDate},
		{ErrNoDataForDay, KindNoDataForDay},
		{fmt.Errorf("x: %w", ErrInvalidCoordinates), KindValidation},
		{errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
