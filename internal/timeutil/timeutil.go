package timeutil

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	// DateKeyLayout is the feed's day-bucket date format (MM/DD/YYYY).
	DateKeyLayout = "01/02/2006"

	clockLayout    = "3:04 PM"
	shortDayLayout = "Mon, 1/2"
	longDateLayout = "Monday, January 2, 2006"
)

// ResolveZone loads an IANA zone by name. Empty names are rejected rather
// than silently mapped to UTC.
func ResolveZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("timeutil: empty time zone")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timeutil: load zone %q: %w", name, err)
	}
	return loc, nil
}

// ZonedClock is a wall-clock string rendered in a named zone.
type ZonedClock struct {
	Zone  string `json:"zone"`
	Clock string `json:"clock"`
}

// Normalizer converts instants into date keys and display strings.
// The zone used to pick "today" is independent from the display zones.
type Normalizer struct {
	today   *time.Location
	display []*time.Location
}

// NewNormalizer builds a Normalizer. The first display zone is the primary one;
// when none are given the today zone is used for display as well.
func NewNormalizer(today *time.Location, display ...*time.Location) Normalizer {
	if today == nil {
		today = time.UTC
	}
	zones := make([]*time.Location, 0, len(display))
	for _, loc := range display {
		if loc != nil {
			zones = append(zones, loc)
		}
	}
	if len(zones) == 0 {
		zones = append(zones, today)
	}
	return Normalizer{today: today, display: zones}
}

// TodayZone returns the zone used for date-key matching.
func (n Normalizer) TodayZone() *time.Location {
	if n.today == nil {
		return time.UTC
	}
	return n.today
}

// DisplayZone returns the primary display zone.
func (n Normalizer) DisplayZone() *time.Location {
	if len(n.display) == 0 {
		return n.TodayZone()
	}
	return n.display[0]
}

// DateKey renders t as MM/DD/YYYY in the today zone.
func (n Normalizer) DateKey(t time.Time) string {
	return t.In(n.TodayZone()).Format(DateKeyLayout)
}

// MatchesDateKey reports whether a provider bucket key belongs to the given date key.
// Bucket keys may carry a time suffix ("10/22/2024 00:00:00"), so only the prefix counts.
func MatchesDateKey(bucketKey, dateKey string) bool {
	if dateKey == "" {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(bucketKey), dateKey)
}

// Clock renders the wall-clock time ("7:30 PM") in the primary display zone.
func (n Normalizer) Clock(t time.Time) string {
	return t.In(n.DisplayZone()).Format(clockLayout)
}

// Clocks renders the wall-clock time once per configured display zone.
func (n Normalizer) Clocks(t time.Time) []ZonedClock {
	out := make([]ZonedClock, 0, len(n.display))
	for _, loc := range n.display {
		out = append(out, ZonedClock{Zone: loc.String(), Clock: t.In(loc).Format(clockLayout)})
	}
	return out
}

// ShortDay renders "Tue, 10/22" in the primary display zone.
func (n Normalizer) ShortDay(t time.Time) string {
	return t.In(n.DisplayZone()).Format(shortDayLayout)
}

// DayAndClock renders "Tue, 10/22 - 7:30 PM" in the primary display zone.
func (n Normalizer) DayAndClock(t time.Time) string {
	return n.ShortDay(t) + " - " + n.Clock(t)
}

// LongDate renders "Tuesday, October 22, 2024" in the primary display zone.
func (n Normalizer) LongDate(t time.Time) string {
	return t.In(n.DisplayZone()).Format(longDateLayout)
}
