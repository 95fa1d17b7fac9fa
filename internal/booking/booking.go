// Package booking holds the time-of-day arithmetic behind court schedules:
// parsing clock values, checking a requested range against a schedule
// window and its existing reservations, and deriving free ranges and
// hourly slots for display.
package booking

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	TimeLayout = "15:04"
	DateLayout = "2006-01-02"

	minutesPerDay = 24 * 60
)

var (
	ErrInvalidTime   = errors.New("invalid time of day")
	ErrInvalidRange  = errors.New("start must be before end")
	ErrOutsideWindow = errors.New("range outside schedule window")
)

// ConflictError reports the first booked range that overlaps a request.
type ConflictError struct {
	Existing Range
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("range conflicts with reservation %s", e.Existing)
}

// TimeOfDay is a wall clock value in minutes since midnight. 1440 (24:00)
// is only meaningful as the end of a range.
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM" and "HH:MM:SS" with zero seconds.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.Split(raw, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}
	for _, part := range parts {
		if len(part) != 2 || !isDigit(part[0]) || !isDigit(part[1]) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
		}
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 24 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}
	if len(parts) == 3 {
		second, err := strconv.Atoi(parts[2])
		if err != nil || second != 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
		}
	}
	if hour == 24 && minute != 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}

	return TimeOfDay(hour*60 + minute), nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// MustParseTimeOfDay is ParseTimeOfDay for constants and tests.
func MustParseTimeOfDay(raw string) TimeOfDay {
	t, err := ParseTimeOfDay(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On returns the instant t falls on for the given date in loc.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(t) * time.Minute)
}

// Range is a half-open interval [Start, End) within a single day.
type Range struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// ParseRange parses both bounds and validates their order.
func ParseRange(start, end string) (Range, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Range{}, err
	}
	r := Range{Start: s, End: e}
	return r, r.Validate()
}

func (r Range) Validate() error {
	if r.Start < 0 || r.End > minutesPerDay || r.Start >= minutesPerDay {
		return ErrInvalidTime
	}
	if r.Start >= r.End {
		return ErrInvalidRange
	}
	return nil
}

// Overlaps reports whether two ranges share any minute. Ranges that only
// touch at a bound do not overlap.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && r.End > o.Start
}

// Contains reports whether o lies entirely inside r.
func (r Range) Contains(o Range) bool {
	return r.Start <= o.Start && o.End <= r.End
}

func (r Range) Duration() time.Duration {
	return time.Duration(r.End-r.Start) * time.Minute
}

func (r Range) String() string {
	return r.Start.String() + " - " + r.End.String()
}

// CheckReservation validates requested against the schedule window and the
// ranges already booked inside it. The returned error is ErrInvalidRange,
// ErrOutsideWindow or a ConflictError naming the earliest overlap.
func CheckReservation(window Range, existing []Range, requested Range) error {
	if err := requested.Validate(); err != nil {
		return err
	}
	if !window.Contains(requested) {
		return ErrOutsideWindow
	}

	sorted := sortedCopy(existing)
	for _, booked := range sorted {
		if booked.Overlaps(requested) {
			return ConflictError{Existing: booked}
		}
	}
	return nil
}

// FreeRanges returns the parts of window not covered by booked, in order.
func FreeRanges(window Range, booked []Range) []Range {
	merged := Merge(booked)
	free := make([]Range, 0, len(merged)+1)
	cursor := window.Start
	for _, b := range merged {
		if b.End <= window.Start || b.Start >= window.End {
			continue
		}
		if b.Start > cursor {
			free = append(free, Range{Start: cursor, End: b.Start})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	if cursor < window.End {
		free = append(free, Range{Start: cursor, End: window.End})
	}
	return free
}

// Merge sorts ranges and joins any that overlap or touch.
func Merge(ranges []Range) []Range {
	sorted := sortedCopy(ranges)
	merged := make([]Range, 0, len(sorted))
	for _, r := range sorted {
		if n := len(merged); n > 0 && r.Start <= merged[n-1].End {
			if r.End > merged[n-1].End {
				merged[n-1].End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Slot is one hour (or the trailing remainder) of a schedule window.
type Slot struct {
	Range
	Booked bool `json:"booked"`
}

// HourSlots cuts window on whole hours and flags slots touched by any
// booked range.
func HourSlots(window Range, booked []Range) []Slot {
	var slots []Slot
	start := window.Start
	for start < window.End {
		end := TimeOfDay((start.Hour() + 1) * 60)
		if end > window.End {
			end = window.End
		}
		slot := Slot{Range: Range{Start: start, End: end}}
		for _, b := range booked {
			if b.Overlaps(slot.Range) {
				slot.Booked = true
				break
			}
		}
		slots = append(slots, slot)
		start = end
	}
	return slots
}

// Price prorates pricePerHourCents over the range, rounding up to the cent.
func Price(r Range, pricePerHourCents int64) int64 {
	minutes := int64(r.End - r.Start)
	if minutes <= 0 || pricePerHourCents <= 0 {
		return 0
	}
	return (minutes*pricePerHourCents + 59) / 60
}

// HourLabels returns "00:00" through "23:00".
func HourLabels() []string {
	labels := make([]string, 24)
	for h := range labels {
		labels[h] = TimeOfDay(h * 60).String()
	}
	return labels
}

// ParseDate parses a YYYY-MM-DD date in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(raw), loc)
}

func sortedCopy(ranges []Range) []Range {
	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End < sorted[j].End
		}
		return sorted[i].Start < sorted[j].Start
	})
	return sorted
}
