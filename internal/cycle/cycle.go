// Package cycle holds the calendar arithmetic for monthly pay cycles and
// ledger month keys. Months are zero-indexed (0 = January) everywhere inside
// the service; MonthKey renders the familiar one-based "YYYY-MM" form.
package cycle

import (
	"fmt"
	"sort"
	"time"
)

// MonthRef identifies one calendar month. Month is zero-indexed [0..11].
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthKey renders a MonthRef as "YYYY-MM" with a one-based, zero-padded month.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month+1)
}

func (m MonthRef) Key() string {
	return MonthKey(m.Year, m.Month)
}

// MonthOf returns the MonthRef containing t.
func MonthOf(t time.Time) MonthRef {
	return MonthRef{Year: t.Year(), Month: int(t.Month()) - 1}
}

// CurrentCycle is the wall-clock month of now.
func CurrentCycle(now time.Time) MonthRef {
	return MonthOf(now)
}

// PreviousCycle is the calendar month before now, rolling the year back at
// January.
func PreviousCycle(now time.Time) MonthRef {
	ref := MonthOf(now)
	if ref.Month == 0 {
		return MonthRef{Year: ref.Year - 1, Month: 11}
	}
	return MonthRef{Year: ref.Year, Month: ref.Month - 1}
}

// NextCycle is the calendar month after now, rolling the year forward at
// December.
func NextCycle(now time.Time) MonthRef {
	ref := MonthOf(now)
	if ref.Month == 11 {
		return MonthRef{Year: ref.Year + 1, Month: 0}
	}
	return MonthRef{Year: ref.Year, Month: ref.Month + 1}
}

// DaysInMonth returns the number of days in the given zero-indexed month,
// leap Februaries included.
func DaysInMonth(year, month int) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextPayDate projects the next pay date from now: it always lands in the
// month after now, with dayOfMonth clamped to that month's length (pay day 31
// becomes Feb 29 in a leap year, Feb 28 otherwise).
func NextPayDate(dayOfMonth int, now time.Time) time.Time {
	next := NextCycle(now)
	day := dayOfMonth
	if max := DaysInMonth(next.Year, next.Month); day > max {
		day = max
	}
	if day < 1 {
		day = 1
	}
	return time.Date(next.Year, time.Month(next.Month+1), day, 0, 0, 0, 0, time.UTC)
}

// IsCurrentMonth reports whether key names the wall-clock month of now.
func IsCurrentMonth(key string, now time.Time) bool {
	return key == CurrentCycle(now).Key()
}

// After reports whether m is strictly later than other.
func (m MonthRef) After(other MonthRef) bool {
	if m.Year != other.Year {
		return m.Year > other.Year
	}
	return m.Month > other.Month
}

// MonthOptions lists the months an entry may be recorded against: every month
// from January of the current year through the current month, plus any
// historical months already carrying entries. Months after the current cycle
// are excluded, future years included. Newest first.
func MonthOptions(existing []MonthRef, now time.Time) []MonthRef {
	current := CurrentCycle(now)

	seen := make(map[MonthRef]struct{})
	options := make([]MonthRef, 0, current.Month+1+len(existing))

	for month := 0; month <= current.Month; month++ {
		ref := MonthRef{Year: current.Year, Month: month}
		seen[ref] = struct{}{}
		options = append(options, ref)
	}

	for _, ref := range existing {
		if ref.After(current) {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		options = append(options, ref)
	}

	sort.Slice(options, func(i, j int) bool {
		return options[i].After(options[j])
	})

	return options
}
