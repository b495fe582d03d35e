// Package calendar decides which dates are tradable sessions.
//
// A market day is Monday through Friday, excluding January 1 and December 25.
package calendar

import (
	"iter"
	"time"
)

// IsMarketDay reports whether d is a tradable session.
func IsMarketDay(d Date) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	if d.Month == time.January && d.Day == 1 {
		return false
	}

	if d.Month == time.December && d.Day == 25 {
		return false
	}

	return true
}

// PreviousMarketDay returns the closest market day strictly before d.
func PreviousMarketDay(d Date) Date {
	out := d.AddDays(-1)
	for !IsMarketDay(out) {
		out = out.AddDays(-1)
	}

	return out
}

// DateRange yields the market days in [start, end) in ascending order.
// The sequence is lazy and can be ranged over any number of times.
func DateRange(start, end Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := start; d.Before(end); d = d.AddDays(1) {
			if !IsMarketDay(d) {
				continue
			}

			if !yield(d) {
				return
			}
		}
	}
}

// Dates collects DateRange(start, end) into a slice.
func Dates(start, end Date) []Date {
	var out []Date
	for d := range DateRange(start, end) {
		out = append(out, d)
	}

	return out
}
