// Package timerange resolves named reporting windows into concrete bounds.
package timerange

import "time"

// Selector names a reporting window.
type Selector string

const (
	SelectorToday  Selector = "today"
	SelectorWeek   Selector = "week"
	SelectorMonth  Selector = "month"
	SelectorYear   Selector = "year"
	SelectorCustom Selector = "custom"
)

// Range is a half-open interval [From, To). A nil bound is unbounded
// on that side.
type Range struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && !t.Before(*r.To) {
		return false
	}
	return true
}

// Bounded reports whether at least one side of the range is set.
func (r Range) Bounded() bool {
	return r.From != nil || r.To != nil
}

// Duration returns To minus From, or zero when either side is unbounded.
func (r Range) Duration() time.Duration {
	if r.From == nil || r.To == nil {
		return 0
	}
	return r.To.Sub(*r.From)
}

// Previous returns the window of equal length immediately preceding the
// range. An unbounded range has no previous window.
func (r Range) Previous() Range {
	if r.From == nil || r.To == nil {
		return Range{}
	}
	length := r.To.Sub(*r.From)
	to := *r.From
	from := to.Add(-length)
	return Range{From: &from, To: &to}
}

// Resolve maps a selector to concrete bounds relative to now, in now's
// location. Month and year cover the whole calendar unit, including days
// still in the future. Custom ranges are end-inclusive on the day, so To
// is the start of the day after customTo. An unrecognized selector
// yields an unbounded range.
func Resolve(selector Selector, now time.Time, customFrom, customTo *time.Time) Range {
	loc := now.Location()
	switch selector {
	case SelectorToday:
		from := startOfDay(now)
		to := from.AddDate(0, 0, 1)
		return Range{From: &from, To: &to}
	case SelectorWeek:
		from := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
		to := startOfDay(now).AddDate(0, 0, 1)
		return Range{From: &from, To: &to}
	case SelectorMonth:
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		to := from.AddDate(0, 1, 0)
		return Range{From: &from, To: &to}
	case SelectorYear:
		from := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc)
		to := from.AddDate(1, 0, 0)
		return Range{From: &from, To: &to}
	case SelectorCustom:
		var r Range
		if customFrom != nil {
			from := startOfDay(customFrom.In(loc))
			r.From = &from
		}
		if customTo != nil {
			to := startOfDay(customTo.In(loc)).AddDate(0, 0, 1)
			r.To = &to
		}
		return r
	default:
		return Range{}
	}
}

// ParseSelector validates a raw selector string.
func ParseSelector(raw string) (Selector, bool) {
	switch Selector(raw) {
	case SelectorToday, SelectorWeek, SelectorMonth, SelectorYear, SelectorCustom:
		return Selector(raw), true
	}
	return "", false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
