package timeline

import "time"

const UnknownDate = "Unknown Date"

type DayGroup[T any] struct {
	Label string
	Items []T
}

// DayLabel names the calendar day of t relative to now. Both are compared as
// dates in now's location, so time of day and DST shifts never matter.
func DayLabel(t *time.Time, now time.Time) string {
	if t == nil || t.IsZero() {
		return UnknownDate
	}
	local := t.In(now.Location())

	switch diff := calendarDays(local, now); {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Yesterday"
	case diff > 1 && diff < 7:
		return local.Weekday().String()
	default:
		return local.Format("Monday, January 2, 2006")
	}
}

// calendarDays counts midnights between the dates of from and to.
func calendarDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

// GroupByDay buckets items by DayLabel. Groups appear in the order their
// label is first seen and items keep their input order.
func GroupByDay[T any](items []T, stamp func(T) *time.Time, now time.Time) []DayGroup[T] {
	var groups []DayGroup[T]
	index := make(map[string]int)
	for _, item := range items {
		label := DayLabel(stamp(item), now)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, DayGroup[T]{Label: label})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}
