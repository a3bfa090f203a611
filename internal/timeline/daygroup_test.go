package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(t time.Time) *time.Time { return &t }

func TestDayLabel(t *testing.T) {
	loc := time.UTC
	// Friday
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, loc)

	tests := []struct {
		name string
		at   *time.Time
		want string
	}{
		{"nil", nil, "Unknown Date"},
		{"zero", ptr(time.Time{}), "Unknown Date"},
		{"earlier today", ptr(time.Date(2026, 10, 16, 0, 0, 1, 0, loc)), "Today"},
		{"later today", ptr(time.Date(2026, 10, 16, 23, 59, 0, 0, loc)), "Today"},
		{"yesterday late", ptr(time.Date(2026, 10, 15, 23, 59, 0, 0, loc)), "Yesterday"},
		{"yesterday early", ptr(time.Date(2026, 10, 15, 0, 0, 0, 0, loc)), "Yesterday"},
		{"two days", ptr(time.Date(2026, 10, 14, 12, 0, 0, 0, loc)), "Wednesday"},
		{"six days", ptr(time.Date(2026, 10, 10, 12, 0, 0, 0, loc)), "Saturday"},
		{"seven days", ptr(time.Date(2026, 10, 9, 12, 0, 0, 0, loc)), "Friday, October 9, 2026"},
		{"tomorrow", ptr(time.Date(2026, 10, 17, 8, 0, 0, 0, loc)), "Saturday, October 17, 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DayLabel(tt.at, now))
		})
	}
}

func TestDayLabel_StableWithinDay(t *testing.T) {
	record := time.Date(2026, 10, 14, 18, 0, 0, 0, time.UTC)
	start := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	want := DayLabel(&record, start)
	for h := 0; h < 24; h++ {
		now := start.Add(time.Duration(h)*time.Hour + 59*time.Minute)
		assert.Equal(t, want, DayLabel(&record, now))
	}
	assert.NotEqual(t, want, DayLabel(&record, start.Add(24*time.Hour)))
}

func TestDayLabel_UsesNowLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 23:30 UTC on the 15th is already the 16th in Tokyo.
	record := time.Date(2026, 10, 15, 23, 30, 0, 0, time.UTC)
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, tokyo)
	assert.Equal(t, "Today", DayLabel(&record, now))
}

func TestDayLabel_AcrossDSTChange(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// Clocks go back on 2026-10-25; the day is 25 hours long.
	record := time.Date(2026, 10, 24, 23, 30, 0, 0, berlin)
	now := time.Date(2026, 10, 26, 0, 15, 0, 0, berlin)
	assert.Equal(t, "Saturday", DayLabel(&record, now))

	record = time.Date(2026, 10, 25, 0, 5, 0, 0, berlin)
	assert.Equal(t, "Yesterday", DayLabel(&record, now))
}

type stamped struct {
	id int
	at *time.Time
}

func TestGroupByDay_FirstEncounterOrder(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	today := ptr(now.Add(-time.Hour))
	yesterday := ptr(now.Add(-24 * time.Hour))

	items := []stamped{
		{1, yesterday},
		{2, today},
		{3, yesterday},
		{4, nil},
		{5, today},
	}
	groups := GroupByDay(items, func(s stamped) *time.Time { return s.at }, now)

	require.Len(t, groups, 3)
	assert.Equal(t, "Yesterday", groups[0].Label)
	assert.Equal(t, "Today", groups[1].Label)
	assert.Equal(t, "Unknown Date", groups[2].Label)

	ids := func(g DayGroup[stamped]) []int {
		var out []int
		for _, s := range g.Items {
			out = append(out, s.id)
		}
		return out
	}
	assert.Equal(t, []int{1, 3}, ids(groups[0]))
	assert.Equal(t, []int{2, 5}, ids(groups[1]))
	assert.Equal(t, []int{4}, ids(groups[2]))
}

func TestGroupByDay_Empty(t *testing.T) {
	groups := GroupByDay([]stamped(nil), func(s stamped) *time.Time { return s.at }, time.Now())
	assert.Empty(t, groups)
}
