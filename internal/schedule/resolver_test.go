package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Halcyon-Displays/halcyon/internal/model"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

// Wednesday 2025-06-11 14:30 local time.
var wednesdayAfternoon = time.Date(2025, 6, 11, 14, 30, 0, 0, time.Local)

func item(id int, mutate func(*model.ScheduledItem)) model.ScheduledItem {
	it := model.ScheduledItem{
		Assignment: model.Assignment{
			ID:              id,
			DeviceID:        "tv-01",
			ContentID:       id,
			DisplayDuration: 10,
			PlayOrder:       id,
			IsActive:        true,
			CreatedAt:       time.Date(2025, 1, 1, 0, 0, id, 0, time.UTC),
		},
		ContentName: "asset",
		Filename:    "asset.jpg",
		Kind:        model.ContentKindImage,
		URL:         "http://server/uploads/asset.jpg",
	}
	if mutate != nil {
		mutate(&it)
	}
	return it
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.ScheduledItem)
		now    time.Time
		want   bool
	}{
		{"no constraints", nil, wednesdayAfternoon, true},
		{"inactive never eligible", func(it *model.ScheduledItem) {
			it.IsActive = false
			it.DaysOfWeek = strptr(`["all"]`)
		}, wednesdayAfternoon, false},
		{"other device", func(it *model.ScheduledItem) {
			it.DeviceID = "tv-99"
		}, wednesdayAfternoon, false},
		{"all-devices sentinel", func(it *model.ScheduledItem) {
			it.DeviceID = model.AllDevices
		}, wednesdayAfternoon, true},
		{"inside date window", func(it *model.ScheduledItem) {
			it.StartDate = strptr("2025-06-01")
			it.EndDate = strptr("2025-06-30")
		}, wednesdayAfternoon, true},
		{"before start date", func(it *model.ScheduledItem) {
			it.StartDate = strptr("2025-06-12")
		}, wednesdayAfternoon, false},
		{"after end date", func(it *model.ScheduledItem) {
			it.EndDate = strptr("2025-06-10")
		}, wednesdayAfternoon, false},
		{"open-ended date window", func(it *model.ScheduledItem) {
			it.StartDate = strptr("2025-06-01")
		}, wednesdayAfternoon, true},
		{"inside time window", func(it *model.ScheduledItem) {
			it.StartTime = strptr("09:00")
			it.EndTime = strptr("17:00")
		}, wednesdayAfternoon, true},
		{"one second before start time", func(it *model.ScheduledItem) {
			it.StartTime = strptr("14:31")
			it.EndTime = strptr("17:00")
		}, wednesdayAfternoon, false},
		{"inverted window is never satisfiable", func(it *model.ScheduledItem) {
			it.StartTime = strptr("14:00")
			it.EndTime = strptr("09:00")
		}, wednesdayAfternoon, false},
		{"weekday token matches wednesday", func(it *model.ScheduledItem) {
			it.DaysOfWeek = strptr(`["wed"]`)
		}, wednesdayAfternoon, true},
		{"one day outside days_of_week", func(it *model.ScheduledItem) {
			it.DaysOfWeek = strptr(`["thu"]`)
		}, wednesdayAfternoon, false},
		{"weekdays group token", func(it *model.ScheduledItem) {
			it.DaysOfWeek = strptr(`["weekdays"]`)
		}, wednesdayAfternoon, true},
		{"weekends group token on a wednesday", func(it *model.ScheduledItem) {
			it.DaysOfWeek = strptr(`["weekends"]`)
		}, wednesdayAfternoon, false},
		{"all sentinel", func(it *model.ScheduledItem) {
			it.DaysOfWeek = strptr(`["all"]`)
		}, wednesdayAfternoon, true},
		{"empty day list matches", func(it *model.ScheduledItem) {
			it.DaysOfWeek = strptr(`[]`)
		}, wednesdayAfternoon, true},
		{"malformed day json is ineligible", func(it *model.ScheduledItem) {
			it.DaysOfWeek = strptr(`{not json`)
		}, wednesdayAfternoon, false},
		{"malformed time is ineligible", func(it *model.ScheduledItem) {
			it.StartTime = strptr("25:99")
		}, wednesdayAfternoon, false},
		{"malformed date is ineligible", func(it *model.ScheduledItem) {
			it.StartDate = strptr("june 1st")
		}, wednesdayAfternoon, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := item(1, tt.mutate)
			assert.Equal(t, tt.want, Eligible(it, "tv-01", tt.now))
		})
	}
}

func TestResolveOrdering(t *testing.T) {
	// play_order=2 created first, play_order=1 created later: explicit
	// order wins over creation order.
	a := item(1, func(it *model.ScheduledItem) { it.PlayOrder = 2 })
	b := item(2, func(it *model.ScheduledItem) { it.PlayOrder = 1 })

	pl := Resolve([]model.ScheduledItem{a, b}, "tv-01", wednesdayAfternoon)
	require.Len(t, pl.Entries, 2)
	assert.Equal(t, 2, pl.Entries[0].ContentID)
	assert.Equal(t, 1, pl.Entries[1].ContentID)
}

func TestResolveTieBreakByCreation(t *testing.T) {
	a := item(1, func(it *model.ScheduledItem) {
		it.PlayOrder = 5
		it.CreatedAt = time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	})
	b := item(2, func(it *model.ScheduledItem) {
		it.PlayOrder = 5
		it.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	})

	pl := Resolve([]model.ScheduledItem{a, b}, "tv-01", wednesdayAfternoon)
	require.Len(t, pl.Entries, 2)
	assert.Equal(t, 2, pl.Entries[0].ContentID)
	assert.Equal(t, 1, pl.Entries[1].ContentID)
}

func TestResolveIdempotent(t *testing.T) {
	items := []model.ScheduledItem{
		item(3, nil),
		item(1, func(it *model.ScheduledItem) { it.DaysOfWeek = strptr(`["all"]`) }),
		item(2, func(it *model.ScheduledItem) { it.DeviceID = model.AllDevices }),
	}

	first := Resolve(items, "tv-01", wednesdayAfternoon)
	second := Resolve(items, "tv-01", wednesdayAfternoon)
	assert.Equal(t, first, second)
}

func TestResolveEmptyIsNotAnError(t *testing.T) {
	pl := Resolve(nil, "tv-01", wednesdayAfternoon)
	assert.True(t, pl.Empty())
	assert.Equal(t, "tv-01", pl.DeviceID)
}

func TestEffectiveDuration(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.ScheduledItem)
		want   int
	}{
		{"explicit duration", func(it *model.ScheduledItem) {
			it.DisplayDuration = 25
		}, 25},
		{"zero falls back to schema default", func(it *model.ScheduledItem) {
			it.DisplayDuration = 0
		}, 10},
		{"video duration is a floor", func(it *model.ScheduledItem) {
			it.Kind = model.ContentKindVideo
			it.DisplayDuration = 10
			it.VideoDuration = intptr(42)
		}, 42},
		{"video shorter than display keeps display", func(it *model.ScheduledItem) {
			it.Kind = model.ContentKindVideo
			it.DisplayDuration = 30
			it.VideoDuration = intptr(12)
		}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveDuration(item(1, tt.mutate)))
		})
	}
}

func TestMockClock(t *testing.T) {
	c := MockClock{MockTime: wednesdayAfternoon}
	assert.Equal(t, wednesdayAfternoon, c.Now())
}
