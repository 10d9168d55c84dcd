package schedule

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/Halcyon-Displays/halcyon/internal/model"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	// defaultDuration matches the schema default for assignments that
	// predate explicit durations.
	defaultDuration = 10
)

// Resolve computes the ordered playlist for one device at one instant.
// It is a pure function over the assignment snapshot: no I/O, no
// mutation, deterministic for fixed inputs.
//
// An assignment is eligible when it is active, targets this device (or
// the "all" sentinel), and `now` satisfies its date window, time-of-day
// window and day-of-week set. Malformed constraint values make an
// assignment ineligible, never a panic. Zero eligible items is a valid
// result, not an error.
func Resolve(items []model.ScheduledItem, deviceID string, now time.Time) model.Playlist {
	eligible := make([]model.ScheduledItem, 0, len(items))
	for _, it := range items {
		if Eligible(it, deviceID, now) {
			eligible = append(eligible, it)
		}
	}

	// Ascending play_order, ties broken by assignment creation time.
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].PlayOrder != eligible[j].PlayOrder {
			return eligible[i].PlayOrder < eligible[j].PlayOrder
		}
		return eligible[i].CreatedAt.Before(eligible[j].CreatedAt)
	})

	entries := make([]model.PlaylistEntry, 0, len(eligible))
	for _, it := range eligible {
		entries = append(entries, model.PlaylistEntry{
			ContentID:       it.ContentID,
			Name:            it.ContentName,
			Kind:            it.Kind,
			URL:             it.URL,
			DisplayDuration: EffectiveDuration(it),
			PlayOrder:       it.PlayOrder,
		})
	}

	return model.Playlist{
		DeviceID:    deviceID,
		GeneratedAt: now,
		Entries:     entries,
	}
}

// Eligible reports whether a single assignment should appear in the
// playlist of deviceID at the given instant.
func Eligible(it model.ScheduledItem, deviceID string, now time.Time) bool {
	if !it.IsActive {
		return false
	}
	if it.DeviceID != deviceID && it.DeviceID != model.AllDevices {
		return false
	}
	return dateMatches(it.StartDate, it.EndDate, now) &&
		timeMatches(it.StartTime, it.EndTime, now) &&
		dayMatches(it.DaysOfWeek, now)
}

// EffectiveDuration resolves the on-screen time in seconds: the
// assignment's display_duration (schema default when unset), clamped to
// a 1s minimum. For video the media's own length is a floor, not a cap.
func EffectiveDuration(it model.ScheduledItem) int {
	d := it.DisplayDuration
	if d <= 0 {
		d = defaultDuration
	}
	if d < 1 {
		d = 1
	}
	if it.Kind == model.ContentKindVideo && it.VideoDuration != nil && *it.VideoDuration > d {
		d = *it.VideoDuration
	}
	return d
}

// dateMatches checks the calendar-date window, open on unset sides.
func dateMatches(start, end *string, now time.Time) bool {
	today := now.Format(dateLayout)
	if start != nil && *start != "" {
		s, err := time.Parse(dateLayout, *start)
		if err != nil {
			return false
		}
		if today < s.Format(dateLayout) {
			return false
		}
	}
	if end != nil && *end != "" {
		e, err := time.Parse(dateLayout, *end)
		if err != nil {
			return false
		}
		if today > e.Format(dateLayout) {
			return false
		}
	}
	return true
}

// timeMatches checks the time-of-day window, open on unset sides.
// Windows are same-day and non-wrapping: start > end is never
// satisfiable. That is observed behavior, not a bug to fix here; which
// bound the operator meant cannot be recovered from the data.
func timeMatches(start, end *string, now time.Time) bool {
	current := now.Format(timeLayout)
	if start != nil && *start != "" {
		if !validTimeOfDay(*start) {
			return false
		}
		if current < *start {
			return false
		}
	}
	if end != nil && *end != "" {
		if !validTimeOfDay(*end) {
			return false
		}
		if current > *end {
			return false
		}
	}
	return true
}

func validTimeOfDay(s string) bool {
	_, err := time.Parse(timeLayout, s)
	return err == nil
}

// dayMatches checks the day-of-week token set. An absent or empty set
// matches every day, as does the "all" sentinel. "weekdays" covers
// mon-fri and "weekends" sat/sun.
func dayMatches(daysJSON *string, now time.Time) bool {
	if daysJSON == nil || *daysJSON == "" {
		return true
	}

	var days []string
	if err := json.Unmarshal([]byte(*daysJSON), &days); err != nil {
		return false
	}
	if len(days) == 0 {
		return true
	}

	day := strings.ToLower(now.Weekday().String()[:3])
	weekend := day == "sat" || day == "sun"

	for _, tok := range days {
		switch strings.ToLower(tok) {
		case "all":
			return true
		case "weekdays":
			if !weekend {
				return true
			}
		case "weekends":
			if weekend {
				return true
			}
		case day:
			return true
		}
	}
	return false
}
