package domain

import "time"

type TimeFrame string

const (
	TimeFrameToday TimeFrame = "today"
	TimeFrameWeek  TimeFrame = "week"
	TimeFrameMonth TimeFrame = "month"
)

// windowEndOffset makes a window end on the last millisecond of its period.
const windowEndOffset = time.Millisecond

// TimeWindow is a closed interval: both Start and End are included.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ResolveWindow returns the UTC day, ISO week or calendar month containing ref.
func ResolveWindow(frame TimeFrame, ref time.Time) (TimeWindow, error) {
	ref = ref.UTC()
	dayStart := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	var start, next time.Time
	switch frame {
	case TimeFrameToday:
		start = dayStart
		next = start.AddDate(0, 0, 1)
	case TimeFrameWeek:
		// time.Weekday counts from Sunday; ISO weeks start on Monday.
		sinceMonday := (int(ref.Weekday()) + 6) % 7
		start = dayStart.AddDate(0, 0, -sinceMonday)
		next = start.AddDate(0, 0, 7)
	case TimeFrameMonth:
		start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
		next = start.AddDate(0, 1, 0)
	default:
		return TimeWindow{}, ErrInvalidTimeFrame
	}

	return TimeWindow{Start: start, End: next.Add(-windowEndOffset)}, nil
}
