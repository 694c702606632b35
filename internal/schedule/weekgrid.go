package schedule

import (
	"sort"
	"time"

	"gigcalendar/internal/clock"
	"gigcalendar/internal/domain"
)

const daysPerWeek = 7

// ComputeWeek returns the seven-day window anchored on the Sunday at or
// before the pivot date.
func ComputeWeek(pivot time.Time) domain.WeekWindow {
	start := clock.WeekStart(pivot)
	return domain.WeekWindow{
		Start: start,
		End:   start.AddDate(0, 0, daysPerWeek-1),
	}
}

// Bucket assigns events to the window's day columns by exact date-string
// match. An event dated outside the window is silently dropped. Within a
// column events sort ascending by doors-or-show time with unknown starts
// last, preserving input order among ties.
func Bucket(events []domain.Event, window domain.WeekWindow) []domain.DayColumn {
	columns := make([]domain.DayColumn, daysPerWeek)
	index := make(map[string]int, daysPerWeek)
	for i := 0; i < daysPerWeek; i++ {
		date := clock.FormatDate(window.Day(i))
		columns[i] = domain.DayColumn{Date: date, Events: []domain.EventCard{}}
		index[date] = i
	}

	byColumn := make([][]domain.Event, daysPerWeek)
	for _, ev := range events {
		i, ok := index[ev.EventDate]
		if !ok {
			continue
		}
		byColumn[i] = append(byColumn[i], ev)
	}

	for i := range byColumn {
		sortByStart(byColumn[i])
		for _, ev := range byColumn[i] {
			columns[i].Events = append(columns[i].Events, domain.EventCard{Event: ev})
		}
	}
	return columns
}

// Layout fills the bucketed columns in with schedule blocks and application
// annotations, and positions the current-time indicator when today falls
// inside the window. now is the render time, passed in so the indicator is
// never stale.
func Layout(window domain.WeekWindow, columns []domain.DayColumn, apps *ApplicationIndex, now time.Time) *domain.RenderModel {
	model := &domain.RenderModel{
		WeekStart: clock.FormatDate(window.Start),
		WeekEnd:   clock.FormatDate(window.End),
		Columns:   columns,
	}

	for ci := range model.Columns {
		for ei := range model.Columns[ci].Events {
			card := &model.Columns[ci].Events[ei]
			card.Event.Bands = BillOrder(card.Event.Bands)
			card.Blocks = ComposeBlocks(card.Event)
			card.ApplicationStatus = apps.StatusFor(card.Event.ID)
			card.HasApplied = apps.HasApplied(card.Event.ID)
		}
	}

	today := clock.FormatDate(now)
	for i := 0; i < daysPerWeek; i++ {
		if clock.FormatDate(window.Day(i)) == today {
			model.CurrentTimeIndicator = &domain.CurrentTimeIndicator{
				ColumnIndex:  i,
				LeftFraction: float64(i) / daysPerWeek,
				TopPercent:   clock.CurrentTimePercent(now),
			}
			break
		}
	}
	return model
}

// sortByStart orders events by their effective start time, events with no
// parseable start last. Stable so equal starts keep fetch order.
func sortByStart(events []domain.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		si, iOK := minutesOrAbsent(events[i].StartTime())
		sj, jOK := minutesOrAbsent(events[j].StartTime())
		switch {
		case !iOK:
			return false
		case !jOK:
			return true
		default:
			return si < sj
		}
	})
}
