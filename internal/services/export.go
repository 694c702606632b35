package services

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"gigcalendar/internal/clock"
	"gigcalendar/internal/domain"
)

// ExportWeekICS renders a computed week as an iCalendar feed, one VEVENT per
// event card, using each card's main block for the start offset and
// duration. Subscribing calendar apps consume this directly.
func ExportWeekICS(model *domain.RenderModel, now time.Time) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//gigcalendar//week feed//EN")

	for _, col := range model.Columns {
		day, err := clock.ParseDate(col.Date)
		if err != nil {
			return "", fmt.Errorf("column date: %w", err)
		}
		for _, card := range col.Events {
			main, ok := mainBlock(card.Blocks)
			if !ok {
				continue
			}
			start := day.Add(time.Duration(main.TopOffsetMinutes) * time.Minute)
			end := start.Add(time.Duration(main.HeightMinutes) * time.Minute)

			ev := cal.AddEvent(fmt.Sprintf("event-%d@gigcalendar", card.Event.ID))
			ev.SetDtStampTime(now)
			ev.SetStartAt(start)
			ev.SetEndAt(end)
			ev.SetSummary(card.Event.Title)
			if card.HasApplied {
				ev.SetDescription(fmt.Sprintf("Application status: %s", card.ApplicationStatus))
			}
		}
	}

	return cal.Serialize(), nil
}

func mainBlock(blocks []domain.ScheduleBlock) (domain.ScheduleBlock, bool) {
	for _, b := range blocks {
		if b.Kind == domain.BlockMain {
			return b, true
		}
	}
	return domain.ScheduleBlock{}, false
}
