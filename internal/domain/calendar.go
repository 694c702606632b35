package domain

import (
	"context"
	"time"
)

// BlockKind identifies which span of an event a ScheduleBlock covers.
type BlockKind string

const (
	BlockLoadIn     BlockKind = "load_in"
	BlockSoundCheck BlockKind = "sound_check"
	BlockMain       BlockKind = "main"
)

// ScheduleBlock is a single vertically-positioned time span within a day
// column. Offsets and heights are minutes; the rendering layer applies its
// own linear minutes-to-pixels scale.
type ScheduleBlock struct {
	Kind             BlockKind `json:"kind"`
	TopOffsetMinutes int       `json:"top_offset_minutes"`
	HeightMinutes    int       `json:"height_minutes"`
	Label            string    `json:"label"`
	EventRef         int64     `json:"event_ref"`
	// Secondary marks blocks rendered at reduced emphasis (load-in).
	Secondary bool `json:"secondary,omitempty"`
}

// WeekWindow is the seven-day span anchored on the Sunday at or before a
// pivot date. Start and End are local-midnight dates.
type WeekWindow struct {
	Start time.Time
	End   time.Time
}

// Day returns the date of column i (0 = Sunday).
func (w WeekWindow) Day(i int) time.Time {
	return w.Start.AddDate(0, 0, i)
}

// EventCard pairs an event with its derived blocks and the calling band's
// application annotation for that event's template.
type EventCard struct {
	Event             Event             `json:"event"`
	Blocks            []ScheduleBlock   `json:"blocks"`
	ApplicationStatus ApplicationStatus `json:"application_status"`
	HasApplied        bool              `json:"has_applied"`
}

// DayColumn is the vertical lane for one calendar date in the weekly grid.
type DayColumn struct {
	Date   string      `json:"date"` // YYYY-MM-DD
	Events []EventCard `json:"events"`
}

// CurrentTimeIndicator positions the "now" line: which column today falls
// in, the column's horizontal fraction of the grid, and the vertical
// percentage of the day elapsed.
type CurrentTimeIndicator struct {
	ColumnIndex  int     `json:"column_index"`
	LeftFraction float64 `json:"left_fraction"` // columnIndex / 7
	TopPercent   float64 `json:"top_percent"`   // minutes since midnight / 1440 * 100
}

// RenderModel is the complete output contract to the rendering layer. It is
// recomputed from fresh fetches on every navigation and holds no identity of
// its own.
type RenderModel struct {
	WeekStart            string                `json:"week_start"` // YYYY-MM-DD
	WeekEnd              string                `json:"week_end"`
	Columns              []DayColumn           `json:"columns"`
	CurrentTimeIndicator *CurrentTimeIndicator `json:"current_time_indicator,omitempty"`
}

// CalendarService computes the weekly render model for a band.
type CalendarService interface {
	LoadWeek(ctx context.Context, bandID int64, pivot string) (*RenderModel, error)
}
