package schedule

import (
	"sort"

	"gigcalendar/internal/clock"
	"gigcalendar/internal/domain"
)

const (
	// minBlockMinutes keeps zero-or-negative spans visible instead of
	// erroring when the load-in / sound-check / show ordering is violated.
	minBlockMinutes = 30

	// defaultShowMinutes is the main block duration when the event has no
	// explicit end time.
	defaultShowMinutes = 120
)

// ComposeBlocks derives the ordered visual blocks for one event in its day
// column: an optional load-in span, an optional sound-check span, and always
// one main span. Malformed time strings are treated as absent; the composer
// never fails.
func ComposeBlocks(event domain.Event) []domain.ScheduleBlock {
	blocks := make([]domain.ScheduleBlock, 0, 3)

	// Doors when present, otherwise show time. Both absent falls back to a
	// zero offset rather than dropping the event.
	start, hasStart := minutesOrAbsent(event.StartTime())
	if !hasStart {
		start = 0
	}

	loadIn, hasLoadIn := earliestMinutes(event.Bands, func(b domain.BandSchedule) string { return b.LoadInTime })
	soundCheck, hasSoundCheck := earliestMinutes(event.Bands, func(b domain.BandSchedule) string { return b.SoundCheckTime })

	if hasLoadIn && hasSoundCheck {
		blocks = append(blocks, domain.ScheduleBlock{
			Kind:             domain.BlockLoadIn,
			TopOffsetMinutes: loadIn,
			HeightMinutes:    clampHeight(soundCheck - loadIn),
			Label:            "Load-in",
			EventRef:         event.ID,
			Secondary:        true,
		})
	}

	if hasSoundCheck && hasStart {
		blocks = append(blocks, domain.ScheduleBlock{
			Kind:             domain.BlockSoundCheck,
			TopOffsetMinutes: soundCheck,
			HeightMinutes:    clampHeight(start - soundCheck),
			Label:            "Sound check",
			EventRef:         event.ID,
			Secondary:        true,
		})
	}

	duration := defaultShowMinutes
	if end, hasEnd := minutesOrAbsent(event.EndTime); hasEnd {
		duration = end - start
	}
	blocks = append(blocks, domain.ScheduleBlock{
		Kind:             domain.BlockMain,
		TopOffsetMinutes: start,
		HeightMinutes:    clampHeight(duration),
		Label:            event.Title,
		EventRef:         event.ID,
	})

	return blocks
}

// BillOrder sorts band schedules by their nullable performance order,
// unassigned entries last, preserving the original order among ties. The
// input is not mutated.
func BillOrder(bands []domain.BandSchedule) []domain.BandSchedule {
	out := make([]domain.BandSchedule, len(bands))
	copy(out, bands)
	sort.SliceStable(out, func(i, j int) bool {
		switch {
		case out[i].PerformanceOrder == nil:
			return false
		case out[j].PerformanceOrder == nil:
			return true
		default:
			return *out[i].PerformanceOrder < *out[j].PerformanceOrder
		}
	})
	return out
}

func clampHeight(minutes int) int {
	if minutes < minBlockMinutes {
		return minBlockMinutes
	}
	return minutes
}

// minutesOrAbsent parses a time-of-day string, treating malformed input the
// same as absent input per the recoverable-error policy.
func minutesOrAbsent(s string) (int, bool) {
	mins, ok, err := clock.MinutesOf(s)
	if err != nil {
		return 0, false
	}
	return mins, ok
}

// earliestMinutes finds the earliest parseable time across all bands for the
// field selected by get. Load-in and sound-check are scanned independently;
// the two minima need not come from the same band.
func earliestMinutes(bands []domain.BandSchedule, get func(domain.BandSchedule) string) (int, bool) {
	best := 0
	found := false
	for _, b := range bands {
		mins, ok := minutesOrAbsent(get(b))
		if !ok {
			continue
		}
		if !found || mins < best {
			best = mins
			found = true
		}
	}
	return best, found
}
