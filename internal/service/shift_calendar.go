package service

import (
	"sort"
	"time"

	"clinic-scheduling/internal/domain/entity"
)

// DefaultSlotIntervalMinutes is the clinic-wide grid granularity
const DefaultSlotIntervalMinutes = 30

// GenerateGrid builds the raw, duration-independent slot grid for a date.
//
// Only active shift definitions whose weekday set contains the date's weekday
// contribute slots. Within a shift, slots are emitted from the shift start in
// interval steps while strictly before the shift end; a slot at the end time
// itself is never offered. The result is ordered by time ascending, every
// slot initialized to available.
//
// Pure function of its inputs: no clock reads, no side effects. An empty grid
// means no shift is configured for that weekday, which the caller surfaces as
// "no slots" rather than an error.
func GenerateGrid(date time.Time, definitions []entity.ShiftDefinition, intervalMinutes int) ([]entity.Slot, error) {
	if intervalMinutes <= 0 {
		intervalMinutes = DefaultSlotIntervalMinutes
	}

	weekday := date.Weekday()
	slots := make([]entity.Slot, 0)

	for _, def := range definitions {
		if !def.Active() || !def.AppliesTo(weekday) {
			continue
		}

		start, err := entity.MinuteOfDay(def.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := entity.MinuteOfDay(def.EndTime)
		if err != nil {
			return nil, err
		}

		for t := start; t < end; t += intervalMinutes {
			slots = append(slots, entity.Slot{
				Time:      entity.FormatMinuteOfDay(t),
				ShiftName: def.Name,
				State:     entity.SlotStateAvailable,
			})
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Time < slots[j].Time
	})

	return slots, nil
}
