package service

import (
	"time"

	"clinic-scheduling/internal/domain/entity"
)

// ApplyAbsences marks grid slots unavailable according to approved leave
// records. Returns a new slice; the input is not modified.
//
// Matching rules per kind:
//   - full_day / multi_day: the record's date interval contains the grid date,
//     every slot becomes unavailable.
//   - single_shift: record date equals the grid date, slots of the named shift
//     become unavailable.
//   - time_range: record date equals the grid date, slots whose time falls in
//     [time_from, time_to) become unavailable.
//
// Records that are not approved are ignored. Overlapping records are
// idempotent; an unavailable slot stays unavailable. A record whose time
// bounds cannot be parsed fails the whole call: dropping it would silently
// offer slots the doctor is absent for.
func ApplyAbsences(slots []entity.Slot, date time.Time, absences []entity.AbsenceRecord) ([]entity.Slot, error) {
	out := make([]entity.Slot, len(slots))
	copy(out, slots)

	for _, absence := range absences {
		if !absence.IsApproved() {
			continue
		}

		switch absence.Kind {
		case entity.AbsenceFullDay, entity.AbsenceMultiDay:
			if !absence.CoversDate(date) {
				continue
			}
			for i := range out {
				markUnavailable(&out[i])
			}

		case entity.AbsenceSingleShift:
			if !absence.SameDay(date) || absence.ShiftName == nil {
				continue
			}
			for i := range out {
				if out[i].ShiftName == *absence.ShiftName {
					markUnavailable(&out[i])
				}
			}

		case entity.AbsenceTimeRange:
			if !absence.SameDay(date) || absence.TimeFrom == nil || absence.TimeTo == nil {
				continue
			}
			from, err := entity.MinuteOfDay(*absence.TimeFrom)
			if err != nil {
				return nil, err
			}
			to, err := entity.MinuteOfDay(*absence.TimeTo)
			if err != nil {
				return nil, err
			}
			for i := range out {
				t, err := entity.MinuteOfDay(out[i].Time)
				if err != nil {
					return nil, err
				}
				if t >= from && t < to {
					markUnavailable(&out[i])
				}
			}
		}
	}

	return out, nil
}

func markUnavailable(slot *entity.Slot) {
	slot.State = entity.SlotStateUnavailable
	slot.Reason = entity.SlotReasonOnLeave
}
