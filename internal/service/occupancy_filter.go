package service

import (
	"clinic-scheduling/internal/domain/entity"
)

// ApplyOccupancy marks grid slots according to existing non-cancelled
// appointments. Returns a new slice; the input is not modified.
//
// Each appointment occupies its persisted [start, end) interval. The slot at
// the appointment start becomes booked; any further slot inside the interval
// becomes locked, since the doctor is still busy with a service longer than
// the grid granularity. Slots already marked unavailable by an absence keep
// that state: a doctor on leave cannot also be booked, and absence is the
// stronger signal for the patient.
//
// An appointment whose interval cannot be parsed fails the whole call:
// skipping it would present an occupied slot as available.
func ApplyOccupancy(slots []entity.Slot, appointments []entity.Appointment) ([]entity.Slot, error) {
	out := make([]entity.Slot, len(slots))
	copy(out, slots)

	for _, appointment := range appointments {
		if appointment.IsCancelled() {
			continue
		}

		start, end, err := appointment.Interval()
		if err != nil {
			return nil, err
		}

		for i := range out {
			if out[i].State == entity.SlotStateUnavailable {
				continue
			}
			t, err := entity.MinuteOfDay(out[i].Time)
			if err != nil {
				return nil, err
			}
			if t < start || t >= end {
				continue
			}
			if t == start {
				out[i].State = entity.SlotStateBooked
				out[i].Reason = entity.SlotReasonAppointmentExists
			} else {
				out[i].State = entity.SlotStateLocked
				out[i].Reason = entity.SlotReasonServiceInProgress
			}
		}
	}

	return out, nil
}
