package entity

// SlotState represents the availability state of a single grid slot
type SlotState string

const (
	SlotStateAvailable   SlotState = "available"
	SlotStateBooked      SlotState = "booked"
	SlotStateLocked      SlotState = "locked"
	SlotStateUnavailable SlotState = "unavailable"
)

// Slot reason messages surfaced to patients
const (
	SlotReasonOnLeave           = "doctor on leave"
	SlotReasonAppointmentExists = "appointment exists"
	SlotReasonServiceInProgress = "previous service not finished"
)

// Slot is a derived view of one bookable start time within a shift.
// Slots are computed fresh per availability request and never persisted.
type Slot struct {
	Time      string    `json:"time"` // Format: HH:MM
	ShiftName ShiftName `json:"shift_name"`
	State     SlotState `json:"state"`
	Reason    string    `json:"reason,omitempty"`
}

// IsAvailable checks if the slot can still start a new appointment
func (s *Slot) IsAvailable() bool {
	return s.State == SlotStateAvailable
}
