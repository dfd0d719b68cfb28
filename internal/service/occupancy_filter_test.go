package service

import (
	"errors"
	"testing"

	"clinic-scheduling/internal/domain/entity"
)

func slotByTime(t *testing.T, slots []entity.Slot, at string) entity.Slot {
	t.Helper()
	for _, s := range slots {
		if s.Time == at {
			return s
		}
	}
	t.Fatalf("no slot at %s", at)
	return entity.Slot{}
}

func TestApplyOccupancy_BooksStartSlot(t *testing.T) {
	appointments := []entity.Appointment{
		{Date: monday, StartTime: "08:00", EndTime: "08:30", Status: entity.AppointmentStatusConfirmed},
	}

	out, err := ApplyOccupancy(mondayGrid(t), appointments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	booked := slotByTime(t, out, "08:00")
	if booked.State != entity.SlotStateBooked {
		t.Errorf("08:00 should be booked, got %s", booked.State)
	}
	if booked.Reason != entity.SlotReasonAppointmentExists {
		t.Errorf("08:00 reason: got %q", booked.Reason)
	}

	next := slotByTime(t, out, "08:30")
	if next.State != entity.SlotStateAvailable {
		t.Errorf("08:30 should stay available after a 30-minute service, got %s", next.State)
	}
}

func TestApplyOccupancy_LongServiceLocksFollowingSlots(t *testing.T) {
	// 45-minute consultation starting at 07:00 occupies [07:00, 07:45)
	appointments := []entity.Appointment{
		{Date: monday, StartTime: "07:00", EndTime: "07:45", Status: entity.AppointmentStatusConfirmed},
	}

	out, err := ApplyOccupancy(mondayGrid(t), appointments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s := slotByTime(t, out, "07:00"); s.State != entity.SlotStateBooked {
		t.Errorf("07:00 should be booked, got %s", s.State)
	}
	s := slotByTime(t, out, "07:30")
	if s.State != entity.SlotStateLocked {
		t.Errorf("07:30 should be locked while the service runs over it, got %s", s.State)
	}
	if s.Reason != entity.SlotReasonServiceInProgress {
		t.Errorf("07:30 reason: got %q", s.Reason)
	}
	if s := slotByTime(t, out, "08:00"); s.State != entity.SlotStateAvailable {
		t.Errorf("08:00 falls past the service end and should be available, got %s", s.State)
	}
}

func TestApplyOccupancy_TimesWithSeconds(t *testing.T) {
	// Appointments loaded from Postgres TIME columns carry HH:MM:SS strings
	appointments := []entity.Appointment{
		{Date: monday, StartTime: "08:00:00", EndTime: "08:45:00", Status: entity.AppointmentStatusConfirmed},
	}

	out, err := ApplyOccupancy(mondayGrid(t), appointments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s := slotByTime(t, out, "08:00"); s.State != entity.SlotStateBooked {
		t.Errorf("08:00 should be booked, got %s", s.State)
	}
	if s := slotByTime(t, out, "08:30"); s.State != entity.SlotStateLocked {
		t.Errorf("08:30 should be locked, got %s", s.State)
	}
}

func TestApplyOccupancy_MalformedIntervalFails(t *testing.T) {
	appointments := []entity.Appointment{
		{Date: monday, StartTime: "noon", EndTime: "12:30", Status: entity.AppointmentStatusConfirmed},
	}

	_, err := ApplyOccupancy(mondayGrid(t), appointments)
	if !errors.Is(err, entity.ErrInvalidTimeOfDay) {
		t.Fatalf("an appointment with an unparseable interval must fail the call, got %v", err)
	}
}

func TestApplyOccupancy_IgnoresCancelled(t *testing.T) {
	appointments := []entity.Appointment{
		{Date: monday, StartTime: "09:00", EndTime: "10:00", Status: entity.AppointmentStatusCancelled},
	}

	out, err := ApplyOccupancy(mondayGrid(t), appointments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, slot := range out {
		if slot.State != entity.SlotStateAvailable {
			t.Errorf("cancelled appointment must free its interval, slot %s is %s", slot.Time, slot.State)
		}
	}
}

func TestApplyOccupancy_AbsenceTakesPrecedence(t *testing.T) {
	shiftName := entity.ShiftMorning
	absences := []entity.AbsenceRecord{
		{Kind: entity.AbsenceSingleShift, DateFrom: monday, ShiftName: &shiftName, Status: entity.AbsenceStatusApproved},
	}
	appointments := []entity.Appointment{
		{Date: monday, StartTime: "08:00", EndTime: "08:30", Status: entity.AppointmentStatusConfirmed},
	}

	grid, err := ApplyAbsences(mondayGrid(t), monday, absences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := ApplyOccupancy(grid, appointments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := slotByTime(t, out, "08:00")
	if s.State != entity.SlotStateUnavailable {
		t.Errorf("absence should win over occupancy, got %s", s.State)
	}
	if s.Reason != entity.SlotReasonOnLeave {
		t.Errorf("08:00 reason: got %q", s.Reason)
	}
}

func TestApplyOccupancy_MultipleAppointments(t *testing.T) {
	appointments := []entity.Appointment{
		{Date: monday, StartTime: "07:00", EndTime: "07:30", Status: entity.AppointmentStatusConfirmed},
		{Date: monday, StartTime: "13:00", EndTime: "14:00", Status: entity.AppointmentStatusPending},
	}

	out, err := ApplyOccupancy(mondayGrid(t), appointments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s := slotByTime(t, out, "07:00"); s.State != entity.SlotStateBooked {
		t.Errorf("07:00 should be booked, got %s", s.State)
	}
	if s := slotByTime(t, out, "13:00"); s.State != entity.SlotStateBooked {
		t.Errorf("pending appointment still occupies 13:00, got %s", s.State)
	}
	if s := slotByTime(t, out, "13:30"); s.State != entity.SlotStateLocked {
		t.Errorf("13:30 should be locked, got %s", s.State)
	}
	if got, want := countByState(out, entity.SlotStateAvailable), len(out)-3; got != want {
		t.Errorf("expected %d available slots, got %d", want, got)
	}
}

func TestApplyOccupancy_DoesNotModifyInput(t *testing.T) {
	grid := mondayGrid(t)
	appointments := []entity.Appointment{
		{Date: monday, StartTime: "07:00", EndTime: "07:45", Status: entity.AppointmentStatusConfirmed},
	}

	if _, err := ApplyOccupancy(grid, appointments); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, slot := range grid {
		if slot.State != entity.SlotStateAvailable {
			t.Fatalf("input slice was mutated: slot %s is %s", slot.Time, slot.State)
		}
	}
}
