package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"clinic-scheduling/internal/domain/entity"
	"clinic-scheduling/internal/service"

	"github.com/jackc/pgx/v5/pgconn"
)

// 2026-01-05 is a Monday
var bookingDay = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func bookingGrid(t *testing.T, appointments []entity.Appointment, absences []entity.AbsenceRecord) []entity.Slot {
	t.Helper()
	grid, err := service.GenerateGrid(bookingDay, testShiftDefinitions(), 30)
	if err != nil {
		t.Fatalf("failed to build grid: %v", err)
	}
	grid, err = service.ApplyAbsences(grid, bookingDay, absences)
	if err != nil {
		t.Fatalf("failed to apply absences: %v", err)
	}
	grid, err = service.ApplyOccupancy(grid, appointments)
	if err != nil {
		t.Fatalf("failed to apply occupancy: %v", err)
	}
	return grid
}

func TestValidateBookingInterval(t *testing.T) {
	morning := entity.ShiftMorning
	booked45 := []entity.Appointment{
		{Date: bookingDay, StartTime: "07:00", EndTime: "07:45", Status: entity.AppointmentStatusConfirmed},
	}

	tests := []struct {
		name         string
		appointments []entity.Appointment
		absences     []entity.AbsenceRecord
		startMinute  int
		duration     int
		wantErr      error
	}{
		{
			name:        "free slot accepted",
			startMinute: 8 * 60,
			duration:    30,
		},
		{
			name:         "same slot again is already booked",
			appointments: booked45,
			startMinute:  7 * 60,
			duration:     30,
			wantErr:      ErrSlotAlreadyBooked,
		},
		{
			name:         "slot under a running 45-minute service is locked",
			appointments: booked45,
			startMinute:  7*60 + 30,
			duration:     30,
			wantErr:      ErrSlotLocked,
		},
		{
			name:         "slot after the service end is free",
			appointments: booked45,
			startMinute:  8 * 60,
			duration:     30,
		},
		{
			name: "free start slot but tail runs into a later appointment",
			appointments: []entity.Appointment{
				{Date: bookingDay, StartTime: "07:30", EndTime: "08:00", Status: entity.AppointmentStatusConfirmed},
			},
			startMinute: 7 * 60,
			duration:    45,
			wantErr:     ErrSlotAlreadyBooked,
		},
		{
			name: "slot inside an approved shift absence",
			absences: []entity.AbsenceRecord{
				{Kind: entity.AbsenceSingleShift, DateFrom: bookingDay, ShiftName: &morning, Status: entity.AbsenceStatusApproved},
			},
			startMinute: 8 * 60,
			duration:    30,
			wantErr:     ErrDoctorOnLeave,
		},
		{
			name:        "start time outside every shift",
			startMinute: 12 * 60,
			duration:    30,
			wantErr:     ErrOutsideShiftHours,
		},
		{
			name:        "tail runs past the shift end",
			startMinute: 11*60 + 30,
			duration:    45,
			wantErr:     ErrOutsideShiftHours,
		},
		{
			name:        "interval ending exactly at the shift end is accepted",
			startMinute: 11*60 + 30,
			duration:    30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := bookingGrid(t, tt.appointments, tt.absences)
			err := validateBookingInterval(grid, tt.appointments, tt.absences, testShiftDefinitions(), bookingDay, tt.startMinute, tt.startMinute+tt.duration)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateBookingInterval_MalformedAppointmentFails(t *testing.T) {
	// An unparseable persisted interval must abort the attempt, not be skipped
	appointments := []entity.Appointment{
		{Date: bookingDay, StartTime: "morning", EndTime: "09:00", Status: entity.AppointmentStatusConfirmed},
	}
	grid := bookingGrid(t, nil, nil)

	err := validateBookingInterval(grid, appointments, nil, testShiftDefinitions(), bookingDay, 8*60, 8*60+30)
	if !errors.Is(err, entity.ErrInvalidTimeOfDay) {
		t.Fatalf("expected ErrInvalidTimeOfDay, got %v", err)
	}
}

func TestIntervalFitsShift(t *testing.T) {
	shifts := testShiftDefinitions()

	tests := []struct {
		name        string
		startMinute int
		endMinute   int
		want        bool
	}{
		{"inside morning", 8 * 60, 8*60 + 45, true},
		{"exactly the whole morning shift", 7 * 60, 12 * 60, true},
		{"tail past morning end", 11*60 + 30, 12*60 + 15, false},
		{"inside the midday gap", 12 * 60, 12*60 + 30, false},
		{"spanning the gap between shifts", 11*60 + 30, 13*60 + 30, false},
		{"inside afternoon", 13 * 60, 14 * 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := intervalFitsShift(shifts, bookingDay, tt.startMinute, tt.endMinute)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("intervalFitsShift() = %v, want %v", got, tt.want)
			}
		})
	}

	// 2026-01-04 is a Sunday; no shift applies
	sunday := time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)
	got, err := intervalFitsShift(shifts, sunday, 8*60, 8*60+30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Error("no shift applies on Sunday, interval must not fit")
	}
}

func TestOverlapsAbsenceWindow(t *testing.T) {
	shifts := testShiftDefinitions()
	morning := entity.ShiftMorning
	from, to := "09:00", "11:00"

	tests := []struct {
		name        string
		absences    []entity.AbsenceRecord
		startMinute int
		endMinute   int
		want        bool
	}{
		{
			name: "full day blocks everything",
			absences: []entity.AbsenceRecord{
				{Kind: entity.AbsenceFullDay, DateFrom: bookingDay, Status: entity.AbsenceStatusApproved},
			},
			startMinute: 8 * 60,
			endMinute:   8*60 + 30,
			want:        true,
		},
		{
			name: "single shift blocks its window",
			absences: []entity.AbsenceRecord{
				{Kind: entity.AbsenceSingleShift, DateFrom: bookingDay, ShiftName: &morning, Status: entity.AbsenceStatusApproved},
			},
			startMinute: 8 * 60,
			endMinute:   8*60 + 45,
			want:        true,
		},
		{
			name: "single shift leaves other shifts open",
			absences: []entity.AbsenceRecord{
				{Kind: entity.AbsenceSingleShift, DateFrom: bookingDay, ShiftName: &morning, Status: entity.AbsenceStatusApproved},
			},
			startMinute: 14 * 60,
			endMinute:   14*60 + 30,
			want:        false,
		},
		{
			name: "time range blocks interval overlap",
			absences: []entity.AbsenceRecord{
				{Kind: entity.AbsenceTimeRange, DateFrom: bookingDay, TimeFrom: &from, TimeTo: &to, Status: entity.AbsenceStatusApproved},
			},
			startMinute: 10*60 + 30,
			endMinute:   11*60 + 15,
			want:        true,
		},
		{
			name: "interval ending exactly at range start is allowed",
			absences: []entity.AbsenceRecord{
				{Kind: entity.AbsenceTimeRange, DateFrom: bookingDay, TimeFrom: &from, TimeTo: &to, Status: entity.AbsenceStatusApproved},
			},
			startMinute: 8 * 60,
			endMinute:   9 * 60,
			want:        false,
		},
		{
			name: "interval starting exactly at range end is allowed",
			absences: []entity.AbsenceRecord{
				{Kind: entity.AbsenceTimeRange, DateFrom: bookingDay, TimeFrom: &from, TimeTo: &to, Status: entity.AbsenceStatusApproved},
			},
			startMinute: 11 * 60,
			endMinute:   11*60 + 30,
			want:        false,
		},
		{
			name: "pending record does not block",
			absences: []entity.AbsenceRecord{
				{Kind: entity.AbsenceFullDay, DateFrom: bookingDay, Status: entity.AbsenceStatusPending},
			},
			startMinute: 8 * 60,
			endMinute:   8*60 + 30,
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := overlapsAbsenceWindow(tt.absences, shifts, bookingDay, tt.startMinute, tt.endMinute)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("overlapsAbsenceWindow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlapsAbsenceWindow_MalformedRangeFails(t *testing.T) {
	from, to := "9am", "11:00"
	absences := []entity.AbsenceRecord{
		{Kind: entity.AbsenceTimeRange, DateFrom: bookingDay, TimeFrom: &from, TimeTo: &to, Status: entity.AbsenceStatusApproved},
	}

	_, err := overlapsAbsenceWindow(absences, testShiftDefinitions(), bookingDay, 8*60, 8*60+30)
	if !errors.Is(err, entity.ErrInvalidTimeOfDay) {
		t.Fatalf("expected ErrInvalidTimeOfDay, got %v", err)
	}
}

func TestFindSlot(t *testing.T) {
	grid := []entity.Slot{
		{Time: "07:00", ShiftName: entity.ShiftMorning, State: entity.SlotStateAvailable},
		{Time: "07:30", ShiftName: entity.ShiftMorning, State: entity.SlotStateBooked},
	}

	if slot := findSlot(grid, "07:30"); slot == nil || slot.State != entity.SlotStateBooked {
		t.Errorf("expected the booked 07:30 slot, got %+v", slot)
	}
	if slot := findSlot(grid, "08:00"); slot != nil {
		t.Errorf("expected nil for a time outside the grid, got %+v", slot)
	}
}

func TestIsBookingConflictError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"exclusion violation", &pgconn.PgError{Code: "23P01"}, true},
		{"wrapped exclusion violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"}), true},
		{"unique violation is not a booking conflict", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("connection refused"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isBookingConflictError(tt.err); got != tt.want {
				t.Errorf("isBookingConflictError() = %v, want %v", got, tt.want)
			}
		})
	}
}
