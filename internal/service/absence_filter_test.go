package service

import (
	"errors"
	"testing"

	"clinic-scheduling/internal/domain/entity"
)

func mondayGrid(t *testing.T) []entity.Slot {
	t.Helper()
	grid, err := GenerateGrid(monday, defaultShifts(), 30)
	if err != nil {
		t.Fatalf("failed to build grid: %v", err)
	}
	return grid
}

func countByState(slots []entity.Slot, state entity.SlotState) int {
	n := 0
	for _, s := range slots {
		if s.State == state {
			n++
		}
	}
	return n
}

func TestApplyAbsences_FullDay(t *testing.T) {
	grid := mondayGrid(t)
	absences := []entity.AbsenceRecord{
		{Kind: entity.AbsenceFullDay, DateFrom: monday, Status: entity.AbsenceStatusApproved},
	}

	out, err := ApplyAbsences(grid, monday, absences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := countByState(out, entity.SlotStateUnavailable); n != len(out) {
		t.Fatalf("expected all %d slots unavailable, got %d", len(out), n)
	}
	for _, slot := range out {
		if slot.Reason != entity.SlotReasonOnLeave {
			t.Errorf("slot %s: expected on-leave reason, got %q", slot.Time, slot.Reason)
		}
	}
}

func TestApplyAbsences_MultiDayCoversDate(t *testing.T) {
	dateTo := monday.AddDate(0, 0, 3)
	absences := []entity.AbsenceRecord{
		{
			Kind:     entity.AbsenceMultiDay,
			DateFrom: monday.AddDate(0, 0, -1),
			DateTo:   &dateTo,
			Status:   entity.AbsenceStatusApproved,
		},
	}

	out, err := ApplyAbsences(mondayGrid(t), monday, absences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := countByState(out, entity.SlotStateUnavailable); n != len(out) {
		t.Fatalf("expected all slots unavailable inside leave interval, got %d of %d", n, len(out))
	}

	// A grid date outside the interval is untouched
	after := monday.AddDate(0, 0, 7)
	out, err = ApplyAbsences(mondayGrid(t), after, absences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := countByState(out, entity.SlotStateUnavailable); n != 0 {
		t.Fatalf("expected no unavailable slots outside leave interval, got %d", n)
	}
}

func TestApplyAbsences_SingleShift(t *testing.T) {
	shiftName := entity.ShiftAfternoon
	absences := []entity.AbsenceRecord{
		{
			Kind:      entity.AbsenceSingleShift,
			DateFrom:  monday,
			ShiftName: &shiftName,
			Status:    entity.AbsenceStatusApproved,
		},
	}

	out, err := ApplyAbsences(mondayGrid(t), monday, absences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, slot := range out {
		switch slot.ShiftName {
		case entity.ShiftAfternoon:
			if slot.State != entity.SlotStateUnavailable {
				t.Errorf("afternoon slot %s should be unavailable, got %s", slot.Time, slot.State)
			}
		default:
			if slot.State != entity.SlotStateAvailable {
				t.Errorf("%s slot %s should stay available, got %s", slot.ShiftName, slot.Time, slot.State)
			}
		}
	}
}

func TestApplyAbsences_TimeRange(t *testing.T) {
	from, to := "09:00", "10:30"
	absences := []entity.AbsenceRecord{
		{
			Kind:     entity.AbsenceTimeRange,
			DateFrom: monday,
			TimeFrom: &from,
			TimeTo:   &to,
			Status:   entity.AbsenceStatusApproved,
		},
	}

	out, err := ApplyAbsences(mondayGrid(t), monday, absences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	blocked := map[string]bool{"09:00": true, "09:30": true, "10:00": true}
	for _, slot := range out {
		if blocked[slot.Time] {
			if slot.State != entity.SlotStateUnavailable {
				t.Errorf("slot %s inside range should be unavailable, got %s", slot.Time, slot.State)
			}
		} else if slot.State != entity.SlotStateAvailable {
			// 10:30 sits exactly at time_to and must stay open
			t.Errorf("slot %s outside range should stay available, got %s", slot.Time, slot.State)
		}
	}
}

func TestApplyAbsences_TimeRangeWithSeconds(t *testing.T) {
	// Postgres TIME columns scan back as HH:MM:SS
	from, to := "09:00:00", "10:30:00"
	absences := []entity.AbsenceRecord{
		{
			Kind:     entity.AbsenceTimeRange,
			DateFrom: monday,
			TimeFrom: &from,
			TimeTo:   &to,
			Status:   entity.AbsenceStatusApproved,
		},
	}

	out, err := ApplyAbsences(mondayGrid(t), monday, absences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := countByState(out, entity.SlotStateUnavailable); n != 3 {
		t.Fatalf("expected 3 unavailable slots for [09:00, 10:30), got %d", n)
	}
}

func TestApplyAbsences_MalformedTimeRangeFails(t *testing.T) {
	from, to := "morning", "10:30"
	absences := []entity.AbsenceRecord{
		{
			Kind:     entity.AbsenceTimeRange,
			DateFrom: monday,
			TimeFrom: &from,
			TimeTo:   &to,
			Status:   entity.AbsenceStatusApproved,
		},
	}

	_, err := ApplyAbsences(mondayGrid(t), monday, absences)
	if !errors.Is(err, entity.ErrInvalidTimeOfDay) {
		t.Fatalf("a record with unparseable bounds must fail the call, got %v", err)
	}
}

func TestApplyAbsences_IgnoresNonApproved(t *testing.T) {
	absences := []entity.AbsenceRecord{
		{Kind: entity.AbsenceFullDay, DateFrom: monday, Status: entity.AbsenceStatusPending},
		{Kind: entity.AbsenceFullDay, DateFrom: monday, Status: entity.AbsenceStatusRejected},
	}

	out, err := ApplyAbsences(mondayGrid(t), monday, absences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := countByState(out, entity.SlotStateUnavailable); n != 0 {
		t.Fatalf("pending and rejected records must not affect the grid, got %d unavailable", n)
	}
}

func TestApplyAbsences_OverlappingRecordsIdempotent(t *testing.T) {
	shiftName := entity.ShiftMorning
	from, to := "07:00", "09:00"
	absences := []entity.AbsenceRecord{
		{Kind: entity.AbsenceSingleShift, DateFrom: monday, ShiftName: &shiftName, Status: entity.AbsenceStatusApproved},
		{Kind: entity.AbsenceTimeRange, DateFrom: monday, TimeFrom: &from, TimeTo: &to, Status: entity.AbsenceStatusApproved},
	}

	out, err := ApplyAbsences(mondayGrid(t), monday, absences)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, slot := range out {
		if slot.ShiftName == entity.ShiftMorning && slot.State != entity.SlotStateUnavailable {
			t.Errorf("morning slot %s should be unavailable, got %s", slot.Time, slot.State)
		}
	}
}

func TestApplyAbsences_DoesNotModifyInput(t *testing.T) {
	grid := mondayGrid(t)
	absences := []entity.AbsenceRecord{
		{Kind: entity.AbsenceFullDay, DateFrom: monday, Status: entity.AbsenceStatusApproved},
	}

	if _, err := ApplyAbsences(grid, monday, absences); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, slot := range grid {
		if slot.State != entity.SlotStateAvailable {
			t.Fatalf("input slice was mutated: slot %s is %s", slot.Time, slot.State)
		}
	}
}
