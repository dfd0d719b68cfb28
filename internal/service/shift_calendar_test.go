package service

import (
	"testing"
	"time"

	"clinic-scheduling/internal/domain/entity"
)

func activeShift(name entity.ShiftName, display, start, end string, days ...int) entity.ShiftDefinition {
	active := true
	return entity.ShiftDefinition{
		Name:        name,
		DisplayName: display,
		StartTime:   start,
		EndTime:     end,
		DaysOfWeek:  entity.Weekdays(days),
		IsActive:    &active,
	}
}

func defaultShifts() []entity.ShiftDefinition {
	return []entity.ShiftDefinition{
		activeShift(entity.ShiftMorning, "Morning Shift", "07:00", "12:00", 1, 2, 3, 4, 5, 6),
		activeShift(entity.ShiftAfternoon, "Afternoon Shift", "13:00", "17:00", 1, 2, 3, 4, 5, 6),
		activeShift(entity.ShiftEvening, "Evening Shift", "18:00", "21:00", 1, 2, 3, 4, 5),
	}
}

// 2026-01-05 is a Monday
var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

func TestGenerateGrid_SlotCountAndOrder(t *testing.T) {
	grid, err := GenerateGrid(monday, defaultShifts(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// morning 07:00-12:00 = 10 slots, afternoon 13:00-17:00 = 8, evening 18:00-21:00 = 6
	if len(grid) != 24 {
		t.Fatalf("expected 24 slots, got %d", len(grid))
	}

	if grid[0].Time != "07:00" {
		t.Errorf("expected first slot 07:00, got %s", grid[0].Time)
	}
	if grid[len(grid)-1].Time != "20:30" {
		t.Errorf("expected last slot 20:30, got %s", grid[len(grid)-1].Time)
	}

	for i := 1; i < len(grid); i++ {
		if grid[i].Time <= grid[i-1].Time {
			t.Errorf("grid not ordered at index %d: %s after %s", i, grid[i].Time, grid[i-1].Time)
		}
	}

	for _, slot := range grid {
		if slot.State != entity.SlotStateAvailable {
			t.Errorf("slot %s should start available, got %s", slot.Time, slot.State)
		}
	}
}

func TestGenerateGrid_ShiftEndExcluded(t *testing.T) {
	grid, err := GenerateGrid(monday, defaultShifts(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, slot := range grid {
		if slot.Time == "12:00" || slot.Time == "17:00" || slot.Time == "21:00" {
			t.Errorf("slot at shift end %s must not be offered", slot.Time)
		}
	}
}

func TestGenerateGrid_WeekdayFiltering(t *testing.T) {
	// 2026-01-04 is a Sunday; no default shift covers it
	sunday := time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)
	grid, err := GenerateGrid(sunday, defaultShifts(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid) != 0 {
		t.Fatalf("expected empty grid on Sunday, got %d slots", len(grid))
	}

	// 2026-01-10 is a Saturday; evening shift does not run
	saturday := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	grid, err = GenerateGrid(saturday, defaultShifts(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, slot := range grid {
		if slot.ShiftName == entity.ShiftEvening {
			t.Errorf("evening slot %s should not appear on Saturday", slot.Time)
		}
	}
	if len(grid) != 18 {
		t.Errorf("expected 18 slots on Saturday, got %d", len(grid))
	}
}

func TestGenerateGrid_InactiveShiftSkipped(t *testing.T) {
	shifts := defaultShifts()
	inactive := false
	shifts[0].IsActive = &inactive

	grid, err := GenerateGrid(monday, shifts, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, slot := range grid {
		if slot.ShiftName == entity.ShiftMorning {
			t.Errorf("inactive morning shift contributed slot %s", slot.Time)
		}
	}
}

func TestGenerateGrid_CustomInterval(t *testing.T) {
	shifts := []entity.ShiftDefinition{
		activeShift(entity.ShiftMorning, "Morning Shift", "09:00", "10:00", 1),
	}

	grid, err := GenerateGrid(monday, shifts, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"09:00", "09:15", "09:30", "09:45"}
	if len(grid) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(grid))
	}
	for i, w := range want {
		if grid[i].Time != w {
			t.Errorf("slot %d: expected %s, got %s", i, w, grid[i].Time)
		}
	}
}

func TestGenerateGrid_Deterministic(t *testing.T) {
	first, err := GenerateGrid(monday, defaultShifts(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := GenerateGrid(monday, defaultShifts(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("grid lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("slot %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGenerateGrid_TimesWithSeconds(t *testing.T) {
	// Shift definitions loaded from Postgres TIME columns carry HH:MM:SS
	shifts := []entity.ShiftDefinition{
		activeShift(entity.ShiftMorning, "Morning Shift", "07:00:00", "12:00:00", 1, 2, 3, 4, 5, 6),
	}

	grid, err := GenerateGrid(monday, shifts, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid) != 10 {
		t.Fatalf("expected 10 slots, got %d", len(grid))
	}
	if grid[0].Time != "07:00" || grid[len(grid)-1].Time != "11:30" {
		t.Errorf("expected slots 07:00..11:30, got %s..%s", grid[0].Time, grid[len(grid)-1].Time)
	}
}

func TestGenerateGrid_InvalidShiftTime(t *testing.T) {
	shifts := []entity.ShiftDefinition{
		activeShift(entity.ShiftMorning, "Morning Shift", "late", "12:00", 1),
	}

	if _, err := GenerateGrid(monday, shifts, 30); err == nil {
		t.Fatal("expected error for malformed shift start time")
	}
}
