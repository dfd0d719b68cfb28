package entity

import (
	"errors"
	"testing"
	"time"
)

func TestShiftDefinitionValidate(t *testing.T) {
	tests := []struct {
		name    string
		shift   ShiftDefinition
		wantErr error
	}{
		{
			name:  "valid morning shift",
			shift: ShiftDefinition{Name: ShiftMorning, StartTime: "07:00", EndTime: "12:00", DaysOfWeek: Weekdays{1, 2, 3, 4, 5, 6}},
		},
		{
			name:    "unknown name",
			shift:   ShiftDefinition{Name: "night", StartTime: "22:00", EndTime: "23:00", DaysOfWeek: Weekdays{1}},
			wantErr: ErrInvalidShiftName,
		},
		{
			name:    "start after end",
			shift:   ShiftDefinition{Name: ShiftEvening, StartTime: "21:00", EndTime: "18:00", DaysOfWeek: Weekdays{1}},
			wantErr: ErrInvalidShiftWindow,
		},
		{
			name:    "start equals end",
			shift:   ShiftDefinition{Name: ShiftEvening, StartTime: "18:00", EndTime: "18:00", DaysOfWeek: Weekdays{1}},
			wantErr: ErrInvalidShiftWindow,
		},
		{
			name:    "malformed start time",
			shift:   ShiftDefinition{Name: ShiftMorning, StartTime: "7am", EndTime: "12:00", DaysOfWeek: Weekdays{1}},
			wantErr: ErrInvalidTimeOfDay,
		},
		{
			name:    "weekday out of range",
			shift:   ShiftDefinition{Name: ShiftMorning, StartTime: "07:00", EndTime: "12:00", DaysOfWeek: Weekdays{1, 7}},
			wantErr: ErrInvalidWeekday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.shift.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestShiftDefinitionAppliesTo(t *testing.T) {
	shift := ShiftDefinition{DaysOfWeek: Weekdays{1, 2, 3, 4, 5}}

	if !shift.AppliesTo(time.Monday) {
		t.Error("shift should apply to Monday")
	}
	if shift.AppliesTo(time.Sunday) {
		t.Error("shift should not apply to Sunday")
	}
}

func TestShiftDefinitionActive(t *testing.T) {
	var shift ShiftDefinition
	if shift.Active() {
		t.Error("nil IsActive should report inactive")
	}

	active := true
	shift.IsActive = &active
	if !shift.Active() {
		t.Error("true IsActive should report active")
	}
}
