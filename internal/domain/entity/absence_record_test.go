package entity

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func TestAbsenceRecordValidate(t *testing.T) {
	dateFrom := date(2026, 3, 2)
	dateTo := date(2026, 3, 5)
	before := date(2026, 3, 1)
	morning := ShiftMorning
	empty := ShiftName("")

	tests := []struct {
		name    string
		record  AbsenceRecord
		wantErr error
	}{
		{
			name:   "full day valid",
			record: AbsenceRecord{Kind: AbsenceFullDay, DateFrom: dateFrom},
		},
		{
			name:    "missing date_from",
			record:  AbsenceRecord{Kind: AbsenceFullDay},
			wantErr: errors.New("absence requires date_from"),
		},
		{
			name:   "multi day valid",
			record: AbsenceRecord{Kind: AbsenceMultiDay, DateFrom: dateFrom, DateTo: &dateTo},
		},
		{
			name:    "multi day without date_to",
			record:  AbsenceRecord{Kind: AbsenceMultiDay, DateFrom: dateFrom},
			wantErr: ErrAbsenceMissingDateTo,
		},
		{
			name:    "multi day date_to before date_from",
			record:  AbsenceRecord{Kind: AbsenceMultiDay, DateFrom: dateFrom, DateTo: &before},
			wantErr: ErrAbsenceMissingDateTo,
		},
		{
			name:   "single shift valid",
			record: AbsenceRecord{Kind: AbsenceSingleShift, DateFrom: dateFrom, ShiftName: &morning},
		},
		{
			name:    "single shift without name",
			record:  AbsenceRecord{Kind: AbsenceSingleShift, DateFrom: dateFrom},
			wantErr: ErrAbsenceMissingShift,
		},
		{
			name:    "single shift empty name",
			record:  AbsenceRecord{Kind: AbsenceSingleShift, DateFrom: dateFrom, ShiftName: &empty},
			wantErr: ErrAbsenceMissingShift,
		},
		{
			name:   "time range valid",
			record: AbsenceRecord{Kind: AbsenceTimeRange, DateFrom: dateFrom, TimeFrom: strPtr("09:00"), TimeTo: strPtr("11:00")},
		},
		{
			name:    "time range missing bounds",
			record:  AbsenceRecord{Kind: AbsenceTimeRange, DateFrom: dateFrom, TimeFrom: strPtr("09:00")},
			wantErr: ErrAbsenceMissingTimeRange,
		},
		{
			name:    "time range inverted",
			record:  AbsenceRecord{Kind: AbsenceTimeRange, DateFrom: dateFrom, TimeFrom: strPtr("11:00"), TimeTo: strPtr("09:00")},
			wantErr: ErrAbsenceMissingTimeRange,
		},
		{
			name:    "time range malformed clock",
			record:  AbsenceRecord{Kind: AbsenceTimeRange, DateFrom: dateFrom, TimeFrom: strPtr("9am"), TimeTo: strPtr("11:00")},
			wantErr: ErrInvalidTimeOfDay,
		},
		{
			name:    "unknown kind",
			record:  AbsenceRecord{Kind: AbsenceKind("sabbatical"), DateFrom: dateFrom},
			wantErr: ErrInvalidAbsenceKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) && err.Error() != tt.wantErr.Error() {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAbsenceRecordCoversDate(t *testing.T) {
	dateTo := date(2026, 3, 5)
	multi := AbsenceRecord{Kind: AbsenceMultiDay, DateFrom: date(2026, 3, 2), DateTo: &dateTo}

	if !multi.CoversDate(date(2026, 3, 2)) {
		t.Error("multi-day should cover its first day")
	}
	if !multi.CoversDate(date(2026, 3, 5)) {
		t.Error("multi-day should cover its last day")
	}
	if multi.CoversDate(date(2026, 3, 6)) {
		t.Error("multi-day should not cover the day after date_to")
	}

	full := AbsenceRecord{Kind: AbsenceFullDay, DateFrom: date(2026, 3, 2)}
	if !full.CoversDate(date(2026, 3, 2)) {
		t.Error("full-day should cover its own date")
	}
	if full.CoversDate(date(2026, 3, 3)) {
		t.Error("full-day should cover a single date only")
	}
}
