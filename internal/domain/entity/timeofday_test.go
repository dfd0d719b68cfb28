package entity

import "testing"

func TestMinuteOfDay(t *testing.T) {
	tests := []struct {
		clock   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:00", 420, false},
		{"12:30", 750, false},
		{"23:59", 1439, false},
		// Postgres TIME columns scan back with seconds
		{"07:00:00", 420, false},
		{"12:30:00", 750, false},
		{"23:59:59", 1439, false},
		{"24:00", 0, true},
		{"7:00", 0, true},
		{"0700", 0, true},
		{"", 0, true},
		{"banana", 0, true},
	}

	for _, tt := range tests {
		got, err := MinuteOfDay(tt.clock)
		if tt.wantErr {
			if err == nil {
				t.Errorf("MinuteOfDay(%q): expected error", tt.clock)
			}
			continue
		}
		if err != nil {
			t.Errorf("MinuteOfDay(%q): unexpected error %v", tt.clock, err)
			continue
		}
		if got != tt.want {
			t.Errorf("MinuteOfDay(%q) = %d, want %d", tt.clock, got, tt.want)
		}
	}
}

func TestFormatMinuteOfDay(t *testing.T) {
	tests := []struct {
		minute int
		want   string
	}{
		{0, "00:00"},
		{420, "07:00"},
		{465, "07:45"},
		{1439, "23:59"},
	}

	for _, tt := range tests {
		if got := FormatMinuteOfDay(tt.minute); got != tt.want {
			t.Errorf("FormatMinuteOfDay(%d) = %q, want %q", tt.minute, got, tt.want)
		}
	}
}
