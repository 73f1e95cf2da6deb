package appointments

import (
	"testing"
	"time"
)

func TestFormatDateForAPIRoundTrip(t *testing.T) {
	dates := []string{
		"2025-01-01",
		"2025-02-28",
		"2024-02-29",
		"2025-03-30", // DST change in many zones
		"2025-10-26",
		"2025-12-31",
		"1999-07-04",
	}

	for _, d := range dates {
		t.Run(d, func(t *testing.T) {
			parsed, err := ParseAPIDate(d)
			if err != nil {
				t.Fatalf("ParseAPIDate(%q) error = %v", d, err)
			}
			if got := FormatDateForAPI(parsed); got != d {
				t.Errorf("round trip %q -> %q", d, got)
			}
		})
	}
}

func TestFormatDateForAPIUsesLocalDay(t *testing.T) {
	late := time.Date(2025, 6, 15, 23, 59, 0, 0, time.Local)
	if got := FormatDateForAPI(late); got != "2025-06-15" {
		t.Errorf("FormatDateForAPI(late evening) = %q", got)
	}
}

func TestFormatTimeForAPI(t *testing.T) {
	tests := []struct {
		name     string
		in       time.Time
		expected string
	}{
		{"truncates seconds", time.Date(2025, 1, 1, 9, 5, 30, 0, time.Local), "09:05"},
		{"midnight", time.Date(2025, 1, 1, 0, 0, 59, 999, time.Local), "00:00"},
		{"24 hour clock", time.Date(2025, 1, 1, 17, 45, 0, 0, time.Local), "17:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimeForAPI(tt.in); got != tt.expected {
				t.Errorf("FormatTimeForAPI() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseAPITime(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		wantErr  bool
	}{
		{"09:30", "09:30", false},
		{"09:05:30", "09:05", false},
		{" 14:00 ", "14:00", false},
		{"9am", "", true},
		{"25:00", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeTime(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("NormalizeTime(%q) = %q, want %q", tt.in, got, tt.expected)
			}
		})
	}
}

func TestParseAPIDateRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "2025-13-01", "01/02/2025", "2025-1-1"} {
		if _, err := ParseAPIDate(in); err == nil {
			t.Errorf("ParseAPIDate(%q) expected error", in)
		}
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2025, 4, 2, 15, 4, 5, 0, time.Local)
	got := Today(now)
	if got.Hour() != 0 || got.Minute() != 0 || FormatDateForAPI(got) != "2025-04-02" {
		t.Errorf("Today() = %v", got)
	}
}
