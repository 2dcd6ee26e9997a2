package helpers

import (
	"testing"

	"gorm.io/datatypes"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    uint
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    datatypes.Time
		wantErr bool
	}{
		{"09:00", datatypes.NewTime(9, 0, 0, 0), false},
		{"18:30:15", datatypes.NewTime(18, 30, 15, 0), false},
		{"00:00", datatypes.NewTime(0, 0, 0, 0), false},
		{"24:00", 0, true},
		{"9am", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseClock(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2025-05-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := FormatDate(datatypes.Date(d)); got != "2025-05-01" {
		t.Errorf("FormatDate = %q, want 2025-05-01", got)
	}

	if _, err := ParseDate("2025-13-01"); err == nil {
		t.Error("Expected error for invalid month")
	}
}
