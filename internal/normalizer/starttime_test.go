package normalizer

import (
	"testing"
	"time"
)

func TestParseStartTime(t *testing.T) {
	// Wednesday.
	now := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		text    string
		want    time.Time
		wantOK  bool
	}{
		{"9/21 4:25PM", time.Date(2025, time.September, 21, 16, 25, 0, 0, time.UTC), true},
		{"12/7/25 1:00PM", time.Date(2025, time.December, 7, 13, 0, 0, 0, time.UTC), true},
		{"SEP 21 4:25PM", time.Date(2025, time.September, 21, 16, 25, 0, 0, time.UTC), true},
		// Month-name date already past rolls into next season.
		{"SEP 8 7:00PM", time.Date(2026, time.September, 8, 19, 0, 0, 0, time.UTC), true},
		{"TODAY 8:15PM", time.Date(2025, time.September, 10, 20, 15, 0, 0, time.UTC), true},
		{"TOMORROW 9:30AM", time.Date(2025, time.September, 11, 9, 30, 0, 0, time.UTC), true},
		{"SUN 1:00PM", time.Date(2025, time.September, 14, 13, 0, 0, 0, time.UTC), true},
		{"THU 8:15PM", time.Date(2025, time.September, 11, 20, 15, 0, 0, time.UTC), true},
		// Same weekday as today resolves to today, not next week.
		{"WED 7:00PM", time.Date(2025, time.September, 10, 19, 0, 0, 0, time.UTC), true},
		// No date context at all: today.
		{"4:25PM", time.Date(2025, time.September, 10, 16, 25, 0, 0, time.UTC), true},
		{"12:00AM", time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC), true},
		{"12:30PM", time.Date(2025, time.September, 10, 12, 30, 0, 0, time.UTC), true},
		// No clock token: the card is not time-stamped.
		{"FINAL", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseStartTime(tt.text, now)
		if ok != tt.wantOK {
			t.Errorf("ParseStartTime(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseStartTime(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
