package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		expected string
	}{
		{
			name:     "minutes only",
			checkIn:  "09:05",
			checkOut: "10:00",
			expected: "55 dk",
		},
		{
			name:     "whole hours",
			checkIn:  "09:00",
			checkOut: "11:00",
			expected: "2 sa",
		},
		{
			name:     "hours and minutes",
			checkIn:  "09:15",
			checkOut: "10:45",
			expected: "1 sa 30 dk",
		},
		{
			name:     "wraps past midnight",
			checkIn:  "23:30",
			checkOut: "00:15",
			expected: "45 dk",
		},
		{
			name:     "zero length stay",
			checkIn:  "10:00",
			checkOut: "10:00",
			expected: "0 dk",
		},
		{
			name:     "open entry",
			checkIn:  "09:00",
			checkOut: "",
			expected: "--",
		},
		{
			name:     "missing check-in",
			checkIn:  "",
			checkOut: "10:00",
			expected: "--",
		},
		{
			name:     "seconds ignored",
			checkIn:  "09:05:30",
			checkOut: "10:00:10",
			expected: "55 dk",
		},
		{
			name:     "garbage clock",
			checkIn:  "morning",
			checkOut: "10:00",
			expected: "--",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.checkIn, tt.checkOut))
		})
	}
}

func TestClockInIstanbul(t *testing.T) {
	// 21:30 UTC is already the next day in Istanbul (UTC+3).
	at := time.Date(2026, 1, 10, 21, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-11", DateOf(at))
	assert.Equal(t, "00:30:00", ClockOf(at))
}
