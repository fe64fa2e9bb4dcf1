package attendance

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDuration renders the stay length between two clock times given at
// hour:minute resolution ("HH:MM" or "HH:MM:SS"). Negative spans wrap around
// midnight, so an overnight stay still yields a sane value. An entry without a
// check-out renders as the placeholder.
func FormatDuration(checkIn, checkOut string) string {
	in, okIn := clockMinutes(checkIn)
	out, okOut := clockMinutes(checkOut)
	if !okIn || !okOut {
		return "--"
	}
	total := out - in
	if total < 0 {
		total += 24 * 60
	}
	hours := total / 60
	minutes := total % 60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%d sa %d dk", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%d sa", hours)
	default:
		return fmt.Sprintf("%d dk", minutes)
	}
}

// clockMinutes parses "HH:MM..." into minutes since midnight.
func clockMinutes(clock string) (int, bool) {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
