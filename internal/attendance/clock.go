package attendance

import "time"

// All movement timestamps are taken in the center's wall clock regardless of
// where the server runs, so log entries stay comparable across days.
var istanbul = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		return time.FixedZone("TRT", 3*60*60)
	}
	return loc
}()

// DateOf formats t as the movement-log date (YYYY-MM-DD) in Istanbul time.
func DateOf(t time.Time) string {
	return t.In(istanbul).Format("2006-01-02")
}

// ClockOf formats t as the movement-log clock time (HH:MM:SS) in Istanbul time.
func ClockOf(t time.Time) string {
	return t.In(istanbul).Format("15:04:05")
}
