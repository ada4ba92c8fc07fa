package report

import (
	"fmt"
	"time"
)

// Placeholder is reported instead of a duration when nothing was resolved.
const Placeholder = "-"

// FormatDuration renders d the way dashboards expect turnaround times:
// "H:MM:SS", "N day(s), H:MM:SS" and a ".ffffff" suffix for sub-second remainders.
// Negative durations borrow a whole day, e.g. "-1 day, 23:00:00".
func FormatDuration(d time.Duration) string {
	micros := d.Microseconds()
	const microsPerDay = int64(24 * time.Hour / time.Microsecond)

	days := micros / microsPerDay
	rem := micros % microsPerDay
	if rem < 0 {
		days--
		rem += microsPerDay
	}

	secs := rem / 1_000_000
	frac := rem % 1_000_000
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60

	out := fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	if frac != 0 {
		out += fmt.Sprintf(".%06d", frac)
	}
	if days != 0 {
		unit := "days"
		if days == 1 || days == -1 {
			unit = "day"
		}
		out = fmt.Sprintf("%d %s, %s", days, unit, out)
	}
	return out
}

// FormatOptionalDuration formats d or returns Placeholder when d is nil.
func FormatOptionalDuration(d *time.Duration) string {
	if d == nil {
		return Placeholder
	}
	return FormatDuration(*d)
}
