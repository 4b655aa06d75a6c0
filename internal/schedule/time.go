package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMinutes renders minutes since local midnight as a zero-padded
// "HH:MM" string. Hours and minutes-within-hour are both floored; seconds
// never round a timetable entry upward.
func FormatMinutes(minutes float64) string {
	total := int(minutes)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ParseHHMM is the inverse of FormatMinutes: "HH:MM" to minutes since local
// midnight.
func ParseHHMM(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours in %q: %w", s, err)
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q: %w", s, err)
	}
	if hours < 0 || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return hours*60 + mins, nil
}
