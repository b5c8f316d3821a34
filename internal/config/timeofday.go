package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time with no associated date, used for Zone
// start times (spec.md §3 "start_time_of_day (H:M:S)"). Comparisons strip
// the date component of a time.Time before comparing.
type TimeOfDay struct {
	Hour, Minute, Second int
}

// ParseTimeOfDay parses an "HH:MM:SS" string (spec.md §6: Zone's Start
// attribute).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("time-of-day %q: want HH:MM:SS", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("time-of-day %q: bad hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("time-of-day %q: bad minute", s)
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil || sec < 0 || sec > 59 {
		return TimeOfDay{}, fmt.Errorf("time-of-day %q: bad second", s)
	}
	return TimeOfDay{Hour: h, Minute: m, Second: sec}, nil
}

// Seconds returns the time-of-day as a seconds-since-midnight ordinal, the
// basis for the date-stripped comparisons used by the zone scan (spec.md
// §4.1 step 2).
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Before reports whether t sorts strictly earlier than o.
func (t TimeOfDay) Before(o TimeOfDay) bool { return t.Seconds() < o.Seconds() }

// LessOrEqual reports whether t sorts at or before o.
func (t TimeOfDay) LessOrEqual(o TimeOfDay) bool { return t.Seconds() <= o.Seconds() }

// String renders HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// OfDay extracts the TimeOfDay component of now, in now's own location.
func OfDay(now time.Time) TimeOfDay {
	return TimeOfDay{Hour: now.Hour(), Minute: now.Minute(), Second: now.Second()}
}
