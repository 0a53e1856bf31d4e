package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// Minutes24 parses a 24-hour "HH:mm" string into minutes since midnight.
func Minutes24(s string) (int, error) {
	hour, minute, err := splitClock(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if hour > 23 {
		return 0, ErrInvalidTime
	}
	return hour*60 + minute, nil
}

// To24Hour renders minutes since midnight as zero-padded "HH:mm".
func To24Hour(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ToWireTime renders minutes since midnight in the 12-hour wire form,
// e.g. 870 -> "2:30 p. m.". Hour 0 maps to 12 a. m. and hour 12 stays
// 12 p. m.
func ToWireTime(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	hour := minutes / 60
	minute := minutes % 60

	suffix := "a. m."
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		suffix = "p. m."
	case hour > 12:
		hour -= 12
		suffix = "p. m."
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}

// MinutesFromWire parses the 12-hour wire form back to minutes since
// midnight. The meridiem suffix is tolerated in its spacing/period
// variants ("a.m.", "a. m.", "AM", ...) case-insensitively.
func MinutesFromWire(s string) (int, error) {
	s = strings.TrimSpace(s)

	// The clock part ends at the first byte that is neither digit nor colon.
	i := 0
	for i < len(s) && (s[i] == ':' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	clockPart := s[:i]
	meridiem, err := normalizeMeridiem(s[i:])
	if err != nil {
		return 0, err
	}

	hour, minute, err := splitClock(clockPart)
	if err != nil {
		return 0, err
	}
	if hour < 1 || hour > 12 {
		return 0, ErrInvalidTime
	}

	switch meridiem {
	case "am":
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour != 12 {
			hour += 12
		}
	}
	return hour*60 + minute, nil
}

func splitClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidTime
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 {
		return 0, 0, ErrInvalidTime
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidTime
	}
	return hour, minute, nil
}

// normalizeMeridiem collapses "a. m.", "a.m.", "AM" etc. to "am"/"pm".
func normalizeMeridiem(s string) (string, error) {
	cleaned := strings.ToLower(strings.NewReplacer(".", "", " ", "", "\t", "").Replace(s))
	switch cleaned {
	case "am":
		return "am", nil
	case "pm":
		return "pm", nil
	default:
		return "", ErrInvalidTime
	}
}
