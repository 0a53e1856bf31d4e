// Package schedule holds the textual date/time forms exchanged with the
// Reservation Store and their machine equivalents. Wire dates travel as
// DD/MM/YYYY and wire times as a 12-hour form with an "a. m."/"p. m."
// suffix; internally everything is ISO dates and minutes since midnight.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time")
)

// ToWireDate converts an ISO YYYY-MM-DD date to the DD/MM/YYYY wire form.
func ToWireDate(iso string) (string, error) {
	year, month, day, err := splitDate(iso, "-", 0, 1, 2)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d/%02d/%04d", day, month, year), nil
}

// ToISODate converts a DD/MM/YYYY wire date to ISO YYYY-MM-DD.
func ToISODate(wire string) (string, error) {
	year, month, day, err := splitDate(wire, "/", 2, 1, 0)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

// splitDate pulls year/month/day out of a three-field date string given the
// index each field occupies. Field reordering only; no calendar validation
// beyond range checks, matching the wire contract.
func splitDate(s, sep string, yearIdx, monthIdx, dayIdx int) (year, month, day int, err error) {
	parts := strings.Split(strings.TrimSpace(s), sep)
	if len(parts) != 3 {
		return 0, 0, 0, ErrInvalidDate
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil || n < 0 {
			return 0, 0, 0, ErrInvalidDate
		}
		nums[i] = n
	}
	year, month, day = nums[yearIdx], nums[monthIdx], nums[dayIdx]
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, ErrInvalidDate
	}
	return year, month, day, nil
}
