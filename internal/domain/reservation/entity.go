package reservation

import (
	"errors"
	"sort"
	"time"
)

var ErrPartySizeOutOfRange = errors.New("number of people must be between 1 and 20")

const (
	MinPartySize = 1
	MaxPartySize = 20
)

// Reservation is the canonical record exchanged with the Reservation Store.
// Date and Time keep the store's textual wire forms (DD/MM/YYYY and the
// 12-hour "h:mm a. m./p. m." shape); the availability engine normalizes them
// on demand. TableNumber is not guaranteed to reference a table in the local
// catalog.
type Reservation struct {
	ID              string
	TableNumber     string
	Date            string
	Time            string
	NumberOfPeople  int
	SpecialRequests string
	Status          Status
	CreatedAt       *time.Time
	UpdatedAt       *time.Time
}

// Patch carries a partial update for the store's generic update operation.
// Nil fields are left untouched.
type Patch struct {
	Date            *string
	Time            *string
	NumberOfPeople  *int
	SpecialRequests *string
	Status          *Status
}

func ValidatePartySize(n int) error {
	if n < MinPartySize || n > MaxPartySize {
		return ErrPartySizeOutOfRange
	}
	return nil
}

func (r Reservation) IsOccupying() bool {
	return r.Status.IsOccupying()
}

func (r Reservation) IsModifiable() bool {
	return r.Status.IsModifiable()
}

// SortNewestFirst orders reservations by creation time descending. Records
// without a creation time sort last; their relative order is preserved.
func SortNewestFirst(list []Reservation) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].CreatedAt, list[j].CreatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
