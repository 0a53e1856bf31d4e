//go:build unit || e2e

package builder

import (
	"time"

	"tablebook/internal/domain/reservation"
)

// ReservationBuilder assembles store records for tests; defaults describe a
// confirmed two-top at T1 on 15/01/2024, 2:00 p. m.
type ReservationBuilder struct {
	rec reservation.Reservation
}

func NewReservationBuilder() *ReservationBuilder {
	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		rec: reservation.Reservation{
			ID:             "res-1",
			TableNumber:    "T1",
			Date:           "15/01/2024",
			Time:           "2:00 p. m.",
			NumberOfPeople: 2,
			Status:         reservation.StatusConfirmed,
			CreatedAt:      &created,
		},
	}
}

func (b *ReservationBuilder) WithID(id string) *ReservationBuilder {
	b.rec.ID = id
	return b
}

func (b *ReservationBuilder) WithTable(tableNumber string) *ReservationBuilder {
	b.rec.TableNumber = tableNumber
	return b
}

func (b *ReservationBuilder) WithDate(wireDate string) *ReservationBuilder {
	b.rec.Date = wireDate
	return b
}

func (b *ReservationBuilder) WithTime(wireTime string) *ReservationBuilder {
	b.rec.Time = wireTime
	return b
}

func (b *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	b.rec.Status = status
	return b
}

func (b *ReservationBuilder) WithPartySize(n int) *ReservationBuilder {
	b.rec.NumberOfPeople = n
	return b
}

func (b *ReservationBuilder) WithCreatedAt(t *time.Time) *ReservationBuilder {
	b.rec.CreatedAt = t
	return b
}

func (b *ReservationBuilder) Build() reservation.Reservation {
	return b.rec
}
