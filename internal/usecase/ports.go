package usecase

import (
	"context"

	"tablebook/internal/domain/reservation"
)

// ReservationStore is the consumed contract of the external Reservation
// Store. userID is the gateway-vouched caller identity the store needs for
// ownership checks; listing all reservations is identity-free because it
// only feeds availability computation.
type ReservationStore interface {
	Create(ctx context.Context, userID string, rec reservation.Reservation) (reservation.Reservation, error)
	List(ctx context.Context) ([]reservation.Reservation, error)
	ListMine(ctx context.Context, userID string) ([]reservation.Reservation, error)
	Get(ctx context.Context, userID, id string) (reservation.Reservation, error)
	Update(ctx context.Context, userID, id string, p reservation.Patch) (reservation.Reservation, error)
	UpdateStatus(ctx context.Context, userID, id string, status reservation.Status) (reservation.Reservation, error)
	Delete(ctx context.Context, userID, id string) error
}
