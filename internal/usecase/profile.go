package usecase

import (
	"context"
	"log/slog"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/infra/store"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/pkg/patch"
)

// EditForm is a reservation converted back to editable machine form for
// the profile screen: ISO date and 24-hour time. Fields that do not parse
// are passed through unchanged rather than failing the whole form.
type EditForm struct {
	ID              string
	Date            string
	Time            string
	NumberOfPeople  int
	SpecialRequests string
	Status          reservation.Status
}

// EditInput carries a partial edit in machine form; nil fields are kept.
type EditInput struct {
	Date            *string // ISO
	Time            *string // "HH:mm"
	NumberOfPeople  *int
	SpecialRequests *string
}

type ProfileUseCase interface {
	ListReservations(ctx context.Context, userID string) ([]reservation.Reservation, error)
	GetReservation(ctx context.Context, userID, id string) (reservation.Reservation, error)
	EditForm(ctx context.Context, userID, id string) (EditForm, error)
	UpdateReservation(ctx context.Context, userID, id string, in EditInput) (reservation.Reservation, error)
	CancelReservation(ctx context.Context, userID, id string) (reservation.Reservation, error)
	DeleteReservation(ctx context.Context, userID, id string) error
}

type profileUseCaseImpl struct {
	store  ReservationStore
	logger *slog.Logger
}

func NewProfileUseCase(store ReservationStore, logger *slog.Logger) ProfileUseCase {
	return &profileUseCaseImpl{store: store, logger: logger}
}

func (p *profileUseCaseImpl) ListReservations(ctx context.Context, userID string) ([]reservation.Reservation, error) {
	list, err := p.store.ListMine(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	reservation.SortNewestFirst(list)
	return list, nil
}

func (p *profileUseCaseImpl) GetReservation(ctx context.Context, userID, id string) (reservation.Reservation, error) {
	return p.fetch(ctx, userID, id)
}

func (p *profileUseCaseImpl) EditForm(ctx context.Context, userID, id string) (EditForm, error) {
	rec, err := p.fetchModifiable(ctx, userID, id)
	if err != nil {
		return EditForm{}, err
	}

	form := EditForm{
		ID:              rec.ID,
		Date:            rec.Date,
		Time:            rec.Time,
		NumberOfPeople:  rec.NumberOfPeople,
		SpecialRequests: rec.SpecialRequests,
		Status:          rec.Status,
	}
	if iso, convErr := schedule.ToISODate(rec.Date); convErr == nil {
		form.Date = iso
	}
	if minutes, convErr := schedule.MinutesFromWire(rec.Time); convErr == nil {
		form.Time = schedule.To24Hour(minutes)
	}
	return form, nil
}

func (p *profileUseCaseImpl) UpdateReservation(ctx context.Context, userID, id string, in EditInput) (reservation.Reservation, error) {
	rec, err := p.fetchModifiable(ctx, userID, id)
	if err != nil {
		return reservation.Reservation{}, err
	}

	update, err := toPatch(rec, in)
	if err != nil {
		return reservation.Reservation{}, err
	}

	updated, err := p.store.Update(ctx, userID, id, update)
	if err != nil {
		return reservation.Reservation{}, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return updated, nil
}

func (p *profileUseCaseImpl) CancelReservation(ctx context.Context, userID, id string) (reservation.Reservation, error) {
	if _, err := p.fetchModifiable(ctx, userID, id); err != nil {
		return reservation.Reservation{}, err
	}
	updated, err := p.store.UpdateStatus(ctx, userID, id, reservation.StatusCancelled)
	if err != nil {
		return reservation.Reservation{}, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return updated, nil
}

func (p *profileUseCaseImpl) DeleteReservation(ctx context.Context, userID, id string) error {
	if _, err := p.fetchModifiable(ctx, userID, id); err != nil {
		return err
	}
	if err := p.store.Delete(ctx, userID, id); err != nil {
		return errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return nil
}

func (p *profileUseCaseImpl) fetch(ctx context.Context, userID, id string) (reservation.Reservation, error) {
	rec, err := p.store.Get(ctx, userID, id)
	if err != nil {
		if store.IsKind(err, store.KindNotFound) {
			return reservation.Reservation{}, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return reservation.Reservation{}, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	return rec, nil
}

// fetchModifiable gates edit/cancel/delete: a cancelled or completed
// reservation is rejected here, before any mutating call goes out.
func (p *profileUseCaseImpl) fetchModifiable(ctx context.Context, userID, id string) (reservation.Reservation, error) {
	rec, err := p.fetch(ctx, userID, id)
	if err != nil {
		return reservation.Reservation{}, err
	}
	if !rec.IsModifiable() {
		return reservation.Reservation{}, errs.ErrNotModifiable
	}
	return rec, nil
}

// toPatch validates the machine-form edit and applies the forward wire
// normalization before anything is sent to the store.
func toPatch(current reservation.Reservation, in EditInput) (reservation.Patch, error) {
	var update reservation.Patch

	if in.Date != nil {
		wire, err := schedule.ToWireDate(*in.Date)
		if err != nil {
			return reservation.Patch{}, errs.Mark(err, errs.ErrInvalidDate)
		}
		update.Date = &wire
	}
	if in.Time != nil {
		minutes, err := schedule.Minutes24(*in.Time)
		if err != nil {
			return reservation.Patch{}, errs.Mark(err, errs.ErrInvalidTime)
		}
		wire := schedule.ToWireTime(minutes)
		update.Time = &wire
	}
	if in.NumberOfPeople != nil {
		size := patch.Coalesce(in.NumberOfPeople, current.NumberOfPeople)
		if err := reservation.ValidatePartySize(size); err != nil {
			return reservation.Patch{}, err
		}
		update.NumberOfPeople = &size
	}
	update.SpecialRequests = in.SpecialRequests

	return update, nil
}
