package usecase

import (
	"context"
	"log/slog"
	"sync"

	"tablebook/internal/domain/availability"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/table"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

// CandidateInput carries the guest's date/time edits in machine form:
// ISO date and 24-hour "HH:mm". Nil leaves a field unchanged, an empty
// string clears it.
type CandidateInput struct {
	Date *string
	Time *string
}

type SelectionInput struct {
	Target      string // "table", "bar" or "custom"
	TableNumber string
	Capacity    int
}

type SubmitInput struct {
	NumberOfPeople  int
	SpecialRequests string
}

// SessionView is the immutable snapshot handed to the presentation layer.
type SessionView struct {
	ID         uuid.UUID
	Date       string // ISO, empty when unset
	Time       string // "HH:mm", empty when unset
	Tables     []availability.TableStatus
	Selection  *availability.Selection
	Submitting bool
}

type BookingUseCase interface {
	OpenSession(ctx context.Context, userID string, cand CandidateInput) (SessionView, error)
	GetSession(userID string, sessionID uuid.UUID) (SessionView, error)
	UpdateCandidate(userID string, sessionID uuid.UUID, cand CandidateInput) (SessionView, error)
	Select(userID string, sessionID uuid.UUID, sel SelectionInput) (SessionView, error)
	RefreshFocus(ctx context.Context, userID string, sessionID uuid.UUID) (SessionView, error)
	Submit(ctx context.Context, userID string, sessionID uuid.UUID, in SubmitInput) (reservation.Reservation, error)
	CloseSession(userID string, sessionID uuid.UUID) error
	CloseIdleSessions() int
	CloseAll()
}

type bookingUseCaseImpl struct {
	store   ReservationStore
	catalog []table.Table
	cfg     config.BookingConfig
	clock   clock.Clock
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

func NewBookingUseCase(
	store ReservationStore,
	catalog []table.Table,
	cfg config.BookingConfig,
	clk clock.Clock,
	logger *slog.Logger,
) BookingUseCase {
	return &bookingUseCaseImpl{
		store:    store,
		catalog:  catalog,
		cfg:      cfg,
		clock:    clk,
		logger:   logger,
		sessions: make(map[uuid.UUID]*session),
	}
}

func (b *bookingUseCaseImpl) OpenSession(ctx context.Context, userID string, cand CandidateInput) (SessionView, error) {
	s := newSession(userID, b.store, b.catalog, b.cfg, b.clock, b.logger)
	if err := s.applyCandidate(cand); err != nil {
		s.close()
		return SessionView{}, err
	}

	// First snapshot is fetched inline so the opening response already
	// reflects current availability; refresh errors degrade open.
	s.refresh(ctx)
	s.startPolling()

	b.mu.Lock()
	b.sessions[s.id] = s
	b.mu.Unlock()

	return s.snapshotView(), nil
}

func (b *bookingUseCaseImpl) GetSession(userID string, sessionID uuid.UUID) (SessionView, error) {
	s, err := b.lookup(userID, sessionID)
	if err != nil {
		return SessionView{}, err
	}
	return s.snapshotView(), nil
}

func (b *bookingUseCaseImpl) UpdateCandidate(userID string, sessionID uuid.UUID, cand CandidateInput) (SessionView, error) {
	s, err := b.lookup(userID, sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if err := s.applyCandidate(cand); err != nil {
		return SessionView{}, err
	}
	return s.snapshotView(), nil
}

func (b *bookingUseCaseImpl) Select(userID string, sessionID uuid.UUID, sel SelectionInput) (SessionView, error) {
	s, err := b.lookup(userID, sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if err := s.applySelection(sel); err != nil {
		return SessionView{}, err
	}
	return s.snapshotView(), nil
}

func (b *bookingUseCaseImpl) RefreshFocus(ctx context.Context, userID string, sessionID uuid.UUID) (SessionView, error) {
	s, err := b.lookup(userID, sessionID)
	if err != nil {
		return SessionView{}, err
	}
	s.refresh(ctx)
	return s.snapshotView(), nil
}

func (b *bookingUseCaseImpl) Submit(ctx context.Context, userID string, sessionID uuid.UUID, in SubmitInput) (reservation.Reservation, error) {
	s, err := b.lookup(userID, sessionID)
	if err != nil {
		return reservation.Reservation{}, err
	}
	return s.submit(ctx, in)
}

func (b *bookingUseCaseImpl) CloseSession(userID string, sessionID uuid.UUID) error {
	b.mu.Lock()
	s, ok := b.sessions[sessionID]
	if ok && s.userID == userID {
		delete(b.sessions, sessionID)
	}
	b.mu.Unlock()

	if !ok || s.userID != userID {
		return errs.ErrSessionNotFound
	}
	s.close()
	return nil
}

// CloseIdleSessions reaps sessions whose owner went away without tearing
// them down, so their timers cannot leak. Invoked by the app-level janitor.
func (b *bookingUseCaseImpl) CloseIdleSessions() int {
	deadline := b.clock.Now().Add(-b.cfg.SessionTTL)

	b.mu.Lock()
	var idle []*session
	for id, s := range b.sessions {
		if s.idleSince().Before(deadline) {
			idle = append(idle, s)
			delete(b.sessions, id)
		}
	}
	b.mu.Unlock()

	for _, s := range idle {
		s.close()
	}
	if len(idle) > 0 {
		b.logger.Info("closed idle booking sessions", slog.Int("count", len(idle)))
	}
	return len(idle)
}

func (b *bookingUseCaseImpl) CloseAll() {
	b.mu.Lock()
	all := make([]*session, 0, len(b.sessions))
	for id, s := range b.sessions {
		all = append(all, s)
		delete(b.sessions, id)
	}
	b.mu.Unlock()

	for _, s := range all {
		s.close()
	}
}

// lookup resolves a session for its owner; a foreign session id is
// indistinguishable from a missing one.
func (b *bookingUseCaseImpl) lookup(userID string, sessionID uuid.UUID) (*session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sessions[sessionID]
	if !ok || s.userID != userID {
		return nil, errs.ErrSessionNotFound
	}
	return s, nil
}

func parseCandidateDate(iso string) (string, error) {
	if _, err := schedule.ToWireDate(iso); err != nil {
		return "", errs.Mark(err, errs.ErrInvalidDate)
	}
	return iso, nil
}

func parseCandidateTime(hhmm string) (int, error) {
	minutes, err := schedule.Minutes24(hhmm)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrInvalidTime)
	}
	return minutes, nil
}
