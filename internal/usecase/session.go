package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tablebook/internal/domain/availability"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/table"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

// session is the server-side stand-in for one open reservation screen. All
// state behind mu; the poll goroutine, the debounce timer and request
// handlers never observe a half-applied update, and every recomputation
// replaces the view wholesale.
type session struct {
	id      uuid.UUID
	userID  string
	store   ReservationStore
	catalog []table.Table
	cfg     config.BookingConfig
	clock   clock.Clock
	logger  *slog.Logger

	mu         sync.Mutex
	cand       availability.Candidate
	snapshot   []reservation.Reservation
	view       availability.View
	submitting bool
	lastActive time.Time
	debounce   *time.Timer
	stopPoll   context.CancelFunc
	closed     bool
}

func newSession(
	userID string,
	store ReservationStore,
	catalog []table.Table,
	cfg config.BookingConfig,
	clk clock.Clock,
	logger *slog.Logger,
) *session {
	s := &session{
		id:         uuid.New(),
		userID:     userID,
		store:      store,
		catalog:    catalog,
		cfg:        cfg,
		clock:      clk,
		logger:     logger,
		lastActive: clk.Now(),
	}
	s.view, _ = availability.Compute(catalog, nil, availability.Candidate{}, cfg.SeatingWindow, nil)
	return s
}

func (s *session) startPolling() {
	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.stopPoll = cancel
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(s.cfg.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.refresh(ctx)
			}
		}
	}()
}

// refresh refetches the reservation snapshot and recomputes. A fetch
// failure degrades open: the snapshot becomes empty and no table blocks.
func (s *session) refresh(ctx context.Context) {
	snapshot, err := s.store.List(ctx)
	if err != nil {
		s.logger.Warn("availability refresh failed, treating snapshot as empty",
			slog.String("session_id", s.id.String()), slog.String("error", err.Error()))
		snapshot = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.snapshot = snapshot
	s.recomputeLocked()
}

func (s *session) applyCandidate(in CandidateInput) error {
	// Parse before locking; the merge itself must be one critical section
	// so concurrent single-field patches cannot lose each other's write.
	var (
		date    string
		minutes int
		timeSet bool
	)
	if in.Date != nil && *in.Date != "" {
		parsed, err := parseCandidateDate(*in.Date)
		if err != nil {
			return err
		}
		date = parsed
	}
	if in.Time != nil && *in.Time != "" {
		parsed, err := parseCandidateTime(*in.Time)
		if err != nil {
			return err
		}
		minutes, timeSet = parsed, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errs.ErrSessionNotFound
	}
	if in.Date != nil {
		s.cand.Date = date
	}
	if in.Time != nil {
		s.cand.Minutes, s.cand.TimeSet = minutes, timeSet
	}
	s.touchLocked()

	// Debounce keeps per-keystroke edits from recomputing; zero runs inline.
	if s.cfg.Debounce <= 0 {
		s.recomputeLocked()
		return nil
	}
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(s.cfg.Debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		s.recomputeLocked()
	})
	return nil
}

func (s *session) applySelection(in SelectionInput) error {
	sel, err := toSelection(in)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errs.ErrSessionNotFound
	}
	s.touchLocked()

	if sel == nil {
		s.view = s.view.ClearSelection()
		return nil
	}
	next, err := s.view.Select(*sel)
	if err != nil {
		return err
	}
	s.view = next
	return nil
}

func (s *session) submit(ctx context.Context, in SubmitInput) (reservation.Reservation, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return reservation.Reservation{}, errs.ErrSessionNotFound
	}
	if s.submitting {
		s.mu.Unlock()
		return reservation.Reservation{}, errs.ErrSubmissionInProgress
	}
	s.touchLocked()

	rec, err := s.buildSubmissionLocked(in)
	if err != nil {
		s.mu.Unlock()
		return reservation.Reservation{}, err
	}
	s.submitting = true
	s.mu.Unlock()

	created, err := s.store.Create(ctx, s.userID, rec)

	s.mu.Lock()
	s.submitting = false
	if err != nil {
		// Leave candidate and selection in place so the guest can retry.
		s.mu.Unlock()
		return reservation.Reservation{}, errs.Mark(err, errs.ErrStoreOperationFailed)
	}
	// Success resets the whole form: selection and candidate date/time.
	s.view = s.view.ClearSelection()
	s.cand = availability.Candidate{}
	s.mu.Unlock()

	// Pick up the just-created reservation (and any concurrent ones).
	s.refresh(ctx)
	return created, nil
}

// buildSubmissionLocked validates the form and normalizes it to wire shape.
// Everything here fails before any network call.
func (s *session) buildSubmissionLocked(in SubmitInput) (reservation.Reservation, error) {
	if s.view.Selection == nil {
		return reservation.Reservation{}, errs.ErrNoSelection
	}
	if !s.cand.Complete() {
		return reservation.Reservation{}, errs.ErrMissingCandidate
	}
	if err := reservation.ValidatePartySize(in.NumberOfPeople); err != nil {
		return reservation.Reservation{}, err
	}

	wireDate, err := schedule.ToWireDate(s.cand.Date)
	if err != nil {
		return reservation.Reservation{}, errs.Mark(err, errs.ErrInvalidDate)
	}

	return reservation.Reservation{
		TableNumber:     submissionTableNumber(*s.view.Selection),
		Date:            wireDate,
		Time:            schedule.ToWireTime(s.cand.Minutes),
		NumberOfPeople:  in.NumberOfPeople,
		SpecialRequests: in.SpecialRequests,
	}, nil
}

func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	if s.stopPoll != nil {
		s.stopPoll()
		s.stopPoll = nil
	}
}

func (s *session) snapshotView() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := SessionView{
		ID:         s.id,
		Tables:     append([]availability.TableStatus(nil), s.view.Tables...),
		Submitting: s.submitting,
	}
	if s.view.Selection != nil {
		sel := *s.view.Selection
		view.Selection = &sel
	}
	view.Date = s.cand.Date
	if s.cand.TimeSet {
		view.Time = schedule.To24Hour(s.cand.Minutes)
	}
	return view
}

func (s *session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *session) touchLocked() {
	s.lastActive = s.clock.Now()
}

func (s *session) recomputeLocked() {
	view, skipped := availability.Compute(s.catalog, s.snapshot, s.cand, s.cfg.SeatingWindow, s.view.Selection)
	for _, reason := range skipped {
		s.logger.Debug("skipped reservation record", slog.String("reason", reason))
	}
	s.view = view
}

func toSelection(in SelectionInput) (*availability.Selection, error) {
	switch in.Target {
	case "table":
		if in.TableNumber == "" {
			return nil, errs.ErrNoSelection
		}
		return &availability.Selection{Kind: availability.SelectTable, TableID: in.TableNumber}, nil
	case "bar":
		return &availability.Selection{Kind: availability.SelectBar, TableID: table.BarID}, nil
	case "custom":
		if err := reservation.ValidatePartySize(in.Capacity); err != nil {
			return nil, err
		}
		return &availability.Selection{Kind: availability.SelectCustom, Capacity: in.Capacity}, nil
	case "none":
		return nil, nil
	default:
		return nil, errs.ErrNoSelection
	}
}

func submissionTableNumber(sel availability.Selection) string {
	switch sel.Kind {
	case availability.SelectBar:
		return table.BarID
	case availability.SelectCustom:
		return table.CustomID
	default:
		return sel.TableID
	}
}
