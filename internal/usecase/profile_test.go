//go:build unit

package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase"
	"tablebook/tests/common/builder"
	usecasemock "tablebook/tests/mock/usecase"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ProfileTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockStore *usecasemock.MockReservationStore
	profile   usecase.ProfileUseCase
}

func (s *ProfileTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = usecasemock.NewMockReservationStore(s.ctrl)
	s.profile = usecase.NewProfileUseCase(s.mockStore, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *ProfileTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestProfileSuite(t *testing.T) {
	suite.Run(t, new(ProfileTestSuite))
}

func (s *ProfileTestSuite) TestListSortsNewestFirst() {
	at := func(day int) *time.Time {
		ts := time.Date(2024, 1, day, 8, 0, 0, 0, time.UTC)
		return &ts
	}
	s.mockStore.EXPECT().ListMine(gomock.Any(), "guest-1").Return([]reservation.Reservation{
		builder.NewReservationBuilder().WithID("a").WithCreatedAt(at(2)).Build(),
		builder.NewReservationBuilder().WithID("no-ts").WithCreatedAt(nil).Build(),
		builder.NewReservationBuilder().WithID("b").WithCreatedAt(at(9)).Build(),
	}, nil)

	list, err := s.profile.ListReservations(context.Background(), "guest-1")
	s.Require().NoError(err)

	ids := []string{list[0].ID, list[1].ID, list[2].ID}
	s.Equal([]string{"b", "a", "no-ts"}, ids)
}

func (s *ProfileTestSuite) TestEditFormUsesInverseNormalization() {
	s.mockStore.EXPECT().Get(gomock.Any(), "guest-1", "res-1").
		Return(builder.NewReservationBuilder().Build(), nil)

	form, err := s.profile.EditForm(context.Background(), "guest-1", "res-1")
	s.Require().NoError(err)

	s.Equal("2024-01-15", form.Date, "wire date converted to ISO")
	s.Equal("14:00", form.Time, "wire time converted to 24-hour")
}

func (s *ProfileTestSuite) TestEditFormPassesThroughUnparsableTime() {
	rec := builder.NewReservationBuilder().WithTime("around noon").Build()
	s.mockStore.EXPECT().Get(gomock.Any(), "guest-1", "res-1").Return(rec, nil)

	form, err := s.profile.EditForm(context.Background(), "guest-1", "res-1")
	s.Require().NoError(err)
	s.Equal("around noon", form.Time, "unparsable time passed through, not fatal")
}

func (s *ProfileTestSuite) TestUpdateAppliesForwardNormalization() {
	s.mockStore.EXPECT().Get(gomock.Any(), "guest-1", "res-1").
		Return(builder.NewReservationBuilder().Build(), nil)

	var sent reservation.Patch
	s.mockStore.EXPECT().Update(gomock.Any(), "guest-1", "res-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, p reservation.Patch) (reservation.Reservation, error) {
			sent = p
			return builder.NewReservationBuilder().Build(), nil
		})

	date := "2024-02-01"
	timeOfDay := "19:30"
	people := 6
	_, err := s.profile.UpdateReservation(context.Background(), "guest-1", "res-1", usecase.EditInput{
		Date:           &date,
		Time:           &timeOfDay,
		NumberOfPeople: &people,
	})
	s.Require().NoError(err)

	s.Require().NotNil(sent.Date)
	s.Equal("01/02/2024", *sent.Date)
	s.Require().NotNil(sent.Time)
	s.Equal("7:30 p. m.", *sent.Time)
	s.Require().NotNil(sent.NumberOfPeople)
	s.Equal(6, *sent.NumberOfPeople)
}

func (s *ProfileTestSuite) TestModificationRejectedBeforeMutatingCall() {
	for _, status := range []reservation.Status{reservation.StatusCancelled, reservation.StatusCompleted} {
		rec := builder.NewReservationBuilder().WithStatus(status).Build()

		// The server holds no reservation state, so one Get per operation
		// learns the status; no Update/UpdateStatus/Delete may follow.
		s.mockStore.EXPECT().Get(gomock.Any(), "guest-1", "res-1").Return(rec, nil).Times(3)

		_, err := s.profile.UpdateReservation(context.Background(), "guest-1", "res-1", usecase.EditInput{})
		s.ErrorIs(err, errs.ErrNotModifiable, status)

		_, err = s.profile.CancelReservation(context.Background(), "guest-1", "res-1")
		s.ErrorIs(err, errs.ErrNotModifiable, status)

		err = s.profile.DeleteReservation(context.Background(), "guest-1", "res-1")
		s.ErrorIs(err, errs.ErrNotModifiable, status)
	}
}

func (s *ProfileTestSuite) TestUpdateRejectsBadPartySizeBeforeStoreCall() {
	s.mockStore.EXPECT().Get(gomock.Any(), "guest-1", "res-1").
		Return(builder.NewReservationBuilder().Build(), nil)

	people := 0
	_, err := s.profile.UpdateReservation(context.Background(), "guest-1", "res-1", usecase.EditInput{
		NumberOfPeople: &people,
	})
	s.ErrorIs(err, reservation.ErrPartySizeOutOfRange)
}

func (s *ProfileTestSuite) TestCancelUsesStatusEndpoint() {
	s.mockStore.EXPECT().Get(gomock.Any(), "guest-1", "res-1").
		Return(builder.NewReservationBuilder().Build(), nil)
	s.mockStore.EXPECT().UpdateStatus(gomock.Any(), "guest-1", "res-1", reservation.StatusCancelled).
		Return(builder.NewReservationBuilder().WithStatus(reservation.StatusCancelled).Build(), nil)

	rec, err := s.profile.CancelReservation(context.Background(), "guest-1", "res-1")
	s.Require().NoError(err)
	s.Equal(reservation.StatusCancelled, rec.Status)
}
