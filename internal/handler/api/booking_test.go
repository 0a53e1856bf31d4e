//go:build unit

package api_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/table"
	"tablebook/internal/handler/api"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/infra/store"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase"
	"tablebook/tests/common/builder"
	"tablebook/tests/common/httptest"
	usecasemock "tablebook/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// The booking handler is exercised against the real usecase with only the
// Reservation Store mocked, so these tests cover the whole request path:
// identity middleware, binding, session state and status mapping.
type BookingHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockCtrl  *gomock.Controller
	mockStore *usecasemock.MockReservationStore
	booking   usecase.BookingUseCase
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.mockCtrl = gomock.NewController(s.T())
	s.mockStore = usecasemock.NewMockReservationStore(s.mockCtrl)

	cfg := config.NewTestConfig()
	clk := clock.NewMockClock(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.booking = usecase.NewBookingUseCase(s.mockStore, table.DefaultCatalog(), cfg.Booking, clk, logger)

	handler := api.NewBookingHandler(s.booking)

	s.router = gin.New()
	group := s.router.Group("/api/booking/sessions")
	group.Use(middleware.RequireIdentity())
	group.POST("", handler.OpenSession)
	group.GET("/:id", handler.GetSession)
	group.PATCH("/:id/candidate", handler.UpdateCandidate)
	group.POST("/:id/select", handler.Select)
	group.POST("/:id/focus", handler.RefreshFocus)
	group.POST("/:id/submit", handler.Submit)
	group.DELETE("/:id", handler.CloseSession)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.booking.CloseAll()
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) openSession(userID string, body any) resdto.SessionResponse {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/booking/sessions", body, userID)
	var view resdto.SessionResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &view)
	return view
}

func (s *BookingHandlerTestSuite) tableStatus(view resdto.SessionResponse, tableID string) *resdto.TableStatusResponse {
	for i := range view.Tables {
		if view.Tables[i].ID == tableID {
			return &view.Tables[i]
		}
	}
	return nil
}

func (s *BookingHandlerTestSuite) TestOpenSession() {
	url := "/api/booking/sessions"

	s.Run("error: 401 without identity header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("success: empty body opens a session without a candidate", func() {
		s.mockStore.EXPECT().List(gomock.Any()).Return(nil, nil).Times(1)

		view := s.openSession("guest-1", nil)
		s.NotEqual("", view.ID.String())
		s.Empty(view.Date)
		s.Empty(view.Time)
		s.Len(view.Tables, 27)
		for _, st := range view.Tables {
			s.True(st.Available, "table %s should be available before a time is chosen", st.ID)
		}
	})

	s.Run("success: initial candidate marks conflicting table unavailable", func() {
		snapshot := []reservation.Reservation{builder.NewReservationBuilder().Build()}
		s.mockStore.EXPECT().List(gomock.Any()).Return(snapshot, nil).Times(1)

		view := s.openSession("guest-1", map[string]string{"date": "2024-01-15", "time": "14:00"})
		s.Equal("2024-01-15", view.Date)
		s.Equal("14:00", view.Time)
		s.False(s.tableStatus(view, "T1").Available)
		s.True(s.tableStatus(view, "T2").Available)
	})

	s.Run("error: 400 for wire-format date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]string{"date": "15/01/2024"}, "guest-1")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date")
	})
}

func (s *BookingHandlerTestSuite) TestCandidateAndSelect() {
	snapshot := []reservation.Reservation{builder.NewReservationBuilder().Build()}
	s.mockStore.EXPECT().List(gomock.Any()).Return(snapshot, nil).AnyTimes()

	view := s.openSession("guest-1", nil)
	base := "/api/booking/sessions/" + view.ID.String()

	s.Run("candidate inside the seating window blocks the table", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, base+"/candidate",
			map[string]string{"date": "2024-01-15", "time": "14:29"}, "guest-1")
		var updated resdto.SessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &updated)
		s.False(s.tableStatus(updated, "T1").Available)
	})

	s.Run("error: 409 selecting the blocked table", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/select",
			map[string]any{"target": "table", "tableNumber": "T1"}, "guest-1")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not available")
	})

	s.Run("candidate at the window edge frees the table", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, base+"/candidate",
			map[string]string{"time": "14:30"}, "guest-1")
		var updated resdto.SessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &updated)
		s.True(s.tableStatus(updated, "T1").Available)
	})

	s.Run("success: selecting the freed table", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/select",
			map[string]any{"target": "table", "tableNumber": "T1"}, "guest-1")
		var updated resdto.SessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &updated)
		s.Require().NotNil(updated.Selection)
		s.Equal("table", updated.Selection.Target)
		s.Equal("T1", updated.Selection.TableNumber)
		s.True(s.tableStatus(updated, "T1").Selected)
	})

	s.Run("error: 404 selecting a table outside the catalog", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/select",
			map[string]any{"target": "table", "tableNumber": "T99"}, "guest-1")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Unknown table")
	})

	s.Run("error: 400 for unknown selection target", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/select",
			map[string]any{"target": "booth"}, "guest-1")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 404 for a foreign caller's session", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base, nil, "guest-2")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
	})

	s.Run("error: 400 for a malformed session id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/booking/sessions/not-a-uuid", nil, "guest-1")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid session ID")
	})
}

func (s *BookingHandlerTestSuite) TestSubmit() {
	s.mockStore.EXPECT().List(gomock.Any()).Return(nil, nil).AnyTimes()

	view := s.openSession("guest-1", map[string]string{"date": "2024-01-15", "time": "18:30"})
	base := "/api/booking/sessions/" + view.ID.String()

	s.Run("error: 400 before any seating is selected", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/submit",
			map[string]any{"numberOfPeople": 4}, "guest-1")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Select a table")
	})

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/select",
		map[string]any{"target": "bar"}, "guest-1")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

	s.Run("error: 422 for a party size over the limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/submit",
			map[string]any{"numberOfPeople": 21}, "guest-1")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "between 1 and 20")
	})

	s.Run("error: 409 with the store's own conflict message", func() {
		s.mockStore.EXPECT().Create(gomock.Any(), "guest-1", gomock.Any()).
			Return(reservation.Reservation{}, store.StoreError{Kind: store.KindConflict, Message: "Table already booked for that time"}).
			Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/submit",
			map[string]any{"numberOfPeople": 4}, "guest-1")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Table already booked for that time")
	})

	s.Run("success: 201 with the stored record, date and time in wire form", func() {
		s.mockStore.EXPECT().Create(gomock.Any(), "guest-1", gomock.Any()).
			DoAndReturn(func(_ any, _ string, rec reservation.Reservation) (reservation.Reservation, error) {
				s.Equal("15/01/2024", rec.Date)
				s.Equal("6:30 p. m.", rec.Time)
				s.Equal(table.BarID, rec.TableNumber)
				s.Equal(4, rec.NumberOfPeople)
				rec.ID = "res-42"
				rec.Status = reservation.StatusPending
				return rec, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/submit",
			map[string]any{"numberOfPeople": 4, "specialRequests": "window seat"}, "guest-1")
		var created resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &created)
		s.Equal("res-42", created.ID)
		s.Equal("pending", created.Status)
	})

	s.Run("form is reset after a successful submission", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, base, nil, "guest-1")
		var after resdto.SessionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &after)
		s.Nil(after.Selection)
		s.Empty(after.Date)
		s.Empty(after.Time)
	})
}

func (s *BookingHandlerTestSuite) TestRefreshFocus() {
	s.mockStore.EXPECT().List(gomock.Any()).Return(nil, nil).Times(1)
	view := s.openSession("guest-1", map[string]string{"date": "2024-01-15", "time": "14:00"})
	base := "/api/booking/sessions/" + view.ID.String()

	// The focus refresh refetches immediately and recomputes availability.
	snapshot := []reservation.Reservation{builder.NewReservationBuilder().Build()}
	s.mockStore.EXPECT().List(gomock.Any()).Return(snapshot, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, base+"/focus", nil, "guest-1")
	var updated resdto.SessionResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &updated)
	s.False(s.tableStatus(updated, "T1").Available)
}

func (s *BookingHandlerTestSuite) TestCloseSession() {
	s.mockStore.EXPECT().List(gomock.Any()).Return(nil, nil).Times(1)
	view := s.openSession("guest-1", nil)
	base := "/api/booking/sessions/" + view.ID.String()

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, base, nil, "guest-1")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusNoContent, nil)

	rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, base, nil, "guest-1")
	httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
}
