package api

import (
	"errors"
	"net/http"

	"tablebook/internal/domain/availability"
	"tablebook/internal/domain/reservation"
	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/httperr"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	booking usecase.BookingUseCase
}

func NewBookingHandler(booking usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{booking: booking}
}

// @Summary Open booking session
// @Description Open a reservation-screen session, optionally with an initial date/time
// @Tags booking
// @Accept json
// @Produce json
// @Param request body reqdto.OpenSessionRequest false "Initial candidate"
// @Success 201 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/booking/sessions [post]
func (h *BookingHandler) OpenSession(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("identity missing after middleware"), "Internal server error", nil)
		return
	}

	// An empty body is a valid "no candidate yet" opening.
	var req reqdto.OpenSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}

	view, err := h.booking.OpenSession(c.Request.Context(), userID, usecase.CandidateInput{
		Date: req.Date,
		Time: req.Time,
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromSessionView(view))
}

// @Summary Get booking session
// @Tags booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} httperr.Response
// @Router /api/booking/sessions/{id} [get]
func (h *BookingHandler) GetSession(c *gin.Context) {
	userID, sessionID, ok := h.sessionRef(c)
	if !ok {
		return
	}
	view, err := h.booking.GetSession(userID, sessionID)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSessionView(view))
}

// @Summary Update candidate date/time
// @Description Change the candidate selection; availability recomputes after the debounce window
// @Tags booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body reqdto.CandidateRequest true "Candidate changes"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/booking/sessions/{id}/candidate [patch]
func (h *BookingHandler) UpdateCandidate(c *gin.Context) {
	userID, sessionID, ok := h.sessionRef(c)
	if !ok {
		return
	}
	var req reqdto.CandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	view, err := h.booking.UpdateCandidate(userID, sessionID, usecase.CandidateInput{
		Date: req.Date,
		Time: req.Time,
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSessionView(view))
}

// @Summary Select seating
// @Description Pick a table, bar seating, a custom capacity, or none
// @Tags booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body reqdto.SelectRequest true "Seating choice"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/booking/sessions/{id}/select [post]
func (h *BookingHandler) Select(c *gin.Context) {
	userID, sessionID, ok := h.sessionRef(c)
	if !ok {
		return
	}
	var req reqdto.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	view, err := h.booking.Select(userID, sessionID, usecase.SelectionInput{
		Target:      req.Target,
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSessionView(view))
}

// @Summary Refresh on focus
// @Description Refetch the reservation snapshot immediately (view regained foreground focus)
// @Tags booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} httperr.Response
// @Router /api/booking/sessions/{id}/focus [post]
func (h *BookingHandler) RefreshFocus(c *gin.Context) {
	userID, sessionID, ok := h.sessionRef(c)
	if !ok {
		return
	}
	view, err := h.booking.RefreshFocus(c.Request.Context(), userID, sessionID)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSessionView(view))
}

// @Summary Submit reservation
// @Description Validate the form, normalize to wire format, and create the reservation
// @Tags booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body reqdto.SubmitRequest true "Booking form"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/booking/sessions/{id}/submit [post]
func (h *BookingHandler) Submit(c *gin.Context) {
	userID, sessionID, ok := h.sessionRef(c)
	if !ok {
		return
	}
	var req reqdto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	created, err := h.booking.Submit(c.Request.Context(), userID, sessionID, usecase.SubmitInput{
		NumberOfPeople:  req.NumberOfPeople,
		SpecialRequests: req.GetSpecialRequests(),
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservation(created))
}

// @Summary Close booking session
// @Description Tear the session down, cancelling its polling and debounce timers
// @Tags booking
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /api/booking/sessions/{id} [delete]
func (h *BookingHandler) CloseSession(c *gin.Context) {
	userID, sessionID, ok := h.sessionRef(c)
	if !ok {
		return
	}
	if err := h.booking.CloseSession(userID, sessionID); err != nil {
		h.respondBookingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) sessionRef(c *gin.Context) (string, uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("identity missing after middleware"), "Internal server error", nil)
		return "", uuid.Nil, false
	}
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid session ID format", nil)
		return "", uuid.Nil, false
	}
	return userID, sessionID, true
}

func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrSessionNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking session not found", nil)
	case errors.Is(err, errs.ErrInvalidDate):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
	case errors.Is(err, errs.ErrInvalidTime):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid time", nil)
	case errors.Is(err, errs.ErrMissingCandidate):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Date and time are required", nil)
	case errors.Is(err, errs.ErrNoSelection):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Select a table, bar seating, or a party size first", nil)
	case errors.Is(err, reservation.ErrPartySizeOutOfRange):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Number of people must be between 1 and 20", nil)
	case errors.Is(err, availability.ErrUnknownTable):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Unknown table", nil)
	case errors.Is(err, availability.ErrTableUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Table is not available at the selected time", nil)
	case errors.Is(err, errs.ErrSubmissionInProgress):
		httperr.AbortWithError(c, http.StatusConflict, err, "A submission is already in progress", nil)
	case errors.Is(err, errs.ErrStoreOperationFailed):
		respondStoreError(c, err)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
