package api

import (
	"errors"
	"net/http"

	"tablebook/internal/domain/reservation"
	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/httperr"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profile usecase.ProfileUseCase
}

func NewProfileHandler(profile usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

// @Summary List my reservations
// @Description The caller's reservations, most recent first
// @Tags profile
// @Produce json
// @Success 200 {array} resdto.ReservationResponse
// @Failure 401 {object} httperr.Response
// @Router /api/profile/reservations [get]
func (h *ProfileHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("identity missing after middleware"), "Internal server error", nil)
		return
	}
	list, err := h.profile.ListReservations(c.Request.Context(), userID)
	if err != nil {
		h.respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationList(list))
}

// @Summary Get one reservation
// @Tags profile
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /api/profile/reservations/{id} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("identity missing after middleware"), "Internal server error", nil)
		return
	}
	rec, err := h.profile.GetReservation(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(rec))
}

// @Summary Get edit form
// @Description Reservation converted back to editable machine form (ISO date, 24-hour time)
// @Tags profile
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.EditFormResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/profile/reservations/{id}/edit [get]
func (h *ProfileHandler) EditForm(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("identity missing after middleware"), "Internal server error", nil)
		return
	}
	form, err := h.profile.EditForm(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromEditForm(form))
}

// @Summary Update reservation
// @Description Partial edit; only pending or confirmed reservations may change
// @Tags profile
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Fields to change"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/profile/reservations/{id} [patch]
func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("identity missing after middleware"), "Internal server error", nil)
		return
	}
	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	rec, err := h.profile.UpdateReservation(c.Request.Context(), userID, c.Param("id"), usecase.EditInput{
		Date:            req.Date,
		Time:            req.Time,
		NumberOfPeople:  req.NumberOfPeople,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		h.respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(rec))
}

// @Summary Cancel reservation
// @Description Sets status to cancelled through the store's status endpoint
// @Tags profile
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/profile/reservations/{id}/cancel [post]
func (h *ProfileHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("identity missing after middleware"), "Internal server error", nil)
		return
	}
	rec, err := h.profile.CancelReservation(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondProfileError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservation(rec))
}

// @Summary Delete reservation
// @Tags profile
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/profile/reservations/{id} [delete]
func (h *ProfileHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("identity missing after middleware"), "Internal server error", nil)
		return
	}
	if err := h.profile.DeleteReservation(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondProfileError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) respondProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errors.Is(err, errs.ErrNotModifiable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation can no longer be modified", nil)
	case errors.Is(err, errs.ErrInvalidDate):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date", nil)
	case errors.Is(err, errs.ErrInvalidTime):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid time", nil)
	case errors.Is(err, reservation.ErrPartySizeOutOfRange):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Number of people must be between 1 and 20", nil)
	case errors.Is(err, errs.ErrStoreOperationFailed):
		respondStoreError(c, err)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
