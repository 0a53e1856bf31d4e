package response

import (
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/usecase"

	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID              string     `json:"id"`
	TableNumber     string     `json:"tableNumber"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	NumberOfPeople  int        `json:"numberOfPeople"`
	SpecialRequests string     `json:"specialRequests,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

func FromReservation(rec reservation.Reservation) *ReservationResponse {
	resp := &ReservationResponse{}
	_ = copier.Copy(resp, &rec)
	resp.Status = rec.Status.String()
	return resp
}

func FromReservationList(list []reservation.Reservation) []*ReservationResponse {
	out := make([]*ReservationResponse, len(list))
	for i, rec := range list {
		out[i] = FromReservation(rec)
	}
	return out
}

// EditFormResponse is the machine-form pre-fill for the profile edit view.
type EditFormResponse struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	NumberOfPeople  int    `json:"numberOfPeople"`
	SpecialRequests string `json:"specialRequests,omitempty"`
	Status          string `json:"status"`
}

func FromEditForm(form usecase.EditForm) *EditFormResponse {
	resp := &EditFormResponse{}
	_ = copier.Copy(resp, &form)
	resp.Status = form.Status.String()
	return resp
}
