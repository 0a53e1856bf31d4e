package request

// UpdateReservationRequest is a partial edit in machine form (ISO date,
// 24-hour time); omitted fields keep their stored values.
type UpdateReservationRequest struct {
	Date            *string `json:"date,omitempty"`
	Time            *string `json:"time,omitempty"`
	NumberOfPeople  *int    `json:"numberOfPeople,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}
