package request

// Date is ISO YYYY-MM-DD and Time is 24-hour "HH:mm", the machine forms
// the booking screen works in. Nil leaves a field unchanged, "" clears it.
type OpenSessionRequest struct {
	Date *string `json:"date,omitempty"`
	Time *string `json:"time,omitempty"`
}

type CandidateRequest struct {
	Date *string `json:"date,omitempty"`
	Time *string `json:"time,omitempty"`
}

type SelectRequest struct {
	Target      string `json:"target" binding:"required,oneof=table bar custom none"`
	TableNumber string `json:"tableNumber,omitempty"`
	Capacity    int    `json:"capacity,omitempty"`
}

type SubmitRequest struct {
	NumberOfPeople  int     `json:"numberOfPeople" binding:"required"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

func (r SubmitRequest) GetSpecialRequests() string {
	if r.SpecialRequests == nil {
		return ""
	}
	return *r.SpecialRequests
}
