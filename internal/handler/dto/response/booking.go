package response

import (
	"tablebook/internal/usecase"

	"github.com/google/uuid"
)

type TableStatusResponse struct {
	TableResponse
	Available bool `json:"available"`
	Selected  bool `json:"selected"`
}

type SelectionResponse struct {
	Target      string `json:"target"`
	TableNumber string `json:"tableNumber,omitempty"`
	Capacity    int    `json:"capacity,omitempty"`
}

type SessionResponse struct {
	ID         uuid.UUID             `json:"id"`
	Date       string                `json:"date,omitempty"`
	Time       string                `json:"time,omitempty"`
	Tables     []TableStatusResponse `json:"tables"`
	Selection  *SelectionResponse    `json:"selection,omitempty"`
	Submitting bool                  `json:"submitting"`
}

func FromSessionView(view usecase.SessionView) *SessionResponse {
	tables := make([]TableStatusResponse, len(view.Tables))
	for i, st := range view.Tables {
		tables[i] = TableStatusResponse{
			TableResponse: *FromTable(st.Table),
			Available:     st.Available,
			Selected:      st.Selected,
		}
	}

	resp := &SessionResponse{
		ID:         view.ID,
		Date:       view.Date,
		Time:       view.Time,
		Tables:     tables,
		Submitting: view.Submitting,
	}
	if view.Selection != nil {
		resp.Selection = &SelectionResponse{
			Target:      string(view.Selection.Kind),
			TableNumber: view.Selection.TableID,
			Capacity:    view.Selection.Capacity,
		}
	}
	return resp
}
