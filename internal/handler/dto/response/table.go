package response

import (
	"tablebook/internal/domain/table"
)

type SeatMarkerResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type TableResponse struct {
	ID       string               `json:"id"`
	Capacity int                  `json:"capacity"`
	Shape    string               `json:"shape"`
	Icon     string               `json:"icon"`
	Seats    []SeatMarkerResponse `json:"seats"`
}

func FromTable(tbl table.Table) *TableResponse {
	markers := table.SeatMarkers(tbl.Capacity)
	seats := make([]SeatMarkerResponse, len(markers))
	for i, m := range markers {
		seats[i] = SeatMarkerResponse{X: m.X, Y: m.Y}
	}
	return &TableResponse{
		ID:       tbl.ID,
		Capacity: tbl.Capacity,
		Shape:    table.ShapeClass(tbl.Capacity),
		Icon:     table.IconClass(tbl.Capacity),
		Seats:    seats,
	}
}

func FromCatalog(catalog []table.Table) []*TableResponse {
	out := make([]*TableResponse, len(catalog))
	for i, tbl := range catalog {
		out[i] = FromTable(tbl)
	}
	return out
}
