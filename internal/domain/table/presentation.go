package table

import "math"

// SeatMarker is the 2-D offset of one seat dot around a table graphic.
type SeatMarker struct {
	X float64
	Y float64
}

// ShapeClass picks the CSS shape tier for a table, keyed only by capacity.
func ShapeClass(capacity int) string {
	switch {
	case capacity <= 2:
		return "table-round-small"
	case capacity <= 4:
		return "table-square"
	case capacity <= 5:
		return "table-round-large"
	default:
		return "table-rect"
	}
}

// IconClass maps a capacity to its icon; capacities outside the fixed
// mapping fall back to the group icon.
func IconClass(capacity int) string {
	switch capacity {
	case 1, 2:
		return "icon-seats-couple"
	case 3, 4:
		return "icon-seats-small"
	case 5, 6:
		return "icon-seats-family"
	default:
		return "icon-seats-group"
	}
}

// SeatMarkers places one marker per seat evenly around the table:
// angle = 360°/capacity × index, radius from a 3-tier table by capacity.
func SeatMarkers(capacity int) []SeatMarker {
	if capacity <= 0 {
		return nil
	}
	radius := markerRadius(capacity)
	markers := make([]SeatMarker, capacity)
	step := 360.0 / float64(capacity)
	for i := range markers {
		angle := step * float64(i) * math.Pi / 180
		markers[i] = SeatMarker{
			X: radius * math.Cos(angle),
			Y: radius * math.Sin(angle),
		}
	}
	return markers
}

func markerRadius(capacity int) float64 {
	switch {
	case capacity <= 2:
		return 24
	case capacity <= 5:
		return 32
	default:
		return 42
	}
}
