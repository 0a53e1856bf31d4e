package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsOccupying reports whether a reservation in this status blocks its table
// for the seating window. Cancelled and completed reservations never do.
func (s Status) IsOccupying() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsModifiable reports whether the owner may still edit or delete the
// reservation. Staff-driven transitions out of these statuses close it.
func (s Status) IsModifiable() bool {
	return s == StatusPending || s == StatusConfirmed
}
