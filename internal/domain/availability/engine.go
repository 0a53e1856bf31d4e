// Package availability answers "is table X free at date D, time T?" against
// a snapshot of occupying reservations. Every computation starts from an
// all-available baseline and returns a new view; nothing is patched
// incrementally, so a recomputation can never accumulate stale state.
package availability

import (
	"fmt"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/domain/table"
)

// Candidate is the guest's current date/time selection in machine form:
// an ISO date and minutes since midnight. Both must be present before any
// table can be considered blocked.
type Candidate struct {
	Date    string
	Minutes int
	TimeSet bool
}

func (c Candidate) Complete() bool {
	return c.Date != "" && c.TimeSet
}

type SelectionKind string

const (
	SelectTable  SelectionKind = "table"
	SelectBar    SelectionKind = "bar"
	SelectCustom SelectionKind = "custom"
)

// Selection is the guest's seating choice. At most one exists per view and
// it is mutually exclusive across tables, the bar pseudo-table, and an
// explicit custom capacity.
type Selection struct {
	Kind     SelectionKind
	TableID  string
	Capacity int
}

type TableStatus struct {
	table.Table
	Available bool
	Selected  bool
}

// View is one immutable availability pass over the catalog.
type View struct {
	Tables    []TableStatus
	Selection *Selection
}

// Compute derives a fresh view for the candidate. A table is unavailable
// iff some occupying reservation targets it on the candidate date and the
// candidate time falls inside [start, start+window). A prior table
// selection that turns unavailable is dropped rather than carried stale;
// bar and custom selections are never blocked. Records that cannot be
// normalized are skipped and reported, never fatal.
func Compute(
	catalog []table.Table,
	snapshot []reservation.Reservation,
	cand Candidate,
	window time.Duration,
	prior *Selection,
) (View, []string) {
	blocked, skipped := blockedTables(snapshot, cand, window)

	selection := prior
	if selection != nil && selection.Kind == SelectTable && blocked[selection.TableID] {
		selection = nil
	}

	statuses := make([]TableStatus, len(catalog))
	for i, tbl := range catalog {
		statuses[i] = TableStatus{
			Table:     tbl,
			Available: !blocked[tbl.ID],
			Selected:  selection != nil && selection.Kind == SelectTable && selection.TableID == tbl.ID,
		}
	}
	return View{Tables: statuses, Selection: selection}, skipped
}

// blockedTables maps table ids to their blocked state for the candidate.
// The returned slice describes records that were skipped as unparsable.
func blockedTables(snapshot []reservation.Reservation, cand Candidate, window time.Duration) (map[string]bool, []string) {
	blocked := make(map[string]bool)
	if !cand.Complete() {
		return blocked, nil
	}

	windowMinutes := int(window.Minutes())
	var skipped []string

	for _, res := range snapshot {
		if !res.IsOccupying() {
			continue
		}
		resDate, err := schedule.ToISODate(res.Date)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("reservation %s: bad date %q", res.ID, res.Date))
			continue
		}
		if resDate != cand.Date {
			continue
		}
		start, err := schedule.MinutesFromWire(res.Time)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("reservation %s: bad time %q", res.ID, res.Time))
			continue
		}
		if cand.Minutes >= start && cand.Minutes < start+windowMinutes {
			// A reservation may reference a table absent from the catalog;
			// the entry is harmless there.
			blocked[res.TableNumber] = true
		}
	}
	return blocked, skipped
}

// Select returns a copy of the view with the given selection applied.
// Selecting an unavailable or unknown table is rejected and leaves the
// prior selection in force.
func (v View) Select(sel Selection) (View, error) {
	if sel.Kind == SelectTable {
		status, ok := v.lookup(sel.TableID)
		if !ok {
			return v, fmt.Errorf("select %q: %w", sel.TableID, ErrUnknownTable)
		}
		if !status.Available {
			return v, fmt.Errorf("select %q: %w", sel.TableID, ErrTableUnavailable)
		}
	}
	return v.withSelection(&sel), nil
}

// ClearSelection returns a copy of the view with no seating choice.
func (v View) ClearSelection() View {
	return v.withSelection(nil)
}

func (v View) lookup(id string) (TableStatus, bool) {
	for _, s := range v.Tables {
		if s.ID == id {
			return s, true
		}
	}
	return TableStatus{}, false
}

func (v View) withSelection(sel *Selection) View {
	statuses := make([]TableStatus, len(v.Tables))
	for i, s := range v.Tables {
		s.Selected = sel != nil && sel.Kind == SelectTable && sel.TableID == s.ID
		statuses[i] = s
	}
	return View{Tables: statuses, Selection: sel}
}
