//go:build unit

package availability_test

import (
	"testing"
	"time"

	"tablebook/internal/domain/availability"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const window = 30 * time.Minute

func catalog() []table.Table {
	return []table.Table{
		{ID: "T1", Capacity: 2},
		{ID: "T2", Capacity: 4},
		{ID: "T3", Capacity: 6},
	}
}

func confirmedAt(id, tableID, date, wireTime string) reservation.Reservation {
	return reservation.Reservation{
		ID:          id,
		TableNumber: tableID,
		Date:        date,
		Time:        wireTime,
		Status:      reservation.StatusConfirmed,
	}
}

func candidate(date string, minutes int) availability.Candidate {
	return availability.Candidate{Date: date, Minutes: minutes, TimeSet: true}
}

func tableByID(t *testing.T, v availability.View, id string) availability.TableStatus {
	t.Helper()
	for _, s := range v.Tables {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("table %s not in view", id)
	return availability.TableStatus{}
}

func TestComputeSeatingWindow(t *testing.T) {
	snapshot := []reservation.Reservation{
		confirmedAt("r1", "T1", "15/01/2024", "2:00 p. m."),
	}

	cases := []struct {
		name      string
		minutes   int
		available bool
	}{
		{"at reservation start", 14 * 60, false},
		{"last blocked minute", 14*60 + 29, false},
		{"window end is open", 14*60 + 30, true},
		{"just before start", 14*60 - 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view, skipped := availability.Compute(catalog(), snapshot, candidate("2024-01-15", tc.minutes), window, nil)
			assert.Empty(t, skipped)
			assert.Equal(t, tc.available, tableByID(t, view, "T1").Available)
			assert.True(t, tableByID(t, view, "T2").Available)
		})
	}

	t.Run("different date does not block", func(t *testing.T) {
		view, _ := availability.Compute(catalog(), snapshot, candidate("2024-01-16", 14*60), window, nil)
		assert.True(t, tableByID(t, view, "T1").Available)
	})
}

func TestComputeStatusFiltering(t *testing.T) {
	snapshot := []reservation.Reservation{
		confirmedAt("r1", "T1", "15/01/2024", "2:00 p. m."),
	}
	for _, status := range []reservation.Status{reservation.StatusCancelled, reservation.StatusCompleted} {
		snapshot[0].Status = status
		view, _ := availability.Compute(catalog(), snapshot, candidate("2024-01-15", 14*60), window, nil)
		assert.True(t, tableByID(t, view, "T1").Available, "status %s must not block", status)
	}
}

func TestComputeSkipsMalformedRecords(t *testing.T) {
	snapshot := []reservation.Reservation{
		confirmedAt("bad-date", "T1", "not-a-date", "2:00 p. m."),
		confirmedAt("bad-time", "T2", "15/01/2024", "half past two"),
		confirmedAt("good", "T3", "15/01/2024", "2:00 p. m."),
	}
	view, skipped := availability.Compute(catalog(), snapshot, candidate("2024-01-15", 14*60), window, nil)

	assert.Len(t, skipped, 2)
	assert.True(t, tableByID(t, view, "T1").Available)
	assert.True(t, tableByID(t, view, "T2").Available)
	assert.False(t, tableByID(t, view, "T3").Available)
}

func TestComputeUnknownTableReference(t *testing.T) {
	snapshot := []reservation.Reservation{
		confirmedAt("ghost", "T99", "15/01/2024", "2:00 p. m."),
	}
	view, skipped := availability.Compute(catalog(), snapshot, candidate("2024-01-15", 14*60), window, nil)
	assert.Empty(t, skipped)
	for _, s := range view.Tables {
		assert.True(t, s.Available, s.ID)
	}
}

func TestComputeIncompleteCandidate(t *testing.T) {
	snapshot := []reservation.Reservation{
		confirmedAt("r1", "T1", "15/01/2024", "2:00 p. m."),
	}
	view, _ := availability.Compute(catalog(), snapshot, availability.Candidate{Date: "2024-01-15"}, window, nil)
	assert.True(t, tableByID(t, view, "T1").Available, "no time chosen yet: nothing blocked")
}

func TestSelectionClearing(t *testing.T) {
	snapshot := []reservation.Reservation{
		confirmedAt("r1", "T1", "15/01/2024", "2:00 p. m."),
	}
	prior := &availability.Selection{Kind: availability.SelectTable, TableID: "T1"}

	t.Run("selection survives while available", func(t *testing.T) {
		view, _ := availability.Compute(catalog(), snapshot, candidate("2024-01-15", 15*60), window, prior)
		require.NotNil(t, view.Selection)
		assert.True(t, tableByID(t, view, "T1").Selected)
	})

	t.Run("selection cleared when table turns unavailable", func(t *testing.T) {
		view, _ := availability.Compute(catalog(), snapshot, candidate("2024-01-15", 14*60), window, prior)
		assert.Nil(t, view.Selection)
		assert.False(t, tableByID(t, view, "T1").Selected)
	})

	t.Run("bar selection is never cleared by table availability", func(t *testing.T) {
		bar := &availability.Selection{Kind: availability.SelectBar}
		view, _ := availability.Compute(catalog(), snapshot, candidate("2024-01-15", 14*60), window, bar)
		require.NotNil(t, view.Selection)
		assert.Equal(t, availability.SelectBar, view.Selection.Kind)
	})
}

func TestSelect(t *testing.T) {
	snapshot := []reservation.Reservation{
		confirmedAt("r1", "T1", "15/01/2024", "2:00 p. m."),
	}
	view, _ := availability.Compute(catalog(), snapshot, candidate("2024-01-15", 14*60), window, nil)

	t.Run("selecting an unavailable table is a no-op", func(t *testing.T) {
		next, err := view.Select(availability.Selection{Kind: availability.SelectTable, TableID: "T1"})
		assert.ErrorIs(t, err, availability.ErrTableUnavailable)
		assert.Nil(t, next.Selection)
	})

	t.Run("selecting an unknown table is rejected", func(t *testing.T) {
		_, err := view.Select(availability.Selection{Kind: availability.SelectTable, TableID: "T42"})
		assert.ErrorIs(t, err, availability.ErrUnknownTable)
	})

	t.Run("selecting a free table flips exactly one flag", func(t *testing.T) {
		next, err := view.Select(availability.Selection{Kind: availability.SelectTable, TableID: "T2"})
		require.NoError(t, err)
		selected := 0
		for _, s := range next.Tables {
			if s.Selected {
				selected++
				assert.Equal(t, "T2", s.ID)
			}
		}
		assert.Equal(t, 1, selected)
		// the original view is untouched
		assert.False(t, tableByID(t, view, "T2").Selected)
	})

	t.Run("switching to bar deselects the table", func(t *testing.T) {
		next, err := view.Select(availability.Selection{Kind: availability.SelectTable, TableID: "T2"})
		require.NoError(t, err)
		next, err = next.Select(availability.Selection{Kind: availability.SelectBar})
		require.NoError(t, err)
		for _, s := range next.Tables {
			assert.False(t, s.Selected, s.ID)
		}
		assert.Equal(t, availability.SelectBar, next.Selection.Kind)
	})
}
