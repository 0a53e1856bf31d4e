// Package table holds the fixed dining-room catalog and the purely
// capacity-derived presentation attributes the booking screen renders.
package table

import "strconv"

// BarID is the pseudo-table used when the guest picks bar seating instead
// of a numbered table. CustomID marks a party-size-only request that staff
// seat on arrival.
const (
	BarID    = "BAR"
	CustomID = "CUSTOM"
)

type Table struct {
	ID       string
	Capacity int
}

// catalogCapacities is the floor plan: index i is table T(i+1). Static
// configuration, never persisted.
var catalogCapacities = []int{
	2, 2, 2, 2, 4, 4, 4, 4, 4, 4,
	2, 2, 5, 5, 6, 6, 4, 4, 2, 2,
	8, 8, 4, 4, 5, 6, 10,
}

// DefaultCatalog returns a fresh copy of the fixed table set T1..T27.
func DefaultCatalog() []Table {
	tables := make([]Table, len(catalogCapacities))
	for i, capacity := range catalogCapacities {
		tables[i] = Table{
			ID:       tableID(i + 1),
			Capacity: capacity,
		}
	}
	return tables
}

func tableID(n int) string {
	return "T" + strconv.Itoa(n)
}
