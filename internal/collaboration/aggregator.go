// internal/collaboration/aggregator.go
package collaboration

import (
	"fmt"
	"sync/atomic"

	"collab-workers/internal/models"

	"github.com/puzpuzpuz/xsync/v4"
)

type factKey struct {
	pair      models.EmployeePair
	projectID int
}

type cell struct {
	days   int64
	writes int
}

// Aggregator accumulates overlap facts keyed by (pair, project). Record is
// safe for concurrent use. Snapshot freezes the aggregator and a Record that
// observes the freeze panics. A Record racing Snapshot may still land after
// the copy is taken, so all recording must finish before Snapshot.
type Aggregator struct {
	cells  *xsync.Map[factKey, cell]
	frozen atomic.Bool
}

func NewAggregator() *Aggregator {
	return &Aggregator{cells: xsync.NewMap[factKey, cell]()}
}

// Record adds days to the (pair, projectID) entry, creating it if absent.
// Non-positive days are ignored.
func (a *Aggregator) Record(pair models.EmployeePair, projectID int, days int64) {
	if a.frozen.Load() {
		panic(fmt.Sprintf("collaboration: Record(%s, %d) after Snapshot", pair, projectID))
	}
	if days <= 0 {
		return
	}
	a.cells.Compute(factKey{pair: pair, projectID: projectID}, func(old cell, _ bool) (cell, xsync.ComputeOp) {
		return cell{days: old.days + days, writes: old.writes + 1}, xsync.UpdateOp
	})
}

// RecordAll records every fact in order.
func (a *Aggregator) RecordAll(facts []models.ProjectOverlapFact) {
	for _, f := range facts {
		a.Record(f.Pair, f.ProjectID, f.Days)
	}
}

// Writes reports how many Record calls landed on (pair, projectID).
func (a *Aggregator) Writes(pair models.EmployeePair, projectID int) int {
	c, _ := a.cells.Load(factKey{pair: pair, projectID: projectID})
	return c.writes
}

// Keys returns the number of distinct (pair, project) entries.
func (a *Aggregator) Keys() int {
	return a.cells.Size()
}

// Snapshot freezes the aggregator and returns a copy of its contents.
func (a *Aggregator) Snapshot() models.CollaborationTable {
	a.frozen.Store(true)

	table := make(models.CollaborationTable)
	a.cells.Range(func(k factKey, c cell) bool {
		projects, ok := table[k.pair]
		if !ok {
			projects = make(map[int]int64)
			table[k.pair] = projects
		}
		projects[k.projectID] = c.days
		return true
	})
	return table
}
