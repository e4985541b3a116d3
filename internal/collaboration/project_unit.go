// internal/collaboration/project_unit.go
package collaboration

import (
	"sort"

	"collab-workers/internal/models"
)

// ProjectUnit computes every pairwise overlap inside one project. Units
// share nothing, so any number of them may run concurrently.
type ProjectUnit struct {
	ProjectID int
	Intervals []models.WorkInterval
}

// Run merges each employee's intervals and returns one fact per pair with a
// positive overlap, ordered by pair.
func (u ProjectUnit) Run() []models.ProjectOverlapFact {
	byEmployee := make(map[int][]models.WorkInterval)
	for _, iv := range u.Intervals {
		byEmployee[iv.EmployeeID] = append(byEmployee[iv.EmployeeID], iv)
	}
	if len(byEmployee) < 2 {
		return nil
	}

	ids := make([]int, 0, len(byEmployee))
	for id, ivs := range byEmployee {
		byEmployee[id] = MergeIntervals(ivs)
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var facts []models.ProjectOverlapFact
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			days := PairOverlap(byEmployee[ids[i]], byEmployee[ids[j]])
			if days <= 0 {
				continue
			}
			facts = append(facts, models.ProjectOverlapFact{
				Pair:      models.NewEmployeePair(ids[i], ids[j]),
				ProjectID: u.ProjectID,
				Days:      days,
			})
		}
	}
	return facts
}
