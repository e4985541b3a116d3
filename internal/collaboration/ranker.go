// internal/collaboration/ranker.go
package collaboration

import (
	"sort"

	"collab-workers/internal/models"
)

// Rank orders pairs by total days descending, then by their best single
// project descending, then by (Emp1, Emp2) ascending. Each breakdown is
// ordered by days descending, then project id ascending. The table is not
// modified.
func Rank(table models.CollaborationTable) models.RankedResult {
	pairs := make([]models.RankedPair, 0, len(table))
	for pair, projects := range table {
		rp := models.RankedPair{
			Pair:     pair,
			Projects: make([]models.ProjectOverlap, 0, len(projects)),
		}
		for projectID, days := range projects {
			rp.TotalDays += days
			rp.PeakDays = max(rp.PeakDays, days)
			rp.Projects = append(rp.Projects, models.ProjectOverlap{ProjectID: projectID, Days: days})
		}
		sort.Slice(rp.Projects, func(i, j int) bool {
			a, b := rp.Projects[i], rp.Projects[j]
			if a.Days != b.Days {
				return a.Days > b.Days
			}
			return a.ProjectID < b.ProjectID
		})
		pairs = append(pairs, rp)
	}

	sort.Slice(pairs, func(i, j int) bool {
		a, b := pairs[i], pairs[j]
		if a.TotalDays != b.TotalDays {
			return a.TotalDays > b.TotalDays
		}
		if a.PeakDays != b.PeakDays {
			return a.PeakDays > b.PeakDays
		}
		return a.Pair.Less(b.Pair)
	})

	return models.RankedResult{Pairs: pairs}
}
