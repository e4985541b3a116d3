// internal/collaboration/partition.go
package collaboration

import (
	"fmt"
	"sort"

	"collab-workers/internal/models"
)

// Partition groups intervals by project id, keeping input order inside each
// group. Intervals with DateFrom after DateTo must be rejected during
// ingestion; one reaching this point panics.
func Partition(intervals []models.WorkInterval) map[int][]models.WorkInterval {
	byProject := make(map[int][]models.WorkInterval)
	for _, iv := range intervals {
		mustBeValid(iv)
		byProject[iv.ProjectID] = append(byProject[iv.ProjectID], iv)
	}
	return byProject
}

// ProjectIDs returns the keys of a partition in ascending order.
func ProjectIDs(byProject map[int][]models.WorkInterval) []int {
	ids := make([]int, 0, len(byProject))
	for id := range byProject {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func mustBeValid(iv models.WorkInterval) {
	if !iv.Valid() {
		panic(fmt.Sprintf("collaboration: interval %s ends before it starts", iv))
	}
}
