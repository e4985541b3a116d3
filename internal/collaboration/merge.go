// internal/collaboration/merge.go
package collaboration

import (
	"sort"

	"collab-workers/internal/models"
)

// MergeIntervals fuses one employee's intervals on one project into a
// sorted, disjoint list. An interval starting on or before the running
// interval's last day is absorbed into it. The argument is never modified.
func MergeIntervals(intervals []models.WorkInterval) []models.WorkInterval {
	if len(intervals) <= 1 {
		return intervals
	}

	sorted := make([]models.WorkInterval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		fi, fj := models.DayNumber(sorted[i].DateFrom), models.DayNumber(sorted[j].DateFrom)
		if fi != fj {
			return fi < fj
		}
		return models.DayNumber(sorted[i].DateTo) < models.DayNumber(sorted[j].DateTo)
	})

	merged := make([]models.WorkInterval, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if models.DayNumber(next.DateFrom) <= models.DayNumber(current.DateTo) {
			if models.DayNumber(next.DateTo) > models.DayNumber(current.DateTo) {
				current.DateTo = next.DateTo
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
