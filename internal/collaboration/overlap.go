// internal/collaboration/overlap.go
package collaboration

import "collab-workers/internal/models"

// PairOverlap returns the number of shared days between two employees'
// interval lists. Both bounds are inclusive, so intervals touching on a
// single day share one day. Each list should already be merged, otherwise
// days covered twice on one side are counted twice.
func PairOverlap(a, b []models.WorkInterval) int64 {
	var total int64
	for _, x := range a {
		xFrom, xTo := models.DayNumber(x.DateFrom), models.DayNumber(x.DateTo)
		for _, y := range b {
			start := max(xFrom, models.DayNumber(y.DateFrom))
			end := min(xTo, models.DayNumber(y.DateTo))
			if end >= start {
				total += end - start + 1
			}
		}
	}
	return total
}
