package collaboration

import (
	"testing"

	"collab-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_OrdersByTotalDays(t *testing.T) {
	table := models.CollaborationTable{
		models.NewEmployeePair(2, 3): {1: 5},
		models.NewEmployeePair(1, 3): {1: 3},
		models.NewEmployeePair(1, 2): {1: 10},
	}

	result := Rank(table)
	require.Len(t, result.Pairs, 3)

	totals := []int64{result.Pairs[0].TotalDays, result.Pairs[1].TotalDays, result.Pairs[2].TotalDays}
	assert.Equal(t, []int64{10, 5, 3}, totals)
	assert.Equal(t, models.NewEmployeePair(1, 2), result.Pairs[0].Pair)
}

func TestRank_TieBreakers(t *testing.T) {
	table := models.CollaborationTable{
		// total 10, peak 5
		models.NewEmployeePair(4, 5): {1: 5, 2: 5},
		// total 10, peak 8
		models.NewEmployeePair(6, 9): {1: 8, 2: 2},
		// total 10, peak 8, smaller ids
		models.NewEmployeePair(2, 8): {3: 2, 4: 8},
	}

	result := Rank(table)
	require.Len(t, result.Pairs, 3)
	assert.Equal(t, models.NewEmployeePair(2, 8), result.Pairs[0].Pair)
	assert.Equal(t, models.NewEmployeePair(6, 9), result.Pairs[1].Pair)
	assert.Equal(t, models.NewEmployeePair(4, 5), result.Pairs[2].Pair)

	assert.Equal(t, []models.ProjectOverlap{{ProjectID: 1, Days: 5}, {ProjectID: 2, Days: 5}}, result.Pairs[2].Projects)
	assert.Equal(t, models.ProjectOverlap{ProjectID: 4, Days: 8}, result.Pairs[0].PeakProject())
	assert.Equal(t, int64(8), result.Pairs[0].PeakDays)
}

func TestRank_DoesNotMutateTable(t *testing.T) {
	table := models.CollaborationTable{models.NewEmployeePair(1, 2): {1: 1, 2: 2}}
	_ = Rank(table)
	assert.Equal(t, models.CollaborationTable{models.NewEmployeePair(1, 2): {1: 1, 2: 2}}, table)
}

func TestRank_Empty(t *testing.T) {
	result := Rank(models.CollaborationTable{})
	assert.True(t, result.Empty())
	_, ok := result.Top()
	assert.False(t, ok)
}
