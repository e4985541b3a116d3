package collaboration

import (
	"sync"
	"testing"

	"collab-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_RecordAndSnapshot(t *testing.T) {
	agg := NewAggregator()
	pair := models.NewEmployeePair(7, 3)

	agg.Record(pair, 1, 4)
	agg.Record(models.NewEmployeePair(3, 7), 1, 2)
	agg.Record(pair, 2, 5)
	agg.Record(pair, 3, 0)
	agg.Record(pair, 4, -1)

	assert.Equal(t, 2, agg.Writes(pair, 1))
	assert.Equal(t, 1, agg.Writes(pair, 2))
	assert.Equal(t, 0, agg.Writes(pair, 3))
	assert.Equal(t, 2, agg.Keys())

	table := agg.Snapshot()
	require.Len(t, table, 1)
	assert.Equal(t, map[int]int64{1: 6, 2: 5}, table[models.NewEmployeePair(3, 7)])
}

func TestAggregator_ConcurrentRecords(t *testing.T) {
	agg := NewAggregator()
	pair := models.NewEmployeePair(1, 2)

	var wg sync.WaitGroup
	for project := 0; project < 50; project++ {
		wg.Add(1)
		go func(project int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				agg.Record(pair, project%5, 1)
			}
		}(project)
	}
	wg.Wait()

	table := agg.Snapshot()
	for project := 0; project < 5; project++ {
		assert.Equal(t, int64(200), table[pair][project])
		assert.Equal(t, 200, agg.Writes(pair, project))
	}
}

func TestAggregator_RecordAfterSnapshotPanics(t *testing.T) {
	agg := NewAggregator()
	agg.Record(models.NewEmployeePair(1, 2), 1, 1)
	_ = agg.Snapshot()

	assert.Panics(t, func() {
		agg.Record(models.NewEmployeePair(1, 2), 1, 1)
	})
}

func TestAggregator_SnapshotIsACopy(t *testing.T) {
	agg := NewAggregator()
	agg.Record(models.NewEmployeePair(1, 2), 1, 3)

	first := agg.Snapshot()
	first[models.NewEmployeePair(1, 2)][1] = 99

	assert.Equal(t, int64(3), agg.Snapshot()[models.NewEmployeePair(1, 2)][1])
}
