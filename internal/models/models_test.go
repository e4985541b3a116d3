// internal/models/models_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n-1)
}

func TestEmployeePair_Canonicalization(t *testing.T) {
	a := NewEmployeePair(3, 7)
	b := NewEmployeePair(7, 3)

	assert.Equal(t, a, b)
	assert.Equal(t, 3, b.Emp1)
	assert.Equal(t, 7, b.Emp2)

	table := map[EmployeePair]int{a: 1}
	table[b]++
	assert.Len(t, table, 1)
	assert.Equal(t, 2, table[a])
}

func TestEmployeePair_Less(t *testing.T) {
	assert.True(t, NewEmployeePair(1, 5).Less(NewEmployeePair(2, 3)))
	assert.True(t, NewEmployeePair(1, 3).Less(NewEmployeePair(1, 5)))
	assert.False(t, NewEmployeePair(1, 5).Less(NewEmployeePair(5, 1)))
}

func TestNewWorkInterval(t *testing.T) {
	t.Run("normalizes time of day", func(t *testing.T) {
		loc := time.FixedZone("UTC+3", 3*3600)
		iv, err := NewWorkInterval(1, 9, time.Date(2024, 3, 1, 23, 30, 0, 0, loc), time.Date(2024, 3, 5, 1, 0, 0, 0, loc))
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), iv.DateFrom)
		assert.Equal(t, int64(5), iv.Days())
		assert.True(t, iv.Valid())
	})

	t.Run("single day interval", func(t *testing.T) {
		iv, err := NewWorkInterval(1, 9, day(4), day(4))
		require.NoError(t, err)
		assert.Equal(t, int64(1), iv.Days())
	})

	t.Run("rejects reversed range", func(t *testing.T) {
		_, err := NewWorkInterval(1, 9, day(5), day(1))
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestDayNumber_AcrossEpochAndDST(t *testing.T) {
	assert.Equal(t, int64(0), DayNumber(time.Date(1970, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(-1), DayNumber(time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC)))

	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata not available")
	}
	before := time.Date(2024, 3, 30, 12, 0, 0, 0, berlin)
	after := time.Date(2024, 4, 1, 12, 0, 0, 0, berlin)
	assert.Equal(t, int64(2), DayNumber(after)-DayNumber(before))
}

func TestRankedResult_TopAndLimit(t *testing.T) {
	empty := RankedResult{}
	_, ok := empty.Top()
	assert.False(t, ok)
	assert.True(t, empty.Empty())

	result := RankedResult{Pairs: []RankedPair{
		{Pair: NewEmployeePair(1, 2), TotalDays: 10, Projects: []ProjectOverlap{{ProjectID: 4, Days: 10}}},
		{Pair: NewEmployeePair(1, 3), TotalDays: 5},
		{Pair: NewEmployeePair(2, 3), TotalDays: 3},
	}}
	top, ok := result.Top()
	require.True(t, ok)
	assert.Equal(t, NewEmployeePair(1, 2), top.Pair)
	assert.Equal(t, ProjectOverlap{ProjectID: 4, Days: 10}, top.PeakProject())

	assert.Len(t, result.Limit(2).Pairs, 2)
	assert.Len(t, result.Limit(0).Pairs, 3)
	assert.Len(t, result.Limit(10).Pairs, 3)
}

func TestFingerprint_OrderAndDuplicateInsensitive(t *testing.T) {
	a := WorkInterval{EmployeeID: 1, ProjectID: 9, DateFrom: day(1), DateTo: day(10)}
	b := WorkInterval{EmployeeID: 2, ProjectID: 9, DateFrom: day(5), DateTo: day(15)}
	c := WorkInterval{EmployeeID: 2, ProjectID: 9, DateFrom: day(5), DateTo: day(16)}

	assert.Equal(t, Fingerprint([]WorkInterval{a, b}), Fingerprint([]WorkInterval{b, a}))
	assert.Equal(t, Fingerprint([]WorkInterval{a, b}), Fingerprint([]WorkInterval{a, b, a}))
	assert.NotEqual(t, Fingerprint([]WorkInterval{a, b}), Fingerprint([]WorkInterval{a, c}))
}
