package collaboration

import (
	"testing"

	"collab-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPairOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b []models.WorkInterval
		want int64
	}{
		{"identical", []models.WorkInterval{iv(1, 1, 1, 5)}, []models.WorkInterval{iv(2, 1, 1, 5)}, 5},
		{"touching shares one day", []models.WorkInterval{iv(1, 1, 1, 5)}, []models.WorkInterval{iv(2, 1, 5, 9)}, 1},
		{"disjoint", []models.WorkInterval{iv(1, 1, 1, 5)}, []models.WorkInterval{iv(2, 1, 10, 15)}, 0},
		{"partial", []models.WorkInterval{iv(1, 1, 1, 10)}, []models.WorkInterval{iv(2, 1, 5, 15)}, 6},
		{
			name: "several segments",
			a:    []models.WorkInterval{iv(1, 1, 1, 5), iv(1, 1, 10, 20)},
			b:    []models.WorkInterval{iv(2, 1, 4, 12), iv(2, 1, 19, 30)},
			want: 2 + 3 + 2,
		},
		{"empty side", nil, []models.WorkInterval{iv(2, 1, 1, 5)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PairOverlap(tt.a, tt.b))
			assert.Equal(t, tt.want, PairOverlap(tt.b, tt.a))
		})
	}
}

func TestPairOverlap_AcrossYearBoundary(t *testing.T) {
	a := []models.WorkInterval{iv(1, 1, -5, 3)} // 2023-12-26 .. 2024-01-03
	b := []models.WorkInterval{iv(2, 1, 0, 40)}
	assert.Equal(t, int64(4), PairOverlap(a, b))
}
