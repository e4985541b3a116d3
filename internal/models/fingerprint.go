// internal/models/fingerprint.go
package models

import (
	"encoding/binary"
	"slices"

	"github.com/zeebo/xxh3"
)

// Fingerprint hashes a record set independent of its order and of duplicate
// records, so equal sets always produce equal cache keys.
func Fingerprint(intervals []WorkInterval) uint64 {
	keys := make([][4]int64, 0, len(intervals))
	for _, iv := range intervals {
		keys = append(keys, [4]int64{
			int64(iv.EmployeeID),
			int64(iv.ProjectID),
			DayNumber(iv.DateFrom),
			DayNumber(iv.DateTo),
		})
	}
	slices.SortFunc(keys, func(a, b [4]int64) int {
		for i := range a {
			if a[i] != b[i] {
				if a[i] < b[i] {
					return -1
				}
				return 1
			}
		}
		return 0
	})
	keys = slices.Compact(keys)

	h := xxh3.New()
	var buf [32]byte
	for _, k := range keys {
		for i, v := range k {
			binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
		}
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
