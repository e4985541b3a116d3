// internal/models/collaboration.go
package models

import "fmt"

// EmployeePair is an unordered pair of employees stored in canonical order
// (Emp1 < Emp2). It is comparable and safe to use as a map key.
type EmployeePair struct {
	Emp1 int `json:"emp1"`
	Emp2 int `json:"emp2"`
}

// NewEmployeePair canonicalizes the two ids.
func NewEmployeePair(id1, id2 int) EmployeePair {
	if id1 > id2 {
		id1, id2 = id2, id1
	}
	return EmployeePair{Emp1: id1, Emp2: id2}
}

// Less orders pairs by (Emp1, Emp2).
func (p EmployeePair) Less(o EmployeePair) bool {
	if p.Emp1 != o.Emp1 {
		return p.Emp1 < o.Emp1
	}
	return p.Emp2 < o.Emp2
}

func (p EmployeePair) String() string {
	return fmt.Sprintf("(%d, %d)", p.Emp1, p.Emp2)
}

// ProjectOverlapFact is the number of days a pair overlapped on one project.
type ProjectOverlapFact struct {
	Pair      EmployeePair `json:"pair"`
	ProjectID int          `json:"projectId"`
	Days      int64        `json:"days"`
}

// CollaborationTable maps each pair to its overlap days per project id.
// Iteration order is undefined; ordered views come from ranking.
type CollaborationTable map[EmployeePair]map[int]int64

// ProjectOverlap is one row of a pair's per-project breakdown.
type ProjectOverlap struct {
	ProjectID int   `json:"projectId"`
	Days      int64 `json:"days"`
}

// RankedPair is a pair with its totals and ordered breakdown.
type RankedPair struct {
	Pair      EmployeePair     `json:"pair"`
	TotalDays int64            `json:"totalDays"`
	PeakDays  int64            `json:"peakDays"`
	Projects  []ProjectOverlap `json:"projects"`
}

// PeakProject is the first entry of the ordered breakdown.
func (r RankedPair) PeakProject() ProjectOverlap {
	if len(r.Projects) == 0 {
		return ProjectOverlap{}
	}
	return r.Projects[0]
}

// RankedResult is the ordered outcome of a collaboration run.
type RankedResult struct {
	Pairs []RankedPair `json:"pairs"`
}

// Empty reports whether no pair collaborated at all.
func (r RankedResult) Empty() bool {
	return len(r.Pairs) == 0
}

// Top returns the highest ranked pair, if any.
func (r RankedResult) Top() (RankedPair, bool) {
	if len(r.Pairs) == 0 {
		return RankedPair{}, false
	}
	return r.Pairs[0], true
}

// Limit returns a view holding at most n pairs. n <= 0 means no limit.
func (r RankedResult) Limit(n int) RankedResult {
	if n <= 0 || n >= len(r.Pairs) {
		return r
	}
	return RankedResult{Pairs: r.Pairs[:n]}
}
