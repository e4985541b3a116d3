// internal/models/work_interval.go
package models

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("dateFrom is after dateTo")

// WorkInterval is one employee's presence on one project between two
// calendar days, both inclusive.
type WorkInterval struct {
	EmployeeID int       `json:"employeeId"`
	ProjectID  int       `json:"projectId"`
	DateFrom   time.Time `json:"dateFrom"`
	DateTo     time.Time `json:"dateTo"`
}

// NewWorkInterval normalizes both dates to civil days and rejects ranges
// where dateFrom falls after dateTo.
func NewWorkInterval(employeeID, projectID int, dateFrom, dateTo time.Time) (WorkInterval, error) {
	from, to := CivilDate(dateFrom), CivilDate(dateTo)
	if from.After(to) {
		return WorkInterval{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			from.Format(DateLayout), to.Format(DateLayout))
	}
	return WorkInterval{
		EmployeeID: employeeID,
		ProjectID:  projectID,
		DateFrom:   from,
		DateTo:     to,
	}, nil
}

// Valid reports whether the interval honours dateFrom <= dateTo.
func (w WorkInterval) Valid() bool {
	return DayNumber(w.DateFrom) <= DayNumber(w.DateTo)
}

// Days is the inclusive length of the interval.
func (w WorkInterval) Days() int64 {
	return DayNumber(w.DateTo) - DayNumber(w.DateFrom) + 1
}

func (w WorkInterval) String() string {
	return fmt.Sprintf("emp%d@project%d[%s..%s]", w.EmployeeID, w.ProjectID,
		w.DateFrom.Format(DateLayout), w.DateTo.Format(DateLayout))
}

// DateLayout is the canonical wire format for civil days.
const DateLayout = "2006-01-02"

// CivilDate drops the time of day and pins the date to UTC midnight so that
// day arithmetic never crosses a DST boundary.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayNumber returns the number of days since the Unix epoch for the civil
// date of t.
func DayNumber(t time.Time) int64 {
	return CivilDate(t).Unix() / 86400
}
