package collaboration

import (
	"time"

	"collab-workers/internal/models"
)

func day(n int) time.Time {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n-1)
}

func iv(emp, project, from, to int) models.WorkInterval {
	return models.WorkInterval{EmployeeID: emp, ProjectID: project, DateFrom: day(from), DateTo: day(to)}
}
