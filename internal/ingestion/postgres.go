// internal/ingestion/postgres.go
package ingestion

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "collab-workers/internal/common/errors"
	"collab-workers/internal/common/logger"
	"collab-workers/internal/common/metrics"
	"collab-workers/internal/models"
)

const loadIntervalsQuery = `SELECT employee_id, project_id, date_from, date_to FROM work_intervals WHERE dataset_id = $1`

// Querier is the part of database.PostgresClient a source needs.
type Querier interface {
	Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Source loads the intervals of a named dataset.
type Source interface {
	Load(ctx context.Context, datasetID string) ([]models.WorkInterval, error)
}

// PostgresSource reads intervals from the work_intervals table. A NULL
// date_to means the assignment is still running.
type PostgresSource struct {
	db     Querier
	logger logger.Logger
	now    func() time.Time
}

func NewPostgresSource(db Querier, log logger.Logger) *PostgresSource {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &PostgresSource{db: db, logger: log, now: time.Now}
}

func (s *PostgresSource) Load(ctx context.Context, datasetID string) ([]models.WorkInterval, error) {
	rows, err := s.db.Query(ctx, loadIntervalsQuery, datasetID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewQueryTimeoutError("postgres")
		}
		return nil, apperrors.NewSourceQueryFailedError("postgres", err)
	}
	defer rows.Close()

	today := s.now()
	var intervals []models.WorkInterval
	for rows.Next() {
		var (
			empID, projectID int
			from             time.Time
			to               sql.NullTime
		)
		if err := rows.Scan(&empID, &projectID, &from, &to); err != nil {
			return nil, apperrors.NewSourceQueryFailedError("postgres", err)
		}

		end := today
		if to.Valid {
			end = to.Time
		}
		iv, err := models.NewWorkInterval(empID, projectID, from, end)
		if err != nil {
			metrics.IngestRowsSkipped.WithLabelValues(SkipInvertedRange).Inc()
			s.logger.Warn("Skipping stored interval", map[string]interface{}{
				"datasetId":  datasetID,
				"employeeId": empID,
				"projectId":  projectID,
				"error":      err,
			})
			continue
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewSourceQueryFailedError("postgres", err)
	}

	if len(intervals) == 0 {
		return nil, apperrors.NewDatasetNotFoundError(datasetID)
	}
	return intervals, nil
}
