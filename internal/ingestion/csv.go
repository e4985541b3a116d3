// internal/ingestion/csv.go
package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "collab-workers/internal/common/errors"
	"collab-workers/internal/common/logger"
	"collab-workers/internal/common/metrics"
	"collab-workers/internal/models"
)

const expectedColumns = 4

var digitsOnly = regexp.MustCompile(`^\d+$`)

// Skip reasons, also used as the metric label.
const (
	SkipShortRow        = "short_row"
	SkipBadEmployeeID   = "bad_employee_id"
	SkipBadProjectID    = "bad_project_id"
	SkipBadDate         = "bad_date"
	SkipInvertedRange   = "inverted_range"
	SkipMalformedQuotes = "malformed_row"
)

// ParseOptions tune ParseCSV. The zero value uses DefaultDateLayouts,
// treats missing dates as errors and logs nowhere.
type ParseOptions struct {
	DateLayouts       []string
	MissingEndAsToday bool
	Now               func() time.Time
	Logger            logger.Logger
}

// SkippedRow records why an input line did not become an interval.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}

type ParseResult struct {
	Intervals  []models.WorkInterval `json:"intervals"`
	Skipped    []SkippedRow          `json:"skipped,omitempty"`
	Duplicates int                   `json:"duplicates"`
}

// ParseCSV reads "employeeId, projectId, dateFrom, dateTo" rows after a
// header line. Malformed rows are skipped and reported; exact duplicates
// are collapsed. It fails when the header is missing or too narrow, or when
// no row survives.
func ParseCSV(r io.Reader, opts ParseOptions) (*ParseResult, error) {
	layouts := opts.DateLayouts
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewInputParseFailedError(errors.New("input is empty"))
	}
	if err != nil {
		return nil, apperrors.NewInputParseFailedError(fmt.Errorf("read header: %w", err))
	}
	if len(header) < expectedColumns {
		return nil, apperrors.NewInputParseFailedError(
			fmt.Errorf("header must have at least %d columns, got %d", expectedColumns, len(header)))
	}

	result := &ParseResult{}
	seen := make(map[models.WorkInterval]struct{})
	today := now()

	skip := func(line int, reason, detail string) {
		result.Skipped = append(result.Skipped, SkippedRow{Line: line, Reason: reason, Detail: detail})
		metrics.IngestRowsSkipped.WithLabelValues(reason).Inc()
		log.Warn("Skipping input row", map[string]interface{}{
			"line":   line,
			"reason": reason,
			"detail": detail,
		})
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skip(parseErr.StartLine, SkipMalformedQuotes, parseErr.Err.Error())
				continue
			}
			return nil, apperrors.NewInputParseFailedError(err)
		}
		line, _ := reader.FieldPos(0)

		iv, reason, detail := parseRecord(record, today, layouts, opts.MissingEndAsToday)
		if reason != "" {
			skip(line, reason, detail)
			continue
		}
		if _, dup := seen[iv]; dup {
			result.Duplicates++
			continue
		}
		seen[iv] = struct{}{}
		result.Intervals = append(result.Intervals, iv)
	}

	if len(result.Intervals) == 0 {
		return result, apperrors.NewNoValidRecordsError(
			fmt.Sprintf("%d rows skipped", len(result.Skipped)))
	}
	return result, nil
}

func parseRecord(record []string, today time.Time, layouts []string, missingAsToday bool) (models.WorkInterval, string, string) {
	if len(record) < expectedColumns {
		return models.WorkInterval{}, SkipShortRow, fmt.Sprintf("%d columns", len(record))
	}

	empID, ok := parseID(record[0])
	if !ok {
		return models.WorkInterval{}, SkipBadEmployeeID, record[0]
	}
	projectID, ok := parseID(record[1])
	if !ok {
		return models.WorkInterval{}, SkipBadProjectID, record[1]
	}

	from, err := ParseDateWith(record[2], today, layouts, missingAsToday)
	if err != nil {
		return models.WorkInterval{}, SkipBadDate, err.Error()
	}
	to, err := ParseDateWith(record[3], today, layouts, missingAsToday)
	if err != nil {
		return models.WorkInterval{}, SkipBadDate, err.Error()
	}

	iv, err := models.NewWorkInterval(empID, projectID, from, to)
	if err != nil {
		return models.WorkInterval{}, SkipInvertedRange, err.Error()
	}
	return iv, "", ""
}

func parseID(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if !digitsOnly.MatchString(raw) {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}
