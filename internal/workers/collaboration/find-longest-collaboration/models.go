// internal/workers/collaboration/find-longest-collaboration/models.go
package findlongestcollaboration

import "collab-workers/internal/models"

type IntervalInput struct {
	EmployeeID int    `json:"employeeId"`
	ProjectID  int    `json:"projectId"`
	DateFrom   string `json:"dateFrom"`
	DateTo     string `json:"dateTo"`
}

type Input struct {
	WorkIntervals []IntervalInput `json:"workIntervals,omitempty"`
	DatasetID     string          `json:"datasetId,omitempty"`
	Limit         int             `json:"limit,omitempty"`
}

type PairOutput struct {
	Emp1          int                     `json:"emp1"`
	Emp2          int                     `json:"emp2"`
	TotalDays     int64                   `json:"totalDays"`
	PeakProjectID int                     `json:"peakProjectId"`
	PeakDays      int64                   `json:"peakDays"`
	Projects      []models.ProjectOverlap `json:"projects"`
}

type Output struct {
	TopPair   *PairOutput  `json:"topPair"`
	Pairs     []PairOutput `json:"pairs"`
	PairCount int          `json:"pairCount"`
	RunID     string       `json:"runId"`
	Cached    bool         `json:"cached"`
}

// cachedRun is the Redis payload stored per input fingerprint.
type cachedRun struct {
	RunID  string              `json:"runId"`
	Result models.RankedResult `json:"result"`
}

// InputSchema validates job variables. Other process variables may be
// present, so unknown root properties are allowed.
const InputSchema = `{
  "type": "object",
  "anyOf": [
    {"required": ["workIntervals"]},
    {"required": ["datasetId"]}
  ],
  "properties": {
    "workIntervals": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["employeeId", "projectId", "dateFrom"],
        "properties": {
          "employeeId": {"type": "integer", "minimum": 0},
          "projectId": {"type": "integer", "minimum": 0},
          "dateFrom": {"type": "string", "minLength": 1},
          "dateTo": {"type": ["string", "null"]}
        }
      }
    },
    "datasetId": {"type": "string", "minLength": 1},
    "limit": {"type": "integer", "minimum": 0}
  }
}`

func toPairOutput(rp models.RankedPair) PairOutput {
	peak := rp.PeakProject()
	return PairOutput{
		Emp1:          rp.Pair.Emp1,
		Emp2:          rp.Pair.Emp2,
		TotalDays:     rp.TotalDays,
		PeakProjectID: peak.ProjectID,
		PeakDays:      rp.PeakDays,
		Projects:      rp.Projects,
	}
}

func newOutput(runID string, result models.RankedResult, limit int, cached bool) *Output {
	out := &Output{
		Pairs:     []PairOutput{},
		PairCount: len(result.Pairs),
		RunID:     runID,
		Cached:    cached,
	}
	for _, rp := range result.Limit(limit).Pairs {
		out.Pairs = append(out.Pairs, toPairOutput(rp))
	}
	if top, ok := result.Top(); ok {
		p := toPairOutput(top)
		out.TopPair = &p
	}
	return out
}
