// internal/report/report.go
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"collab-workers/internal/models"
)

const NoDataMessage = "No collaboration data found"

const tableColumns = "Employee ID #1\tEmployee ID #2\tProject ID\tDays worked"

// Headline names the top pair and the project they spent most time on.
func Headline(result models.RankedResult) string {
	top, ok := result.Top()
	if !ok {
		return NoDataMessage
	}
	peak := top.PeakProject()
	return fmt.Sprintf(
		"Employees %d and %d worked together longest: %d days in total, %d of them on project %d.",
		top.Pair.Emp1, top.Pair.Emp2, top.TotalDays, peak.Days, peak.ProjectID,
	)
}

// WriteTable renders one row per (pair, project) in ranked order.
func WriteTable(w io.Writer, result models.RankedResult) error {
	if result.Empty() {
		_, err := fmt.Fprintln(w, NoDataMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, tableColumns)
	for _, rp := range result.Pairs {
		for _, po := range rp.Projects {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n", rp.Pair.Emp1, rp.Pair.Emp2, po.ProjectID, po.Days)
		}
	}
	return tw.Flush()
}

// Document is the JSON form of a run.
type Document struct {
	RunID    string              `json:"runId,omitempty"`
	Headline string              `json:"headline"`
	Pairs    []models.RankedPair `json:"pairs"`
}

// WriteJSON writes the result as an indented Document.
func WriteJSON(w io.Writer, runID string, result models.RankedResult) error {
	pairs := result.Pairs
	if pairs == nil {
		pairs = []models.RankedPair{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{RunID: runID, Headline: Headline(result), Pairs: pairs})
}
