// internal/collaboration/pipeline.go
package collaboration

import (
	"context"
	"runtime"
	"time"

	"collab-workers/internal/common/logger"
	"collab-workers/internal/common/metrics"
	"collab-workers/internal/common/observability"
	"collab-workers/internal/models"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

// Pipeline partitions intervals by project, runs one ProjectUnit per
// project on a bounded goroutine pool, folds the facts into an Aggregator
// and ranks the result.
type Pipeline struct {
	maxWorkers int
	logger     logger.Logger
	obs        *observability.Observability
	order      func(projectIDs []int)
}

type Option func(*Pipeline)

// WithMaxWorkers bounds concurrent project units. n <= 0 means GOMAXPROCS.
func WithMaxWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxWorkers = n
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

func WithObservability(o *observability.Observability) Option {
	return func(p *Pipeline) { p.obs = o }
}

// WithProjectOrder lets the caller reorder the ascending project id list
// in place before units are submitted.
func WithProjectOrder(fn func(projectIDs []int)) Option {
	return func(p *Pipeline) { p.order = fn }
}

func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		maxWorkers: runtime.GOMAXPROCS(0),
		logger:     logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Outcome describes one pipeline run.
type Outcome struct {
	RunID    string
	Result   models.RankedResult
	Projects int
	Facts    int
	Duration time.Duration

	// Aggregator is frozen; it is kept so callers can inspect write counts.
	Aggregator *Aggregator
}

// Run returns the ranked collaboration result for intervals. ctx only
// carries tracing; a run is never cancelled half way.
func (p *Pipeline) Run(ctx context.Context, intervals []models.WorkInterval) models.RankedResult {
	return p.Execute(ctx, intervals).Result
}

// Execute is Run with run metadata.
func (p *Pipeline) Execute(ctx context.Context, intervals []models.WorkInterval) Outcome {
	start := time.Now()
	runID := uuid.NewString()
	log := p.logger.WithFields(map[string]interface{}{"runId": runID})

	ctx, span := p.obs.StartSpan(ctx, "collaboration.run",
		attribute.String("run.id", runID),
		attribute.Int("intervals", len(intervals)))
	defer span.End()

	log.Info("Collaboration run started", map[string]interface{}{
		"intervals":  len(intervals),
		"maxWorkers": p.maxWorkers,
	})

	_, partSpan := p.obs.StartSpan(ctx, "collaboration.partition")
	byProject := Partition(intervals)
	projectIDs := ProjectIDs(byProject)
	if p.order != nil {
		p.order(projectIDs)
	}
	partSpan.SetAttributes(attribute.Int("projects", len(projectIDs)))
	partSpan.End()

	_, unitSpan := p.obs.StartSpan(ctx, "collaboration.units")
	workers := pool.NewWithResults[[]models.ProjectOverlapFact]().WithMaxGoroutines(p.maxWorkers)
	for _, id := range projectIDs {
		unit := ProjectUnit{ProjectID: id, Intervals: byProject[id]}
		workers.Go(func() []models.ProjectOverlapFact {
			metrics.CollaborationProjectUnits.Inc()
			return unit.Run()
		})
	}
	partials := workers.Wait()

	agg := NewAggregator()
	facts := 0
	for _, part := range partials {
		for _, f := range part {
			log.Debug("Project overlap", map[string]interface{}{
				"emp1":      f.Pair.Emp1,
				"emp2":      f.Pair.Emp2,
				"projectId": f.ProjectID,
				"days":      f.Days,
			})
		}
		agg.RecordAll(part)
		facts += len(part)
	}
	unitSpan.SetAttributes(attribute.Int("facts", facts))
	unitSpan.End()
	metrics.CollaborationFacts.Add(float64(facts))

	_, rankSpan := p.obs.StartSpan(ctx, "collaboration.rank")
	result := Rank(agg.Snapshot())
	rankSpan.SetAttributes(attribute.Int("pairs", len(result.Pairs)))
	rankSpan.End()

	elapsed := time.Since(start)
	metrics.CollaborationRuns.WithLabelValues("success").Inc()
	metrics.CollaborationRunDuration.Observe(elapsed.Seconds())
	p.obs.RecordPairCount(ctx, len(result.Pairs))

	fields := map[string]interface{}{
		"projects": len(projectIDs),
		"facts":    facts,
		"pairs":    len(result.Pairs),
		"duration": elapsed.String(),
	}
	if top, ok := result.Top(); ok {
		fields["emp1"] = top.Pair.Emp1
		fields["emp2"] = top.Pair.Emp2
		fields["totalDays"] = top.TotalDays
		fields["peakProjectId"] = top.PeakProject().ProjectID
		log.Info("Longest collaboration found", fields)
	} else {
		log.Info("No collaboration found", fields)
	}

	return Outcome{
		RunID:      runID,
		Result:     result,
		Projects:   len(projectIDs),
		Facts:      facts,
		Duration:   elapsed,
		Aggregator: agg,
	}
}
