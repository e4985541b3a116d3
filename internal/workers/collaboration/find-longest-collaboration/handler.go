// internal/workers/collaboration/find-longest-collaboration/handler.go
package findlongestcollaboration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"collab-workers/internal/collaboration"
	"collab-workers/internal/common/database"
	apperrors "collab-workers/internal/common/errors"
	"collab-workers/internal/common/logger"
	"collab-workers/internal/common/metrics"
	"collab-workers/internal/common/observability"
	"collab-workers/internal/common/validation"
	"collab-workers/internal/ingestion"
	"collab-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType       = "find-longest-collaboration"
	cacheKeyPrefix = "collab:"
)

var inputValidator = validation.MustValidator(InputSchema)

type Handler struct {
	config   *Config
	source   ingestion.Source
	cache    *database.RedisClient
	pipeline *collaboration.Pipeline
	obs      *observability.Observability
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
	now      func() time.Time
}

// NewHandler wires the job handler. source, cache and obs are optional:
// without a source only inline intervals are accepted, without a cache every
// job runs the pipeline.
func NewHandler(cfg *Config, source ingestion.Source, cache *database.RedisClient, pipeline *collaboration.Pipeline, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   cfg,
		source:   source,
		cache:    cache,
		pipeline: pipeline,
		obs:      obs,
		errors:   apperrors.NewErrorHandler(log),
		logger:   log,
		now:      time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer func() {
		metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	err := h.process(ctx, client, job)

	status := "success"
	if err != nil {
		status = "failed"
	}
	h.obs.RecordJobProcessed(ctx, status)
	h.obs.RecordJobDuration(ctx, time.Since(start), status)
	return err
}

func (h *Handler) process(ctx context.Context, client worker.JobClient, job entities.Job) error {
	input, err := decodeInput(job.Variables)
	if err == nil {
		var output *Output
		output, err = h.safeExecute(ctx, input)
		if err == nil {
			return h.completeJob(ctx, client, job, output)
		}
	}

	bpmnErr := h.errors.HandleJobError(ctx, client, job, err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, bpmnErr.Code).Inc()
	return err
}

// safeExecute reports a panic inside Execute as COLLABORATION_FAILED.
func (h *Handler) safeExecute(ctx context.Context, input *Input) (output *Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.CollaborationRuns.WithLabelValues("failed").Inc()
			output, err = nil, apperrors.NewCollaborationFailedError(fmt.Sprint(r))
		}
	}()
	return h.Execute(ctx, input)
}

// decodeInput validates raw job variables against InputSchema before
// decoding them.
func decodeInput(variables string) (*Input, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &doc); err != nil {
		return nil, apperrors.NewInputParseFailedError(err)
	}
	if res := inputValidator.Validate(doc); !res.Valid {
		return nil, apperrors.NewInputValidationFailedError(res.Summary())
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInputParseFailedError(err)
	}
	return &input, nil
}

// Execute resolves the intervals, serves a cached ranking for an identical
// interval set when present, and runs the pipeline otherwise.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInputValidationFailedError("input cannot be nil")
	}

	intervals, err := h.resolveIntervals(ctx, input)
	if err != nil {
		return nil, err
	}

	limit := h.config.ResultLimit
	if input.Limit > 0 {
		limit = input.Limit
	}

	key := cacheKey(intervals)
	if run, ok := h.lookup(ctx, key); ok {
		return newOutput(run.RunID, run.Result, limit, true), nil
	}

	outcome := h.pipeline.Execute(ctx, intervals)
	h.store(ctx, key, cachedRun{RunID: outcome.RunID, Result: outcome.Result})

	return newOutput(outcome.RunID, outcome.Result, limit, false), nil
}

func (h *Handler) resolveIntervals(ctx context.Context, input *Input) ([]models.WorkInterval, error) {
	if len(input.WorkIntervals) > 0 {
		return h.convertIntervals(input.WorkIntervals)
	}
	if input.DatasetID == "" {
		return nil, apperrors.NewInputValidationFailedError("either workIntervals or datasetId is required")
	}
	if h.source == nil {
		return nil, apperrors.NewInputValidationFailedError("datasetId given but no interval source is configured")
	}
	return h.source.Load(ctx, input.DatasetID)
}

func (h *Handler) convertIntervals(raw []IntervalInput) ([]models.WorkInterval, error) {
	today := h.now()
	intervals := make([]models.WorkInterval, 0, len(raw))
	for i, r := range raw {
		from, err := h.parseDate(r.DateFrom, today)
		if err != nil {
			return nil, apperrors.NewInputValidationFailedError(fmt.Sprintf("workIntervals[%d].dateFrom: %v", i, err))
		}
		to, err := h.parseDate(r.DateTo, today)
		if err != nil {
			return nil, apperrors.NewInputValidationFailedError(fmt.Sprintf("workIntervals[%d].dateTo: %v", i, err))
		}
		iv, err := models.NewWorkInterval(r.EmployeeID, r.ProjectID, from, to)
		if err != nil {
			return nil, apperrors.NewInputValidationFailedError(fmt.Sprintf("workIntervals[%d]: %v", i, err))
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

func (h *Handler) parseDate(s string, today time.Time) (time.Time, error) {
	layouts := h.config.DateLayouts
	if len(layouts) == 0 {
		layouts = ingestion.DefaultDateLayouts
	}
	return ingestion.ParseDateWith(s, today, layouts, h.config.MissingEndAsToday)
}

func cacheKey(intervals []models.WorkInterval) string {
	return cacheKeyPrefix + strconv.FormatUint(models.Fingerprint(intervals), 16)
}

// lookup treats every cache failure as a miss; the job still completes.
func (h *Handler) lookup(ctx context.Context, key string) (cachedRun, bool) {
	var run cachedRun
	if h.cache == nil {
		return run, false
	}

	err := h.cache.GetJSON(ctx, key, &run)
	switch {
	case err == nil:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		h.logger.Debug("Serving cached ranking", map[string]interface{}{"cacheKey": key, "runId": run.RunID})
		return run, true
	case errors.Is(err, database.ErrCacheMiss):
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		h.logger.Warn("Result cache lookup failed", map[string]interface{}{
			"cacheKey": key,
			"error":    apperrors.NewCacheUnavailableError(err),
		})
	}
	return run, false
}

func (h *Handler) store(ctx context.Context, key string, run cachedRun) {
	if h.cache == nil {
		return
	}
	if err := h.cache.SetJSON(ctx, key, run, h.config.CacheTTL); err != nil {
		h.logger.Warn("Result cache write failed", map[string]interface{}{
			"cacheKey": key,
			"error":    apperrors.NewCacheUnavailableError(err),
		})
	}
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return err
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":    job.Key,
		"runId":     output.RunID,
		"pairCount": output.PairCount,
		"cached":    output.Cached,
	})
	return nil
}
