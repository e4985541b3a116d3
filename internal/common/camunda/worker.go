// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"collab-workers/internal/common/config"
	"collab-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler completes or fails the job itself; the returned error is only
// logged.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job) error
}

type Worker struct {
	client   zbc.Client
	handler  JobHandler
	config   config.WorkerConfig
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

func NewWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handler JobHandler, log logger.Logger) *Worker {
	if wcfg.MaxJobsActive <= 0 {
		wcfg.MaxJobsActive = 1
	}
	return &Worker{
		client:   client,
		handler:  handler,
		config:   wcfg,
		logger:   log.WithFields(map[string]interface{}{"taskType": taskType}),
		taskType: taskType,
	}
}

// handle adapts JobHandler to the Zeebe handler signature.
func (w *Worker) handle(client worker.JobClient, job entities.Job) {
	if err := w.handler.Handle(client, job); err != nil {
		w.logger.Error("Handler returned error", map[string]interface{}{
			"error":  err.Error(),
			"jobKey": job.Key,
		})
	}
}

func (w *Worker) Start() {
	cmd := w.client.NewJobWorker().
		JobType(w.taskType).
		Handler(w.handle).
		MaxJobsActive(w.config.MaxJobsActive)
	if w.config.Timeout > 0 {
		cmd = cmd.Timeout(time.Duration(w.config.Timeout) * time.Millisecond)
	}
	w.worker = cmd.Open()

	w.logger.Info("worker started", map[string]interface{}{
		"maxJobsActive": w.config.MaxJobsActive,
		"timeout_ms":    w.config.Timeout,
	})
}

// Stop closes the job worker and waits for in-flight jobs. The Zeebe client
// stays open; it belongs to the caller.
func (w *Worker) Stop() {
	if w.worker == nil {
		return
	}
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}
