package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"collab-workers/internal/common/zeebetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	messages []string
	fields   []map[string]interface{}
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.messages = append(l.messages, msg)
	l.fields = append(l.fields, fields)
}

func TestHandleJobError_RetryableFailsJob(t *testing.T) {
	tests := []struct {
		name        string
		jobRetries  int32
		wantRetries int32
	}{
		{"clamped to remaining budget", 2, 1},
		{"last retry leaves zero", 1, 0},
		{"error budget below job budget", 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := zeebetest.NewJobClient()
			log := &recordingLogger{}
			job := zeebetest.NewJob(7, tt.jobRetries, `{}`)

			bpmn := NewErrorHandler(log).HandleJobError(context.Background(), client, job,
				NewSourceQueryFailedError("postgres", stderrors.New("connection reset")))

			assert.Equal(t, "SOURCE_QUERY_FAILED", bpmn.Code)
			assert.Empty(t, client.Thrown())
			require.Len(t, client.Failed(), 1)

			failed := client.Failed()[0]
			assert.Equal(t, int64(7), failed.JobKey)
			assert.Equal(t, tt.wantRetries, failed.Retries)
			assert.Equal(t, bpmn.Message, failed.ErrorMessage)

			require.Len(t, log.messages, 1)
			assert.Equal(t, "SOURCE_QUERY_FAILED", log.fields[0]["errorCode"])
		})
	}
}

func TestHandleJobError_NonRetryableThrows(t *testing.T) {
	client := zeebetest.NewJobClient()
	job := zeebetest.NewJob(8, 3, `{}`)

	bpmn := NewErrorHandler(&recordingLogger{}).HandleJobError(context.Background(), client, job,
		NewInputValidationFailedError("workIntervals[0].dateFrom: unsupported date format"))

	assert.Equal(t, "INPUT_VALIDATION_FAILED", bpmn.Code)
	assert.Empty(t, client.Failed())
	require.Len(t, client.Thrown(), 1)

	thrown := client.Thrown()[0]
	assert.Equal(t, int64(8), thrown.JobKey)
	assert.Equal(t, "INPUT_VALIDATION_FAILED", thrown.ErrorCode)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(thrown.Variables), &vars))
	assert.Equal(t, "INPUT_VALIDATION_FAILED", vars["errorCode"])
	assert.Equal(t, "INPUT_VALIDATION_FAILED", vars["originalErrorCode"])
	assert.Equal(t, false, vars["retryable"])
}

func TestHandleJobError_RetryableWithoutBudgetThrows(t *testing.T) {
	client := zeebetest.NewJobClient()
	job := zeebetest.NewJob(9, 0, `{}`)

	NewErrorHandler(&recordingLogger{}).HandleJobError(context.Background(), client, job,
		NewCacheUnavailableError(stderrors.New("redis down")))

	assert.Empty(t, client.Failed())
	require.Len(t, client.Thrown(), 1)
	assert.Equal(t, "CACHE_UNAVAILABLE", client.Thrown()[0].ErrorCode)
}

func TestHandleJobError_UnknownErrorIsInternal(t *testing.T) {
	client := zeebetest.NewJobClient()

	bpmn := NewErrorHandler(&recordingLogger{}).HandleJobError(context.Background(), client,
		zeebetest.NewJob(10, 3, `{}`), stderrors.New("boom"))

	assert.Equal(t, "INTERNAL_ERROR", bpmn.Code)
	require.Len(t, client.Thrown(), 1)
	assert.Equal(t, "INTERNAL_ERROR", client.Thrown()[0].ErrorCode)
}
