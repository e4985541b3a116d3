package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapWrapper_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"runId": "r-1"})

	log.Debug("hidden", nil)
	log.Info("pipeline finished", map[string]interface{}{
		"pairs":    3,
		"duration": 12,
	})
	log.WithError(errors.New("boom")).Error("job failed", nil)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "pipeline finished", first.Message)
	require.Len(t, first.Context, 3)
	assert.Equal(t, "runId", first.Context[0].Key)
	assert.Equal(t, "duration", first.Context[1].Key)
	assert.Equal(t, "pairs", first.Context[2].Key)

	second := entries[1].ContextMap()
	assert.Equal(t, "boom", second["error"])
	assert.Equal(t, "r-1", second["runId"])
}

func TestMapToZapFields_NamedError(t *testing.T) {
	fields := mapToZapFields(map[string]interface{}{"cause": errors.New("bad row")})
	require.Len(t, fields, 1)
	assert.Equal(t, "cause", fields[0].Key)
	assert.Equal(t, zapcore.ErrorType, fields[0].Type)

	assert.Nil(t, mapToZapFields(nil))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestNewWithOptions_BadOutputFallsBackToNop(t *testing.T) {
	l := NewWithOptions(Options{Level: "info", Format: "json", Output: "/nonexistent-dir/collab.log"})
	require.NotNil(t, l)
	l.Info("dropped")
}
