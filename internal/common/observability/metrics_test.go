package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	"collab-workers/internal/common/config"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ExportsJobMetrics(t *testing.T) {
	reg := promclient.NewRegistry()
	o := New("collab-test", Options{Registerer: reg})
	defer o.Shutdown()

	ctx := context.Background()
	o.RecordJobProcessed(ctx, "success")
	o.RecordJobDuration(ctx, 15*time.Millisecond, "success")
	o.RecordPairCount(ctx, 4)

	families, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, f := range families {
		if strings.Contains(f.GetName(), "processed") {
			found = true
		}
	}
	assert.True(t, found, "jobs processed counter not exported")
}

func TestStartSpan(t *testing.T) {
	o := New("collab-test", Options{
		Tracing:    config.TracingConfig{SampleRatio: 1},
		Registerer: promclient.NewRegistry(),
	})
	defer o.Shutdown()

	ctx, span := o.StartSpan(context.Background(), "collaboration.rank")
	defer span.End()

	assert.True(t, span.SpanContext().IsValid())
	assert.NotNil(t, ctx)
}

func TestNilObservabilityTracer(t *testing.T) {
	var o *Observability
	assert.NotNil(t, o.Tracer())
}
