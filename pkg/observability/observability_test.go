package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/observability"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnEngineLoad(ctx, &domain.LoadEvent{Algorithm: "idle", Fallback: true})
	hooks.OnSubmit(ctx, &domain.OperationEvent{Algorithm: "BST", Kind: domain.OpInsert})
	hooks.OnSubmit(ctx, &domain.OperationEvent{Algorithm: "BST", Kind: domain.OpInsert, Err: errors.New("boom")})
	hooks.OnDrop(ctx, &domain.OperationEvent{Algorithm: "BST", Kind: domain.OpFind, Reason: "busy"})
	hooks.OnReset(ctx, &domain.OperationEvent{Algorithm: "BST", Kind: domain.OpClear})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("idle", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submits.WithLabelValues("BST", "insert", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submits.WithLabelValues("BST", "insert", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Drops.WithLabelValues("BST", "find", "busy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resets.WithLabelValues("BST", "ok")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Durations))
}

func TestLogHooks_MergeWithMetrics(t *testing.T) {
	var buf bytes.Buffer
	m := observability.NewMetrics(prometheus.NewRegistry())
	hooks := m.Hooks().Merge(observability.LogHooks(logging.NewWriter(&buf, slog.LevelDebug)))

	hooks.OnDrop(context.Background(), &domain.OperationEvent{
		EventBase: domain.EventBase{Container: "viz"},
		Algorithm: "BinaryHeap",
		Kind:      domain.OpDeleteMin,
		Reason:    "busy",
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Drops.WithLabelValues("BinaryHeap", "deleteMin", "busy")))
	assert.Contains(t, buf.String(), "operation_dropped")
	assert.Contains(t, buf.String(), "reason=busy")
}
