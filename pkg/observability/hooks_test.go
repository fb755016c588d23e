package observability

import (
	"context"
	"testing"
	"time"
)

type recordingChartHooks struct {
	starts    int
	stages    []string
	completes int
}

func (r *recordingChartHooks) OnComputeStart(context.Context, float64) { r.starts++ }
func (r *recordingChartHooks) OnStageComplete(_ context.Context, stage string, _ time.Duration, _ error) {
	r.stages = append(r.stages, stage)
}
func (r *recordingChartHooks) OnComputeComplete(context.Context, float64, time.Duration, error) {
	r.completes++
}

type recordingCacheHooks struct {
	hits, misses, sets int
}

func (r *recordingCacheHooks) OnCacheHit(context.Context, string)      { r.hits++ }
func (r *recordingCacheHooks) OnCacheMiss(context.Context, string)     { r.misses++ }
func (r *recordingCacheHooks) OnCacheSet(context.Context, string, int) { r.sets++ }

func TestSetChartHooks(t *testing.T) {
	defer Reset()

	rec := &recordingChartHooks{}
	SetChartHooks(rec)

	ctx := context.Background()
	Chart().OnComputeStart(ctx, 2448425.5)
	Chart().OnStageComplete(ctx, "panchanga", time.Millisecond, nil)
	Chart().OnComputeComplete(ctx, 2448425.5, time.Millisecond, nil)

	if rec.starts != 1 || rec.completes != 1 {
		t.Errorf("starts=%d completes=%d, want 1 and 1", rec.starts, rec.completes)
	}
	if len(rec.stages) != 1 || rec.stages[0] != "panchanga" {
		t.Errorf("stages = %v, want [panchanga]", rec.stages)
	}
}

func TestSetChartHooks_NilIgnored(t *testing.T) {
	defer Reset()

	rec := &recordingChartHooks{}
	SetChartHooks(rec)
	SetChartHooks(nil)

	Chart().OnComputeStart(context.Background(), 0)
	if rec.starts != 1 {
		t.Error("nil registration should not replace existing hooks")
	}
}

func TestReset(t *testing.T) {
	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)
	Reset()

	Cache().OnCacheHit(context.Background(), "chart")
	if rec.hits != 0 {
		t.Error("Reset() should restore no-op hooks")
	}
}
