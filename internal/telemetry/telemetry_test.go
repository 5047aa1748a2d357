package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s is %T, want Sum[int64]", name, m.Data)
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func TestRecorder_Counters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	r, err := NewWithProvider(mp)
	if err != nil {
		t.Fatalf("NewWithProvider() error = %v", err)
	}

	ctx := context.Background()
	r.MessageSent(ctx)
	r.MessageSent(ctx)
	r.TaskStarted(ctx)
	r.TaskStopped(ctx)
	r.SessionDeleted(ctx)

	tests := []struct {
		name string
		want int64
	}{
		{"sidepanel.messages.sent", 2},
		{"sidepanel.tasks.started", 1},
		{"sidepanel.tasks.stopped", 1},
		{"sidepanel.tasks.completed", 0},
		{"sidepanel.sessions.deleted", 1},
	}
	for _, tt := range tests {
		if got := counterValue(t, reader, tt.name); got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestNoop(t *testing.T) {
	r := Noop()
	ctx := context.Background()
	r.MessageSent(ctx)
	r.TaskCompleted(ctx)
	if err := r.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() on noop = %v", err)
	}

	var nilRecorder *Recorder
	if err := nilRecorder.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() on nil = %v", err)
	}
}

func TestInit_WritesMetricsOnShutdown(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(context.Background(), dir)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	r.MessageSent(context.Background())

	if err := r.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "sidepanel-metrics.log"))
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("metrics file is empty after shutdown flush")
	}
}
