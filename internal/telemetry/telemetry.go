// Package telemetry records panel activity as OpenTelemetry metrics and
// task traces. Both are exported as JSON into size-rotated files next to
// the debug log, so nothing leaves the machine.
package telemetry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/zhubert/sidepanel/internal/logger"
)

const (
	serviceName    = "sidepanel"
	exportInterval = 30 * time.Second
)

// Recorder holds the panel's counters.
type Recorder struct {
	messagesSent    metric.Int64Counter
	tasksStarted    metric.Int64Counter
	tasksStopped    metric.Int64Counter
	tasksCompleted  metric.Int64Counter
	sessionsDeleted metric.Int64Counter

	shutdown func(context.Context) error
}

// Noop returns a Recorder that drops everything.
func Noop() *Recorder {
	r, _ := newRecorder(noop.NewMeterProvider().Meter(serviceName))
	return r
}

// Init wires metric and trace exporters writing to dir and installs them
// as the global providers.
func Init(ctx context.Context, dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, err
	}

	metricsFile := rotating(filepath.Join(dir, "sidepanel-metrics.log"))
	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(metricsFile))
	if err != nil {
		return nil, err
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(exportInterval))),
		sdkmetric.WithResource(res),
	)

	traceFile := rotating(filepath.Join(dir, "sidepanel-traces.log"))
	traceExporter, err := stdouttrace.New(stdouttrace.WithWriter(traceFile))
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)

	otel.SetMeterProvider(mp)
	otel.SetTracerProvider(tp)

	r, err := newRecorder(mp.Meter(serviceName))
	if err != nil {
		return nil, err
	}
	r.shutdown = func(ctx context.Context) error {
		return errors.Join(
			tp.Shutdown(ctx),
			mp.Shutdown(ctx),
			traceFile.Close(),
			metricsFile.Close(),
		)
	}
	logger.WithComponent("telemetry").Info("telemetry initialized", "dir", dir)
	return r, nil
}

// NewWithProvider builds a Recorder on an existing meter provider.
func NewWithProvider(mp metric.MeterProvider) (*Recorder, error) {
	return newRecorder(mp.Meter(serviceName))
}

func rotating(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}

func newRecorder(m metric.Meter) (*Recorder, error) {
	var r Recorder
	var err error
	if r.messagesSent, err = m.Int64Counter("sidepanel.messages.sent",
		metric.WithDescription("Messages submitted from the composer")); err != nil {
		return nil, err
	}
	if r.tasksStarted, err = m.Int64Counter("sidepanel.tasks.started"); err != nil {
		return nil, err
	}
	if r.tasksStopped, err = m.Int64Counter("sidepanel.tasks.stopped",
		metric.WithDescription("Tasks cancelled with the stop affordance")); err != nil {
		return nil, err
	}
	if r.tasksCompleted, err = m.Int64Counter("sidepanel.tasks.completed"); err != nil {
		return nil, err
	}
	if r.sessionsDeleted, err = m.Int64Counter("sidepanel.sessions.deleted"); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Recorder) MessageSent(ctx context.Context)    { r.messagesSent.Add(ctx, 1) }
func (r *Recorder) TaskStarted(ctx context.Context)    { r.tasksStarted.Add(ctx, 1) }
func (r *Recorder) TaskStopped(ctx context.Context)    { r.tasksStopped.Add(ctx, 1) }
func (r *Recorder) TaskCompleted(ctx context.Context)  { r.tasksCompleted.Add(ctx, 1) }
func (r *Recorder) SessionDeleted(ctx context.Context) { r.sessionsDeleted.Add(ctx, 1) }

// Shutdown flushes and closes exporters. Safe on a Noop recorder.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r == nil || r.shutdown == nil {
		return nil
	}
	return r.shutdown(ctx)
}
