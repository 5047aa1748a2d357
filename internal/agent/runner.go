// Package agent runs tasks on behalf of the panel and streams the
// resulting transcript messages back to it.
package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	perrors "github.com/zhubert/sidepanel/internal/errors"
	"github.com/zhubert/sidepanel/internal/logger"
	"github.com/zhubert/sidepanel/internal/transcript"
)

// EventKind distinguishes what an Event carries.
type EventKind int

const (
	// EventProgress announces that an actor is working. Message holds the
	// progress sentinel and is not meant to be persisted.
	EventProgress EventKind = iota
	// EventMessage carries a finished transcript message.
	EventMessage
	// EventDone is always the last event. Stopped is set when the task was
	// cancelled, Err when it failed.
	EventDone
)

// Event is one update from a running task.
type Event struct {
	Kind      EventKind
	SessionID string
	Message   transcript.Message
	Stopped   bool
	Err       error
}

// Runner executes at most one task per session.
type Runner interface {
	// Start begins a task for prompt. The returned channel is closed after
	// the EventDone event.
	Start(ctx context.Context, sessionID, prompt string) (<-chan Event, error)
	// Stop cancels the running task for sessionID, reporting whether one was running.
	Stop(sessionID string) bool
	Running(sessionID string) bool
}

// Step is one scripted actor turn.
type Step struct {
	Actor   transcript.Actor
	Content string
	// Think is how long the progress indicator shows before Content arrives.
	Think time.Duration
}

// Script produces the steps for a prompt.
type Script func(prompt string) []Step

// ScriptedRunner plays a Script for every task. It stands in for a real
// model backend and drives the panel's busy/stop states.
type ScriptedRunner struct {
	mu      sync.Mutex
	running map[string]context.CancelFunc

	script Script
	now    func() time.Time
	scale  float64
}

// Option configures a ScriptedRunner.
type Option func(*ScriptedRunner)

// WithScript replaces the default script.
func WithScript(s Script) Option {
	return func(r *ScriptedRunner) { r.script = s }
}

// WithClock sets the clock used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *ScriptedRunner) { r.now = now }
}

// WithSpeed scales every Think duration; 0 plays the script instantly.
func WithSpeed(scale float64) Option {
	return func(r *ScriptedRunner) { r.scale = scale }
}

// NewScriptedRunner returns a runner using DefaultScript unless overridden.
func NewScriptedRunner(opts ...Option) *ScriptedRunner {
	r := &ScriptedRunner{
		running: make(map[string]context.CancelFunc),
		script:  DefaultScript,
		now:     time.Now,
		scale:   1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start implements Runner.
func (r *ScriptedRunner) Start(ctx context.Context, sessionID, prompt string) (<-chan Event, error) {
	r.mu.Lock()
	if _, busy := r.running[sessionID]; busy {
		r.mu.Unlock()
		return nil, perrors.TaskBusy(sessionID)
	}
	ctx, cancel := context.WithCancel(ctx)
	r.running[sessionID] = cancel
	r.mu.Unlock()

	steps := r.script(prompt)
	ch := make(chan Event, len(steps)*2+1)

	go r.play(ctx, cancel, sessionID, steps, ch)
	return ch, nil
}

// Stop implements Runner.
func (r *ScriptedRunner) Stop(sessionID string) bool {
	r.mu.Lock()
	cancel, ok := r.running[sessionID]
	r.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

// Running implements Runner.
func (r *ScriptedRunner) Running(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.running[sessionID]
	return ok
}

func (r *ScriptedRunner) play(ctx context.Context, cancel context.CancelFunc, sessionID string, steps []Step, ch chan<- Event) {
	log := logger.WithSession(sessionID)
	ctx, span := otel.Tracer("sidepanel/agent").Start(ctx, "agent.task")
	span.SetAttributes(attribute.String("session.id", sessionID), attribute.Int("task.steps", len(steps)))

	done := Event{Kind: EventDone, SessionID: sessionID}
	defer func() {
		r.mu.Lock()
		delete(r.running, sessionID)
		r.mu.Unlock()
		cancel()

		if done.Stopped {
			span.SetStatus(codes.Error, "stopped")
		}
		span.End()
		ch <- done
		close(ch)
	}()

	log.Info("task started", "steps", len(steps))
	for i, step := range steps {
		ch <- Event{
			Kind:      EventProgress,
			SessionID: sessionID,
			Message:   transcript.Message{Actor: step.Actor, Content: transcript.ProgressSentinel, Timestamp: r.now().UnixMilli()},
		}

		if !r.wait(ctx, step.Think) {
			done.Stopped = true
			log.Info("task stopped", "atStep", i)
			return
		}

		ch <- Event{
			Kind:      EventMessage,
			SessionID: sessionID,
			Message:   transcript.Message{Actor: step.Actor, Content: step.Content, Timestamp: r.now().UnixMilli()},
		}
	}
	log.Info("task finished")
}

// wait sleeps for d scaled by the runner speed; false means ctx ended first.
func (r *ScriptedRunner) wait(ctx context.Context, d time.Duration) bool {
	d = time.Duration(float64(d) * r.scale)
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// DefaultScript walks a prompt through the manager, planner, navigator and
// validator actors.
func DefaultScript(prompt string) []Step {
	task := strings.TrimSpace(prompt)
	if len([]rune(task)) > 60 {
		task = string([]rune(task)[:59]) + "…"
	}
	return []Step{
		{Actor: transcript.ActorManager, Content: fmt.Sprintf("Working on: %s", task), Think: 400 * time.Millisecond},
		{Actor: transcript.ActorPlanner, Content: "1. Break the request into steps\n2. Gather what is needed\n3. Check the result", Think: 1200 * time.Millisecond},
		{Actor: transcript.ActorNavigator, Content: "Following the plan, step by step.", Think: 1500 * time.Millisecond},
		{Actor: transcript.ActorValidator, Content: "Result checked against the request.", Think: 900 * time.Millisecond},
		{Actor: transcript.ActorSystem, Content: "Task completed", Think: 200 * time.Millisecond},
	}
}
