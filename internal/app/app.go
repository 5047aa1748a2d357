package app

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/sidepanel/internal/agent"
	"github.com/zhubert/sidepanel/internal/config"
	"github.com/zhubert/sidepanel/internal/history"
	"github.com/zhubert/sidepanel/internal/logger"
	"github.com/zhubert/sidepanel/internal/store"
	"github.com/zhubert/sidepanel/internal/telemetry"
	"github.com/zhubert/sidepanel/internal/transcript"
	"github.com/zhubert/sidepanel/internal/ui"
)

// sessionTitleRunes bounds titles derived from the first message of a chat.
const sessionTitleRunes = 48

// Model is the root Bubble Tea model.
type Model struct {
	config    *config.Config
	store     store.Store
	runner    agent.Runner
	telemetry *telemetry.Recorder
	watcher   *store.Watcher
	now       func() time.Time
	log       *slog.Logger

	header     *ui.Header
	footer     *ui.Footer
	transcript *ui.Transcript
	composer   *ui.Composer
	history    *ui.HistoryList
	modal      *ui.Modal

	width  int
	height int
	tab    ui.Tab
	dark   bool

	active   *history.SessionSummary
	messages []transcript.Message

	// Running tasks and their latest progress placeholder, by session ID.
	tasks    map[string]<-chan agent.Event
	progress map[string]transcript.Message

	setDraft ui.DraftSetter

	status      string
	statusIsErr bool

	// Commands produced by component callbacks during the current Update.
	pending []tea.Cmd
}

// Option configures a Model.
type Option func(*Model)

// WithClock sets the clock used for message timestamps and time labels.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithTelemetry records usage counters on r.
func WithTelemetry(r *telemetry.Recorder) Option {
	return func(m *Model) { m.telemetry = r }
}

// WithWatcher reloads history whenever w reports a change to the store.
func WithWatcher(w *store.Watcher) Option {
	return func(m *Model) { m.watcher = w }
}

// WithLocation sets the time zone used for history dates.
func WithLocation(loc *time.Location) Option {
	return func(m *Model) { m.history.SetLocation(loc) }
}

// New creates the root model.
func New(cfg *config.Config, st store.Store, runner agent.Runner, opts ...Option) *Model {
	m := &Model{
		config:     cfg,
		store:      st,
		runner:     runner,
		telemetry:  telemetry.Noop(),
		now:        time.Now,
		log:        logger.WithComponent("app"),
		header:     ui.NewHeader(),
		footer:     ui.NewFooter(),
		transcript: ui.NewTranscript(),
		composer:   ui.NewComposer(),
		history:    ui.NewHistoryList(),
		modal:      ui.NewModal(),
		tab:        ui.TabChat,
		dark:       true,
		tasks:      make(map[string]<-chan agent.Event),
		progress:   make(map[string]transcript.Message),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.composer.OnSend = func(text string) { m.queue(m.sendMessage(text)) }
	m.composer.OnStop = func() { m.stopActiveTask() }
	m.composer.RegisterDraftSetter(func(set ui.DraftSetter) { m.setDraft = set })

	m.history.OnSelect = func(id string) { m.queue(m.openSession(id)) }
	m.history.OnDelete = func(id string) { m.requestDelete(id) }

	switch cfg.GetTheme() {
	case config.ThemeLight:
		m.applyDarkMode(false)
	default:
		m.applyDarkMode(true)
	}

	m.reloadSessions()
	if id := cfg.GetLastSessionID(); id != "" {
		m.queue(m.openSession(id))
	}
	m.setTab(m.tab)
	return m
}

// Init starts background detection and the store watcher.
func (m *Model) Init() tea.Cmd {
	cmds := m.drain()
	if m.config.GetTheme() == config.ThemeAuto {
		cmds = append(cmds, tea.RequestBackgroundColor)
	}
	if m.watcher != nil {
		cmds = append(cmds, m.listenForStoreChanges(), m.listenForStoreErrors())
	}
	return tea.Batch(cmds...)
}

// Close stops running tasks and the store watcher.
func (m *Model) Close() {
	for id := range m.tasks {
		m.runner.Stop(id)
	}
	if m.watcher != nil {
		m.watcher.Stop()
	}
	if err := m.telemetry.Shutdown(context.Background()); err != nil {
		m.log.Warn("telemetry shutdown failed", "error", err)
	}
}

// ActiveSession returns the session shown in the chat tab, if any.
func (m *Model) ActiveSession() (history.SessionSummary, bool) {
	if m.active == nil {
		return history.SessionSummary{}, false
	}
	return *m.active, true
}

// Tab returns the visible tab.
func (m *Model) Tab() ui.Tab {
	return m.tab
}

// Status returns the status line text and whether it reports an error.
func (m *Model) Status() (string, bool) {
	return m.status, m.statusIsErr
}

// IsDark reports whether the dark palette is in use.
func (m *Model) IsDark() bool {
	return m.dark
}

// IsBusy reports whether the active session has a running task.
func (m *Model) IsBusy() bool {
	if m.active == nil {
		return false
	}
	_, ok := m.tasks[m.active.ID]
	return ok
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) drain() []tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return cmds
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusIsErr = false
}

func (m *Model) setError(text string, err error) {
	m.log.Error(text, "error", err)
	m.status = text
	m.statusIsErr = true
}
