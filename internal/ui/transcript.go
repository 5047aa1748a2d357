package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/zhubert/sidepanel/internal/transcript"
)

// Transcript renders a conversation grouped by actor into a scrollable viewport.
type Transcript struct {
	viewport viewport.Model
	width    int
	height   int
	dark     bool

	messages []transcript.Message
	now      time.Time
	blocks   []transcript.Block

	frame   int
	ticking bool

	sel selection
}

// NewTranscript creates an empty transcript in dark mode.
func NewTranscript() *Transcript {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	t := &Transcript{
		viewport: vp,
		dark:     true,
	}
	t.SelectionClear()
	return t
}

// SetSize sets the transcript dimensions
func (t *Transcript) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.viewport.SetWidth(width)
	t.viewport.SetHeight(max(1, height))
	t.refresh()
}

// SetDarkMode selects the palette used for rendering.
func (t *Transcript) SetDarkMode(dark bool) {
	if t.dark == dark {
		return
	}
	t.dark = dark
	t.refresh()
}

// SetMessages replaces the rendered conversation. now anchors the relative
// time labels. The returned command starts the progress animation when a
// progress message appears.
func (t *Transcript) SetMessages(msgs []transcript.Message, now time.Time) tea.Cmd {
	t.messages = msgs
	t.now = now
	t.blocks = transcript.BuildBlocks(msgs, now)
	t.refresh()

	if transcript.HasProgress(t.blocks) && !t.ticking {
		t.ticking = true
		return ProgressTick()
	}
	return nil
}

// Messages returns the messages last passed to SetMessages.
func (t *Transcript) Messages() []transcript.Message {
	return t.messages
}

// Blocks returns the current render plan.
func (t *Transcript) Blocks() []transcript.Block {
	return t.blocks
}

// BoundaryCount returns the number of rules drawn between actor groups.
func (t *Transcript) BoundaryCount() int {
	return transcript.CountBoundaryMarkers(t.blocks)
}

// Animating reports whether the progress animation is running.
func (t *Transcript) Animating() bool {
	return t.ticking
}

// Update handles animation ticks and scrolling.
func (t *Transcript) Update(msg tea.Msg) (*Transcript, tea.Cmd) {
	if _, ok := msg.(ProgressTickMsg); ok {
		if !transcript.HasProgress(t.blocks) {
			t.ticking = false
			return t, nil
		}
		t.frame++
		t.refresh()
		return t, ProgressTick()
	}

	var cmd tea.Cmd
	t.viewport, cmd = t.viewport.Update(msg)
	return t, cmd
}

// View renders the transcript viewport
func (t *Transcript) View() string {
	return t.selectionView(t.viewport.View())
}

// refresh re-renders content, keeping the view pinned to the bottom if it was there.
func (t *Transcript) refresh() {
	atBottom := t.viewport.AtBottom()
	t.viewport.SetContent(RenderTranscript(t.blocks, t.contentWidth(), t.dark, t.frame))
	if atBottom {
		t.viewport.GotoBottom()
	}
}

func (t *Transcript) contentWidth() int {
	if t.width <= 0 {
		return DefaultWrapWidth
	}
	return t.width
}

// RenderTranscript renders blocks at width. The output depends only on its arguments.
func RenderTranscript(blocks []transcript.Block, width int, dark bool, frame int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}
	s := newTranscriptStyles(dark)

	var parts []string
	for _, b := range blocks {
		if b.Empty {
			continue
		}
		parts = append(parts, renderBlock(b, width, frame, s))
	}
	return strings.Join(parts, "\n")
}

func renderBlock(b transcript.Block, width, frame int, s transcriptStyles) string {
	var lines []string

	if b.ShowBoundary {
		lines = append(lines, s.boundary.Render(strings.Repeat("─", width)))
	}
	if b.ShowLabel {
		lines = append(lines, s.label.Render(b.Label))
	}

	if b.Progress {
		lines = append(lines, renderProgressBar(min(width, ProgressBarWidth), frame, s))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, s.content.Render(wrapContent(b.Message.Content, width)))
	lines = append(lines, s.time.Width(width).Render(b.Time))
	return strings.Join(lines, "\n")
}

// wrapContent prepares message text for display as-is: escape sequences are
// dropped, line breaks are kept, long lines are word wrapped and words wider
// than width are broken.
func wrapContent(text string, width int) string {
	text = ansi.Strip(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if width <= 0 {
		return text
	}
	w := wrap.NewWriter(width)
	w.PreserveSpace = true
	_, _ = w.Write([]byte(wordwrap.String(text, width)))
	return w.String()
}
