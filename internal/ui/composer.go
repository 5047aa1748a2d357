package ui

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/zhubert/sidepanel/internal/keys"
)

// ComposerState describes which affordance the composer offers.
type ComposerState int

const (
	// ComposerIdle accepts edits and offers send.
	ComposerIdle ComposerState = iota
	// ComposerBusy accepts edits and offers stop.
	ComposerBusy
	// ComposerDisabled rejects edits and submission.
	ComposerDisabled
)

func (s ComposerState) String() string {
	switch s {
	case ComposerBusy:
		return "busy"
	case ComposerDisabled:
		return "disabled"
	default:
		return "idle"
	}
}

// DraftSetter overwrites the composer's draft.
type DraftSetter func(text string)

// DraftHook receives the setter when it is registered with a composer.
type DraftHook func(set DraftSetter)

// Composer owns the draft text and the send/stop affordance.
type Composer struct {
	input    textarea.Model
	width    int
	focused  bool
	disabled bool
	showStop bool
	dark     bool

	// registration counts draft setter registrations; a setter is live only
	// while its registration is the latest.
	registration int

	OnSend func(text string)
	OnStop func()
}

// NewComposer creates an idle composer at minimum height.
func NewComposer() *Composer {
	ti := textarea.New()
	ti.Placeholder = "Type your message..."
	ti.CharLimit = 0
	ti.MaxHeight = 0
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	ti.SetHeight(MinInputHeight)

	c := &Composer{
		input: ti,
		dark:  true,
	}
	c.applyInputStyles()
	return c
}

// SetSize sets the composer width. Height follows the draft.
func (c *Composer) SetSize(width int) {
	c.width = width
	c.input.SetWidth(c.inputWidth())
	c.resize()
}

// Height returns the rendered height including the border.
func (c *Composer) Height() int {
	return c.input.Height() + InputBorderHeight
}

// InputHeight returns the number of visible textarea rows.
func (c *Composer) InputHeight() int {
	return c.input.Height()
}

// SetFocused sets the focus state
func (c *Composer) SetFocused(focused bool) {
	c.focused = focused
	if focused && !c.disabled {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// SetDarkMode selects the palette used for rendering.
func (c *Composer) SetDarkMode(dark bool) {
	c.dark = dark
	c.applyInputStyles()
}

// SetDisabled turns edit and submission off or on.
func (c *Composer) SetDisabled(disabled bool) {
	c.disabled = disabled
	c.SetFocused(c.focused)
}

// SetShowStopButton swaps the send affordance for stop while a task runs.
func (c *Composer) SetShowStopButton(show bool) {
	c.showStop = show
}

// State returns the current affordance state. Disabled wins over busy.
func (c *Composer) State() ComposerState {
	switch {
	case c.disabled:
		return ComposerDisabled
	case c.showStop:
		return ComposerBusy
	default:
		return ComposerIdle
	}
}

// Value returns the draft as rendered in the input.
func (c *Composer) Value() string {
	return c.input.Value()
}

// SetDraft replaces the draft verbatim and resizes the input.
func (c *Composer) SetDraft(text string) {
	c.input.SetValue(text)
	c.resize()
}

// SendEnabled reports whether submitting would send.
func (c *Composer) SendEnabled() bool {
	if c.disabled || c.showStop {
		return false
	}
	return strings.TrimSpace(c.input.Value()) != ""
}

// StopEnabled reports whether the stop affordance is interactive.
func (c *Composer) StopEnabled() bool {
	return c.showStop
}

// Submit sends the draft exactly as typed, then clears it and shrinks the
// input. Blank drafts are ignored. It reports whether OnSend was called.
func (c *Composer) Submit() bool {
	if !c.SendEnabled() {
		return false
	}
	text := c.input.Value()
	if c.OnSend != nil {
		c.OnSend(text)
	}
	c.input.Reset()
	c.input.SetHeight(MinInputHeight)
	return true
}

// Stop forwards a stop request. The draft is left alone.
func (c *Composer) Stop() bool {
	if !c.showStop {
		return false
	}
	if c.OnStop != nil {
		c.OnStop()
	}
	return true
}

// RegisterDraftSetter hands hook a setter that overwrites the draft. Each
// call revokes every setter handed out before it; a revoked setter does
// nothing. A nil hook only revokes.
func (c *Composer) RegisterDraftSetter(hook DraftHook) {
	c.registration++
	if hook == nil {
		return
	}
	gen := c.registration
	hook(func(text string) {
		if c.registration != gen {
			return
		}
		c.SetDraft(text)
	})
}

// Click handles a click at (x, y) relative to the composer's top-left
// corner. Only the action affordance reacts; it reports whether it did.
func (c *Composer) Click(x, y int) bool {
	if y < 0 || y >= c.Height() {
		return false
	}
	if x < c.inputWidth()+InputPaddingWidth+BorderSize || x >= c.width {
		return false
	}
	if c.showStop {
		return c.Stop()
	}
	return c.Submit()
}

// Update handles key input. Enter submits; shift+enter and alt+enter break
// the line. Scroll keys are left for the transcript.
func (c *Composer) Update(msg tea.Msg) (*Composer, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyPressMsg)
	if !isKey {
		if c.disabled {
			return c, nil
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.resize()
		return c, cmd
	}

	if c.disabled || !c.focused {
		return c, nil
	}

	switch keyMsg.String() {
	case keys.Enter:
		c.Submit()
		return c, nil
	case keys.ShiftEnter, keys.AltEnter:
		c.input.InsertString("\n")
		c.resize()
		return c, nil
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	c.resize()
	return c, cmd
}

// View renders the input box with the action affordance to its right.
func (c *Composer) View() string {
	s := newComposerStyles(c.dark)

	box := s.input
	switch {
	case c.disabled:
		box = s.inputDisabled
	case c.focused:
		box = s.inputFocused
	}

	inputView := c.input.View()
	if c.disabled {
		inputView = s.muted.Render(inputView)
	}
	left := box.Width(c.inputWidth() + InputPaddingWidth + BorderSize).Render(inputView)

	var button string
	switch {
	case c.showStop:
		button = s.stop.Render("■ Stop")
	case c.SendEnabled():
		button = s.send.Render("Send")
	default:
		button = s.sendDisabled.Render("Send")
	}
	// Center the button on the box's first text row.
	button = lipgloss.NewStyle().PaddingTop(1).Render(button)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, button)
}

// inputWidth is the textarea's text width inside its border and padding.
func (c *Composer) inputWidth() int {
	w := c.width - ComposerButtonWidth - BorderSize - InputPaddingWidth
	if c.width <= 0 {
		w = DefaultWrapWidth
	}
	return max(1, w)
}

// resize sets the textarea height to the draft's visual line count.
func (c *Composer) resize() {
	c.input.SetHeight(visualLineCount(c.input.Value(), c.inputWidth()))
}

// visualLineCount counts display rows for text wrapped the way the textarea
// wraps it, clamped to [MinInputHeight, MaxInputHeight]. Words break at
// spaces and long words are cut; the textarea keeps the last cell of each
// row for the cursor, so text wraps one cell early.
func visualLineCount(text string, width int) int {
	limit := max(1, width-1)
	wrapped := wrap.String(wordwrap.String(text, limit), limit)
	rows := strings.Count(wrapped, "\n") + 1
	return min(max(rows, MinInputHeight), MaxInputHeight)
}

func (c *Composer) applyInputStyles() {
	s := newComposerStyles(c.dark)
	styles := c.input.Styles()

	base := lipgloss.NewStyle()
	styles.Focused.Base = base
	styles.Focused.Text = s.text
	styles.Focused.Placeholder = s.placeholder
	styles.Focused.CursorLine = s.text
	styles.Focused.Prompt = s.text

	styles.Blurred.Base = base
	styles.Blurred.Text = s.text
	styles.Blurred.Placeholder = s.placeholder
	styles.Blurred.CursorLine = s.text
	styles.Blurred.Prompt = s.text

	c.input.SetStyles(styles)
}
