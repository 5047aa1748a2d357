package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"github.com/zhubert/sidepanel/internal/history"
	"github.com/zhubert/sidepanel/internal/keys"
	"github.com/zhubert/sidepanel/internal/logger"
)

const (
	historyHeading     = "Chat History"
	historyPlaceholder = "No chat history available"
	historyDeleteGlyph = "✕"
)

// UntitledSession is shown for sessions without a title.
const UntitledSession = "Untitled chat"

// HistoryList presents saved sessions with select and delete actions.
type HistoryList struct {
	sessions []history.SessionSummary
	visible  bool
	focused  bool
	dark     bool
	width    int
	height   int
	loc      *time.Location

	selectedIdx  int
	scrollOffset int

	// OnSelect and OnDelete receive the session ID. Either may be nil.
	OnSelect func(id string)
	OnDelete func(id string)
}

// NewHistoryList creates a visible, empty list.
func NewHistoryList() *HistoryList {
	return &HistoryList{
		visible: true,
		dark:    true,
	}
}

// SetSessions replaces the rows. Order is kept as given.
func (h *HistoryList) SetSessions(sessions []history.SessionSummary) {
	h.sessions = sessions
	if h.selectedIdx >= len(sessions) {
		h.selectedIdx = max(0, len(sessions)-1)
	}
	h.ensureVisible()
}

// Sessions returns the rows currently shown.
func (h *HistoryList) Sessions() []history.SessionSummary {
	return h.sessions
}

// SetVisible shows or hides the list. A hidden list renders nothing and
// ignores input.
func (h *HistoryList) SetVisible(visible bool) {
	h.visible = visible
}

// IsVisible returns whether the list renders.
func (h *HistoryList) IsVisible() bool {
	return h.visible
}

// SetFocused sets the focus state
func (h *HistoryList) SetFocused(focused bool) {
	h.focused = focused
}

// SetDarkMode selects the palette used for rendering.
func (h *HistoryList) SetDarkMode(dark bool) {
	h.dark = dark
}

// SetLocation sets the zone used for row dates. nil means local time.
func (h *HistoryList) SetLocation(loc *time.Location) {
	h.loc = loc
}

// SetSize sets the list dimensions
func (h *HistoryList) SetSize(width, height int) {
	h.width = width
	h.height = height
	h.ensureVisible()
}

// SelectedIndex returns the cursor position
func (h *HistoryList) SelectedIndex() int {
	return h.selectedIdx
}

// SelectedSession returns the session under the cursor
func (h *HistoryList) SelectedSession() (history.SessionSummary, bool) {
	if h.selectedIdx < 0 || h.selectedIdx >= len(h.sessions) {
		return history.SessionSummary{}, false
	}
	return h.sessions[h.selectedIdx], true
}

// RowCount returns the number of session rows rendered.
func (h *HistoryList) RowCount() int {
	if !h.visible {
		return 0
	}
	return len(h.sessions)
}

// PlaceholderCount returns 1 when the empty placeholder is rendered.
func (h *HistoryList) PlaceholderCount() int {
	if h.visible && len(h.sessions) == 0 {
		return 1
	}
	return 0
}

// Update handles keyboard navigation and mouse input.
func (h *HistoryList) Update(msg tea.Msg) (*HistoryList, tea.Cmd) {
	if !h.visible {
		return h, nil
	}

	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if !h.focused {
			return h, nil
		}
		switch msg.String() {
		case keys.Up, "k":
			if h.selectedIdx > 0 {
				h.selectedIdx--
				h.ensureVisible()
			}
		case keys.Down, "j":
			if h.selectedIdx < len(h.sessions)-1 {
				h.selectedIdx++
				h.ensureVisible()
			}
		case keys.Home:
			h.selectedIdx = 0
			h.ensureVisible()
		case keys.End:
			h.selectedIdx = max(0, len(h.sessions)-1)
			h.ensureVisible()
		case keys.Enter:
			if s, ok := h.SelectedSession(); ok {
				h.selectSession(s.ID)
			}
		case "d", keys.Delete:
			if s, ok := h.SelectedSession(); ok {
				h.deleteSession(s.ID)
			}
		}

	case tea.MouseClickMsg:
		h.Click(msg.X, msg.Y)

	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			if h.scrollOffset > 0 {
				h.scrollOffset--
			}
		case tea.MouseWheelDown:
			if h.scrollOffset < h.maxScrollOffset() {
				h.scrollOffset++
			}
		}
	}

	return h, nil
}

// Click hit-tests a click at (x, y) relative to the list's top-left corner.
// The delete zone on a row's title line only deletes; the rest of the row
// only selects. It reports whether a row was hit.
func (h *HistoryList) Click(x, y int) bool {
	if !h.visible || len(h.sessions) == 0 {
		return false
	}
	idx, line, ok := h.rowAt(y)
	if !ok {
		return false
	}
	h.selectedIdx = idx
	id := h.sessions[idx].ID

	if line == 0 && x >= h.rowWidth()-HistoryDeleteZoneWidth && x < h.rowWidth() {
		h.deleteSession(id)
		return true
	}
	h.selectSession(id)
	return true
}

// rowAt maps a y coordinate to a row index and the line within that row.
func (h *HistoryList) rowAt(y int) (idx, line int, ok bool) {
	rel := y - HistoryHeadingHeight
	if rel < 0 {
		return 0, 0, false
	}
	stride := HistoryRowHeight + HistoryRowGap
	line = rel % stride
	if line >= HistoryRowHeight {
		return 0, 0, false
	}
	idx = h.scrollOffset + rel/stride
	if idx >= len(h.sessions) || idx >= h.scrollOffset+h.visibleRows() {
		return 0, 0, false
	}
	return idx, line, true
}

func (h *HistoryList) selectSession(id string) {
	logger.WithComponent("history").Debug("session selected", "sessionID", id)
	if h.OnSelect != nil {
		h.OnSelect(id)
	}
}

func (h *HistoryList) deleteSession(id string) {
	logger.WithComponent("history").Debug("session delete requested", "sessionID", id)
	if h.OnDelete != nil {
		h.OnDelete(id)
	}
}

func (h *HistoryList) rowWidth() int {
	if h.width <= 0 {
		return DefaultWrapWidth
	}
	return h.width
}

// visibleRows is how many rows fit below the heading.
func (h *HistoryList) visibleRows() int {
	if h.height <= 0 {
		return len(h.sessions)
	}
	avail := h.height - HistoryHeadingHeight + HistoryRowGap
	return max(1, avail/(HistoryRowHeight+HistoryRowGap))
}

func (h *HistoryList) maxScrollOffset() int {
	return max(0, len(h.sessions)-h.visibleRows())
}

func (h *HistoryList) ensureVisible() {
	rows := h.visibleRows()
	if h.selectedIdx < h.scrollOffset {
		h.scrollOffset = h.selectedIdx
	}
	if h.selectedIdx >= h.scrollOffset+rows {
		h.scrollOffset = h.selectedIdx - rows + 1
	}
	h.scrollOffset = min(max(0, h.scrollOffset), h.maxScrollOffset())
}

// View renders the list
func (h *HistoryList) View() string {
	if !h.visible {
		return ""
	}
	s := newHistoryStyles(h.dark)
	width := h.rowWidth()

	lines := []string{s.heading.Render(historyHeading), ""}

	if len(h.sessions) == 0 {
		lines = append(lines, s.placeholder.Width(width).Render(historyPlaceholder))
		return strings.Join(lines, "\n")
	}

	end := min(len(h.sessions), h.scrollOffset+h.visibleRows())
	for i := h.scrollOffset; i < end; i++ {
		if i > h.scrollOffset {
			lines = append(lines, "")
		}
		lines = append(lines, h.renderRow(h.sessions[i], i == h.selectedIdx, width, s)...)
	}
	return strings.Join(lines, "\n")
}

// renderRow draws the title line with the delete affordance flush right,
// then the date line.
func (h *HistoryList) renderRow(sess history.SessionSummary, selected bool, width int, s historyStyles) []string {
	bar := s.rowBar.Render("▎")
	if selected && h.focused {
		bar = s.rowBarFocus.Render("▌")
	}

	// bar + space on the left, one space before the delete zone
	titleWidth := max(1, width-2-1-HistoryDeleteZoneWidth)
	title := truncateGraphemes(sess.Titled(UntitledSession), titleWidth)
	pad := strings.Repeat(" ", max(0, titleWidth-runewidth.StringWidth(title)))
	del := s.deleteBtn.Width(HistoryDeleteZoneWidth).Render(" " + historyDeleteGlyph + " ")

	titleLine := bar + " " + s.title.Render(title) + pad + " " + del
	dateLine := bar + " " + s.date.Render(history.FormatDate(sess.CreatedAt, h.loc))
	return []string{titleLine, dateLine}
}

// truncateGraphemes shortens s to at most width cells without splitting a
// grapheme cluster, appending an ellipsis when anything was cut.
func truncateGraphemes(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	const tail = "…"
	limit := width - runewidth.StringWidth(tail)
	if limit <= 0 {
		return tail
	}

	var b strings.Builder
	used := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cluster := gr.Str()
		w := runewidth.StringWidth(cluster)
		if used+w > limit {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	return b.String() + tail
}
