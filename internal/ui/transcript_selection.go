package ui

// Selection coordinates are relative to the transcript viewport: (0,0) is
// the top-left cell of the visible area, columns are terminal cells. The app
// subtracts the header before handing mouse events to the transcript.
//
// Selected text is cut from the rendered viewport lines after stripping
// escape sequences, so what is copied is exactly what is on screen.

import (
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
	"github.com/zhubert/sidepanel/internal/clipboard"
	"github.com/zhubert/sidepanel/internal/logger"
)

// SelectionCopiedMsg reports text copied from the transcript.
type SelectionCopiedMsg struct {
	Text string
}

// ClipboardErrorMsg is sent when clipboard operations fail
type ClipboardErrorMsg struct {
	Error error
}

const (
	doubleClickThreshold = 500 * time.Millisecond
	clickTolerance       = 2 // cells
)

type selection struct {
	startCol, startLine int
	endCol, endLine     int
	dragging            bool
	copied              bool

	lastClickTime time.Time
	lastClickX    int
	lastClickY    int
	clickCount    int
}

// StartSelection begins a text selection at the given coordinates
func (t *Transcript) StartSelection(col, line int) {
	t.sel.startCol, t.sel.startLine = col, line
	t.sel.endCol, t.sel.endLine = col, line
	t.sel.dragging = true
	t.sel.copied = false
}

// EndSelection updates the end position of the selection during drag
func (t *Transcript) EndSelection(col, line int) {
	if !t.sel.dragging {
		return
	}
	t.sel.endCol, t.sel.endLine = col, line
}

// SelectionClear clears the selection entirely
func (t *Transcript) SelectionClear() {
	t.sel.startCol, t.sel.startLine = -1, -1
	t.sel.endCol, t.sel.endLine = -1, -1
	t.sel.dragging = false
	t.sel.copied = false
}

// HasTextSelection returns true if there is an active or completed selection
func (t *Transcript) HasTextSelection() bool {
	s := t.sel
	return s.startCol >= 0 && s.startLine >= 0 &&
		(s.endCol != s.startCol || s.endLine != s.startLine)
}

// MouseDown handles a press at viewport coordinates. A double click copies
// the word under the pointer, a triple click copies the paragraph.
func (t *Transcript) MouseDown(x, y int) tea.Cmd {
	now := time.Now()
	s := &t.sel

	if now.Sub(s.lastClickTime) <= doubleClickThreshold &&
		abs(x-s.lastClickX) <= clickTolerance &&
		abs(y-s.lastClickY) <= clickTolerance {
		s.clickCount++
	} else {
		s.clickCount = 1
	}
	s.lastClickTime = now
	s.lastClickX, s.lastClickY = x, y

	switch s.clickCount {
	case 2:
		t.SelectWord(x, y)
		return t.CopySelectedText()
	case 3:
		t.SelectParagraph(y)
		s.clickCount = 0
		return t.CopySelectedText()
	default:
		t.StartSelection(x, y)
		return nil
	}
}

// MouseDrag extends the selection while the button is held.
func (t *Transcript) MouseDrag(x, y int) {
	t.EndSelection(x, y)
}

// MouseUp ends a drag and copies what it covered.
func (t *Transcript) MouseUp(x, y int) tea.Cmd {
	if !t.sel.dragging {
		return nil
	}
	t.EndSelection(x, y)
	t.sel.dragging = false
	return t.CopySelectedText()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (t *Transcript) visibleLines() []string {
	lines := strings.Split(t.viewport.View(), "\n")
	for i, l := range lines {
		lines[i] = ansi.Strip(l)
	}
	return lines
}

// SelectWord selects the run of non-space graphemes under (col, line).
func (t *Transcript) SelectWord(col, line int) {
	lines := t.visibleLines()
	if line < 0 || line >= len(lines) {
		return
	}

	start, end := -1, -1
	pos := 0
	inWord := false
	gr := uniseg.NewGraphemes(lines[line])
	for gr.Next() {
		w := gr.Width()
		space := strings.TrimSpace(gr.Str()) == ""
		switch {
		case space && pos > col:
			if start >= 0 {
				end = pos
			}
		case space:
			inWord = false
			start = -1
		case !inWord:
			inWord = true
			start = pos
		}
		if end >= 0 {
			break
		}
		pos += w
	}
	if end < 0 {
		if col >= pos {
			return
		}
		end = pos
	}
	if start < 0 || start > col {
		return
	}

	t.sel.startCol, t.sel.startLine = start, line
	t.sel.endCol, t.sel.endLine = end, line
	t.sel.dragging = false
}

// SelectParagraph selects the block of non-blank lines around line.
func (t *Transcript) SelectParagraph(line int) {
	lines := t.visibleLines()
	if line < 0 || line >= len(lines) || strings.TrimSpace(lines[line]) == "" {
		return
	}

	startLine, endLine := line, line
	for startLine > 0 && strings.TrimSpace(lines[startLine-1]) != "" {
		startLine--
	}
	for endLine < len(lines)-1 && strings.TrimSpace(lines[endLine+1]) != "" {
		endLine++
	}

	t.sel.startCol, t.sel.startLine = 0, startLine
	t.sel.endCol, t.sel.endLine = ansi.StringWidth(lines[endLine]), endLine
	t.sel.dragging = false
}

// selectionArea returns the selection with start before end in reading order.
func (t *Transcript) selectionArea() (startCol, startLine, endCol, endLine int) {
	s := t.sel
	startCol, startLine, endCol, endLine = s.startCol, s.startLine, s.endCol, s.endLine
	if startLine > endLine || (startLine == endLine && startCol > endCol) {
		startCol, endCol = endCol, startCol
		startLine, endLine = endLine, startLine
	}
	return
}

// GetSelectedText returns the currently selected text.
func (t *Transcript) GetSelectedText() string {
	if !t.HasTextSelection() {
		return ""
	}

	lines := t.visibleLines()
	startCol, startLine, endCol, endLine := t.selectionArea()

	var result strings.Builder
	for y := max(startLine, 0); y <= endLine && y < len(lines); y++ {
		line := lines[y]
		from, to := 0, ansi.StringWidth(line)
		if y == startLine {
			from = max(startCol, 0)
		}
		if y == endLine {
			to = min(endCol, to)
		}
		if from < to {
			result.WriteString(strings.TrimRight(ansi.Cut(line, from, to), " "))
		}
		if y < endLine {
			result.WriteString("\n")
		}
	}
	return strings.TrimSpace(result.String())
}

// CopySelectedText copies the selection through OSC 52 and the system
// clipboard.
func (t *Transcript) CopySelectedText() tea.Cmd {
	text := t.GetSelectedText()
	if text == "" {
		return nil
	}
	t.sel.copied = true

	return tea.Batch(
		tea.SetClipboard(text),
		func() tea.Msg {
			if err := clipboard.WriteText(text); err != nil {
				logger.WithComponent("ui").Warn("failed to write to clipboard", "error", err)
				return ClipboardErrorMsg{Error: err}
			}
			return SelectionCopiedMsg{Text: text}
		},
	)
}

// selectionView paints the selection over the rendered viewport.
func (t *Transcript) selectionView(view string) string {
	if !t.HasTextSelection() {
		return view
	}

	width := t.viewport.Width()
	height := t.viewport.Height()
	if width <= 0 || height <= 0 {
		return view
	}

	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)

	s := newTranscriptStyles(t.dark)
	style := s.selection
	if t.sel.copied {
		style = s.copied
	}
	var selBg, selFg color.Color = style.GetBackground(), style.GetForeground()

	startCol, startLine, endCol, endLine := t.selectionArea()
	for y := max(startLine, 0); y <= endLine && y < height; y++ {
		xStart, xEnd := 0, width
		if y == startLine {
			xStart = startCol
		}
		if y == endLine {
			xEnd = endCol
		}
		for x := max(xStart, 0); x < xEnd && x < width; x++ {
			cell := scr.CellAt(x, y)
			if cell != nil {
				cell = cell.Clone()
				cell.Style.Bg = selBg
				cell.Style.Fg = selFg
				scr.SetCell(x, y, cell)
			}
		}
	}

	return scr.Render()
}
