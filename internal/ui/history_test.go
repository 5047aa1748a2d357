package ui

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/zhubert/sidepanel/internal/history"
	"github.com/zhubert/sidepanel/internal/keys"
)

type historyCalls struct {
	selected []string
	deleted  []string
}

func newTestHistory(sessions []history.SessionSummary) (*HistoryList, *historyCalls) {
	calls := &historyCalls{}
	h := NewHistoryList()
	h.SetSize(40, 30)
	h.SetLocation(time.UTC)
	h.SetFocused(true)
	h.SetSessions(sessions)
	h.OnSelect = func(id string) { calls.selected = append(calls.selected, id) }
	h.OnDelete = func(id string) { calls.deleted = append(calls.deleted, id) }
	return h, calls
}

func sampleSessions() []history.SessionSummary {
	return []history.SessionSummary{
		{ID: "a", Title: "Book a flight", CreatedAt: time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC).UnixMilli()},
		{ID: "b", Title: "Compare laptops", CreatedAt: time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC).UnixMilli()},
		{ID: "c", Title: "", CreatedAt: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC).UnixMilli()},
	}
}

// rowY returns the y coordinate of row i's title line.
func rowY(i int) int {
	return HistoryHeadingHeight + i*(HistoryRowHeight+HistoryRowGap)
}

func TestHistoryList_EmptyShowsPlaceholder(t *testing.T) {
	h, _ := newTestHistory(nil)

	if h.PlaceholderCount() != 1 {
		t.Errorf("PlaceholderCount() = %d, want 1", h.PlaceholderCount())
	}
	if h.RowCount() != 0 {
		t.Errorf("RowCount() = %d, want 0", h.RowCount())
	}
	view := ansi.Strip(h.View())
	if strings.Count(view, "No chat history available") != 1 {
		t.Errorf("placeholder should render once:\n%s", view)
	}
	if !strings.Contains(view, "Chat History") {
		t.Errorf("heading missing:\n%s", view)
	}
	if strings.Contains(view, historyDeleteGlyph) {
		t.Errorf("empty list should have no rows:\n%s", view)
	}
}

func TestHistoryList_RowsInOrder(t *testing.T) {
	h, _ := newTestHistory(sampleSessions())

	if h.RowCount() != 3 || h.PlaceholderCount() != 0 {
		t.Fatalf("RowCount() = %d, PlaceholderCount() = %d", h.RowCount(), h.PlaceholderCount())
	}
	view := ansi.Strip(h.View())
	first := strings.Index(view, "Book a flight")
	second := strings.Index(view, "Compare laptops")
	third := strings.Index(view, UntitledSession)
	if first < 0 || second < first || third < second {
		t.Errorf("rows out of order:\n%s", view)
	}
	for _, date := range []string{"Jan 5, 2026", "Dec 31, 2025", "Feb 1, 2026"} {
		if !strings.Contains(view, date) {
			t.Errorf("missing date %q:\n%s", date, view)
		}
	}
	if strings.Contains(view, "Yesterday") {
		t.Error("history dates never use Yesterday")
	}
	if strings.Count(view, historyDeleteGlyph) != 3 {
		t.Errorf("want one delete affordance per row:\n%s", view)
	}
}

func TestHistoryList_DeleteClickDoesNotSelect(t *testing.T) {
	h, calls := newTestHistory(sampleSessions())

	if !h.Click(h.width-1, rowY(1)) {
		t.Fatal("click on delete zone should be handled")
	}
	if len(calls.deleted) != 1 || calls.deleted[0] != "b" {
		t.Errorf("deleted = %v, want [b]", calls.deleted)
	}
	if len(calls.selected) != 0 {
		t.Errorf("selected = %v, want none", calls.selected)
	}
}

func TestHistoryList_RowClickSelects(t *testing.T) {
	h, calls := newTestHistory(sampleSessions())

	tests := []struct {
		name string
		x, y int
		want string
	}{
		{"title line", 3, rowY(0), "a"},
		{"date line", h.width - 1, rowY(2) + 1, "c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls.selected = nil
			h.Click(tt.x, tt.y)
			if len(calls.selected) != 1 || calls.selected[0] != tt.want {
				t.Errorf("selected = %v, want [%s]", calls.selected, tt.want)
			}
			if len(calls.deleted) != 0 {
				t.Errorf("deleted = %v, want none", calls.deleted)
			}
		})
	}
}

func TestHistoryList_ClickMisses(t *testing.T) {
	h, calls := newTestHistory(sampleSessions())

	for _, y := range []int{0, 1, rowY(0) + HistoryRowHeight, rowY(3)} {
		if h.Click(5, y) {
			t.Errorf("click at y=%d should miss", y)
		}
	}
	if len(calls.selected)+len(calls.deleted) != 0 {
		t.Error("misses must not fire callbacks")
	}
}

func TestHistoryList_Keyboard(t *testing.T) {
	h, calls := newTestHistory(sampleSessions())

	h.Update(keyPress(keys.Down))
	h.Update(keyPress("j"))
	h.Update(keyPress(keys.Down)) // clamps at the last row
	if h.SelectedIndex() != 2 {
		t.Fatalf("SelectedIndex() = %d, want 2", h.SelectedIndex())
	}
	h.Update(keyPress("k"))
	h.Update(keyPress(keys.Enter))
	h.Update(keyPress("d"))

	if len(calls.selected) != 1 || calls.selected[0] != "b" {
		t.Errorf("selected = %v, want [b]", calls.selected)
	}
	if len(calls.deleted) != 1 || calls.deleted[0] != "b" {
		t.Errorf("deleted = %v, want [b]", calls.deleted)
	}
}

func TestHistoryList_Invisible(t *testing.T) {
	h, calls := newTestHistory(sampleSessions())
	h.SetVisible(false)

	if h.View() != "" {
		t.Error("invisible list should render nothing")
	}
	if h.RowCount() != 0 || h.PlaceholderCount() != 0 {
		t.Error("invisible list has no rows or placeholder")
	}
	h.Update(keyPress(keys.Enter))
	h.Update(tea.MouseClickMsg{X: 3, Y: rowY(0)})
	if h.Click(3, rowY(0)) {
		t.Error("invisible list should ignore clicks")
	}
	if len(calls.selected)+len(calls.deleted) != 0 {
		t.Error("invisible list must not fire callbacks")
	}
}

func TestHistoryList_NilCallbacks(t *testing.T) {
	h := NewHistoryList()
	h.SetSize(40, 20)
	h.SetSessions(sampleSessions())
	h.Click(39, rowY(0))
	h.Click(3, rowY(0))
}

func TestHistoryList_ScrollKeepsCursorVisible(t *testing.T) {
	var sessions []history.SessionSummary
	for i := 0; i < 20; i++ {
		sessions = append(sessions, history.SessionSummary{ID: string(rune('a' + i)), Title: "chat"})
	}
	h, calls := newTestHistory(sessions)
	h.SetSize(40, HistoryHeadingHeight+3*(HistoryRowHeight+HistoryRowGap))

	for i := 0; i < 10; i++ {
		h.Update(keyPress(keys.Down))
	}
	// Row 10 is now the last visible row.
	h.Click(3, rowY(h.visibleRows()-1))
	if len(calls.selected) != 1 || calls.selected[0] != string(rune('a'+10)) {
		t.Errorf("selected = %v, want [k]", calls.selected)
	}
}

func TestTruncateGraphemes(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"truncate me please", 10, "truncate …"},
		{"日本語のタイトル", 7, "日本語…"},
		{"éééé", 3, "éé…"},
	}
	for _, tt := range tests {
		if got := truncateGraphemes(tt.in, tt.width); got != tt.want {
			t.Errorf("truncateGraphemes(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
