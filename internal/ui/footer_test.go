package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func bindingKeys(f *Footer) []string {
	var out []string
	for _, b := range f.Bindings() {
		out = append(out, b.Key)
	}
	return out
}

func TestFooter_Bindings(t *testing.T) {
	tests := []struct {
		name        string
		tab         Tab
		busy        bool
		modal       bool
		hasSessions bool
		want        []string
		notWant     []string
	}{
		{"chat idle", TabChat, false, false, false, []string{"enter", "shift+enter", "ctrl+v", "tab"}, []string{"esc"}},
		{"chat busy", TabChat, true, false, false, []string{"esc", "pgup/dn"}, []string{"enter"}},
		{"history with rows", TabHistory, false, false, true, []string{"↑/↓", "enter", "d"}, nil},
		{"history empty", TabHistory, false, false, false, []string{"tab"}, []string{"d", "enter"}},
		{"modal wins", TabHistory, true, true, true, []string{"enter", "esc"}, []string{"d", "tab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFooter()
			f.SetContext(tt.tab, tt.busy, tt.modal, tt.hasSessions)
			got := strings.Join(bindingKeys(f), ",")
			for _, k := range tt.want {
				if !containsKey(bindingKeys(f), k) {
					t.Errorf("bindings %s missing %q", got, k)
				}
			}
			for _, k := range tt.notWant {
				if containsKey(bindingKeys(f), k) {
					t.Errorf("bindings %s should not include %q", got, k)
				}
			}
		})
	}
}

func containsKey(keys []string, k string) bool {
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}

func TestFooter_View(t *testing.T) {
	f := NewFooter()
	f.SetWidth(120)
	view := ansi.Strip(f.View())
	if !strings.Contains(view, "enter: send") {
		t.Errorf("footer missing send hint: %q", view)
	}
	if !strings.Contains(view, "|") {
		t.Errorf("footer missing separators: %q", view)
	}
}

func TestFooter_NarrowStaysOnOneLine(t *testing.T) {
	f := NewFooter()
	f.SetWidth(40)
	view := ansi.Strip(f.View())
	if strings.Contains(view, "\n") {
		t.Errorf("footer wrapped:\n%s", view)
	}
	if !strings.Contains(view, "enter: send") {
		t.Errorf("first binding should survive: %q", view)
	}
	if strings.Contains(view, "ctrl+c") {
		t.Errorf("trailing bindings should be dropped: %q", view)
	}
}
