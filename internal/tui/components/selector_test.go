package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/myconn/internal/tui"
)

func testOptions() []Option {
	return []Option{
		{Label: "First", Description: "the first option", Value: "one"},
		{Label: "Second", Description: "the second option", Value: "two"},
		{Label: "Third", Value: "three"},
	}
}

func TestSelector_Navigation(t *testing.T) {
	s := NewSelector("Pick one", testOptions())

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown}) // clamped at last
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if !s.Submitted() {
		t.Fatal("expected selector to be submitted")
	}
	if s.Selected() != 2 {
		t.Errorf("Selected() = %d, want 2", s.Selected())
	}
	if s.Value() != "three" {
		t.Errorf("Value() = %q, want three", s.Value())
	}
}

func TestSelector_CursorClampsAtTop(t *testing.T) {
	s := NewSelector("Pick one", testOptions())

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyUp})
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if s.Selected() != 0 {
		t.Errorf("Selected() = %d, want 0", s.Selected())
	}
}

func TestSelector_Cancel(t *testing.T) {
	s := NewSelector("Pick one", testOptions())

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if !s.Cancelled() {
		t.Fatal("expected selector to be cancelled")
	}
	if s.SelectedOption() != nil {
		t.Error("expected no selected option after cancel")
	}
}

func TestSelector_Reset(t *testing.T) {
	s := NewSelector("Pick one", testOptions())

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s.Reset()

	if s.Submitted() || s.Cancelled() {
		t.Error("expected flags to be cleared after Reset")
	}
	if s.Selected() != -1 {
		t.Errorf("Selected() = %d, want -1", s.Selected())
	}
}

func TestSelector_View(t *testing.T) {
	s := NewSelector("Pick one", testOptions())

	view := s.View()
	for _, want := range []string{"Pick one", "First", "the second option"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSelector_ViewUsesSharedSymbolsAndHelp(t *testing.T) {
	s := NewSelector("Pick one", testOptions())

	view := s.View()
	if !strings.Contains(view, tui.SymbolSelected+" First") {
		t.Error("cursor row should carry the selected symbol")
	}
	if !strings.Contains(view, tui.SymbolUnselected+" Second") {
		t.Error("other rows should carry the unselected symbol")
	}
	if !strings.Contains(view, tui.DefaultKeyMap().HelpText()) {
		t.Error("help line should come from the shared key map")
	}
}
