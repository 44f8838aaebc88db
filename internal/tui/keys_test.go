package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"enter selects", tea.KeyMsg{Type: tea.KeyEnter}, km.Select},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, km.Back},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit},
		{"tab next field", tea.KeyMsg{Type: tea.KeyTab}, km.Tab},
		{"shift+tab prev field", tea.KeyMsg{Type: tea.KeyShiftTab}, km.ShiftTab},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, km.Down},
		{"k moves up", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}, km.Up},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("expected %q to match", tt.msg.String())
			}
		})
	}
}

func TestDefaultKeyMap_TypingQDoesNotQuit(t *testing.T) {
	km := DefaultKeyMap()

	q := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
	if key.Matches(q, km.Quit) {
		t.Error("q must stay typable in text inputs")
	}
}

func TestKeyMap_HelpText(t *testing.T) {
	km := DefaultKeyMap()

	if !strings.Contains(km.HelpText(), "enter select") {
		t.Errorf("HelpText() = %q", km.HelpText())
	}
	if !strings.Contains(km.InputHelpText(), "tab") {
		t.Errorf("InputHelpText() = %q", km.InputHelpText())
	}
}
