package tui

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressDisplay_NonInteractiveStart(t *testing.T) {
	t.Setenv("MYCONN_NON_INTERACTIVE", "1")

	var buf bytes.Buffer
	p := &ProgressDisplay{out: &buf}
	p.Start("Creating database")

	if got := buf.String(); got != "Creating database\n" {
		t.Errorf("Start output = %q, want plain message", got)
	}
}

func TestProgressDisplay_SuccessAndError(t *testing.T) {
	var buf bytes.Buffer
	p := &ProgressDisplay{out: &buf}

	p.Success("done")
	p.Error("failed")

	out := buf.String()
	if !strings.Contains(out, SymbolCheck+" done") {
		t.Errorf("missing success line in %q", out)
	}
	if !strings.Contains(out, SymbolCross+" failed") {
		t.Errorf("missing error line in %q", out)
	}
}
