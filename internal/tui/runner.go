package tui

import (
	"fmt"
	"io"
	"os"
)

// PromptContinue asks a yes/no question on the terminal. Non-interactive
// runs always answer yes so scripted invocations never block.
func PromptContinue(message string) bool {
	if !IsInteractive() {
		return true
	}

	fmt.Printf("%s [Y/n]: ", message)

	var response string
	fmt.Scanln(&response)

	return response == "" || response == "y" || response == "Y"
}

// ProgressDisplay prints step progress in a form that degrades cleanly
// when output is piped.
type ProgressDisplay struct {
	out io.Writer
}

func NewProgressDisplay() *ProgressDisplay {
	return &ProgressDisplay{out: os.Stdout}
}

func (p *ProgressDisplay) Start(message string) {
	if !IsInteractive() {
		fmt.Fprintln(p.out, message)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", SymbolSpinner, message)
}

func (p *ProgressDisplay) Success(message string) {
	fmt.Fprintf(p.out, "%s %s\n", SymbolCheck, message)
}

func (p *ProgressDisplay) Error(message string) {
	fmt.Fprintf(p.out, "%s %s\n", SymbolCross, message)
}
