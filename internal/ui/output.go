// Package ui renders CLI output with lipgloss.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Otixa/luajs"
	"github.com/Otixa/luajs/engine"
	"github.com/charmbracelet/lipgloss"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// valueStyle for result values
	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// headerBoxStyle for the REPL header
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)

	// boxStyle for tables
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

// FormatHeader renders the REPL header for a state
func FormatHeader(w io.Writer, s *luajs.State) {
	content := fmt.Sprintf("%s %s  %s %s\n%s %s\n%s",
		dimStyle.Render("State:"), titleStyle.Render(s.Name()),
		dimStyle.Render("Engine:"), titleStyle.Render(s.Engine()),
		dimStyle.Render("Version:"), s.Version(),
		dimStyle.Render(":quit to exit, :global <name> to inspect a global"),
	)
	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatResult writes a script result
func FormatResult(w io.Writer, v engine.Value) {
	fmt.Fprintf(w, "%s %s\n", dimStyle.Render("=>"), valueStyle.Render(engine.Format(v)))
}

// FormatError writes a script or CLI error. Engine errors are labelled with
// the chunk that failed.
func FormatError(w io.Writer, err error) {
	label := "error"
	var engErr *engine.Error
	if errors.As(err, &engErr) && engErr.Chunk != "" {
		label = engErr.Chunk
	}
	fmt.Fprintf(w, "%s %s\n", errorStyle.Render(label+":"), err)
}

// FormatConstants renders the constants table
func FormatConstants(w io.Writer, constants []luajs.Constant) {
	width := 0
	for _, c := range constants {
		width = max(width, len(c.Name))
	}

	lines := make([]string, len(constants))
	for i, c := range constants {
		lines[i] = fmt.Sprintf("%-*s %s", width, c.Name, valueStyle.Render(fmt.Sprintf("%d", c.Value)))
	}
	content := titleStyle.Render("Lua constants") + "\n" + strings.Join(lines, "\n")
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatEngines renders the available engines and their versions
func FormatEngines(w io.Writer, engines []engine.Engine, current string) {
	lines := make([]string, len(engines))
	for i, e := range engines {
		marker := " "
		if e.Name() == current {
			marker = valueStyle.Render("●")
		}
		lines[i] = fmt.Sprintf("%s %s  %s", marker, titleStyle.Render(e.Name()), dimStyle.Render(e.Version()))
	}
	fmt.Fprintln(w, boxStyle.Render(strings.Join(lines, "\n")))
}
