// Package logging configures the status logger shared by the CLI and the
// batch runner.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Level markers printed in front of every status line.
const (
	DebugMark = "[.]"
	InfoMark  = "[*]"
	WarnMark  = "[!]"
	ErrorMark = "[x]"
)

// New returns a logger writing prefixed status lines to w (stderr when nil).
// verbose enables debug output.
func New(w io.Writer, verbose bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
	logger.SetStyles(Styles())
	return logger
}

// Styles maps log levels to the tool's bracketed markers.
func Styles() *log.Styles {
	styles := log.DefaultStyles()
	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().SetString(DebugMark).Faint(true)
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().SetString(InfoMark).Foreground(lipgloss.Color("12"))
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().SetString(WarnMark).Foreground(lipgloss.Color("11")).Bold(true)
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().SetString(ErrorMark).Foreground(lipgloss.Color("9")).Bold(true)
	styles.Levels[log.FatalLevel] = lipgloss.NewStyle().SetString(ErrorMark).Foreground(lipgloss.Color("9")).Bold(true)
	return styles
}
