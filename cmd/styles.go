package cmd

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Common styles used across commands
var (
	// Status styles
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))           // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))

	// Version styles
	versionStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("39")) // Blue
	updateAvailableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C"))
	upToDateStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))

	// Text styles
	faintStyle  = lipgloss.NewStyle().Faint(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9"))
)

// ANSI color codes for plain table output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// colorize wraps text in an ANSI color unless NO_COLOR is set.
func colorize(text string, color string) string {
	if os.Getenv("NO_COLOR") != "" {
		return text
	}
	return color + text + colorReset
}
