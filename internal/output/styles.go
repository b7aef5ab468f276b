package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all lipgloss styles for text output
var Styles = struct {
	// Component styles
	Timestamp lipgloss.Style
	Dataset   lipgloss.Style
	Path      lipgloss.Style

	// Summary styles
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Info    lipgloss.Style

	// TUI styles
	Title    lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style
}{
	// Components
	Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")), // Gray
	Dataset:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // Blue
	Path:      lipgloss.NewStyle().Foreground(lipgloss.Color("142")), // Yellow-green

	// Summary
	Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("239")),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:   lipgloss.NewStyle().Bold(true),
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),  // Green
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red
	Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),             // Cyan

	// TUI
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1),
	Selected: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("39")),
	Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
}

// DisableStyles strips colors and borders from all styles, for use when
// stdout is not a terminal.
func DisableStyles() {
	plain := lipgloss.NewStyle()
	Styles.Timestamp = plain
	Styles.Dataset = plain
	Styles.Path = plain
	Styles.Header = plain
	Styles.Label = plain
	Styles.Value = plain
	Styles.Success = plain
	Styles.Warning = plain
	Styles.Danger = plain
	Styles.Info = plain
	Styles.Title = plain
	Styles.Selected = plain
	Styles.Help = plain
}

// StatusText returns styled status text for a healthcheck outcome
func StatusText(ok, degraded bool) string {
	if !ok {
		return Styles.Danger.Render("FAIL")
	}
	if degraded {
		return Styles.Warning.Render("WARN")
	}
	return Styles.Success.Render("OK")
}
