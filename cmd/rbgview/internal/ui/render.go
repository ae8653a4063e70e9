package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions
var (
	// Colors
	primaryColor = lipgloss.Color("#3b82f6")
	errorColor   = lipgloss.Color("#f48771")
	mutedColor   = lipgloss.Color("#94a3b8")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	infoStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)
)

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	if m.showHelp {
		box := helpBoxStyle.Render(m.help.View(m.keys))
		body := lipgloss.Place(m.width, max(m.height-headerLines-footerLines, 0), lipgloss.Center, lipgloss.Center, box)
		return header + "\n" + body + "\n" + footer
	}

	return header + "\n" + m.surface.View() + "\n" + footer
}

// renderHeader shows the file name and the info panel on one line
func (m Model) renderHeader() string {
	info := m.viewer.Info()
	return titleStyle.Render(m.title) + "  " + infoStyle.Render(strings.Join(info.Lines(), "  "))
}

// renderFooter shows the status line and the short help
func (m Model) renderFooter() string {
	var status string
	switch {
	case m.statusErr:
		status = errorStyle.Render(m.status)
	case m.renderErr != nil:
		status = errorStyle.Render(m.renderErr.Error())
	default:
		vp := m.viewer.Viewport()
		status = statusStyle.Render(m.status + viewportLabel(vp.Scale))
	}

	helpLine := ""
	if !m.showHelp {
		helpLine = m.help.View(m.keys)
	}
	return status + "\n" + helpLine
}

func viewportLabel(scale float64) string {
	return fmt.Sprintf("  zoom %.2fx", scale)
}
