package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dayhive/dayhive/internal/report"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("dayhive"))
	b.WriteString("\n\n")

	active := m.active()
	if active != nil {
		b.WriteString(timerStyle.Render(fmt.Sprintf("▶ %s  %02d:%02d:%02d",
			active.ProjectName, m.elapsed/3600, m.elapsed%3600/60, m.elapsed%60)))
	} else {
		b.WriteString(dimStyle.Render("  not tracking"))
	}
	b.WriteString("\n\n")

	if len(m.projects) == 0 {
		b.WriteString(dimStyle.Render("  no projects loaded") + "\n")
	}
	for i, p := range m.projects {
		line := fmt.Sprintf("%-10s %s", p.Code, p.ShortDescription)
		switch {
		case active != nil && active.ProjectCode == p.Code:
			line = trackingStyle.Render("▶ " + line)
		case i == m.cursor:
			line = selectedStyle.Render("> " + line)
		default:
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	s := report.Summarize(m.entries)
	b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("%d completed, %.1fh pending submission", s.Count, s.TotalHours)))

	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}

	return lipgloss.JoinVertical(lipgloss.Left, b.String(), "", m.help.View(m.keys))
}
