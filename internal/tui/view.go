package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/MahanAzadBeast/n8n-render/internal/graphview"
	"github.com/MahanAzadBeast/n8n-render/internal/session"
)

// View renders the whole screen from the current session snapshot.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	snap := m.sess.Snapshot()
	display := session.Present(snap)

	title := m.theme.TitleStyle.Render(m.theme.TitleIcon + " " + m.theme.TitleText)
	goalLine := m.goal.View()
	statusLine := m.statusLine(snap, display)

	if m.showForm {
		form := m.theme.FocusPaneStyle.Width(m.paneWidth(m.width)).Render(m.form.View(m.theme))
		help := m.theme.StatusBarStyle.Render("esc close")
		return lipgloss.JoinVertical(lipgloss.Left, title, "", goalLine, statusLine, "", form, help)
	}

	half := m.paneWidth(m.width / 2)
	runPane := m.theme.PaneStyle.Width(half).Render(m.runPane(display))
	artifactPane := m.theme.PaneStyle.Width(half).Render(m.artifactPane(snap, display))
	panes := lipgloss.JoinHorizontal(lipgloss.Top, runPane, artifactPane)

	graphPane := m.theme.PaneStyle.Width(m.paneWidth(m.width)).Render(m.graphPane(snap, display))

	help := m.theme.StatusBarStyle.Render(
		"enter design • ctrl+r run mock • ctrl+e run n8n • ctrl+o connection • esc quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", goalLine, statusLine, panes, graphPane, help)
}

// paneWidth clamps a desired pane width against the terminal.
func (m Model) paneWidth(w int) int {
	if w > m.width-4 {
		w = m.width - 4
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) statusLine(snap session.State, display session.Display) string {
	parts := []string{
		"phase: " + display.Phase,
		"backend: " + orDash(m.backend),
		"connection: " + display.Connection,
	}
	line := m.theme.MutedStyle.Render(strings.Join(parts, "  •  "))
	if snap.Designing || snap.Running || snap.SavingConnection || snap.ArtifactsPending || snap.GraphPending {
		line += " " + m.spin.View()
	}
	return line
}

func (m Model) runPane(display session.Display) string {
	var b strings.Builder
	b.WriteString(m.theme.PaneTitleStyle.Render("run"))
	b.WriteString("\n")

	if display.Error != "" {
		b.WriteString(m.theme.ErrorTextStyle.Render(display.Error))
		b.WriteString("\n")
	}

	if display.StatusLabel == "" {
		b.WriteString(m.theme.MutedStyle.Render("no run yet"))
		return b.String()
	}

	b.WriteString(m.statusBadge(display.StatusLabel))
	b.WriteString("  ")
	b.WriteString(m.theme.MutedStyle.Render(display.Summary))
	b.WriteString("\n")

	for _, row := range display.Assertions {
		icon := m.theme.PassStyle.Render(m.theme.Icons.Pass)
		if !row.Passed {
			icon = m.theme.FailStyle.Render(m.theme.Icons.Fail)
		}
		b.WriteString(fmt.Sprintf("%s %-14s %s\n", icon, row.Operator,
			m.theme.TextStyle.Render(truncate(row.Message, m.width/2-22))))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) statusBadge(status string) string {
	if status == "PASS" {
		return m.theme.PassStyle.Render(m.theme.Icons.Pass + " " + status)
	}
	return m.theme.FailStyle.Render(m.theme.Icons.Fail + " " + status)
}

func (m Model) artifactPane(snap session.State, display session.Display) string {
	var b strings.Builder
	b.WriteString(m.theme.PaneTitleStyle.Render("artifacts"))
	b.WriteString("\n")

	switch display.Artifacts {
	case session.ViewPending:
		b.WriteString(m.theme.MutedStyle.Render(m.theme.Icons.Pending + " loading"))
	case session.ViewAbsent:
		b.WriteString(m.theme.MutedStyle.Render("none"))
	default:
		for _, a := range snap.Artifacts.Items() {
			b.WriteString(fmt.Sprintf("%-15s %s\n", a.Kind, m.theme.MutedStyle.Render(truncate(a.ID, 12))))
		}
	}
	b.WriteString("\n")

	if m.junit != nil {
		b.WriteString(m.theme.PaneTitleStyle.Render("junit"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%d tests, %d failed\n", m.junit.Tests, m.junit.Failed()))
		for _, c := range m.junit.Cases {
			if !c.Passed {
				b.WriteString(m.theme.FailStyle.Render(m.theme.Icons.Fail) + " " + truncate(c.Name, m.width/2-8) + "\n")
			}
		}
	}

	if display.Meta != nil {
		b.WriteString(m.theme.PaneTitleStyle.Render("n8n"))
		b.WriteString("\n")
		if display.Meta.WebhookTestURL != "" {
			b.WriteString("test webhook: " + truncate(display.Meta.WebhookTestURL, m.width/2-18) + "\n")
		}
		if display.Meta.N8NError != "" {
			b.WriteString(m.theme.ErrorTextStyle.Render(truncate(display.Meta.N8NError, m.width/2-6)) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) graphPane(snap session.State, display session.Display) string {
	title := m.theme.PaneTitleStyle.Render("workflow graph")
	switch display.Graph {
	case session.ViewPending:
		return title + "\n" + m.theme.MutedStyle.Render(m.theme.Icons.Pending+" loading")
	case session.ViewAbsent:
		return title + "\n" + m.theme.MutedStyle.Render("not available (mock runs have no generated workflow)")
	}

	layout := graphview.Compute(snap.Graph)
	height := m.height / 3
	if height < 8 {
		height = 8
	}
	return title + "\n" + graphview.Render(layout, m.paneWidth(m.width)-4, height)
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func truncate(s string, w int) string {
	if w < 4 {
		w = 4
	}
	return runewidth.Truncate(s, w, "…")
}
