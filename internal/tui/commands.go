package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MahanAzadBeast/n8n-render/internal/api"
	"github.com/MahanAzadBeast/n8n-render/internal/report"
)

// Async results come back as typed messages. Messages for derived fetches
// carry the run id they were issued for, so Update can hand them to the
// session machine's staleness guard.
type (
	healthMsg struct {
		message string
		err     error
	}
	designResultMsg struct {
		resp *api.DesignResponse
		err  error
	}
	runResultMsg struct {
		run *api.Run
		err error
	}
	artifactsMsg struct {
		runID     string
		artifacts []api.Artifact
		err       error
	}
	graphMsg struct {
		runID string
		graph *api.WorkflowGraph
		err   error
	}
	connectionSavedMsg struct {
		ref *api.ConnectionRef
		err error
	}
	junitMsg struct {
		runID string
		suite *report.Suite
		err   error
	}
)

func (m Model) probeHealth() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Health(context.Background())
		return healthMsg{message: msg, err: err}
	}
}

func (m Model) requestDesign(goal string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.client.Design(context.Background(), goal)
		return designResultMsg{resp: resp, err: err}
	}
}

func (m Model) requestRun(contractID string, useN8N bool, connectionID string) tea.Cmd {
	return func() tea.Msg {
		run, err := m.client.TestRun(context.Background(), contractID, useN8N, connectionID)
		return runResultMsg{run: run, err: err}
	}
}

func (m Model) fetchArtifacts(runID string) tea.Cmd {
	return func() tea.Msg {
		artifacts, err := m.client.Artifacts(context.Background(), runID)
		return artifactsMsg{runID: runID, artifacts: artifacts, err: err}
	}
}

func (m Model) fetchGraph(runID string) tea.Cmd {
	return func() tea.Msg {
		graph, err := m.client.WorkflowGraph(context.Background(), runID)
		return graphMsg{runID: runID, graph: graph, err: err}
	}
}

func (m Model) saveConnection(in api.ConnectionInput) tea.Cmd {
	return func() tea.Msg {
		ref, err := m.client.SaveConnection(context.Background(), in)
		return connectionSavedMsg{ref: ref, err: err}
	}
}

// fetchJUnit downloads and parses the junit artifact for display. Like the
// other derived fetches it is tagged with its run id and fails silently.
func (m Model) fetchJUnit(runID, artifactID string) tea.Cmd {
	return func() tea.Msg {
		data, err := m.client.DownloadArtifact(context.Background(), artifactID)
		if err != nil {
			return junitMsg{runID: runID, err: err}
		}
		suite, err := report.ParseJUnit(data)
		return junitMsg{runID: runID, suite: suite, err: err}
	}
}
