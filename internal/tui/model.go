// Package tui is the interactive surface. It wires the Bubble Tea event
// loop to the session state machine: key presses start session events and
// issue the matching API call as a command, and every async result flows
// back through Update into the machine, which enforces the preconditions,
// busy flags, and staleness rules.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/MahanAzadBeast/n8n-render/internal/api"
	"github.com/MahanAzadBeast/n8n-render/internal/report"
	"github.com/MahanAzadBeast/n8n-render/internal/session"
)

// Options configures the TUI.
type Options struct {
	Client       *api.Client
	Logger       zerolog.Logger
	Theme        *Theme
	DefaultMode  session.Mode
	ConnectionID string // preconfigured n8n connection id, may be empty
}

// Run launches the interactive program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	program := tea.NewProgram(NewModel(opts), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Model is the Bubble Tea model.
type Model struct {
	client *api.Client
	sess   *session.Session
	log    zerolog.Logger
	theme  *CompiledTheme

	defaultMode     session.Mode
	cfgConnectionID string

	goal     textinput.Model
	spin     spinner.Model
	form     connectionForm
	showForm bool

	backend string
	junit   *report.Suite

	width  int
	height int
	ready  bool
}

// NewModel builds the initial model.
func NewModel(opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = DefaultTheme()
	}
	compiled := theme.Compile()

	goal := textinput.New()
	goal.Placeholder = "describe the workflow, e.g. \"On POST {msg}, reply with uppercase msg\""
	goal.Prompt = compiled.PaneTitleStyle.Render(theme.Icons.Prompt) + " "
	goal.CharLimit = 500
	goal.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = compiled.BusyStyle

	mode := opts.DefaultMode
	if mode == "" {
		mode = session.ModeMock
	}

	return Model{
		client:          opts.Client,
		sess:            session.New(),
		log:             opts.Logger,
		theme:           compiled,
		defaultMode:     mode,
		cfgConnectionID: opts.ConnectionID,
		goal:            goal,
		spin:            spin,
		form:            newConnectionForm(),
	}
}

// Init probes the backend and starts the cursor and spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.probeHealth())
}

// Update is the single place session state changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case healthMsg:
		if msg.err != nil {
			// Liveness is informational; a dead backend only affects the
			// status line until the user triggers a real call.
			m.log.Warn().Err(msg.err).Msg("backend liveness probe failed")
			m.backend = "unreachable"
			return m, nil
		}
		m.log.Info().Str("message", msg.message).Msg("backend alive")
		m.backend = "connected"
		return m, nil

	case designResultMsg:
		m.sess.FinishDesign(msg.resp, msg.err)
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("design request failed")
		} else {
			m.log.Info().Str("contract_id", msg.resp.WorkflowContract.ID).Msg("design ready")
		}
		return m, nil

	case runResultMsg:
		m.sess.FinishRun(msg.run, msg.err)
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("test run failed")
			return m, nil
		}
		m.log.Info().Str("run_id", msg.run.ID).Str("status", msg.run.Status).Msg("run finished")
		snap := m.sess.Snapshot()
		if snap.Run == nil || snap.Run.ID == "" {
			return m, nil
		}
		return m, tea.Batch(m.fetchArtifacts(snap.Run.ID), m.fetchGraph(snap.Run.ID))

	case artifactsMsg:
		if msg.err != nil {
			m.log.Debug().Err(msg.err).Str("run_id", msg.runID).Msg("artifact fetch failed")
		}
		m.sess.ResolveArtifacts(msg.runID, msg.artifacts, msg.err)
		snap := m.sess.Snapshot()
		if snap.Run != nil && snap.Run.ID == msg.runID {
			if junit, ok := snap.Artifacts.FindByKind(api.ArtifactKindJUnit); ok {
				return m, m.fetchJUnit(msg.runID, junit.ID)
			}
		}
		return m, nil

	case graphMsg:
		if msg.err != nil {
			m.log.Debug().Err(msg.err).Str("run_id", msg.runID).Msg("graph fetch failed")
		}
		m.sess.ResolveGraph(msg.runID, msg.graph, msg.err)
		return m, nil

	case junitMsg:
		if msg.err != nil {
			m.log.Debug().Err(msg.err).Str("run_id", msg.runID).Msg("junit fetch failed")
			return m, nil
		}
		snap := m.sess.Snapshot()
		if snap.Run != nil && snap.Run.ID == msg.runID {
			m.junit = msg.suite
		}
		return m, nil

	case connectionSavedMsg:
		m.sess.FinishConnectionSave(msg.ref, msg.err)
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("connection save failed")
			return m, nil
		}
		m.log.Info().Str("connection_id", msg.ref.ID).Bool("persisted", msg.ref.Persisted).Msg("connection saved")
		m.showForm = false
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showForm {
		return m.handleFormKey(msg)
	}

	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "enter":
		goal := strings.TrimSpace(m.goal.Value())
		if goal == "" {
			return m, nil
		}
		if !m.sess.StartDesign(goal) {
			return m, nil
		}
		m.junit = nil
		return m, m.requestDesign(goal)

	case "ctrl+r":
		return m.startRun(session.ModeMock)

	case "ctrl+e":
		return m.startRun(session.ModeReal)

	case "ctrl+o":
		m.showForm = true
		return m, nil
	}

	var cmd tea.Cmd
	m.goal, cmd = m.goal.Update(msg)
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.showForm = false
		m.form.apiKey.Reset()
		return m, nil
	}
	submit, cmd := m.form.Update(msg)
	if !submit {
		return m, cmd
	}
	if !m.sess.StartConnectionSave() {
		return m, nil
	}
	// take() wipes the secret from the form before the request is even
	// issued; only the returned {id, persisted} ever comes back.
	in := m.form.take()
	return m, m.saveConnection(in)
}

func (m Model) startRun(mode session.Mode) (tea.Model, tea.Cmd) {
	snap := m.sess.Snapshot()
	if snap.Contract == nil {
		return m, nil
	}
	connectionID := ""
	if mode == session.ModeReal {
		connectionID = snap.Connection.ID()
		if connectionID == "" {
			connectionID = m.cfgConnectionID
		}
	}
	if !m.sess.StartRun(mode, connectionID) {
		return m, nil
	}
	m.junit = nil
	return m, m.requestRun(snap.Contract.ID, mode == session.ModeReal, connectionID)
}
