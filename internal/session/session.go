// Package session holds the client-side orchestration state machine.
//
// A Session is the single owner of the current goal/contract/run tuple and
// every view derived from it. All mutation goes through paired Start/Finish
// (or Resolve) events, mirroring how the backend calls actually resolve:
// the event loop calls StartX before issuing a request and FinishX with the
// outcome. Each event replaces the whole state snapshot, so a reader never
// observes a run paired with another run's artifacts.
package session

import (
	"github.com/MahanAzadBeast/n8n-render/internal/api"
)

// Phase is the coarse lifecycle position of the session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDesigning
	PhaseDesigned
	PhaseRunning
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseDesigning:
		return "designing"
	case PhaseDesigned:
		return "designed"
	case PhaseRunning:
		return "running"
	case PhaseCompleted:
		return "completed"
	default:
		return "idle"
	}
}

// Mode selects how a test run executes.
type Mode string

const (
	// ModeMock executes locally on the backend with no external calls.
	ModeMock Mode = "mock"
	// ModeReal executes against a real n8n instance via a saved connection.
	ModeReal Mode = "real"
)

// State is one immutable snapshot of the session. Pointer and slice fields
// are read-only views; events build a fresh State rather than editing one
// in place.
type State struct {
	Phase Phase
	Goal  string

	Contract   *api.WorkflowContract
	Fixtures   *api.FixturePack
	Assertions *api.AssertionPack

	Run  *api.Run
	Mode Mode

	Artifacts        ArtifactIndex
	ArtifactsPending bool
	Graph            *api.WorkflowGraph
	GraphPending     bool

	Connection ConnectionStore

	// Busy flags, one per operation class. They gate only their own class.
	Designing        bool
	Running          bool
	SavingConnection bool

	// Err is the last visible error, cleared when a new primary action
	// starts. Derived-fetch failures never land here.
	Err string
}

// Session applies events to the current state.
type Session struct {
	state State
}

// New returns an idle session.
func New() *Session {
	return &Session{}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	return s.state
}

// StartDesign begins a design request for goal. It clears the previous
// contract, run, and derived views. Returns false while a design is already
// in flight; the caller must not issue the request in that case.
func (s *Session) StartDesign(goal string) bool {
	if s.state.Designing {
		return false
	}
	next := s.state
	next.Phase = PhaseDesigning
	next.Goal = goal
	next.Contract = nil
	next.Fixtures = nil
	next.Assertions = nil
	next.Run = nil
	next.Artifacts = ArtifactIndex{}
	next.ArtifactsPending = false
	next.Graph = nil
	next.GraphPending = false
	next.Designing = true
	next.Err = ""
	s.state = next
	return true
}

// FinishDesign records the design outcome. The designing flag is released
// regardless of outcome.
func (s *Session) FinishDesign(resp *api.DesignResponse, err error) {
	if !s.state.Designing {
		return
	}
	next := s.state
	next.Designing = false
	if err != nil {
		next.Phase = PhaseIdle
		next.Err = api.Message(err)
		s.state = next
		return
	}
	contract := resp.WorkflowContract
	fixtures := resp.FixturePack
	assertions := resp.AssertionPack
	next.Phase = PhaseDesigned
	next.Contract = &contract
	next.Fixtures = &fixtures
	next.Assertions = &assertions
	s.state = next
}

// StartRun begins a test run of the current contract. Without a contract it
// is a guarded no-op, not an error. The previous run record and its derived
// views are cleared up front so a failed run cannot resurrect them.
func (s *Session) StartRun(mode Mode, connectionID string) bool {
	if s.state.Contract == nil || s.state.Running {
		return false
	}
	_ = connectionID // carried by the request, not the state
	next := s.state
	next.Phase = PhaseRunning
	next.Mode = mode
	next.Run = nil
	next.Artifacts = ArtifactIndex{}
	next.ArtifactsPending = false
	next.Graph = nil
	next.GraphPending = false
	next.Running = true
	next.Err = ""
	s.state = next
	return true
}

// FinishRun records the run outcome and, on success, marks both derived
// views pending so the caller fans out the artifact and graph fetches.
// The running flag is released regardless of outcome.
func (s *Session) FinishRun(run *api.Run, err error) {
	if !s.state.Running {
		return
	}
	next := s.state
	next.Running = false
	if err != nil {
		next.Phase = PhaseDesigned
		next.Err = api.Message(err)
		s.state = next
		return
	}
	next.Phase = PhaseCompleted
	next.Run = run
	next.ArtifactsPending = run.ID != ""
	next.GraphPending = run.ID != ""
	s.state = next
}

// ResolveArtifacts delivers the artifact list fetched for runID. A response
// for a superseded run is discarded, so a slow fetch can never overwrite a
// newer run's view. A failed fetch degrades to an empty index; the run's
// pass/fail result stays authoritative.
func (s *Session) ResolveArtifacts(runID string, artifacts []api.Artifact, err error) {
	if s.state.Run == nil || s.state.Run.ID != runID {
		return
	}
	next := s.state
	next.ArtifactsPending = false
	if err != nil {
		next.Artifacts = ArtifactIndex{}
	} else {
		next.Artifacts = NewArtifactIndex(artifacts)
	}
	s.state = next
}

// ResolveGraph delivers the workflow graph fetched for runID, with the same
// staleness and absent-on-failure rules as ResolveArtifacts. Mock runs have
// no graph; the backend's error simply leaves the view absent.
func (s *Session) ResolveGraph(runID string, graph *api.WorkflowGraph, err error) {
	if s.state.Run == nil || s.state.Run.ID != runID {
		return
	}
	next := s.state
	next.GraphPending = false
	if err != nil {
		next.Graph = nil
	} else {
		next.Graph = graph
	}
	s.state = next
}

// StartConnectionSave begins a credential save. Returns false while one is
// already in flight.
func (s *Session) StartConnectionSave() bool {
	if s.state.SavingConnection {
		return false
	}
	next := s.state
	next.SavingConnection = true
	next.Err = ""
	s.state = next
	return true
}

// FinishConnectionSave records the save outcome. Only the returned
// reference is stored; the secret never enters session state.
func (s *Session) FinishConnectionSave(ref *api.ConnectionRef, err error) {
	if !s.state.SavingConnection {
		return
	}
	next := s.state
	next.SavingConnection = false
	if err != nil {
		next.Err = api.Message(err)
		s.state = next
		return
	}
	next.Connection = ConnectionStore{ref: ref}
	s.state = next
}
