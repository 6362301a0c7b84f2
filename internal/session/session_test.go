package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MahanAzadBeast/n8n-render/internal/api"
)

func designResponse(contractID string) *api.DesignResponse {
	return &api.DesignResponse{
		WorkflowContract: api.WorkflowContract{ID: contractID, Name: "Uppercase Echo"},
		FixturePack:      api.FixturePack{ID: "fp-1", WorkflowContractID: contractID},
		AssertionPack:    api.AssertionPack{ID: "ap-1", WorkflowContractID: contractID},
	}
}

func designedSession(t *testing.T, contractID string) *Session {
	t.Helper()
	s := New()
	require.True(t, s.StartDesign("On POST {msg}, reply with uppercase msg"))
	s.FinishDesign(designResponse(contractID), nil)
	require.NotNil(t, s.Snapshot().Contract)
	return s
}

func TestSession_StoresContract_When_DesignSucceeds(t *testing.T) {
	t.Parallel()

	s := New()
	require.True(t, s.StartDesign("uppercase the message"))

	snap := s.Snapshot()
	assert.Equal(t, PhaseDesigning, snap.Phase)
	assert.True(t, snap.Designing)

	s.FinishDesign(designResponse("wc-1"), nil)

	snap = s.Snapshot()
	assert.Equal(t, PhaseDesigned, snap.Phase)
	assert.False(t, snap.Designing, "designing flag must release on completion")
	require.NotNil(t, snap.Contract)
	assert.NotEmpty(t, snap.Contract.ID)
	assert.NotNil(t, snap.Fixtures)
	assert.NotNil(t, snap.Assertions)
	assert.Empty(t, snap.Err)
}

func TestSession_ReleasesBusyFlagAndSetsError_When_DesignFails(t *testing.T) {
	t.Parallel()

	s := New()
	require.True(t, s.StartDesign("anything"))
	s.FinishDesign(nil, &api.Error{StatusCode: 500, Detail: "planner exploded"})

	snap := s.Snapshot()
	assert.False(t, snap.Designing)
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, "planner exploded", snap.Err)
	assert.Nil(t, snap.Contract)
}

func TestSession_RejectsSecondDesign_When_OneIsInFlight(t *testing.T) {
	t.Parallel()

	s := New()
	require.True(t, s.StartDesign("first"))
	assert.False(t, s.StartDesign("second"))
	assert.Equal(t, "first", s.Snapshot().Goal)
}

func TestSession_ClearsPriorRunState_When_NewDesignStarts(t *testing.T) {
	t.Parallel()

	s := designedSession(t, "wc-1")
	require.True(t, s.StartRun(ModeMock, ""))
	s.FinishRun(&api.Run{ID: "run-1", Status: api.StatusPass}, nil)
	s.ResolveArtifacts("run-1", []api.Artifact{{ID: "a1", Kind: api.ArtifactKindJUnit}}, nil)
	s.ResolveGraph("run-1", &api.WorkflowGraph{}, nil)

	require.True(t, s.StartDesign("a different goal"))

	snap := s.Snapshot()
	assert.Nil(t, snap.Run)
	assert.Nil(t, snap.Contract)
	assert.True(t, snap.Artifacts.Empty())
	assert.Nil(t, snap.Graph)
}

func TestSession_IgnoresRun_When_NoContractExists(t *testing.T) {
	t.Parallel()

	s := New()
	assert.False(t, s.StartRun(ModeMock, ""), "run without a contract is a guarded no-op")

	snap := s.Snapshot()
	assert.False(t, snap.Running)
	assert.Empty(t, snap.Err, "the guard is not an error")
}

func TestSession_MarksDerivedViewsPending_When_RunSucceeds(t *testing.T) {
	t.Parallel()

	s := designedSession(t, "wc-1")
	require.True(t, s.StartRun(ModeMock, ""))

	snap := s.Snapshot()
	assert.Equal(t, PhaseRunning, snap.Phase)
	assert.True(t, snap.Running)

	run := &api.Run{
		ID:     "run-1",
		Status: api.StatusPass,
		Results: []api.AssertionResult{
			{AssertionID: "a-1", Operator: "pathTaken", Passed: true, Message: "ok"},
			{AssertionID: "a-2", Operator: "eq", Passed: true, Message: "HELLO == HELLO"},
			{AssertionID: "a-3", Operator: "bodyContains", Passed: true, Message: "'HEL' in 'HELLO'"},
		},
	}
	s.FinishRun(run, nil)

	snap = s.Snapshot()
	assert.Equal(t, PhaseCompleted, snap.Phase)
	assert.False(t, snap.Running)
	require.NotNil(t, snap.Run)
	assert.Equal(t, api.StatusPass, snap.Run.Status)
	for _, r := range snap.Run.Results {
		assert.True(t, r.Passed)
	}
	assert.True(t, snap.ArtifactsPending)
	assert.True(t, snap.GraphPending)
}

func TestSession_LeavesRunCleared_When_RunFails(t *testing.T) {
	t.Parallel()

	s := designedSession(t, "wc-1")
	require.True(t, s.StartRun(ModeMock, ""))
	s.FinishRun(&api.Run{ID: "run-ok", Status: api.StatusPass}, nil)
	s.ResolveArtifacts("run-ok", []api.Artifact{{ID: "a1", Kind: api.ArtifactKindJUnit}}, nil)

	// A second run clears the record up front; its failure must not
	// resurrect the previous result.
	require.True(t, s.StartRun(ModeMock, ""))
	assert.Nil(t, s.Snapshot().Run)
	s.FinishRun(nil, errors.New("connection refused"))

	snap := s.Snapshot()
	assert.Nil(t, snap.Run)
	assert.True(t, snap.Artifacts.Empty())
	assert.Equal(t, "connection refused", snap.Err)
	assert.Equal(t, PhaseDesigned, snap.Phase, "the contract survives a failed run")
	assert.NotNil(t, snap.Contract)
}

func TestSession_RejectsSecondRun_When_OneIsInFlight(t *testing.T) {
	t.Parallel()

	s := designedSession(t, "wc-1")
	require.True(t, s.StartRun(ModeMock, ""))
	assert.False(t, s.StartRun(ModeMock, ""))
}

func TestSession_DiscardsStaleDerivedFetch_When_RunWasSuperseded(t *testing.T) {
	t.Parallel()

	s := designedSession(t, "wc-1")
	require.True(t, s.StartRun(ModeMock, ""))
	s.FinishRun(&api.Run{ID: "run-1", Status: api.StatusPass}, nil)

	// Second run starts before the first run's artifact fetch resolves.
	require.True(t, s.StartRun(ModeMock, ""))
	s.FinishRun(&api.Run{ID: "run-2", Status: api.StatusFail}, nil)

	// The slow response for run-1 arrives late and must be dropped.
	s.ResolveArtifacts("run-1", []api.Artifact{{ID: "stale", Kind: api.ArtifactKindJUnit}}, nil)
	snap := s.Snapshot()
	assert.True(t, snap.Artifacts.Empty())
	assert.True(t, snap.ArtifactsPending, "run-2's fetch is still outstanding")

	s.ResolveArtifacts("run-2", []api.Artifact{{ID: "fresh", Kind: api.ArtifactKindJUnit}}, nil)
	got, ok := s.Snapshot().Artifacts.FindByKind(api.ArtifactKindJUnit)
	require.True(t, ok)
	assert.Equal(t, "fresh", got.ID)
}

func TestSession_DegradesViewToAbsent_When_DerivedFetchFails(t *testing.T) {
	t.Parallel()

	s := designedSession(t, "wc-1")
	require.True(t, s.StartRun(ModeMock, ""))
	s.FinishRun(&api.Run{ID: "run-1", Status: api.StatusPass}, nil)

	s.ResolveArtifacts("run-1", nil, errors.New("boom"))
	s.ResolveGraph("run-1", nil, &api.Error{StatusCode: 404, Detail: "no workflow for mock run"})

	snap := s.Snapshot()
	assert.True(t, snap.Artifacts.Empty())
	assert.Nil(t, snap.Graph)
	assert.False(t, snap.ArtifactsPending)
	assert.False(t, snap.GraphPending)
	assert.Empty(t, snap.Err, "derived-fetch failures are silent")
	assert.Equal(t, api.StatusPass, snap.Run.Status, "the run result stays authoritative")
}

func TestSession_TolerateEitherDerivedOrder_When_FetchesResolve(t *testing.T) {
	t.Parallel()

	graph := &api.WorkflowGraph{Nodes: []api.GraphNode{{Name: "Webhook"}}}

	s := designedSession(t, "wc-1")
	require.True(t, s.StartRun(ModeReal, "conn-1"))
	s.FinishRun(&api.Run{ID: "run-1", Status: api.StatusPass}, nil)

	// Graph first, artifacts still pending.
	s.ResolveGraph("run-1", graph, nil)
	snap := s.Snapshot()
	assert.NotNil(t, snap.Graph)
	assert.True(t, snap.ArtifactsPending)

	s.ResolveArtifacts("run-1", []api.Artifact{{ID: "a1", Kind: api.ArtifactKindJUnit}}, nil)
	snap = s.Snapshot()
	assert.NotNil(t, snap.Graph)
	assert.False(t, snap.ArtifactsPending)
}

func TestSession_StoresOnlyReference_When_ConnectionSaveSucceeds(t *testing.T) {
	t.Parallel()

	s := New()
	require.True(t, s.StartConnectionSave())
	assert.False(t, s.StartConnectionSave(), "save flag gates its own class")

	s.FinishConnectionSave(&api.ConnectionRef{ID: "conn-1", Persisted: false}, nil)

	snap := s.Snapshot()
	assert.False(t, snap.SavingConnection)
	ref, ok := snap.Connection.Current()
	require.True(t, ok)
	assert.Equal(t, "conn-1", ref.ID)
	assert.Equal(t, ConnectionLabelSession, snap.Connection.Label())
}

func TestSession_ReplacesConnection_When_SavedAgain(t *testing.T) {
	t.Parallel()

	s := New()
	require.True(t, s.StartConnectionSave())
	s.FinishConnectionSave(&api.ConnectionRef{ID: "conn-1", Persisted: false}, nil)

	require.True(t, s.StartConnectionSave())
	s.FinishConnectionSave(&api.ConnectionRef{ID: "conn-2", Persisted: true}, nil)

	snap := s.Snapshot()
	assert.Equal(t, "conn-2", snap.Connection.ID())
	assert.Equal(t, ConnectionLabelSaved, snap.Connection.Label())
}

func TestSession_BusyFlagsStayIndependent_When_ClassesOverlap(t *testing.T) {
	t.Parallel()

	s := designedSession(t, "wc-1")
	require.True(t, s.StartRun(ModeMock, ""))

	// A connection save does not block on the running flag, and vice versa.
	assert.True(t, s.StartConnectionSave())
	snap := s.Snapshot()
	assert.True(t, snap.Running)
	assert.True(t, snap.SavingConnection)
}

func TestSession_IgnoresFinish_When_NoMatchingStart(t *testing.T) {
	t.Parallel()

	s := New()
	s.FinishDesign(designResponse("wc-x"), nil)
	s.FinishRun(&api.Run{ID: "run-x"}, nil)
	s.FinishConnectionSave(&api.ConnectionRef{ID: "conn-x"}, nil)

	snap := s.Snapshot()
	assert.Nil(t, snap.Contract)
	assert.Nil(t, snap.Run)
	assert.Equal(t, ConnectionLabelNone, snap.Connection.Label())
}
