package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MahanAzadBeast/n8n-render/internal/api"
)

func TestPresent_ProjectsVerdicts_When_RunCompleted(t *testing.T) {
	t.Parallel()

	st := State{
		Phase: PhaseCompleted,
		Run: &api.Run{
			ID:     "run-1",
			Status: api.StatusFail,
			Results: []api.AssertionResult{
				{AssertionID: "a-1", Operator: "pathTaken", Passed: true, Message: "ok"},
				{AssertionID: "a-2", Operator: "eq", Passed: false, Message: "HELLO != hello"},
			},
			Meta: &api.N8NMeta{WorkflowID: "wf-9"},
		},
	}

	d := Present(st)
	assert.Equal(t, "completed", d.Phase)
	assert.Equal(t, api.StatusFail, d.StatusLabel, "server status is shown verbatim")
	assert.Equal(t, "1/2 assertions passed", d.Summary)
	require.Len(t, d.Assertions, 2)
	assert.True(t, d.Assertions[0].Passed)
	assert.False(t, d.Assertions[1].Passed)
	require.NotNil(t, d.Meta)
	assert.Equal(t, "wf-9", d.Meta.WorkflowID)
}

func TestPresent_ShowsServerStatus_When_ResultsDisagree(t *testing.T) {
	t.Parallel()

	// A server may report PASS with an empty result list; the client does
	// not second-guess it.
	st := State{Phase: PhaseCompleted, Run: &api.Run{ID: "run-1", Status: api.StatusPass}}

	d := Present(st)
	assert.Equal(t, api.StatusPass, d.StatusLabel)
	assert.Equal(t, "0/0 assertions passed", d.Summary)
	assert.Empty(t, d.Assertions)
}

func TestPresent_MapsViewStates_When_FetchesProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		st   State
		arts ViewState
		grph ViewState
	}{
		{
			name: "both pending",
			st:   State{ArtifactsPending: true, GraphPending: true},
			arts: ViewPending,
			grph: ViewPending,
		},
		{
			name: "artifacts loaded graph absent",
			st: State{
				Artifacts: NewArtifactIndex([]api.Artifact{{ID: "a1"}}),
			},
			arts: ViewLoaded,
			grph: ViewAbsent,
		},
		{
			name: "graph loaded",
			st:   State{Graph: &api.WorkflowGraph{}},
			arts: ViewAbsent,
			grph: ViewLoaded,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := Present(tc.st)
			assert.Equal(t, tc.arts, d.Artifacts)
			assert.Equal(t, tc.grph, d.Graph)
		})
	}
}

func TestPresent_RedactsSecrets_When_ErrorEchoesThem(t *testing.T) {
	t.Parallel()

	st := State{
		Phase: PhaseIdle,
		Err:   "save failed: api_key=n8n_live_abc123 rejected",
	}

	d := Present(st)
	assert.NotContains(t, d.Error, "n8n_live_abc123")
	assert.Contains(t, d.Error, "save failed")
}

func TestPresent_LabelsConnection_When_Stored(t *testing.T) {
	t.Parallel()

	st := State{Connection: ConnectionStore{ref: &api.ConnectionRef{ID: "conn-1", Persisted: true}}}
	d := Present(st)
	assert.Equal(t, ConnectionLabelSaved, d.Connection)

	assert.Equal(t, ConnectionLabelNone, Present(State{}).Connection)
}
