package graphview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MahanAzadBeast/n8n-render/internal/api"
)

func conns(pairs map[string][]string) map[string]map[string][][]api.GraphTarget {
	out := make(map[string]map[string][][]api.GraphTarget, len(pairs))
	for src, targets := range pairs {
		branch := make([]api.GraphTarget, 0, len(targets))
		for _, to := range targets {
			branch = append(branch, api.GraphTarget{Node: to})
		}
		out[src] = map[string][][]api.GraphTarget{"main": {branch}}
	}
	return out
}

func TestCompute_ReturnsEmptyLayout_When_GraphNil(t *testing.T) {
	t.Parallel()

	l := Compute(nil)
	assert.Empty(t, l.Nodes)
	assert.Empty(t, l.Edges)
}

func TestCompute_DropsEdge_When_EndpointMissing(t *testing.T) {
	t.Parallel()

	g := &api.WorkflowGraph{
		Nodes: []api.GraphNode{
			{Name: "A", Position: []float64{0, 0}},
			{Name: "B", Position: []float64{300, 0}},
		},
		Connections: conns(map[string][]string{"A": {"C"}}),
	}

	l := Compute(g)
	assert.Len(t, l.Nodes, 2, "nodes render even with no resolvable edges")
	assert.Empty(t, l.Edges)
}

func TestCompute_ScalesPositions_When_Declared(t *testing.T) {
	t.Parallel()

	g := &api.WorkflowGraph{
		Nodes: []api.GraphNode{{Name: "Webhook", Position: []float64{300, 150}}},
	}

	l := Compute(g)
	require.Len(t, l.Nodes, 1)
	assert.InDelta(t, 200.0, l.Nodes[0].X, 1e-9)
	assert.InDelta(t, 100.0, l.Nodes[0].Y, 1e-9)
}

func TestCompute_UsesFallbackPosition_When_PositionMissing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node api.GraphNode
	}{
		{name: "nil position", node: api.GraphNode{Name: "X"}},
		{name: "short position", node: api.GraphNode{Name: "X", Position: []float64{42}}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			l := Compute(&api.WorkflowGraph{Nodes: []api.GraphNode{tc.node}})
			require.Len(t, l.Nodes, 1)
			assert.InDelta(t, 100.0/1.5, l.Nodes[0].X, 1e-9)
			assert.InDelta(t, 100.0/1.5, l.Nodes[0].Y, 1e-9)
		})
	}
}

func TestCompute_KeepsLastRecord_When_NodeNamesCollide(t *testing.T) {
	t.Parallel()

	g := &api.WorkflowGraph{
		Nodes: []api.GraphNode{
			{Name: "Set", Position: []float64{0, 0}},
			{Name: "Webhook", Position: []float64{150, 0}},
			{Name: "Set", Position: []float64{600, 600}},
		},
	}

	l := Compute(g)
	require.Len(t, l.Nodes, 2)
	// First-occurrence order, last-occurrence coordinates.
	assert.Equal(t, "Set", l.Nodes[0].Name)
	assert.InDelta(t, 400.0, l.Nodes[0].X, 1e-9)
	assert.Equal(t, "Webhook", l.Nodes[1].Name)
}

func TestCompute_DeduplicatesEdges_When_BranchesRepeatTarget(t *testing.T) {
	t.Parallel()

	g := &api.WorkflowGraph{
		Nodes: []api.GraphNode{
			{Name: "A", Position: []float64{0, 0}},
			{Name: "B", Position: []float64{300, 0}},
		},
		Connections: map[string]map[string][][]api.GraphTarget{
			"A": {
				"main": {
					{{Node: "B"}, {Node: "B"}},
					{{Node: "B"}},
				},
			},
		},
	}

	l := Compute(g)
	assert.Equal(t, []Edge{{From: "A", To: "B"}}, l.Edges)
}

func TestCompute_OrdersEdgesDeterministically_When_MapOrderVaries(t *testing.T) {
	t.Parallel()

	g := &api.WorkflowGraph{
		Nodes: []api.GraphNode{
			{Name: "A", Position: []float64{0, 0}},
			{Name: "B", Position: []float64{150, 0}},
			{Name: "C", Position: []float64{300, 0}},
			{Name: "D", Position: []float64{450, 0}},
		},
		Connections: conns(map[string][]string{
			"C": {"D"},
			"A": {"B"},
			"B": {"C"},
		}),
	}

	want := []Edge{{From: "A", To: "B"}, {From: "B", To: "C"}, {From: "C", To: "D"}}
	for i := 0; i < 5; i++ {
		assert.Equal(t, want, Compute(g).Edges)
	}
}

func TestCompute_PreservesBranchOrder_When_PortFansOut(t *testing.T) {
	t.Parallel()

	g := &api.WorkflowGraph{
		Nodes: []api.GraphNode{
			{Name: "If", Position: []float64{0, 0}},
			{Name: "True", Position: []float64{300, 0}},
			{Name: "False", Position: []float64{300, 300}},
		},
		Connections: map[string]map[string][][]api.GraphTarget{
			"If": {
				"main": {
					{{Node: "True"}},
					{{Node: "False"}},
				},
			},
		},
	}

	l := Compute(g)
	assert.Equal(t, []Edge{{From: "If", To: "True"}, {From: "If", To: "False"}}, l.Edges)
}
