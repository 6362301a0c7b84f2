package graphview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ReturnsEmptyString_When_NoNodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Render(Layout{}, 80, 20))
}

func TestRender_DrawsLabeledBoxes_When_NodesPresent(t *testing.T) {
	t.Parallel()

	l := Layout{
		Nodes: []Node{
			{Name: "Webhook", X: 0, Y: 0},
			{Name: "Respond", X: 400, Y: 100},
		},
		Edges: []Edge{{From: "Webhook", To: "Respond"}},
	}

	out := Render(l, 80, 16)
	require.NotEmpty(t, out)
	assert.Contains(t, out, "Webhook")
	assert.Contains(t, out, "Respond")
	assert.Contains(t, out, string(boxTopLeft))
	assert.Contains(t, out, string(edgeDot), "connected nodes get a dotted line")

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 80)
	}
}

func TestRender_TruncatesLabel_When_WiderThanBox(t *testing.T) {
	t.Parallel()

	long := "Extremely Long Node Name That Cannot Fit"
	out := Render(Layout{Nodes: []Node{{Name: long, X: 100, Y: 100}}}, 60, 10)

	assert.NotContains(t, out, long)
	assert.Contains(t, out, "…")
}

func TestRender_StaysInBounds_When_CanvasTiny(t *testing.T) {
	t.Parallel()

	l := Layout{
		Nodes: []Node{
			{Name: "A", X: 0, Y: 0},
			{Name: "B", X: 1000, Y: 1000},
		},
		Edges: []Edge{{From: "A", To: "B"}},
	}

	// Below the floor; Render clamps to 20x6 and must not panic.
	out := Render(l, 1, 1)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 6)
}

func TestRender_HandlesDegenerateExtent_When_NodesShareALine(t *testing.T) {
	t.Parallel()

	l := Layout{
		Nodes: []Node{
			{Name: "One", X: 50, Y: 50},
			{Name: "Two", X: 50, Y: 50},
		},
	}

	out := Render(l, 60, 10)
	// Boxes overlap at the shared center; the later one wins the cells.
	assert.Contains(t, out, "Two")
}
