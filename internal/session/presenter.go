package session

import (
	"fmt"

	"github.com/MahanAzadBeast/n8n-render/internal/api"
	"github.com/MahanAzadBeast/n8n-render/internal/logging"
)

// ViewState describes a derived view's availability for rendering.
type ViewState string

const (
	ViewPending ViewState = "pending"
	ViewAbsent  ViewState = "absent"
	ViewLoaded  ViewState = "loaded"
)

// AssertionRow is one assertion verdict ready for display.
type AssertionRow struct {
	ID       string
	Operator string
	Passed   bool
	Message  string
}

// Display is the read-side projection of a session snapshot. It contains
// everything the rendering layer needs and nothing it may mutate.
type Display struct {
	Phase       string
	StatusLabel string
	Summary     string
	Assertions  []AssertionRow
	Error       string
	Connection  string
	Artifacts   ViewState
	Graph       ViewState
	Meta        *api.N8NMeta
}

// Present projects a snapshot into its display model. Error text is passed
// through secret redaction: backend errors can echo request fields.
func Present(st State) Display {
	d := Display{
		Phase:      st.Phase.String(),
		Error:      logging.Redact(st.Err),
		Connection: st.Connection.Label(),
		Artifacts:  viewState(st.ArtifactsPending, !st.Artifacts.Empty()),
		Graph:      viewState(st.GraphPending, st.Graph != nil),
	}
	if st.Run == nil {
		return d
	}

	// Status comes from the server verbatim; it is not recomputed from the
	// per-assertion results, which may legitimately lag behind it.
	d.StatusLabel = st.Run.Status
	d.Meta = st.Run.Meta

	passed := 0
	for _, r := range st.Run.Results {
		d.Assertions = append(d.Assertions, AssertionRow{
			ID:       r.AssertionID,
			Operator: r.Operator,
			Passed:   r.Passed,
			Message:  r.Message,
		})
		if r.Passed {
			passed++
		}
	}
	d.Summary = fmt.Sprintf("%d/%d assertions passed", passed, len(st.Run.Results))
	return d
}

func viewState(pending, loaded bool) ViewState {
	switch {
	case pending:
		return ViewPending
	case loaded:
		return ViewLoaded
	default:
		return ViewAbsent
	}
}
