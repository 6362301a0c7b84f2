package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/MahanAzadBeast/n8n-render/internal/api"
	"github.com/MahanAzadBeast/n8n-render/internal/graphview"
	"github.com/MahanAzadBeast/n8n-render/internal/session"
)

const graphWidth, graphHeight = 76, 14

func printDesign(w io.Writer, resp *api.DesignResponse) {
	c := resp.WorkflowContract
	fmt.Fprintf(w, "contract  %s\n", c.ID)
	fmt.Fprintf(w, "name      %s\n", c.Name)
	fmt.Fprintf(w, "goal      %s\n", c.Description)
	fmt.Fprintf(w, "nodes     %d, edges %d\n", len(c.Nodes), len(c.Edges))
	fmt.Fprintf(w, "fixtures  %d, assertions %d\n",
		len(resp.FixturePack.Fixtures), len(resp.AssertionPack.Assertions))
}

func renderRun(w io.Writer, format string, snap session.State, display session.Display) error {
	switch format {
	case "table":
		renderTable(w, snap, display)
		return nil
	case "llm":
		renderLLM(w, snap, display)
		return nil
	case "json":
		return renderJSON(w, snap, display)
	default:
		return fmt.Errorf("unknown format %q (expected auto, table, llm, json)", format)
	}
}

func renderTable(w io.Writer, snap session.State, display session.Display) {
	fmt.Fprintf(w, "%s  %s\n\n", display.StatusLabel, display.Summary)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "Operator", "Message"})
	for _, row := range display.Assertions {
		mark := text.FgGreen.Sprint("✓")
		if !row.Passed {
			mark = text.FgRed.Sprint("✗")
		}
		t.AppendRow(table.Row{mark, row.Operator, row.Message})
	}
	t.Render()

	if !snap.Artifacts.Empty() {
		fmt.Fprintln(w)
		at := table.NewWriter()
		at.SetOutputMirror(w)
		at.SetStyle(table.StyleLight)
		at.AppendHeader(table.Row{"Artifact", "Kind"})
		for _, a := range snap.Artifacts.Items() {
			at.AppendRow(table.Row{a.ID, a.Kind})
		}
		at.Render()
	}

	if snap.Graph != nil {
		fmt.Fprintln(w)
		layout := graphview.Compute(snap.Graph)
		fmt.Fprintln(w, graphview.Render(layout, graphWidth, graphHeight))
	}

	if display.Meta != nil && display.Meta.N8NError != "" {
		fmt.Fprintf(w, "\nn8n error: %s\n", display.Meta.N8NError)
	}
}

// renderLLM is the terse piped-output form: one line per fact, no styling.
func renderLLM(w io.Writer, snap session.State, display session.Display) {
	fmt.Fprintf(w, "status: %s\n", display.StatusLabel)
	for _, row := range display.Assertions {
		mark := "pass"
		if !row.Passed {
			mark = "fail"
		}
		fmt.Fprintf(w, "%s %s: %s\n", mark, row.Operator, row.Message)
	}
	for _, a := range snap.Artifacts.Items() {
		fmt.Fprintf(w, "artifact %s: %s\n", a.Kind, a.ID)
	}
}

func renderJSON(w io.Writer, snap session.State, display session.Display) error {
	out := struct {
		Status     string                 `json:"status"`
		Run        *api.Run               `json:"run"`
		Artifacts  []api.Artifact         `json:"artifacts,omitempty"`
		Graph      *api.WorkflowGraph     `json:"graph,omitempty"`
		Assertions []session.AssertionRow `json:"assertions"`
	}{
		Status:     display.StatusLabel,
		Run:        snap.Run,
		Artifacts:  snap.Artifacts.Items(),
		Graph:      snap.Graph,
		Assertions: display.Assertions,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
