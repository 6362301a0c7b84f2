// Package graphview lays out and renders the generated workflow's node
// graph as a terminal mini-map.
//
// The descriptor comes from the n8n instance and is outside this client's
// control: node names may collide, connection endpoints may reference nodes
// that do not exist, and positions may be missing. Layout absorbs all of
// that — every node gets a drawable coordinate and every unresolvable edge
// is dropped silently.
package graphview

import (
	"sort"

	"github.com/MahanAzadBeast/n8n-render/internal/api"
)

// Editor coordinates are denser than terminal cells; positions are divided
// by scaleDivisor before drawing. Nodes without a declared position land at
// the fallback coordinate so they are always drawable.
const (
	scaleDivisor = 1.5
	fallbackX    = 100.0
	fallbackY    = 100.0
)

// Node is a positioned graph node in draw coordinates.
type Node struct {
	Name string
	X    float64
	Y    float64
}

// Edge connects two resolved node names.
type Edge struct {
	From string
	To   string
}

// Layout is the renderable result: positioned nodes and a deduplicated
// edge list with both endpoints guaranteed present in Nodes.
type Layout struct {
	Nodes []Node
	Edges []Edge
}

// Compute builds a Layout from a workflow graph descriptor. A nil
// descriptor yields an empty layout.
func Compute(g *api.WorkflowGraph) Layout {
	if g == nil {
		return Layout{}
	}

	// Name lookup, last-write-wins on duplicates. The node list keeps the
	// first-occurrence order with the winning record.
	byName := make(map[string]api.GraphNode, len(g.Nodes))
	var order []string
	for _, n := range g.Nodes {
		if _, seen := byName[n.Name]; !seen {
			order = append(order, n.Name)
		}
		byName[n.Name] = n
	}

	var out Layout
	for _, name := range order {
		out.Nodes = append(out.Nodes, placeNode(byName[name]))
	}
	out.Edges = resolveEdges(g.Connections, byName)
	return out
}

func placeNode(n api.GraphNode) Node {
	x, y := fallbackX, fallbackY
	if len(n.Position) >= 2 {
		x, y = n.Position[0], n.Position[1]
	}
	return Node{Name: n.Name, X: x / scaleDivisor, Y: y / scaleDivisor}
}

// resolveEdges flattens the port/branch adjacency structure into a flat
// edge list. Iteration is sorted by source then port name so the result is
// deterministic; branch and within-branch order are preserved as given.
// Edges with a missing endpoint are dropped, and duplicates collapse to
// their first occurrence.
func resolveEdges(conns map[string]map[string][][]api.GraphTarget, byName map[string]api.GraphNode) []Edge {
	sources := make([]string, 0, len(conns))
	for src := range conns {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	var edges []Edge
	seen := make(map[Edge]bool)
	for _, src := range sources {
		ports := conns[src]
		portNames := make([]string, 0, len(ports))
		for port := range ports {
			portNames = append(portNames, port)
		}
		sort.Strings(portNames)

		for _, port := range portNames {
			for _, branch := range ports[port] {
				for _, target := range branch {
					if _, ok := byName[src]; !ok {
						continue
					}
					if _, ok := byName[target.Node]; !ok {
						continue
					}
					e := Edge{From: src, To: target.Node}
					if seen[e] {
						continue
					}
					seen[e] = true
					edges = append(edges, e)
				}
			}
		}
	}
	return edges
}
