// Package interaction holds directed interaction networks assembled from
// enrichment joins (regulatory, targeting, and protein–protein relations).
package interaction

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// Edge relation kinds attached by the enrichment joins.
const (
	KindRegulates = "regulates"
	KindTargets   = "targets"
	KindBinds     = "binds"
)

type edgeKey struct {
	from, to int64
}

// Network is a directed graph over string-named molecules (genes, miRNAs,
// lncRNAs, proteins) with a relation kind per edge. It wraps a gonum
// directed graph and interns names to node ids.
type Network struct {
	g     *simple.DirectedGraph
	ids   map[string]int64
	names map[int64]string
	kinds map[edgeKey]string
}

// NewNetwork creates an empty network.
func NewNetwork() *Network {
	return &Network{
		g:     simple.NewDirectedGraph(),
		ids:   make(map[string]int64),
		names: make(map[int64]string),
		kinds: make(map[edgeKey]string),
	}
}

func (n *Network) node(name string) int64 {
	if id, ok := n.ids[name]; ok {
		return id
	}
	nd := n.g.NewNode()
	n.g.AddNode(nd)
	id := nd.ID()
	n.ids[name] = id
	n.names[id] = name
	return id
}

// AddEdge adds a directed edge with the given relation kind. Self loops are
// dropped; a repeated edge keeps the latest kind.
func (n *Network) AddEdge(from, to, kind string) {
	if from == to || from == "" || to == "" {
		return
	}
	f := n.node(from)
	t := n.node(to)
	n.g.SetEdge(simple.Edge{F: simple.Node(f), T: simple.Node(t)})
	n.kinds[edgeKey{f, t}] = kind
}

// HasEdge reports whether a directed edge exists.
func (n *Network) HasEdge(from, to string) bool {
	f, ok := n.ids[from]
	if !ok {
		return false
	}
	t, ok := n.ids[to]
	if !ok {
		return false
	}
	return n.g.HasEdgeFromTo(f, t)
}

// EdgeKind returns the relation kind of a directed edge, if present.
func (n *Network) EdgeKind(from, to string) (string, bool) {
	f, okF := n.ids[from]
	t, okT := n.ids[to]
	if !okF || !okT {
		return "", false
	}
	kind, ok := n.kinds[edgeKey{f, t}]
	return kind, ok
}

// Targets returns the sorted names reachable from the given node by one edge.
func (n *Network) Targets(from string) []string {
	f, ok := n.ids[from]
	if !ok {
		return nil
	}
	var out []string
	it := n.g.From(f)
	for it.Next() {
		out = append(out, n.names[it.Node().ID()])
	}
	sort.Strings(out)
	return out
}

// Nodes returns all node names, sorted.
func (n *Network) Nodes() []string {
	out := make([]string, 0, len(n.ids))
	for name := range n.ids {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int {
	return len(n.ids)
}

// EdgeCount returns the number of directed edges.
func (n *Network) EdgeCount() int {
	return len(n.kinds)
}

// Merge copies every edge of other into this network.
func (n *Network) Merge(other *Network) {
	if other == nil {
		return
	}
	for key, kind := range other.kinds {
		n.AddEdge(other.names[key.from], other.names[key.to], kind)
	}
}
