package grammar

import (
	"sort"

	"github.com/kittclouds/negra/pkg/negra"
)

// CategoryNode is one constituent label with its observation count.
type CategoryNode struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CategoryEdge counts how often a parent label dominated a child label.
type CategoryEdge struct {
	Count int `json:"count"`
}

// CategoryGraph is a directed graph over constituent labels. An edge
// A -> B records that a node labeled A dominated a node labeled B.
type CategoryGraph struct {
	// Node storage: label -> node
	Nodes map[string]*CategoryNode `json:"nodes"`

	// Adjacency lists: parent label -> child label -> edge
	Outbound map[string]map[string]*CategoryEdge `json:"outbound"`
	Inbound  map[string]map[string]*CategoryEdge `json:"inbound"`
}

// NewCategoryGraph creates an empty graph.
func NewCategoryGraph() *CategoryGraph {
	return &CategoryGraph{
		Nodes:    make(map[string]*CategoryNode),
		Outbound: make(map[string]map[string]*CategoryEdge),
		Inbound:  make(map[string]map[string]*CategoryEdge),
	}
}

// EnsureNode adds a label if it doesn't exist, returns the existing
// node otherwise.
func (g *CategoryGraph) EnsureNode(label string) *CategoryNode {
	if existing, exists := g.Nodes[label]; exists {
		return existing
	}

	node := &CategoryNode{Label: label}
	g.Nodes[label] = node
	return node
}

// AddEdge records one parent -> child observation, creating the nodes
// and the edge as needed.
func (g *CategoryGraph) AddEdge(parent, child string) {
	g.EnsureNode(parent)
	g.EnsureNode(child)

	if g.Outbound[parent] == nil {
		g.Outbound[parent] = make(map[string]*CategoryEdge)
	}
	edge := g.Outbound[parent][child]
	if edge == nil {
		edge = &CategoryEdge{}
		g.Outbound[parent][child] = edge

		// Maintain reverse index
		if g.Inbound[child] == nil {
			g.Inbound[child] = make(map[string]*CategoryEdge)
		}
		g.Inbound[child][parent] = edge
	}
	edge.Count++
}

// Observe folds one tree into the graph: every node bumps its label
// count, every parent-child pair bumps an edge.
func (g *CategoryGraph) Observe(root *negra.Node) {
	if root == nil {
		return
	}
	g.EnsureNode(root.Label).Count++
	for _, c := range root.Children {
		g.AddEdge(root.Label, c.Label)
		g.Observe(c)
	}
}

// NodeCount returns the number of distinct labels.
func (g *CategoryGraph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of distinct parent -> child pairs.
func (g *CategoryGraph) EdgeCount() int {
	count := 0
	for _, targets := range g.Outbound {
		count += len(targets)
	}
	return count
}

// DegreeCentrality computes (in+out)/(2*(n-1)) for each label.
func (g *CategoryGraph) DegreeCentrality() map[string]float64 {
	n := len(g.Nodes)
	if n <= 1 {
		result := make(map[string]float64)
		for label := range g.Nodes {
			result[label] = 0.0
		}
		return result
	}

	normalizer := 2.0 * float64(n-1)
	result := make(map[string]float64, n)

	for label := range g.Nodes {
		outDegree := len(g.Outbound[label])
		inDegree := len(g.Inbound[label])
		result[label] = float64(outDegree+inDegree) / normalizer
	}

	return result
}

// Roots returns the labels never observed as a child, sorted.
func (g *CategoryGraph) Roots() []string {
	var roots []string
	for label := range g.Nodes {
		if len(g.Inbound[label]) == 0 {
			roots = append(roots, label)
		}
	}
	sort.Strings(roots)
	return roots
}
