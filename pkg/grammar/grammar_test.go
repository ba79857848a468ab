package grammar

import (
	"reflect"
	"testing"

	"github.com/kittclouds/negra/pkg/negra"
)

func leaf(tag, word string) *negra.Node {
	return &negra.Node{Label: tag, Word: word}
}

func phrase(label string, children ...*negra.Node) *negra.Node {
	n := &negra.Node{Label: label, Children: children}
	for _, c := range children {
		c.Parent = n
	}
	return n
}

// (S (NP (DET The) (N house)) (VP (V is) (ADJ red)) (. .))
func sampleTree() *negra.Node {
	return phrase("S",
		phrase("NP", leaf("DET", "The"), leaf("N", "house")),
		phrase("VP", leaf("V", "is"), leaf("ADJ", "red")),
		leaf(".", "."),
	)
}

func TestProductions(t *testing.T) {
	prods := Productions(sampleTree())

	want := []string{
		"S -> NP VP .",
		"NP -> DET N",
		"VP -> V ADJ",
	}
	if len(prods) != len(want) {
		t.Fatalf("got %d productions, want %d", len(prods), len(want))
	}
	for i, p := range prods {
		if p.String() != want[i] {
			t.Errorf("production %d = %q, want %q", i, p.String(), want[i])
		}
	}
}

func TestProductions_LeafOnly(t *testing.T) {
	if prods := Productions(leaf("DET", "The")); prods != nil {
		t.Errorf("leaf should yield no productions, got %v", prods)
	}
	if prods := Productions(nil); prods != nil {
		t.Errorf("nil should yield no productions, got %v", prods)
	}
}

func TestRuleTable(t *testing.T) {
	table := NewRuleTable()
	table.Add(sampleTree())
	table.Add(sampleTree())

	if table.Len() != 3 {
		t.Fatalf("Len = %d, want 3", table.Len())
	}

	top := table.Top(2)
	if len(top) != 2 {
		t.Fatalf("Top(2) returned %d rules", len(top))
	}
	if top[0].Count != 2 {
		t.Errorf("top rule count = %d, want 2", top[0].Count)
	}
	// Equal counts fall back to rule order.
	if top[0].Rule != "NP -> DET N" {
		t.Errorf("top rule = %q, want %q", top[0].Rule, "NP -> DET N")
	}
}

func TestCategoryGraph_Observe(t *testing.T) {
	g := NewCategoryGraph()
	g.Observe(sampleTree())

	// S NP VP DET N V ADJ .
	if g.NodeCount() != 8 {
		t.Errorf("NodeCount = %d, want 8", g.NodeCount())
	}
	if g.EdgeCount() != 7 {
		t.Errorf("EdgeCount = %d, want 7", g.EdgeCount())
	}

	roots := g.Roots()
	if !reflect.DeepEqual(roots, []string{"S"}) {
		t.Errorf("Roots = %v, want [S]", roots)
	}

	if g.Nodes["S"].Count != 1 {
		t.Errorf("S count = %d, want 1", g.Nodes["S"].Count)
	}
}

func TestCategoryGraph_EdgeCounts(t *testing.T) {
	g := NewCategoryGraph()
	g.Observe(sampleTree())
	g.Observe(sampleTree())

	edge := g.Outbound["S"]["NP"]
	if edge == nil {
		t.Fatal("missing S -> NP edge")
	}
	if edge.Count != 2 {
		t.Errorf("S -> NP count = %d, want 2", edge.Count)
	}
	if g.EdgeCount() != 7 {
		t.Errorf("EdgeCount = %d, want 7 after re-observation", g.EdgeCount())
	}
}

func TestCategoryGraph_DegreeCentrality(t *testing.T) {
	g := NewCategoryGraph()
	g.Observe(sampleTree())

	centrality := g.DegreeCentrality()

	// S dominates three categories, DET touches one edge.
	if centrality["S"] <= centrality["DET"] {
		t.Error("S should have higher centrality than DET")
	}
}
