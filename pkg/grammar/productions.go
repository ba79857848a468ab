// Package grammar extracts phrase-structure rules from decoded
// constituent trees and aggregates them across a corpus.
package grammar

import (
	"sort"
	"strings"

	"github.com/kittclouds/negra/pkg/negra"
)

// Production is one phrase-structure rule: a parent label rewriting
// to its ordered child labels. Leaves contribute their tag.
type Production struct {
	Lhs string   `json:"lhs"`
	Rhs []string `json:"rhs"`
}

func (p Production) String() string {
	return p.Lhs + " -> " + strings.Join(p.Rhs, " ")
}

// Productions collects one Production per internal node, parent
// before children, children left to right.
func Productions(root *negra.Node) []Production {
	var out []Production
	collectProductions(root, &out)
	return out
}

func collectProductions(n *negra.Node, out *[]Production) {
	if n == nil || n.IsLeaf() {
		return
	}

	rhs := make([]string, len(n.Children))
	for i, c := range n.Children {
		rhs[i] = c.Label
	}
	*out = append(*out, Production{Lhs: n.Label, Rhs: rhs})

	for _, c := range n.Children {
		collectProductions(c, out)
	}
}

// RuleCount pairs a rendered rule with its corpus frequency.
type RuleCount struct {
	Rule  string `json:"rule"`
	Count int    `json:"count"`
}

// RuleTable counts production occurrences across sentences.
type RuleTable struct {
	counts map[string]int
}

// NewRuleTable creates an empty table.
func NewRuleTable() *RuleTable {
	return &RuleTable{counts: make(map[string]int)}
}

// Add folds every production of one tree into the table.
func (t *RuleTable) Add(root *negra.Node) {
	for _, p := range Productions(root) {
		t.counts[p.String()]++
	}
}

// Len returns the number of distinct rules seen.
func (t *RuleTable) Len() int {
	return len(t.counts)
}

// Top returns the n most frequent rules, ties broken lexicographically.
// n <= 0 returns everything.
func (t *RuleTable) Top(n int) []RuleCount {
	ranked := make([]RuleCount, 0, len(t.counts))
	for r, c := range t.counts {
		ranked = append(ranked, RuleCount{Rule: r, Count: c})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Rule < ranked[j].Rule
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
