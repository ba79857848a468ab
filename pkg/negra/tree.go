package negra

import (
	"fmt"
	"strings"
)

// Node is one constituent of a sentence tree. Internal nodes carry the
// constituent category in Label; terminals additionally carry the
// surface Word. A node is a leaf iff Word is non-empty.
type Node struct {
	Label    string  `json:"label"`
	Word     string  `json:"word,omitempty"`
	Children []*Node `json:"children,omitempty"`
	Parent   *Node   `json:"-"` // Backpointer (cycle) - ignore in JSON
}

// IsLeaf reports whether the node is a terminal (word, tag) pair.
func (n *Node) IsLeaf() bool {
	return n.Word != ""
}

// Leaves returns the terminal nodes in left-to-right order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.collectLeaves(&out)
	return out
}

func (n *Node) collectLeaves(out *[]*Node) {
	if n.IsLeaf() {
		*out = append(*out, n)
		return
	}
	for _, child := range n.Children {
		child.collectLeaves(out)
	}
}

// TaggedWords returns the leaf (word, tag) pairs in tree order.
func (n *Node) TaggedWords() []Pair {
	leaves := n.Leaves()
	pairs := make([]Pair, len(leaves))
	for i, leaf := range leaves {
		pairs[i] = Pair{Word: leaf.Word, Value: leaf.Label}
	}
	return pairs
}

// String renders the single-line bracketed form, eg.
//
//	(S (NP (DET The) (N house)) (VP (V is) (ADJ red)) (. .))
func (n *Node) String() string {
	var sb strings.Builder
	n.writeBracketed(&sb)
	return sb.String()
}

func (n *Node) writeBracketed(sb *strings.Builder) {
	if n.IsLeaf() {
		fmt.Fprintf(sb, "(%s %s)", n.Label, n.Word)
		return
	}
	sb.WriteByte('(')
	sb.WriteString(n.Label)
	for _, child := range n.Children {
		sb.WriteByte(' ')
		child.writeBracketed(sb)
	}
	sb.WriteByte(')')
}

// Pretty provides an indented tree view for debugging.
func (n *Node) Pretty() string {
	var sb strings.Builder
	n.printRecursive(&sb, 0)
	return sb.String()
}

func (n *Node) printRecursive(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsLeaf() {
		fmt.Fprintf(sb, "%s%s %q\n", indent, n.Label, n.Word)
		return
	}
	fmt.Fprintf(sb, "%s%s\n", indent, n.Label)
	for _, child := range n.Children {
		child.printRecursive(sb, depth+1)
	}
}
