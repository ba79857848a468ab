package negra

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeBuilder reconstructs constituent trees from grids. It resolves
// the three columns tree building needs once, up front; build one with
// NewTreeBuilder.
type TreeBuilder struct {
	word   int
	tag    int
	parent int
}

// NewTreeBuilder resolves the word, part-of-speech and parent-pointer
// columns against the schema. An undeclared column fails here.
func NewTreeBuilder(s *Schema) (*TreeBuilder, error) {
	word, err := s.Resolve(ColumnWord)
	if err != nil {
		return nil, err
	}
	tag, err := s.Resolve(ColumnPOS)
	if err != nil {
		return nil, err
	}
	parent, err := s.Resolve(ColumnParent)
	if err != nil {
		return nil, err
	}
	return &TreeBuilder{word: word, tag: tag, parent: parent}, nil
}

// Build reassembles one grid's parent-pointer encoding into its
// sentence tree and returns the root. A grid that cannot be
// reassembled returns a *MalformedSentenceError instead; the failure
// is local to this sentence.
//
// Tokens of one immediate constituent are assumed contiguous in the
// leaf sequence. Genuinely discontinuous constituents come out as a
// structurally valid but not linguistically faithful tree.
func (tb *TreeBuilder) Build(g Grid) (*Node, error) {
	// Internal-node rows are a contiguous suffix of the grid. The
	// first row from the back whose word field lacks the '#' prefix
	// ends the run.
	split := len(g)
	for split > 0 && strings.HasPrefix(g[split-1].Field(tb.word), "#") {
		split--
	}
	leafRows, nodeRows := g[:split], g[split:]

	// Arena of internal nodes plus a separate parent-pointer table,
	// so a dangling pointer is a lookup failure, not a crash. Walked
	// backward: the true sentence root is the last internal-node row
	// in the file, so the backward scan meets it first and any later
	// zero pointer is folded under it.
	nodes := make(map[int]*Node, len(nodeRows))
	parents := make(map[int]int, len(nodeRows))
	top := -1
	for i := len(nodeRows) - 1; i >= 0; i-- {
		row := nodeRows[i]
		id, err := strconv.Atoi(strings.TrimPrefix(row.Field(tb.word), "#"))
		if err != nil || id <= 0 {
			return nil, &MalformedSentenceError{Reason: fmt.Sprintf("bad node id %q", row.Field(tb.word))}
		}
		if _, dup := nodes[id]; dup {
			return nil, &MalformedSentenceError{Reason: fmt.Sprintf("duplicate node id #%d", id)}
		}
		ptr, err := strconv.Atoi(row.Field(tb.parent))
		if err != nil {
			return nil, &MalformedSentenceError{Reason: fmt.Sprintf("node #%d: bad parent pointer %q", id, row.Field(tb.parent))}
		}
		if ptr == 0 {
			if top < 0 {
				top = id
			}
			ptr = top
		}
		nodes[id] = &Node{Label: row.Field(tb.tag)}
		parents[id] = ptr
	}
	if top < 0 {
		return nil, &MalformedSentenceError{Reason: "no root node"}
	}

	// Attach leaves in file order. A run of leaves sharing one parent
	// ends when the parent changes; at that point the finished
	// constituent bubbles up its ancestor chain into the tree.
	lastParent := -1
	for _, row := range leafRows {
		word := row.Field(tb.word)
		if word == "" {
			return nil, &MalformedSentenceError{Reason: "empty word field"}
		}
		ptr, err := strconv.Atoi(row.Field(tb.parent))
		if err != nil {
			return nil, &MalformedSentenceError{Reason: fmt.Sprintf("leaf %q: bad parent pointer %q", word, row.Field(tb.parent))}
		}
		if ptr == 0 {
			// Tokens outside the sentence tree hang off the root.
			ptr = top
		}
		parent, ok := nodes[ptr]
		if !ok {
			return nil, &MalformedSentenceError{Reason: fmt.Sprintf("leaf %q: dangling parent pointer %d", word, ptr)}
		}
		if ptr != lastParent && lastParent >= 0 {
			if err := bubbleUp(nodes, parents, lastParent, top); err != nil {
				return nil, err
			}
		}
		leaf := &Node{Label: row.Field(tb.tag), Word: word, Parent: parent}
		parent.Children = append(parent.Children, leaf)
		lastParent = ptr
	}
	// Close the spine under the last run of leaves.
	if lastParent >= 0 {
		if err := bubbleUp(nodes, parents, lastParent, top); err != nil {
			return nil, err
		}
	}
	return nodes[top], nil
}

// bubbleUp attaches the subtree rooted at id to its ancestor chain,
// stopping at the top node. A node already attached stays where it is,
// so repeated bubbles over a shared spine never duplicate children.
func bubbleUp(nodes map[int]*Node, parents map[int]int, id, top int) error {
	for steps := 0; id != top; steps++ {
		if steps >= len(nodes) {
			return &MalformedSentenceError{Reason: fmt.Sprintf("parent pointer cycle at node #%d", id)}
		}
		pid := parents[id]
		parent, ok := nodes[pid]
		if !ok {
			return &MalformedSentenceError{Reason: fmt.Sprintf("node #%d: dangling parent pointer %d", id, pid)}
		}
		child := nodes[id]
		if child.Parent == nil {
			child.Parent = parent
			parent.Children = append(parent.Children, child)
		}
		id = pid
	}
	return nil
}
