package negra

import (
	"reflect"
	"strings"
	"testing"
)

func sampleTree() *Node {
	np := &Node{Label: "NP", Children: []*Node{
		{Label: "DET", Word: "The"},
		{Label: "N", Word: "house"},
	}}
	vp := &Node{Label: "VP", Children: []*Node{
		{Label: "V", Word: "is"},
		{Label: "ADJ", Word: "red"},
	}}
	return &Node{Label: "S", Children: []*Node{np, vp, {Label: ".", Word: "."}}}
}

func TestNode_Leaves(t *testing.T) {
	leaves := sampleTree().Leaves()
	var words []string
	for _, l := range leaves {
		if !l.IsLeaf() {
			t.Errorf("non-leaf %s in Leaves()", l.Label)
		}
		words = append(words, l.Word)
	}
	want := []string{"The", "house", "is", "red", "."}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("expected %v, got %v", want, words)
	}
}

func TestNode_TaggedWords(t *testing.T) {
	pairs := sampleTree().TaggedWords()
	want := []Pair{
		{Word: "The", Value: "DET"},
		{Word: "house", Value: "N"},
		{Word: "is", Value: "V"},
		{Word: "red", Value: "ADJ"},
		{Word: ".", Value: "."},
	}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("expected %v, got %v", want, pairs)
	}
}

func TestNode_String(t *testing.T) {
	want := "(S (NP (DET The) (N house)) (VP (V is) (ADJ red)) (. .))"
	if got := sampleTree().String(); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestNode_Pretty(t *testing.T) {
	out := sampleTree().Pretty()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "S" {
		t.Errorf("expected bare root line, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  NP") {
		t.Errorf("expected indented NP, got %q", lines[1])
	}
	if !strings.Contains(lines[2], `"The"`) {
		t.Errorf("expected quoted leaf word, got %q", lines[2])
	}
}
