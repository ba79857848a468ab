package similar

import (
	"math"
	"reflect"
	"testing"
)

func TestProfile_Deterministic(t *testing.T) {
	tags := []string{"DET", "N", "V", "ADJ", "."}

	a := Profile(tags)
	b := Profile(tags)

	if len(a) != Dim {
		t.Fatalf("expected %d dimensions, got %d", Dim, len(a))
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same tag sequence should produce identical profiles")
	}
}

func TestProfile_Normalized(t *testing.T) {
	p := Profile([]string{"DET", "N", "V"})

	var norm float64
	for _, x := range p {
		norm += float64(x) * float64(x)
	}
	if math.Abs(norm-1.0) > 1e-3 {
		t.Errorf("expected unit norm, got %f", norm)
	}
	for i, x := range p {
		if x < 0 {
			t.Errorf("bucket %d is negative: %f", i, x)
		}
	}
}

func TestProfile_Empty(t *testing.T) {
	p := Profile(nil)

	if len(p) != Dim {
		t.Fatalf("expected %d dimensions, got %d", Dim, len(p))
	}
	for i, x := range p {
		if x != 0 {
			t.Errorf("bucket %d should be zero, got %f", i, x)
		}
	}
}

func TestProfile_SingleTag(t *testing.T) {
	p := Profile([]string{"PTKANT"})

	nonzero := 0
	for _, x := range p {
		if x != 0 {
			nonzero++
		}
	}
	// One unigram, no bigram: exactly one bucket carries all the mass.
	if nonzero != 1 {
		t.Fatalf("expected 1 nonzero bucket, got %d", nonzero)
	}
	for _, x := range p {
		if x != 0 && math.Abs(float64(x)-1.0) > 1e-6 {
			t.Errorf("single bucket should hold weight 1.0, got %f", x)
		}
	}
}
