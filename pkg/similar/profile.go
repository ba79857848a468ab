// Package similar ranks treebank sentences by part-of-speech shape.
// A sentence's tag sequence is folded into a fixed-width profile
// vector; profiles live in an HNSW graph persisted through hackpadfs.
package similar

import (
	"hash/fnv"
	"math"
)

// Dim is the dimensionality of sentence tag profiles.
const Dim = 64

// Profile folds a tag sequence into a Dim-wide vector. Every tag and
// every adjacent tag pair is FNV-1a hashed into a bucket; the bucket
// counts are L2-normalized. Empty input yields the zero vector.
func Profile(tags []string) []float32 {
	v := make([]float32, Dim)
	if len(tags) == 0 {
		return v
	}

	for i, tag := range tags {
		v[bucket(tag)]++
		if i+1 < len(tags) {
			v[bucket(tag+" "+tags[i+1])]++
		}
	}

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm > 0 {
		inv := 1 / math.Sqrt(norm)
		for i := range v {
			v[i] = float32(float64(v[i]) * inv)
		}
	}
	return v
}

func bucket(s string) int {
	h := fnv.New32a()
	h.Write([]byte(s))
	return int(h.Sum32() % Dim)
}
