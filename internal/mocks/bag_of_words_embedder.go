package mocks

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"
)

// BagOfWordsEmbedder is a deterministic stand-in for a real embedding model:
// each lowercased word is hashed into one of Dim buckets. Texts sharing words
// get close vectors and identical texts get identical vectors.
type BagOfWordsEmbedder struct {
	Dim   int
	Calls int
}

func (b *BagOfWordsEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	b.Calls++

	dim := b.Dim
	if dim <= 0 {
		dim = 256
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, dim)
		words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		for _, w := range words {
			h := fnv.New32a()
			h.Write([]byte(w))
			v[h.Sum32()%uint32(dim)]++
		}
		vectors[i] = v
	}

	return vectors, nil
}
