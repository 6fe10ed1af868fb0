package memstore

import "context"

// FakeEmbedder is a deterministic in-process EmbeddingProvider used in
// tests and as the zero-config default; it needs no network access.
type FakeEmbedder struct {
	dimension int
}

// NewFakeEmbedder constructs a FakeEmbedder producing vectors of dimension.
func NewFakeEmbedder(dimension int) *FakeEmbedder {
	if dimension <= 0 {
		dimension = 768
	}
	return &FakeEmbedder{dimension: dimension}
}

// Embed hashes text into a fixed-dimension vector, deterministically.
func (f *FakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, f.dimension)
	if len(text) == 0 {
		return vec, nil
	}
	for i := range vec {
		b := text[i%len(text)]
		vec[i] = float32(b) / 255.0
	}
	return vec, nil
}

// Dimension reports the vector width Embed produces.
func (f *FakeEmbedder) Dimension() int { return f.dimension }
