package embeddingtest

import (
	"context"
	"math"
)

// Static is a deterministic in-memory embedder for tests. It maps exact text
// to a scripted vector; unknown text gets a zero vector, which never reaches
// any similarity threshold.
type Static struct {
	Dim     int
	Vectors map[string][]float64
	Err     error
}

func New(dim int, vectors map[string][]float64) *Static {
	return &Static{Dim: dim, Vectors: vectors}
}

func (s *Static) Name() string   { return "static" }
func (s *Static) Dimension() int { return s.Dim }

func (s *Static) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([][]float64, len(texts))
	for i, t := range texts {
		if v, ok := s.Vectors[t]; ok {
			out[i] = v
		} else {
			out[i] = make([]float64, s.Dim)
		}
	}
	return out, nil
}

// Toward returns a two-dimensional unit vector whose cosine similarity with
// Axis() is exactly sim.
func Toward(sim float64) []float64 {
	return []float64{sim, math.Sqrt(1 - sim*sim)}
}

// Axis returns the two-dimensional reference vector for Toward.
func Axis() []float64 { return []float64{1, 0} }
