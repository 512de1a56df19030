package matcher

import (
	"context"
	"math"
	"sort"

	"github.com/RudrakshSJoshi/graph-diagnosis/internal/chunker"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/domain"
)

// DefaultThreshold is the minimum cosine similarity for a sentence to count
// as a mention of a symptom.
const DefaultThreshold = 0.45

// Matcher finds symptom mentions in free text by comparing sentence embeddings
// against the precomputed symptom index.
type Matcher struct {
	embedder domain.Embedder
}

func New(embedder domain.Embedder) *Matcher {
	return &Matcher{embedder: embedder}
}

// Match segments the query into sentences, embeds them in one batch and
// returns every (symptom, disease) pair whose best sentence similarity is at
// or above threshold. Pairs matched by several sentences keep only the
// maximum similarity. The result is sorted by descending similarity; ties
// keep first-seen order.
func (m *Matcher) Match(ctx context.Context, query string, index *domain.SymptomIndex, threshold float64) ([]domain.MatchedSymptom, error) {
	sentences := chunker.Sentences(query)
	sentenceVectors, err := m.embedder.Embed(ctx, sentences)
	if err != nil {
		return nil, err
	}

	type pairKey struct{ symptom, disease string }
	best := make(map[pairKey]float64)
	var order []pairKey

	for _, sentVec := range sentenceVectors {
		for _, disease := range index.Diseases {
			entry := index.Entries[disease]
			for i, symptom := range entry.Symptoms {
				similarity := Cosine(sentVec, entry.Vectors[i])
				if similarity < threshold {
					continue
				}
				key := pairKey{symptom, disease}
				if prev, seen := best[key]; !seen {
					best[key] = similarity
					order = append(order, key)
				} else if similarity > prev {
					best[key] = similarity
				}
			}
		}
	}

	matches := make([]domain.MatchedSymptom, 0, len(order))
	for _, key := range order {
		matches = append(matches, domain.MatchedSymptom{
			Symptom:    key.symptom,
			Disease:    key.disease,
			Similarity: best[key],
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches, nil
}

// Cosine returns the cosine similarity of two vectors, 0 when either has zero
// magnitude.
func Cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
