package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/RudrakshSJoshi/graph-diagnosis/internal/domain"
)

// LoadError reports a missing or malformed dataset source. Callers log it and
// continue with an empty catalog instead of failing startup.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the disease dataset from a JSON file. On failure it returns an
// empty catalog together with a *LoadError so the caller can degrade
// gracefully.
func Load(path string) ([]domain.DiseaseRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	var records []domain.DiseaseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return records, nil
}

// BuildIndex precomputes embeddings for every symptom in the catalog, one
// batch call per disease. The resulting index is immutable; its vector
// dimension must be constant across all entries.
func BuildIndex(ctx context.Context, records []domain.DiseaseRecord, embedder domain.Embedder) (*domain.SymptomIndex, error) {
	index := &domain.SymptomIndex{
		Entries: make(map[string]domain.SymptomVectors, len(records)),
		Records: make(map[string]domain.DiseaseRecord, len(records)),
	}
	for _, rec := range records {
		entry := domain.SymptomVectors{Symptoms: rec.Symptoms}
		if len(rec.Symptoms) > 0 {
			vectors, err := embedder.Embed(ctx, rec.Symptoms)
			if err != nil {
				return nil, fmt.Errorf("embed symptoms for %q: %w", rec.Disease, err)
			}
			if len(vectors) != len(rec.Symptoms) {
				return nil, fmt.Errorf("embed symptoms for %q: got %d vectors for %d symptoms", rec.Disease, len(vectors), len(rec.Symptoms))
			}
			for _, v := range vectors {
				if index.Dimension == 0 {
					index.Dimension = len(v)
				}
				if len(v) != index.Dimension {
					return nil, fmt.Errorf("embed symptoms for %q: dimension %d, index has %d", rec.Disease, len(v), index.Dimension)
				}
			}
			entry.Vectors = vectors
		}
		index.Diseases = append(index.Diseases, rec.Disease)
		index.Entries[rec.Disease] = entry
		index.Records[rec.Disease] = rec
	}
	return index, nil
}
