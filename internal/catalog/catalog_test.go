package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RudrakshSJoshi/graph-diagnosis/internal/domain"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/embedding/embeddingtest"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	data := `[{"disease":"flu","symptoms":["fever","cough"],"precautions":["rest"]}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "flu", records[0].Disease)
	assert.Equal(t, []string{"fever", "cough"}, records[0].Symptoms)
	assert.Equal(t, []string{"rest"}, records[0].Precautions)
}

func TestLoadMissingFileDegradesToEmptyCatalog(t *testing.T) {
	records, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Empty(t, records)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	records, err := Load(path)
	assert.Empty(t, records)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestBuildIndexAlignsVectorsToSymptoms(t *testing.T) {
	records := []domain.DiseaseRecord{
		{Disease: "flu", Symptoms: []string{"fever", "cough"}},
		{Disease: "cold", Symptoms: []string{"sneezing"}},
		{Disease: "unknown", Symptoms: nil},
	}
	emb := embeddingtest.New(2, map[string][]float64{
		"fever":    {1, 0},
		"cough":    {0, 1},
		"sneezing": {1, 1},
	})

	index, err := BuildIndex(context.Background(), records, emb)
	require.NoError(t, err)
	assert.Equal(t, []string{"flu", "cold", "unknown"}, index.Diseases)
	assert.Equal(t, 2, index.Dimension)

	flu := index.Entries["flu"]
	require.Len(t, flu.Vectors, len(flu.Symptoms))
	assert.Equal(t, []float64{1, 0}, flu.Vectors[0])
	assert.Equal(t, []float64{0, 1}, flu.Vectors[1])

	assert.Empty(t, index.Entries["unknown"].Vectors)

	rec, ok := index.Record("cold")
	require.True(t, ok)
	assert.Equal(t, "cold", rec.Disease)
}

func TestBuildIndexEmptyCatalog(t *testing.T) {
	index, err := BuildIndex(context.Background(), nil, embeddingtest.New(2, nil))
	require.NoError(t, err)
	assert.Empty(t, index.Diseases)
	assert.Zero(t, index.Dimension)
}

func TestBuildIndexEmbedderFailure(t *testing.T) {
	emb := embeddingtest.New(2, nil)
	emb.Err = errors.New("provider down")

	_, err := BuildIndex(context.Background(), []domain.DiseaseRecord{
		{Disease: "flu", Symptoms: []string{"fever"}},
	}, emb)
	assert.Error(t, err)
}
