package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RudrakshSJoshi/graph-diagnosis/internal/catalog"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/domain"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/embedding/embeddingtest"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/matcher"
)

func fluEngine(t *testing.T) (*Engine, *embeddingtest.Static) {
	t.Helper()
	records := []domain.DiseaseRecord{
		{Disease: "flu", Symptoms: []string{"fever", "cough"}, Precautions: []string{"rest"}},
	}
	emb := embeddingtest.New(3, map[string][]float64{
		"fever": {1, 0, 0},
		"cough": {0, 1, 0},
		// one sentence mentioning both symptoms
		"I have a fever and a bad cough": {0.8, 0.5, math.Sqrt(1 - 0.64 - 0.25)},
	})
	index, err := catalog.BuildIndex(context.Background(), records, emb)
	require.NoError(t, err)
	return New(index, matcher.New(emb)), emb
}

func TestDiagnoseSuccessScenario(t *testing.T) {
	eng, _ := fluEngine(t)

	result, err := eng.Diagnose(context.Background(), "I have a fever and a bad cough.", DefaultTopK, matcher.DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, result.Status)
	require.Len(t, result.TopDiseases, 1)
	top := result.TopDiseases[0]
	assert.Equal(t, "flu", top.Disease)
	assert.Equal(t, []string{"fever", "cough"}, top.MatchedSymptoms)
	assert.Equal(t, []string{"rest"}, top.Precautions)
	assert.Greater(t, top.Score, 0.0)
}

func TestDiagnoseNoMatch(t *testing.T) {
	eng, _ := fluEngine(t)

	result, err := eng.Diagnose(context.Background(), "My paperwork is overdue.", DefaultTopK, matcher.DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoMatch, result.Status)
	assert.Equal(t, "No symptoms identified.", result.Message)
	assert.Empty(t, result.TopDiseases)
}

func TestDiagnoseTopKTruncates(t *testing.T) {
	records := []domain.DiseaseRecord{
		{Disease: "a", Symptoms: []string{"fever"}},
		{Disease: "b", Symptoms: []string{"fever"}},
		{Disease: "c", Symptoms: []string{"fever"}},
	}
	emb := embeddingtest.New(2, map[string][]float64{
		"fever":        embeddingtest.Axis(),
		"I have fever": embeddingtest.Toward(0.9),
	})
	index, err := catalog.BuildIndex(context.Background(), records, emb)
	require.NoError(t, err)
	eng := New(index, matcher.New(emb))

	result, err := eng.Diagnose(context.Background(), "I have fever.", 2, matcher.DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, result.Status)
	assert.Len(t, result.TopDiseases, 2)
	for i := 1; i < len(result.TopDiseases); i++ {
		assert.GreaterOrEqual(t, result.TopDiseases[i-1].Score, result.TopDiseases[i].Score)
	}
}

func TestDiagnoseZeroTopKIsLowConfidence(t *testing.T) {
	eng, _ := fluEngine(t)

	result, err := eng.Diagnose(context.Background(), "I have a fever and a bad cough.", 0, matcher.DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusLowConfidence, result.Status)
	assert.Empty(t, result.TopDiseases)
}

func TestDiagnoseEmbedderFailure(t *testing.T) {
	eng, emb := fluEngine(t)
	emb.Err = errors.New("provider down")

	_, err := eng.Diagnose(context.Background(), "I have a fever.", DefaultTopK, matcher.DefaultThreshold)
	assert.Error(t, err)
}
