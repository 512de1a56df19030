package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RudrakshSJoshi/graph-diagnosis/internal/domain"
)

func testIndex() *domain.SymptomIndex {
	return &domain.SymptomIndex{
		Diseases: []string{"Influenza", "Common Cold"},
		Entries: map[string]domain.SymptomVectors{
			"Influenza":   {Symptoms: []string{"fever", "cough"}},
			"Common Cold": {Symptoms: []string{"cough", "sneezing", "sore throat", "runny nose"}},
		},
		Records: map[string]domain.DiseaseRecord{
			"Influenza": {
				Disease:     "Influenza",
				Symptoms:    []string{"fever", "cough"},
				Precautions: []string{"rest"},
			},
			"Common Cold": {
				Disease:     "Common Cold",
				Symptoms:    []string{"cough", "sneezing", "sore throat", "runny nose"},
				Precautions: []string{"stay hydrated"},
			},
		},
	}
}

func TestScoreFormula(t *testing.T) {
	matches := []domain.MatchedSymptom{
		{Symptom: "fever", Disease: "Influenza", Similarity: 0.8},
		{Symptom: "cough", Disease: "Influenza", Similarity: 0.5},
	}
	scores := Score(matches, testIndex())
	require.Len(t, scores, 1)
	// two disease symptoms and two distinct matched symptoms:
	// (1/2 + 1/2) * 0.8 + (1/2 + 1/2) * 0.5
	assert.InDelta(t, 1.3, scores[0].Score, 1e-9)
	assert.Equal(t, []string{"fever", "cough"}, scores[0].MatchedSymptoms)
	assert.Equal(t, 2, scores[0].NumMatches)
	assert.Equal(t, 2, scores[0].TotalSymptoms)
	assert.Equal(t, []string{"rest"}, scores[0].Precautions)
}

func TestScoreDistinctSymptomCountIsCrossDisease(t *testing.T) {
	// "cough" appears for both diseases but counts once; three distinct
	// symptom strings overall.
	matches := []domain.MatchedSymptom{
		{Symptom: "fever", Disease: "Influenza", Similarity: 1.0},
		{Symptom: "cough", Disease: "Influenza", Similarity: 1.0},
		{Symptom: "cough", Disease: "Common Cold", Similarity: 1.0},
		{Symptom: "sneezing", Disease: "Common Cold", Similarity: 1.0},
	}
	scores := Score(matches, testIndex())
	require.Len(t, scores, 2)

	byName := map[string]domain.DiseaseScore{}
	for _, s := range scores {
		byName[s.Disease] = s
	}
	// Influenza: 2 * (1/2 + 1/3); Common Cold: 2 * (1/4 + 1/3)
	assert.InDelta(t, 2*(1.0/2+1.0/3), byName["Influenza"].Score, 1e-9)
	assert.InDelta(t, 2*(1.0/4+1.0/3), byName["Common Cold"].Score, 1e-9)
}

func TestScoreStrictlyPositiveAndGrowsWithMatches(t *testing.T) {
	one := Score([]domain.MatchedSymptom{
		{Symptom: "fever", Disease: "Influenza", Similarity: 0.6},
	}, testIndex())
	require.Len(t, one, 1)
	assert.Greater(t, one[0].Score, 0.0)

	two := Score([]domain.MatchedSymptom{
		{Symptom: "fever", Disease: "Influenza", Similarity: 0.6},
		{Symptom: "cough", Disease: "Influenza", Similarity: 0.6},
	}, testIndex())
	require.Len(t, two, 1)
	assert.Greater(t, two[0].Score, one[0].Score)
}

func TestScoreOrdersDescending(t *testing.T) {
	matches := []domain.MatchedSymptom{
		{Symptom: "cough", Disease: "Common Cold", Similarity: 0.5},
		{Symptom: "fever", Disease: "Influenza", Similarity: 0.9},
		{Symptom: "cough", Disease: "Influenza", Similarity: 0.9},
	}
	scores := Score(matches, testIndex())
	require.Len(t, scores, 2)
	assert.Equal(t, "Influenza", scores[0].Disease)
	assert.GreaterOrEqual(t, scores[0].Score, scores[1].Score)
}

func TestScoreEmptyMatches(t *testing.T) {
	assert.Nil(t, Score(nil, testIndex()))
}
