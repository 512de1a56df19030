package scorer

import (
	"sort"

	"github.com/RudrakshSJoshi/graph-diagnosis/internal/domain"
)

// Score aggregates matched symptoms into a ranked per-disease confidence.
//
// For each matched (symptom, similarity) of a disease the contribution is
//
//	[(1/numDiseaseSymptoms) + (1/totalDistinctMatchedSymptoms)] * similarity
//
// where totalDistinctMatchedSymptoms counts distinct symptom strings across
// ALL matches, not per disease. The cross-disease term is intentional: a
// query touching many symptoms dilutes every individual contribution.
func Score(matches []domain.MatchedSymptom, index *domain.SymptomIndex) []domain.DiseaseScore {
	if len(matches) == 0 {
		return nil
	}

	distinct := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		distinct[m.Symptom] = struct{}{}
	}
	totalMatched := float64(len(distinct))

	byDisease := make(map[string][]domain.MatchedSymptom)
	var diseaseOrder []string
	for _, m := range matches {
		if _, seen := byDisease[m.Disease]; !seen {
			diseaseOrder = append(diseaseOrder, m.Disease)
		}
		byDisease[m.Disease] = append(byDisease[m.Disease], m)
	}

	scores := make([]domain.DiseaseScore, 0, len(diseaseOrder))
	for _, disease := range diseaseOrder {
		diseaseMatches := byDisease[disease]
		numSymptoms := len(index.Entries[disease].Symptoms)

		var score float64
		matched := make([]string, 0, len(diseaseMatches))
		for _, m := range diseaseMatches {
			base := 1.0/float64(numSymptoms) + 1.0/totalMatched
			score += base * m.Similarity
			matched = append(matched, m.Symptom)
		}

		ds := domain.DiseaseScore{
			Disease:         disease,
			Score:           score,
			MatchedSymptoms: matched,
			NumMatches:      len(diseaseMatches),
			TotalSymptoms:   numSymptoms,
		}
		if rec, ok := index.Record(disease); ok {
			ds.AllSymptoms = rec.Symptoms
			ds.Precautions = rec.Precautions
		}
		scores = append(scores, ds)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}
