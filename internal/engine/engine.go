package engine

import (
	"context"

	"github.com/RudrakshSJoshi/graph-diagnosis/internal/domain"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/matcher"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/scorer"
)

// DefaultTopK bounds how many candidate diseases a diagnosis reports.
const DefaultTopK = 5

// Engine runs the retrieval pipeline: sentence matching against the symptom
// index, per-disease scoring and top-k selection.
type Engine struct {
	index   *domain.SymptomIndex
	matcher *matcher.Matcher
}

func New(index *domain.SymptomIndex, m *matcher.Matcher) *Engine {
	return &Engine{index: index, matcher: m}
}

// Diagnose evaluates a query against the catalog. A returned error means the
// embedding provider failed; the dialogue controller converts it into a
// status=error result so nothing propagates past the v1 boundary.
func (e *Engine) Diagnose(ctx context.Context, query string, topK int, threshold float64) (domain.DiagnosisResult, error) {
	matches, err := e.matcher.Match(ctx, query, e.index, threshold)
	if err != nil {
		return domain.DiagnosisResult{}, err
	}
	if len(matches) == 0 {
		return domain.DiagnosisResult{
			Status:      domain.StatusNoMatch,
			Query:       query,
			Message:     "No symptoms identified.",
			TopDiseases: []domain.DiseaseSummary{},
		}, nil
	}

	scores := scorer.Score(matches, e.index)

	top := make([]domain.DiseaseSummary, 0, topK)
	for i, ds := range scores {
		if i >= topK {
			break
		}
		top = append(top, domain.DiseaseSummary{
			Disease:         ds.Disease,
			Score:           ds.Score,
			MatchedSymptoms: ds.MatchedSymptoms,
			Precautions:     ds.Precautions,
		})
	}

	// low_confidence is only reachable when topK <= 0; kept to mirror the
	// documented contract rather than collapsed into success.
	status := domain.StatusSuccess
	if len(top) == 0 {
		status = domain.StatusLowConfidence
	}
	return domain.DiagnosisResult{
		Status:      status,
		Query:       query,
		TopDiseases: top,
	}, nil
}
