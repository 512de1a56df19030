package domain

// DiseaseRecord is a single entry of the symptom catalog.
type DiseaseRecord struct {
	Disease     string   `json:"disease"`
	Symptoms    []string `json:"symptoms"`
	Precautions []string `json:"precautions"`
}

// SymptomVectors holds one disease's symptom phrases and their embeddings.
// Vectors is parallel to Symptoms.
type SymptomVectors struct {
	Symptoms []string
	Vectors  [][]float64
}

// SymptomIndex is the precomputed embedding index over the whole catalog.
// It is built once at startup and read-only afterwards, so concurrent reads
// need no synchronization.
type SymptomIndex struct {
	Diseases  []string
	Entries   map[string]SymptomVectors
	Records   map[string]DiseaseRecord
	Dimension int
}

// Record returns the catalog record for a disease name.
func (x *SymptomIndex) Record(disease string) (DiseaseRecord, bool) {
	r, ok := x.Records[disease]
	return r, ok
}

// MatchedSymptom is one (symptom, disease) pair matched by a query sentence.
type MatchedSymptom struct {
	Symptom    string
	Disease    string
	Similarity float64
}

// DiseaseScore is the aggregate confidence for one disease over a query.
type DiseaseScore struct {
	Disease         string
	Score           float64
	MatchedSymptoms []string
	NumMatches      int
	TotalSymptoms   int
	AllSymptoms     []string
	Precautions     []string
}

// DiagnosisStatus classifies the outcome of a diagnosis run.
type DiagnosisStatus string

const (
	StatusNoMatch       DiagnosisStatus = "no_match"
	StatusSuccess       DiagnosisStatus = "success"
	StatusLowConfidence DiagnosisStatus = "low_confidence"
	StatusError         DiagnosisStatus = "error"
)

// DiseaseSummary is the per-disease projection handed to the supervisor model.
type DiseaseSummary struct {
	Disease         string   `json:"disease"`
	Score           float64  `json:"score"`
	MatchedSymptoms []string `json:"matched_symptoms"`
	Precautions     []string `json:"precautions"`
}

// DiagnosisResult is the outcome of one diagnosis run. It is serialized as-is
// into the supervisor prompt, hence the JSON tags.
type DiagnosisResult struct {
	Status      DiagnosisStatus  `json:"status"`
	Query       string           `json:"query,omitempty"`
	Message     string           `json:"message,omitempty"`
	TopDiseases []DiseaseSummary `json:"top_diseases"`
}
