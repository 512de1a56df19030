package domain

import "context"

// Embedder converts text into fixed-size numeric vectors. Output is parallel
// to the input and deterministic for identical input.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Generator produces completions from a system prompt and a user prompt.
// GenerateJSON additionally instructs the provider to return a single JSON
// object so the reply can be unmarshaled into a structured contract.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// SessionStore keeps per-session conversation state: an append-only chat log
// and a candidate-disease list replaced wholesale each turn.
type SessionStore interface {
	AppendChat(ctx context.Context, sessionID string, entries ...string) error
	ChatLog(ctx context.Context, sessionID string) ([]string, error)
	SetCandidates(ctx context.Context, sessionID string, diseases []string) error
	Candidates(ctx context.Context, sessionID string) ([]string, error)
}
