package memory

import "context"

// Store keeps per-session conversation state keyed by session ID: an
// append-only chat log and a candidate-disease list replaced wholesale each
// turn. Store errors propagate to the caller; the dialogue controller does
// not mask them.
type Store interface {
	AppendChat(ctx context.Context, sessionID string, entries ...string) error
	ChatLog(ctx context.Context, sessionID string) ([]string, error)
	SetCandidates(ctx context.Context, sessionID string, diseases []string) error
	Candidates(ctx context.Context, sessionID string) ([]string, error)
}
