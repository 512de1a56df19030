package local

import (
	"context"
	"sync"
)

// Store is an in-process session store backed by mutex-guarded maps. Returned
// slices are copies, so callers can hold them across turns.
type Store struct {
	mu         sync.RWMutex
	chats      map[string][]string
	candidates map[string][]string
}

func NewStore() *Store {
	return &Store{
		chats:      make(map[string][]string),
		candidates: make(map[string][]string),
	}
}

func (s *Store) AppendChat(ctx context.Context, sessionID string, entries ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[sessionID] = append(s.chats[sessionID], entries...)
	return nil
}

func (s *Store) ChatLog(ctx context.Context, sessionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	log := s.chats[sessionID]
	out := make([]string, len(log))
	copy(out, log)
	return out, nil
}

func (s *Store) SetCandidates(ctx context.Context, sessionID string, diseases []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]string, len(diseases))
	copy(list, diseases)
	s.candidates[sessionID] = list
	return nil
}

func (s *Store) Candidates(ctx context.Context, sessionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.candidates[sessionID]
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}

// Clear drops all state for a session. Sessions are otherwise discarded when
// the process exits.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chats, sessionID)
	delete(s.candidates, sessionID)
}
