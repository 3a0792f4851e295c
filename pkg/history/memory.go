package history

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shibotong/OllamaKit/pkg/llm"
)

// MemoryStore is an in-memory Store, used by tests and as the default when
// no database path is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	turns  []*StoredTurn
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Append records a turn and returns its assigned id.
func (s *MemoryStore) Append(ctx context.Context, turn *llm.ConversationTurn) (int64, error) {
	if turn == nil {
		return 0, errors.New("history: nil turn")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var model string
	if turn.Request != nil {
		model = turn.Request.Model
	}

	stored := &StoredTurn{
		ID:        s.nextID,
		CreatedAt: time.Now().UTC(),
		Model:     model,
		Turn:      turn,
	}
	s.nextID++
	s.turns = append(s.turns, stored)
	return stored.ID, nil
}

// Get retrieves a turn by id.
func (s *MemoryStore) Get(ctx context.Context, id int64) (*StoredTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, stored := range s.turns {
		if stored.ID == id {
			return stored, nil
		}
	}
	return nil, ErrNotFound{ID: id}
}

// List returns turns newest first, at most limit entries.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*StoredTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.turns)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]*StoredTurn, 0, n)
	for i := len(s.turns) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.turns[i])
	}
	return out, nil
}

// Count returns the number of stored turns.
func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.turns)), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
