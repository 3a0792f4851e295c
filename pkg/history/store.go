// Package history persists conversation turns (request-response pairs) so a
// chat session can be recorded and inspected later.
package history

import (
	"context"
	"strconv"
	"time"

	"github.com/shibotong/OllamaKit/pkg/llm"
)

// StoredTurn is a recorded conversation turn with its storage metadata.
type StoredTurn struct {
	ID        int64                 `json:"id"`
	CreatedAt time.Time             `json:"created_at"`
	Model     string                `json:"model"`
	Turn      *llm.ConversationTurn `json:"turn"`
}

// Store persists and retrieves conversation turns. Implementations must be
// safe for concurrent use.
type Store interface {
	// Append records a turn and returns its assigned id.
	Append(ctx context.Context, turn *llm.ConversationTurn) (int64, error)

	// Get retrieves a turn by id. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id int64) (*StoredTurn, error)

	// List returns turns newest first, at most limit entries.
	// A non-positive limit returns everything.
	List(ctx context.Context, limit int) ([]*StoredTurn, error)

	// Count returns the number of stored turns.
	Count(ctx context.Context) (int64, error)

	// Close closes the store and releases any resources.
	Close() error
}

// ErrNotFound is returned when a turn doesn't exist in the store.
type ErrNotFound struct {
	ID int64
}

func (e ErrNotFound) Error() string {
	return "turn not found: " + strconv.FormatInt(e.ID, 10)
}
