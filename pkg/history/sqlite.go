package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/shibotong/OllamaKit/pkg/llm"
)

// SQLiteStore persists turns in a SQLite database.
//
// Turns are stored as JSON blobs in their wire form, so a stored request
// reflects the flat object that was (or would be) sent to the API.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS turns (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TIMESTAMP NOT NULL,
	model      TEXT NOT NULL,
	turn       BLOB NOT NULL
);
`

// NewSQLiteStore opens (creating if needed) a turn store at path.
// Use ":memory:" for an in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// A :memory: database exists per connection, so the pool must stay at
	// one connection or the schema vanishes between queries.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Append records a turn and returns its assigned id.
func (s *SQLiteStore) Append(ctx context.Context, turn *llm.ConversationTurn) (int64, error) {
	if turn == nil {
		return 0, errors.New("history: nil turn")
	}

	blob, err := json.Marshal(turn)
	if err != nil {
		return 0, fmt.Errorf("marshal turn: %w", err)
	}

	var model string
	if turn.Request != nil {
		model = turn.Request.Model
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (created_at, model, turn) VALUES (?, ?, ?)`,
		time.Now().UTC(), model, blob,
	)
	if err != nil {
		return 0, fmt.Errorf("insert turn: %w", err)
	}

	return res.LastInsertId()
}

// Get retrieves a turn by id.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*StoredTurn, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, model, turn FROM turns WHERE id = ?`, id)

	stored, err := scanTurn(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound{ID: id}
	}
	return stored, err
}

// List returns turns newest first, at most limit entries.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*StoredTurn, error) {
	query := `SELECT id, created_at, model, turn FROM turns ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	var turns []*StoredTurn
	for rows.Next() {
		stored, err := scanTurn(rows.Scan)
		if err != nil {
			return nil, err
		}
		turns = append(turns, stored)
	}
	return turns, rows.Err()
}

// Count returns the number of stored turns.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM turns`).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanTurn(scan func(dest ...any) error) (*StoredTurn, error) {
	var (
		stored StoredTurn
		blob   []byte
	)
	if err := scan(&stored.ID, &stored.CreatedAt, &stored.Model, &blob); err != nil {
		return nil, err
	}

	var turn llm.ConversationTurn
	if err := json.Unmarshal(blob, &turn); err != nil {
		return nil, fmt.Errorf("unmarshal turn %d: %w", stored.ID, err)
	}
	stored.Turn = &turn
	return &stored, nil
}
