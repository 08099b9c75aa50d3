// Package history persists chat turns in PostgreSQL.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContextWindow is how many recent turns are replayed to the generator.
const ContextWindow = 2

// Turn is one persisted question/answer exchange.
type Turn struct {
	Question  string
	Response  string
	CreatedAt time.Time
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store is an append-only chat_history table that can only be cleared as a whole.
type Store struct {
	db querier
}

func NewStore(pool *pgxpool.Pool) *Store {
	if pool == nil {
		panic("history: pgx pool required")
	}
	return &Store{db: pool}
}

func newStoreWithQuerier(db querier) *Store {
	if db == nil {
		panic("history: querier required")
	}
	return &Store{db: db}
}

// Append records a question and the reply that was returned for it.
func (s *Store) Append(ctx context.Context, question, response string) error {
	query := `INSERT INTO chat_history (question, response) VALUES ($1, $2)`
	if _, err := s.db.Exec(ctx, query, question, response); err != nil {
		return fmt.Errorf("history: append turn: %w", err)
	}
	return nil
}

// Recent returns the last ContextWindow turns, oldest first.
func (s *Store) Recent(ctx context.Context) ([]Turn, error) {
	query := `
		SELECT question, response, created_at
		FROM chat_history
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := s.db.Query(ctx, query, ContextWindow)
	if err != nil {
		return nil, fmt.Errorf("history: query recent turns: %w", err)
	}
	defer rows.Close()

	turns := make([]Turn, 0, ContextWindow)
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.Question, &t.Response, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate turns: %w", err)
	}

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// Clear deletes every stored turn.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM chat_history`); err != nil {
		return fmt.Errorf("history: clear: %w", err)
	}
	return nil
}
