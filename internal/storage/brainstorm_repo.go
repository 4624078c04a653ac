package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_brainstorm_cache.go -package=mocks simon-jot/internal/storage BrainstormCache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// BrainstormCache stores brainstorm results keyed by paragraph hash.
type BrainstormCache interface {
	// Get returns the cached result for hash, or ErrNotFound.
	Get(ctx context.Context, hash string) (*BrainstormRecord, error)
	// Put stores a result, replacing any previous one for hash.
	Put(ctx context.Context, hash, goal string, questions []string) error
}

// BrainstormRepo provides methods for cached brainstorm results.
// It implements the BrainstormCache interface.
type BrainstormRepo struct {
	db *sql.DB
}

// NewBrainstormRepo creates a new BrainstormRepo.
func NewBrainstormRepo(db *sql.DB) *BrainstormRepo {
	return &BrainstormRepo{db: db}
}

// HashText returns the cache key of a paragraph: the SHA256 hex digest of its text.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached result for hash.
// Returns nil and ErrNotFound if nothing is cached.
func (r *BrainstormRepo) Get(ctx context.Context, hash string) (*BrainstormRecord, error) {
	var rec BrainstormRecord
	var questions string

	err := r.db.QueryRowContext(ctx,
		"SELECT hash, goal, questions, created_at FROM brainstorms WHERE hash = ?",
		hash,
	).Scan(&rec.Hash, &rec.Goal, &questions, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query brainstorm: %w", err)
	}

	if err := json.Unmarshal([]byte(questions), &rec.Questions); err != nil {
		return nil, fmt.Errorf("failed to decode brainstorm questions: %w", err)
	}
	return &rec, nil
}

// Put stores a result for hash.
func (r *BrainstormRepo) Put(ctx context.Context, hash, goal string, questions []string) error {
	if questions == nil {
		questions = []string{}
	}
	encoded, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("failed to encode brainstorm questions: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO brainstorms (hash, goal, questions, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (hash) DO UPDATE SET goal = excluded.goal, questions = excluded.questions,
		 created_at = excluded.created_at`,
		hash, goal, string(encoded), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to store brainstorm: %w", err)
	}
	return nil
}
