package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_jot_store.go -package=mocks simon-jot/internal/storage JotStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// JotStore defines the interface for jot storage operations.
type JotStore interface {
	// Create inserts a new jot. A UUID is generated when jot.ID is empty.
	Create(ctx context.Context, jot *Jot) error
	// GetByID gets a jot by ID. Returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Jot, error)
	// UpdateContent replaces the title and buffer of a jot.
	UpdateContent(ctx context.Context, id, title, html, text string) error
	// UpdateSession records the backend session of a jot.
	UpdateSession(ctx context.Context, id, sessionID string) error
	// List returns the most recently updated jots, newest first.
	List(ctx context.Context, limit int) ([]*Jot, error)
}

// JotRepo provides methods for jot operations.
// It implements the JotStore interface.
type JotRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewJotRepo creates a new JotRepo.
func NewJotRepo(db *sql.DB) *JotRepo {
	return &JotRepo{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create inserts a new jot and fills in its ID and timestamps.
func (r *JotRepo) Create(ctx context.Context, jot *Jot) error {
	if jot.ID == "" {
		jot.ID = uuid.New().String()
	}
	now := r.now()
	jot.CreatedAt = now
	jot.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jots (id, title, html, text, session_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		jot.ID, jot.Title, jot.HTML, jot.Text, jot.SessionID, jot.CreatedAt, jot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert jot: %w", err)
	}
	return nil
}

// GetByID gets a jot by ID.
// Returns nil and ErrNotFound if not found.
func (r *JotRepo) GetByID(ctx context.Context, id string) (*Jot, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, title, html, text, session_id, created_at, updated_at FROM jots WHERE id = ?",
		id,
	)

	jot, err := scanJot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query jot: %w", err)
	}
	return jot, nil
}

// UpdateContent replaces the title, HTML and text of a jot.
// Returns ErrNotFound if the jot does not exist.
func (r *JotRepo) UpdateContent(ctx context.Context, id, title, html, text string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE jots SET title = ?, html = ?, text = ?, updated_at = ? WHERE id = ?",
		title, html, text, r.now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update jot content: %w", err)
	}
	return expectOneRow(res)
}

// UpdateSession records the backend session a jot's requests run in.
// Returns ErrNotFound if the jot does not exist.
func (r *JotRepo) UpdateSession(ctx context.Context, id, sessionID string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE jots SET session_id = ? WHERE id = ?",
		sessionID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update jot session: %w", err)
	}
	return expectOneRow(res)
}

// List returns up to limit jots ordered by most recent update.
// Returns an empty slice if there are none.
func (r *JotRepo) List(ctx context.Context, limit int) ([]*Jot, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, html, text, session_id, created_at, updated_at
		 FROM jots ORDER BY updated_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jots: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	jots := []*Jot{}
	for rows.Next() {
		jot, err := scanJot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan jot: %w", err)
		}
		jots = append(jots, jot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jots: %w", err)
	}

	return jots, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJot(s scanner) (*Jot, error) {
	var jot Jot
	if err := s.Scan(&jot.ID, &jot.Title, &jot.HTML, &jot.Text, &jot.SessionID, &jot.CreatedAt, &jot.UpdatedAt); err != nil {
		return nil, err
	}
	return &jot, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
