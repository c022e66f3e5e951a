package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/avolodin/contacthub/internal/errs"
	"github.com/avolodin/contacthub/internal/model"
)

// NoteRepo implements NoteRepository using PostgreSQL.
type NoteRepo struct{ db *DB }

// NewNoteRepo constructs a note repository.
func NewNoteRepo(db *DB) *NoteRepo { return &NoteRepo{db: db} }

const noteColumns = `id, user_id, text, created_at`

func scanNote(row pgx.Row) (*model.Note, error) {
	var n model.Note
	if err := row.Scan(&n.ID, &n.UserID, &n.Text, &n.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// Create inserts a new note. The owner id travels inside n; callers
// populate UserID before calling.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note) error {
	const q = `
INSERT INTO notes (id, user_id, text)
VALUES ($1, $2, $3)
RETURNING created_at`
	return r.db.Pool.QueryRow(ctx, q, n.ID, n.UserID, n.Text).Scan(&n.CreatedAt)
}

// List returns all notes owned by owner in insertion order.
func (r *NoteRepo) List(ctx context.Context, owner uuid.UUID) ([]model.Note, error) {
	q := owned(`SELECT `+noteColumns+` FROM notes WHERE true`, 1) + ` ORDER BY created_at`
	rows, err := r.db.Pool.Query(ctx, q, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Text, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Get returns the note only if both id and owner match.
func (r *NoteRepo) Get(ctx context.Context, id, owner uuid.UUID) (*model.Note, error) {
	q := owned(`SELECT `+noteColumns+` FROM notes WHERE id=$1`, 2)
	return scanNote(r.db.Pool.QueryRow(ctx, q, id, owner))
}

// Update overwrites the note text only.
func (r *NoteRepo) Update(ctx context.Context, id, owner uuid.UUID, text string) (*model.Note, error) {
	q := owned(`UPDATE notes SET text=$3 WHERE id=$1`, 2) + ` RETURNING ` + noteColumns
	return scanNote(r.db.Pool.QueryRow(ctx, q, id, owner, text))
}

// Delete removes the row and returns the detached entity.
func (r *NoteRepo) Delete(ctx context.Context, id, owner uuid.UUID) (*model.Note, error) {
	q := owned(`DELETE FROM notes WHERE id=$1`, 2) + ` RETURNING ` + noteColumns
	return scanNote(r.db.Pool.QueryRow(ctx, q, id, owner))
}
