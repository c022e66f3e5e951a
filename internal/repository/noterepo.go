package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/avolodin/contacthub/internal/model"
)

// NoteRepository provides owner-scoped CRUD over notes. The owner travels
// inside the Note on Create; callers populate UserID before calling.
type NoteRepository interface {
	// Create inserts a new note and returns the persisted row.
	Create(ctx context.Context, n *model.Note) error
	// List returns all notes owned by owner.
	List(ctx context.Context, owner uuid.UUID) ([]model.Note, error)
	// Get returns the note only if both id and owner match.
	Get(ctx context.Context, id, owner uuid.UUID) (*model.Note, error)
	// Update overwrites the note text only.
	Update(ctx context.Context, id, owner uuid.UUID, text string) (*model.Note, error)
	// Delete removes the row and returns the detached entity.
	Delete(ctx context.Context, id, owner uuid.UUID) (*model.Note, error)
}
