package service

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/avolodin/contacthub/internal/model"
	"github.com/avolodin/contacthub/internal/repository"
)

// NoteService defines owner-scoped operations over notes.
type NoteService interface {
	// Create stores a new note. The owner id travels inside n.
	Create(ctx context.Context, n model.Note) (*model.Note, error)
	// List returns all of the owner's notes.
	List(ctx context.Context, owner uuid.UUID) ([]model.Note, error)
	// Get returns one note by id.
	Get(ctx context.Context, id, owner uuid.UUID) (*model.Note, error)
	// Update overwrites the note text.
	Update(ctx context.Context, id, owner uuid.UUID, text string) (*model.Note, error)
	// Delete removes a note and returns the detached entity.
	Delete(ctx context.Context, id, owner uuid.UUID) (*model.Note, error)
}

type NoteServiceImpl struct {
	repo repository.NoteRepository
}

// NewNoteService constructs NoteService.
func NewNoteService(repo repository.NoteRepository) *NoteServiceImpl {
	return &NoteServiceImpl{repo: repo}
}

// Create assigns a fresh id and stores the note. UserID must already be
// populated by the caller.
func (s *NoteServiceImpl) Create(ctx context.Context, n model.Note) (*model.Note, error) {
	if n.UserID == uuid.Nil {
		return nil, errors.New("validation: empty owner")
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	n.ID = id
	if err := s.repo.Create(ctx, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NoteServiceImpl) List(ctx context.Context, owner uuid.UUID) ([]model.Note, error) {
	if owner == uuid.Nil {
		return nil, errors.New("validation: empty owner")
	}
	return s.repo.List(ctx, owner)
}

func (s *NoteServiceImpl) Get(ctx context.Context, id, owner uuid.UUID) (*model.Note, error) {
	if id == uuid.Nil || owner == uuid.Nil {
		return nil, errors.New("validation: empty id/owner")
	}
	return s.repo.Get(ctx, id, owner)
}

func (s *NoteServiceImpl) Update(ctx context.Context, id, owner uuid.UUID, text string) (*model.Note, error) {
	if id == uuid.Nil || owner == uuid.Nil {
		return nil, errors.New("validation: empty id/owner")
	}
	return s.repo.Update(ctx, id, owner, text)
}

func (s *NoteServiceImpl) Delete(ctx context.Context, id, owner uuid.UUID) (*model.Note, error) {
	if id == uuid.Nil || owner == uuid.Nil {
		return nil, errors.New("validation: empty id/owner")
	}
	return s.repo.Delete(ctx, id, owner)
}
