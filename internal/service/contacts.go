package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/avolodin/contacthub/internal/model"
	"github.com/avolodin/contacthub/internal/repository"
)

const defaultPageLimit = 100

// ContactService defines owner-scoped operations over contacts.
type ContactService interface {
	// Create stores a new contact for owner.
	Create(ctx context.Context, owner uuid.UUID, c model.Contact) (*model.Contact, error)
	// List pages through the owner's contacts.
	List(ctx context.Context, owner uuid.UUID, skip, limit int) ([]model.Contact, error)
	// Get returns one contact by id.
	Get(ctx context.Context, id, owner uuid.UUID) (*model.Contact, error)
	// Update overwrites the writable fields (phone excluded).
	Update(ctx context.Context, id, owner uuid.UUID, upd model.Contact) (*model.Contact, error)
	// Delete removes a contact and returns the detached entity.
	Delete(ctx context.Context, id, owner uuid.UUID) (*model.Contact, error)
	// FindByFirstName looks up a single contact by exact first name.
	FindByFirstName(ctx context.Context, owner uuid.UUID, name string) (*model.Contact, error)
	// FindByLastName looks up a single contact by exact last name.
	FindByLastName(ctx context.Context, owner uuid.UUID, name string) (*model.Contact, error)
	// FindByEmail looks up a single contact by exact email.
	FindByEmail(ctx context.Context, owner uuid.UUID, email string) (*model.Contact, error)
	// UpcomingBirthdays lists contacts with a birthday in the next 7 days.
	UpcomingBirthdays(ctx context.Context, owner uuid.UUID) ([]model.Contact, error)
}

type ContactServiceImpl struct {
	repo repository.ContactRepository
}

// NewContactService constructs ContactService.
func NewContactService(repo repository.ContactRepository) *ContactServiceImpl {
	return &ContactServiceImpl{repo: repo}
}

// Create assigns a fresh id, stamps the owner and stores the contact.
func (s *ContactServiceImpl) Create(ctx context.Context, owner uuid.UUID, c model.Contact) (*model.Contact, error) {
	if owner == uuid.Nil {
		return nil, errors.New("validation: empty owner")
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	c.ID = id
	c.UserID = owner
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List validates pagination bounds and delegates.
func (s *ContactServiceImpl) List(ctx context.Context, owner uuid.UUID, skip, limit int) ([]model.Contact, error) {
	if owner == uuid.Nil {
		return nil, errors.New("validation: empty owner")
	}
	if skip < 0 || limit < 0 {
		return nil, fmt.Errorf("validation: negative skip/limit (%d/%d)", skip, limit)
	}
	if limit == 0 {
		limit = defaultPageLimit
	}
	return s.repo.List(ctx, owner, skip, limit)
}

func (s *ContactServiceImpl) Get(ctx context.Context, id, owner uuid.UUID) (*model.Contact, error) {
	if id == uuid.Nil || owner == uuid.Nil {
		return nil, errors.New("validation: empty id/owner")
	}
	return s.repo.Get(ctx, id, owner)
}

func (s *ContactServiceImpl) Update(ctx context.Context, id, owner uuid.UUID, upd model.Contact) (*model.Contact, error) {
	if id == uuid.Nil || owner == uuid.Nil {
		return nil, errors.New("validation: empty id/owner")
	}
	return s.repo.Update(ctx, id, owner, upd)
}

func (s *ContactServiceImpl) Delete(ctx context.Context, id, owner uuid.UUID) (*model.Contact, error) {
	if id == uuid.Nil || owner == uuid.Nil {
		return nil, errors.New("validation: empty id/owner")
	}
	return s.repo.Delete(ctx, id, owner)
}

func (s *ContactServiceImpl) FindByFirstName(ctx context.Context, owner uuid.UUID, name string) (*model.Contact, error) {
	return s.repo.FindByFirstName(ctx, owner, name)
}

func (s *ContactServiceImpl) FindByLastName(ctx context.Context, owner uuid.UUID, name string) (*model.Contact, error) {
	return s.repo.FindByLastName(ctx, owner, name)
}

func (s *ContactServiceImpl) FindByEmail(ctx context.Context, owner uuid.UUID, email string) (*model.Contact, error) {
	return s.repo.FindByEmail(ctx, owner, email)
}

func (s *ContactServiceImpl) UpcomingBirthdays(ctx context.Context, owner uuid.UUID) ([]model.Contact, error) {
	if owner == uuid.Nil {
		return nil, errors.New("validation: empty owner")
	}
	return s.repo.UpcomingBirthdays(ctx, owner)
}
