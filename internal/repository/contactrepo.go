package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/avolodin/contacthub/internal/model"
)

// ContactRepository provides owner-scoped CRUD and search over contacts.
// Every operation is conjoined with the owner id; a contact owned by a
// different user is reported as ErrNotFound.
type ContactRepository interface {
	// Create inserts a new contact for owner and returns the persisted row.
	Create(ctx context.Context, c *model.Contact) error
	// List returns contacts owned by owner with offset/limit pagination.
	List(ctx context.Context, owner uuid.UUID, skip, limit int) ([]model.Contact, error)
	// Get returns the contact only if both id and owner match.
	Get(ctx context.Context, id, owner uuid.UUID) (*model.Contact, error)
	// Update overwrites first/last name, email and birthday from upd. Phone
	// is deliberately not written: it is set at create time and immutable
	// afterwards.
	Update(ctx context.Context, id, owner uuid.UUID, upd model.Contact) (*model.Contact, error)
	// Delete removes the row and returns the detached entity.
	Delete(ctx context.Context, id, owner uuid.UUID) (*model.Contact, error)
	// FindByFirstName returns the first exact match scoped to owner.
	FindByFirstName(ctx context.Context, owner uuid.UUID, name string) (*model.Contact, error)
	// FindByLastName returns the first exact match scoped to owner.
	FindByLastName(ctx context.Context, owner uuid.UUID, name string) (*model.Contact, error)
	// FindByEmail returns the first exact match scoped to owner.
	FindByEmail(ctx context.Context, owner uuid.UUID, email string) (*model.Contact, error)
	// UpcomingBirthdays returns contacts whose next birthday occurrence is
	// within the next 7 days inclusive.
	UpcomingBirthdays(ctx context.Context, owner uuid.UUID) ([]model.Contact, error)
}
