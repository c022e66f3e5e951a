package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/avolodin/contacthub/internal/errs"
	"github.com/avolodin/contacthub/internal/model"
)

// birthdayWindowDays is the inclusive upper bound for UpcomingBirthdays.
const birthdayWindowDays = 7

// ContactRepo implements ContactRepository using PostgreSQL. The clock is
// injectable so the birthday window can be tested against a fixed date.
type ContactRepo struct {
	db  *DB
	now func() time.Time
}

// NewContactRepo constructs a contact repository.
func NewContactRepo(db *DB) *ContactRepo { return &ContactRepo{db: db, now: time.Now} }

// NewContactRepoWithClock constructs a contact repository with a fixed clock.
func NewContactRepoWithClock(db *DB, now func() time.Time) *ContactRepo {
	return &ContactRepo{db: db, now: now}
}

const contactColumns = `id, user_id, first_name, last_name, email, phone, birthday, created_at`

func scanContact(row pgx.Row) (*model.Contact, error) {
	var c model.Contact
	err := row.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Birthday, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new contact row with the owner id attached.
func (r *ContactRepo) Create(ctx context.Context, c *model.Contact) error {
	const q = `
INSERT INTO contacts (id, user_id, first_name, last_name, email, phone, birthday)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at`
	err := r.db.Pool.QueryRow(ctx, q, c.ID, c.UserID, c.FirstName, c.LastName, c.Email, c.Phone, c.Birthday).
		Scan(&c.CreatedAt)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// List returns contacts owned by owner in insertion order with
// offset/limit pagination.
func (r *ContactRepo) List(ctx context.Context, owner uuid.UUID, skip, limit int) ([]model.Contact, error) {
	q := owned(`SELECT `+contactColumns+` FROM contacts WHERE true`, 1) +
		` ORDER BY created_at OFFSET $2 LIMIT $3`
	rows, err := r.db.Pool.Query(ctx, q, owner, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectContacts(rows)
}

// Get returns the contact only if both id and owner match.
func (r *ContactRepo) Get(ctx context.Context, id, owner uuid.UUID) (*model.Contact, error) {
	q := owned(`SELECT `+contactColumns+` FROM contacts WHERE id=$1`, 2)
	return scanContact(r.db.Pool.QueryRow(ctx, q, id, owner))
}

// Update overwrites first/last name, email and birthday. Phone is left as
// created; it is not part of the writable field set.
func (r *ContactRepo) Update(ctx context.Context, id, owner uuid.UUID, upd model.Contact) (*model.Contact, error) {
	q := owned(`
UPDATE contacts SET first_name=$3, last_name=$4, email=$5, birthday=$6
WHERE id=$1`, 2) + ` RETURNING ` + contactColumns
	c, err := scanContact(r.db.Pool.QueryRow(ctx, q, id, owner, upd.FirstName, upd.LastName, upd.Email, upd.Birthday))
	if isUniqueViolation(err) {
		return nil, errs.ErrAlreadyExists
	}
	return c, err
}

// Delete removes the row and returns the detached entity.
func (r *ContactRepo) Delete(ctx context.Context, id, owner uuid.UUID) (*model.Contact, error) {
	q := owned(`DELETE FROM contacts WHERE id=$1`, 2) + ` RETURNING ` + contactColumns
	return scanContact(r.db.Pool.QueryRow(ctx, q, id, owner))
}

// FindByFirstName returns the first exact match scoped to owner.
func (r *ContactRepo) FindByFirstName(ctx context.Context, owner uuid.UUID, name string) (*model.Contact, error) {
	q := owned(`SELECT `+contactColumns+` FROM contacts WHERE first_name=$1`, 2) + ` LIMIT 1`
	return scanContact(r.db.Pool.QueryRow(ctx, q, name, owner))
}

// FindByLastName returns the first exact match scoped to owner.
func (r *ContactRepo) FindByLastName(ctx context.Context, owner uuid.UUID, name string) (*model.Contact, error) {
	q := owned(`SELECT `+contactColumns+` FROM contacts WHERE last_name=$1`, 2) + ` LIMIT 1`
	return scanContact(r.db.Pool.QueryRow(ctx, q, name, owner))
}

// FindByEmail returns the first exact match scoped to owner.
func (r *ContactRepo) FindByEmail(ctx context.Context, owner uuid.UUID, email string) (*model.Contact, error) {
	q := owned(`SELECT `+contactColumns+` FROM contacts WHERE email=$1`, 2) + ` LIMIT 1`
	return scanContact(r.db.Pool.QueryRow(ctx, q, email, owner))
}

// UpcomingBirthdays returns contacts whose next birthday occurrence
// (month/day only) falls within the next 7 days inclusive. A birthday that
// has already passed this year is evaluated against next year's occurrence.
// Feb 29 birthdays count as Mar 1 in non-leap years.
func (r *ContactRepo) UpcomingBirthdays(ctx context.Context, owner uuid.UUID) ([]model.Contact, error) {
	q := owned(`SELECT `+contactColumns+` FROM contacts WHERE true`, 1)
	rows, err := r.db.Pool.Query(ctx, q, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	all, err := collectContacts(rows)
	if err != nil {
		return nil, err
	}

	today := truncateToDate(r.now())
	var out []model.Contact
	for _, c := range all {
		if d := daysUntilBirthday(today, c.Birthday); d >= 0 && d <= birthdayWindowDays {
			out = append(out, c)
		}
	}
	return out, nil
}

func collectContacts(rows pgx.Rows) ([]model.Contact, error) {
	var out []model.Contact
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Birthday, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysUntilBirthday computes whole days from today to the next occurrence of
// the birthday's month/day. time.Date normalizes Feb 29 to Mar 1 when the
// target year is not a leap year.
func daysUntilBirthday(today, birthday time.Time) int {
	next := time.Date(today.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(today.Year()+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(today) / (24 * time.Hour))
}
