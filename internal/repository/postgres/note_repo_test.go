package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/avolodin/contacthub/internal/errs"
	"github.com/avolodin/contacthub/internal/model"
)

const noteCols = `id, user_id, text, created_at`

func noteRow(n model.Note) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "user_id", "text", "created_at"}).
		AddRow(n.ID, n.UserID, n.Text, n.CreatedAt)
}

func sampleNote(owner uuid.UUID) model.Note {
	return model.Note{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    owner,
		Text:      "call back on monday",
		CreatedAt: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNoteRepo_Create_CarriesOwner(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewNoteRepo(db)
	ctx := context.Background()
	n := sampleNote(uuid.Must(uuid.NewV4()))

	mock.ExpectQuery(`INSERT INTO notes \(id, user_id, text\) VALUES \(\$1, \$2, \$3\) RETURNING created_at`).
		WithArgs(n.ID, n.UserID, n.Text).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(n.CreatedAt))
	require.NoError(t, r.Create(ctx, &n))
}

func TestNoteRepo_List(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewNoteRepo(db)
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())
	n := sampleNote(owner)

	mock.ExpectQuery(`SELECT ` + noteCols + ` FROM notes WHERE true AND user_id=\$1 ORDER BY created_at`).
		WithArgs(owner).
		WillReturnRows(noteRow(n))
	got, err := r.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, n, got[0])
}

func TestNoteRepo_Get_ScopedToOwner(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewNoteRepo(db)
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())
	n := sampleNote(owner)

	mock.ExpectQuery(`SELECT ` + noteCols + ` FROM notes WHERE id=\$1 AND user_id=\$2`).
		WithArgs(n.ID, owner).
		WillReturnRows(noteRow(n))
	got, err := r.Get(ctx, n.ID, owner)
	require.NoError(t, err)
	require.Equal(t, n, *got)

	stranger := uuid.Must(uuid.NewV4())
	mock.ExpectQuery(`SELECT ` + noteCols + ` FROM notes WHERE id=\$1 AND user_id=\$2`).
		WithArgs(n.ID, stranger).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Get(ctx, n.ID, stranger)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestNoteRepo_Update_TextOnly(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewNoteRepo(db)
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())
	n := sampleNote(owner)
	n.Text = "rescheduled to friday"

	mock.ExpectQuery(`UPDATE notes SET text=\$3 WHERE id=\$1 AND user_id=\$2 RETURNING `+noteCols).
		WithArgs(n.ID, owner, n.Text).
		WillReturnRows(noteRow(n))
	got, err := r.Update(ctx, n.ID, owner, n.Text)
	require.NoError(t, err)
	require.Equal(t, n.Text, got.Text)

	mock.ExpectQuery(`UPDATE notes SET text=\$3 WHERE id=\$1 AND user_id=\$2 RETURNING `+noteCols).
		WithArgs(n.ID, owner, "x").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Update(ctx, n.ID, owner, "x")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestNoteRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewNoteRepo(db)
	ctx := context.Background()
	owner := uuid.Must(uuid.NewV4())
	n := sampleNote(owner)

	mock.ExpectQuery(`DELETE FROM notes WHERE id=\$1 AND user_id=\$2 RETURNING ` + noteCols).
		WithArgs(n.ID, owner).
		WillReturnRows(noteRow(n))
	got, err := r.Delete(ctx, n.ID, owner)
	require.NoError(t, err)
	require.Equal(t, n.ID, got.ID)

	mock.ExpectQuery(`DELETE FROM notes WHERE id=\$1 AND user_id=\$2 RETURNING ` + noteCols).
		WithArgs(n.ID, owner).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Delete(ctx, n.ID, owner)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
