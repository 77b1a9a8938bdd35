package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonebook/internal/model"
	"phonebook/internal/repository"
)

var contactColumns = []string{"id", "name", "number"}

func newRepo(t *testing.T) (*ContactPostgres, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewContactPostgres(db), mock
}

func TestContactPostgres_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery("INSERT INTO contacts").
			WithArgs("Ada Lovelace", "39-44-5323523").
			WillReturnRows(sqlmock.NewRows(contactColumns).AddRow(1, "Ada Lovelace", "39-44-5323523"))

		got, err := repo.Create(ctx, &model.Contact{Name: "Ada Lovelace", Number: "39-44-5323523"})

		require.NoError(t, err)
		assert.Equal(t, &model.Contact{ID: "1", Name: "Ada Lovelace", Number: "39-44-5323523"}, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery("INSERT INTO contacts").
			WithArgs("Ada Lovelace", "000").
			WillReturnError(&pgconn.PgError{Code: uniqueViolation})

		got, err := repo.Create(ctx, &model.Contact{Name: "Ada Lovelace", Number: "000"})

		assert.ErrorIs(t, err, repository.ErrDuplicateName)
		assert.Nil(t, got)
	})
}

func TestContactPostgres_FindByID(t *testing.T) {
	ctx := context.Background()
	repo, mock := newRepo(t)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM contacts WHERE id = ?").
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows(contactColumns).AddRow(7, "Dan Abramov", "12-43-234345"))

		c, err := repo.FindByID(ctx, "7")

		assert.NoError(t, err)
		assert.Equal(t, "7", c.ID)
		assert.Equal(t, "Dan Abramov", c.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM contacts WHERE id = ?").
			WithArgs(8).
			WillReturnError(sql.ErrNoRows)

		c, err := repo.FindByID(ctx, "8")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, c)
	})

	t.Run("malformed id never reaches the database", func(t *testing.T) {
		c, err := repo.FindByID(ctx, "abc")

		assert.ErrorIs(t, err, repository.ErrInvalidID)
		assert.Nil(t, c)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactPostgres_FindByName(t *testing.T) {
	ctx := context.Background()
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM contacts WHERE name = ?").
		WithArgs("Mary Poppendieck").
		WillReturnRows(sqlmock.NewRows(contactColumns).AddRow(4, "Mary Poppendieck", "39-23-6423122"))

	c, err := repo.FindByName(ctx, "Mary Poppendieck")

	require.NoError(t, err)
	assert.Equal(t, "4", c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactPostgres_List(t *testing.T) {
	ctx := context.Background()

	t.Run("paginated with filter", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contacts").
			WithArgs("ada").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT (.+) FROM contacts (.+) ORDER BY id").
			WithArgs("ada", 10, 0).
			WillReturnRows(sqlmock.NewRows(contactColumns).AddRow(2, "Ada Lovelace", "39-44-5323523"))

		res, err := repo.List(ctx, repository.ListQuery{Name: "ada", Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero limit is unlimited", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contacts").
			WithArgs("").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT (.+) FROM contacts (.+) ORDER BY id").
			WithArgs("", nil, 0).
			WillReturnRows(sqlmock.NewRows(contactColumns))

		res, err := repo.List(ctx, repository.ListQuery{})

		require.NoError(t, err)
		assert.Empty(t, res.Items)
		assert.NotNil(t, res.Items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("count error", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contacts").
			WillReturnError(errors.New("db down"))

		res, err := repo.List(ctx, repository.ListQuery{})

		assert.EqualError(t, err, "db down")
		assert.Nil(t, res)
	})
}

func TestContactPostgres_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery("UPDATE contacts").
			WithArgs("Arto Hellas", "111", 1).
			WillReturnRows(sqlmock.NewRows(contactColumns).AddRow(1, "Arto Hellas", "111"))

		c, err := repo.Update(ctx, &model.Contact{ID: "1", Name: "Arto Hellas", Number: "111"})

		require.NoError(t, err)
		assert.Equal(t, "111", c.Number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery("UPDATE contacts").
			WithArgs("X", "1", 99).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(ctx, &model.Contact{ID: "99", Name: "X", Number: "1"})

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestContactPostgres_Delete(t *testing.T) {
	ctx := context.Background()
	repo, mock := newRepo(t)

	mock.ExpectExec("DELETE FROM contacts WHERE id = ?").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM contacts WHERE id = ?").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(ctx, "1"))
	assert.NoError(t, repo.Delete(ctx, "1"))
	assert.ErrorIs(t, repo.Delete(ctx, "zero"), repository.ErrInvalidID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactPostgres_Count(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contacts").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.Count(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
