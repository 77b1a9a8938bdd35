package mysql

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	drv "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonebook/internal/model"
	"phonebook/internal/repository"
)

// createMockObjects builds a sqlx handle over a mock database and the mock used to define
// the expected SQL calls.
func createMockObjects(t *testing.T) (*ContactMySQL, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewContactMySQL(sqlx.NewDb(db, "mysql")), mock
}

func TestContactMySQL_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, mock := createMockObjects(t)
		mock.ExpectExec("INSERT INTO contacts").
			WithArgs("Erika Mustermann", "+49 0815 4711").
			WillReturnResult(sqlmock.NewResult(29, 1))

		c, err := repo.Create(ctx, &model.Contact{Name: "Erika Mustermann", Number: "+49 0815 4711"})

		require.NoError(t, err)
		assert.Equal(t, "29", c.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate entry", func(t *testing.T) {
		repo, mock := createMockObjects(t)
		mock.ExpectExec("INSERT INTO contacts").
			WillReturnError(&drv.MySQLError{Number: errDupEntry, Message: "Duplicate entry"})

		_, err := repo.Create(ctx, &model.Contact{Name: "Erika Mustermann", Number: "1"})

		assert.ErrorIs(t, err, repository.ErrDuplicateName)
	})
}

func TestContactMySQL_FindByID(t *testing.T) {
	ctx := context.Background()
	repo, mock := createMockObjects(t)

	mock.ExpectQuery("SELECT id, name, number FROM contacts WHERE id = ?").
		WithArgs(29).
		WillReturnRows(mock.NewRows([]string{"id", "name", "number"}).AddRow(29, "Erika Mustermann", "+49 0815 4711"))
	mock.ExpectQuery("SELECT id, name, number FROM contacts WHERE id = ?").
		WithArgs(9999).
		WillReturnError(sql.ErrNoRows)

	c, err := repo.FindByID(ctx, "29")
	require.NoError(t, err)
	assert.Equal(t, model.Contact{ID: "29", Name: "Erika Mustermann", Number: "+49 0815 4711"}, *c)

	_, err = repo.FindByID(ctx, "9999")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.FindByID(ctx, "1.5")
	assert.ErrorIs(t, err, repository.ErrInvalidID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactMySQL_List(t *testing.T) {
	ctx := context.Background()
	repo, mock := createMockObjects(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contacts").
		WithArgs("", "").
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT id, name, number FROM contacts (.+) LIMIT \\? OFFSET \\?").
		WithArgs("", "", maxLimit, 0).
		WillReturnRows(mock.NewRows([]string{"id", "name", "number"}).
			AddRow(1, "Aaron", "+420 111").
			AddRow(2, "Berta", "+420 222").
			AddRow(3, "Carla", "+420 333"))

	res, err := repo.List(ctx, repository.ListQuery{})

	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "Berta", res.Items[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactMySQL_Update(t *testing.T) {
	ctx := context.Background()
	repo, mock := createMockObjects(t)

	mock.ExpectExec("UPDATE contacts SET name = \\?, number = \\? WHERE id = \\?").
		WithArgs("Rudi Völler", "+49 1234567890", 56).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE contacts").
		WithArgs("Rudi Völler", "+49 1234567890", 57).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, err := repo.Update(ctx, &model.Contact{ID: "56", Name: "Rudi Völler", Number: "+49 1234567890"})
	require.NoError(t, err)
	assert.Equal(t, "56", c.ID)

	_, err = repo.Update(ctx, &model.Contact{ID: "57", Name: "Rudi Völler", Number: "+49 1234567890"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactMySQL_DeleteAndCount(t *testing.T) {
	ctx := context.Background()
	repo, mock := createMockObjects(t)

	mock.ExpectExec("DELETE FROM contacts WHERE id = ?").
		WithArgs(56).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contacts").
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(2))

	assert.NoError(t, repo.Delete(ctx, "56"))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
