package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	drv "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"phonebook/internal/model"
	"phonebook/internal/repository"
)

// errDupEntry is MySQL's ER_DUP_ENTRY.
const errDupEntry = 1062

// maxLimit stands in for "no limit"; MySQL has no LIMIT ALL.
const maxLimit = int64(^uint64(0) >> 1)

// ContactMySQL is a MySQL implementation of repository.ContactRepository built on sqlx.
// IDs come from an AUTO_INCREMENT column. The connection must be opened with
// clientFoundRows=true so that UPDATE reports matched rather than changed rows.
type ContactMySQL struct {
	db *sqlx.DB
}

// NewContactMySQL creates a new ContactMySQL repository.
func NewContactMySQL(db *sqlx.DB) *ContactMySQL {
	return &ContactMySQL{db: db}
}

var _ repository.ContactRepository = (*ContactMySQL)(nil)

type contactRow struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Number string `db:"number"`
}

func (r contactRow) toModel() model.Contact {
	return model.Contact{ID: strconv.FormatInt(r.ID, 10), Name: r.Name, Number: r.Number}
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, repository.ErrInvalidID
	}
	return n, nil
}

func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var myErr *drv.MySQLError
	if errors.As(err, &myErr) && myErr.Number == errDupEntry {
		return repository.ErrDuplicateName
	}
	return err
}

// Create inserts the contact and reads back the generated id.
func (r *ContactMySQL) Create(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO contacts (name, number) VALUES (?, ?)`, c.Name, c.Number)
	if err != nil {
		return nil, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.Contact{ID: strconv.FormatInt(id, 10), Name: c.Name, Number: c.Number}, nil
}

// FindByID fetches a single contact by its ID.
func (r *ContactMySQL) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var row contactRow
	if err := r.db.GetContext(ctx, &row, `SELECT id, name, number FROM contacts WHERE id = ?`, n); err != nil {
		return nil, translate(err)
	}
	out := row.toModel()
	return &out, nil
}

// FindByName fetches the contact with exactly this name. The name column uses a
// binary collation, so the comparison is case-sensitive.
func (r *ContactMySQL) FindByName(ctx context.Context, name string) (*model.Contact, error) {
	var row contactRow
	if err := r.db.GetContext(ctx, &row, `SELECT id, name, number FROM contacts WHERE name = ?`, name); err != nil {
		return nil, translate(err)
	}
	out := row.toModel()
	return &out, nil
}

// List returns contacts ordered by id with a total count.
func (r *ContactMySQL) List(ctx context.Context, lq repository.ListQuery) (*repository.PageResult[model.Contact], error) {
	const where = ` WHERE ? = '' OR LOCATE(LOWER(?), LOWER(name)) > 0`

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM contacts`+where, lq.Name, lq.Name); err != nil {
		return nil, err
	}

	limit := maxLimit
	if lq.Limit > 0 {
		limit = int64(lq.Limit)
	}
	var rows []contactRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, name, number FROM contacts`+where+` ORDER BY id LIMIT ? OFFSET ?`,
		lq.Name, lq.Name, limit, max(lq.Offset, 0))
	if err != nil {
		return nil, err
	}

	items := make([]model.Contact, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toModel())
	}
	return &repository.PageResult[model.Contact]{Items: items, Total: total}, nil
}

// Update replaces name and number of an existing row.
func (r *ContactMySQL) Update(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	n, err := parseID(c.ID)
	if err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE contacts SET name = ?, number = ? WHERE id = ?`, c.Name, c.Number, n)
	if err != nil {
		return nil, translate(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, repository.ErrNotFound
	}
	return &model.Contact{ID: strconv.FormatInt(n, 10), Name: c.Name, Number: c.Number}, nil
}

// Delete removes a contact by ID; a missing row is not an error.
func (r *ContactMySQL) Delete(ctx context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, n)
	return err
}

// Count returns the number of rows in contacts.
func (r *ContactMySQL) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM contacts`); err != nil {
		return 0, err
	}
	return n, nil
}
