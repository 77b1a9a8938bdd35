package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"

	"phonebook/internal/model"
	"phonebook/internal/repository"
)

// uniqueViolation is the SQLSTATE PostgreSQL reports for a broken UNIQUE constraint.
const uniqueViolation = "23505"

// ContactPostgres is a PostgreSQL implementation of repository.ContactRepository.
// It uses database/sql with parameterized queries and contains no business logic.
// IDs come from a BIGSERIAL sequence, so they are never reused.
type ContactPostgres struct {
	db *sql.DB
}

// NewContactPostgres creates a new ContactPostgres repository.
func NewContactPostgres(db *sql.DB) *ContactPostgres {
	return &ContactPostgres{db: db}
}

var _ repository.ContactRepository = (*ContactPostgres)(nil)

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, repository.ErrInvalidID
	}
	return n, nil
}

// translate maps driver errors onto repository errors.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicateName
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(s scanner) (*model.Contact, error) {
	var (
		id  int64
		out model.Contact
	)
	if err := s.Scan(&id, &out.Name, &out.Number); err != nil {
		return nil, err
	}
	out.ID = strconv.FormatInt(id, 10)
	return &out, nil
}

// Create inserts a new contact row and returns the stored record.
func (r *ContactPostgres) Create(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	const q = `
		INSERT INTO contacts (name, number)
		VALUES ($1, $2)
		RETURNING id, name, number
	`
	out, err := scanContact(r.db.QueryRowContext(ctx, q, c.Name, c.Number))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// FindByID fetches a single contact by its ID.
func (r *ContactPostgres) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	const q = `
		SELECT id, name, number
		FROM contacts
		WHERE id = $1
	`
	out, err := scanContact(r.db.QueryRowContext(ctx, q, n))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// FindByName fetches the contact with exactly this name.
func (r *ContactPostgres) FindByName(ctx context.Context, name string) (*model.Contact, error) {
	const q = `
		SELECT id, name, number
		FROM contacts
		WHERE name = $1
	`
	out, err := scanContact(r.db.QueryRowContext(ctx, q, name))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// List returns contacts using LIMIT/OFFSET pagination and a total count.
// A zero limit is sent as NULL, which PostgreSQL treats as LIMIT ALL.
func (r *ContactPostgres) List(ctx context.Context, lq repository.ListQuery) (*repository.PageResult[model.Contact], error) {
	const qCount = `
		SELECT COUNT(*) FROM contacts
		WHERE $1 = '' OR strpos(lower(name), lower($1)) > 0
	`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, lq.Name).Scan(&total); err != nil {
		return nil, err
	}

	var limit any
	if lq.Limit > 0 {
		limit = lq.Limit
	}
	const qList = `
		SELECT id, name, number
		FROM contacts
		WHERE $1 = '' OR strpos(lower(name), lower($1)) > 0
		ORDER BY id
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, lq.Name, limit, max(lq.Offset, 0))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Contact]{
		Items: items,
		Total: total,
	}, nil
}

// Update replaces name and number of an existing row.
func (r *ContactPostgres) Update(ctx context.Context, c *model.Contact) (*model.Contact, error) {
	n, err := parseID(c.ID)
	if err != nil {
		return nil, err
	}
	const q = `
		UPDATE contacts
		SET name = $1, number = $2
		WHERE id = $3
		RETURNING id, name, number
	`
	out, err := scanContact(r.db.QueryRowContext(ctx, q, c.Name, c.Number, n))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Delete removes a contact by ID. It does not return an error if the row does not exist.
func (r *ContactPostgres) Delete(ctx context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	const q = `DELETE FROM contacts WHERE id = $1`
	_, err = r.db.ExecContext(ctx, q, n)
	return err
}

// Count returns the number of rows in contacts.
func (r *ContactPostgres) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
