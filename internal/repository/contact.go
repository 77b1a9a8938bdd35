package repository

import (
	"context"
	"errors"

	"phonebook/internal/model"
)

// Store-level errors. Implementations translate their driver errors into these
// so the service layer stays storage-agnostic.
var (
	ErrNotFound      = errors.New("contact not found")
	ErrInvalidID     = errors.New("invalid contact id")
	ErrDuplicateName = errors.New("duplicate contact name")
)

// ContactRepository defines data access for contacts.
// No business logic here; strictly persistence operations.
//
// Id allocation belongs to the implementation: ids are assigned on Create,
// never change afterwards and are never handed out twice.
type ContactRepository interface {
	// Create inserts a new contact and assigns its ID. The ID of the argument is ignored.
	// Returns ErrDuplicateName if the store already holds the name.
	Create(ctx context.Context, c *model.Contact) (*model.Contact, error)

	// FindByID returns a contact by its ID.
	FindByID(ctx context.Context, id string) (*model.Contact, error)

	// FindByName returns the contact with exactly this name (case-sensitive).
	FindByName(ctx context.Context, name string) (*model.Contact, error)

	// List returns a page of contacts and the total number matching the filter.
	List(ctx context.Context, q ListQuery) (*PageResult[model.Contact], error)

	// Update replaces name and number of the contact identified by c.ID.
	Update(ctx context.Context, c *model.Contact) (*model.Contact, error)

	// Delete removes a contact by ID. It returns nil if the contact was deleted or did not exist.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored contacts.
	Count(ctx context.Context) (int, error)
}

// ListQuery filters and paginates List.
type ListQuery struct {
	// Name is a case-insensitive substring filter; empty matches everything.
	Name string
	// Limit of 0 returns every matching contact.
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
