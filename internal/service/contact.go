package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"phonebook/internal/model"
	"phonebook/internal/repository"
)

// Error taxonomy. Callers test with errors.Is; the wrapped message carries detail.
var (
	// ErrValidation covers missing/empty fields and malformed ids.
	ErrValidation = errors.New("validation failed")
	// ErrConflict is returned when a name is already taken.
	ErrConflict = errors.New("name already exists")
	// ErrNotFound is returned for unknown ids.
	ErrNotFound = errors.New("contact not found")
)

// ListOptions narrows List. Zero values return every contact.
type ListOptions struct {
	Query  string
	Limit  int
	Offset int
}

// ContactListResult is the service-level DTO for listed contacts.
type ContactListResult struct {
	Items []model.Contact `json:"data"`
	Total int             `json:"total"`
}

// UpdateInput carries the replaceable fields of a contact.
// A nil Name keeps the current name.
type UpdateInput struct {
	Number string
	Name   *string
}

// Info summarises the phonebook.
type Info struct {
	Count int       `json:"count"`
	Time  time.Time `json:"time"`
}

// ContactService maintains the set of contacts and enforces the validation and
// name-uniqueness rules independently of the backing store.
type ContactService interface {
	// List returns contacts matching opts. Order is not part of the contract.
	List(ctx context.Context, opts ListOptions) (*ContactListResult, error)

	// Get returns a single contact by its ID.
	Get(ctx context.Context, id string) (*model.Contact, error)

	// Create stores a new contact. Duplicate names are always rejected with ErrConflict.
	// Name and number are stored with surrounding whitespace removed, as in Update and UpsertByName.
	Create(ctx context.Context, name, number string) (*model.Contact, error)

	// Update replaces the number (and optionally the name) of an existing contact.
	Update(ctx context.Context, id string, in UpdateInput) (*model.Contact, error)

	// UpsertByName updates the number of the contact called name, or creates it.
	// created reports which of the two happened.
	UpsertByName(ctx context.Context, name, number string) (c *model.Contact, created bool, err error)

	// Delete removes a contact. Deleting an unknown id succeeds.
	Delete(ctx context.Context, id string) error

	// Info returns the number of contacts and the current time.
	Info(ctx context.Context) (*Info, error)
}

// contactService is a concrete implementation of ContactService.
type contactService struct {
	repo repository.ContactRepository
	now  func() time.Time
}

// NewContactService constructs a new ContactService.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo, now: time.Now}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func requireFields(name, number string) error {
	switch {
	case blank(name) && blank(number):
		return fmt.Errorf("%w: name and number are required", ErrValidation)
	case blank(name):
		return fmt.Errorf("%w: name is required", ErrValidation)
	case blank(number):
		return fmt.Errorf("%w: number is required", ErrValidation)
	}
	return nil
}

// mapRepoErr translates store errors into the service taxonomy.
func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrInvalidID):
		return fmt.Errorf("%w: malformed id", ErrValidation)
	case errors.Is(err, repository.ErrDuplicateName):
		return ErrConflict
	}
	return err
}

func (s *contactService) List(ctx context.Context, opts ListOptions) (*ContactListResult, error) {
	if opts.Limit < 0 {
		opts.Limit = 0
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	res, err := s.repo.List(ctx, repository.ListQuery{
		Name:   strings.TrimSpace(opts.Query),
		Limit:  opts.Limit,
		Offset: opts.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &ContactListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *contactService) Get(ctx context.Context, id string) (*model.Contact, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return c, nil
}

// Create checks the name before inserting. The check and the insert are separate store
// calls, so two concurrent creates can both pass it; stores with a unique constraint
// still reject the loser with ErrDuplicateName.
func (s *contactService) Create(ctx context.Context, name, number string) (*model.Contact, error) {
	name, number = strings.TrimSpace(name), strings.TrimSpace(number)
	if err := requireFields(name, number); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	c, err := s.repo.Create(ctx, &model.Contact{Name: name, Number: number})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return c, nil
}

func (s *contactService) Update(ctx context.Context, id string, in UpdateInput) (*model.Contact, error) {
	if blank(in.Number) {
		return nil, fmt.Errorf("%w: number is required", ErrValidation)
	}
	if in.Name != nil && blank(*in.Name) {
		return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := model.Contact{ID: current.ID, Name: current.Name, Number: strings.TrimSpace(in.Number)}
	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != current.Name {
			if other, err := s.repo.FindByName(ctx, name); err == nil && other.ID != current.ID {
				return nil, ErrConflict
			} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			next.Name = name
		}
	}

	updated, err := s.repo.Update(ctx, &next)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return updated, nil
}

func (s *contactService) UpsertByName(ctx context.Context, name, number string) (*model.Contact, bool, error) {
	name, number = strings.TrimSpace(name), strings.TrimSpace(number)
	if err := requireFields(name, number); err != nil {
		return nil, false, err
	}
	existing, err := s.repo.FindByName(ctx, name)
	switch {
	case err == nil:
		updated, err := s.repo.Update(ctx, &model.Contact{ID: existing.ID, Name: existing.Name, Number: number})
		if err != nil {
			return nil, false, mapRepoErr(err)
		}
		return updated, false, nil
	case errors.Is(err, repository.ErrNotFound):
		created, err := s.repo.Create(ctx, &model.Contact{Name: name, Number: number})
		if err != nil {
			return nil, false, mapRepoErr(err)
		}
		return created, true, nil
	default:
		return nil, false, err
	}
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrValidation)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}
	return nil
}

func (s *contactService) Info(ctx context.Context) (*Info, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Info{Count: n, Time: s.now()}, nil
}
