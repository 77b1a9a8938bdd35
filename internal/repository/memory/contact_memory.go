package memory

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"phonebook/internal/model"
	"phonebook/internal/repository"
)

// ContactMemory is an in-process implementation of repository.ContactRepository.
// IDs come from a monotonic counter starting at 1 and are never reused, even after deletes.
// It is safe for concurrent use by multiple goroutines.
type ContactMemory struct {
	mu       sync.Mutex
	nextID   uint64
	contacts map[uint64]model.Contact
	byName   map[string]uint64
}

// NewContactMemory creates an empty store, optionally pre-filled with contacts.
// Seeded contacts receive fresh ids in argument order; duplicate names are skipped.
func NewContactMemory(seed ...model.Contact) *ContactMemory {
	m := &ContactMemory{
		nextID:   1,
		contacts: make(map[uint64]model.Contact, len(seed)),
		byName:   make(map[string]uint64, len(seed)),
	}
	for _, c := range seed {
		if _, ok := m.byName[c.Name]; ok {
			continue
		}
		m.insert(c)
	}
	return m
}

var _ repository.ContactRepository = (*ContactMemory)(nil)

func parseID(id string) (uint64, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return 0, repository.ErrInvalidID
	}
	return n, nil
}

// insert must be called with mu held.
func (m *ContactMemory) insert(c model.Contact) model.Contact {
	id := m.nextID
	m.nextID++
	c.ID = strconv.FormatUint(id, 10)
	m.contacts[id] = c
	m.byName[c.Name] = id
	return c
}

// Create stores a copy of c under a new id.
func (m *ContactMemory) Create(_ context.Context, c *model.Contact) (*model.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[c.Name]; ok {
		return nil, repository.ErrDuplicateName
	}
	out := m.insert(*c)
	return &out, nil
}

// FindByID returns a copy of the stored contact.
func (m *ContactMemory) FindByID(_ context.Context, id string) (*model.Contact, error) {
	n, err := parseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[n]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

// FindByName looks up the exact name.
func (m *ContactMemory) FindByName(_ context.Context, name string) (*model.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.byName[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := m.contacts[n]
	return &c, nil
}

// List returns contacts ordered by id.
func (m *ContactMemory) List(_ context.Context, q repository.ListQuery) (*repository.PageResult[model.Contact], error) {
	m.mu.Lock()
	ids := make([]uint64, 0, len(m.contacts))
	needle := strings.ToLower(q.Name)
	for id, c := range m.contacts {
		if needle == "" || strings.Contains(strings.ToLower(c.Name), needle) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	items := make([]model.Contact, 0, len(ids))
	for _, id := range ids {
		items = append(items, m.contacts[id])
	}
	m.mu.Unlock()

	total := len(items)
	start := min(max(q.Offset, 0), total)
	end := total
	if q.Limit > 0 && q.Limit < total-start {
		end = start + q.Limit
	}
	return &repository.PageResult[model.Contact]{
		Items: items[start:end],
		Total: total,
	}, nil
}

// Update replaces name and number; the id is kept.
func (m *ContactMemory) Update(_ context.Context, c *model.Contact) (*model.Contact, error) {
	n, err := parseID(c.ID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	old, ok := m.contacts[n]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if owner, taken := m.byName[c.Name]; taken && owner != n {
		return nil, repository.ErrDuplicateName
	}
	delete(m.byName, old.Name)
	updated := model.Contact{ID: old.ID, Name: c.Name, Number: c.Number}
	m.contacts[n] = updated
	m.byName[updated.Name] = n
	return &updated, nil
}

// Delete is a no-op for unknown ids.
func (m *ContactMemory) Delete(_ context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.contacts[n]; ok {
		delete(m.byName, c.Name)
		delete(m.contacts, n)
	}
	return nil
}

// Count returns the number of stored contacts.
func (m *ContactMemory) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.contacts), nil
}
