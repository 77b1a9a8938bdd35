package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"phonebook/internal/model"
	"phonebook/internal/storage"
)

// ErrSnapshotNotFound is returned when a snapshot object does not exist.
var ErrSnapshotNotFound = errors.New("snapshot not found")

const snapshotPrefix = "snapshots/"

// snapshotFile is the JSON document written to object storage.
type snapshotFile struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Contacts  []snapshotEntry `json:"contacts"`
}

type snapshotEntry struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

// RestoreResult counts what a restore did.
type RestoreResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// SnapshotService exports the phonebook to object storage and restores it.
type SnapshotService interface {
	// Export writes every contact to a new snapshot object and returns a presigned download URL.
	Export(ctx context.Context) (*model.Snapshot, error)

	// Restore upserts every entry of the snapshot by name. Entries that fail validation are skipped.
	Restore(ctx context.Context, id string) (*RestoreResult, error)

	// Delete removes a snapshot object.
	Delete(ctx context.Context, id string) error
}

type snapshotService struct {
	store    storage.Storage
	contacts ContactService
	expiry   time.Duration
	now      func() time.Time
}

// NewSnapshotService constructs a SnapshotService. expiry bounds the lifetime of presigned URLs.
func NewSnapshotService(store storage.Storage, contacts ContactService, expiry time.Duration) SnapshotService {
	return &snapshotService{store: store, contacts: contacts, expiry: expiry, now: time.Now}
}

func snapshotKey(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: malformed snapshot id", ErrValidation)
	}
	return snapshotPrefix + id + ".json", nil
}

func (s *snapshotService) Export(ctx context.Context) (*model.Snapshot, error) {
	all, err := s.contacts.List(ctx, ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	file := snapshotFile{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Contacts:  make([]snapshotEntry, 0, len(all.Items)),
	}
	for _, c := range all.Items {
		file.Contacts = append(file.Contacts, snapshotEntry{Name: c.Name, Number: c.Number})
	}
	body, err := json.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	key := snapshotPrefix + file.ID + ".json"
	if _, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	link, err := s.store.PresignGet(ctx, key, s.expiry)
	if err != nil {
		// Rollback: a snapshot nobody can download is not reported as created
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("presign failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign failed: %w", err)
	}

	return &model.Snapshot{
		ID:        file.ID,
		Key:       key,
		Count:     len(file.Contacts),
		URL:       link,
		CreatedAt: file.CreatedAt,
	}, nil
}

func (s *snapshotService) Restore(ctx context.Context, id string) (*RestoreResult, error) {
	key, err := snapshotKey(id)
	if err != nil {
		return nil, err
	}
	rc, _, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("download snapshot: %w", err)
	}
	defer rc.Close()

	var file snapshotFile
	if err := json.NewDecoder(rc).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	res := &RestoreResult{}
	for _, e := range file.Contacts {
		_, created, err := s.contacts.UpsertByName(ctx, e.Name, e.Number)
		switch {
		case errors.Is(err, ErrValidation):
			res.Skipped++
		case err != nil:
			return nil, fmt.Errorf("restore %q: %w", e.Name, err)
		case created:
			res.Created++
		default:
			res.Updated++
		}
	}
	return res, nil
}

func (s *snapshotService) Delete(ctx context.Context, id string) error {
	key, err := snapshotKey(id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return nil
}
