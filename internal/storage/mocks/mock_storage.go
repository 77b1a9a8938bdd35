package mocks

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"phonebook/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of storage.Storage. Put keeps a copy of every
// body it receives, readable through Uploaded.
type MockStorage struct {
	mock.Mock

	mu      sync.Mutex
	uploads map[string][]byte
}

var _ storage.Storage = (*MockStorage)(nil)

// Put drains r before recording the call; expectations see a fresh reader over the same bytes.
func (m *MockStorage) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	m.mu.Lock()
	if m.uploads == nil {
		m.uploads = make(map[string][]byte)
	}
	m.uploads[key] = body
	m.mu.Unlock()

	args := m.Called(ctx, key, bytes.NewReader(body), opt)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

// Uploaded returns the last body passed to Put under key.
func (m *MockStorage) Uploaded(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.uploads[key]
	return body, ok
}

func (m *MockStorage) Get(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, key)
	info, _ := args.Get(1).(storage.ObjectInfo)
	if args.Get(0) == nil {
		return nil, info, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), info, args.Error(2)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}
