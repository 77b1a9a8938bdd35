package mocks

import (
	"context"

	"phonebook/internal/model"
	"phonebook/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockSnapshotService struct {
	mock.Mock
}

func (m *MockSnapshotService) Export(ctx context.Context) (*model.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Snapshot), args.Error(1)
}

func (m *MockSnapshotService) Restore(ctx context.Context, id string) (*service.RestoreResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RestoreResult), args.Error(1)
}

func (m *MockSnapshotService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
