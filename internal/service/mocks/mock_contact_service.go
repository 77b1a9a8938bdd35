package mocks

import (
	"context"

	"phonebook/internal/model"
	"phonebook/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) List(ctx context.Context, opts service.ListOptions) (*service.ContactListResult, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ContactListResult), args.Error(1)
}

func (m *MockContactService) Get(ctx context.Context, id string) (*model.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactService) Create(ctx context.Context, name, number string) (*model.Contact, error) {
	args := m.Called(ctx, name, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactService) Update(ctx context.Context, id string, in service.UpdateInput) (*model.Contact, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactService) UpsertByName(ctx context.Context, name, number string) (*model.Contact, bool, error) {
	args := m.Called(ctx, name, number)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Contact), args.Bool(1), args.Error(2)
}

func (m *MockContactService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactService) Info(ctx context.Context) (*service.Info, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Info), args.Error(1)
}
