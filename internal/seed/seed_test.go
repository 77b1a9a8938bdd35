package seed

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"phonebook/internal/model"
	"phonebook/internal/repository/memory"
	"phonebook/internal/service"
	svcMocks "phonebook/internal/service/mocks"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []Entry
		wantErr bool
	}{
		{
			name: "entries",
			in:   "contacts:\n  - name: Grace Hopper\n    number: \"555\"\n",
			want: []Entry{{Name: "Grace Hopper", Number: "555"}},
		},
		{name: "empty document", in: ""},
		{name: "unknown key", in: "people: []\n", wantErr: true},
		{name: "not yaml", in: "contacts: [", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Load(strings.NewReader(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Contacts)
		})
	}
}

func TestDefault(t *testing.T) {
	f := Default()

	require.Len(t, f.Contacts, 4)
	assert.Equal(t, Entry{Name: "Arto Hellas", Number: "040-123456"}, f.Contacts[0])
	assert.Equal(t, Entry{Name: "Mary Poppendieck", Number: "39-23-6423122"}, f.Contacts[3])
}

func TestApply_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := service.NewContactService(memory.NewContactMemory())

	first, err := Apply(ctx, svc, Default())
	require.NoError(t, err)
	assert.Equal(t, Result{Created: 4}, first)

	second, err := Apply(ctx, svc, Default())
	require.NoError(t, err)
	assert.Equal(t, Result{Updated: 4}, second)

	info, err := svc.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, info.Count)
}

func TestApply_StopsOnError(t *testing.T) {
	ctx := context.Background()
	mSvc := new(svcMocks.MockContactService)
	mSvc.On("UpsertByName", ctx, "Arto Hellas", mock.Anything).Return(&model.Contact{ID: "1"}, true, nil)
	mSvc.On("UpsertByName", ctx, "Ada Lovelace", mock.Anything).Return(nil, false, errors.New("db down"))

	res, err := Apply(ctx, mSvc, Default())

	assert.EqualError(t, err, `seed "Ada Lovelace": db down`)
	assert.Equal(t, Result{Created: 1}, res)
	mSvc.AssertNotCalled(t, "UpsertByName", ctx, "Dan Abramov", mock.Anything)
}
