package client

import (
	"context"
	"errors"
	"testing"

	"github.com/pierreiost/quadracerta/internal/domain/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const complexID = "0190a3b2-7c4d-7e5f-8a9b-0c1d2e3f4a5b"

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Create(ctx context.Context, c client.Client) (client.Client, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(client.Client), args.Error(1)
}

func (m *MockClientRepository) GetByID(ctx context.Context, id string, complexID string) (client.Client, error) {
	args := m.Called(ctx, id, complexID)
	return args.Get(0).(client.Client), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context, filter client.ListClientsFilter) ([]client.Client, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]client.Client), args.Error(1)
}

func (m *MockClientRepository) Update(ctx context.Context, req client.UpdateClientRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id string, complexID string) error {
	return m.Called(ctx, id, complexID).Error(0)
}

func (m *MockClientRepository) ExistsByPhone(ctx context.Context, complexID string, phone string, excludeID string) (bool, error) {
	args := m.Called(ctx, complexID, phone, excludeID)
	return args.Bool(0), args.Error(1)
}

type stubOpenTabs map[string]bool

func (s stubOpenTabs) HasOpenTab(_ context.Context, clientID string) (bool, error) {
	return s[clientID], nil
}

func TestCreate_NormalizesFields(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := NewClientService(repo, stubOpenTabs{})

	repo.On("ExistsByPhone", ctx, complexID, "11987654321", "").Return(false, nil)
	repo.On("Create", ctx, client.Client{
		ComplexID: complexID,
		FullName:  "Ana Souza",
		Phone:     "11987654321",
		Email:     "ana@example.com",
	}).Return(client.Client{ID: "client-1", ComplexID: complexID, FullName: "Ana Souza", Phone: "11987654321", Email: "ana@example.com"}, nil)

	resp, err := svc.Create(ctx, client.CreateClientRequest{
		ComplexID: complexID,
		FullName:  " Ana Souza ",
		Phone:     "11987654321",
		Email:     " Ana@Example.com ",
	})
	require.NoError(t, err)
	assert.Equal(t, "client-1", resp.ID)
	repo.AssertExpectations(t)
}

func TestCreate_PhoneExists(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := NewClientService(repo, stubOpenTabs{})

	repo.On("ExistsByPhone", ctx, complexID, "11987654321", "").Return(true, nil)

	_, err := svc.Create(ctx, client.CreateClientRequest{ComplexID: complexID, FullName: "Ana", Phone: "11987654321"})
	assert.ErrorIs(t, err, client.ErrPhoneExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdate_PhoneTakenByAnotherClient(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := NewClientService(repo, stubOpenTabs{})

	phone := "11912345678"
	repo.On("ExistsByPhone", ctx, complexID, phone, "client-1").Return(true, nil)

	_, err := svc.Update(ctx, client.UpdateClientRequest{ID: "client-1", ComplexID: complexID, Phone: &phone})
	assert.ErrorIs(t, err, client.ErrPhoneExists)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestList_TrimsSearch(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := NewClientService(repo, stubOpenTabs{})

	repo.On("List", ctx, client.ListClientsFilter{ComplexID: complexID, Search: "ana"}).
		Return([]client.Client{{ID: "client-1", FullName: "Ana Souza"}}, nil)

	resp, err := svc.List(ctx, client.ListClientsFilter{ComplexID: complexID, Search: "  ana "})
	require.NoError(t, err)
	assert.Len(t, resp, 1)
}

func TestDelete_RefusedWithOpenTab(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := NewClientService(repo, stubOpenTabs{"client-1": true})

	repo.On("GetByID", ctx, "client-1", complexID).Return(client.Client{ID: "client-1", ComplexID: complexID}, nil)

	err := svc.Delete(ctx, "client-1", complexID)
	assert.ErrorIs(t, err, client.ErrClientHasOpenTab)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_WithoutOpenTab(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := NewClientService(repo, stubOpenTabs{})

	repo.On("GetByID", ctx, "client-1", complexID).Return(client.Client{ID: "client-1", ComplexID: complexID}, nil)
	repo.On("Delete", ctx, "client-1", complexID).Return(nil)

	require.NoError(t, svc.Delete(ctx, "client-1", complexID))
	repo.AssertExpectations(t)
}

func TestDelete_RepositoryFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockClientRepository)
	svc := NewClientService(repo, stubOpenTabs{})

	boom := errors.New("connection refused")
	repo.On("GetByID", ctx, "client-1", complexID).Return(client.Client{}, boom)

	err := svc.Delete(ctx, "client-1", complexID)
	assert.ErrorIs(t, err, boom)
}
