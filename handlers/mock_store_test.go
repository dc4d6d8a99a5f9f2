package handlers

import (
	"context"
	"errors"

	"guia-piracicaba-backend/models"
	"guia-piracicaba-backend/store"

	"github.com/google/uuid"
)

var errStoreDown = errors.New("connection refused")

// mockStore wraps the SQLite store; set an Fn field to override one operation.
type mockStore struct {
	*store.GormStore
	ListBusinessesFn      func(ctx context.Context) ([]models.Business, error)
	GetBusinessFn         func(ctx context.Context, id uuid.UUID) (*models.Business, error)
	UpdateBusinessFn      func(ctx context.Context, b *models.Business) error
	CreateCustomerFn      func(ctx context.Context, c *models.Customer) error
	FindCustomerByPhoneFn func(ctx context.Context, phone string) (*models.Customer, error)
	UpdateCalls           int
}

func newMockStore() *mockStore {
	return &mockStore{GormStore: store.New(testDB)}
}

func (m *mockStore) ListBusinesses(ctx context.Context) ([]models.Business, error) {
	if m.ListBusinessesFn != nil {
		return m.ListBusinessesFn(ctx)
	}
	return m.GormStore.ListBusinesses(ctx)
}

func (m *mockStore) GetBusiness(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	if m.GetBusinessFn != nil {
		return m.GetBusinessFn(ctx, id)
	}
	return m.GormStore.GetBusiness(ctx, id)
}

func (m *mockStore) UpdateBusiness(ctx context.Context, b *models.Business, omit ...string) error {
	m.UpdateCalls++
	if m.UpdateBusinessFn != nil {
		return m.UpdateBusinessFn(ctx, b)
	}
	return m.GormStore.UpdateBusiness(ctx, b, omit...)
}

func (m *mockStore) CreateCustomer(ctx context.Context, c *models.Customer) error {
	if m.CreateCustomerFn != nil {
		return m.CreateCustomerFn(ctx, c)
	}
	return m.GormStore.CreateCustomer(ctx, c)
}

func (m *mockStore) FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	if m.FindCustomerByPhoneFn != nil {
		return m.FindCustomerByPhoneFn(ctx, phone)
	}
	return m.GormStore.FindCustomerByPhone(ctx, phone)
}
