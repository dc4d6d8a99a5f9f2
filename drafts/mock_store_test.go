package drafts

import (
	"context"
	"sync"

	"guia-piracicaba-backend/models"
	"guia-piracicaba-backend/store"

	"github.com/google/uuid"
)

type mockStore struct {
	GetBusinessFn    func(ctx context.Context, id uuid.UUID) (*models.Business, error)
	UpdateBusinessFn func(ctx context.Context, b *models.Business) error

	mu          sync.Mutex
	businesses  map[uuid.UUID]models.Business
	UpdateCalls []uuid.UUID
	Omitted     map[uuid.UUID][]string
}

func newMockStore(businesses ...models.Business) *mockStore {
	m := &mockStore{businesses: make(map[uuid.UUID]models.Business)}
	for _, b := range businesses {
		m.businesses[b.ID] = b
	}
	return m
}

func (m *mockStore) GetBusiness(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	if m.GetBusinessFn != nil {
		return m.GetBusinessFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.businesses[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &b, nil
}

func (m *mockStore) UpdateBusiness(ctx context.Context, b *models.Business, omit ...string) error {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, b.ID)
	if m.Omitted == nil {
		m.Omitted = make(map[uuid.UUID][]string)
	}
	m.Omitted[b.ID] = omit
	m.mu.Unlock()
	if m.UpdateBusinessFn != nil {
		return m.UpdateBusinessFn(ctx, b)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.businesses[b.ID]; !ok {
		return store.ErrNotFound
	}
	m.businesses[b.ID] = *b
	return nil
}

func (m *mockStore) stored(id uuid.UUID) models.Business {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.businesses[id]
}
