package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"credit-score/domain"
)

// ClientRepositoryMemory is an in-memory implementation of ClientRepository.
type ClientRepositoryMemory struct {
	mu      sync.RWMutex
	data    map[int64]domain.Client
	lastID  int64
	childID int64
}

// NewClientRepositoryMemory creates a new in-memory client repository.
func NewClientRepositoryMemory() *ClientRepositoryMemory {
	return &ClientRepositoryMemory{
		data: make(map[int64]domain.Client),
	}
}

// List returns all clients ordered by id.
func (r *ClientRepositoryMemory) List(_ context.Context) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]domain.Client, 0, len(r.data))
	for _, c := range r.data {
		clients = append(clients, cloneClient(c))
	}
	slices.SortFunc(clients, func(a, b domain.Client) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return clients, nil
}

func (r *ClientRepositoryMemory) FindByID(_ context.Context, id int64) (domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.data[id]
	if !ok {
		return domain.Client{}, domain.ErrClientNotFound
	}
	return cloneClient(c), nil
}

// Create assigns ids to the client and to each of its messages and debts.
func (r *ClientRepositoryMemory) Create(_ context.Context, client domain.Client) (domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	c := cloneClient(client)
	c.ID = r.lastID
	for i := range c.Messages {
		r.childID++
		c.Messages[i].ID = r.childID
	}
	for i := range c.Debts {
		r.childID++
		c.Debts[i].ID = r.childID
	}
	r.data[c.ID] = c
	return cloneClient(c), nil
}

// Delete removes the client along with its messages and debts.
func (r *ClientRepositoryMemory) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *ClientRepositoryMemory) Ping(_ context.Context) error {
	return nil
}

func cloneClient(c domain.Client) domain.Client {
	c.Messages = slices.Clone(c.Messages)
	c.Debts = slices.Clone(c.Debts)
	return c
}
