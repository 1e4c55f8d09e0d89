package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository is the journal of orders handed off to WhatsApp
type OrderRepository interface {
	Append(ctx context.Context, order *models.OrderRecord) error
	GetByID(ctx context.Context, id string) (*models.OrderRecord, error)
	List(ctx context.Context, limit int) ([]models.OrderRecord, error)
}

// InMemoryOrderRepository keeps the journal in process memory
type InMemoryOrderRepository struct {
	orders []models.OrderRecord
	byID   map[string]int
	mu     sync.RWMutex
}

// NewInMemoryOrderRepository creates an empty journal
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		byID: make(map[string]int),
	}
}

// Append records an order
func (r *InMemoryOrderRepository) Append(ctx context.Context, order *models.OrderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[order.ID] = len(r.orders)
	r.orders = append(r.orders, *order)
	return nil
}

// GetByID returns an order by its ID
func (r *InMemoryOrderRepository) GetByID(ctx context.Context, id string) (*models.OrderRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	order := r.orders[i]
	return &order, nil
}

// List returns up to limit orders, newest first. limit <= 0 returns all.
func (r *InMemoryOrderRepository) List(ctx context.Context, limit int) ([]models.OrderRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.orders)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]models.OrderRecord, 0, n)
	for i := len(r.orders) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.orders[i])
	}
	return out, nil
}
