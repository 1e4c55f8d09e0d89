package repository

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/robfig/cron"
)

var (
	ErrCartNotFound = errors.New("cart not found")
)

// CartRepository stores carts by ID
type CartRepository interface {
	Get(ctx context.Context, id string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, id string) error
}

// InMemoryCartRepository keeps carts in process memory. Carts idle for longer
// than ttl are dropped by Sweep.
type InMemoryCartRepository struct {
	carts map[string]models.Cart
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
}

// NewInMemoryCartRepository creates an empty cart store; ttl <= 0 disables expiry
func NewInMemoryCartRepository(ttl time.Duration) *InMemoryCartRepository {
	return &InMemoryCartRepository{
		carts: make(map[string]models.Cart),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns a copy of the cart
func (r *InMemoryCartRepository) Get(ctx context.Context, id string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[id]
	if !ok || r.expired(cart) {
		return nil, ErrCartNotFound
	}
	return cloneCart(cart), nil
}

// Save stores a copy of the cart
func (r *InMemoryCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cart.ID] = *cloneCart(*cart)
	return nil
}

// Delete removes the cart
func (r *InMemoryCartRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[id]; !ok {
		return ErrCartNotFound
	}
	delete(r.carts, id)
	return nil
}

// Len returns the number of stored carts, expired or not
func (r *InMemoryCartRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts)
}

// Sweep drops expired carts and returns how many were removed
func (r *InMemoryCartRepository) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, cart := range r.carts {
		if r.expired(cart) {
			delete(r.carts, id)
			removed++
		}
	}
	return removed
}

// ScheduleSweep registers Sweep on the cron scheduler
func (r *InMemoryCartRepository) ScheduleSweep(c *cron.Cron, spec string, logger *slog.Logger) error {
	return c.AddFunc(spec, func() {
		if n := r.Sweep(); n > 0 {
			logger.Info("expired carts swept", "removed", n)
		}
	})
}

func (r *InMemoryCartRepository) expired(cart models.Cart) bool {
	return r.ttl > 0 && r.now().Sub(cart.UpdatedAt) > r.ttl
}

func cloneCart(c models.Cart) *models.Cart {
	out := c
	out.Items = append([]models.CartItem(nil), c.Items...)
	return &out
}
