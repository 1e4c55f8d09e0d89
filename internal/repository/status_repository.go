package repository

import (
	"context"
	"sync"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
)

// statusListLimit caps how many status checks a listing returns
const statusListLimit = 1000

// StatusRepository stores status checks
type StatusRepository interface {
	Create(ctx context.Context, check *models.StatusCheck) error
	List(ctx context.Context) ([]models.StatusCheck, error)
}

// InMemoryStatusRepository keeps status checks in process memory
type InMemoryStatusRepository struct {
	checks []models.StatusCheck
	mu     sync.RWMutex
}

// NewInMemoryStatusRepository creates an empty status store
func NewInMemoryStatusRepository() *InMemoryStatusRepository {
	return &InMemoryStatusRepository{}
}

func (r *InMemoryStatusRepository) Create(ctx context.Context, check *models.StatusCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks = append(r.checks, *check)
	return nil
}

// List returns checks in insertion order
func (r *InMemoryStatusRepository) List(ctx context.Context) ([]models.StatusCheck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.checks)
	if n > statusListLimit {
		n = statusListLimit
	}
	out := make([]models.StatusCheck, n)
	copy(out, r.checks[:n])
	return out, nil
}
