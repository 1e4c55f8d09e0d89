package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrClientNameRequired = errors.New("client_name is required")
)

// StatusService records status checks from clients
type StatusService struct {
	repo repository.StatusRepository
	now  func() time.Time
}

// NewStatusService creates a new status service
func NewStatusService(repo repository.StatusRepository) *StatusService {
	return &StatusService{repo: repo, now: time.Now}
}

// Create stores a status check for the named client
func (s *StatusService) Create(ctx context.Context, req models.StatusCheckCreate) (*models.StatusCheck, error) {
	if strings.TrimSpace(req.ClientName) == "" {
		return nil, ErrClientNameRequired
	}

	check := &models.StatusCheck{
		ID:         uuid.New().String(),
		ClientName: req.ClientName,
		Timestamp:  s.now().UTC(),
	}
	if err := s.repo.Create(ctx, check); err != nil {
		return nil, err
	}
	return check, nil
}

func (s *StatusService) List(ctx context.Context) ([]models.StatusCheck, error) {
	return s.repo.List(ctx)
}
