package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/repository"
)

func TestStatusService(t *testing.T) {
	svc := NewStatusService(repository.NewInMemoryStatusRepository())
	ctx := context.Background()

	if _, err := svc.Create(ctx, models.StatusCheckCreate{ClientName: " "}); !errors.Is(err, ErrClientNameRequired) {
		t.Errorf("error = %v, want ErrClientNameRequired", err)
	}

	check, err := svc.Create(ctx, models.StatusCheckCreate{ClientName: "Premium Butcher Shop"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if check.ID == "" || check.Timestamp.IsZero() {
		t.Errorf("expected ID and timestamp, got %+v", check)
	}

	checks, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(checks) != 1 || checks[0].ClientName != "Premium Butcher Shop" {
		t.Errorf("unexpected checks: %+v", checks)
	}
}
