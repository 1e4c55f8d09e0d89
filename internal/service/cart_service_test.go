package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/pricing"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/repository"
)

func newTestCartService() *CartService {
	return NewCartService(
		repository.NewInMemoryProductRepository(),
		repository.NewInMemoryCartRepository(time.Hour),
		pricing.DefaultPolicy(),
	)
}

func mustCreateCart(t *testing.T, svc *CartService) string {
	t.Helper()
	cart, err := svc.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return cart.ID
}

func TestCartService_Create(t *testing.T) {
	svc := newTestCartService()

	cart, err := svc.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if cart.ID == "" {
		t.Error("cart ID is empty")
	}
	if cart.Items == nil || len(cart.Items) != 0 {
		t.Errorf("expected empty non-nil items, got %v", cart.Items)
	}

	got, err := svc.Get(context.Background(), cart.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != cart.ID {
		t.Errorf("Get() ID = %s, want %s", got.ID, cart.ID)
	}
}

func TestCartService_AddItem(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()
	cartID := mustCreateCart(t, svc)

	tests := []struct {
		name    string
		req     models.AddItemRequest
		wantErr error
	}{
		{"valid tier", models.AddItemRequest{ProductID: 1, Weight: "1kg"}, nil},
		{"unknown product", models.AddItemRequest{ProductID: 99999, Weight: "1kg"}, ErrInvalidProduct},
		{"unknown weight", models.AddItemRequest{ProductID: 5, Weight: "250g"}, ErrInvalidWeight},
		{"empty weight", models.AddItemRequest{ProductID: 1, Weight: ""}, ErrInvalidWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, cartID, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddItem() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := svc.AddItem(ctx, "no-such-cart", models.AddItemRequest{ProductID: 1, Weight: "1kg"}); !errors.Is(err, repository.ErrCartNotFound) {
		t.Errorf("AddItem() on unknown cart error = %v, want ErrCartNotFound", err)
	}
}

func TestCartService_AddSameItemTwice(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()
	cartID := mustCreateCart(t, svc)

	req := models.AddItemRequest{ProductID: 1, Weight: "1kg"}
	if _, err := svc.AddItem(ctx, cartID, req); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	cart, err := svc.AddItem(ctx, cartID, req)
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	item := cart.Items[0]
	if item.ID != "1-1kg" || item.Quantity != 2 {
		t.Errorf("item = %+v, want ID 1-1kg quantity 2", item)
	}
	if cart.Summary.Total.String() != "640" {
		t.Errorf("total = %s, want 640 (free delivery)", cart.Summary.Total)
	}

	cart, _ = svc.AddItem(ctx, cartID, models.AddItemRequest{ProductID: 1, Weight: "250g"})
	if len(cart.Items) != 2 {
		t.Errorf("different weight should add a new line, got %d lines", len(cart.Items))
	}
}

func TestCartService_UpdateQuantity(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()
	cartID := mustCreateCart(t, svc)

	if _, err := svc.AddItem(ctx, cartID, models.AddItemRequest{ProductID: 1, Weight: "1kg"}); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	cart, err := svc.UpdateQuantity(ctx, cartID, "1-1kg", 1)
	if err != nil {
		t.Fatalf("UpdateQuantity() error = %v", err)
	}
	if cart.Summary.Total.String() != "370" {
		t.Errorf("total = %s, want 370", cart.Summary.Total)
	}

	if _, err := svc.UpdateQuantity(ctx, cartID, "1-1kg", -1); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("negative quantity error = %v, want ErrInvalidQuantity", err)
	}
	if _, err := svc.UpdateQuantity(ctx, cartID, "2-1kg", 3); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("unknown item error = %v, want ErrItemNotFound", err)
	}

	cart, err = svc.UpdateQuantity(ctx, cartID, "1-1kg", 0)
	if err != nil {
		t.Fatalf("UpdateQuantity(0) error = %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("quantity 0 should remove the line, got %+v", cart.Items)
	}
}

func TestCartService_RemoveAndClear(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()
	cartID := mustCreateCart(t, svc)

	_, _ = svc.AddItem(ctx, cartID, models.AddItemRequest{ProductID: 3, Weight: "500g"})
	_, _ = svc.AddItem(ctx, cartID, models.AddItemRequest{ProductID: 13, Weight: "250g"})

	cart, err := svc.RemoveItem(ctx, cartID, "3-500g")
	if err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].ID != "13-250g" {
		t.Errorf("unexpected items after remove: %+v", cart.Items)
	}

	if err := svc.Clear(ctx, cartID); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	cart, err = svc.Get(ctx, cartID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("expected empty cart after clear, got %+v", cart.Items)
	}
}

func TestCartService_ConcurrentAdds(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()
	cartID := mustCreateCart(t, svc)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddItem(ctx, cartID, models.AddItemRequest{ProductID: 8, Weight: "250g"}); err != nil {
				t.Errorf("AddItem() error = %v", err)
			}
		}()
	}
	wg.Wait()

	cart, _ := svc.Get(ctx, cartID)
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 50 {
		t.Errorf("expected one line with quantity 50, got %+v", cart.Items)
	}
	if cart.Summary.ItemCount != 50 {
		t.Errorf("item count = %d, want 50", cart.Summary.ItemCount)
	}
}

func TestCartService_Checkout(t *testing.T) {
	svc := newTestCartService()
	ctx := context.Background()
	cartID := mustCreateCart(t, svc)
	_, _ = svc.AddItem(ctx, cartID, models.AddItemRequest{ProductID: 16, Weight: "500g"})

	failure := errors.New("journal unavailable")
	err := svc.Checkout(ctx, cartID, func(cart *models.CartView) error { return failure })
	if !errors.Is(err, failure) {
		t.Fatalf("Checkout() error = %v, want callback error", err)
	}
	cart, _ := svc.Get(ctx, cartID)
	if len(cart.Items) != 1 {
		t.Errorf("failed checkout must keep the items, got %+v", cart.Items)
	}

	var seen *models.CartView
	if err := svc.Checkout(ctx, cartID, func(cart *models.CartView) error {
		seen = cart
		return nil
	}); err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if seen == nil || seen.Summary.Total.String() != "275" {
		t.Errorf("callback should see the priced cart, got %+v", seen)
	}
	cart, _ = svc.Get(ctx, cartID)
	if len(cart.Items) != 0 {
		t.Errorf("successful checkout should empty the cart, got %+v", cart.Items)
	}

	if err := svc.Checkout(ctx, "missing", func(*models.CartView) error { return nil }); !errors.Is(err, repository.ErrCartNotFound) {
		t.Errorf("Checkout() on unknown cart error = %v, want ErrCartNotFound", err)
	}
}
