package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/config"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/pincode"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/pricing"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/repository"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/service"
	"github.com/Lixing-Zhang/mulghai-point/backend/pkg/logger"
)

const testAPIKey = "apitest"

// newTestAPI builds the full router over in-memory repositories
func newTestAPI(t *testing.T) http.Handler {
	t.Helper()
	log := logger.Discard()

	productRepo := repository.NewInMemoryProductRepository()
	productService, err := service.NewProductService(context.Background(), productRepo)
	if err != nil {
		t.Fatalf("NewProductService() error = %v", err)
	}

	validator := pincode.NewValidator(pincode.DefaultAreas())
	cartService := service.NewCartService(productRepo, repository.NewInMemoryCartRepository(time.Hour), pricing.DefaultPolicy())
	shop := service.ShopInfo{Name: "Mulghai Point", WhatsAppPhone: "917986955634", SupportPhone: "6284307484"}
	orderService := service.NewOrderService(cartService, validator, repository.NewInMemoryOrderRepository(), shop)
	statusService := service.NewStatusService(repository.NewInMemoryStatusRepository())

	return NewRouter(Handlers{
		Health:   NewHealthHandler(log, nil),
		Status:   NewStatusHandler(statusService, log),
		Products: NewProductHandler(productService, log),
		Pincodes: NewPincodeHandler(validator, log),
		Carts:    NewCartHandler(cartService, log),
		Orders:   NewOrderHandler(orderService, log),
		WhatsApp: NewWhatsAppHandler(shop, log),
	},
		config.ServerConfig{AllowedOrigins: []string{"*"}},
		config.AuthConfig{APIKeys: []string{testAPIKey}},
		log,
	)
}

// do sends a request through the router and decodes a JSON response into out
func do(t *testing.T, h http.Handler, method, path string, body interface{}, out interface{}) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if strings.HasPrefix(path, "/api/admin") {
		req.Header.Set("api_key", testAPIKey)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if out != nil {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: failed to decode response: %v", method, path, err)
		}
	}
	return w.Code
}

func createCart(t *testing.T, h http.Handler) string {
	t.Helper()
	var cart models.CartView
	if status := do(t, h, http.MethodPost, "/api/cart", nil, &cart); status != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", status)
	}
	return cart.ID
}
