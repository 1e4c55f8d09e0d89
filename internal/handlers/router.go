package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/config"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Health   *HealthHandler
	Status   *StatusHandler
	Products *ProductHandler
	Pincodes *PincodeHandler
	Carts    *CartHandler
	Orders   *OrderHandler
	WhatsApp *WhatsAppHandler
}

// NewRouter wires the middleware stack and the API routes
func NewRouter(h Handlers, server config.ServerConfig, auth config.AuthConfig, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.Status.Root)
		r.Post("/status", h.Status.CreateStatus)
		r.Get("/status", h.Status.ListStatus)

		r.Get("/product", h.Products.ListProducts)
		r.Get("/product/{productId}", h.Products.GetProduct)
		r.Get("/category", h.Products.ListCategories)

		r.Get("/pincode", h.Pincodes.ListAreas)
		r.Get("/pincode/{pincode}", h.Pincodes.CheckPincode)

		r.Post("/cart", h.Carts.CreateCart)
		r.Route("/cart/{cartId}", func(r chi.Router) {
			r.Get("/", h.Carts.GetCart)
			r.Post("/items", h.Carts.AddItem)
			r.Put("/items/{itemId}", h.Carts.UpdateItem)
			r.Delete("/items/{itemId}", h.Carts.RemoveItem)
			r.Post("/checkout", h.Orders.Checkout)
		})

		r.Get("/whatsapp/inquiry", h.WhatsApp.Inquiry)
		r.Get("/whatsapp/quick-order", h.WhatsApp.QuickOrder)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(auth))
			r.Get("/orders", h.Orders.ListOrders)
			r.Get("/orders/{orderId}", h.Orders.GetOrder)
			r.Get("/orders/{orderId}/confirmation", h.Orders.ConfirmationLink)
			r.Get("/pincode/stats", h.Pincodes.GetStats)
		})
	})

	return r
}
