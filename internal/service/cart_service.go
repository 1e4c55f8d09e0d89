package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/pricing"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidWeight   = errors.New("weight not offered for product")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
	ErrItemNotFound    = errors.New("cart item not found")
)

// CartService handles cart mutations and totals
type CartService struct {
	products repository.ProductRepository
	carts    repository.CartRepository
	policy   pricing.DeliveryPolicy
	now      func() time.Time

	// serialises read-modify-write cycles on carts within this process
	mu sync.Mutex
}

// NewCartService creates a new cart service
func NewCartService(products repository.ProductRepository, carts repository.CartRepository, policy pricing.DeliveryPolicy) *CartService {
	return &CartService{
		products: products,
		carts:    carts,
		policy:   policy,
		now:      time.Now,
	}
}

// Policy returns the delivery rule used for summaries
func (s *CartService) Policy() pricing.DeliveryPolicy {
	return s.policy
}

// Create starts an empty cart
func (s *CartService) Create(ctx context.Context) (*models.CartView, error) {
	cart := &models.Cart{
		ID:        uuid.New().String(),
		Items:     []models.CartItem{},
		UpdatedAt: s.now().UTC(),
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

// Get returns the cart with its summary
func (s *CartService) Get(ctx context.Context, cartID string) (*models.CartView, error) {
	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

// AddItem puts one unit of the product at the given weight in the cart.
// A line for the same product and weight has its quantity increased instead.
func (s *CartService) AddItem(ctx context.Context, cartID string, req models.AddItemRequest) (*models.CartView, error) {
	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrInvalidProduct
		}
		return nil, err
	}

	option, ok := product.WeightOption(req.Weight)
	if !ok {
		return nil, ErrInvalidWeight
	}

	return s.mutate(ctx, cartID, func(cart *models.Cart) error {
		itemID := models.CartItemID(product.ID, option.Weight)
		if i := cart.Find(itemID); i >= 0 {
			cart.Items[i].Quantity++
			return nil
		}

		cart.Items = append(cart.Items, models.CartItem{
			ID:        itemID,
			ProductID: product.ID,
			Name:      product.Name,
			Weight:    option.Weight,
			Price:     option.Price,
			Quantity:  1,
			Image:     product.Image,
		})
		return nil
	})
}

// UpdateQuantity sets a line's quantity; zero removes the line
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) (*models.CartView, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	return s.mutate(ctx, cartID, func(cart *models.Cart) error {
		i := cart.Find(itemID)
		if i < 0 {
			return ErrItemNotFound
		}

		if quantity == 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return nil
		}
		cart.Items[i].Quantity = quantity
		return nil
	})
}

// RemoveItem drops a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID string) (*models.CartView, error) {
	return s.UpdateQuantity(ctx, cartID, itemID, 0)
}

// Clear empties the cart but keeps its ID
func (s *CartService) Clear(ctx context.Context, cartID string) error {
	_, err := s.mutate(ctx, cartID, func(cart *models.Cart) error {
		cart.Items = []models.CartItem{}
		return nil
	})
	return err
}

// Checkout hands the current cart to fn and empties the cart once fn succeeds.
// The cart stays locked for the whole call, so concurrent checkouts and item
// changes on the same cart wait until it is done. fn must not call back into
// the CartService.
func (s *CartService) Checkout(ctx context.Context, cartID string, fn func(*models.CartView) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return err
	}

	if err := fn(s.view(cart)); err != nil {
		return err
	}

	cart.Items = []models.CartItem{}
	cart.UpdatedAt = s.now().UTC()
	return s.carts.Save(ctx, cart)
}

func (s *CartService) mutate(ctx context.Context, cartID string, fn func(*models.Cart) error) (*models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if err := fn(cart); err != nil {
		return nil, err
	}

	cart.UpdatedAt = s.now().UTC()
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.view(cart), nil
}

func (s *CartService) view(cart *models.Cart) *models.CartView {
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &models.CartView{
		Cart:    *cart,
		Summary: s.policy.Summarize(cart.Items),
	}
}
