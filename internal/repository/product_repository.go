package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

// InMemoryProductRepository implements ProductRepository with in-memory storage
type InMemoryProductRepository struct {
	products map[int64]models.Product
	order    []int64
}

// NewInMemoryProductRepository creates a repository holding the shop catalog
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return NewInMemoryProductRepositoryWith(SeedProducts())
}

// NewInMemoryProductRepositoryWith creates a repository over the given products
func NewInMemoryProductRepositoryWith(products []models.Product) *InMemoryProductRepository {
	repo := &InMemoryProductRepository{
		products: make(map[int64]models.Product, len(products)),
		order:    make([]int64, 0, len(products)),
	}
	for _, p := range products {
		if _, dup := repo.products[p.ID]; !dup {
			repo.order = append(repo.order, p.ID)
		}
		repo.products[p.ID] = p
	}
	sort.Slice(repo.order, func(i, j int) bool { return repo.order[i] < repo.order[j] })
	return repo
}

// GetAll returns all products ordered by ID
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.products[id])
	}
	return products, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	product, exists := r.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func tiers(pairs ...interface{}) []models.WeightOption {
	out := make([]models.WeightOption, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.WeightOption{
			Weight: pairs[i].(string),
			Price:  decimal.NewFromInt(int64(pairs[i+1].(int))),
		})
	}
	return out
}

func pct(v int) *int { return &v }

// SeedProducts returns the shop's catalog
func SeedProducts() []models.Product {
	return []models.Product{
		{
			ID: 1, Name: "Premium Chicken Breast", Category: "chicken",
			Description: "Fresh, tender chicken breast cuts perfect for grilling, roasting, or curry preparations. Skinless and boneless for convenience.",
			PricePerKg:  decimal.NewFromInt(320),
			Image:       "https://images.unsplash.com/photo-1682991136736-a2b44623eeba",
			Rating:      4.8, IsNew: true,
			Tags:    []string{"Fresh", "Boneless", "Premium", "Protein Rich", "Grilled"},
			Weights: tiers("250g", 80, "500g", 160, "1kg", 320),
		},
		{
			ID: 2, Name: "Chicken Thighs - Bone-in", Category: "chicken",
			Description: "Juicy, flavorful chicken thighs with bone for enhanced taste. Perfect for curries, roasts, and traditional preparations.",
			PricePerKg:  decimal.NewFromInt(280),
			Image:       "https://images.unsplash.com/photo-1629966207968-16b1027bed09",
			Rating:      4.7, Discount: pct(10),
			Tags:    []string{"Fresh", "Juicy", "Bone-in", "Traditional", "Curry"},
			Weights: tiers("250g", 70, "500g", 140, "1kg", 280),
		},
		{
			ID: 3, Name: "Chicken Wings", Category: "chicken",
			Description: "Premium chicken wings perfect for BBQ, tandoor, or spicy preparations. Fresh and tender with natural flavor.",
			PricePerKg:  decimal.NewFromInt(260),
			Image:       "https://images.unsplash.com/photo-1718421670841-19501b4a9e03",
			Rating:      4.6,
			Tags:        []string{"Wings", "BBQ", "Tandoor", "Spicy", "Party"},
			Weights:     tiers("250g", 65, "500g", 130, "1kg", 260),
		},
		{
			ID: 4, Name: "Chicken Drumsticks", Category: "chicken",
			Description: "Fresh chicken drumsticks with skin on for maximum flavor. Great for tandoor, curry, or grilled preparations.",
			PricePerKg:  decimal.NewFromInt(270),
			Image:       "https://images.unsplash.com/photo-1690983323238-0b91789e1b5a",
			Rating:      4.7, Discount: pct(5),
			Tags:    []string{"Drumsticks", "Skin-on", "Tandoor", "Flavorful"},
			Weights: tiers("250g", 68, "500g", 135, "1kg", 270),
		},
		{
			ID: 5, Name: "Whole Chicken - Cleaned", Category: "chicken",
			Description: "Fresh whole chicken, cleaned and ready for cooking. Perfect for roasting, curry, or biryani preparations.",
			PricePerKg:  decimal.NewFromInt(240),
			Image:       "https://images.unsplash.com/photo-1690983321750-ad6f6d59a84b",
			Rating:      4.8,
			Tags:        []string{"Whole", "Cleaned", "Roasting", "Biryani", "Traditional"},
			Weights:     tiers("1kg", 240, "1.5kg", 360, "2kg", 480),
		},
		{
			ID: 6, Name: "Chicken Curry Cut", Category: "chicken",
			Description: "Mixed chicken pieces cut specially for curry preparations. Contains a mix of all parts for authentic taste.",
			PricePerKg:  decimal.NewFromInt(250),
			Image:       "https://images.unsplash.com/photo-1690983322025-aab4f95a0269",
			Rating:      4.6,
			Tags:        []string{"Curry", "Mixed", "Traditional", "Home Style", "Bone-in"},
			Weights:     tiers("500g", 125, "1kg", 250, "1.5kg", 375),
		},
		{
			ID: 7, Name: "Chicken Boneless Cubes", Category: "chicken",
			Description: "Premium boneless chicken cut into perfect cubes for tikka, kabab, and stir-fry preparations.",
			PricePerKg:  decimal.NewFromInt(350),
			Image:       "https://images.unsplash.com/photo-1613454320437-0c228c8b1723",
			Rating:      4.9, IsNew: true,
			Tags:    []string{"Boneless", "Cubes", "Tikka", "Kabab", "Premium"},
			Weights: tiers("250g", 88, "500g", 175, "1kg", 350),
		},
		{
			ID: 8, Name: "Chicken Liver", Category: "chicken",
			Description: "Fresh chicken liver, rich in iron and vitamins. Perfect for traditional preparations and health-conscious choices.",
			PricePerKg:  decimal.NewFromInt(180),
			Image:       "https://images.pexels.com/photos/5490707/pexels-photo-5490707.jpeg",
			Rating:      4.4,
			Tags:        []string{"Liver", "Iron Rich", "Healthy", "Traditional", "Vitamins"},
			Weights:     tiers("250g", 45, "500g", 90, "1kg", 180),
		},
		{
			ID: 11, Name: "Mutton Leg - Premium Cut", Category: "mutton",
			Description: "Premium mutton leg pieces, tender and flavorful. Perfect for special occasions and traditional biryanis.",
			PricePerKg:  decimal.NewFromInt(650),
			Image:       "https://images.unsplash.com/photo-1717980651515-7796a793002f",
			Rating:      4.9,
			Tags:        []string{"Premium", "Leg", "Tender", "Biryani", "Special"},
			Weights:     tiers("500g", 325, "1kg", 650, "1.5kg", 975),
		},
		{
			ID: 12, Name: "Mutton Shoulder - Bone-in", Category: "mutton",
			Description: "Fresh mutton shoulder with bone, perfect for slow-cooked curries and traditional preparations.",
			PricePerKg:  decimal.NewFromInt(620),
			Image:       "https://images.pexels.com/photos/112781/pexels-photo-112781.jpeg",
			Rating:      4.7, Discount: pct(8),
			Tags:    []string{"Shoulder", "Bone-in", "Slow-cook", "Curry", "Traditional"},
			Weights: tiers("500g", 310, "1kg", 620, "1.5kg", 930),
		},
		{
			ID: 13, Name: "Mutton Keema", Category: "mutton",
			Description: "Fresh minced mutton, perfect for keema curry, kababs, and authentic Lucknowi preparations.",
			PricePerKg:  decimal.NewFromInt(580),
			Image:       "https://images.pexels.com/photos/618775/pexels-photo-618775.jpeg",
			Rating:      4.8,
			Tags:        []string{"Keema", "Minced", "Kabab", "Lucknowi", "Authentic"},
			Weights:     tiers("250g", 145, "500g", 290, "1kg", 580),
		},
		{
			ID: 15, Name: "Mutton Boneless", Category: "mutton",
			Description: "Premium boneless mutton pieces, carefully cleaned and cut. Perfect for quick cooking and modern preparations.",
			PricePerKg:  decimal.NewFromInt(720),
			Image:       "https://images.unsplash.com/photo-1659881981676-33ab127152c0",
			Rating:      4.9, IsNew: true, Discount: pct(5),
			Tags:    []string{"Boneless", "Premium", "Quick Cook", "Modern", "Clean"},
			Weights: tiers("250g", 180, "500g", 360, "1kg", 720),
		},
		{
			ID: 16, Name: "Fresh Pomfret", Category: "fish",
			Description: "Fresh pomfret fish, cleaned and ready to cook. Perfect for Bengali fish curry and fried preparations.",
			PricePerKg:  decimal.NewFromInt(450),
			Image:       "https://images.unsplash.com/photo-1544943910-4c1dc44aab44",
			Rating:      4.6,
			Tags:        []string{"Fish", "Fresh", "Pomfret", "Bengali", "Curry"},
			Weights:     tiers("250g", 113, "500g", 225, "1kg", 450),
		},
		{
			ID: 17, Name: "Chicken Seekh Kebab", Category: "processed",
			Description: "Ready-to-cook chicken seekh kebabs with traditional spices and herbs. Just grill and serve.",
			PricePerKg:  decimal.NewFromInt(420),
			Image:       "https://images.unsplash.com/photo-1607623814075-e51df1bdc82f",
			Rating:      4.7, IsNew: true, Discount: pct(10),
			Tags:    []string{"Kebab", "Ready-to-cook", "Spiced", "Grilled", "Party"},
			Weights: tiers("250g", 105, "500g", 210, "1kg", 420),
		},
	}
}
