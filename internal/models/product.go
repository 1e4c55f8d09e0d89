package models

import "github.com/shopspring/decimal"

// Product is a catalog entry sold in one or more weight tiers
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	PricePerKg  decimal.Decimal `json:"pricePerKg"`
	Image       string          `json:"image"`
	Rating      float64         `json:"rating"`
	IsNew       bool            `json:"isNew"`
	Discount    *int            `json:"discount"`
	Tags        []string        `json:"tags"`
	Weights     []WeightOption  `json:"weights"`
}

// WeightOption is a purchasable weight tier with its fixed price
type WeightOption struct {
	Weight string          `json:"weight"`
	Price  decimal.Decimal `json:"price"`
}

// WeightOption returns the tier matching weight exactly
func (p *Product) WeightOption(weight string) (WeightOption, bool) {
	for _, w := range p.Weights {
		if w.Weight == weight {
			return w, true
		}
	}
	return WeightOption{}, false
}

// Category groups products for the storefront filter bar
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

// ProductFilter narrows a catalog listing. An empty or "all" category matches everything.
type ProductFilter struct {
	Category string
	Query    string
}
