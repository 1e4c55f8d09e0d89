// Package search matches storefront queries against catalog text.
//
// A query that is blank after trimming matches everything. Otherwise a product
// matches when the lower-cased query, surrounding spaces included, is a substring
// of its name, its description or any of its tags. Index answers the same question as
// Matches but first consults a per-product Bloom filter of byte trigrams, so
// products that cannot contain the query are skipped without scanning their text.
package search

import (
	"strings"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	"github.com/bits-and-blooms/bloom/v3"
)

const (
	gramSize      = 3
	falsePositive = 0.01
)

// Index holds the catalog in listing order with one trigram filter per product
type Index struct {
	entries []entry
}

type entry struct {
	product models.Product
	fields  []string
	grams   *bloom.BloomFilter
}

// NewIndex builds an index over products, keeping their order
func NewIndex(products []models.Product) *Index {
	idx := &Index{entries: make([]entry, 0, len(products))}
	for _, p := range products {
		fields := searchableFields(p)

		n := 0
		for _, f := range fields {
			if len(f) >= gramSize {
				n += len(f) - gramSize + 1
			}
		}
		if n == 0 {
			n = 1
		}

		filter := bloom.NewWithEstimates(uint(n), falsePositive)
		for _, f := range fields {
			for i := 0; i+gramSize <= len(f); i++ {
				filter.AddString(f[i : i+gramSize])
			}
		}

		idx.entries = append(idx.entries, entry{product: p, fields: fields, grams: filter})
	}
	return idx
}

// Len returns the number of indexed products
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Search returns products passing filter, in index order
func (idx *Index) Search(filter models.ProductFilter) []models.Product {
	query := Normalize(filter.Query)
	category := strings.ToLower(strings.TrimSpace(filter.Category))

	var grams []string
	for i := 0; i+gramSize <= len(query); i++ {
		grams = append(grams, query[i:i+gramSize])
	}

	results := make([]models.Product, 0, len(idx.entries))
	for _, e := range idx.entries {
		if !categoryMatches(e.product, category) {
			continue
		}
		if !active(query) {
			results = append(results, e.product)
			continue
		}
		if !mayContain(e.grams, grams) {
			continue
		}
		if containsAny(e.fields, query) {
			results = append(results, e.product)
		}
	}
	return results
}

// Matches is the unindexed form of Search for a single product
func Matches(p models.Product, filter models.ProductFilter) bool {
	if !categoryMatches(p, strings.ToLower(strings.TrimSpace(filter.Category))) {
		return false
	}
	query := Normalize(filter.Query)
	if !active(query) {
		return true
	}
	return containsAny(searchableFields(p), query)
}

// Normalize lower-cases a query. Spaces are kept so "chicken " only matches
// text where the word is followed by a space.
func Normalize(q string) string {
	return strings.ToLower(q)
}

func active(query string) bool {
	return strings.TrimSpace(query) != ""
}

func categoryMatches(p models.Product, category string) bool {
	return category == "" || category == "all" || strings.ToLower(p.Category) == category
}

func mayContain(filter *bloom.BloomFilter, grams []string) bool {
	for _, g := range grams {
		if !filter.TestString(g) {
			return false
		}
	}
	return true
}

func containsAny(fields []string, query string) bool {
	for _, f := range fields {
		if strings.Contains(f, query) {
			return true
		}
	}
	return false
}

func searchableFields(p models.Product) []string {
	fields := make([]string, 0, 2+len(p.Tags))
	fields = append(fields, strings.ToLower(p.Name), strings.ToLower(p.Description))
	for _, tag := range p.Tags {
		fields = append(fields, strings.ToLower(tag))
	}
	return fields
}
