package catalog

import (
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
)

// Filter returns the products whose title contains query, ignoring case.
// Whitespace in query is matched literally; only an empty query returns
// products unchanged.
func Filter(products []domain.Product, query string) []domain.Product {
	if query == "" {
		return products
	}
	q := strings.ToLower(query)

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), q) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
