package catalog

import (
	"sort"
	"strings"
	"time"
)

// Product is a catalog entry. Stored as one document per product; list
// endpoints scan the whole table and filter/sort in process, matching the
// access pattern of the storefront.
type Product struct {
	ID          string   `json:"id" dynamodbav:"id"`
	Name        string   `json:"name" dynamodbav:"name"`
	Description string   `json:"description" dynamodbav:"description"`
	CategoryID  string   `json:"categoryId" dynamodbav:"categoryId"`
	Price       float64  `json:"price" dynamodbav:"price"`
	Image       string   `json:"image" dynamodbav:"image"`
	Images      []string `json:"images,omitempty" dynamodbav:"images,omitempty"`
	InStock     bool     `json:"inStock" dynamodbav:"inStock"`
	Featured    bool     `json:"featured" dynamodbav:"featured"`
	CreatedAt   string   `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt   string   `json:"updatedAt" dynamodbav:"updatedAt"`
}

// Category groups products for navigation.
type Category struct {
	ID        string `json:"id" dynamodbav:"id"`
	Name      string `json:"name" dynamodbav:"name"`
	Slug      string `json:"slug" dynamodbav:"slug"`
	Image     string `json:"image,omitempty" dynamodbav:"image,omitempty"`
	SortOrder int    `json:"sortOrder" dynamodbav:"sortOrder"`
}

// ListFilter narrows a scanned product set. Zero values mean "no constraint".
type ListFilter struct {
	CategoryID  string
	Search      string
	OnlyInStock bool
	Featured    bool
	SortBy      string // "price", "-price", "name", "newest"
}

// Apply filters and sorts products in process. The input slice is not
// modified.
func (f ListFilter) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, p := range products {
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.OnlyInStock && !p.InStock {
			continue
		}
		if f.Featured && !p.Featured {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}

	switch f.SortBy {
	case "price":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case "-price":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case "name":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case "newest":
		sort.SliceStable(out, func(i, j int) bool { return laterRFC3339(out[i].CreatedAt, out[j].CreatedAt) })
	}

	return out
}

func laterRFC3339(a, b string) bool {
	ta, errA := time.Parse(time.RFC3339, a)
	tb, errB := time.Parse(time.RFC3339, b)
	if errA != nil || errB != nil {
		return a > b
	}
	return ta.After(tb)
}
