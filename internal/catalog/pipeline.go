// Package catalog turns the full product list into the slice a storefront
// page actually shows: category filter, free-text search, sort, paginate.
// Every step is a pure in-memory transformation; none can fail.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Armmuh/naija-coffee-oasis/internal/domain"
)

// Sort orders offered by the storefront.
const (
	SortDefault   = ""
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
	SortNewest    = "newest"
)

// DefaultPageSize is the storefront grid page size.
const DefaultPageSize = 12

// CategoryAll matches every category when used as a filter.
const CategoryAll = "all"

// View holds the filter and sort inputs for one catalog view. Changing any
// field invalidates the current page; callers restart from page 1.
type View struct {
	Category string
	Query    string
	Sort     string
}

// Page is one visible slice of the filtered, sorted catalog.
type Page struct {
	Items      []domain.Product `json:"items"`
	TotalCount int              `json:"total_count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// ValidSort reports whether s names a supported sort order.
func ValidSort(s string) bool {
	switch s {
	case SortDefault, SortPriceLow, SortPriceHigh, SortNameAsc, SortNameDesc, SortNewest:
		return true
	}
	return false
}

// ComputeView filters products by category and query, sorts them, and returns
// the requested page. A page past the end yields an empty slice, never an
// error. The input slice is not modified.
func ComputeView(products []domain.Product, view View, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	filtered := applyFilters(products, view)
	sortProducts(filtered, view.Sort)

	total := len(filtered)
	totalPages := total / pageSize
	if total%pageSize > 0 {
		totalPages++
	}

	start := (page - 1) * pageSize
	items := []domain.Product{}
	if start < total {
		end := start + pageSize
		if end > total {
			end = total
		}
		items = filtered[start:end]
	}

	return Page{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// applyFilters copies the matching products so sorting never reorders the
// caller's slice.
func applyFilters(products []domain.Product, view View) []domain.Product {
	query := strings.ToLower(strings.TrimSpace(view.Query))
	byCategory := view.Category != "" && view.Category != CategoryAll

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if byCategory && p.Category != view.Category {
			continue
		}
		if query != "" && !matchesQuery(&p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesQuery checks the lowercased query against name, description, and
// category.
func matchesQuery(p *domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

// sortProducts orders the slice in place. All sorts are stable so products
// that compare equal keep their original relative order.
func sortProducts(products []domain.Product, order string) {
	switch order {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortNameAsc:
		c := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) < 0
		})
	case SortNameDesc:
		c := collate.New(language.English)
		sort.SliceStable(products, func(i, j int) bool {
			return c.CompareString(products[i].Name, products[j].Name) > 0
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ID < products[j].ID
		})
	}
}
