package app

import (
	"cmp"
	"slices"
	"strings"

	"residency_hub/internal/domain"
)

const (
	similarLimit     = 4
	featuredLimit    = 6
	similarPriceBand = 0.20
	topCitiesLimit   = 5
)

// Apply filters, sorts and paginates an in-memory result set.
func Apply(props []domain.Property, f domain.Filter) domain.Page {
	matched := Match(props, f)
	SortProperties(matched, f.SortField, f.SortOrder)
	return Paginate(matched, f)
}

// Match keeps the properties satisfying every filter in f. Top-level
// predicates were normally evaluated by the store already; facility-backed
// ones (category, bedrooms, bathrooms) can only be evaluated here.
func Match(props []domain.Property, f domain.Filter) []domain.Property {
	out := make([]domain.Property, 0, len(props))
	for _, p := range props {
		if matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p domain.Property, f domain.Filter) bool {
	if f.City != "" && !containsFold(p.City, f.City) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.Search != "" &&
		!containsFold(p.Title, f.Search) && !containsFold(p.Description, f.Search) &&
		!containsFold(p.Address, f.Search) && !containsFold(p.City, f.Search) {
		return false
	}
	if f.Category != "" && !containsFold(p.Category, f.Category) {
		return false
	}
	if f.Bedrooms != nil && p.Bedrooms < *f.Bedrooms {
		return false
	}
	if f.Bathrooms != nil && p.Bathrooms < *f.Bathrooms {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// SortProperties sorts in place. The sort is stable: equal keys keep their
// incoming order in both directions.
func SortProperties(props []domain.Property, field domain.SortField, order domain.SortOrder) {
	slices.SortStableFunc(props, func(a, b domain.Property) int {
		c := compareBy(a, b, field)
		if order == domain.SortAsc {
			return c
		}
		return -c
	})
}

func compareBy(a, b domain.Property, field domain.SortField) int {
	switch field {
	case domain.SortPrice:
		return cmp.Compare(a.Price, b.Price)
	case domain.SortTitle:
		return strings.Compare(a.Title, b.Title)
	case domain.SortUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

// Paginate slices one page. A page past the end yields no data but still
// reports the totals.
func Paginate(props []domain.Property, f domain.Filter) domain.Page {
	page, limit := max(f.Page, 1), max(f.Limit, 1)
	total := len(props)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	data := []domain.Property{}
	if page-1 < totalPages {
		skip := (page - 1) * limit
		data = props[skip:min(skip+limit, total)]
	}

	f.Page, f.Limit = page, limit
	return domain.Page{
		Data: data,
		Pagination: domain.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
			HasNext:      page < totalPages,
			HasPrev:      page > 1,
		},
		Filters: f,
	}
}

// Similar returns up to four properties sharing ref's city or priced within
// 20% of it, restricted to ref's category when ref declares one.
func Similar(ref domain.Property, all []domain.Property) []domain.Property {
	lo := float64(ref.Price) * (1 - similarPriceBand)
	hi := float64(ref.Price) * (1 + similarPriceBand)
	_, hasCategory := ref.Facilities["category"]

	out := make([]domain.Property, 0, similarLimit)
	for _, p := range all {
		if p.ID == ref.ID {
			continue
		}
		price := float64(p.Price)
		if !strings.EqualFold(p.City, ref.City) && (price < lo || price > hi) {
			continue
		}
		if hasCategory && !strings.EqualFold(p.Category, ref.Category) {
			continue
		}
		out = append(out, p)
		if len(out) == similarLimit {
			break
		}
	}
	return out
}

// Featured returns up to six properties whose facilities.featured is the
// boolean true.
func Featured(all []domain.Property) []domain.Property {
	out := make([]domain.Property, 0, featuredLimit)
	for _, p := range all {
		if !p.Featured {
			continue
		}
		out = append(out, p)
		if len(out) == featuredLimit {
			break
		}
	}
	return out
}
