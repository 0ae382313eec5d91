package app

import (
	"net/url"
	"strconv"
	"strings"

	"residency_hub/internal/domain"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ParseFilter turns raw query parameters into a filter. It never fails:
// malformed numbers fall back to defaults (page, limit) or are dropped
// (price and room bounds), and page/limit below 1 are clamped to 1.
func ParseFilter(q url.Values) domain.Filter {
	f := domain.Filter{
		Page:      intParam(q, "page", defaultPage),
		Limit:     intParam(q, "limit", defaultLimit),
		Category:  strings.TrimSpace(q.Get("category")),
		City:      strings.TrimSpace(q.Get("city")),
		MinPrice:  int64Ptr(q.Get("minPrice")),
		MaxPrice:  int64Ptr(q.Get("maxPrice")),
		Bedrooms:  intPtr(q.Get("bedrooms")),
		Bathrooms: intPtr(q.Get("bathrooms")),
		Search:    strings.TrimSpace(q.Get("search")),
		SortField: domain.SortField(q.Get("sortBy")),
		SortOrder: domain.SortDesc,
	}
	if f.Search == "" {
		f.Search = strings.TrimSpace(q.Get("q"))
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 1
	}
	if !f.SortField.Valid() {
		f.SortField = domain.SortCreatedAt
	}
	if q.Get("sortOrder") == string(domain.SortAsc) {
		f.SortOrder = domain.SortAsc
	}
	return f
}

func intParam(q url.Values, key string, def int) int {
	if n := intPtr(q.Get(key)); n != nil {
		return *n
	}
	return def
}

func intPtr(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

func int64Ptr(s string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
