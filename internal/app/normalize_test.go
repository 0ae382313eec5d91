package app_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"residency_hub/internal/app"
	"residency_hub/internal/domain"
)

func TestParseFilter(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want domain.Filter
	}{
		{
			name: "defaults",
			raw:  "",
			want: domain.Filter{Page: 1, Limit: 10, SortField: domain.SortCreatedAt, SortOrder: domain.SortDesc},
		},
		{
			name: "non-numeric paging falls back",
			raw:  "page=NaN&limit=ten",
			want: domain.Filter{Page: 1, Limit: 10, SortField: domain.SortCreatedAt, SortOrder: domain.SortDesc},
		},
		{
			name: "zero and negative clamp to one",
			raw:  "page=-3&limit=0",
			want: domain.Filter{Page: 1, Limit: 1, SortField: domain.SortCreatedAt, SortOrder: domain.SortDesc},
		},
		{
			name: "full request",
			raw:  "page=2&limit=5&category=Villa&city=+Cape+Town+&minPrice=100&maxPrice=900&bedrooms=3&bathrooms=2&search=sea&sortBy=price&sortOrder=asc",
			want: domain.Filter{
				Page: 2, Limit: 5, Category: "Villa", City: "Cape Town",
				MinPrice: ptr(int64(100)), MaxPrice: ptr(int64(900)),
				Bedrooms: ptr(3), Bathrooms: ptr(2), Search: "sea",
				SortField: domain.SortPrice, SortOrder: domain.SortAsc,
			},
		},
		{
			name: "invalid bounds are absent",
			raw:  "minPrice=cheap&maxPrice=1e6&bedrooms=two&bathrooms=",
			want: domain.Filter{Page: 1, Limit: 10, SortField: domain.SortCreatedAt, SortOrder: domain.SortDesc},
		},
		{
			name: "q aliases search",
			raw:  "q=garden",
			want: domain.Filter{Page: 1, Limit: 10, Search: "garden", SortField: domain.SortCreatedAt, SortOrder: domain.SortDesc},
		},
		{
			name: "search wins over q",
			raw:  "q=garden&search=pool",
			want: domain.Filter{Page: 1, Limit: 10, Search: "pool", SortField: domain.SortCreatedAt, SortOrder: domain.SortDesc},
		},
		{
			name: "unknown sort falls back",
			raw:  "sortBy=rating&sortOrder=ASC",
			want: domain.Filter{Page: 1, Limit: 10, SortField: domain.SortCreatedAt, SortOrder: domain.SortDesc},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			vals, err := url.ParseQuery(c.raw)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(c.want, app.ParseFilter(vals)); diff != "" {
				t.Fatalf("filter (-want +got):\n%s", diff)
			}
		})
	}
}
