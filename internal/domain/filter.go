package domain

type SortField string

const (
	SortCreatedAt SortField = "createdAt"
	SortPrice     SortField = "price"
	SortTitle     SortField = "title"
	SortUpdatedAt SortField = "updatedAt"
)

// Valid reports whether f is on the sortable allow-list.
func (f SortField) Valid() bool {
	switch f {
	case SortCreatedAt, SortPrice, SortTitle, SortUpdatedAt:
		return true
	}
	return false
}

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filter is the validated list/search request. Its JSON form is the
// "filters" echo in list responses.
type Filter struct {
	Page      int       `json:"-"`
	Limit     int       `json:"-"`
	Category  string    `json:"category,omitempty"`
	City      string    `json:"city,omitempty"`
	MinPrice  *int64    `json:"minPrice,omitempty"`
	MaxPrice  *int64    `json:"maxPrice,omitempty"`
	Bedrooms  *int      `json:"bedrooms,omitempty"`
	Bathrooms *int      `json:"bathrooms,omitempty"`
	Search    string    `json:"search,omitempty"`
	SortField SortField `json:"sortBy"`
	SortOrder SortOrder `json:"sortOrder"`
}

// StoreQuery holds the filters the store can evaluate on top-level columns.
// Facility-backed filters never reach the store.
type StoreQuery struct {
	City     string
	Search   string
	MinPrice *int64
	MaxPrice *int64
}

func (f Filter) StoreQuery() StoreQuery {
	return StoreQuery{City: f.City, Search: f.Search, MinPrice: f.MinPrice, MaxPrice: f.MaxPrice}
}
