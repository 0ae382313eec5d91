package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// Record is a residency row as persisted by the store. Facilities may arrive
// either as JSON text (database column, legacy payloads) or as a parsed map.
type Record struct {
	ID          string
	Title       string
	Description string
	Price       int64 // smallest currency unit
	Address     string
	City        string
	Country     string
	Image       string
	Facilities  RawFacilities
	UserEmail   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type FacilitiesKind uint8

const (
	FacilitiesNone FacilitiesKind = iota
	FacilitiesJSON
	FacilitiesMap
)

// RawFacilities is the unresolved facilities blob: JSON text or a parsed map.
// Only the shaper looks inside it.
type RawFacilities struct {
	Kind FacilitiesKind
	JSON string
	Map  map[string]any
}

func FacilitiesFromJSON(s string) RawFacilities {
	return RawFacilities{Kind: FacilitiesJSON, JSON: s}
}

func FacilitiesFromMap(m map[string]any) RawFacilities {
	if m == nil {
		return RawFacilities{}
	}
	return RawFacilities{Kind: FacilitiesMap, Map: m}
}

var errFacilitiesShape = errors.New("facilities must be an object or a JSON string")

// UnmarshalJSON accepts an object, a string holding JSON, or null.
func (f *RawFacilities) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*f = RawFacilities{}
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FacilitiesFromJSON(s)
	case b[0] == '{':
		var m map[string]any
		if err := json.Unmarshal(b, &m); err != nil {
			return err
		}
		*f = FacilitiesFromMap(m)
	default:
		return errFacilitiesShape
	}
	return nil
}

// Encode returns the blob as JSON text suitable for a JSON column.
func (f RawFacilities) Encode() (string, error) {
	switch f.Kind {
	case FacilitiesJSON:
		return f.JSON, nil
	case FacilitiesMap:
		b, err := json.Marshal(f.Map)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return "{}", nil
}

// Property is the canonical read shape served by every read path.
type Property struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       int64          `json:"price"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	Country     string         `json:"country"`
	Image       string         `json:"image"`
	Facilities  map[string]any `json:"facilities"`
	Rating      float64        `json:"rating"`
	Category    string         `json:"category"`
	Featured    bool           `json:"featured"`
	Bedrooms    int            `json:"bedrooms"`
	Bathrooms   int            `json:"bathrooms"`
	Parkings    int            `json:"parkings"`
	UserEmail   string         `json:"userEmail,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Record turns a shaped property back into a storable record.
func (p Property) Record() Record {
	return Record{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Address:     p.Address,
		City:        p.City,
		Country:     p.Country,
		Image:       p.Image,
		Facilities:  FacilitiesFromMap(p.Facilities),
		UserEmail:   p.UserEmail,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNext      bool `json:"hasNext"`
	HasPrev      bool `json:"hasPrev"`
}

type Page struct {
	Data       []Property `json:"data"`
	Pagination Pagination `json:"pagination"`
	Filters    Filter     `json:"filters"`
}

type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

type Stats struct {
	Count     int         `json:"totalProperties"`
	AvgPrice  float64     `json:"averagePrice"`
	MinPrice  int64       `json:"minPrice"`
	MaxPrice  int64       `json:"maxPrice"`
	TopCities []CityCount `json:"topCities"`
}
