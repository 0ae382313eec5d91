package app

import (
	"strings"

	"residency_hub/internal/domain"
)

// ResidencyInput is the create payload. Facilities may be an object or a
// JSON-encoded string.
type ResidencyInput struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Price       *int64               `json:"price"`
	Address     string               `json:"address"`
	City        string               `json:"city"`
	Country     string               `json:"country"`
	Image       string               `json:"image"`
	Facilities  domain.RawFacilities `json:"facilities"`
	UserEmail   string               `json:"userEmail"`
}

// ResidencyPatch is the update payload; nil fields are left untouched.
type ResidencyPatch struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Price       *int64                `json:"price"`
	Address     *string               `json:"address"`
	City        *string               `json:"city"`
	Country     *string               `json:"country"`
	Image       *string               `json:"image"`
	Facilities  *domain.RawFacilities `json:"facilities"`
}

func (in ResidencyInput) Validate() error {
	var errs []string
	required := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, name+" is required")
		}
	}
	required("title", in.Title)
	required("description", in.Description)
	required("address", in.Address)
	required("city", in.City)
	required("country", in.Country)
	switch {
	case in.Price == nil:
		errs = append(errs, "price is required")
	case *in.Price < 0:
		errs = append(errs, "price must be a non-negative integer")
	}
	if !validEmail(in.UserEmail) {
		errs = append(errs, "userEmail must be a valid email address")
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (p ResidencyPatch) Validate() error {
	var errs []string
	notBlank := func(name string, v *string) {
		if v != nil && strings.TrimSpace(*v) == "" {
			errs = append(errs, name+" must not be empty")
		}
	}
	notBlank("title", p.Title)
	notBlank("description", p.Description)
	notBlank("address", p.Address)
	notBlank("city", p.City)
	notBlank("country", p.Country)
	if p.Price != nil && *p.Price < 0 {
		errs = append(errs, "price must be a non-negative integer")
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.IndexByte(s, '@')
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}
