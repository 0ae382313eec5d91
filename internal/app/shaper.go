package app

import (
	"encoding/json"
	"maps"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"residency_hub/internal/domain"
)

/********** facility alias registry **********/

// Canonical key first; the abbreviation is only read when the canonical key
// is missing or not numeric.
var facilityAliases = map[string][]string{
	"bedrooms":  {"bedrooms", "bed"},
	"bathrooms": {"bathrooms", "bath"},
	"parkings":  {"parkings", "parking"},
}

const (
	defaultRating   = 4.5
	defaultCategory = "Property"
)

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// floatFlexible: finite number from several paths (float64/int/string like "4,5").
// NaN and infinities are skipped since they cannot be encoded as JSON.
func floatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		var f float64
		switch v := lookupAny(m, k).(type) {
		case float64:
			f = v
		case int:
			f = float64(v)
		case int64:
			f = float64(v)
		case json.Number:
			n, err := v.Float64()
			if err != nil {
				continue
			}
			f = n
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			n, err := strconv.ParseFloat(s, 64)
			if err != nil {
				continue
			}
			f = n
		default:
			continue
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		return &f
	}
	return nil
}

// intFlexible: int from several paths; fractional values truncate.
func intFlexible(m map[string]any, paths ...string) (int, bool) {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case int:
			return v, true
		case int64:
			return int(v), true
		case string:
			s := strings.TrimSpace(v)
			if n, err := strconv.Atoi(s); err == nil {
				return n, true
			}
		}
		if f := floatFlexible(m, k); f != nil {
			return int(*f), true
		}
	}
	return 0, false
}

/********** facilities **********/

// parseFacilities resolves the raw blob to a map. Undecodable or null input
// yields an empty map; a string holding a JSON-encoded string is unwrapped once.
func parseFacilities(raw domain.RawFacilities) map[string]any {
	switch raw.Kind {
	case domain.FacilitiesMap:
		if raw.Map == nil {
			return map[string]any{}
		}
		return maps.Clone(raw.Map)
	case domain.FacilitiesJSON:
		if m, ok := decodeFacilities(raw.JSON); ok {
			return m
		}
		var inner string
		if err := json.Unmarshal([]byte(raw.JSON), &inner); err == nil {
			if m, ok := decodeFacilities(inner); ok {
				return m
			}
		}
		log.Debug().Str("context", "parseFacilities").Msg("undecodable facilities, using empty map")
	}
	return map[string]any{}
}

func decodeFacilities(s string) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

/********** shaper **********/

// Shape normalizes a stored record into the canonical property. Shaping the
// record of an already shaped property yields the same property.
func Shape(r domain.Record) domain.Property {
	fac := parseFacilities(r.Facilities)

	p := domain.Property{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Address:     r.Address,
		City:        r.City,
		Country:     r.Country,
		Image:       r.Image,
		Facilities:  fac,
		Rating:      defaultRating,
		Category:    defaultCategory,
		Featured:    fac["featured"] == true,
		UserEmail:   r.UserEmail,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if f := floatFlexible(fac, "rating"); f != nil {
		p.Rating = *f
	}
	if s, ok := fac["category"].(string); ok && strings.TrimSpace(s) != "" {
		p.Category = s
	}
	p.Bedrooms, _ = intFlexible(fac, facilityAliases["bedrooms"]...)
	p.Bathrooms, _ = intFlexible(fac, facilityAliases["bathrooms"]...)
	p.Parkings, _ = intFlexible(fac, facilityAliases["parkings"]...)
	return p
}

func shapeAll(rs []domain.Record) []domain.Property {
	out := make([]domain.Property, 0, len(rs))
	for _, r := range rs {
		out = append(out, Shape(r))
	}
	return out
}
