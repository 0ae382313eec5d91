package domain

import "context"

type ResidencyRepository interface {
	// Write paths
	CreateResidency(ctx context.Context, r Record) error
	UpdateResidency(ctx context.Context, r Record) error
	DeleteResidency(ctx context.Context, id string) error

	// Read paths. ListResidencies returns rows in insertion order.
	GetResidency(ctx context.Context, id string) (Record, error)
	ListResidencies(ctx context.Context, q StoreQuery) ([]Record, error)
	Stats(ctx context.Context, topCities int) (Stats, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, email string) (User, error)
	// SaveUserLists persists bookings and favourites.
	SaveUserLists(ctx context.Context, u User) error
}

// Cache stores JSON payloads for a fixed TTL. InvalidateAll drops every entry.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	InvalidateAll(ctx context.Context) error
}
