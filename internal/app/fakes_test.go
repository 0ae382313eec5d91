package app_test

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"residency_hub/internal/domain"
)

// ---- fakes ----

// fakeRepo keeps records in insertion order and counts store round trips.
// It does no filtering of its own so every predicate is exercised in memory.
type fakeRepo struct {
	mu      sync.Mutex
	recs    []domain.Record
	users   map[string]domain.User
	lists   int
	gets    int
	listErr error
	// onCreate runs after a successful insert, with the lock held.
	onCreate func()
}

func (f *fakeRepo) CreateResidency(ctx context.Context, r domain.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, x := range f.recs {
		if x.Address == r.Address && x.UserEmail == r.UserEmail {
			return fmt.Errorf("insert %s: %w", r.ID, domain.ErrConflict)
		}
	}
	f.recs = append(f.recs, r)
	if f.onCreate != nil {
		f.onCreate()
	}
	return nil
}

func (f *fakeRepo) UpdateResidency(ctx context.Context, r domain.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := slices.IndexFunc(f.recs, func(x domain.Record) bool { return x.ID == r.ID })
	if i < 0 {
		return domain.ErrNotFound
	}
	f.recs[i] = r
	return nil
}

func (f *fakeRepo) DeleteResidency(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := slices.IndexFunc(f.recs, func(x domain.Record) bool { return x.ID == id })
	if i < 0 {
		return domain.ErrNotFound
	}
	f.recs = slices.Delete(f.recs, i, i+1)
	return nil
}

func (f *fakeRepo) GetResidency(ctx context.Context, id string) (domain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	for _, x := range f.recs {
		if x.ID == id {
			return x, nil
		}
	}
	return domain.Record{}, fmt.Errorf("residency %s: %w", id, domain.ErrNotFound)
}

func (f *fakeRepo) ListResidencies(ctx context.Context, q domain.StoreQuery) ([]domain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.recs), nil
}

func (f *fakeRepo) Stats(ctx context.Context, topCities int) (domain.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := domain.Stats{Count: len(f.recs), TopCities: []domain.CityCount{}}
	var sum int64
	for i, r := range f.recs {
		sum += r.Price
		if i == 0 || r.Price < st.MinPrice {
			st.MinPrice = r.Price
		}
		if r.Price > st.MaxPrice {
			st.MaxPrice = r.Price
		}
	}
	if len(f.recs) > 0 {
		st.AvgPrice = float64(sum) / float64(len(f.recs))
	}
	return st, nil
}

func (f *fakeRepo) CreateUser(ctx context.Context, u domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.users == nil {
		f.users = map[string]domain.User{}
	}
	if _, ok := f.users[u.Email]; ok {
		return domain.ErrConflict
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeRepo) GetUser(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) SaveUserLists(ctx context.Context, u domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.users[u.Email]
	if !ok {
		return domain.ErrNotFound
	}
	cur.BookedVisits = slices.Clone(u.BookedVisits)
	cur.Favourites = slices.Clone(u.Favourites)
	f.users[u.Email] = cur
	return nil
}

func (f *fakeRepo) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

// countingCache wraps a cache and counts invalidations.
type countingCache struct {
	domain.Cache
	mu          sync.Mutex
	invalidated int
}

func (c *countingCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	c.invalidated++
	c.mu.Unlock()
	return c.Cache.InvalidateAll(ctx)
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
func newClock() *fakeClock { return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)} }

// ---- fixtures ----

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// rec builds a record created i hours after base.
func rec(i int, city string, price int64, fac string) domain.Record {
	ts := base.Add(time.Duration(i) * time.Hour)
	raw := domain.RawFacilities{}
	if fac != "" {
		raw = domain.FacilitiesFromJSON(fac)
	}
	return domain.Record{
		ID:          fmt.Sprintf("r%02d", i),
		Title:       fmt.Sprintf("Home %02d", i),
		Description: "A place in " + city,
		Price:       price,
		Address:     fmt.Sprintf("%d %s Road", i, strings.ReplaceAll(city, " ", "")),
		City:        city,
		Country:     "South Africa",
		Facilities:  raw,
		UserEmail:   "owner@example.com",
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

func ids(ps []domain.Property) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func ptr[T any](v T) *T { return &v }
