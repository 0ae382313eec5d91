package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"residency_hub/internal/domain"
)

const defaultStoreTimeout = 5 * time.Second

type QueryService struct {
	repo    domain.ResidencyRepository
	cache   domain.Cache
	timeout time.Duration
}

// NewQueryService wires the read pipeline. storeTimeout bounds every store
// call; zero selects a 5s default.
func NewQueryService(r domain.ResidencyRepository, c domain.Cache, storeTimeout time.Duration) *QueryService {
	if storeTimeout <= 0 {
		storeTimeout = defaultStoreTimeout
	}
	return &QueryService{repo: r, cache: c, timeout: storeTimeout}
}

// CacheKey serializes the raw query string in request order. Keys and values
// are decoded and re-escaped, so equivalent spellings of one parameter share
// a key while an encoded '&' or '=' never splits into extra parameters. Two
// requests listing the same parameters in a different order get different keys.
func CacheKey(prefix, rawQuery string) string {
	var b strings.Builder
	b.WriteString(prefix)
	sep := byte('?')
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		b.WriteByte(sep)
		sep = '&'
		b.WriteString(canonicalPair(pair))
	}
	return b.String()
}

// canonicalPair re-escapes a decoded key=value pair. Malformed escapes are
// kept verbatim; QueryEscape never emits a bare '%' so they cannot collide.
func canonicalPair(pair string) string {
	k, v, hasValue := strings.Cut(pair, "=")
	dk, errK := url.QueryUnescape(k)
	dv, errV := url.QueryUnescape(v)
	if errK != nil || errV != nil {
		return pair
	}
	if !hasValue {
		return url.QueryEscape(dk)
	}
	return url.QueryEscape(dk) + "=" + url.QueryEscape(dv)
}

// List serves GET /residency.
func (s *QueryService) List(ctx context.Context, rawQuery string, f domain.Filter) (domain.Page, error) {
	return cached(ctx, s.cache, CacheKey("residency:list", rawQuery), func(ctx context.Context) (domain.Page, error) {
		props, err := s.fetch(ctx, f.StoreQuery())
		if err != nil {
			return domain.Page{}, err
		}
		return Apply(props, f), nil
	})
}

// Search applies the list filters and sort without pagination.
func (s *QueryService) Search(ctx context.Context, rawQuery string, f domain.Filter) ([]domain.Property, error) {
	return cached(ctx, s.cache, CacheKey("residency:search", rawQuery), func(ctx context.Context) ([]domain.Property, error) {
		props, err := s.fetch(ctx, f.StoreQuery())
		if err != nil {
			return nil, err
		}
		matched := Match(props, f)
		SortProperties(matched, f.SortField, f.SortOrder)
		return matched, nil
	})
}

func (s *QueryService) Get(ctx context.Context, id string) (domain.Property, error) {
	return cached(ctx, s.cache, "residency:id:"+id, func(ctx context.Context) (domain.Property, error) {
		return s.fetchOne(ctx, id)
	})
}

func (s *QueryService) Featured(ctx context.Context) ([]domain.Property, error) {
	return cached(ctx, s.cache, "residency:featured", func(ctx context.Context) ([]domain.Property, error) {
		props, err := s.fetch(ctx, domain.StoreQuery{})
		if err != nil {
			return nil, err
		}
		return Featured(props), nil
	})
}

func (s *QueryService) Similar(ctx context.Context, id string) ([]domain.Property, error) {
	return cached(ctx, s.cache, "residency:similar:"+id, func(ctx context.Context) ([]domain.Property, error) {
		ref, err := s.fetchOne(ctx, id)
		if err != nil {
			return nil, err
		}
		props, err := s.fetch(ctx, domain.StoreQuery{})
		if err != nil {
			return nil, err
		}
		return Similar(ref, props), nil
	})
}

func (s *QueryService) Stats(ctx context.Context) (domain.Stats, error) {
	return cached(ctx, s.cache, "residency:stats", func(ctx context.Context) (domain.Stats, error) {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		st, err := s.repo.Stats(ctx, topCitiesLimit)
		if err != nil {
			return domain.Stats{}, upstream(err)
		}
		return st, nil
	})
}

func (s *QueryService) fetch(ctx context.Context, q domain.StoreQuery) ([]domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	recs, err := s.repo.ListResidencies(ctx, q)
	if err != nil {
		return nil, upstream(err)
	}
	return shapeAll(recs), nil
}

func (s *QueryService) fetchOne(ctx context.Context, id string) (domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	rec, err := s.repo.GetResidency(ctx, id)
	if err != nil {
		return domain.Property{}, upstream(err)
	}
	return Shape(rec), nil
}

// upstream marks store failures; not-found and conflict pass through.
func upstream(err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrUpstream) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
}

// cached serves key from c when fresh, otherwise loads and stores it.
// Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, c domain.Cache, key string, load func(context.Context) (T, error)) (T, error) {
	var out T
	ok, err := c.Get(ctx, key, &out)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
	}
	if ok && err == nil {
		return out, nil
	}

	out, err = load(ctx)
	if err != nil {
		return out, err
	}
	if err := c.Set(ctx, key, out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
	return out, nil
}
