package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"residency_hub/internal/adapters/observability"
	"residency_hub/internal/domain"
)

var (
	_ domain.ResidencyRepository = (*Repo)(nil)
	_ domain.UserRepository      = (*Repo)(nil)
)

type Repo struct {
	db *sql.DB
	d  Dialect
}

func New(db *sql.DB, d Dialect) *Repo { return &Repo{db: db, d: d} }

func observe(op string, start time.Time, err error) {
	observability.ObserveStore(op, err, time.Since(start))
}

// translate maps driver errors onto domain errors.
func (r *Repo) translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrNotFound
	case r.d.isUnique(err):
		return domain.ErrConflict
	}
	return err
}

func (r *Repo) CreateResidency(ctx context.Context, rec domain.Record) (err error) {
	defer func(start time.Time) { observe("create", start, err) }(time.Now())
	fac, err := rec.Facilities.Encode()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, r.d.rebind(insertResidencySQL),
		rec.ID,
		rec.Title,
		rec.Description,
		rec.Price,
		rec.Address,
		rec.City,
		rec.Country,
		rec.Image,
		fac,
		rec.UserEmail,
		r.d.timeArg(rec.CreatedAt),
		r.d.timeArg(rec.UpdatedAt),
	)
	return r.translate(err)
}

func (r *Repo) UpdateResidency(ctx context.Context, rec domain.Record) (err error) {
	defer func(start time.Time) { observe("update", start, err) }(time.Now())
	fac, err := rec.Facilities.Encode()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, r.d.rebind(updateResidencySQL),
		rec.Title,
		rec.Description,
		rec.Price,
		rec.Address,
		rec.City,
		rec.Country,
		rec.Image,
		fac,
		r.d.timeArg(rec.UpdatedAt),
		rec.ID,
	)
	if err != nil {
		return r.translate(err)
	}
	return affected(res)
}

func (r *Repo) DeleteResidency(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { observe("delete", start, err) }(time.Now())
	res, err := r.db.ExecContext(ctx, r.d.rebind(deleteResidencySQL), id)
	if err != nil {
		return r.translate(err)
	}
	return affected(res)
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) GetResidency(ctx context.Context, id string) (rec domain.Record, err error) {
	defer func(start time.Time) { observe("get", start, err) }(time.Now())
	row := r.db.QueryRowContext(ctx, r.d.rebind(selectResidencyCols+"WHERE id = ?"), id)
	rec, err = scanResidency(row)
	return rec, r.translate(err)
}

// ListResidencies evaluates the top-level filters in SQL and returns rows in
// insertion order.
func (r *Repo) ListResidencies(ctx context.Context, q domain.StoreQuery) (out []domain.Record, err error) {
	defer func(start time.Time) { observe("list", start, err) }(time.Now())

	var (
		where []string
		args  []any
	)
	if q.City != "" {
		where = append(where, r.d.lower+"(city)"+likeClause)
		args = append(args, likePattern(q.City))
	}
	if q.MinPrice != nil {
		where = append(where, "price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		where = append(where, "price <= ?")
		args = append(args, *q.MaxPrice)
	}
	if q.Search != "" {
		cols := []string{"title", "description", "address", "city"}
		ors := make([]string, 0, len(cols))
		for _, c := range cols {
			ors = append(ors, r.d.lower+"("+c+")"+likeClause)
			args = append(args, likePattern(q.Search))
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	query := selectResidencyCols
	if len(where) > 0 {
		query += "WHERE " + strings.Join(where, " AND ") + "\n"
	}
	query += "ORDER BY seq"

	rows, err := r.db.QueryContext(ctx, r.d.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out = []domain.Record{}
	for rows.Next() {
		rec, err := scanResidency(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// likePattern lowercases s, escapes wildcards and wraps it for a substring match.
func likePattern(s string) string {
	s = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(strings.ToLower(s))
	return "%" + s + "%"
}

type scanner interface{ Scan(dest ...any) error }

func scanResidency(s scanner) (domain.Record, error) {
	var (
		rec                  domain.Record
		fac                  sql.NullString
		createdAt, updatedAt timeCol
	)
	if err := s.Scan(
		&rec.ID,
		&rec.Title,
		&rec.Description,
		&rec.Price,
		&rec.Address,
		&rec.City,
		&rec.Country,
		&rec.Image,
		&fac,
		&rec.UserEmail,
		&createdAt,
		&updatedAt,
	); err != nil {
		return domain.Record{}, err
	}
	if fac.Valid {
		rec.Facilities = domain.FacilitiesFromJSON(fac.String)
	}
	rec.CreatedAt, rec.UpdatedAt = createdAt.t, updatedAt.t
	return rec, nil
}

// Stats runs the aggregate and the top-cities query concurrently.
func (r *Repo) Stats(ctx context.Context, topCities int) (st domain.Stats, err error) {
	defer func(start time.Time) { observe("stats", start, err) }(time.Now())

	var cities []domain.CityCount
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.QueryRowContext(gctx, statsSQL).Scan(&st.Count, &st.AvgPrice, &st.MinPrice, &st.MaxPrice)
	})
	g.Go(func() error {
		rows, err := r.db.QueryContext(gctx, r.d.rebind(topCitiesSQL), topCities)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var cc domain.CityCount
			if err := rows.Scan(&cc.City, &cc.Count); err != nil {
				return err
			}
			cities = append(cities, cc)
		}
		return rows.Err()
	})
	if err := g.Wait(); err != nil {
		return domain.Stats{}, err
	}
	st.TopCities = cities
	if st.TopCities == nil {
		st.TopCities = []domain.CityCount{}
	}
	return st, nil
}
