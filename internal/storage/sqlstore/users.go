package sqlstore

import (
	"context"
	"encoding/json"
	"time"

	"residency_hub/internal/domain"
)

func (r *Repo) CreateUser(ctx context.Context, u domain.User) (err error) {
	defer func(start time.Time) { observe("user_create", start, err) }(time.Now())
	visits, favs, err := encodeLists(u)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, r.d.rebind(insertUserSQL),
		u.ID, u.Email, u.Name, u.Image, visits, favs, r.d.timeArg(u.CreatedAt))
	return r.translate(err)
}

func (r *Repo) GetUser(ctx context.Context, email string) (u domain.User, err error) {
	defer func(start time.Time) { observe("user_get", start, err) }(time.Now())
	var (
		visits, favs string
		createdAt    timeCol
	)
	err = r.db.QueryRowContext(ctx, r.d.rebind(selectUserSQL), email).
		Scan(&u.ID, &u.Email, &u.Name, &u.Image, &visits, &favs, &createdAt)
	if err != nil {
		return domain.User{}, r.translate(err)
	}
	u.CreatedAt = createdAt.t
	// a corrupt list column reads as empty rather than failing the user
	if json.Unmarshal([]byte(visits), &u.BookedVisits) != nil || u.BookedVisits == nil {
		u.BookedVisits = []domain.Booking{}
	}
	if json.Unmarshal([]byte(favs), &u.Favourites) != nil || u.Favourites == nil {
		u.Favourites = []string{}
	}
	return u, nil
}

func (r *Repo) SaveUserLists(ctx context.Context, u domain.User) (err error) {
	defer func(start time.Time) { observe("user_save", start, err) }(time.Now())
	visits, favs, err := encodeLists(u)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, r.d.rebind(updateUserListsSQL), visits, favs, u.Email)
	if err != nil {
		return r.translate(err)
	}
	return affected(res)
}

func encodeLists(u domain.User) (string, string, error) {
	if u.BookedVisits == nil {
		u.BookedVisits = []domain.Booking{}
	}
	if u.Favourites == nil {
		u.Favourites = []string{}
	}
	visits, err := json.Marshal(u.BookedVisits)
	if err != nil {
		return "", "", err
	}
	favs, err := json.Marshal(u.Favourites)
	if err != nil {
		return "", "", err
	}
	return string(visits), string(favs), nil
}
