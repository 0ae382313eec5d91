package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"residency_hub/internal/app"
	"residency_hub/internal/domain"
)

func newUsers(t *testing.T) *app.UserService {
	t.Helper()
	repo := &fakeRepo{recs: []domain.Record{rec(0, "Durban", 100, ""), rec(1, "Paarl", 200, "")}}
	u := app.NewUserService(repo, repo)
	if _, err := u.Register(context.Background(), app.RegisterInput{Email: "Jo@Example.com", Name: "Jo"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

func TestRegister(t *testing.T) {
	u := newUsers(t)
	ctx := context.Background()

	if _, err := u.Register(ctx, app.RegisterInput{Email: "jo@example.com "}); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
	var ve *domain.ValidationError
	if _, err := u.Register(ctx, app.RegisterInput{Email: "no-at-sign"}); !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestBookings(t *testing.T) {
	u := newUsers(t)
	ctx := context.Background()

	if _, err := u.BookVisit(ctx, "jo@example.com", "r00", "2024-05-01"); err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := u.BookVisit(ctx, "JO@example.com", "r00", "2024-06-01"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second booking: %v", err)
	}
	if _, err := u.BookVisit(ctx, "jo@example.com", "r99", "2024-06-01"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown residency: %v", err)
	}
	var ve *domain.ValidationError
	if _, err := u.BookVisit(ctx, "jo@example.com", "r01", " "); !errors.As(err, &ve) {
		t.Fatalf("missing date: %v", err)
	}

	got, err := u.Bookings(ctx, "jo@example.com")
	if err != nil {
		t.Fatalf("bookings: %v", err)
	}
	if diff := cmp.Diff([]domain.Booking{{ResidencyID: "r00", Date: "2024-05-01"}}, got); diff != "" {
		t.Fatalf("bookings (-want +got):\n%s", diff)
	}

	if _, err := u.CancelBooking(ctx, "jo@example.com", "r00"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := u.CancelBooking(ctx, "jo@example.com", "r00"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cancel again: %v", err)
	}
	if _, err := u.Bookings(ctx, "ghost@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown user: %v", err)
	}
}

func TestToggleFavourite(t *testing.T) {
	u := newUsers(t)
	ctx := context.Background()

	for _, id := range []string{"r00", "r01", "r00"} {
		if _, err := u.ToggleFavourite(ctx, "jo@example.com", id); err != nil {
			t.Fatalf("toggle %s: %v", id, err)
		}
	}
	got, err := u.Favourites(ctx, "jo@example.com")
	if err != nil {
		t.Fatalf("favourites: %v", err)
	}
	if diff := cmp.Diff([]string{"r01"}, got); diff != "" {
		t.Fatalf("favourites (-want +got):\n%s", diff)
	}
}
