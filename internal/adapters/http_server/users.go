package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"residency_hub/internal/app"
)

type bookingRequest struct {
	Email string `json:"email"`
	Date  string `json:"date"`
}

type emailRequest struct {
	Email string `json:"email"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var in app.RegisterInput
	if err := decodeBody(w, r, &in); err != nil {
		h.writeError(w, r, err, "User")
		return
	}
	u, err := h.U.Register(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err, "User")
		return
	}
	writeJSON(w, r, http.StatusCreated, envelope{Success: true, Data: u, Message: "User registered successfully"})
}

func (h *Handlers) bookVisit(w http.ResponseWriter, r *http.Request) {
	var in bookingRequest
	if err := decodeBody(w, r, &in); err != nil {
		h.writeError(w, r, err, "Booking")
		return
	}
	u, err := h.U.BookVisit(r.Context(), in.Email, chi.URLParam(r, "id"), in.Date)
	if err != nil {
		h.writeError(w, r, err, "Booking")
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{Success: true, Data: u.BookedVisits, Message: "Your visit is booked successfully"})
}

func (h *Handlers) bookings(w http.ResponseWriter, r *http.Request) {
	email, err := emailParam(r)
	if err != nil {
		h.writeError(w, r, err, "User")
		return
	}
	bs, err := h.U.Bookings(r.Context(), email)
	if err != nil {
		h.writeError(w, r, err, "User")
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{Success: true, Data: bs})
}

func (h *Handlers) removeBooking(w http.ResponseWriter, r *http.Request) {
	email, err := emailParam(r)
	if err != nil {
		h.writeError(w, r, err, "Booking")
		return
	}
	u, err := h.U.CancelBooking(r.Context(), email, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, "Booking")
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{Success: true, Data: u.BookedVisits, Message: "Booking cancelled successfully"})
}

func (h *Handlers) toggleFavourite(w http.ResponseWriter, r *http.Request) {
	var in emailRequest
	if err := decodeBody(w, r, &in); err != nil {
		h.writeError(w, r, err, "Favourite")
		return
	}
	u, err := h.U.ToggleFavourite(r.Context(), in.Email, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, "Favourite")
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{Success: true, Data: u.Favourites, Message: "Favourites updated"})
}

func (h *Handlers) favourites(w http.ResponseWriter, r *http.Request) {
	email, err := emailParam(r)
	if err != nil {
		h.writeError(w, r, err, "User")
		return
	}
	favs, err := h.U.Favourites(r.Context(), email)
	if err != nil {
		h.writeError(w, r, err, "User")
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{Success: true, Data: favs})
}
