package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"residency_hub/internal/app"
	"residency_hub/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	C *app.CommandService
	U *app.UserService
	// Dev exposes raw error text in 500 responses.
	Dev bool
	// WriteLimit throttles mutating residency routes; nil disables it.
	WriteLimit *rate.Limiter
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/residency", func(r chi.Router) {
		r.Get("/", h.listResidencies)
		r.Get("/stats/overview", h.stats)
		r.Get("/search/query", h.search)
		r.Get("/featured/list", h.featured)
		r.Get("/{id}", h.getResidency)
		r.Get("/{id}/similar", h.similar)

		r.Group(func(r chi.Router) {
			r.Use(RateLimit(h.WriteLimit))
			r.Post("/", h.createResidency)
			r.Post("/create", h.createResidency)
			r.Put("/{id}", h.updateResidency)
			r.Delete("/{id}", h.deleteResidency)
		})
	})

	s.mux.Route("/user", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/bookVisit/{id}", h.bookVisit)
		r.Get("/bookings", h.bookings)
		r.Delete("/removeBooking/{id}", h.removeBooking)
		r.Post("/toFav/{id}", h.toggleFavourite)
		r.Get("/favourites", h.favourites)
	})
}

func (h *Handlers) listResidencies(w http.ResponseWriter, r *http.Request) {
	f := app.ParseFilter(r.URL.Query())
	page, err := h.Q.List(r.Context(), r.URL.RawQuery, f)
	if err != nil {
		h.writeError(w, r, err, "Residency")
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{
		Success:    true,
		Data:       page.Data,
		Pagination: &page.Pagination,
		Filters:    &page.Filters,
	})
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	f := app.ParseFilter(r.URL.Query())
	props, err := h.Q.Search(r.Context(), r.URL.RawQuery, f)
	if err != nil {
		h.writeError(w, r, err, "Residency")
		return
	}
	n := len(props)
	writeJSON(w, r, http.StatusOK, envelope{Success: true, Data: props, Count: &n, Filters: &f})
}

func (h *Handlers) getResidency(w http.ResponseWriter, r *http.Request) {
	p, err := h.Q.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, "Residency")
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{Success: true, Data: p})
}

func (h *Handlers) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Q.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Statistics")
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{Success: true, Data: st})
}

func (h *Handlers) featured(w http.ResponseWriter, r *http.Request) {
	props, err := h.Q.Featured(r.Context())
	if err != nil {
		h.writeError(w, r, err, "Residency")
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{Success: true, Data: props})
}

func (h *Handlers) similar(w http.ResponseWriter, r *http.Request) {
	props, err := h.Q.Similar(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err, "Residency")
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{Success: true, Data: props})
}

func (h *Handlers) createResidency(w http.ResponseWriter, r *http.Request) {
	var in app.ResidencyInput
	if err := decodeBody(w, r, &in); err != nil {
		h.writeError(w, r, err, "Residency")
		return
	}
	p, err := h.C.CreateResidency(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err, "Residency")
		return
	}
	writeJSON(w, r, http.StatusCreated, envelope{Success: true, Data: p, Message: "Residency created successfully"})
}

func (h *Handlers) updateResidency(w http.ResponseWriter, r *http.Request) {
	var patch app.ResidencyPatch
	if err := decodeBody(w, r, &patch); err != nil {
		h.writeError(w, r, err, "Residency")
		return
	}
	p, err := h.C.UpdateResidency(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeError(w, r, err, "Residency")
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{Success: true, Data: p, Message: "Residency updated successfully"})
}

func (h *Handlers) deleteResidency(w http.ResponseWriter, r *http.Request) {
	if err := h.C.DeleteResidency(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err, "Residency")
		return
	}
	writeJSON(w, r, http.StatusOK, envelope{Success: true, Message: "Residency deleted successfully"})
}

// emailParam reads ?email= or reports a validation error.
func emailParam(r *http.Request) (string, error) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		return "", &domain.ValidationError{Errors: []string{"email query parameter is required"}}
	}
	return email, nil
}
