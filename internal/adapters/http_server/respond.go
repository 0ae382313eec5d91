package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"residency_hub/internal/domain"
)

const maxBodyBytes = 1 << 20

var internalErrorBody = []byte(`{"success":false,"message":"Internal server error"}`)

// envelope is the body of every JSON response.
type envelope struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data,omitempty"`
	Message    string             `json:"message,omitempty"`
	Count      *int               `json:"count,omitempty"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
	Filters    *domain.Filter     `json:"filters,omitempty"`
	Errors     []string           `json:"errors,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON writes env with status. Successful GETs carry an ETag and
// short-circuit to 304 when the client already holds that version.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, env envelope) {
	etag, body := calcETagAndBody(env)
	if body == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(internalErrorBody)
		return
	}
	if r.Method == http.MethodGet && status == http.StatusOK && etag != "" {
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.Header().Set("ETag", etag) // include ETag on 304
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// writeError maps domain errors to status codes. subject names the resource
// in not-found and conflict messages.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error, subject string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, r, http.StatusBadRequest, envelope{Message: "Validation failed", Errors: ve.Errors})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, r, http.StatusNotFound, envelope{Message: subject + " not found"})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, r, http.StatusConflict, envelope{Message: subject + " already exists"})
	default:
		log.Error().Err(err).
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		env := envelope{Message: "Internal server error"}
		if h.Dev {
			env.Error = err.Error()
		}
		writeJSON(w, r, http.StatusInternalServerError, env)
	}
}

// decodeBody reads a JSON body into dst; malformed input is a validation error.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &domain.ValidationError{Errors: []string{"request body is required"}}
		}
		return &domain.ValidationError{Errors: []string{fmt.Sprintf("invalid JSON body: %v", err)}}
	}
	return nil
}
