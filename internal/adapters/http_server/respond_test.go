package httpserver

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSON_UnencodableBodyIsJSON500(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/residency", nil)

	writeJSON(rr, req, http.StatusOK, envelope{Success: true, Data: math.NaN()})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type: %q", ct)
	}
	if rr.Header().Get("ETag") != "" {
		t.Fatal("failed body must not carry an ETag")
	}
	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("body %q: %v", rr.Body.String(), err)
	}
	if env.Success || env.Message != "Internal server error" {
		t.Fatalf("envelope: %+v", env)
	}
}
