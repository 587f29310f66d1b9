package middleware

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
)

// ValidateEntityID validates an order, lead or conversation id as issued
// by the commerce backend: short, single-line, no path metacharacters.
func ValidateEntityID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}
	if len(id) > 64 {
		return errors.New("id exceeds maximum length")
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return errors.New("invalid id format")
		}
	}
	return nil
}

// RequireValidID rejects requests whose {id} URL parameter fails entity-id
// validation before they reach a handler.
func RequireValidID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := ValidateEntityID(chi.URLParam(r, "id")); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ValidateWorkspaceID validates a workspace ID.
func ValidateWorkspaceID(id string) error {
	if len(id) == 0 {
		return errors.New("workspace ID cannot be empty")
	}
	if len(id) > 64 {
		return errors.New("workspace ID exceeds maximum length")
	}
	return nil
}

// ValidateNotes validates free-text notes.
func ValidateNotes(notes string) error {
	if len(notes) > 10000 {
		return errors.New("notes exceed maximum length")
	}
	if !utf8.ValidString(notes) {
		return errors.New("notes must be valid UTF-8")
	}
	return nil
}

// ValidateSearchQuery validates a search query string.
func ValidateSearchQuery(q string) error {
	if len(q) > 256 {
		return errors.New("query exceeds maximum length")
	}
	if !utf8.ValidString(q) {
		return errors.New("query must be valid UTF-8")
	}
	return nil
}
