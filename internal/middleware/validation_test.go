package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestValidateEntityID(t *testing.T) {
	valid := []string{
		"o1",
		"conv_7",
		"0190cc0e-d25e-7dd3-8f1a-2b3c4d5e6f70",
		strings.Repeat("a", 64),
	}
	for _, id := range valid {
		assert.NoError(t, ValidateEntityID(id), "id %q", id)
	}

	invalid := []string{
		"",
		strings.Repeat("a", 65),
		"a/b",
		"a b",
		"id\n",
		"ордер",
	}
	for _, id := range invalid {
		assert.Error(t, ValidateEntityID(id), "id %q", id)
	}
}

func TestRequireValidID(t *testing.T) {
	r := chi.NewRouter()
	r.With(RequireValidID).Get("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/o-1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/a%20b", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateWorkspaceID(t *testing.T) {
	assert.NoError(t, ValidateWorkspaceID("ws-1"))
	assert.Error(t, ValidateWorkspaceID(""))
	assert.Error(t, ValidateWorkspaceID(strings.Repeat("w", 65)))
}

func TestValidateSearchQuery(t *testing.T) {
	assert.NoError(t, ValidateSearchQuery(""))
	assert.NoError(t, ValidateSearchQuery("priya"))
	assert.Error(t, ValidateSearchQuery(strings.Repeat("q", 257)))
	assert.Error(t, ValidateSearchQuery(string([]byte{0xff, 0xfe})))
}
