package shared

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paystub/internal/domain/apperr"
)

func withWeekEnd(value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("weekEnd", value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestWeekEndParam(t *testing.T) {
	got, err := WeekEndParam(withWeekEnd("2024-06-09"))
	require.NoError(t, err)
	assert.Equal(t, "2024-06-09", got)

	for _, bad := range []string{"", "2024-6-9", "june"} {
		_, err := WeekEndParam(withWeekEnd(bad))
		var vErr *apperr.ValidationError
		require.ErrorAs(t, err, &vErr, bad)
		assert.Equal(t, "weekEnd", vErr.Field)
	}
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "defaults", query: "", want: []int{1, 2, 3}},
		{name: "offset", query: "?offset=3", want: []int{4, 5}},
		{name: "capped limit", query: "?limit=50", want: []int{1, 2, 3, 4}},
		{name: "past end", query: "?offset=9", want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)

			got := Page(rec, items, ParsePagination(req, 3, 4))

			assert.Equal(t, tt.want, got)
			assert.Equal(t, "5", rec.Header().Get("X-Total-Count"))
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	decode := func(body string) error {
		var p payload
		return DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &p)
	}

	assert.NoError(t, decode(`{"name":"x"}`))
	assert.True(t, errors.Is(decode(`{"name":`), apperr.ErrParse))
	assert.True(t, errors.Is(decode(`{"nmae":"x"}`), apperr.ErrParse))
	assert.True(t, errors.Is(decode(``), apperr.ErrValidation))
	assert.True(t, errors.Is(decode(`{"name":"x"} {}`), apperr.ErrValidation))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 16)
	var p payload
	err := DecodeJSON(req, &p)
	var vErr *apperr.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "body", vErr.Field)
}
