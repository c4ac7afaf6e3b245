package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renteaselabs/rentease-backend/internal/repository"
)

func TestListPropertiesWithFilters(t *testing.T) {
	db, mock := newTestDB(t)
	h := NewPublicHandler(repository.NewPropertyRepo(db))
	now := time.Now()

	mock.ExpectQuery("SELECT .+ FROM properties WHERE location = \\? AND price <= \\? ORDER BY id").
		WithArgs("Vake", 1500).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "agent_id", "title", "price", "location", "property_type", "available", "created_at", "updated_at"}).
			AddRow(1, 3, "Bright 2BR", 1200, "Vake", "apartment", true, now, now))

	req := httptest.NewRequest(http.MethodGet, "/v1/properties?district=Vake&price_max=1500", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListProperties(echo.New().NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bright 2BR")
}

func TestListPropertiesNonNumericBound(t *testing.T) {
	db, _ := newTestDB(t)
	h := NewPublicHandler(repository.NewPropertyRepo(db))

	req := httptest.NewRequest(http.MethodGet, "/v1/properties?price_min=cheap", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ListProperties(echo.New().NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPropertyNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	h := NewPublicHandler(repository.NewPropertyRepo(db))

	mock.ExpectQuery("SELECT .+ FROM properties WHERE id = ").
		WithArgs(uint64(999)).
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest(http.MethodGet, "/v1/properties/999", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("999")
	require.NoError(t, h.GetProperty(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPropertyMalformedID(t *testing.T) {
	db, _ := newTestDB(t)
	h := NewPublicHandler(repository.NewPropertyRepo(db))

	req := httptest.NewRequest(http.MethodGet, "/v1/properties/seven", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("seven")
	require.NoError(t, h.GetProperty(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParsePrice(t *testing.T) {
	for _, tc := range []struct {
		in   any
		want int
		ok   bool
	}{
		{float64(1200), 1200, true},
		{1200, 1200, true},
		{"1200", 1200, true},
		{"cheap", 0, false},
		{true, 0, false},
		{nil, 0, false},
	} {
		got, ok := parsePrice(tc.in)
		assert.Equal(t, tc.ok, ok, "input %v", tc.in)
		if ok {
			assert.Equal(t, tc.want, got)
		}
	}
}
