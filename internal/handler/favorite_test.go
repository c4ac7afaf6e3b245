package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renteaselabs/rentease-backend/internal/repository"
)

func newCustomerHandler(db *sql.DB) *CustomerHandler {
	return NewCustomerHandler(
		repository.NewPropertyRepo(db),
		repository.NewFavoriteRepo(db),
		repository.NewInquiryRepo(db),
		nil)
}

func expectPropertyExists(mock sqlmock.Sqlmock, id uint64) {
	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM properties WHERE id = ").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "agent_id", "title", "price", "location", "property_type", "available", "created_at", "updated_at"}).
			AddRow(id, 3, "Bright 2BR", 1200, "Vake", "apartment", true, now, now))
}

func TestAddFavorite(t *testing.T) {
	db, mock := newTestDB(t)
	h := newCustomerHandler(db)

	expectPropertyExists(mock, 7)
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO favorites (user_id, property_id) VALUES (?,?)")).
		WithArgs(uint64(2), uint64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	req, rec := jsonRequest(http.MethodPost, "/v1/favorites", `{"property_id":7}`)
	c := agentContext(req, rec, 2, repository.RoleCustomer)
	require.NoError(t, h.AddFavorite(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAddFavoriteAlreadyExists(t *testing.T) {
	db, mock := newTestDB(t)
	h := newCustomerHandler(db)

	expectPropertyExists(mock, 7)
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO favorites (user_id, property_id) VALUES (?,?)")).
		WithArgs(uint64(2), uint64(7)).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '2-7' for key 'favorites.user_property'"))

	req, rec := jsonRequest(http.MethodPost, "/v1/favorites", `{"property_id":7}`)
	c := agentContext(req, rec, 2, repository.RoleCustomer)
	require.NoError(t, h.AddFavorite(c))

	// Re-adding is not an error, just not a creation.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "already in favorites")
}

func TestAddFavoriteMissingProperty(t *testing.T) {
	db, mock := newTestDB(t)
	h := newCustomerHandler(db)

	mock.ExpectQuery("SELECT .+ FROM properties WHERE id = ").
		WithArgs(uint64(999)).
		WillReturnError(sql.ErrNoRows)

	req, rec := jsonRequest(http.MethodPost, "/v1/favorites", `{"property_id":999}`)
	c := agentContext(req, rec, 2, repository.RoleCustomer)
	require.NoError(t, h.AddFavorite(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveFavoriteNotOwned(t *testing.T) {
	db, mock := newTestDB(t)
	h := newCustomerHandler(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM favorites WHERE property_id = ? AND user_id = ?")).
		WithArgs(uint64(7), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	req, rec := jsonRequest(http.MethodDelete, "/v1/favorites/7", "")
	c := withParam(agentContext(req, rec, 2, repository.RoleCustomer), "property_id", "7")
	require.NoError(t, h.RemoveFavorite(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSendInquiryPublishesEvent(t *testing.T) {
	db, mock := newTestDB(t)
	var published *repository.Inquiry
	h := NewCustomerHandler(
		repository.NewPropertyRepo(db),
		repository.NewFavoriteRepo(db),
		repository.NewInquiryRepo(db),
		func(_ context.Context, inq repository.Inquiry) { published = &inq })

	expectPropertyExists(mock, 7)
	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO inquiries (user_id, property_id, message) VALUES (?,?,?)")).
		WithArgs(uint64(2), uint64(7), "Is it still available?").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT created_at FROM inquiries WHERE id = ?")).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	req, rec := jsonRequest(http.MethodPost, "/v1/inquiries",
		`{"property_id":7,"message":"Is it still available?"}`)
	c := agentContext(req, rec, 2, repository.RoleCustomer)
	require.NoError(t, h.SendInquiry(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, published, "a stored inquiry must be handed to the publisher")
	assert.Equal(t, uint64(11), published.ID)
	assert.Equal(t, uint64(7), published.PropertyID)
}
