package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteAdd(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoriteRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO favorites (user_id, property_id) VALUES (?,?)")).
		WithArgs(uint64(2), uint64(7)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.Add(context.Background(), 2, 7)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestFavoriteAddDuplicateIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoriteRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO favorites (user_id, property_id) VALUES (?,?)")).
		WithArgs(uint64(2), uint64(7)).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '2-7' for key 'favorites.user_property'"))

	created, err := repo.Add(context.Background(), 2, 7)
	require.NoError(t, err, "a duplicate favorite is not an error")
	assert.False(t, created)
}

func TestFavoriteDeleteScopedToCaller(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoriteRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM favorites WHERE property_id = ? AND user_id = ?")).
		WithArgs(uint64(7), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteByPropertyAndUser(context.Background(), 7, 2))

	// Someone else's favorite never matches the caller-scoped predicate.
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM favorites WHERE property_id = ? AND user_id = ?")).
		WithArgs(uint64(7), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.DeleteByPropertyAndUser(context.Background(), 7, 3), ErrNotFound)
}
