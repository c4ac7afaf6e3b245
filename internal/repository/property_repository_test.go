package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var propertyCols = []string{"id", "agent_id", "title", "price", "location", "property_type", "available", "created_at", "updated_at"}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestPropertyCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepo(db)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO properties (agent_id, title, price, location, property_type, available) VALUES (?,?,?,?,?,?)")).
		WithArgs(uint64(3), "Bright 2BR", 1200, "Vake", "apartment", true).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT created_at, updated_at FROM properties WHERE id = ?")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	p := &Property{AgentID: 3, Title: "Bright 2BR", Price: 1200, Location: "Vake", PropertyType: "apartment", Available: true}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, uint64(7), p.ID)
	assert.Equal(t, now, p.CreatedAt)
}

func TestPropertyGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepo(db)

	mock.ExpectQuery("SELECT .+ FROM properties WHERE id = ").
		WithArgs(uint64(999)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPropertyListFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepo(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+propertyColumns+" FROM properties WHERE location = ? AND property_type = ? AND price >= ? AND price <= ? ORDER BY id")).
		WithArgs("Vake", "apartment", 500, 1500).
		WillReturnRows(sqlmock.NewRows(propertyCols).
			AddRow(1, 3, "Bright 2BR", 1200, "Vake", "apartment", true, now, now))

	out, err := repo.List(context.Background(), PropertyFilter{
		District:     "Vake",
		PropertyType: "apartment",
		PriceMin:     intPtr(500),
		PriceMax:     intPtr(1500),
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Bright 2BR", out[0].Title)
}

func TestPropertyListNoFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT " + propertyColumns + " FROM properties ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(propertyCols))

	out, err := repo.List(context.Background(), PropertyFilter{})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NotNil(t, out, "empty result still serializes as [] not null")
}

func TestPropertyUpdateOwnerGuard(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepo(db)
	upd := PropertyUpdate{Title: strPtr("New title"), Price: intPtr(900)}

	// Owner match: one row affected.
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE properties SET title = ?, price = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND agent_id = ?")).
		WithArgs("New title", 900, uint64(7), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateByIDAndAgent(context.Background(), 7, 3, upd))

	// Another agent's id in the predicate matches nothing; not-owned and
	// not-found are the same answer.
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE properties SET title = ?, price = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND agent_id = ?")).
		WithArgs("New title", 900, uint64(7), uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateByIDAndAgent(context.Background(), 7, 4, upd), ErrNotFound)
}

func TestPropertyUpdateByIDSkipsOwnerGuard(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE properties SET available = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?")).
		WithArgs(false, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	avail := false
	require.NoError(t, repo.UpdateByID(context.Background(), 7, PropertyUpdate{Available: &avail}))
}

func TestPropertyDeleteOwnerGuard(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPropertyRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM properties WHERE id = ? AND agent_id = ?")).
		WithArgs(uint64(7), uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteByIDAndAgent(context.Background(), 7, 3))

	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM properties WHERE id = ? AND agent_id = ?")).
		WithArgs(uint64(7), uint64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.DeleteByIDAndAgent(context.Background(), 7, 4), ErrNotFound)
}

func TestPropertyUpdateEmpty(t *testing.T) {
	assert.True(t, PropertyUpdate{}.Empty())
	assert.False(t, PropertyUpdate{Title: strPtr("x")}.Empty())
}
