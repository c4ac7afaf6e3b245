package repository

import (
	"context"
	"database/sql"
	"time"
)

// Favorite mirrors the 'favorites' table. Each row belongs to the user who
// created it; a (user_id, property_id) pair is unique.
type Favorite struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"user_id"`
	PropertyID uint64    `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type FavoriteRepo struct{ db *sql.DB }

func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add inserts a favorite for the user. It returns false with no error when
// the pair already exists: the unique index on (user_id, property_id) decides,
// so two concurrent adds cannot both succeed.
func (r *FavoriteRepo) Add(ctx context.Context, userID, propertyID uint64) (bool, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO favorites (user_id, property_id) VALUES (?,?)", userID, propertyID)
	if err != nil {
		if isDuplicateKey(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListByUser returns the caller's favorites ordered by creation.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]Favorite, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, property_id, created_at FROM favorites WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Favorite{}
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.PropertyID, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// DeleteByPropertyAndUser removes a favorite matched by property and caller
// in a single statement. Zero rows affected is ErrNotFound, whether the
// favorite never existed or belongs to someone else.
func (r *FavoriteRepo) DeleteByPropertyAndUser(ctx context.Context, propertyID, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE property_id = ? AND user_id = ?", propertyID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of favorite rows.
func (r *FavoriteRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM favorites").Scan(&n)
	return n, err
}
