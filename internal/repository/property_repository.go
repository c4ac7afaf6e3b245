// This file defines the Property model and repository. A property listing is
// always owned by the agent that created it (agent_id); ownership never
// transfers. All owner-guarded mutations fold the ownership test into the
// UPDATE/DELETE predicate itself, so the check and the act are a single
// statement against the database and cannot race a concurrent mutation.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Property mirrors the 'properties' table.
type Property struct {
	ID           uint64    `json:"id"`
	AgentID      uint64    `json:"agent_id"`
	Title        string    `json:"title"`
	Price        int       `json:"price"`
	Location     string    `json:"location"`
	PropertyType string    `json:"property_type"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PropertyFilter narrows the public listing query. Nil price bounds mean
// unbounded; empty strings mean no filter.
type PropertyFilter struct {
	District     string
	PropertyType string
	PriceMin     *int
	PriceMax     *int
}

// PropertyUpdate carries the optional fields of a partial update. Nil fields
// are left untouched.
type PropertyUpdate struct {
	Title        *string
	Price        *int
	Location     *string
	PropertyType *string
	Available    *bool
}

// Empty reports whether the update would change nothing.
func (u PropertyUpdate) Empty() bool {
	return u.Title == nil && u.Price == nil && u.Location == nil &&
		u.PropertyType == nil && u.Available == nil
}

type PropertyRepo struct{ db *sql.DB }

func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{db: db} }

const propertyColumns = "id, agent_id, title, price, location, property_type, available, created_at, updated_at"

// Create inserts a new property and fills in the generated ID and timestamps.
func (r *PropertyRepo) Create(ctx context.Context, p *Property) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO properties (agent_id, title, price, location, property_type, available) VALUES (?,?,?,?,?,?)",
		p.AgentID, p.Title, p.Price, p.Location, p.PropertyType, p.Available)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM properties WHERE id = ?", p.ID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

// GetByID fetches a property regardless of owner. Used by the public detail
// endpoint. ErrNotFound when absent.
func (r *PropertyRepo) GetByID(ctx context.Context, id uint64) (*Property, error) {
	var p Property
	err := r.db.QueryRowContext(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE id = ?", id).
		Scan(&p.ID, &p.AgentID, &p.Title, &p.Price, &p.Location, &p.PropertyType, &p.Available, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns properties matching the filter, ordered by id. All filter
// clauses are combined with AND.
func (r *PropertyRepo) List(ctx context.Context, f PropertyFilter) ([]*Property, error) {
	var (
		conds []string
		args  []any
	)
	if f.District != "" {
		conds = append(conds, "location = ?")
		args = append(args, f.District)
	}
	if f.PropertyType != "" {
		conds = append(conds, "property_type = ?")
		args = append(args, f.PropertyType)
	}
	if f.PriceMin != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *f.PriceMin)
	}
	if f.PriceMax != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *f.PriceMax)
	}
	q := "SELECT " + propertyColumns + " FROM properties"
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id"
	return r.queryMany(ctx, q, args...)
}

// ListByAgent returns all properties owned by the given agent.
func (r *PropertyRepo) ListByAgent(ctx context.Context, agentID uint64) ([]*Property, error) {
	return r.queryMany(ctx,
		"SELECT "+propertyColumns+" FROM properties WHERE agent_id = ? ORDER BY id", agentID)
}

// UpdateByIDAndAgent applies a partial update guarded by ownership: the row
// must match both id and agent_id in one statement. Zero rows affected means
// not-found-or-not-owned and is reported as ErrNotFound either way.
func (r *PropertyRepo) UpdateByIDAndAgent(ctx context.Context, id, agentID uint64, upd PropertyUpdate) error {
	set, args := buildPropertySet(upd)
	args = append(args, id, agentID)
	return r.execGuarded(ctx,
		"UPDATE properties SET "+set+", updated_at = CURRENT_TIMESTAMP WHERE id = ? AND agent_id = ?", args...)
}

// UpdateByID applies a partial update without an ownership guard. Reserved
// for admin callers.
func (r *PropertyRepo) UpdateByID(ctx context.Context, id uint64, upd PropertyUpdate) error {
	set, args := buildPropertySet(upd)
	args = append(args, id)
	return r.execGuarded(ctx,
		"UPDATE properties SET "+set+", updated_at = CURRENT_TIMESTAMP WHERE id = ?", args...)
}

// DeleteByIDAndAgent deletes a property only when it belongs to the agent.
func (r *PropertyRepo) DeleteByIDAndAgent(ctx context.Context, id, agentID uint64) error {
	return r.execGuarded(ctx,
		"DELETE FROM properties WHERE id = ? AND agent_id = ?", id, agentID)
}

// DeleteByID deletes a property regardless of owner. Reserved for admin.
func (r *PropertyRepo) DeleteByID(ctx context.Context, id uint64) error {
	return r.execGuarded(ctx, "DELETE FROM properties WHERE id = ?", id)
}

// Count returns the number of listed properties.
func (r *PropertyRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties").Scan(&n)
	return n, err
}

func (r *PropertyRepo) execGuarded(ctx context.Context, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PropertyRepo) queryMany(ctx context.Context, q string, args ...any) ([]*Property, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*Property{}
	for rows.Next() {
		p := new(Property)
		if err := rows.Scan(&p.ID, &p.AgentID, &p.Title, &p.Price, &p.Location, &p.PropertyType, &p.Available, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// buildPropertySet renders the SET clause for a partial update. Callers must
// reject an Empty update before reaching here.
func buildPropertySet(upd PropertyUpdate) (string, []any) {
	var (
		cols []string
		args []any
	)
	if upd.Title != nil {
		cols = append(cols, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Price != nil {
		cols = append(cols, "price = ?")
		args = append(args, *upd.Price)
	}
	if upd.Location != nil {
		cols = append(cols, "location = ?")
		args = append(args, *upd.Location)
	}
	if upd.PropertyType != nil {
		cols = append(cols, "property_type = ?")
		args = append(args, *upd.PropertyType)
	}
	if upd.Available != nil {
		cols = append(cols, "available = ?")
		args = append(args, *upd.Available)
	}
	return strings.Join(cols, ", "), args
}
