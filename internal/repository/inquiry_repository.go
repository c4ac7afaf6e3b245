package repository

import (
	"context"
	"database/sql"
	"time"
)

// Inquiry mirrors the 'inquiries' table: a message a user sends about a
// property. The user_id column is the owner reference; the receiving agent is
// reached through the property row.
type Inquiry struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"user_id"`
	PropertyID uint64    `json:"property_id"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

type InquiryRepo struct{ db *sql.DB }

func NewInquiryRepo(db *sql.DB) *InquiryRepo { return &InquiryRepo{db: db} }

// Create inserts an inquiry and fills in the generated ID and timestamp.
func (r *InquiryRepo) Create(ctx context.Context, q *Inquiry) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO inquiries (user_id, property_id, message) VALUES (?,?,?)",
		q.UserID, q.PropertyID, q.Message)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	q.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM inquiries WHERE id = ?", q.ID).Scan(&q.CreatedAt)
}

// ListByUser returns inquiries the user has sent.
func (r *InquiryRepo) ListByUser(ctx context.Context, userID uint64) ([]Inquiry, error) {
	return r.queryMany(ctx,
		"SELECT id, user_id, property_id, message, created_at FROM inquiries WHERE user_id = ? ORDER BY id",
		userID)
}

// ListForAgent returns inquiries received on any property the agent owns.
func (r *InquiryRepo) ListForAgent(ctx context.Context, agentID uint64) ([]Inquiry, error) {
	return r.queryMany(ctx,
		`SELECT i.id, i.user_id, i.property_id, i.message, i.created_at
		 FROM inquiries i
		 JOIN properties p ON p.id = i.property_id
		 WHERE p.agent_id = ? ORDER BY i.id`,
		agentID)
}

// ListAll returns every inquiry. Admin-only at the handler layer.
func (r *InquiryRepo) ListAll(ctx context.Context) ([]Inquiry, error) {
	return r.queryMany(ctx,
		"SELECT id, user_id, property_id, message, created_at FROM inquiries ORDER BY id")
}

// Count returns the number of inquiry rows.
func (r *InquiryRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM inquiries").Scan(&n)
	return n, err
}

func (r *InquiryRepo) queryMany(ctx context.Context, q string, args ...any) ([]Inquiry, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Inquiry{}
	for rows.Next() {
		var i Inquiry
		if err := rows.Scan(&i.ID, &i.UserID, &i.PropertyID, &i.Message, &i.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}
