// Package queue defines message payloads exchanged over the message broker
// and the background consumer that drains them.
package queue

// InquiryCreatedEvent is published when a customer sends an inquiry about a
// property. It carries enough for downstream consumers (notification,
// analytics, audit) without a database round trip.
type InquiryCreatedEvent struct {
	InquiryID  uint64 `json:"inquiry_id"`
	UserID     uint64 `json:"user_id"`
	PropertyID uint64 `json:"property_id"`
	Message    string `json:"message"`
	CreatedAt  string `json:"created_at"`
}
