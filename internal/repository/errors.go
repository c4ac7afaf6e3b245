// Package repository contains data access logic separated from HTTP handlers.
// This file defines sentinel errors shared across repositories so handlers
// can map failures onto the response taxonomy with errors.Is instead of
// re-checking driver details at every call site.
package repository

import "errors"

// ErrNotFound is returned when no row matched the full predicate of an
// operation. For owner-guarded updates and deletes this deliberately covers
// both "no such row" and "row owned by someone else": the two are
// indistinguishable on purpose so non-owners cannot probe for existence.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an insert hits the unique index on
// users.email. The index is the actual uniqueness guarantee; any pre-insert
// existence check is only a fast path for a friendlier error.
var ErrEmailExists = errors.New("email already exists")
