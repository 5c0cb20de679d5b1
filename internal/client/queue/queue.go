// Package queue defines the durable local pending-write queue the client
// fills while the server is unreachable. Entries are applied in FIFO order
// by a sync pass and removed only after the server confirms success.
package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/campushealth/clinicsync/internal/models"
)

// Entry is one pending write. IDs are assigned at enqueue time, increase
// monotonically within the store and are never reused. Entries are never
// mutated in place.
type Entry struct {
	ID        uint64               `json:"id"`
	Type      models.OperationType `json:"type"`
	Payload   json.RawMessage      `json:"payload"`
	CreatedAt time.Time            `json:"created_at"`
}

// Store is the durable pending-write queue.
type Store interface {
	// Enqueue appends a write at the tail and returns its assigned id.
	// The payload shape is not inspected here; shape validation happens
	// server-side at apply time. Fails only on an unknown operation type
	// or when the durable store itself is unavailable.
	Enqueue(ctx context.Context, typ models.OperationType, payload json.RawMessage) (uint64, error)

	// List returns all entries in insertion order, oldest first.
	List(ctx context.Context) ([]Entry, error)

	// Remove deletes the entry with the given id. Removing a missing id
	// is a no-op, not an error.
	Remove(ctx context.Context, id uint64) error

	// Clear removes all entries unconditionally. Reserved for explicit
	// user-initiated reset; sync passes never call it.
	Clear(ctx context.Context) error

	// Count returns the current pending size, read from the durable
	// store rather than a cached value.
	Count(ctx context.Context) (int, error)
}
