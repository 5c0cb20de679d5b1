package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/campushealth/clinicsync/internal/client/queue"
	"github.com/campushealth/clinicsync/internal/models"
)

// Enqueue appends a pending write at the tail of the queue.
// IDs come from the bucket sequence, so they are monotonically increasing
// and never reused even after entries are removed.
func (s *Storage) Enqueue(ctx context.Context, typ models.OperationType, payload json.RawMessage) (uint64, error) {
	if s.db == nil {
		return 0, queue.ErrStorageClosed
	}
	if !typ.Valid() {
		return 0, fmt.Errorf("%w: %q", queue.ErrUnknownOperation, typ)
	}

	var id uint64
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return fmt.Errorf("pending bucket not found")
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate entry id: %w", err)
		}

		entry := queue.Entry{
			ID:        seq,
			Type:      typ,
			Payload:   payload,
			CreatedAt: time.Now(),
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal entry: %w", err)
		}

		if err := bucket.Put(itob(seq), data); err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}

		id = seq
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("%w: %w", queue.ErrStorageUnavailable, err)
	}

	return id, nil
}

// List returns all pending entries oldest first. Keys are big-endian ids,
// so bucket order is insertion order.
func (s *Storage) List(ctx context.Context) ([]queue.Entry, error) {
	if s.db == nil {
		return nil, queue.ErrStorageClosed
	}

	var entries []queue.Entry

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var entry queue.Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("failed to unmarshal entry: %w", err)
			}
			entries = append(entries, entry)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return entries, nil
}

// Remove deletes the entry with the given id. Deleting a missing key is a
// no-op in bbolt, which gives the idempotency the sync pass relies on.
func (s *Storage) Remove(ctx context.Context, id uint64) error {
	if s.db == nil {
		return queue.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return nil
		}
		return bucket.Delete(itob(id))
	})

	if err != nil {
		return fmt.Errorf("failed to remove entry %d: %w", id, err)
	}

	return nil
}

// Clear removes all pending entries. The bucket and its id sequence
// survive, so ids are still never reused afterwards.
func (s *Storage) Clear(ctx context.Context) error {
	if s.db == nil {
		return queue.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return nil
		}

		c := bucket.Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			if err := c.Delete(); err != nil {
				return fmt.Errorf("failed to delete entry: %w", err)
			}
		}
		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}

	return nil
}

// Count returns the number of pending entries straight from the store.
func (s *Storage) Count(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, queue.ErrStorageClosed
	}

	var count int
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return nil
		}
		count = bucket.Stats().KeyN
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}

	return count, nil
}

// itob encodes an id as a big-endian key so lexicographic bucket order
// matches numeric order.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
