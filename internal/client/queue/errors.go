package queue

import "errors"

// Common queue errors
var (
	// ErrUnknownOperation indicates an operation type outside the closed set
	ErrUnknownOperation = errors.New("unknown operation type")

	// ErrStorageUnavailable indicates the durable local store is inaccessible
	ErrStorageUnavailable = errors.New("queue storage unavailable")

	// ErrStorageClosed indicates the store has been closed
	ErrStorageClosed = errors.New("queue storage is closed")
)
