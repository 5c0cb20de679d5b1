package api

import "encoding/json"

// SyncItemRequest carries exactly one queued offline write to the server.
// Type must be one of the recognized operation types; Data is the
// operation-specific payload, validated server-side at apply time.
type SyncItemRequest struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// SyncItemResponse reports the outcome of applying a single queued write.
// Success true means the write was committed and the client may drop the
// corresponding queue entry.
type SyncItemResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
