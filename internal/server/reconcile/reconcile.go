// Package reconcile validates and applies queued offline writes. It is
// the trust boundary of the sync protocol: a client-captured payload gets
// the same scrutiny as a live form submission, and each invocation is one
// all-or-nothing database transaction.
package reconcile

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/campushealth/clinicsync/internal/models"
	"github.com/campushealth/clinicsync/internal/server/filestore"
	"github.com/campushealth/clinicsync/internal/server/storage"
)

// Reconciler applies one queued write per invocation.
type Reconciler struct {
	store  storage.ClinicStorage
	files  *filestore.Store
	logger *slog.Logger
	now    func() time.Time
}

// Result is the acknowledgment the client uses to prune its queue entry.
type Result struct {
	Message string
}

// New creates a reconciler over the given storage and file store.
func New(store storage.ClinicStorage, files *filestore.Store, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		store:  store,
		files:  files,
		logger: logger,
		now:    time.Now,
	}
}

// Apply validates and applies a single queued write on behalf of the
// authenticated user actorID. It returns *ValidationError for field
// failures, *BusinessRuleError for domain-rule failures, and a Result
// only when the write has been committed.
func (r *Reconciler) Apply(ctx context.Context, actorID int64, typ models.OperationType, data json.RawMessage) (*Result, error) {
	if !typ.Valid() {
		return nil, fieldError("type", "The selected type is invalid.")
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, fieldError("data", "The data field is required.")
	}

	var (
		result *Result
		err    error
	)

	switch typ {
	case models.OpTreatment:
		result, err = r.applyTreatment(ctx, actorID, data)
	case models.OpMedicineDispense:
		result, err = r.applyDispense(ctx, actorID, data)
	case models.OpStudent:
		result, err = r.applyStudent(ctx, data)
	case models.OpPersonnel:
		result, err = r.applyPersonnel(ctx, data)
	case models.OpMedicine:
		result, err = r.applyMedicine(ctx, data)
	case models.OpMaritimeDocument:
		result, err = r.applyMaritimeDocument(ctx, data)
	}

	if err != nil {
		r.logger.Warn("sync item rejected", "type", typ, "error", err)
		return nil, err
	}

	r.logger.Info("sync item applied", "type", typ, "actor_id", actorID)
	return result, nil
}

// decode unmarshals the payload, reporting malformed JSON as a payload
// validation failure rather than a server fault.
func decode(data json.RawMessage, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fieldError("data", "The data payload is malformed.")
	}
	return nil
}
