package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushealth/clinicsync/internal/models"
	"github.com/campushealth/clinicsync/internal/server/filestore"
	"github.com/campushealth/clinicsync/internal/server/reconcile"
	"github.com/campushealth/clinicsync/internal/server/storage/sqlite"
	"github.com/campushealth/clinicsync/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupSyncHandler(t *testing.T) (*SyncHandler, *sqlite.Storage, int64) {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	files, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test Nurse",
		Email:        fmt.Sprintf("nurse-%d@clinic.local", time.Now().UnixNano()),
		PasswordHash: "$2a$10$hash",
	}
	require.NoError(t, store.CreateUser(ctx, user))

	logger := testLogger()
	h := NewSyncHandler(logger, reconcile.New(store, files, logger))
	return h, store, user.ID
}

// postSync performs an authenticated sync request against the handler.
func postSync(t *testing.T, h *SyncHandler, userID int64, body string) (*httptest.ResponseRecorder, api.SyncItemResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/offline-queue/sync", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, userID))
	rec := httptest.NewRecorder()

	h.Sync(rec, req)

	var resp api.SyncItemResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func TestSyncAppliesItem(t *testing.T) {
	h, store, userID := setupSyncHandler(t)

	body := `{"type":"treatment","data":{"patient_type":"student","patient_id":1,"diagnosis":"Migraine","status":"completed"}}`
	rec, resp := postSync(t, h, userID, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Treatment synced successfully.", resp.Message)

	var count int
	err := store.DB().QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM treatments WHERE treated_by = ?`, userID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSyncValidationFailure(t *testing.T) {
	h, _, userID := setupSyncHandler(t)

	body := `{"type":"treatment","data":{"patient_type":"student","patient_id":1,"status":"completed"}}`
	rec, resp := postSync(t, h, userID, body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "Validation failed:")
	assert.Contains(t, resp.Message, "The diagnosis field is required.")
}

func TestSyncBusinessRuleFailure(t *testing.T) {
	h, store, userID := setupSyncHandler(t)

	medID, err := store.CreateMedicine(context.Background(), &models.Medicine{
		Name:          "Cetirizine",
		Unit:          "tablet",
		StockQuantity: 2,
		ReorderLevel:  10,
	})
	require.NoError(t, err)

	body := fmt.Sprintf(`{"type":"medicine_dispense","data":{"medicine_id":%d,"patient_type":"student","patient_id":1,"quantity":5}}`, medID)
	rec, resp := postSync(t, h, userID, body)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "Sync failed:")
	assert.Contains(t, resp.Message, "Only 2 available.")
}

func TestSyncUnknownType(t *testing.T) {
	h, _, userID := setupSyncHandler(t)

	rec, resp := postSync(t, h, userID, `{"type":"appointment","data":{}}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "The selected type is invalid.")
}

func TestSyncMalformedBody(t *testing.T) {
	h, _, userID := setupSyncHandler(t)

	rec, resp := postSync(t, h, userID, `{"type":`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Validation failed: The request body is malformed.", resp.Message)
}

func TestSyncWithoutAuthenticatedUser(t *testing.T) {
	h, _, _ := setupSyncHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/offline-queue/sync", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.Sync(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
