package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushealth/clinicsync/pkg/api"
)

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nurse@clinic.local", req.Email)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.TokenResponse{
			AccessToken: "issued-token",
			ExpiresIn:   28800,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Login(context.Background(), api.LoginRequest{
		Email:    "nurse@clinic.local",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "issued-token", resp.AccessToken)
	assert.Equal(t, int64(28800), resp.ExpiresIn)
}

func TestLoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{
			Error:   "Unauthorized",
			Message: "invalid email or password",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), api.LoginRequest{
		Email:    "nurse@clinic.local",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestSyncItemSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/offline-queue/sync", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		var req api.SyncItemRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "treatment", req.Type)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.SyncItemResponse{
			Success: true,
			Message: "Treatment synced successfully.",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.SyncItem(context.Background(), "token-1", api.SyncItemRequest{
		Type: "treatment",
		Data: json.RawMessage(`{"diagnosis":"flu"}`),
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Treatment synced successfully.", resp.Message)
}

func TestSyncItemServerRejection(t *testing.T) {
	// A decodable rejection body is a per-item outcome, not an error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(api.SyncItemResponse{
			Success: false,
			Message: "Validation failed: The diagnosis field is required.",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.SyncItem(context.Background(), "token-1", api.SyncItemRequest{
		Type: "treatment",
		Data: json.RawMessage(`{}`),
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "diagnosis field is required")
}

func TestSyncItemNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // server is gone: transport-level failure

	client := NewClient(server.URL)
	_, err := client.SyncItem(context.Background(), "token-1", api.SyncItemRequest{
		Type: "treatment",
		Data: json.RawMessage(`{}`),
	})
	require.Error(t, err)
}

func TestSyncItemUndecodableReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.SyncItem(context.Background(), "token-1", api.SyncItemRequest{
		Type: "treatment",
		Data: json.RawMessage(`{}`),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	assert.NoError(t, client.Health(context.Background()))
}

func TestHealthUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	assert.Error(t, client.Health(context.Background()))
}
