package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushealth/clinicsync/internal/client/queue"
	"github.com/campushealth/clinicsync/internal/models"
	"github.com/campushealth/clinicsync/pkg/api"
)

// fakeStore is an in-memory queue.Store for orchestration tests.
type fakeStore struct {
	mu      sync.Mutex
	entries []queue.Entry
	nextID  uint64
}

func (s *fakeStore) Enqueue(ctx context.Context, typ models.OperationType, payload json.RawMessage) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.entries = append(s.entries, queue.Entry{
		ID:        s.nextID,
		Type:      typ,
		Payload:   payload,
		CreatedAt: time.Now(),
	})
	return s.nextID, nil
}

func (s *fakeStore) List(ctx context.Context) ([]queue.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]queue.Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *fakeStore) Remove(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *fakeStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

func (s *fakeStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries), nil
}

// fakeAPI delegates SyncItem to a configurable function.
type fakeAPI struct {
	mu        sync.Mutex
	syncCalls int
	syncFunc  func(req api.SyncItemRequest) (*api.SyncItemResponse, error)
}

func (f *fakeAPI) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	return &api.TokenResponse{AccessToken: "test-token", ExpiresIn: 3600}, nil
}

func (f *fakeAPI) SyncItem(ctx context.Context, token string, req api.SyncItemRequest) (*api.SyncItemResponse, error) {
	f.mu.Lock()
	f.syncCalls++
	fn := f.syncFunc
	f.mu.Unlock()
	if fn == nil {
		return &api.SyncItemResponse{Success: true, Message: "ok"}, nil
	}
	return fn(req)
}

func (f *fakeAPI) Health(ctx context.Context) error {
	return nil
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.syncCalls
}

func staticToken(ctx context.Context) (string, error) {
	return "test-token", nil
}

func newTestService(apiClient *fakeAPI, store queue.Store, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return NewService(apiClient, store, staticToken, opts)
}

func enqueue(t *testing.T, store queue.Store, typ models.OperationType, marker string) uint64 {
	t.Helper()
	id, err := store.Enqueue(context.Background(), typ, json.RawMessage(`{"marker":"`+marker+`"}`))
	require.NoError(t, err)
	return id
}

func TestSyncNowOfflineIsNoOp(t *testing.T) {
	ctx := context.Background()
	apiClient := &fakeAPI{}
	store := &fakeStore{}
	svc := newTestService(apiClient, store, Options{})

	enqueue(t, store, models.OpTreatment, "a")

	outcome, err := svc.SyncNow(ctx)
	require.NoError(t, err)
	assert.Nil(t, outcome)
	assert.Equal(t, 0, apiClient.calls())

	count, _ := store.Count(ctx)
	assert.Equal(t, 1, count)
}

func TestSyncNowEmptyQueueIsNoOp(t *testing.T) {
	ctx := context.Background()
	apiClient := &fakeAPI{}
	svc := newTestService(apiClient, &fakeStore{}, Options{})
	svc.NotifyOnline()

	outcome, err := svc.SyncNow(ctx)
	require.NoError(t, err)
	assert.Nil(t, outcome)
	assert.Equal(t, 0, apiClient.calls())
}

func TestSyncRemovesOnlyConfirmedEntries(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	apiClient := &fakeAPI{
		syncFunc: func(req api.SyncItemRequest) (*api.SyncItemResponse, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := newTestService(apiClient, store, Options{SettleDelay: time.Hour})
	svc.NotifyOnline()

	id := enqueue(t, store, models.OpTreatment, "a")

	outcome, err := svc.SyncNow(ctx)
	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.Equal(t, 0, outcome.SuccessCount)
	assert.Equal(t, 1, outcome.FailCount)

	// A failed attempt leaves the entry queued.
	entries, _ := store.List(ctx)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)

	// When the server later confirms, the entry leaves the queue.
	apiClient.mu.Lock()
	apiClient.syncFunc = nil
	apiClient.mu.Unlock()

	outcome, err = svc.SyncNow(ctx)
	require.NoError(t, err)
	require.NotNil(t, outcome)
	assert.Equal(t, 1, outcome.SuccessCount)

	count, _ := store.Count(ctx)
	assert.Equal(t, 0, count)
}

func TestSyncPartialFailureContinuesPass(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	apiClient := &fakeAPI{
		syncFunc: func(req api.SyncItemRequest) (*api.SyncItemResponse, error) {
			var p struct {
				Marker string `json:"marker"`
			}
			_ = json.Unmarshal(req.Data, &p)
			if p.Marker == "dup" {
				return &api.SyncItemResponse{
					Success: false,
					Message: "Validation failed: The student_id_number has already been taken.",
				}, nil
			}
			return &api.SyncItemResponse{Success: true, Message: "ok"}, nil
		},
	}
	svc := newTestService(apiClient, store, Options{SettleDelay: time.Hour})
	svc.NotifyOnline()

	enqueue(t, store, models.OpStudent, "first")
	failedID := enqueue(t, store, models.OpStudent, "dup")
	enqueue(t, store, models.OpTreatment, "last")

	outcome, err := svc.SyncNow(ctx)
	require.NoError(t, err)
	require.NotNil(t, outcome)

	// The failure in the middle never aborts the pass.
	assert.Equal(t, 3, apiClient.calls())
	assert.Equal(t, 2, outcome.SuccessCount)
	assert.Equal(t, 1, outcome.FailCount)
	assert.Contains(t, outcome.FirstError, "already been taken")

	// Only the rejected entry remains, still in place.
	entries, _ := store.List(ctx)
	require.Len(t, entries, 1)
	assert.Equal(t, failedID, entries[0].ID)

	assert.Equal(t, 1, svc.State().Snapshot().PendingCount)
}

func TestSyncSingleFlight(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}

	started := make(chan struct{})
	release := make(chan struct{})
	apiClient := &fakeAPI{
		syncFunc: func(req api.SyncItemRequest) (*api.SyncItemResponse, error) {
			close(started)
			<-release
			return &api.SyncItemResponse{Success: true, Message: "ok"}, nil
		},
	}
	svc := newTestService(apiClient, store, Options{SettleDelay: time.Hour})
	svc.NotifyOnline()

	enqueue(t, store, models.OpTreatment, "slow")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.SyncNow(ctx)
	}()

	<-started

	// A trigger while a pass is in flight is dropped, not queued.
	outcome, err := svc.SyncNow(ctx)
	require.NoError(t, err)
	assert.Nil(t, outcome)

	close(release)
	<-done

	assert.Equal(t, 1, apiClient.calls())
}

func TestSyncOutcomeAutoClears(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	apiClient := &fakeAPI{}
	svc := newTestService(apiClient, store, Options{
		SettleDelay: time.Hour,
		OutcomeTTL:  30 * time.Millisecond,
	})
	svc.NotifyOnline()

	enqueue(t, store, models.OpTreatment, "a")

	outcome, err := svc.SyncNow(ctx)
	require.NoError(t, err)
	require.NotNil(t, outcome)

	require.NotNil(t, svc.State().Snapshot().LastOutcome)

	assert.Eventually(t, func() bool {
		return svc.State().Snapshot().LastOutcome == nil
	}, time.Second, 10*time.Millisecond)
}

func TestNotifyOnlineSchedulesPassAfterSettleDelay(t *testing.T) {
	store := &fakeStore{}
	apiClient := &fakeAPI{}
	svc := newTestService(apiClient, store, Options{
		SettleDelay: 20 * time.Millisecond,
	})

	enqueue(t, store, models.OpMedicine, "auto")

	svc.NotifyOnline()

	// Nothing happens before the settle delay elapses.
	assert.Equal(t, 0, apiClient.calls())

	assert.Eventually(t, func() bool {
		count, _ := store.Count(context.Background())
		return count == 0
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, apiClient.calls())
}

func TestNotifyOfflineCancelsScheduledPass(t *testing.T) {
	store := &fakeStore{}
	apiClient := &fakeAPI{}
	svc := newTestService(apiClient, store, Options{
		SettleDelay: 30 * time.Millisecond,
	})

	enqueue(t, store, models.OpMedicine, "flaky")

	// Going offline during the settle window cancels the drain.
	svc.NotifyOnline()
	svc.NotifyOffline()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, apiClient.calls())

	count, _ := store.Count(context.Background())
	assert.Equal(t, 1, count)
}

func TestOutcomeMessage(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    string
	}{
		{
			name:    "single success",
			outcome: Outcome{SuccessCount: 1},
			want:    "1 item synced successfully!",
		},
		{
			name:    "multiple successes",
			outcome: Outcome{SuccessCount: 3},
			want:    "3 items synced successfully!",
		},
		{
			name:    "mixed outcome",
			outcome: Outcome{SuccessCount: 2, FailCount: 1, FirstError: "student: duplicate"},
			want:    "2 synced, 1 failed. student: duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.Message())
		})
	}
}

func TestRefreshPending(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := newTestService(&fakeAPI{}, store, Options{})

	for i := 0; i < 4; i++ {
		enqueue(t, store, models.OpTreatment, fmt.Sprintf("e%d", i))
	}

	n, err := svc.RefreshPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 4, svc.State().Snapshot().PendingCount)
}
