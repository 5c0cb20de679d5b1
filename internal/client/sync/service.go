// Package sync drives the offline queue against the server: it tracks
// connectivity, runs at most one drain pass at a time, and publishes the
// per-pass outcome to an owned State object.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	httpclient "github.com/campushealth/clinicsync/internal/client/api"
	"github.com/campushealth/clinicsync/internal/client/queue"
	"github.com/campushealth/clinicsync/pkg/api"
)

// Defaults matching the clinic UI behavior: a short settle delay after a
// reconnect before draining, and a 4 second display window for outcomes.
const (
	DefaultSettleDelay = 1500 * time.Millisecond
	DefaultOutcomeTTL  = 4 * time.Second
)

// TokenFunc supplies the access token for sync requests.
type TokenFunc func(ctx context.Context) (string, error)

// Options tune the service; zero values fall back to the defaults above.
type Options struct {
	SettleDelay time.Duration
	OutcomeTTL  time.Duration
	Logger      *slog.Logger
}

// Service orchestrates sync passes over the pending-write queue.
type Service struct {
	api    httpclient.ClientAPI
	store  queue.Store
	token  TokenFunc
	state  *State
	logger *slog.Logger

	settleDelay time.Duration
	outcomeTTL  time.Duration

	// passMu enforces the single-flight rule: a trigger while a pass is
	// in flight is dropped, not queued.
	passMu sync.Mutex

	timerMu     sync.Mutex
	settleTimer *time.Timer
}

// NewService creates a sync service over the given queue store and API
// client. The service starts offline; connectivity is fed in through
// NotifyOnline/NotifyOffline.
func NewService(apiClient httpclient.ClientAPI, store queue.Store, token TokenFunc, opts Options) *Service {
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.OutcomeTTL <= 0 {
		opts.OutcomeTTL = DefaultOutcomeTTL
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Service{
		api:         apiClient,
		store:       store,
		token:       token,
		state:       NewState(false),
		logger:      opts.Logger,
		settleDelay: opts.SettleDelay,
		outcomeTTL:  opts.OutcomeTTL,
	}
}

// State returns the read-only view holder for consumers.
func (s *Service) State() *State {
	return s.state
}

// NotifyOnline records an Offline -> Online transition and schedules a
// sync pass after the settle delay, so a flaky reconnect does not race
// the drain.
func (s *Service) NotifyOnline() {
	if s.state.isOnline() {
		return
	}
	s.state.setOnline(true)
	s.logger.Info("connectivity restored, scheduling sync pass", "settle_delay", s.settleDelay)

	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.settleTimer != nil {
		s.settleTimer.Stop()
	}
	s.settleTimer = time.AfterFunc(s.settleDelay, func() {
		if _, err := s.SyncNow(context.Background()); err != nil {
			s.logger.Warn("auto sync pass failed", "error", err)
		}
	})
}

// NotifyOffline records the Offline state and cancels any pending
// settle-delay trigger. An in-flight pass is not interrupted; its items
// fail individually if the network is really gone.
func (s *Service) NotifyOffline() {
	s.state.setOnline(false)

	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.settleTimer != nil {
		s.settleTimer.Stop()
		s.settleTimer = nil
	}
}

// RefreshPending re-reads the durable pending count into the state.
func (s *Service) RefreshPending(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending entries: %w", err)
	}
	s.state.setPending(n)
	return n, nil
}

// SyncNow runs one sync pass. It is a no-op returning (nil, nil) when the
// tracker reports offline, when the queue is empty, or when another pass
// is already in flight.
func (s *Service) SyncNow(ctx context.Context) (*Outcome, error) {
	if !s.state.isOnline() {
		return nil, nil
	}

	if !s.passMu.TryLock() {
		s.logger.Debug("sync pass already in flight, trigger dropped")
		return nil, nil
	}
	defer s.passMu.Unlock()

	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read queue: %w", err)
	}
	if len(entries) == 0 {
		s.state.setPending(0)
		return nil, nil
	}

	accessToken, err := s.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	s.state.setSyncing(true)
	defer s.state.setSyncing(false)

	s.logger.Info("starting sync pass", "pending", len(entries))

	outcome := &Outcome{}
	for _, entry := range entries {
		req := api.SyncItemRequest{
			Type: string(entry.Type),
			Data: entry.Payload,
		}

		resp, err := s.api.SyncItem(ctx, accessToken, req)
		if err != nil {
			// Network-level failure: the entry stays queued.
			outcome.FailCount++
			if outcome.FirstError == "" {
				outcome.FirstError = fmt.Sprintf("%s: %v", entry.Type, err)
			}
			s.logger.Warn("sync item unreachable", "entry_id", entry.ID, "type", entry.Type, "error", err)
			continue
		}

		if !resp.Success {
			// Server rejected the item; keep it for manual correction.
			outcome.FailCount++
			if outcome.FirstError == "" {
				outcome.FirstError = fmt.Sprintf("%s: %s", entry.Type, resp.Message)
			}
			s.logger.Warn("sync item rejected", "entry_id", entry.ID, "type", entry.Type, "message", resp.Message)
			continue
		}

		// Confirmed applied: only now may the entry leave the queue.
		if err := s.store.Remove(ctx, entry.ID); err != nil {
			s.logger.Error("failed to remove synced entry", "entry_id", entry.ID, "error", err)
		}
		outcome.SuccessCount++
	}

	if _, err := s.RefreshPending(ctx); err != nil {
		s.logger.Warn("failed to refresh pending count", "error", err)
	}

	s.state.setOutcome(outcome)
	time.AfterFunc(s.outcomeTTL, func() {
		s.state.clearOutcome(outcome)
	})

	s.logger.Info("sync pass completed",
		"synced", outcome.SuccessCount,
		"failed", outcome.FailCount)

	return outcome, nil
}
