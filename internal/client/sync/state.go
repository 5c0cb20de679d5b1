package sync

import (
	"fmt"
	"sync"
)

// Outcome summarizes one completed sync pass. It is ephemeral: published
// to the State for a short display window, then cleared.
type Outcome struct {
	SuccessCount int
	FailCount    int
	FirstError   string
}

// Message renders the outcome the way the clinic UI shows it.
func (o Outcome) Message() string {
	if o.FailCount == 0 {
		plural := "s"
		if o.SuccessCount == 1 {
			plural = ""
		}
		return fmt.Sprintf("%d item%s synced successfully!", o.SuccessCount, plural)
	}
	return fmt.Sprintf("%d synced, %d failed. %s", o.SuccessCount, o.FailCount, o.FirstError)
}

// Snapshot is a read-only view of the queue state for consumers
// (status output, UI indicators).
type Snapshot struct {
	Online       bool
	Syncing      bool
	PendingCount int
	LastOutcome  *Outcome
}

// State owns the shared online/pending/syncing flags. It is initialized
// once and mutated only by the Service; everything else reads snapshots.
type State struct {
	mu      sync.Mutex
	online  bool
	syncing bool
	pending int
	last    *Outcome
}

// NewState creates a State with the given initial connectivity.
func NewState(online bool) *State {
	return &State{online: online}
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Online:       s.online,
		Syncing:      s.syncing,
		PendingCount: s.pending,
	}
	if s.last != nil {
		o := *s.last
		snap.LastOutcome = &o
	}
	return snap
}

func (s *State) setOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online = online
}

func (s *State) isOnline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online
}

func (s *State) setSyncing(syncing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncing = syncing
}

func (s *State) setPending(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = n
}

func (s *State) setOutcome(o *Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = o
}

// clearOutcome drops the displayed outcome, but only if it is still the
// one the caller published; a newer pass's outcome is left alone.
func (s *State) clearOutcome(o *Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == o {
		s.last = nil
	}
}
