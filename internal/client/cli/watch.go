package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	syncsvc "github.com/campushealth/clinicsync/internal/client/sync"
)

// runWatch is the long-running connectivity adapter: it polls the health
// endpoint as the connectivity signal and feeds transitions into the sync
// service, which drains the queue on each Offline -> Online edge.
func (c *Cli) runWatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	interval := fs.Duration("interval", 5*time.Second, "connectivity probe interval")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := c.syncService.RefreshPending(ctx); err != nil {
		return err
	}

	fmt.Printf("Watching connectivity (probe every %s). Press Ctrl+C to stop.\n", *interval)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	var lastShown syncsvc.Outcome
	var shownAny bool
	online := false

	probe := func() {
		probeCtx, cancel := context.WithTimeout(ctx, *interval)
		defer cancel()

		err := c.apiClient.Health(probeCtx)
		switch {
		case err == nil && !online:
			online = true
			fmt.Println("● Online, sync scheduled")
			c.syncService.NotifyOnline()
		case err != nil && online:
			online = false
			fmt.Println("○ Offline")
			c.syncService.NotifyOffline()
		case err != nil && !online:
			// Still offline; the service already knows.
			c.syncService.NotifyOffline()
		}
	}

	probe()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopped.")
			return nil
		case <-ticker.C:
			probe()

			snap := c.syncService.State().Snapshot()
			if snap.LastOutcome != nil && (!shownAny || *snap.LastOutcome != lastShown) {
				fmt.Printf("✓ %s\n", snap.LastOutcome.Message())
				lastShown = *snap.LastOutcome
				shownAny = true
			}
		}
	}
}
