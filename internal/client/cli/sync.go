package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runSync(ctx context.Context) error {
	count, err := c.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending entries: %w", err)
	}
	if count == 0 {
		fmt.Println("✓ No pending records")
		return nil
	}

	if err := c.apiClient.Health(ctx); err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}

	fmt.Printf("Syncing %d record(s)...\n", count)

	c.syncService.NotifyOnline()

	outcome, err := c.syncService.SyncNow(ctx)
	if err != nil {
		return err
	}
	if outcome == nil {
		fmt.Println("Sync pass skipped (nothing to do)")
		return nil
	}

	fmt.Printf("✓ %s\n", outcome.Message())
	if outcome.FailCount > 0 {
		fmt.Printf("%d record(s) remain queued.\n", outcome.FailCount)
	}

	return nil
}
