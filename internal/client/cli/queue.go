package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

func (c *Cli) runQueue(ctx context.Context) error {
	entries, err := c.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to read queue: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("✓ No pending records")
		return nil
	}

	fmt.Printf("=== Pending Queue (%d) ===\n", len(entries))
	fmt.Println()
	for _, e := range entries {
		fmt.Printf("  %d  %-18s  captured %s\n",
			e.ID, e.Type, e.CreatedAt.Format(time.RFC3339))
	}
	fmt.Println()
	fmt.Println("Run 'clinicsync sync' to apply, or 'clinicsync queue-drop ID' to discard one.")

	return nil
}

func (c *Cli) runQueueDrop(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: clinicsync queue-drop ID")
	}

	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid entry id %q", args[0])
	}

	if err := c.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to drop entry: %w", err)
	}

	count, err := c.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending entries: %w", err)
	}

	fmt.Printf("✓ Entry %d dropped (%d pending)\n", id, count)
	return nil
}

func (c *Cli) runQueueClear(ctx context.Context) error {
	count, err := c.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending entries: %w", err)
	}
	if count == 0 {
		fmt.Println("✓ Queue is already empty")
		return nil
	}

	// Clearing throws away unsynced writes, so ask first.
	answer, err := readInput(fmt.Sprintf("Discard all %d pending record(s)? [y/N]: ", count))
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		fmt.Println("Aborted.")
		return nil
	}

	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear queue: %w", err)
	}

	fmt.Println("✓ Queue cleared")
	return nil
}
