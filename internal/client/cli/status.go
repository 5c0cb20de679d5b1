package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushealth/clinicsync/internal/client/queue/boltdb"
)

func (c *Cli) runStatus(ctx context.Context) error {
	fmt.Println("=== Status ===")
	fmt.Println()

	if err := c.apiClient.Health(ctx); err != nil {
		fmt.Println("Server: offline")
	} else {
		fmt.Println("Server: online")
	}

	auth, err := c.store.GetAuth(ctx)
	switch {
	case errors.Is(err, boltdb.ErrAuthNotFound):
		fmt.Println("Session: not logged in")
	case err != nil:
		return fmt.Errorf("failed to read session: %w", err)
	case auth.Expired():
		fmt.Printf("Session: expired (was %s)\n", auth.Email)
	default:
		expiresAt := time.Unix(auth.ExpiresAt, 0)
		fmt.Printf("Session: %s (token expires %s)\n", auth.Email, expiresAt.Format(time.RFC3339))
	}

	count, err := c.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending entries: %w", err)
	}

	fmt.Println()
	if count > 0 {
		fmt.Printf("Pending: %d record(s) waiting to be synced\n", count)
		fmt.Println("Run 'clinicsync sync' to synchronize with the server.")
	} else {
		fmt.Println("✓ No pending records")
	}

	return nil
}
