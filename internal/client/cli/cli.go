// Package cli implements the clinic client commands: capturing writes
// while offline, inspecting the pending queue and driving sync passes.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/campushealth/clinicsync/internal/client/api"
	"github.com/campushealth/clinicsync/internal/client/queue/boltdb"
	syncsvc "github.com/campushealth/clinicsync/internal/client/sync"
	"github.com/campushealth/clinicsync/internal/models"
	pkgapi "github.com/campushealth/clinicsync/pkg/api"
)

// Cli wires the client commands to the API, the local store and the sync
// service.
type Cli struct {
	apiClient   api.ClientAPI
	store       *boltdb.Storage
	syncService *syncsvc.Service
}

// New creates the command dispatcher.
func New(apiClient api.ClientAPI, store *boltdb.Storage, syncService *syncsvc.Service) *Cli {
	return &Cli{
		apiClient:   apiClient,
		store:       store,
		syncService: syncService,
	}
}

// Run executes one command. args are the arguments after the command name.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx)
	case "status":
		return c.runStatus(ctx)
	case "add-treatment":
		return c.runAddTreatment(ctx, args)
	case "dispense":
		return c.runDispense(ctx, args)
	case "add-student":
		return c.runAddStudent(ctx, args)
	case "add-personnel":
		return c.runAddPersonnel(ctx, args)
	case "add-medicine":
		return c.runAddMedicine(ctx, args)
	case "add-document":
		return c.runAddDocument(ctx, args)
	case "queue":
		return c.runQueue(ctx)
	case "queue-drop":
		return c.runQueueDrop(ctx, args)
	case "queue-clear":
		return c.runQueueClear(ctx)
	case "sync":
		return c.runSync(ctx)
	case "watch":
		return c.runWatch(ctx, args)
	default:
		PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// PrintUsage prints the command summary.
func PrintUsage() {
	fmt.Println("ClinicSync Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  clinicsync [OPTIONS] COMMAND [ARGS]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --server URL   Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH      Path to local database (default: clinicsync-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login                    Login with clinic credentials")
	fmt.Println("  status                   Show connectivity, session and pending count")
	fmt.Println("  add-treatment            Record a treatment (queued if offline)")
	fmt.Println("  dispense                 Dispense a medicine (queued if offline)")
	fmt.Println("  add-student              Register a student (queued if offline)")
	fmt.Println("  add-personnel            Register a personnel record (queued if offline)")
	fmt.Println("  add-medicine             Add a medicine to the catalog (queued if offline)")
	fmt.Println("  add-document             Upload a maritime document (queued if offline)")
	fmt.Println("  queue                    List pending queue entries")
	fmt.Println("  queue-drop ID            Remove one pending entry by id")
	fmt.Println("  queue-clear              Remove all pending entries")
	fmt.Println("  sync                     Run one sync pass now")
	fmt.Println("  watch                    Track connectivity and sync automatically")
	fmt.Println()
	fmt.Println("Run a capture command with -h to see its fields.")
}

// readInput reads one trimmed line from stdin.
func readInput(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads a password without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(password), nil
}

// accessToken returns the stored session token, requiring a valid login.
func (c *Cli) accessToken(ctx context.Context) (string, error) {
	auth, err := c.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, boltdb.ErrAuthNotFound) {
			return "", fmt.Errorf("not logged in, run 'clinicsync login' first")
		}
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	if auth.Expired() {
		return "", fmt.Errorf("session expired, run 'clinicsync login' again")
	}
	return auth.AccessToken, nil
}

// submitOrQueue tries to apply one captured write immediately and falls
// back to the durable queue when the server cannot be reached. A server
// rejection (validation or business rule) is surfaced as an error and is
// NOT queued: a blind retry would fail the same way.
func (c *Cli) submitOrQueue(ctx context.Context, typ models.OperationType, payload any, forceQueue bool) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if !forceQueue {
		if token, err := c.accessToken(ctx); err == nil {
			resp, sendErr := c.apiClient.SyncItem(ctx, token, apiRequest(typ, data))
			if sendErr == nil {
				if !resp.Success {
					return fmt.Errorf("server rejected the record: %s", resp.Message)
				}
				fmt.Printf("✓ %s\n", resp.Message)
				return nil
			}
			fmt.Printf("Server unreachable (%v)\n", sendErr)
		}
	}

	id, err := c.store.Enqueue(ctx, typ, data)
	if err != nil {
		return fmt.Errorf("failed to queue record: %w", err)
	}

	count, err := c.store.Count(ctx)
	if err != nil {
		count = 0
	}
	fmt.Printf("✓ Saved to offline queue (entry %d, %d pending)\n", id, count)
	fmt.Println("Run 'clinicsync sync' when the server is reachable.")
	return nil
}

func apiRequest(typ models.OperationType, data json.RawMessage) pkgapi.SyncItemRequest {
	return pkgapi.SyncItemRequest{
		Type: string(typ),
		Data: data,
	}
}
