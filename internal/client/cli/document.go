package cli

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/campushealth/clinicsync/internal/models"
)

func (c *Cli) runAddDocument(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-document", flag.ContinueOnError)
	studentID := fs.Int64("student-id", 0, "student record id")
	filePath := fs.String("file", "", "path to the document file")
	fileType := fs.String("type", "", "document type (e.g. Medical Certificate)")
	description := fs.String("description", "", "description")
	queueOnly := fs.Bool("queue", false, "queue without trying the server first")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *filePath == "" {
		return fmt.Errorf("missing required flag --file")
	}

	// The file is captured as base64 inside the payload so the queue entry
	// stays a single serializable record.
	raw, err := os.ReadFile(*filePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	payload := map[string]any{
		"student_id":  *studentID,
		"file_base64": base64.StdEncoding.EncodeToString(raw),
		"file_name":   filepath.Base(*filePath),
		"file_type":   *fileType,
		"description": *description,
	}

	return c.submitOrQueue(ctx, models.OpMaritimeDocument, payload, *queueOnly)
}
