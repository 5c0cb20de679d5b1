package reconcile

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/campushealth/clinicsync/internal/models"
	"github.com/campushealth/clinicsync/internal/validation"
)

type documentPayload struct {
	StudentID   *int64 `json:"student_id"`
	FileBase64  string `json:"file_base64"`
	FileName    string `json:"file_name"`
	FileType    string `json:"file_type"`
	Description string `json:"description"`
}

func (r *Reconciler) applyMaritimeDocument(ctx context.Context, data json.RawMessage) (*Result, error) {
	var p documentPayload
	if err := decode(data, &p); err != nil {
		return nil, err
	}

	var c validation.Collector
	c.RequireInt("student_id", p.StudentID)
	c.Require("file_base64", p.FileBase64)
	c.Require("file_name", p.FileName)
	c.MaxLen("file_name", p.FileName, 255)
	c.Require("file_type", p.FileType)
	c.MaxLen("file_type", p.FileType, 100)
	c.MaxLen("description", p.Description, 255)
	if errs := c.Err(); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	ok, err := r.store.StudentExists(ctx, *p.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check student: %w", err)
	}
	if !ok {
		return nil, fieldError("student_id", "The selected student_id is invalid.")
	}

	raw, err := decodeBase64File(p.FileBase64)
	if err != nil {
		return nil, fieldError("file_base64", "The file_base64 field must be valid base64.")
	}

	path, err := r.files.SaveMaritimeDocument(p.FileName, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to store document file: %w", err)
	}

	doc := &models.MaritimeDocument{
		StudentID:   *p.StudentID,
		FileName:    p.FileName,
		FilePath:    path,
		FileType:    p.FileType,
		FileSize:    int64(len(raw)),
		Description: p.Description,
	}

	if _, err := r.store.CreateMaritimeDocument(ctx, doc); err != nil {
		// Keep disk and database consistent: the metadata row is the
		// source of truth, so an orphaned file must not survive.
		if rmErr := r.files.Remove(path); rmErr != nil {
			r.logger.Error("failed to remove orphaned document file", "path", path, "error", rmErr)
		}
		return nil, fmt.Errorf("failed to create maritime document: %w", err)
	}

	return &Result{Message: "Maritime document synced successfully."}, nil
}

// decodeBase64File decodes an uploaded file body, accepting both bare
// base64 and data-URL form ("data:<mime>;base64,<data>").
func decodeBase64File(s string) ([]byte, error) {
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[i+1:]
	}
	return base64.StdEncoding.DecodeString(s)
}
