package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/campushealth/clinicsync/internal/models"
)

// CreateMaritimeDocument inserts document metadata. The file itself must
// already be on disk at d.FilePath.
func (s *Storage) CreateMaritimeDocument(ctx context.Context, d *models.MaritimeDocument) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO maritime_documents (
			student_id, file_name, file_path, file_type, file_size,
			description, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		d.StudentID,
		d.FileName,
		d.FilePath,
		nullStr(d.FileType),
		d.FileSize,
		nullStr(d.Description),
		time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert maritime document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get document id: %w", err)
	}

	return id, nil
}
