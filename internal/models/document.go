package models

import "time"

// MaritimeDocument is the stored metadata for an uploaded maritime
// compliance document. The file itself lives on disk at FilePath.
type MaritimeDocument struct {
	ID          int64  `json:"id"`
	StudentID   int64  `json:"student_id"`
	FileName    string `json:"file_name"`
	FilePath    string `json:"file_path"`
	FileType    string `json:"file_type,omitempty"`
	FileSize    int64  `json:"file_size"`
	Description string `json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
