package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DepartmentExists reports whether a department row with the given id exists.
func (s *Storage) DepartmentExists(ctx context.Context, id int64) (bool, error) {
	return s.rowExists(ctx, `SELECT 1 FROM departments WHERE id = ?`, id)
}

// CourseExists reports whether a course row with the given id exists.
func (s *Storage) CourseExists(ctx context.Context, id int64) (bool, error) {
	return s.rowExists(ctx, `SELECT 1 FROM courses WHERE id = ?`, id)
}

func (s *Storage) rowExists(ctx context.Context, query string, args ...any) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("existence query failed: %w", err)
	}
	return true, nil
}
