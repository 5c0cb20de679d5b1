package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/campushealth/clinicsync/internal/models"
	"github.com/campushealth/clinicsync/internal/server/storage"
)

const medicineColumns = `
	id, name, description, category, unit,
	stock_quantity, reorder_level, expiry_date,
	created_at, updated_at`

// CreateMedicine inserts a catalog row.
func (s *Storage) CreateMedicine(ctx context.Context, m *models.Medicine) (int64, error) {
	now := time.Now().Unix()
	unit := m.Unit
	if unit == "" {
		unit = "pcs"
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO medicines (
			name, description, category, unit,
			stock_quantity, reorder_level, expiry_date,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		m.Name,
		nullStr(m.Description),
		nullStr(m.Category),
		unit,
		m.StockQuantity,
		m.ReorderLevel,
		nullStr(m.ExpiryDate),
		now,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert medicine: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get medicine id: %w", err)
	}

	return id, nil
}

// GetMedicine fetches a catalog row by id.
// Returns storage.ErrNotFound when it does not exist.
func (s *Storage) GetMedicine(ctx context.Context, id int64) (*models.Medicine, error) {
	row := s.db.QueryRowContext(ctx, `SELECT`+medicineColumns+` FROM medicines WHERE id = ?`, id)
	m, err := scanMedicine(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get medicine: %w", err)
	}
	return m, nil
}

// ListMedicines returns the full catalog ordered by name.
func (s *Storage) ListMedicines(ctx context.Context) ([]*models.Medicine, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT`+medicineColumns+` FROM medicines ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query medicines: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var medicines []*models.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan medicine: %w", err)
		}
		medicines = append(medicines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return medicines, nil
}

// DispenseMedicine applies one dispense atomically: the stock re-read,
// the overdraw check, the log insert and the decrement all happen in one
// transaction, so two concurrent dispenses of the same medicine cannot
// produce a lost update or a negative stock.
func (s *Storage) DispenseMedicine(ctx context.Context, log *models.MedicineLog) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var name string
	var stock int
	err = tx.QueryRowContext(ctx,
		`SELECT name, stock_quantity FROM medicines WHERE id = ?`,
		log.MedicineID,
	).Scan(&name, &stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrNotFound
		}
		return 0, fmt.Errorf("failed to read stock: %w", err)
	}

	if stock < log.Quantity {
		return 0, &storage.InsufficientStockError{
			Medicine:  name,
			Available: stock,
			Requested: log.Quantity,
		}
	}

	now := time.Now()
	dispensedAt := log.DispensedAt
	if dispensedAt.IsZero() {
		dispensedAt = now
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO medicine_logs (
			medicine_id, patient_kind, patient_id, quantity,
			dispensed_by, dispensed_at, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		log.MedicineID,
		string(log.Patient.Kind),
		log.Patient.ID,
		log.Quantity,
		log.DispensedBy,
		dispensedAt.Unix(),
		nullStr(log.Notes),
		now.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert dispense log: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE medicines
		SET stock_quantity = stock_quantity - ?, updated_at = ?
		WHERE id = ?
	`, log.Quantity, now.Unix(), log.MedicineID); err != nil {
		return 0, fmt.Errorf("failed to decrement stock: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get log id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMedicine(row scanner) (*models.Medicine, error) {
	m := &models.Medicine{}
	var description, category, expiryDate sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(
		&m.ID,
		&m.Name,
		&description,
		&category,
		&m.Unit,
		&m.StockQuantity,
		&m.ReorderLevel,
		&expiryDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Description = description.String
	m.Category = category.String
	m.ExpiryDate = expiryDate.String
	m.CreatedAt = time.Unix(createdAt, 0)
	m.UpdatedAt = time.Unix(updatedAt, 0)

	return m, nil
}
