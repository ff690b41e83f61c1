// repository/shift_repository.go
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fadhlanhapp/dinetab-backend/models"
)

// ShiftRepository handles durable storage for shifts
type ShiftRepository struct {
	DB *sql.DB
}

// NewShiftRepository creates a new ShiftRepository
func NewShiftRepository() *ShiftRepository {
	return &ShiftRepository{
		DB: GetDB(),
	}
}

// Save upserts a shift snapshot
func (r *ShiftRepository) Save(shift *models.Shift) error {
	data, err := json.Marshal(shift)
	if err != nil {
		return fmt.Errorf("failed to marshal shift: %v", err)
	}

	_, err = r.DB.Exec(
		`INSERT INTO shifts (id, data, server, status, updated_at)
         VALUES ($1, $2, $3, $4, now())
         ON CONFLICT (id) DO UPDATE
         SET data = EXCLUDED.data, status = EXCLUDED.status, updated_at = now()`,
		shift.ID, data, shift.Server, shift.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to save shift: %v", err)
	}
	return nil
}

// LoadAll returns every stored shift snapshot
func (r *ShiftRepository) LoadAll() ([]*models.Shift, error) {
	rows, err := r.DB.Query("SELECT data FROM shifts ORDER BY updated_at")
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %v", err)
	}
	defer rows.Close()

	var shifts []*models.Shift
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %v", err)
		}
		var shift models.Shift
		if err := json.Unmarshal(data, &shift); err != nil {
			return nil, fmt.Errorf("failed to unmarshal shift: %v", err)
		}
		shifts = append(shifts, &shift)
	}
	return shifts, rows.Err()
}
