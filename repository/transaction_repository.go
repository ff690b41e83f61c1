// repository/transaction_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/fadhlanhapp/dinetab-backend/models"
)

// TransactionRepository handles durable storage for the tender ledger
type TransactionRepository struct {
	DB *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		DB: GetDB(),
	}
}

// Save upserts a transaction. Tip is the only column expected to change
// after creation.
func (r *TransactionRepository) Save(tx *models.Transaction) error {
	_, err := r.DB.Exec(
		`INSERT INTO transactions
         (id, order_id, shift_id, method, amount, tip, status, server, created_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
         ON CONFLICT (id) DO UPDATE SET tip = EXCLUDED.tip`,
		tx.ID, tx.OrderID, tx.ShiftID, tx.Method, tx.Amount, tx.Tip,
		tx.Status, tx.Server, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %v", err)
	}
	return nil
}

// LoadByShift returns every transaction recorded against a shift
func (r *TransactionRepository) LoadByShift(shiftID string) ([]*models.Transaction, error) {
	rows, err := r.DB.Query(
		`SELECT id, order_id, shift_id, method, amount, tip, status, server, created_at
         FROM transactions WHERE shift_id = $1 ORDER BY created_at`,
		shiftID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %v", err)
	}
	defer rows.Close()

	var txs []*models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.OrderID, &tx.ShiftID, &tx.Method,
			&tx.Amount, &tx.Tip, &tx.Status, &tx.Server, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %v", err)
		}
		txs = append(txs, &tx)
	}
	return txs, rows.Err()
}
