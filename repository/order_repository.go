// repository/order_repository.go
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fadhlanhapp/dinetab-backend/models"
)

// OrderRepository handles durable storage for orders. The in-memory
// store is authoritative; this is a write-through snapshot so state
// survives a restart.
type OrderRepository struct {
	DB *sql.DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		DB: GetDB(),
	}
}

// Save upserts an order snapshot
func (r *OrderRepository) Save(order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %v", err)
	}

	_, err = r.DB.Exec(
		`INSERT INTO orders (id, data, status, server, updated_at)
         VALUES ($1, $2, $3, $4, now())
         ON CONFLICT (id) DO UPDATE
         SET data = EXCLUDED.data, status = EXCLUDED.status, updated_at = now()`,
		order.ID, data, order.Status, order.Server,
	)
	if err != nil {
		return fmt.Errorf("failed to save order: %v", err)
	}
	return nil
}

// LoadAll returns every stored order snapshot
func (r *OrderRepository) LoadAll() ([]*models.Order, error) {
	rows, err := r.DB.Query("SELECT data FROM orders ORDER BY updated_at")
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %v", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan order: %v", err)
		}
		var order models.Order
		if err := json.Unmarshal(data, &order); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order: %v", err)
		}
		orders = append(orders, &order)
	}
	return orders, rows.Err()
}
