package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/models"
	_ "github.com/lib/pq"
)

const ordersSchema = `
CREATE TABLE IF NOT EXISTS orders (
	id         TEXT PRIMARY KEY,
	cart_id    TEXT NOT NULL,
	pincode    TEXT NOT NULL,
	total      NUMERIC(12, 2) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	payload    JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS orders_created_at_idx ON orders (created_at DESC);`

// PostgresOrderRepository stores the order journal in Postgres.
// The full record is kept as JSONB; a few columns are lifted out for querying.
type PostgresOrderRepository struct {
	db *sql.DB
}

// OpenPostgres opens and pings a Postgres connection pool
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// NewPostgresOrderRepository creates a journal over db
func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// EnsureSchema creates the orders table if needed
func (r *PostgresOrderRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, ordersSchema); err != nil {
		return fmt.Errorf("failed to create orders schema: %w", err)
	}
	return nil
}

// Append records an order
func (r *PostgresOrderRepository) Append(ctx context.Context, order *models.OrderRecord) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}

	query := `INSERT INTO orders (id, cart_id, pincode, total, created_at, payload)
	VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.db.ExecContext(ctx, query,
		order.ID,
		order.CartID,
		order.Customer.Pincode,
		order.Summary.Total.String(),
		order.CreatedAt,
		payload,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// GetByID returns an order by its ID
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*models.OrderRecord, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM orders WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	var order models.OrderRecord
	if err := json.Unmarshal(payload, &order); err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}
	return &order, nil
}

// List returns up to limit orders, newest first. limit <= 0 returns all.
func (r *PostgresOrderRepository) List(ctx context.Context, limit int) ([]models.OrderRecord, error) {
	query := `SELECT payload FROM orders ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.OrderRecord{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		var order models.OrderRecord
		if err := json.Unmarshal(payload, &order); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
