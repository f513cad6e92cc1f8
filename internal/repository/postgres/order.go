package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Armmuh/naija-coffee-oasis/internal/domain"
	"github.com/Armmuh/naija-coffee-oasis/internal/repository"
	"github.com/Armmuh/naija-coffee-oasis/pkg/database"
	apperrors "github.com/Armmuh/naija-coffee-oasis/pkg/errors"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts a new order and its lines atomically within a transaction.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	addressJSON, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return fmt.Errorf("marshal shipping address: %w", err)
	}

	orderQuery := `
		INSERT INTO orders (id, user_id, status, subtotal, shipping_fee, total, payment_method, shipping_address, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = tx.Exec(ctx, orderQuery,
		o.ID,
		o.UserID,
		o.Status,
		o.Subtotal,
		o.ShippingFee,
		o.Total,
		o.PaymentMethod,
		addressJSON,
		o.Notes,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	lineQuery := `
		INSERT INTO order_lines (id, order_id, product_id, name, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, line := range o.Items {
		_, err = tx.Exec(ctx, lineQuery,
			line.ID,
			line.OrderID,
			line.ProductID,
			line.Name,
			line.UnitPrice,
			line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its ID, eagerly loading its lines.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, status, subtotal, shipping_fee, total, payment_method, shipping_address, notes, created_at, updated_at
		FROM orders
		WHERE id = $1`

	var (
		o           domain.Order
		addressJSON []byte
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.Subtotal,
		&o.ShippingFee,
		&o.Total,
		&o.PaymentMethod,
		&addressJSON,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if err := json.Unmarshal(addressJSON, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("unmarshal shipping address: %w", err)
	}

	o.Items, err = r.loadOrderLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}

	return &o, nil
}

// List returns orders matching the given filter with the total count.
func (r *OrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int, error) {
	var (
		conditions []string
		args       []any
		argIndex   = 1
	)

	if filter.UserID != nil {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIndex))
		args = append(args, *filter.UserID)
		argIndex++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// count(*) OVER() yields the total count in the same query.
	query := fmt.Sprintf(`
		SELECT id, user_id, status, subtotal, shipping_fee, total, payment_method, shipping_address, notes, created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM orders
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1,
	)

	limit := filter.PerPage
	if limit <= 0 {
		limit = 20
	}
	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * limit
	}

	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var totalCount int
	orders := make([]domain.Order, 0)

	for rows.Next() {
		var (
			o           domain.Order
			addressJSON []byte
		)

		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.Status,
			&o.Subtotal,
			&o.ShippingFee,
			&o.Total,
			&o.PaymentMethod,
			&addressJSON,
			&o.Notes,
			&o.CreatedAt,
			&o.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan order row: %w", err)
		}

		if len(addressJSON) > 0 && string(addressJSON) != "null" {
			if err := json.Unmarshal(addressJSON, &o.ShippingAddress); err != nil {
				return nil, 0, fmt.Errorf("unmarshal shipping address: %w", err)
			}
		}

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}

	// Batch-load lines for all orders in a single query to avoid N+1.
	if len(orders) > 0 {
		orderIDs := make([]string, len(orders))
		for i := range orders {
			orderIDs[i] = orders[i].ID
		}

		linesQuery := `
			SELECT id, order_id, product_id, name, unit_price, quantity
			FROM order_lines
			WHERE order_id = ANY($1)
			ORDER BY id`

		lineRows, err := r.pool.Query(ctx, linesQuery, orderIDs)
		if err != nil {
			return nil, 0, fmt.Errorf("batch load order lines: %w", err)
		}
		defer lineRows.Close()

		linesByOrderID := make(map[string][]domain.OrderLine, len(orders))
		for lineRows.Next() {
			var line domain.OrderLine
			if err := lineRows.Scan(
				&line.ID,
				&line.OrderID,
				&line.ProductID,
				&line.Name,
				&line.UnitPrice,
				&line.Quantity,
			); err != nil {
				return nil, 0, fmt.Errorf("scan order line: %w", err)
			}
			linesByOrderID[line.OrderID] = append(linesByOrderID[line.OrderID], line)
		}
		if err := lineRows.Err(); err != nil {
			return nil, 0, fmt.Errorf("iterate batch order line rows: %w", err)
		}

		for i := range orders {
			if lines, ok := linesByOrderID[orders[i].ID]; ok {
				orders[i].Items = lines
			} else {
				orders[i].Items = []domain.OrderLine{}
			}
		}
	}

	return orders, totalCount, nil
}

// UpdateStatus changes the status of an order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3`

	ct, err := r.pool.Exec(ctx, query, status, updatedAt, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}

	return nil
}

// loadOrderLines retrieves all lines belonging to a given order.
func (r *OrderRepository) loadOrderLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	query := `
		SELECT id, order_id, product_id, name, unit_price, quantity
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.OrderLine, 0)
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.ProductID,
			&line.Name,
			&line.UnitPrice,
			&line.Quantity,
		); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order line rows: %w", err)
	}

	return lines, nil
}
