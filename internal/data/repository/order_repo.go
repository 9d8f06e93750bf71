package repository

import (
	"context"
	"fmt"

	"order-management/internal/data/entity"
	"order-management/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.OrderStatus) ([]*entity.Order, error)

	// UpdateStatusFrom hanya mengubah status kalau status saat ini = from.
	// Return false kalau baris tidak ada atau sudah pindah status.
	UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) (bool, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, user_id, product_name, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.ProductName,
		order.Amount,
		order.Status,
		order.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("user_id", order.UserID.String()),
		)
		return fmt.Errorf("create order %s: %w", order.ID.String(), err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `
		SELECT id, user_id, product_name, amount, status, created_at
		FROM orders
		WHERE id = $1
	`

	var order entity.Order
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.ProductName,
		&order.Amount,
		&order.Status,
		&order.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	return &order, nil
}

// FindByIDAndUser scoped ke pemilik; order milik user lain tidak kelihatan
func (r *orderRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	query := `
		SELECT id, user_id, product_name, amount, status, created_at
		FROM orders
		WHERE id = $1 AND user_id = $2
	`

	var order entity.Order
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&order.ID,
		&order.UserID,
		&order.ProductName,
		&order.Amount,
		&order.Status,
		&order.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID and user",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find order %s for user %s: %w", id.String(), userID.String(), err)
	}

	return &order, nil
}

func (r *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.OrderStatus) ([]*entity.Order, error) {
	query := `
		SELECT id, user_id, product_name, amount, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at
	`
	args := []any{userID}

	if status != nil {
		query = `
			SELECT id, user_id, product_name, amount, status, created_at
			FROM orders
			WHERE user_id = $1 AND status = $2
			ORDER BY created_at
		`
		args = append(args, *status)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find orders by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find orders by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var order entity.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.ProductName,
			&order.Amount,
			&order.Status,
			&order.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &order)
	}

	return orders, nil
}

func (r *orderRepository) UpdateStatusFrom(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) (bool, error) {
	query := `UPDATE orders SET status = $3 WHERE id = $1 AND status = $2`

	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update order %s status %s -> %s: %w", id.String(), string(from), string(to), err)
	}

	return result.RowsAffected() > 0, nil
}
