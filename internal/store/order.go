package store

import (
	"context"
	"database/sql"

	"github.com/shopfront/apiserver/types"
)

// OrderRepository handles persistence for orders and their line items.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) List(ctx context.Context) ([]types.Order, error) {
	const query = `
		SELECT id, status, user_id
		FROM orders
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

// ListByUserAndStatus returns the user's orders in the given status,
// oldest first. This backs the dashboard views.
func (r *OrderRepository) ListByUserAndStatus(ctx context.Context, userID int, status types.OrderStatus) ([]types.Order, error) {
	const query = `
		SELECT id, status, user_id
		FROM orders
		WHERE user_id = $1 AND status = $2
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *OrderRepository) Create(ctx context.Context, order types.Order) (types.Order, error) {
	const query = `
		INSERT INTO orders (status, user_id)
		VALUES ($1, $2)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, order.Status, order.UserID).Scan(&order.ID); err != nil {
		return types.Order{}, err
	}
	return order, nil
}

// Delete removes the order; its order_products rows go with it via the
// foreign key cascade.
func (r *OrderRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM orders WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddProduct inserts a line item for the order.
func (r *OrderRepository) AddProduct(ctx context.Context, item types.OrderProduct) (types.OrderProduct, error) {
	const query = `
		INSERT INTO order_products (order_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		item.OrderID,
		item.ProductID,
		item.Quantity,
	).Scan(&item.ID); err != nil {
		return types.OrderProduct{}, err
	}
	return item, nil
}

func scanOrders(rows *sql.Rows) ([]types.Order, error) {
	orders := make([]types.Order, 0)
	for rows.Next() {
		var order types.Order
		if err := rows.Scan(&order.ID, &order.Status, &order.UserID); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
