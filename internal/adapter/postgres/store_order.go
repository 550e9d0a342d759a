package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/modaflow/backend/internal/domain/order"
)

// CreateOrder persists the order header and all its items in a single
// transaction; either everything lands or nothing does.
func (s *Store) CreateOrder(ctx context.Context, o *order.Order) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, code, tenant_id, customer_name, customer_email,
			customer_phone, total, status, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		o.ID, o.Code, o.TenantID, o.CustomerName, o.CustomerEmail,
		o.CustomerPhone, o.Total, o.Status, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	rows := make([][]any, 0, len(o.Items))
	for i, it := range o.Items {
		rows = append(rows, []any{o.ID, i, it.ProductID, it.Quantity, it.Price})
	}
	_, err = tx.CopyFrom(ctx, pgx.Identifier{"order_items"},
		[]string{"order_id", "position", "product_id", "quantity", "price"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}
	return nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	var o order.Order
	err := s.pool.QueryRow(ctx,
		`SELECT id, code, tenant_id, customer_name, customer_email,
			customer_phone, total, status, created_at
		 FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.Code, &o.TenantID, &o.CustomerName, &o.CustomerEmail,
		&o.CustomerPhone, &o.Total, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, notFoundWrap(err, "get order %s", id)
	}

	if err := s.loadItems(ctx, []*order.Order{&o}); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *Store) ListOrders(ctx context.Context) ([]order.Order, error) {
	return s.listOrders(ctx,
		`SELECT id, code, tenant_id, customer_name, customer_email,
			customer_phone, total, status, created_at
		 FROM orders ORDER BY created_at DESC`)
}

func (s *Store) ListOrdersByTenant(ctx context.Context, tenantID string) ([]order.Order, error) {
	return s.listOrders(ctx,
		`SELECT id, code, tenant_id, customer_name, customer_email,
			customer_phone, total, status, created_at
		 FROM orders WHERE tenant_id = $1 ORDER BY created_at DESC`, tenantID)
}

func (s *Store) listOrders(ctx context.Context, query string, args ...any) ([]order.Order, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(&o.ID, &o.Code, &o.TenantID, &o.CustomerName,
			&o.CustomerEmail, &o.CustomerPhone, &o.Total, &o.Status,
			&o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*order.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := s.loadItems(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems attaches items to the given orders, preserving line order.
func (s *Store) loadItems(ctx context.Context, orders []*order.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*order.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
		o.Items = []order.Item{}
	}

	rows, err := s.pool.Query(ctx,
		`SELECT order_id, product_id, quantity, price
		 FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, position`, ids)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			it      order.Item
		)
		if err := rows.Scan(&orderID, &it.ProductID, &it.Quantity, &it.Price); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o := byID[orderID]; o != nil {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

// UpdateOrderStatus sets the status unconditionally; no transition graph
// is enforced.
func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err := execExpectOne(tag, err, "update order %s status", id); err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

// DeleteOrder removes the order and, via cascade, its items. Hard delete;
// there is no undo.
func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete order %s", id)
}
