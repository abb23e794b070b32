package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera de un pedido.
func (r *OrderRepo) Create(order *entity.Order) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO orders (id, user_id, company_id, total, created_at) VALUES ($1, $2, $3, $4, $5)`,
		order.ID, order.UserID, order.CompanyID, order.Total, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de pedido.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO order_items (id, order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4, $5)`,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(context.Background(),
		`SELECT id, user_id, company_id, total, created_at FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.UserID, &o.CompanyID, &o.Total, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// GetItemsByOrderID obtiene las líneas de un pedido.
func (r *OrderRepo) GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, order_id, product_id, quantity, price FROM order_items WHERE order_id = $1 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []*entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// ListByUser lista los pedidos hechos por un usuario.
func (r *OrderRepo) ListByUser(userID string, limit, offset int) ([]*entity.Order, error) {
	return r.list(`SELECT id, user_id, company_id, total, created_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
}

// ListByCompany lista los pedidos recibidos por una empresa.
func (r *OrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Order, error) {
	return r.list(`SELECT id, user_id, company_id, total, created_at
		FROM orders WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, companyID, limit, offset)
}

func (r *OrderRepo) list(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CompanyID, &o.Total, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}
