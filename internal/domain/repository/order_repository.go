package repository

import "github.com/plazave/plaza-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Order, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Order, error)
}
