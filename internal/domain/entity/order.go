package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa un pedido de un usuario contra una empresa del marketplace.
// El total lo calcula siempre el servidor a partir de las líneas.
type Order struct {
	ID        string
	UserID    string
	CompanyID string
	Total     decimal.Decimal
	CreatedAt time.Time
}

// OrderItem representa una línea de pedido. Price es el precio unitario
// congelado al momento de crear el pedido.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  decimal.Decimal
	Price     decimal.Decimal
}
