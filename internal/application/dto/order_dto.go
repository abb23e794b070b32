package dto

import "github.com/shopspring/decimal"

// OrderItemRequest línea de pedido entrante. Si UnitPrice es cero se toma el
// precio vigente del producto.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateOrderRequest alta de pedido contra una empresa.
type CreateOrderRequest struct {
	CompanyID string             `json:"company_id"`
	Items     []OrderItemRequest `json:"items"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderResponse pedido con líneas y total calculado por el servidor.
type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	CompanyID string              `json:"company_id"`
	Total     decimal.Decimal     `json:"total"`
	CreatedAt string              `json:"created_at"`
	Items     []OrderItemResponse `json:"items"`
}
