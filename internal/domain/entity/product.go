package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto publicado por una empresa.
type Product struct {
	ID          string
	CompanyID   string
	CategoryID  string // vacío si no tiene categoría
	Name        string
	Description string
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
