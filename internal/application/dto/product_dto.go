package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	CategoryID  string          `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductRequest actualización de producto.
type UpdateProductRequest struct {
	CategoryID  string          `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// ProductResponse representación pública del producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	CategoryID  string          `json:"category_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// CreateCategoryRequest alta de categoría.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse representación pública de la categoría.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
