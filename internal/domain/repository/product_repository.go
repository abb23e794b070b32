package repository

import "github.com/plazave/plaza-api/internal/domain/entity"

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	CompanyID  string
	CategoryID string
	Search     string // contra nombre/descripción, normalizado sin tildes
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(filter ProductFilter) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}
