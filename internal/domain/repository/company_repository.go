package repository

import "github.com/plazave/plaza-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	// List busca por nombre/descripción (normalizado sin tildes) y opcionalmente
	// filtra por categoría de los productos publicados.
	List(search, categoryID string, limit, offset int) ([]*entity.Company, error)
	Update(company *entity.Company) error
	Delete(id string) error
}
