package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/plazave/plaza-api/internal/domain"
	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/domain/repository"
	"github.com/plazave/plaza-api/pkg/normalize"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa. search_text guarda nombre+descripción
// normalizados (minúsculas, sin tildes) para la búsqueda del marketplace.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (id, owner_user_id, name, description, phone, address, email, search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.OwnerUserID, company.Name, company.Description,
		company.Phone, company.Address, company.Email,
		normalize.Search(company.Name+" "+company.Description),
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `
		SELECT id, owner_user_id, name, description, phone, address, email, created_at, updated_at
		FROM companies WHERE id = $1`
	var c entity.Company
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.OwnerUserID, &c.Name, &c.Description, &c.Phone, &c.Address,
		&c.Email, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// List lista empresas con búsqueda por texto y filtro por categoría de los
// productos publicados. search llega ya normalizado (minúsculas, sin tildes);
// la columna search_text guarda nombre+descripción con la misma normalización.
func (r *CompanyRepo) List(search, categoryID string, limit, offset int) ([]*entity.Company, error) {
	query := `
		SELECT DISTINCT c.id, c.owner_user_id, c.name, c.description, c.phone, c.address, c.email, c.created_at, c.updated_at
		FROM companies c`
	args := []any{}
	n := 0
	if categoryID != "" {
		n++
		query += fmt.Sprintf(" JOIN products p ON p.company_id = c.id AND p.category_id = $%d", n)
		args = append(args, categoryID)
	}
	query += " WHERE TRUE"
	if search != "" {
		n++
		query += fmt.Sprintf(" AND c.search_text LIKE '%%' || $%d || '%%'", n)
		args = append(args, search)
	}
	query += fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []*entity.Company
	for rows.Next() {
		var c entity.Company
		if err := rows.Scan(
			&c.ID, &c.OwnerUserID, &c.Name, &c.Description, &c.Phone, &c.Address,
			&c.Email, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, &c)
	}
	return companies, rows.Err()
}

// Update actualiza una empresa existente.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, description = $3, phone = $4, address = $5, email = $6, search_text = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.Description, company.Phone,
		company.Address, company.Email,
		normalize.Search(company.Name+" "+company.Description),
		company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// Delete elimina una empresa.
func (r *CompanyRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM companies WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}
