package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/plazave/plaza-api/internal/application/dto"
	"github.com/plazave/plaza-api/internal/domain"
	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/domain/repository"
	"github.com/plazave/plaza-api/pkg/normalize"
)

// CompanyUseCase maneja el ciclo de vida de las empresas del marketplace.
type CompanyUseCase struct {
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
}

// NewCompanyUseCase construye el caso de uso de empresas.
func NewCompanyUseCase(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo, userRepo: userRepo}
}

// Create registra una empresa y la asocia al usuario dueño. El usuario queda
// ligado a la empresa para el scoping de las operaciones de facturación.
func (uc *CompanyUseCase) Create(ctx context.Context, ownerUserID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	owner, err := uc.userRepo.GetByID(ownerUserID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}
	if owner.CompanyID != "" {
		return nil, fmt.Errorf("%w: el usuario ya tiene una empresa", domain.ErrConflict)
	}

	now := time.Now()
	company := &entity.Company{
		ID:          uuid.New().String(),
		OwnerUserID: ownerUserID,
		Name:        in.Name,
		Description: in.Description,
		Phone:       in.Phone,
		Address:     in.Address,
		Email:       in.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}

	owner.CompanyID = company.ID
	owner.Role = entity.RoleAdmin
	owner.UpdatedAt = now
	if err := uc.userRepo.Update(owner); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Get obtiene una empresa por ID. Vista pública del marketplace.
func (uc *CompanyUseCase) Get(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// List lista empresas con búsqueda por texto (insensible a tildes) y filtro
// por categoría de productos publicados.
func (uc *CompanyUseCase) List(ctx context.Context, search, categoryID string, page dto.PageRequest) ([]*dto.CompanyResponse, error) {
	page.DefaultPage()
	companies, err := uc.companyRepo.List(normalize.Search(search), categoryID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, toCompanyResponse(c))
	}
	return out, nil
}

// Update actualiza los datos de la empresa. Solo el dueño puede modificarla.
func (uc *CompanyUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if company.OwnerUserID != userID {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}

	company.Name = in.Name
	company.Description = in.Description
	company.Phone = in.Phone
	company.Address = in.Address
	company.Email = in.Email
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Delete elimina la empresa. Solo el dueño puede hacerlo.
func (uc *CompanyUseCase) Delete(ctx context.Context, userID, id string) error {
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	if company.OwnerUserID != userID {
		return domain.ErrForbidden
	}
	return uc.companyRepo.Delete(id)
}

func toCompanyResponse(company *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		Phone:       company.Phone,
		Address:     company.Address,
		Email:       company.Email,
	}
}
