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

// ProductUseCase maneja el catálogo de productos de cada empresa.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// Create publica un producto para la empresa del usuario autenticado.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate(in.Name, in.CategoryID, in.Price.IsNegative() || in.Price.IsZero()); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get obtiene un producto por ID. Vista pública del marketplace.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos con filtros de empresa, categoría y texto.
func (uc *ProductUseCase) List(ctx context.Context, companyID, categoryID, search string, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(repository.ProductFilter{
		CompanyID:  companyID,
		CategoryID: categoryID,
		Search:     normalize.Search(search),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update actualiza un producto. Solo la empresa dueña puede modificarlo.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if err := uc.validate(in.Name, in.CategoryID, in.Price.IsNegative() || in.Price.IsZero()); err != nil {
		return nil, err
	}

	product.CategoryID = in.CategoryID
	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto. Solo la empresa dueña puede hacerlo.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.productRepo.Delete(id)
}

func (uc *ProductUseCase) validate(name, categoryID string, badPrice bool) error {
	if name == "" {
		return fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if badPrice {
		return fmt.Errorf("%w: el precio debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if categoryID != "" {
		category, err := uc.categoryRepo.GetByID(categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, categoryID)
		}
	}
	return nil
}

func toProductResponse(product *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          product.ID,
		CompanyID:   product.CompanyID,
		CategoryID:  product.CategoryID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
	}
}
