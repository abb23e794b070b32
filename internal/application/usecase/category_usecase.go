package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/plazave/plaza-api/internal/application/dto"
	"github.com/plazave/plaza-api/internal/domain"
	"github.com/plazave/plaza-api/internal/domain/entity"
	"github.com/plazave/plaza-api/internal/domain/repository"
	"github.com/plazave/plaza-api/pkg/normalize"
)

// CategoryUseCase maneja el catálogo de categorías del marketplace.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso de categorías.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// Create registra una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	category := &entity.Category{
		ID:   uuid.New().String(),
		Name: in.Name,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Get obtiene una categoría por ID.
func (uc *CategoryUseCase) Get(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// List lista categorías con búsqueda insensible a tildes.
func (uc *CategoryUseCase) List(ctx context.Context, search string, page dto.PageRequest) ([]*dto.CategoryResponse, error) {
	page.DefaultPage()
	categories, err := uc.categoryRepo.List(normalize.Search(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Update renombra una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	category.Name = in.Name
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina una categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.categoryRepo.Delete(id)
}

func toCategoryResponse(category *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: category.ID, Name: category.Name}
}
