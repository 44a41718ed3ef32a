package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/id"
)

// DefaultColor color asignado a una categoría sin color.
const DefaultColor = "#3b82f6"

// CategoryUseCase casos de uso de categorías.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, products repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, products: products}
}

// Create crea una categoría. El nombre es único sin distinguir mayúsculas.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "el nombre es obligatorio")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	c := &entity.Category{
		ID:          id.New(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Color:       colorOrDefault(in.Color),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, Color: c.Color}, nil
}

// Update reemplaza nombre, descripción y color.
func (uc *CategoryUseCase) Update(ctx context.Context, categoryID string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "el nombre es obligatorio")
	}
	other, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != c.ID {
		return nil, domain.ErrDuplicate
	}
	c.Name = name
	c.Description = strings.TrimSpace(in.Description)
	c.Color = colorOrDefault(in.Color)
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, c)
}

// List lista las categorías con su número de productos.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		resp, err := uc.toResponse(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Delete elimina una categoría sin productos asociados. El conteo y el borrado ocurren
// con los productos bloqueados.
func (uc *CategoryUseCase) Delete(ctx context.Context, categoryID string) error {
	return uc.products.IfCategoryUnused(ctx, categoryID, func() error {
		return uc.repo.Delete(ctx, categoryID)
	})
}

func (uc *CategoryUseCase) toResponse(ctx context.Context, c *entity.Category) (*dto.CategoryResponse, error) {
	n, err := uc.products.CountByCategory(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Color:        c.Color,
		ProductCount: n,
	}, nil
}

func colorOrDefault(color string) string {
	color = strings.TrimSpace(color)
	if color == "" {
		return DefaultColor
	}
	return color
}
