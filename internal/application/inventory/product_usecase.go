package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/internal/domain/stock"
	"github.com/jhoicas/Gestion-api/pkg/id"
)

// DefaultUnit unidad usada cuando el producto no indica ninguna.
const DefaultUnit = "pièce"

// NoCategory nombre mostrado cuando la categoría del producto ya no existe.
const NoCategory = "Sans catégorie"

// PasswordVerifier valida la contraseña de eliminación.
type PasswordVerifier interface {
	VerifyDeletePassword(ctx context.Context, password string) error
}

// ProductUseCase casos de uso CRUD de productos y ajuste manual de stock.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	guard      PasswordVerifier
	now        func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, guard PasswordVerifier) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, guard: guard, now: time.Now}
}

// Create crea un producto nuevo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "el nombre es obligatorio")
	}
	if in.PurchasePrice.IsNegative() {
		return nil, domain.Invalid("purchase_price", "el precio de compra no puede ser negativo")
	}
	if in.Quantity < 0 || in.MinStock < 0 {
		return nil, domain.Invalid("quantity", "cantidad y stock mínimo deben ser >= 0")
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = DefaultUnit
	}
	now := uc.now()
	product := &entity.Product{
		ID:            id.New(),
		Name:          name,
		CategoryID:    in.CategoryID,
		PurchasePrice: in.PurchasePrice,
		Quantity:      in.Quantity,
		MinStock:      in.MinStock,
		Unit:          unit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, productID string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(ctx, product), nil
}

// Update aplica los campos informados. La lectura y la escritura ocurren bajo el mismo
// bloqueo que las ventas, así un campo no informado nunca pisa el stock vendido entretanto.
func (uc *ProductUseCase) Update(ctx context.Context, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var name, unit string
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("name", "el nombre es obligatorio")
		}
	}
	if in.PurchasePrice != nil && in.PurchasePrice.IsNegative() {
		return nil, domain.Invalid("purchase_price", "el precio de compra no puede ser negativo")
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, domain.Invalid("quantity", "la cantidad debe ser >= 0")
	}
	if in.MinStock != nil && *in.MinStock < 0 {
		return nil, domain.Invalid("min_stock", "el stock mínimo debe ser >= 0")
	}
	if in.Unit != nil {
		unit = strings.TrimSpace(*in.Unit)
	}

	product, err := uc.repo.UpdateFunc(ctx, productID, func(p *entity.Product) error {
		if in.CategoryID != nil {
			if err := uc.checkCategory(ctx, *in.CategoryID); err != nil {
				return err
			}
			p.CategoryID = *in.CategoryID
		}
		if in.Name != nil {
			p.Name = name
		}
		if in.PurchasePrice != nil {
			p.PurchasePrice = *in.PurchasePrice
		}
		if in.Quantity != nil {
			p.Quantity = *in.Quantity
		}
		if in.MinStock != nil {
			p.MinStock = *in.MinStock
		}
		if unit != "" {
			p.Unit = unit
		}
		p.UpdatedAt = uc.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, product), nil
}

// AdjustStock suma delta a la cantidad. No permite dejar el stock en negativo.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, productID string, delta int) (*dto.ProductResponse, error) {
	product, err := uc.repo.UpdateFunc(ctx, productID, func(p *entity.Product) error {
		if p.Quantity+delta < 0 {
			return fmt.Errorf("%w: disponible %d, ajuste %d", domain.ErrInsufficientStock, p.Quantity, delta)
		}
		p.Quantity += delta
		p.UpdatedAt = uc.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, product), nil
}

// List lista productos filtrando por nombre (sin mayúsculas) y categoría.
func (uc *ProductUseCase) List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names, err := uc.categoryNames(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		out = append(out, ToProductResponse(p, CategoryName(names, p.CategoryID)))
	}
	return out, nil
}

// Delete elimina un producto. Las ventas que lo referencian se conservan.
func (uc *ProductUseCase) Delete(ctx context.Context, productID, password string) error {
	if err := uc.guard.VerifyDeletePassword(ctx, password); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, productID)
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	c, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.Invalid("category_id", "la categoría no existe")
	}
	return nil
}

func (uc *ProductUseCase) categoryNames(ctx context.Context) (map[string]string, error) {
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(list))
	for _, c := range list {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (uc *ProductUseCase) toResponse(ctx context.Context, p *entity.Product) *dto.ProductResponse {
	name := NoCategory
	if c, err := uc.categories.GetByID(ctx, p.CategoryID); err == nil && c != nil {
		name = c.Name
	}
	resp := ToProductResponse(p, name)
	return &resp
}

// CategoryName resuelve el nombre de una categoría o devuelve NoCategory.
func CategoryName(names map[string]string, categoryID string) string {
	if n, ok := names[categoryID]; ok {
		return n
	}
	return NoCategory
}

// ToProductResponse convierte un producto con el nombre de su categoría.
func ToProductResponse(p *entity.Product, categoryName string) dto.ProductResponse {
	status := stock.ProductStatus(p)
	return dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		CategoryID:    p.CategoryID,
		CategoryName:  categoryName,
		PurchasePrice: p.PurchasePrice,
		Quantity:      p.Quantity,
		MinStock:      p.MinStock,
		Unit:          p.Unit,
		StockValue:    p.StockValue(),
		Status:        string(status),
		StatusLabel:   status.Label(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
