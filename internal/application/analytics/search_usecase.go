package analytics

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/application/sales"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

// SearchLimit resultados máximos entre productos, categorías y ventas.
const SearchLimit = 10

// SearchUseCase búsqueda global por nombre.
type SearchUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	sales      repository.SaleRepository
}

// NewSearchUseCase construye el caso de uso.
func NewSearchUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	sales repository.SaleRepository,
) *SearchUseCase {
	return &SearchUseCase{products: products, categories: categories, sales: sales}
}

// Search busca sin distinguir mayúsculas. Cada grupo se ordena con la collation francesa
// y el total se corta en SearchLimit (productos primero, luego categorías y ventas).
func (uc *SearchUseCase) Search(ctx context.Context, query string) (*dto.SearchResponse, error) {
	res := &dto.SearchResponse{
		Products:   []dto.ProductResponse{},
		Categories: []dto.CategoryResponse{},
		Sales:      []dto.SaleResponse{},
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return res, nil
	}

	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	saleList, err := uc.sales.List(ctx)
	if err != nil {
		return nil, err
	}

	// collate.Collator no es seguro entre goroutines: uno por búsqueda.
	col := collate.New(language.French)
	names := make(map[string]string, len(categories))
	counts := make(map[string]int, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	productNames := make(map[string]string, len(products))
	for _, p := range products {
		productNames[p.ID] = p.Name
		counts[p.CategoryID]++
	}
	matches := func(s string) bool { return strings.Contains(strings.ToLower(s), q) }
	left := SearchLimit

	sortedProducts := slices.Clone(products)
	slices.SortStableFunc(sortedProducts, func(a, b *entity.Product) int {
		return col.CompareString(a.Name, b.Name)
	})
	for _, p := range sortedProducts {
		if left == 0 {
			break
		}
		if matches(p.Name) {
			res.Products = append(res.Products, inventory.ToProductResponse(p, inventory.CategoryName(names, p.CategoryID)))
			left--
		}
	}

	sortedCategories := slices.Clone(categories)
	slices.SortStableFunc(sortedCategories, func(a, b *entity.Category) int {
		return col.CompareString(a.Name, b.Name)
	})
	for _, c := range sortedCategories {
		if left == 0 {
			break
		}
		if matches(c.Name) || matches(c.Description) {
			res.Categories = append(res.Categories, dto.CategoryResponse{
				ID:           c.ID,
				Name:         c.Name,
				Description:  c.Description,
				Color:        c.Color,
				ProductCount: counts[c.ID],
			})
			left--
		}
	}

	sortedSales := slices.Clone(saleList)
	slices.SortStableFunc(sortedSales, func(a, b *entity.Sale) int {
		return col.CompareString(productNames[a.ProductID], productNames[b.ProductID])
	})
	for _, s := range sortedSales {
		if left == 0 {
			break
		}
		// una venta de un producto eliminado no tiene nombre que buscar
		name, ok := productNames[s.ProductID]
		if ok && matches(name) {
			res.Sales = append(res.Sales, sales.ToSaleResponse(s, name))
			left--
		}
	}
	return res, nil
}
