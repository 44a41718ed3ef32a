// Package finance gestiona el libro de ingresos y gastos.
package finance

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/id"
)

// UseCase casos de uso del libro financiero.
type UseCase struct {
	repo repository.FinanceRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.FinanceRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// Categories devuelve los catálogos fijos.
func (uc *UseCase) Categories() dto.FinanceCategoriesResponse {
	return dto.FinanceCategoriesResponse{
		Income:  slices.Clone(entity.IncomeCategories),
		Expense: slices.Clone(entity.ExpenseCategories),
	}
}

// Create registra un movimiento (el más reciente primero).
func (uc *UseCase) Create(ctx context.Context, in dto.FinancialEntryRequest) (*dto.FinancialEntryResponse, error) {
	entry := &entity.FinancialEntry{ID: id.New()}
	if err := uc.apply(entry, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Prepend(ctx, entry); err != nil {
		return nil, err
	}
	resp := toEntryResponse(entry)
	return &resp, nil
}

// Update reemplaza un movimiento existente. Sin fecha se conserva la original.
func (uc *UseCase) Update(ctx context.Context, entryID string, in dto.FinancialEntryRequest) (*dto.FinancialEntryResponse, error) {
	entry, err := uc.repo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	if in.Date == nil {
		d := entry.Date
		in.Date = &d
	}
	if err := uc.apply(entry, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	resp := toEntryResponse(entry)
	return &resp, nil
}

// Delete elimina un movimiento.
func (uc *UseCase) Delete(ctx context.Context, entryID string) error {
	return uc.repo.Delete(ctx, entryID)
}

// List lista los movimientos filtrando por tipo y texto (categoría o descripción), con totales.
func (uc *UseCase) List(ctx context.Context, entryType, query string) (*dto.FinanceListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := &dto.FinanceListResponse{
		Items:         make([]dto.FinancialEntryResponse, 0, len(list)),
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, e := range list {
		if entryType != "" && e.Type != entryType {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(e.Category), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) {
			continue
		}
		switch e.Type {
		case entity.EntryIncome:
			out.TotalIncome = out.TotalIncome.Add(e.Amount)
		case entity.EntryExpense:
			out.TotalExpenses = out.TotalExpenses.Add(e.Amount)
		}
		out.Items = append(out.Items, toEntryResponse(e))
	}
	out.Balance = out.TotalIncome.Sub(out.TotalExpenses)
	return out, nil
}

func (uc *UseCase) apply(entry *entity.FinancialEntry, in dto.FinancialEntryRequest) error {
	var catalogue []string
	switch in.Type {
	case entity.EntryIncome:
		catalogue = entity.IncomeCategories
	case entity.EntryExpense:
		catalogue = entity.ExpenseCategories
	default:
		return domain.Invalid("type", "el tipo debe ser income o expense")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return domain.Invalid("category", "la categoría es obligatoria")
	}
	if !slices.Contains(catalogue, category) {
		return domain.Invalid("category", "categoría desconocida para este tipo")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return domain.Invalid("description", "la descripción es obligatoria")
	}
	if !in.Amount.IsPositive() {
		return domain.Invalid("amount", "el monto debe ser mayor que 0")
	}
	date := uc.now()
	if in.Date != nil && !in.Date.IsZero() {
		date = *in.Date
	}
	entry.Type = in.Type
	entry.Category = category
	entry.Amount = in.Amount
	entry.Description = description
	entry.Date = date
	return nil
}

func toEntryResponse(e *entity.FinancialEntry) dto.FinancialEntryResponse {
	return dto.FinancialEntryResponse{
		ID:          e.ID,
		Type:        e.Type,
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.Date,
	}
}
