package repository

import (
	"context"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// ReportRepository historial de reportes generados (más reciente primero).
type ReportRepository interface {
	List(ctx context.Context) ([]*entity.Report, error)
	GetByID(ctx context.Context, id string) (*entity.Report, error)
	Prepend(ctx context.Context, report *entity.Report) error
	Delete(ctx context.Context, id string) (bool, error)
}
