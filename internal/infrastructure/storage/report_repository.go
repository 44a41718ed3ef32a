package storage

import (
	"context"
	"slices"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo historial de reportes generados. Vive en el almacén volátil.
type ReportRepo struct {
	docs docs[entity.Report]
}

func (r *ReportRepo) List(_ context.Context) ([]*entity.Report, error) {
	var out []*entity.Report
	r.docs.read(func(items []entity.Report) {
		out = make([]*entity.Report, 0, len(items))
		for i := range items {
			rep := items[i]
			out = append(out, &rep)
		}
	})
	return out, nil
}

func (r *ReportRepo) GetByID(_ context.Context, id string) (*entity.Report, error) {
	var out *entity.Report
	r.docs.read(func(items []entity.Report) {
		if i := slices.IndexFunc(items, func(rep entity.Report) bool { return rep.ID == id }); i >= 0 {
			rep := items[i]
			out = &rep
		}
	})
	return out, nil
}

func (r *ReportRepo) Prepend(ctx context.Context, report *entity.Report) error {
	return r.docs.write(ctx, func(items []entity.Report) ([]entity.Report, error) {
		return append([]entity.Report{*report}, items...), nil
	})
}

func (r *ReportRepo) Delete(ctx context.Context, id string) (bool, error) {
	deleted := false
	err := r.docs.write(ctx, func(items []entity.Report) ([]entity.Report, error) {
		i := slices.IndexFunc(items, func(rep entity.Report) bool { return rep.ID == id })
		if i < 0 {
			return nil, errSkip
		}
		deleted = true
		return slices.Delete(items, i, i+1), nil
	})
	return deleted, err
}
