package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/id"
)

// Formatos de exportación.
const (
	FormatText = "txt"
	FormatPDF  = "pdf"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypePDF  = "application/pdf"
)

// ErrPDFUnavailable no hay generador PDF configurado.
var ErrPDFUnavailable = errors.New("exportación PDF no disponible")

// UseCase genera, guarda y exporta reportes.
type UseCase struct {
	loader   *Loader
	reports  repository.ReportRepository
	settings repository.SettingsRepository
	pdf      PDFGenerator
	now      func() time.Time
}

// NewUseCase construye el caso de uso. pdf puede ser nil (solo exportación de texto).
func NewUseCase(loader *Loader, reports repository.ReportRepository, settings repository.SettingsRepository, pdf PDFGenerator) *UseCase {
	return &UseCase{loader: loader, reports: reports, settings: settings, pdf: pdf, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Generate arma el reporte de texto y lo antepone al historial.
func (uc *UseCase) Generate(ctx context.Context, in dto.GenerateReportRequest, generatedBy string) (*dto.ReportResponse, error) {
	if err := Validate(in.Type, in.Period); err != nil {
		return nil, err
	}
	snap, err := uc.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	content, err := Text(Meta{Type: in.Type, Period: in.Period, Author: generatedBy, Date: now}, snap)
	if err != nil {
		return nil, err
	}
	r := &entity.Report{
		ID:          id.New(),
		Type:        in.Type,
		Period:      in.Period,
		Name:        ReportName(in.Type, in.Period),
		Content:     content,
		GeneratedAt: now,
		GeneratedBy: author(generatedBy),
	}
	if err := uc.reports.Prepend(ctx, r); err != nil {
		return nil, err
	}
	resp := toReportResponse(r)
	return &resp, nil
}

// List historial, el más reciente primero.
func (uc *UseCase) List(ctx context.Context) ([]dto.ReportResponse, error) {
	list, err := uc.reports.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReportResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toReportResponse(r))
	}
	return out, nil
}

// Get devuelve un reporte del historial.
func (uc *UseCase) Get(ctx context.Context, reportID string) (*dto.ReportResponse, error) {
	r, err := uc.find(ctx, reportID)
	if err != nil {
		return nil, err
	}
	resp := toReportResponse(r)
	return &resp, nil
}

// Delete quita un reporte del historial.
func (uc *UseCase) Delete(ctx context.Context, reportID string) error {
	ok, err := uc.reports.Delete(ctx, reportID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// Download devuelve un reporte guardado como archivo .txt con la fecha de generación.
func (uc *UseCase) Download(ctx context.Context, reportID string) (*dto.ReportFile, error) {
	r, err := uc.find(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return &dto.ReportFile{
		Filename:    Filename(r.Type, r.GeneratedAt, FormatText),
		ContentType: contentTypeText,
		Body:        []byte(r.Content),
	}, nil
}

// Export genera el reporte al vuelo en texto o PDF sin guardarlo.
func (uc *UseCase) Export(ctx context.Context, in dto.GenerateReportRequest, format, generatedBy string) (*dto.ReportFile, error) {
	if format == "" {
		format = FormatText
	}
	if format != FormatText && format != FormatPDF {
		return nil, domain.Invalid("format", "formato desconocido (txt | pdf)")
	}
	if err := Validate(in.Type, in.Period); err != nil {
		return nil, err
	}
	snap, err := uc.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	meta := Meta{Type: in.Type, Period: in.Period, Author: generatedBy, Date: uc.now()}
	if format == FormatText {
		content, err := Text(meta, snap)
		if err != nil {
			return nil, err
		}
		return &dto.ReportFile{
			Filename:    Filename(in.Type, meta.Date, FormatText),
			ContentType: contentTypeText,
			Body:        []byte(content),
		}, nil
	}

	if uc.pdf == nil {
		return nil, ErrPDFUnavailable
	}
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := BuildDocument(meta, snap, settings.CompanyName)
	if err != nil {
		return nil, err
	}
	body, err := uc.pdf.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("generar pdf: %w", err)
	}
	return &dto.ReportFile{
		Filename:    Filename(in.Type, meta.Date, FormatPDF),
		ContentType: contentTypePDF,
		Body:        body,
	}, nil
}

func (uc *UseCase) find(ctx context.Context, reportID string) (*entity.Report, error) {
	r, err := uc.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func toReportResponse(r *entity.Report) dto.ReportResponse {
	return dto.ReportResponse{
		ID:          r.ID,
		Type:        r.Type,
		Period:      r.Period,
		Name:        r.Name,
		Content:     r.Content,
		GeneratedAt: r.GeneratedAt,
		GeneratedBy: r.GeneratedBy,
	}
}
