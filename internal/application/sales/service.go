// Package sales implementa el flujo de vida de una venta: registro con salida de stock,
// anulación con reposición y purga de ventas anuladas.
package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/application/notification"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/internal/domain/stock"
	"github.com/jhoicas/Gestion-api/pkg/id"
	"github.com/jhoicas/Gestion-api/pkg/logger"
	"github.com/jhoicas/Gestion-api/pkg/money"
)

var tracer = otel.Tracer("gestion/sales")

// DeletedProduct nombre mostrado cuando la venta apunta a un producto eliminado.
const DeletedProduct = "Produit supprimé"

// Service coordina libro de ventas, stock y notificaciones.
type Service struct {
	tx       TxRunner
	products repository.ProductRepository
	sales    repository.SaleRepository
	settings repository.SettingsRepository
	notifier Notifier
	guard    PasswordVerifier
	log      *logger.Logger
	now      func() time.Time

	// mu serializa la verificación de stock con el ajuste.
	mu sync.Mutex
}

// NewService construye el servicio de ventas.
func NewService(
	tx TxRunner,
	products repository.ProductRepository,
	sales repository.SaleRepository,
	settings repository.SettingsRepository,
	notifier Notifier,
	guard PasswordVerifier,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		tx:       tx,
		products: products,
		sales:    sales,
		settings: settings,
		notifier: notifier,
		guard:    guard,
		log:      log.Component("sales"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create registra la venta y descuenta el stock en una sola transacción.
func (s *Service) Create(ctx context.Context, employeeID, employeeName string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.Invalid("product_id", "el producto es obligatorio")
	}
	if in.Quantity <= 0 {
		return nil, domain.Invalid("quantity", "la cantidad debe ser mayor que 0")
	}
	if !in.UnitPrice.IsPositive() {
		return nil, domain.Invalid("unit_price", "el precio unitario debe ser mayor que 0")
	}

	ctx, span := tracer.Start(ctx, "sales.create", trace.WithAttributes(
		attribute.String("product.id", in.ProductID),
		attribute.Int("sale.quantity", in.Quantity),
	))
	defer span.End()

	var (
		sale    entity.Sale
		product entity.Product
	)
	s.mu.Lock()
	err := s.tx.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		p, err := products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.Quantity < in.Quantity {
			return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, p.Quantity, in.Quantity)
		}

		qty := decimal.NewFromInt(int64(in.Quantity))
		sale = entity.Sale{
			ID:           id.New(),
			ProductID:    p.ID,
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			TotalAmount:  in.UnitPrice.Mul(qty),
			Profit:       in.UnitPrice.Sub(p.PurchasePrice).Mul(qty),
			Date:         s.now(),
			EmployeeID:   employeeID,
			EmployeeName: employeeName,
			Status:       entity.SaleCompleted,
		}
		if err := sales.Prepend(ctx, &sale); err != nil {
			return err
		}
		if err := products.AdjustStock(ctx, p.ID, -in.Quantity); err != nil {
			return err
		}
		product = *p
		product.Quantity -= in.Quantity
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		s.fail(span, err, "no se pudo registrar la venta")
		return nil, err
	}
	span.SetAttributes(attribute.String("sale.id", sale.ID))

	s.log.Info().
		Str("sale_id", sale.ID).
		Str("product_id", product.ID).
		Int("quantity", sale.Quantity).
		Str("total", sale.TotalAmount.String()).
		Msg("venta registrada")

	s.notify(ctx, notification.Input{
		Title:      "Vente enregistrée",
		Message:    fmt.Sprintf("%d × %s vendu(s) pour %s", sale.Quantity, product.Name, money.FormatPlain(sale.TotalAmount)),
		Type:       entity.NotificationSuccess,
		LinkTo:     "/sales",
		LinkItemID: sale.ID,
	})
	s.notifyStockLevel(ctx, &product)

	resp := toSaleResponse(&sale, product.Name)
	return &resp, nil
}

// Cancel anula la venta y repone el stock en una sola transacción. Una venta ya anulada
// se rechaza sin cambios.
func (s *Service) Cancel(ctx context.Context, saleID, reason, cancelledBy string) (*dto.SaleResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.Invalid("reason", "el motivo de anulación es obligatorio")
	}

	ctx, span := tracer.Start(ctx, "sales.cancel", trace.WithAttributes(attribute.String("sale.id", saleID)))
	defer span.End()

	var (
		sale        entity.Sale
		productName = DeletedProduct
	)
	s.mu.Lock()
	err := s.tx.Run(ctx, func(products repository.ProductRepository, sales repository.SaleRepository) error {
		current, err := sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if current.IsCancelled() {
			return domain.ErrSaleAlreadyCancelled
		}
		at := s.now()
		sale = *current
		sale.Status = entity.SaleCancelled
		sale.CancelReason = reason
		sale.CancelledAt = &at
		sale.CancelledBy = cancelledBy
		if err := sales.Update(ctx, &sale); err != nil {
			return err
		}
		if p, _ := products.GetByID(ctx, sale.ProductID); p != nil {
			productName = p.Name
		}
		// Producto eliminado: AdjustStock no hace nada.
		return products.AdjustStock(ctx, sale.ProductID, sale.Quantity)
	})
	s.mu.Unlock()
	if err != nil {
		s.fail(span, err, "no se pudo anular la venta")
		return nil, err
	}

	s.log.Info().
		Str("sale_id", sale.ID).
		Str("cancelled_by", cancelledBy).
		Str("reason", reason).
		Msg("venta anulada")

	s.notify(ctx, notification.Input{
		Title:      "Vente annulée",
		Message:    fmt.Sprintf("Vente de %d × %s annulée par %s : %s", sale.Quantity, productName, cancelledBy, reason),
		Type:       entity.NotificationWarning,
		LinkTo:     "/sales",
		LinkItemID: sale.ID,
	})

	resp := toSaleResponse(&sale, productName)
	return &resp, nil
}

// List devuelve el libro de ventas, la más reciente primero.
func (s *Service) List(ctx context.Context) ([]dto.SaleResponse, error) {
	list, err := s.sales.List(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.productNames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, sale := range list {
		out = append(out, toSaleResponse(sale, nameOf(names, sale.ProductID)))
	}
	return out, nil
}

// Get devuelve una venta por ID.
func (s *Service) Get(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := s.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	name := DeletedProduct
	if p, err := s.products.GetByID(ctx, sale.ProductID); err == nil && p != nil {
		name = p.Name
	}
	resp := toSaleResponse(sale, name)
	return &resp, nil
}

// DeleteCancelled elimina definitivamente una venta anulada. No toca el stock.
func (s *Service) DeleteCancelled(ctx context.Context, saleID, password string) error {
	if err := s.guard.VerifyDeletePassword(ctx, password); err != nil {
		return err
	}
	deleted, err := s.sales.DeleteCancelled(ctx, saleID)
	if err != nil {
		return err
	}
	if !deleted {
		sale, err := s.sales.GetByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		return domain.ErrSaleNotCancelled
	}
	s.log.Info().Str("sale_id", saleID).Msg("venta anulada eliminada")
	return nil
}

// DeleteAllCancelled purga todas las ventas anuladas y devuelve cuántas se eliminaron.
func (s *Service) DeleteAllCancelled(ctx context.Context, password string) (int, error) {
	if err := s.guard.VerifyDeletePassword(ctx, password); err != nil {
		return 0, err
	}
	n, err := s.sales.DeleteAllCancelled(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("count", n).Msg("ventas anuladas eliminadas")
	return n, nil
}

// notify agrega la notificación. Un fallo aquí no deshace la venta.
func (s *Service) notify(ctx context.Context, in notification.Input) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.Add(ctx, in); err != nil {
		s.log.Warn().Err(err).Str("title", in.Title).Msg("no se pudo registrar la notificación")
	}
}

// notifyStockLevel avisa de rupture o stock bajo según los parámetros de la tienda.
func (s *Service) notifyStockLevel(ctx context.Context, p *entity.Product) {
	status := stock.ProductStatus(p)
	if status == stock.StatusOK {
		return
	}
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("no se pudieron leer los parámetros de alertas")
		return
	}
	switch {
	case status == stock.StatusOut && cfg.OutOfStockAlerts:
		s.notify(ctx, notification.Input{
			Title:      "Rupture de stock",
			Message:    fmt.Sprintf("%s est en rupture de stock", p.Name),
			Type:       entity.NotificationError,
			LinkTo:     "/products",
			LinkItemID: p.ID,
		})
	case status == stock.StatusLow && cfg.LowStockAlerts:
		s.notify(ctx, notification.Input{
			Title:      "Stock faible",
			Message:    fmt.Sprintf("%s : %d %s(s) restant(s)", p.Name, p.Quantity, p.Unit),
			Type:       entity.NotificationWarning,
			LinkTo:     "/products",
			LinkItemID: p.ID,
		})
	}
}

func (s *Service) productNames(ctx context.Context) (map[string]string, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names, nil
}

func nameOf(names map[string]string, productID string) string {
	if n, ok := names[productID]; ok {
		return n
	}
	return DeletedProduct
}

// fail marca el span con el error. Los rechazos de negocio no se loguean como error.
func (s *Service) fail(span trace.Span, err error, msg string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	if !isRejection(err) {
		s.log.Error().Err(err).Msg(msg)
	}
}

// isRejection indica si el error es un rechazo de negocio y no un fallo de infraestructura.
func isRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrSaleAlreadyCancelled) ||
		errors.Is(err, domain.ErrSaleNotCancelled) ||
		errors.Is(err, domain.ErrInvalidDeletePassword)
}

// ToSaleResponse convierte una venta con el nombre de su producto.
func ToSaleResponse(sale *entity.Sale, productName string) dto.SaleResponse {
	return toSaleResponse(sale, productName)
}

func toSaleResponse(sale *entity.Sale, productName string) dto.SaleResponse {
	return dto.SaleResponse{
		ID:           sale.ID,
		ProductID:    sale.ProductID,
		ProductName:  productName,
		Quantity:     sale.Quantity,
		UnitPrice:    sale.UnitPrice,
		TotalAmount:  sale.TotalAmount,
		Profit:       sale.Profit,
		Date:         sale.Date,
		EmployeeID:   sale.EmployeeID,
		EmployeeName: sale.EmployeeName,
		Status:       sale.Status,
		CancelReason: sale.CancelReason,
		CancelledAt:  sale.CancelledAt,
		CancelledBy:  sale.CancelledBy,
	}
}
