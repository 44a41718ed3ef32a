// Package notification implementa el Notification Sink: eventos visibles para el usuario.
package notification

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Gestion-api/internal/application/dto"
	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
	"github.com/jhoicas/Gestion-api/pkg/id"
)

// Input datos de una notificación nueva. LinkTo y LinkItemID son opcionales.
type Input struct {
	Title      string
	Message    string
	Type       string
	LinkTo     string
	LinkItemID string
}

// UseCase casos de uso sobre las notificaciones.
type UseCase struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.NotificationRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Add crea la notificación sin leer y la antepone a la lista.
func (uc *UseCase) Add(ctx context.Context, in Input) (*entity.Notification, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.Invalid("title", "el título es obligatorio")
	}
	switch in.Type {
	case entity.NotificationInfo, entity.NotificationWarning, entity.NotificationError, entity.NotificationSuccess:
	case "":
		in.Type = entity.NotificationInfo
	default:
		return nil, domain.Invalid("type", "tipo de notificación desconocido")
	}
	n := &entity.Notification{
		ID:         id.New(),
		Title:      in.Title,
		Message:    in.Message,
		Type:       in.Type,
		CreatedAt:  uc.now(),
		LinkTo:     in.LinkTo,
		LinkItemID: in.LinkItemID,
	}
	if err := uc.repo.Prepend(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// List devuelve las notificaciones (la más reciente primero) y cuántas no se han leído.
func (uc *UseCase) List(ctx context.Context) (*dto.NotificationListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.NotificationListResponse{Items: make([]dto.NotificationResponse, 0, len(list))}
	for _, n := range list {
		if !n.Read {
			out.UnreadCount++
		}
		out.Items = append(out.Items, toNotificationResponse(n))
	}
	return out, nil
}

// MarkAsRead marca una notificación como leída.
func (uc *UseCase) MarkAsRead(ctx context.Context, id string) error {
	found, err := uc.repo.MarkAsRead(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *UseCase) MarkAllAsRead(ctx context.Context) error {
	return uc.repo.MarkAllAsRead(ctx)
}

func (uc *UseCase) Clear(ctx context.Context) error {
	return uc.repo.Clear(ctx)
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:         n.ID,
		Title:      n.Title,
		Message:    n.Message,
		Type:       n.Type,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
		LinkTo:     n.LinkTo,
		LinkItemID: n.LinkItemID,
	}
}
