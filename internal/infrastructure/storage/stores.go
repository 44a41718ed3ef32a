package storage

import (
	"context"
	"time"

	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// Stores agrupa todos los repositorios listos para inyectar en los casos de uso.
type Stores struct {
	Products      *ProductRepo
	Categories    *CategoryRepo
	Sales         *SaleRepo
	Finances      *FinanceRepo
	Users         *UserRepo
	UserCodes     *UserCodeRepo
	Sessions      *SessionRepo
	Notifications *NotificationRepo
	Reports       *ReportRepo
	Settings      *SettingsRepo
	Tx            *TxRunner
}

// Option ajusta la construcción de Stores.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Open carga cada colección desde durable. El historial de reportes vive en volatile
// (si es nil se usa un MemoryKV nuevo).
func Open(ctx context.Context, durable, volatile KV, opts ...Option) (*Stores, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if volatile == nil {
		volatile = NewMemoryKV()
	}

	products, err := loadCollection[entity.Product](ctx, durable, KeyProducts)
	if err != nil {
		return nil, err
	}
	categories, err := loadCollection[entity.Category](ctx, durable, KeyCategories)
	if err != nil {
		return nil, err
	}
	sales, err := loadCollection[entity.Sale](ctx, durable, KeySales)
	if err != nil {
		return nil, err
	}
	finances, err := loadCollection[entity.FinancialEntry](ctx, durable, KeyFinances)
	if err != nil {
		return nil, err
	}
	users, err := loadCollection[entity.User](ctx, durable, KeyUsers)
	if err != nil {
		return nil, err
	}
	codes, err := loadDocument[map[string]string](ctx, durable, KeyUserCodes)
	if err != nil {
		return nil, err
	}
	session, err := loadDocument[entity.Session](ctx, durable, KeyCurrentUser)
	if err != nil {
		return nil, err
	}
	notifications, err := loadCollection[entity.Notification](ctx, durable, KeyNotifications)
	if err != nil {
		return nil, err
	}
	reports, err := loadCollection[entity.Report](ctx, volatile, KeyReports)
	if err != nil {
		return nil, err
	}
	settings, err := loadDocument[entity.Settings](ctx, durable, KeySettings)
	if err != nil {
		return nil, err
	}
	password, err := loadDocument[string](ctx, durable, KeyDeletePassword)
	if err != nil {
		return nil, err
	}
	recovery, err := loadDocument[entity.RecoveryQuestion](ctx, durable, KeyRecoveryQuestion)
	if err != nil {
		return nil, err
	}

	return &Stores{
		Products:      &ProductRepo{docs: products, now: o.now},
		Categories:    &CategoryRepo{docs: categories},
		Sales:         &SaleRepo{docs: sales},
		Finances:      &FinanceRepo{docs: finances},
		Users:         &UserRepo{docs: users},
		UserCodes:     &UserCodeRepo{doc: codes},
		Sessions:      &SessionRepo{doc: session},
		Notifications: &NotificationRepo{docs: notifications},
		Reports:       &ReportRepo{docs: reports},
		Settings:      &SettingsRepo{settings: settings, password: password, recovery: recovery},
		Tx:            newTxRunner(durable, products, sales, o.now),
	}, nil
}
