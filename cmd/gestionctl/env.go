package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/Gestion-api/internal/infrastructure/backend"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/storage"
	"github.com/jhoicas/Gestion-api/pkg/config"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

// env recursos compartidos por los subcomandos.
type env struct {
	cfg    *config.Config
	log    *logger.Logger
	db     *backend.Backend
	stores *storage.Stores
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	// Los logs van a stderr para no mezclarse con el reporte en stdout.
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	db, err := backend.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	st, err := storage.Open(ctx, db.KV, nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cargar colecciones: %w", err)
	}
	return &env{cfg: cfg, log: log, db: db, stores: st}, nil
}

func (e *env) Close() { e.db.Close() }
