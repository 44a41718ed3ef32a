// Package backend abre el almacén clave-valor elegido con STORAGE_DRIVER.
package backend

import (
	"context"
	"fmt"

	"github.com/jhoicas/Gestion-api/internal/infrastructure/mysql"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/redis"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/storage"
	"github.com/jhoicas/Gestion-api/pkg/config"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

// Backend almacén abierto y sus recursos.
type Backend struct {
	KV storage.KV
	// Postgres solo se informa con el driver postgres (consultas SQL directas del CLI).
	Postgres *postgres.KVStore
	closers  []func()
}

// Open conecta con el driver configurado y crea el esquema si hace falta.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	if log == nil {
		log = logger.Nop()
	}
	b := &Backend{}
	switch cfg.Storage.Driver {
	case config.DriverMemory, "":
		b.KV = storage.NewMemoryKV()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")

	case config.DriverRedis:
		kv, err := redis.NewKVStore(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("conexión a Redis: %w", err)
		}
		b.KV = kv
		b.closers = append(b.closers, func() { _ = kv.Close() })

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		kv := postgres.NewKVStore(pool)
		if err := kv.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("esquema PostgreSQL: %w", err)
		}
		b.KV = kv
		b.Postgres = kv
		b.closers = append(b.closers, pool.Close)

	case config.DriverMySQL:
		db, err := mysql.Open(ctx, cfg.MySQL.DSN)
		if err != nil {
			return nil, fmt.Errorf("conexión a MySQL: %w", err)
		}
		kv := mysql.NewKVStore(db)
		if err := kv.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("esquema MySQL: %w", err)
		}
		b.KV = kv
		b.closers = append(b.closers, func() { _ = db.Close() })

	default:
		return nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.Storage.Driver)
	}

	log.Info().Str("driver", cfg.Storage.Driver).Msg("almacenamiento listo")
	return b, nil
}

// Close libera las conexiones en orden inverso.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}
