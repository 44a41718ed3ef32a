package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Gestion-api/internal/infrastructure/storage"
)

var _ storage.KV = (*KVStore)(nil)

const table = "app_storage"

const schema = `CREATE TABLE IF NOT EXISTS app_storage (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertSuffix = "ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()"

// querier lo cumplen *pgxpool.Pool y pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// KVStore almacén clave-valor en PostgreSQL.
type KVStore struct {
	pool    *pgxpool.Pool
	builder sq.StatementBuilderType
}

// NewKVStore construye el almacén con el pool.
func NewKVStore(pool *pgxpool.Pool) *KVStore {
	return &KVStore{
		pool:    pool,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// EnsureSchema crea la tabla si no existe.
func (s *KVStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear tabla %s: %w", table, err)
	}
	return nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := s.builder.Select("value").From(table).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build query: %w", err)
	}
	var raw []byte
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return raw, true, nil
}

func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	return s.upsert(ctx, s.pool, key, value)
}

// PutMany escribe todas las claves en una sola transacción.
func (s *KVStore) PutMany(ctx context.Context, entries map[string][]byte) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for k, v := range entries {
		if err := s.upsert(ctx, tx, k, v); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *KVStore) upsert(ctx context.Context, q querier, key string, value []byte) error {
	query, args, err := s.builder.
		Insert(table).
		Columns("key", "value").
		Values(key, string(value)).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := q.Exec(ctx, query, args...); err != nil {
		if isInvalidJSON(err) {
			return fmt.Errorf("put %s: documento JSON inválido: %w", key, err)
		}
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	query, args, err := s.builder.Delete(table).Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// SumCompletedSales suma totalAmount de las ventas completadas directamente en jsonb.
// La usa el comando stats del CLI para contrastar con el agregado en memoria.
func (s *KVStore) SumCompletedSales(ctx context.Context) (decimal.Decimal, error) {
	query, args, err := s.builder.
		Select("COALESCE(SUM((elem->>'totalAmount')::numeric), 0)").
		From(table + ", jsonb_array_elements(value) AS elem").
		Where(sq.Eq{"key": storage.KeySales}).
		Where(sq.Eq{"elem->>'status'": "completed"}).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("build query: %w", err)
	}
	var total decimal.Decimal
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sumar ventas: %w", err)
	}
	return total, nil
}
