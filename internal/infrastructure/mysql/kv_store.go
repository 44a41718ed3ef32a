// Package mysql implementa storage.KV sobre una tabla app_storage en MySQL.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"

	"github.com/jhoicas/Gestion-api/internal/infrastructure/storage"
)

var _ storage.KV = (*KVStore)(nil)

const table = "app_storage"

// `key` es palabra reservada en MySQL, por eso las columnas son k / v.
const schema = `CREATE TABLE IF NOT EXISTS app_storage (
	k VARCHAR(191) NOT NULL PRIMARY KEY,
	v LONGTEXT NOT NULL,
	updated_at DATETIME(6) NOT NULL
) DEFAULT CHARSET=utf8mb4`

const upsertSuffix = "ON DUPLICATE KEY UPDATE v = VALUES(v), updated_at = VALUES(updated_at)"

// maxAttempts intentos de PutMany ante deadlock o lock wait timeout.
const maxAttempts = 3

// KVStore almacén clave-valor en MySQL.
type KVStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	now     func() time.Time
	backoff time.Duration
}

// Open valida el DSN, abre el pool y verifica la conexión.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if _, err := mysql.ParseDSN(dsn); err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir mysql: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// NewKVStore construye el almacén sobre un *sql.DB (real o sqlmock).
func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		now:     func() time.Time { return time.Now().UTC() },
		backoff: 200 * time.Millisecond,
	}
}

// EnsureSchema crea la tabla si no existe.
func (s *KVStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("crear tabla %s: %w", table, err)
	}
	return nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := s.builder.Select("v").From(table).Where(sq.Eq{"k": key}).ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build query: %w", err)
	}
	var v string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(v), true, nil
}

func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	return s.exec(ctx, s.db, key, value)
}

// PutMany escribe todas las claves en una transacción. Reintenta ante errores transitorios.
func (s *KVStore) PutMany(ctx context.Context, entries map[string][]byte) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = s.putManyOnce(ctx, entries)
		if err == nil || !isTransientError(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.backoff * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("tras %d intentos: %w", maxAttempts, err)
}

func (s *KVStore) putManyOnce(ctx context.Context, entries map[string][]byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for k, v := range entries {
		if err := s.exec(ctx, tx, k, v); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *KVStore) exec(ctx context.Context, db execer, key string, value []byte) error {
	query, args, err := s.builder.
		Insert(table).
		Columns("k", "v", "updated_at").
		Values(key, string(value), s.now()).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	query, args, err := s.builder.Delete(table).Where(sq.Eq{"k": key}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// isTransientError detecta errores de MySQL que vale la pena reintentar.
func isTransientError(err error) bool {
	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return false
	}
	switch myErr.Number {
	case 1040, 1205, 1213: // demasiadas conexiones, lock wait timeout, deadlock
		return true
	}
	return false
}
