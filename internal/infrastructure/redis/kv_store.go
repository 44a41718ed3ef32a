// Package redis implementa storage.KV sobre Redis: cada colección es una clave string con su JSON.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Gestion-api/internal/infrastructure/storage"
	"github.com/jhoicas/Gestion-api/pkg/config"
)

var _ storage.KV = (*KVStore)(nil)

// KVStore almacén clave-valor en Redis. Todas las claves llevan el prefijo configurado.
type KVStore struct {
	client *goredis.Client
	prefix string
}

// NewKVStore abre el cliente y verifica la conexión con PING.
func NewKVStore(ctx context.Context, cfg config.RedisConfig) (*KVStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewKVStoreFromClient(client, cfg.Prefix), nil
}

// NewKVStoreFromClient envuelve un cliente ya construido.
func NewKVStoreFromClient(client *goredis.Client, prefix string) *KVStore {
	return &KVStore{client: client, prefix: prefix}
}

func (s *KVStore) key(k string) string { return s.prefix + k }

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// PutMany escribe todas las claves dentro de MULTI/EXEC.
func (s *KVStore) PutMany(ctx context.Context, entries map[string][]byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for k, v := range entries {
			pipe.Set(ctx, s.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis multi: %w", err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close cierra el cliente.
func (s *KVStore) Close() error {
	return s.client.Close()
}
