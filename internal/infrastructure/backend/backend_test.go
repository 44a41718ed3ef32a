package backend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/internal/infrastructure/backend"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/storage"
	"github.com/jhoicas/Gestion-api/pkg/config"
)

func TestOpen_MemoriaPorDefecto(t *testing.T) {
	b, err := backend.Open(context.Background(), &config.Config{}, nil)
	require.NoError(t, err)
	defer b.Close()

	assert.IsType(t, &storage.MemoryKV{}, b.KV)
	assert.Nil(t, b.Postgres)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "sqlite"}}
	_, err := backend.Open(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "sqlite")
}
