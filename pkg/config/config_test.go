package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "1234", cfg.Seed.AdminCode)
	assert.Equal(t, "5678", cfg.Seed.EmployeeCode)
	assert.Equal(t, "sallen", cfg.Seed.RecoveryAnswer)
	assert.Equal(t, "gestion:", cfg.Redis.Prefix)
}

func TestFromViper_PuertoComoTexto(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("REDIS_DB", "no-es-numero")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 0, cfg.Redis.DB, "un entero inválido cae al valor por defecto")
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "sqlite")

	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestFromViper_MySQLRequiereDSN(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "MySQL")

	_, err := config.FromViper(v)
	assert.Error(t, err)

	v.Set("MYSQL_DSN", "user:pass@tcp(localhost:3306)/gestion")
	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, config.DriverMySQL, cfg.Storage.Driver)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "gestion", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/gestion?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
