package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Gestion-api/pkg/logger"
)

func TestLogger_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})

	log.Component("ventas").Info().Str("sale_id", "s1").Msg("venta registrada")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ventas", entry["component"])
	assert.Equal(t, "s1", entry["sale_id"])
	assert.Equal(t, "venta registrada", entry["message"])
	assert.Equal(t, "info", entry["level"])
}

func TestLogger_NivelFiltraMensajes(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("no debe aparecer")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("sí aparece")
	assert.Contains(t, buf.String(), "sí aparece")
}

func TestLogger_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "ruidoso", Output: &buf})

	log.Debug().Msg("oculto")
	log.Info().Msg("visible")
	assert.NotContains(t, buf.String(), "oculto")
	assert.Contains(t, buf.String(), "visible")
}
