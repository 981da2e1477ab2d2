package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/replenishment-planner/pkg/logger"
)

func TestNew_ProductionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	log.Info().Str("sku", "ABC-1").Msg("calculado")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "ABC-1", entry["sku"])
	assert.Equal(t, "calculado", entry["message"])
}

func TestNew_NivelFiltraEventos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Info().Msg("ignorado")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("registrado")
	assert.Contains(t, buf.String(), "registrado")
}

func TestNew_NivelInvalido_UsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "ruidoso", Output: &buf})

	log.Debug().Msg("debug")
	log.Info().Msg("info")
	assert.NotContains(t, buf.String(), `"debug"`)
	assert.Contains(t, buf.String(), `"info"`)
}
