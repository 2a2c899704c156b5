package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/config"
	"gstbill/internal/logger"
)

func TestSetupWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, logger.SetupWriter(config.LogConfig{Level: "info", Format: "json"}, &buf))
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	l := logger.WithComponent("invoice")
	l.Info().Str("invoice_number", "INV001").Msg("created")
	log.Debug().Msg("suppressed")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "invoice", entry["component"])
	assert.Equal(t, "INV001", entry["invoice_number"])
	assert.Equal(t, "created", entry["message"])
}

func TestSetupWriter_InvalidLevel(t *testing.T) {
	err := logger.SetupWriter(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)
}
