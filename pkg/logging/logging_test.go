package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf)

	logger.Info().Str("postcode", "M1 2NH").Msg("Postcode resolved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "M1 2NH", entry["postcode"])
	assert.Equal(t, "Postcode resolved", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestSetDefault(t *testing.T) {
	original := *Default()
	defer SetDefault(original)

	var buf bytes.Buffer
	SetDefault(zerolog.New(&buf))

	Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DEBUG", "")
	assert.Equal(t, zerolog.InfoLevel, levelFromEnv())

	t.Setenv("DEBUG", "1")
	assert.Equal(t, zerolog.DebugLevel, levelFromEnv())

	t.Setenv("DEBUG", "")
	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, zerolog.WarnLevel, levelFromEnv())

	t.Setenv("LOG_LEVEL", "not-a-level")
	assert.Equal(t, zerolog.InfoLevel, levelFromEnv())
}
