package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() {
		Root, Store, Engine, CLI = zerolog.Nop(), zerolog.Nop(), zerolog.Nop(), zerolog.Nop()
	})

	t.Run("json_components", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Options{LogLevel: zerolog.DebugLevel, Type: JSONLogger, Output: &buf})

		Store.Debug().Str("key", "k1").Msg("skipped entry")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "store", line["component"])
		assert.Equal(t, "k1", line["key"])
		assert.Equal(t, "skipped entry", line["message"])
		assert.Equal(t, "debug", line["level"])
	})

	t.Run("level_filtering", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Options{LogLevel: zerolog.WarnLevel, Type: JSONLogger, Output: &buf})

		Engine.Info().Msg("opened")
		assert.Zero(t, buf.Len())

		Engine.Warn().Msg("slow")
		assert.Contains(t, buf.String(), `"component":"engine"`)
	})

	t.Run("console_format", func(t *testing.T) {
		var buf bytes.Buffer
		Init(Options{LogLevel: zerolog.InfoLevel, Type: ConsoleLogger, Output: &buf})

		CLI.Info().Str("cmd", "scan").Msg("done")
		out := buf.String()
		assert.Contains(t, out, "| INFO  |")
		assert.Contains(t, out, `message: "done" |`)
		assert.Contains(t, out, `"cmd": "scan" |`)
	})
}

func TestParse(t *testing.T) {
	level, err := ParseLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	_, err = ParseLogLevel("loud")
	assert.Error(t, err)

	typ, err := ParseLoggerType("JSON")
	require.NoError(t, err)
	assert.Equal(t, JSONLogger, typ)
	assert.Equal(t, "json", typ.String())

	typ, err = ParseLoggerType("")
	require.NoError(t, err)
	assert.Equal(t, ConsoleLogger, typ)

	_, err = ParseLoggerType("xml")
	assert.Error(t, err)
}
