package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/raywall/painel-usuarios/pkg/config"
)

func TestConfigure(t *testing.T) {
	t.Run("Default Level Info", func(t *testing.T) {
		_ = Configure(config.LoggingConf{}, "painel")
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	t.Run("Custom Level Debug", func(t *testing.T) {
		_ = Configure(config.LoggingConf{Level: "debug"}, "painel")
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	})

	t.Run("Invalid Level Falls Back", func(t *testing.T) {
		_ = Configure(config.LoggingConf{Level: "verbose"}, "painel")
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	t.Run("JSON Output With Service", func(t *testing.T) {
		var buf bytes.Buffer
		logger := ConfigureTo(&buf, config.LoggingConf{Format: "json"}, "painel")
		logger.Info().Msg("teste")

		assert.Contains(t, buf.String(), `"service":"painel"`)
		assert.Contains(t, buf.String(), `"message":"teste"`)
	})

	t.Run("Console Output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := ConfigureTo(&buf, config.LoggingConf{Format: "console"}, "")
		logger.Info().Msg("teste")

		assert.Contains(t, buf.String(), "teste")
		assert.NotContains(t, buf.String(), `"message"`)
	})

	t.Run("Silent Logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := ConfigureTo(&buf, config.LoggingConf{Silent: true}, "painel")
		logger.Info().Msg("teste")

		assert.Empty(t, buf.String())
	})

	t.Run("Context Without Logger Uses Global", func(t *testing.T) {
		var buf bytes.Buffer
		_ = ConfigureTo(&buf, config.LoggingConf{}, "painel")
		log.Ctx(context.Background()).Info().Msg("via contexto")

		assert.Contains(t, buf.String(), "via contexto")
	})

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	zerolog.DefaultContextLogger = nil
}
