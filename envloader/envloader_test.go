package envloader

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_StringFields(t *testing.T) {
	type Config struct {
		Endpoint string `env:"TEST_PAINEL_ENDPOINT" envDefault:"http://localhost:9000/usuarios"`
		Runtime  string `env:"TEST_PAINEL_RUNTIME" envDefault:"local"`
	}

	cfg := &Config{}
	require.NoError(t, Load(cfg))
	assert.Equal(t, "http://localhost:9000/usuarios", cfg.Endpoint)
	assert.Equal(t, "local", cfg.Runtime)

	t.Setenv("TEST_PAINEL_ENDPOINT", "https://api.example.com/prod/usuarios")
	t.Setenv("TEST_PAINEL_RUNTIME", "lambda")

	cfg2 := &Config{}
	require.NoError(t, Load(cfg2))
	assert.Equal(t, "https://api.example.com/prod/usuarios", cfg2.Endpoint)
	assert.Equal(t, "lambda", cfg2.Runtime)
}

func TestLoad_KeepsExistingValueOverDefault(t *testing.T) {
	type Config struct {
		Port int    `env:"TEST_PAINEL_PORT" envDefault:"8080"`
		Name string `env:"TEST_PAINEL_NAME" envDefault:"painel"`
	}

	// valores vindos do YAML não são sobrescritos pelo default
	cfg := &Config{Port: 3000, Name: "sizerpro"}
	require.NoError(t, Load(cfg))
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "sizerpro", cfg.Name)

	// mas a variável de ambiente sempre vence
	t.Setenv("TEST_PAINEL_PORT", "9090")
	require.NoError(t, Load(cfg))
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoad_NumericAndBoolFields(t *testing.T) {
	type Config struct {
		Port    int     `env:"TEST_PORT" envDefault:"8080"`
		MaxConn int32   `env:"TEST_MAX_CONN" envDefault:"100"`
		Size    uint64  `env:"TEST_SIZE" envDefault:"1048576"`
		Ratio   float64 `env:"TEST_RATIO" envDefault:"0.5"`
		Debug   bool    `env:"TEST_DEBUG" envDefault:"false"`
	}

	t.Setenv("TEST_DEBUG", "TRUE")

	cfg := &Config{}
	require.NoError(t, Load(cfg))
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, int32(100), cfg.MaxConn)
	assert.Equal(t, uint64(1048576), cfg.Size)
	assert.Equal(t, 0.5, cfg.Ratio)
	assert.True(t, cfg.Debug)
}

func TestLoad_DurationAndSlice(t *testing.T) {
	type Config struct {
		Timeout time.Duration `env:"TEST_TIMEOUT" envDefault:"2s"`
		Tags    []string      `env:"TEST_TAGS"`
	}

	t.Setenv("TEST_TAGS", "env:prod, app:painel,,")

	cfg := &Config{}
	require.NoError(t, Load(cfg))
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"env:prod", "app:painel"}, cfg.Tags)
}

func TestLoad_NestedStructs(t *testing.T) {
	type Logging struct {
		Level string `env:"TEST_LOG_LEVEL" envDefault:"info"`
	}
	type Metrics struct {
		Addr string `env:"TEST_DD_ADDR" envDefault:"localhost:8125"`
	}
	type Config struct {
		Logging Logging
		Metrics *Metrics
	}

	cfg := &Config{}
	require.NoError(t, Load(cfg))
	assert.Equal(t, "info", cfg.Logging.Level)
	require.NotNil(t, cfg.Metrics)
	assert.Equal(t, "localhost:8125", cfg.Metrics.Addr)
}

func TestLoad_Required(t *testing.T) {
	type Config struct {
		Endpoint string `env:"TEST_REQUIRED_ENDPOINT" envRequired:"true"`
	}

	err := Load(&Config{})
	var missing *MissingEnvError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Endpoint", missing.FieldName)
	assert.Equal(t, "TEST_REQUIRED_ENDPOINT", missing.EnvVar)

	// valor prévio satisfaz o required
	assert.NoError(t, Load(&Config{Endpoint: "http://x"}))
}

func TestLoad_Errors(t *testing.T) {
	t.Run("nao ponteiro", func(t *testing.T) {
		type Config struct{}
		err := Load(Config{})
		var invalid *InvalidConfigError
		require.True(t, errors.As(err, &invalid))
		assert.Contains(t, err.Error(), "got struct")
	})

	t.Run("nil", func(t *testing.T) {
		err := Load(nil)
		assert.EqualError(t, err, "envloader: config must be a pointer to struct, got nil")
	})

	t.Run("conversao invalida", func(t *testing.T) {
		type Config struct {
			Port int `env:"TEST_BAD_PORT"`
		}
		t.Setenv("TEST_BAD_PORT", "abc")

		err := Load(&Config{})
		var fieldErr *FieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.Equal(t, "Port", fieldErr.FieldName)

		var numErr *strconv.NumError
		assert.True(t, errors.As(err, &numErr))
	})

	t.Run("tipo nao suportado", func(t *testing.T) {
		type Config struct {
			Extra map[string]string `env:"TEST_MAP"`
		}
		t.Setenv("TEST_MAP", "a=b")

		err := Load(&Config{})
		var unsupported *UnsupportedTypeError
		assert.True(t, errors.As(err, &unsupported))
	})
}

func TestMustLoad_Panics(t *testing.T) {
	assert.Panics(t, func() { MustLoad("not a struct") })
}
