package config

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/raywall/painel-usuarios/tools/emulator/types"
)

// ServerConfig para cada servidor/porta
type ServerConfig struct {
	Port       int              `json:"port" yaml:"port"`
	Path       string           `json:"path" yaml:"path"`
	LatenciaMs int              `json:"latencia_ms,omitempty" yaml:"latencia_ms,omitempty"`
	Usuarios   []types.Registro `json:"usuarios" yaml:"usuarios"`
	Falhas     []types.Falha    `json:"falhas,omitempty" yaml:"falhas,omitempty"`
}

// Handler monta o roteador com a massa inicial do servidor.
func (s *ServerConfig) Handler() http.Handler {
	return s.NewRouter(NewStore(s.Usuarios))
}

// Start sobe o servidor e bloqueia até ctx ser cancelado.
func (s *ServerConfig) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Int("port", s.Port).Str("path", s.Path).Int("usuarios", len(s.Usuarios)).Msg("Iniciando emulador")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("erro no servidor porta %d: %w", s.Port, err)
	}
	return nil
}
