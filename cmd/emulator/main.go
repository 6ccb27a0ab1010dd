package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/raywall/painel-usuarios/tools/emulator/config"
)

// Injetável para testes
var serverStarter = func(ctx context.Context, s *config.ServerConfig) error {
	return s.Start(ctx)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.Load()); err != nil {
		log.Fatal().Err(err).Msg("emulador encerrado com erro")
	}
}

// run sobe todos os servidores; a falha de um encerra os demais
func run(ctx context.Context, cfg config.Config) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := range cfg {
		s := cfg[i]
		g.Go(func() error {
			return serverStarter(ctx, &s)
		})
	}
	return g.Wait()
}
