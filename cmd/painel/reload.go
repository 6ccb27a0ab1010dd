package main

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog/log"

	"github.com/raywall/painel-usuarios/pkg/client"
	"github.com/raywall/painel-usuarios/pkg/config"
	"github.com/raywall/painel-usuarios/pkg/painel"
	"github.com/raywall/painel-usuarios/pkg/transport"
)

// painelReloader relê a configuração, aponta o cliente para o novo endpoint
// e recarrega a lista.
type painelReloader struct {
	source string
	load   func(ctx context.Context, source string) (*config.AppConfig, error)
	api    *client.Client
	painel *painel.Painel
}

func (r *painelReloader) Reload(ctx context.Context) error {
	cfg, err := r.load(ctx, r.source)
	if err != nil {
		return fmt.Errorf("nova configuração rejeitada: %w", err)
	}

	r.api.Reconfigure(cfg.Backend.Endpoint, cfg.Backend.Timeout)
	log.Info().Str("endpoint", cfg.Backend.Endpoint).Msg("endpoint do painel atualizado")

	r.painel.Carregar(ctx)
	return nil
}

func startSQSReloader(ctx context.Context, cfg *config.AppConfig, r transport.Reloader) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Backend.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Backend.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Error().Err(err).Msg("Hot Reload desativado: erro config aws")
		return
	}

	transport.NewSQSReloader(sqs.NewFromConfig(awsCfg), cfg.Reload.SQSQueueURL, r).Start(ctx)
}
