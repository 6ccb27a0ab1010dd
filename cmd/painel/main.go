package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/raywall/painel-usuarios/pkg/client"
	"github.com/raywall/painel-usuarios/pkg/config"
	"github.com/raywall/painel-usuarios/pkg/logger"
	"github.com/raywall/painel-usuarios/pkg/metrics"
	"github.com/raywall/painel-usuarios/pkg/observability"
	"github.com/raywall/painel-usuarios/pkg/painel"
	"github.com/raywall/painel-usuarios/pkg/transport"
	"github.com/raywall/painel-usuarios/pkg/web"
)

var (
	configSource string
	// Variáveis injetáveis para mocking
	serverStarter = transport.StartHTTPServer
	lambdaStarter = func(handler interface{}) { lambda.Start(handler) }
	reloadStarter = startSQSReloader
)

func init() {
	configSource = os.Getenv("PAINEL_CONFIG")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configSource); err != nil {
		log.Fatal().Err(err).Msg("FATAL")
	}
}

// run contém a lógica principal testável
func run(ctx context.Context, source string) error {
	cfg, err := config.Load(ctx, source)
	if err != nil {
		return err
	}

	logger.Configure(cfg.Logging, cfg.Service.Name)

	provider, err := observability.SetupMetrics(cfg.Metrics, cfg.Service.Name)
	if err != nil {
		return err
	}
	defer provider.Close()
	recorder := metrics.NewRecorder(provider)

	api := client.New(cfg.Backend.Endpoint,
		client.WithTimeout(cfg.Backend.Timeout),
		client.WithRecorder(recorder),
	)
	p := painel.New(api, recorder)

	handler, err := web.NewHandler(p, web.Opcoes{
		Titulo:      cfg.Service.Title,
		Subtitulo:   cfg.Service.Subtitle,
		SSLRedirect: cfg.Service.SSLRedirect,
	})
	if err != nil {
		return err
	}

	// carga inicial, equivalente à montagem da tela
	p.Carregar(ctx)

	if cfg.Reload.SQSQueueURL != "" {
		r := &painelReloader{source: source, load: config.Load, api: api, painel: p}
		go reloadStarter(ctx, cfg, r)
	}

	return serve(ctx, cfg, handler)
}

// serve seleciona a estratégia de runtime
func serve(ctx context.Context, cfg *config.AppConfig, handler http.Handler) error {
	switch cfg.Service.Runtime {
	case "local", "ec2", "ecs", "eks":
		return serverStarter(ctx, cfg.Service.Addr(), handler)
	case "lambda":
		lambdaStarter(transport.NewLambdaHandler(handler).Handle)
		return nil
	default:
		return fmt.Errorf("runtime desconhecido: %s", cfg.Service.Runtime)
	}
}
