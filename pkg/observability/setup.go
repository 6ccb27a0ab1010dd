package observability

import (
	"fmt"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rs/zerolog/log"

	"github.com/raywall/painel-usuarios/pkg/config"
	"github.com/raywall/painel-usuarios/pkg/metrics"
)

// NoopProvider é usado quando as métricas estão desabilitadas.
type NoopProvider struct{}

func (n *NoopProvider) Count(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Gauge(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Histogram(name string, value float64, tags []string) error { return nil }
func (n *NoopProvider) Close() error                                              { return nil }

// statsdClient é o subconjunto de statsd.ClientInterface usado aqui.
type statsdClient interface {
	Count(name string, value int64, tags []string, rate float64) error
	Gauge(name string, value float64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	Close() error
}

// DatadogProvider adapta a lib oficial do Datadog para metrics.Provider.
type DatadogProvider struct {
	client statsdClient
}

func (d *DatadogProvider) Count(name string, value float64, tags []string) error {
	return d.client.Count(name, int64(value), tags, 1)
}

func (d *DatadogProvider) Gauge(name string, value float64, tags []string) error {
	return d.client.Gauge(name, value, tags, 1)
}

func (d *DatadogProvider) Histogram(name string, value float64, tags []string) error {
	return d.client.Histogram(name, value, tags, 1)
}

// Close descarrega o buffer do statsd.
func (d *DatadogProvider) Close() error {
	return d.client.Close()
}

// Closer permite encerrar o provider no shutdown sem conhecer a implementação.
type Closer interface {
	metrics.Provider
	Close() error
}

// SetupMetrics inicializa o provedor correto a partir da configuração.
// As tags globais recebem o nome do serviço além das configuradas.
func SetupMetrics(cfg config.MetricsConf, service string) (Closer, error) {
	if !cfg.Datadog.Enabled {
		return &NoopProvider{}, nil
	}

	tags := append([]string{}, cfg.Datadog.Tags...)
	if service != "" {
		tags = append(tags, "service:"+service)
	}

	opts := []statsd.Option{
		statsd.WithNamespace(cfg.Datadog.Namespace),
		statsd.WithTags(tags),
	}

	client, err := statsd.New(cfg.Datadog.Addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no datadog statsd: %w", err)
	}

	log.Info().Str("addr", cfg.Datadog.Addr).Msg("métricas datadog habilitadas")
	return &DatadogProvider{client: client}, nil
}
