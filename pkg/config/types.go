package config

import (
	"fmt"
	"time"
)

// AppConfig representa a estrutura raiz da configuração do painel.
//
// Os valores podem vir de um YAML (arquivo, S3, DynamoDB ou Secrets Manager)
// e são sobrepostos por variáveis de ambiente através do envloader.
type AppConfig struct {
	Service ServiceConf `yaml:"service"`
	Backend BackendConf `yaml:"backend"`
	Logging LoggingConf `yaml:"logging"`
	Metrics MetricsConf `yaml:"metrics"`
	Reload  ReloadConf  `yaml:"reload"`
}

// ServiceConf contém os metadados e configurações de runtime do painel.
type ServiceConf struct {
	Name     string `yaml:"name" env:"PAINEL_NAME" envDefault:"painel-usuarios" validate:"required,hostname_rfc1123"`
	Runtime  string `yaml:"runtime" env:"PAINEL_RUNTIME" envDefault:"local" validate:"required,oneof=local lambda ecs eks ec2"`
	Port     int    `yaml:"port" env:"PAINEL_PORT" envDefault:"8080" validate:"required_unless=Runtime lambda"`
	Title    string `yaml:"title" env:"PAINEL_TITLE" envDefault:"Painel de Usuários"`
	Subtitle string `yaml:"subtitle" env:"PAINEL_SUBTITLE" envDefault:"SizerPro - Gestão Simplificada"`
	// SSLRedirect força https quando o painel roda atrás de um proxy.
	SSLRedirect bool `yaml:"ssl_redirect" env:"PAINEL_SSL_REDIRECT"`
}

// BackendConf descreve o endpoint REST único de usuários.
type BackendConf struct {
	// Endpoint aceita uma URL http(s) ou "ssm:/caminho/do/parametro".
	Endpoint string `yaml:"endpoint" env:"PAINEL_ENDPOINT" validate:"required,url"`
	// Timeout zero significa sem timeout.
	Timeout time.Duration `yaml:"timeout" env:"PAINEL_HTTP_TIMEOUT"`
	Region  string        `yaml:"region" env:"AWS_REGION"`
}

type LoggingConf struct {
	Silent bool   `yaml:"silent" env:"PAINEL_LOG_SILENT"`
	Level  string `yaml:"level" env:"PAINEL_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"PAINEL_LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool     `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string   `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string   `yaml:"namespace" env:"DD_NAMESPACE" envDefault:"sizerpro."`
	Tags      []string `yaml:"tags" env:"DD_TAGS"`
}

// ReloadConf habilita o recarregamento da configuração via SQS.
type ReloadConf struct {
	SQSQueueURL string `yaml:"sqs_queue_url" env:"PAINEL_RELOAD_QUEUE" validate:"omitempty,url"`
}

// Addr retorna o endereço de escuta do servidor HTTP.
func (s ServiceConf) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}
