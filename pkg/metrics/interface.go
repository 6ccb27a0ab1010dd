package metrics

// Provider define o contrato para envio de métricas.
// Isso permite trocar Datadog por outro backend sem alterar o painel.
type Provider interface {
	Count(name string, value float64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
}

// Nomes das métricas emitidas pelo painel.
const (
	ClientRequests  = "painel.client.requests"
	ClientLatencyMs = "painel.client.latency_ms"
	UsuariosTotal   = "painel.usuarios.total"
	UsuariosAtivos  = "painel.usuarios.ativos"
	AcoesPainel     = "painel.acoes"
)

// Resultado de uma chamada, usado como tag "outcome".
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
