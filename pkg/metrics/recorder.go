package metrics

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Recorder envolve um Provider com os helpers usados pelo painel.
// Falhas de envio nunca interrompem o fluxo: são apenas logadas em debug.
type Recorder struct {
	provider Provider
	tags     []string
}

// NewRecorder cria um Recorder. Um provider nil vira um no-op.
func NewRecorder(provider Provider, tags ...string) *Recorder {
	return &Recorder{provider: provider, tags: tags}
}

// Request registra uma chamada ao endpoint remoto.
func (r *Recorder) Request(method string, err error, elapsed time.Duration) {
	if r == nil || r.provider == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	tags := r.with(fmt.Sprintf("method:%s", method), fmt.Sprintf("outcome:%s", outcome))

	r.check(ClientRequests, r.provider.Count(ClientRequests, 1, tags))
	r.check(ClientLatencyMs, r.provider.Histogram(ClientLatencyMs, float64(elapsed.Milliseconds()), tags))
}

// Usuarios registra os contadores exibidos no painel.
func (r *Recorder) Usuarios(total, ativos int) {
	if r == nil || r.provider == nil {
		return
	}
	r.check(UsuariosTotal, r.provider.Gauge(UsuariosTotal, float64(total), r.tags))
	r.check(UsuariosAtivos, r.provider.Gauge(UsuariosAtivos, float64(ativos), r.tags))
}

// Acao registra uma ação do operador (criar, status, remover).
func (r *Recorder) Acao(nome string) {
	if r == nil || r.provider == nil {
		return
	}
	r.check(AcoesPainel, r.provider.Count(AcoesPainel, 1, r.with("acao:"+nome)))
}

func (r *Recorder) with(extra ...string) []string {
	tags := make([]string, 0, len(r.tags)+len(extra))
	tags = append(tags, r.tags...)
	return append(tags, extra...)
}

func (r *Recorder) check(name string, err error) {
	if err != nil {
		log.Debug().Err(err).Str("metric", name).Msg("falha ao enviar métrica")
	}
}
