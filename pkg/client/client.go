// Package client implementa o acesso ao endpoint REST único de usuários.
//
// Leituras nunca falham para quem chama: qualquer erro vira lista vazia e
// fica registrado no log. Escritas retornam erro apenas em falha de
// transporte; o status HTTP da resposta não é interpretado.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/raywall/painel-usuarios/pkg/metrics"
	"github.com/raywall/painel-usuarios/pkg/transport"
	"github.com/raywall/painel-usuarios/pkg/usuario"
)

const DefaultUserAgent = "painel-usuarios/1.0"

// ErrEmailObrigatorio é retornado por Create antes de qualquer chamada de rede.
var ErrEmailObrigatorio = errors.New("email é obrigatório")

// Doer permite substituir o *http.Client nos testes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	mu        sync.RWMutex
	endpoint  string
	http      Doer
	recorder  *metrics.Recorder
	userAgent string
}

type Option func(*Client)

// WithHTTPClient troca o cliente HTTP usado nas chamadas.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// WithTimeout define um timeout por requisição. Zero mantém sem timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http = &http.Client{Timeout: d} }
}

func WithRecorder(r *metrics.Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New cria um cliente para o endpoint informado.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:  endpoint,
		http:      &http.Client{},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reconfigure troca endpoint e timeout em tempo de execução (hot reload).
// Um Doer injetado via WithHTTPClient é preservado; no *http.Client só o
// timeout muda, mantendo o Transport.
func (c *Client) Reconfigure(endpoint string, timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.endpoint = endpoint
	if hc, ok := c.http.(*http.Client); ok {
		cp := *hc
		cp.Timeout = timeout
		c.http = &cp
	}
}

// Endpoint retorna o endpoint atual.
func (c *Client) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

// List busca todos os usuários. Nunca retorna nil.
func (c *Client) List(ctx context.Context) []usuario.Usuario {
	body, status, err := c.do(ctx, http.MethodGet, nil)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Erro ao carregar usuários")
		return []usuario.Usuario{}
	}
	if status < 200 || status > 299 {
		log.Ctx(ctx).Error().Int("status", status).Msg("Erro ao carregar usuários")
		return []usuario.Usuario{}
	}

	usuarios, err := usuario.DecodeList(body)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Erro ao carregar usuários")
		return []usuario.Usuario{}
	}
	return usuarios
}

// Create cadastra um usuário com status ativo.
func (c *Client) Create(ctx context.Context, email, nome string) error {
	if email == "" {
		return ErrEmailObrigatorio
	}
	return c.write(ctx, http.MethodPost, map[string]string{
		"email":  email,
		"nome":   nome,
		"status": string(usuario.StatusAtivo),
	})
}

// SetStatus altera o status do usuário identificado pelo email.
func (c *Client) SetStatus(ctx context.Context, email string, status usuario.Status) error {
	return c.write(ctx, http.MethodPut, map[string]string{
		"email":  email,
		"status": string(status),
	})
}

// Delete remove o usuário identificado pelo email.
func (c *Client) Delete(ctx context.Context, email string) error {
	return c.write(ctx, http.MethodDelete, map[string]string{"email": email})
}

func (c *Client) write(ctx context.Context, method string, payload map[string]string) error {
	_, status, err := c.do(ctx, method, payload)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		log.Ctx(ctx).Warn().Str("method", method).Int("status", status).Msg("endpoint respondeu com status de erro")
	}
	return nil
}

func (c *Client) do(ctx context.Context, method string, payload interface{}) (_ []byte, _ int, err error) {
	start := time.Now()
	defer func() { c.recorder.Request(method, err, time.Since(start)) }()

	c.mu.RLock()
	endpoint, doer, ua := c.endpoint, c.http, c.userAgent
	c.mu.RUnlock()

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("falha ao serializar payload: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("falha ao criar requisição %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", ua)
	if corrID := transport.CorrelationID(ctx); corrID != "" {
		req.Header.Set(transport.HeaderCorrelationID, corrID)
	}

	resp, err := doer.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("falha na chamada %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("falha ao ler resposta: %w", err)
	}
	return body, resp.StatusCode, nil
}
