// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package web renderiza o painel em HTML e recebe as ações do operador.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/unrolled/secure"

	"github.com/raywall/painel-usuarios/pkg/painel"
	"github.com/raywall/painel-usuarios/pkg/usuario"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	// Valor do campo "confirmar" preenchido pelo confirm() do navegador
	// ou pela página de confirmação.
	confirmacaoAceita = "sim"
	// Cookie que associa os alertas ao navegador que os gerou.
	cookieSessao = "painel_sessao"
)

// Opcoes controla textos e cabeçalhos de segurança.
type Opcoes struct {
	Titulo      string
	Subtitulo   string
	SSLRedirect bool
}

// Alertas guarda, por sessão, as mensagens geradas em um POST até o
// próximo GET, quando são exibidas como alert() do navegador.
type Alertas struct {
	mu    sync.Mutex
	filas map[string][]string
}

func (a *Alertas) Alertar(sessao, msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.filas == nil {
		a.filas = map[string][]string{}
	}
	a.filas[sessao] = append(a.filas[sessao], msg)
}

// Drenar retorna e limpa a fila da sessão.
func (a *Alertas) Drenar(sessao string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.filas[sessao]
	delete(a.filas, sessao)
	return out
}

// Para adapta a fila de uma sessão ao painel.Alertador.
func (a *Alertas) Para(sessao string) painel.Alertador {
	return painel.AlertaFunc(func(msg string) { a.Alertar(sessao, msg) })
}

type Handler struct {
	painel  *painel.Painel
	alertas *Alertas
	opcoes  Opcoes
	tmpl    *template.Template
	router  http.Handler
}

type confirmacao struct {
	Titulo   string
	Mensagem string
	Email    string
}

type pagina struct {
	Titulo      string
	Subtitulo   string
	Confirmacao string
	Visao       painel.Visao
	Alertas     []string
}

var funcMap = template.FuncMap{
	"ouNA": func(v string) string {
		if v == "" {
			return "N/A"
		}
		return v
	},
	"ouTraco": func(v string) string {
		if v == "" {
			return "–"
		}
		return v
	},
}

// NewHandler monta o roteador do painel.
func NewHandler(p *painel.Painel, opcoes Opcoes) (*Handler, error) {
	tmpl, err := template.New("painel").Funcs(funcMap).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar template: %w", err)
	}

	h := &Handler{
		painel:  p,
		alertas: &Alertas{},
		opcoes:  opcoes,
		tmpl:    tmpl,
	}

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		// alert() e confirm() são scripts inline
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'",
		SSLRedirect:           opcoes.SSLRedirect,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})

	r := mux.NewRouter()
	r.Use(secureMiddleware.Handler)
	r.HandleFunc("/", h.index).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.HandleFunc("/usuarios", h.criar).Methods(http.MethodPost)
	r.HandleFunc("/usuarios/status", h.status).Methods(http.MethodPost)
	r.HandleFunc("/usuarios/excluir", h.excluir).Methods(http.MethodPost)
	h.router = r

	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	sessao := h.sessao(w, r)
	q := r.URL.Query()
	if _, ok := q["busca"]; ok {
		h.painel.DefinirBusca(q.Get("busca"))
	}
	if q.Get("recarregar") != "" {
		h.painel.Carregar(r.Context())
	}

	data := pagina{
		Titulo:      h.opcoes.Titulo,
		Subtitulo:   h.opcoes.Subtitulo,
		Confirmacao: painel.MsgConfirmaRemocao,
		Visao:       h.painel.Snapshot(),
		Alertas:     h.alertas.Drenar(sessao),
	}
	h.render(w, r, "painel.html", data)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, nome string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, nome, data); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("template", nome).Msg("falha ao renderizar painel")
		http.Error(w, "erro ao renderizar painel", http.StatusInternalServerError)
	}
}

// sessao lê o cookie de sessão, criando um novo quando ausente.
func (h *Handler) sessao(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(cookieSessao); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieSessao,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.opcoes.SSLRedirect,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (h *Handler) criar(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	alerta := h.alertas.Para(h.sessao(w, r))
	h.painel.CriarCom(r.Context(), r.PostFormValue("email"), r.PostFormValue("nome"), alerta)
	h.voltar(w, r)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	alerta := h.alertas.Para(h.sessao(w, r))
	email := r.PostFormValue("email")
	if status := usuario.Status(r.PostFormValue("status")); status != "" {
		h.painel.AtualizarStatus(r.Context(), email, status, alerta)
	} else {
		h.painel.Alternar(r.Context(), email, alerta)
	}
	h.voltar(w, r)
}

func (h *Handler) excluir(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	email := r.PostFormValue("email")
	// sem o confirm() do navegador, a confirmação é pedida pelo servidor
	if r.PostFormValue("confirmar") != confirmacaoAceita {
		h.render(w, r, "confirmar.html", confirmacao{
			Titulo:   h.opcoes.Titulo,
			Mensagem: painel.MsgConfirmaRemocao,
			Email:    email,
		})
		return
	}

	alerta := h.alertas.Para(h.sessao(w, r))
	h.painel.Remover(r.Context(), email, painel.ConfirmaFunc(func(string) bool {
		return true
	}), alerta)
	h.voltar(w, r)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	v := h.painel.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "ok",
		"usuarios": v.Resumo.Total,
	})
}

func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "formulário inválido", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) voltar(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
