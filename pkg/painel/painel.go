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

// Package painel mantém o estado do painel de usuários e as ações do
// operador. Toda escrita é seguida de uma releitura completa da lista.
package painel

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/raywall/painel-usuarios/pkg/metrics"
	"github.com/raywall/painel-usuarios/pkg/usuario"
)

// Mensagens exibidas ao operador.
const (
	MsgEmailObrigatorio = "Por favor, informe o email."
	MsgErroCriar        = "Erro ao criar usuário"
	MsgErroStatus       = "Erro ao atualizar status"
	MsgErroRemover      = "Erro ao remover usuário"
	MsgConfirmaRemocao  = "Tem certeza que deseja excluir este usuário?"
)

// Sincronizador é o acesso ao endpoint remoto de usuários.
type Sincronizador interface {
	List(ctx context.Context) []usuario.Usuario
	Create(ctx context.Context, email, nome string) error
	SetStatus(ctx context.Context, email string, status usuario.Status) error
	Delete(ctx context.Context, email string) error
}

// Alertador exibe uma mensagem bloqueante ao operador.
type Alertador interface {
	Alertar(msg string)
}

// Confirmador pergunta ao operador e retorna true se ele aceitou.
type Confirmador interface {
	Confirmar(msg string) bool
}

// AlertaFunc adapta uma função para Alertador.
type AlertaFunc func(msg string)

func (f AlertaFunc) Alertar(msg string) { f(msg) }

// ConfirmaFunc adapta uma função para Confirmador.
type ConfirmaFunc func(msg string) bool

func (f ConfirmaFunc) Confirmar(msg string) bool { return f(msg) }

// Painel é o estado compartilhado da tela. A lista só é substituída por
// Carregar; chamadas de rede acontecem fora do lock.
type Painel struct {
	api      Sincronizador
	recorder *metrics.Recorder

	mu         sync.Mutex
	usuarios   []usuario.Usuario
	email      string
	nome       string
	busca      string
	carregando bool
}

// New cria um painel vazio. A carga inicial fica a cargo de quem o monta.
func New(api Sincronizador, recorder *metrics.Recorder) *Painel {
	return &Painel{
		api:      api,
		recorder: recorder,
		usuarios: []usuario.Usuario{},
	}
}

func (p *Painel) DefinirEmail(v string) {
	p.mu.Lock()
	p.email = v
	p.mu.Unlock()
}

func (p *Painel) DefinirNome(v string) {
	p.mu.Lock()
	p.nome = v
	p.mu.Unlock()
}

func (p *Painel) DefinirBusca(v string) {
	p.mu.Lock()
	p.busca = v
	p.mu.Unlock()
}

// Carregar busca a lista completa e substitui a atual. Com cargas
// concorrentes, prevalece a última a terminar.
func (p *Painel) Carregar(ctx context.Context) {
	p.mu.Lock()
	p.carregando = true
	p.mu.Unlock()

	lista := p.api.List(ctx)
	if lista == nil {
		lista = []usuario.Usuario{}
	}
	resumo := Resumir(lista)

	p.mu.Lock()
	p.usuarios = lista
	p.carregando = false
	p.mu.Unlock()

	p.recorder.Usuarios(resumo.Total, resumo.Ativos)
	log.Ctx(ctx).Debug().Int("total", resumo.Total).Int("ativos", resumo.Ativos).Msg("usuários carregados")
}

// Criar cadastra o usuário dos campos de entrada. Em caso de sucesso os
// campos são limpos e a lista é recarregada.
func (p *Painel) Criar(ctx context.Context, alerta Alertador) {
	p.mu.Lock()
	email, nome := p.email, p.nome
	p.mu.Unlock()

	p.criar(ctx, email, nome, alerta)
}

// CriarCom grava os campos de entrada e cadastra com esses mesmos valores,
// numa única seção crítica. Requisições concorrentes não enxergam os
// valores umas das outras.
func (p *Painel) CriarCom(ctx context.Context, email, nome string, alerta Alertador) {
	p.mu.Lock()
	p.email, p.nome = email, nome
	p.mu.Unlock()

	p.criar(ctx, email, nome, alerta)
}

func (p *Painel) criar(ctx context.Context, email, nome string, alerta Alertador) {
	if email == "" {
		alerta.Alertar(MsgEmailObrigatorio)
		return
	}

	p.recorder.Acao("criar")
	if err := p.api.Create(ctx, email, nome); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("email", email).Msg("Erro ao criar usuário")
		alerta.Alertar(MsgErroCriar)
		return
	}

	// só limpa se ninguém trocou os campos durante a chamada
	p.mu.Lock()
	if p.email == email && p.nome == nome {
		p.email, p.nome = "", ""
	}
	p.mu.Unlock()

	p.Carregar(ctx)
}

// AtualizarStatus grava o novo status e recarrega a lista.
func (p *Painel) AtualizarStatus(ctx context.Context, email string, status usuario.Status, alerta Alertador) {
	p.recorder.Acao("status")
	if err := p.api.SetStatus(ctx, email, status); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("email", email).Msg("Erro ao atualizar status")
		alerta.Alertar(MsgErroStatus)
		return
	}
	p.Carregar(ctx)
}

// Alternar inverte o status atual do usuário.
func (p *Painel) Alternar(ctx context.Context, email string, alerta Alertador) {
	atual := usuario.StatusAtivo
	p.mu.Lock()
	for _, u := range p.usuarios {
		if u.Email == email {
			atual = u.Status
			break
		}
	}
	p.mu.Unlock()

	p.AtualizarStatus(ctx, email, atual.Toggle(), alerta)
}

// Remover exclui o usuário após confirmação do operador.
func (p *Painel) Remover(ctx context.Context, email string, confirma Confirmador, alerta Alertador) {
	if !confirma.Confirmar(MsgConfirmaRemocao) {
		return
	}

	p.recorder.Acao("remover")
	if err := p.api.Delete(ctx, email); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("email", email).Msg("Erro ao remover usuário")
		alerta.Alertar(MsgErroRemover)
		return
	}
	p.Carregar(ctx)
}
