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

package painel

import "github.com/raywall/painel-usuarios/pkg/usuario"

// Resumo traz os contadores exibidos no cabeçalho do painel.
type Resumo struct {
	Total  int
	Ativos int
}

// Resumir conta todos os registros, sem filtro.
func Resumir(usuarios []usuario.Usuario) Resumo {
	r := Resumo{Total: len(usuarios)}
	for _, u := range usuarios {
		if u.Ativo() {
			r.Ativos++
		}
	}
	return r
}

// Filtrar mantém os registros cujo email ou nome contém o termo. Registros
// sem email e sem nome nunca aparecem.
func Filtrar(usuarios []usuario.Usuario, termo string) []usuario.Usuario {
	out := make([]usuario.Usuario, 0, len(usuarios))
	for _, u := range usuarios {
		if !u.Identificavel() {
			continue
		}
		if u.Contem(termo) {
			out = append(out, u)
		}
	}
	return out
}

// Visao é uma cópia do estado pronta para renderização.
type Visao struct {
	Usuarios   []usuario.Usuario
	Resumo     Resumo
	Email      string
	Nome       string
	Busca      string
	Carregando bool
}

// Vazio indica o estado "nenhum usuário encontrado".
func (v Visao) Vazio() bool {
	return !v.Carregando && len(v.Usuarios) == 0
}

// Snapshot copia o estado atual aplicando o filtro de busca.
func (p *Painel) Snapshot() Visao {
	p.mu.Lock()
	lista := append([]usuario.Usuario(nil), p.usuarios...)
	v := Visao{
		Email:      p.email,
		Nome:       p.nome,
		Busca:      p.busca,
		Carregando: p.carregando,
	}
	p.mu.Unlock()

	v.Usuarios = Filtrar(lista, v.Busca)
	v.Resumo = Resumir(lista)
	return v
}
