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

// Package usuario define o registro de usuário do painel e a normalização
// do formato de resposta do endpoint remoto.
package usuario

import "strings"

// Status é o estado de um usuário no painel.
type Status string

const (
	StatusAtivo   Status = "ativo"
	StatusInativo Status = "inativo"
)

// Toggle retorna o status oposto. Qualquer valor diferente de "inativo"
// é tratado como ativo para efeito de alternância.
func (s Status) Toggle() Status {
	if s == StatusInativo {
		return StatusAtivo
	}
	return StatusInativo
}

// Valid indica se o status é um dos valores conhecidos.
func (s Status) Valid() bool {
	return s == StatusAtivo || s == StatusInativo
}

// Usuario é a forma canônica de um registro, já sem o encoding de
// atributos tipados do armazenamento.
type Usuario struct {
	Email  string `json:"email" dynamodbav:"email"`
	Nome   string `json:"nome" dynamodbav:"nome"`
	HWID   string `json:"hwid,omitempty" dynamodbav:"hwid,omitempty"`
	Status Status `json:"status" dynamodbav:"status"`
}

// Ativo indica se o usuário está com status "ativo".
func (u Usuario) Ativo() bool {
	return u.Status == StatusAtivo
}

// Identificavel indica se o registro possui email ou nome. Registros sem
// ambos são considerados malformados e não são exibidos; um valor só com
// espaços ainda conta como presente.
func (u Usuario) Identificavel() bool {
	return u.Email != "" || u.Nome != ""
}

// Contem verifica, sem diferenciar maiúsculas, se email ou nome contém o termo.
func (u Usuario) Contem(termo string) bool {
	termo = strings.ToLower(termo)
	return strings.Contains(strings.ToLower(u.Email), termo) ||
		strings.Contains(strings.ToLower(u.Nome), termo)
}
