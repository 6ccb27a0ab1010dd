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

//
// Package emulator fornece um backend de usuários em memória para
// desenvolvimento local do painel, sem depender do endpoint real.
//
// Visão Geral:
// O emulador implementa o mesmo contrato REST do endpoint de usuários em um
// único caminho (por padrão /usuarios):
//
//	GET    /usuarios  -> 200 + lista no formato de atributos tipados do DynamoDB
//	POST   /usuarios  -> {"email","nome","status"} cria ou substitui o usuário
//	PUT    /usuarios  -> {"email","status"} altera o status
//	DELETE /usuarios  -> {"email"} remove o usuário
//
// A listagem responde sempre com atributos tipados ({"email": {"S": "..."}}),
// o que exercita a normalização feita pelo cliente do painel. Os corpos de
// escrita aceitam tanto escalares quanto atributos tipados.
//
// Funcionalidades Principais:
//   - Multi-Server: vários servidores em portas diferentes, cada um com sua
//     própria massa de dados.
//   - Massa inicial: usuários carregados de JSON ou YAML.
//   - Simulação de Latência/Erro: atraso fixo por requisição e respostas de
//     falha configuráveis por método HTTP.
//
// Exemplo de Configuração (emulator.yaml):
//
//	- port: 4000
//	  path: /usuarios
//	  latencia_ms: 150
//	  usuarios:
//	    - email: ana@sizerpro.com
//	      nome: Ana
//	      hwid: HW-001
//	      status: ativo
//	  falhas:
//	    - method: DELETE
//	      response: {status: 500, body: {error: "indisponível"}}
//
// Exemplo de Inicialização Programática (Go):
//
//	cfg := config.Load()
//	g, ctx := errgroup.WithContext(context.Background())
//	for i := range cfg {
//	    s := cfg[i]
//	    g.Go(func() error { return s.Start(ctx) })
//	}
//	log.Fatal(g.Wait())
package emulator
