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
// Package envloader aplica variáveis de ambiente sobre uma struct de
// configuração já preenchida (por exemplo, a partir de um YAML).
//
// Tags suportadas:
//   - env:"NOME"           nome da variável de ambiente;
//   - envDefault:"valor"   valor usado quando o campo ainda está zerado;
//   - envRequired:"true"   falha com *MissingEnvError se o campo terminar vazio.
//
// Tipos suportados: string, int*, uint*, bool, float*, time.Duration e
// []string (separado por vírgula). Structs aninhadas e ponteiros para struct
// são percorridos recursivamente.
//
// Exemplo:
//
//	type Config struct {
//		Endpoint string        `env:"PAINEL_ENDPOINT" envRequired:"true"`
//		Port     int           `env:"PAINEL_PORT" envDefault:"8080"`
//		Timeout  time.Duration `env:"PAINEL_HTTP_TIMEOUT"`
//	}
//
//	var cfg Config
//	if err := envloader.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
package envloader
