// Package painel_usuarios reúne o painel administrativo de usuários da SizerPro.
//
// Visão Geral:
// O painel lista, cadastra, altera o status e remove registros de usuários
// (email, nome, hwid e status) mantidos atrás de um único endpoint REST.
// Toda escrita é seguida de uma releitura completa da lista, e os campos
// podem chegar como escalares ou como atributos tipados do DynamoDB
// ({"S": "valor"}); a normalização acontece na fronteira do cliente.
//
// Sub-Pacotes Principais:
//
// 1. pkg/usuario:
//   - Registro canônico e normalização dos dois formatos de campo.
//
// 2. pkg/client:
//   - Cliente HTTP do endpoint (listar, criar, alterar status, remover).
//
// 3. pkg/painel:
//   - Estado da tela, ações do operador, filtro de busca e contadores.
//
// 4. pkg/web:
//   - Renderização HTML, formulários de ação e alertas do navegador.
//
// 5. pkg/config e envloader:
//   - Configuração via YAML (arquivo, S3, DynamoDB, Secrets Manager),
//     variáveis de ambiente e parâmetros do SSM.
//
// Binários:
//
//	cmd/painel     servidor HTTP ou AWS Lambda do painel
//	cmd/painelctl  versão de terminal das mesmas ações
//	cmd/emulator   backend de usuários em memória para desenvolvimento
//
// Exemplo de Uso:
//
//	PAINEL_ENDPOINT=http://localhost:4000/usuarios go run ./cmd/painel
//	PAINEL_ENDPOINT=http://localhost:4000/usuarios go run ./cmd/painelctl listar -busca ana
package painel_usuarios
