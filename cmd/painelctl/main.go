package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/raywall/painel-usuarios/pkg/client"
	"github.com/raywall/painel-usuarios/pkg/config"
	"github.com/raywall/painel-usuarios/pkg/logger"
	"github.com/raywall/painel-usuarios/pkg/painel"
	"github.com/raywall/painel-usuarios/pkg/usuario"
)

const uso = `Uso: painelctl <comando> [flags]

Comandos:
  listar     lista os usuários (-busca filtra por email ou nome)
  criar      cadastra um usuário (-email, -nome)
  ativar     ativa um usuário (-email)
  inativar   inativa um usuário (-email)
  remover    exclui um usuário (-email, -sim dispensa a confirmação)
  validar    valida a configuração e sai
`

// Injetável para testes
var (
	loadConfig = config.Load
	newAPI     = func(cfg *config.AppConfig) painel.Sincronizador {
		return client.New(cfg.Backend.Endpoint,
			client.WithTimeout(cfg.Backend.Timeout),
			client.WithUserAgent("painelctl/1.0"),
		)
	}
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type cli struct {
	stdin   *bufio.Reader
	stdout  io.Writer
	stderr  io.Writer
	alertou bool
}

// Alertar imprime a mensagem no stderr e marca a execução como falha.
func (c *cli) Alertar(msg string) {
	c.alertou = true
	fmt.Fprintf(c.stderr, "⚠️  %s\n", msg)
}

// Confirmar pergunta no terminal; apenas "s", "sim", "y" ou "yes" confirmam.
func (c *cli) Confirmar(msg string) bool {
	fmt.Fprintf(c.stdout, "%s [s/N]: ", msg)
	resp, _ := c.stdin.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(resp)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, uso)
		return 2
	}

	cmd := flag.NewFlagSet(args[0], flag.ContinueOnError)
	cmd.SetOutput(stderr)
	source := cmd.String("config", os.Getenv("PAINEL_CONFIG"), "Caminho do YAML ou URI S3/DynamoDB/SecretsManager")
	email := cmd.String("email", "", "Email do usuário")
	nome := cmd.String("nome", "", "Nome do usuário")
	busca := cmd.String("busca", "", "Termo de busca")
	sim := cmd.Bool("sim", false, "Confirma a remoção sem perguntar")

	switch args[0] {
	case "listar", "criar", "ativar", "inativar", "remover", "validar":
	default:
		fmt.Fprintf(stderr, "Comando desconhecido: %s\n\n%s", args[0], uso)
		return 2
	}
	if err := cmd.Parse(args[1:]); err != nil {
		return 2
	}

	cfg, err := loadConfig(ctx, *source)
	if err != nil {
		fmt.Fprintf(stderr, "❌ Erro de configuração:\n%v\n", err)
		return 1
	}
	if args[0] == "validar" {
		fmt.Fprintf(stdout, "✅ Configuração válida. Endpoint: %s\n", cfg.Backend.Endpoint)
		return 0
	}

	logCfg := cfg.Logging
	logCfg.Format = "console"
	logger.ConfigureTo(stderr, logCfg, "painelctl")

	c := &cli{stdin: bufio.NewReader(stdin), stdout: stdout, stderr: stderr}
	p := painel.New(newAPI(cfg), nil)
	p.Carregar(ctx)

	switch args[0] {
	case "listar":
		p.DefinirBusca(*busca)
		renderTable(stdout, p.Snapshot())
	case "criar":
		p.CriarCom(ctx, *email, *nome, c)
	case "ativar", "inativar":
		if !exigeEmail(c, *email) {
			return 1
		}
		status := usuario.StatusAtivo
		if args[0] == "inativar" {
			status = usuario.StatusInativo
		}
		p.AtualizarStatus(ctx, *email, status, c)
	case "remover":
		if !exigeEmail(c, *email) {
			return 1
		}
		var confirma painel.Confirmador = c
		if *sim {
			confirma = painel.ConfirmaFunc(func(string) bool { return true })
		}
		p.Remover(ctx, *email, confirma, c)
	}

	if c.alertou {
		return 1
	}
	return 0
}

func exigeEmail(c *cli, email string) bool {
	if email == "" {
		c.Alertar(painel.MsgEmailObrigatorio)
		return false
	}
	return true
}

func renderTable(w io.Writer, v painel.Visao) {
	if v.Vazio() {
		fmt.Fprintln(w, "Nenhum usuário encontrado")
	} else {
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Email", "Nome", "HWID", "Status"})
		table.SetAutoFormatHeaders(false)
		for _, u := range v.Usuarios {
			table.Append([]string{ouPadrao(u.Email, "N/A"), ouPadrao(u.Nome, "N/A"), ouPadrao(u.HWID, "–"), string(u.Status)})
		}
		table.Render()
	}
	fmt.Fprintf(w, "Total: %d  Ativos: %d\n", v.Resumo.Total, v.Resumo.Ativos)
}

func ouPadrao(v, padrao string) string {
	if v == "" {
		return padrao
	}
	return v
}
