package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/painel-usuarios/pkg/client"
	"github.com/raywall/painel-usuarios/pkg/config"
	"github.com/raywall/painel-usuarios/pkg/painel"
	"github.com/raywall/painel-usuarios/pkg/transport"
)

// backend conta as listagens recebidas
func backend(t *testing.T, lists *int32) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(lists, 1)
		}
		_, _ = w.Write([]byte(`[{"email":{"S":"boot@x.com"},"nome":"Boot","status":{"S":"ativo"}}]`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "painel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_ServerBootstrap(t *testing.T) {
	var lists int32
	srv := backend(t, &lists)
	t.Setenv("PAINEL_ENDPOINT", srv.URL)
	t.Setenv("PAINEL_RUNTIME", "")
	t.Setenv("PAINEL_PORT", "")
	t.Setenv("PAINEL_RELOAD_QUEUE", "")

	path := writeConfig(t, `
service:
  name: boot-test
  runtime: local
  port: 9999
logging:
  level: error
`)

	called := false
	originalStarter := serverStarter
	serverStarter = func(ctx context.Context, addr string, handler http.Handler) error {
		called = true
		assert.Equal(t, ":9999", addr)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Contains(t, rec.Body.String(), "boot@x.com")
		return nil
	}
	defer func() { serverStarter = originalStarter }()

	require.NoError(t, run(context.Background(), path))
	assert.True(t, called, "o servidor HTTP não foi iniciado")
	assert.Equal(t, int32(1), atomic.LoadInt32(&lists))
}

func TestRun_Lambda(t *testing.T) {
	var lists int32
	srv := backend(t, &lists)
	t.Setenv("PAINEL_ENDPOINT", srv.URL)
	t.Setenv("PAINEL_RUNTIME", "lambda")
	t.Setenv("PAINEL_RELOAD_QUEUE", "")

	called := false
	originalStarter := lambdaStarter
	lambdaStarter = func(handler interface{}) {
		_, ok := handler.(func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error))
		called = ok
	}
	defer func() { lambdaStarter = originalStarter }()

	require.NoError(t, run(context.Background(), ""))
	assert.True(t, called)
}

func TestRun_ReloadStarted(t *testing.T) {
	var lists int32
	srv := backend(t, &lists)
	t.Setenv("PAINEL_ENDPOINT", srv.URL)
	t.Setenv("PAINEL_RUNTIME", "local")
	t.Setenv("PAINEL_RELOAD_QUEUE", "https://sqs.us-east-1.amazonaws.com/123/painel-reload")

	started := make(chan transport.Reloader, 1)
	originalReload, originalServer := reloadStarter, serverStarter
	reloadStarter = func(ctx context.Context, cfg *config.AppConfig, r transport.Reloader) { started <- r }
	serverStarter = func(context.Context, string, http.Handler) error { return nil }
	defer func() { reloadStarter, serverStarter = originalReload, originalServer }()

	require.NoError(t, run(context.Background(), ""))
	assert.NotNil(t, <-started)
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("PAINEL_ENDPOINT", "")
	assert.Error(t, run(context.Background(), ""))
}

func TestServe_UnknownRuntime(t *testing.T) {
	err := serve(context.Background(), &config.AppConfig{Service: config.ServiceConf{Runtime: "k8s"}}, http.NotFoundHandler())
	assert.ErrorContains(t, err, "runtime desconhecido")
}

func TestPainelReloader(t *testing.T) {
	var oldLists, newLists int32
	oldSrv, newSrv := backend(t, &oldLists), backend(t, &newLists)

	api := client.New(oldSrv.URL)
	p := painel.New(api, nil)

	r := &painelReloader{
		source: "painel.yaml",
		load: func(ctx context.Context, source string) (*config.AppConfig, error) {
			assert.Equal(t, "painel.yaml", source)
			return &config.AppConfig{Backend: config.BackendConf{Endpoint: newSrv.URL}}, nil
		},
		api:    api,
		painel: p,
	}

	require.NoError(t, r.Reload(context.Background()))
	assert.Equal(t, newSrv.URL, api.Endpoint())
	assert.Equal(t, int32(0), atomic.LoadInt32(&oldLists))
	assert.Equal(t, int32(1), atomic.LoadInt32(&newLists))
	assert.Len(t, p.Snapshot().Usuarios, 1)

	r.load = func(context.Context, string) (*config.AppConfig, error) { return nil, errors.New("yaml inválido") }
	assert.ErrorContains(t, r.Reload(context.Background()), "rejeitada")
	assert.Equal(t, newSrv.URL, api.Endpoint())
}
