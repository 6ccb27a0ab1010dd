package config

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockS3 struct {
	GetObjectFunc func(ctx context.Context, params *s3.GetObjectInput) (*s3.GetObjectOutput, error)
}

func (m *mockS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return m.GetObjectFunc(ctx, params)
}

type mockDynamo struct {
	GetItemFunc func(ctx context.Context, params *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return m.GetItemFunc(ctx, params)
}

type mockSecrets struct {
	GetSecretValueFunc func(ctx context.Context, params *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error)
}

func (m *mockSecrets) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	return m.GetSecretValueFunc(ctx, params)
}

type mockSSM struct {
	GetParameterFunc func(ctx context.Context, params *ssm.GetParameterInput) (*ssm.GetParameterOutput, error)
}

func (m *mockSSM) GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	return m.GetParameterFunc(ctx, params)
}

const yamlConfig = `
service:
  name: painel-teste
  port: 9000
backend:
  endpoint: https://api.sizerpro.com/usuarios
  timeout: 3s
logging:
  level: debug
  format: console
`

// limpa variáveis que poderiam vazar do ambiente do desenvolvedor
func clearEnv(t *testing.T) {
	for _, k := range []string{"PAINEL_ENDPOINT", "PAINEL_PORT", "PAINEL_RUNTIME", "PAINEL_NAME", "PAINEL_HTTP_TIMEOUT", "PAINEL_LOG_LEVEL", "PAINEL_LOG_FORMAT", "DD_ENABLED", "DD_AGENT_HOST", "PAINEL_RELOAD_QUEUE"} {
		t.Setenv(k, "")
	}
}

func TestLoader_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "painel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0o600))

	for _, source := range []string{path, "file://" + path} {
		cfg, err := NewLoader().Load(context.Background(), source)
		require.NoError(t, err)

		assert.Equal(t, "painel-teste", cfg.Service.Name)
		assert.Equal(t, 9000, cfg.Service.Port)
		assert.Equal(t, "local", cfg.Service.Runtime)
		assert.Equal(t, "Painel de Usuários", cfg.Service.Title)
		assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
		assert.Equal(t, "debug", cfg.Logging.Level)
	}
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "painel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlConfig), 0o600))

	t.Setenv("PAINEL_ENDPOINT", "http://localhost:4000/usuarios")
	t.Setenv("PAINEL_PORT", "7070")

	cfg, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000/usuarios", cfg.Backend.Endpoint)
	assert.Equal(t, 7070, cfg.Service.Port)
}

func TestLoader_EnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("PAINEL_ENDPOINT", "http://localhost:4000/usuarios")

	cfg, err := NewLoader().Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Service.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, time.Duration(0), cfg.Backend.Timeout)
}

func TestLoader_Errors(t *testing.T) {
	clearEnv(t)

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nao-existe.yaml"))
	assert.ErrorContains(t, err, "falha leitura config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("service: [\n"), 0o600))
	_, err = NewLoader().Load(context.Background(), bad)
	assert.ErrorContains(t, err, "YAML malformado")

	_, err = NewLoader().Load(context.Background(), "")
	assert.ErrorContains(t, err, "validação da configuração falhou")
}

func TestLoader_S3(t *testing.T) {
	clearEnv(t)
	l := NewLoader()
	l.S3 = &mockS3{
		GetObjectFunc: func(ctx context.Context, params *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
			assert.Equal(t, "meu-bucket", *params.Bucket)
			assert.Equal(t, "configs/painel.yaml", *params.Key)
			return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(yamlConfig))}, nil
		},
	}

	cfg, err := l.Load(context.Background(), "s3://meu-bucket/configs/painel.yaml")
	require.NoError(t, err)
	assert.Equal(t, "painel-teste", cfg.Service.Name)
}

func TestLoader_DynamoDB(t *testing.T) {
	clearEnv(t)

	t.Run("Default Columns", func(t *testing.T) {
		l := NewLoader()
		l.Dynamo = &mockDynamo{
			GetItemFunc: func(ctx context.Context, params *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
				assert.Equal(t, "configs", *params.TableName)
				key := params.Key["id"].(*types.AttributeValueMemberS)
				assert.Equal(t, "painel", key.Value)
				return &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
					"id":     &types.AttributeValueMemberS{Value: "painel"},
					"config": &types.AttributeValueMemberS{Value: yamlConfig},
				}}, nil
			},
		}
		cfg, err := l.Load(context.Background(), "dynamodb://configs/painel")
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.Service.Port)
	})

	t.Run("Custom Columns", func(t *testing.T) {
		l := NewLoader()
		l.Dynamo = &mockDynamo{
			GetItemFunc: func(ctx context.Context, params *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
				_, ok := params.Key["app"]
				assert.True(t, ok)
				return &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
					"yaml": &types.AttributeValueMemberS{Value: yamlConfig},
				}}, nil
			},
		}
		_, err := l.Load(context.Background(), "dynamodb://configs/painel?col=yaml&pk=app")
		assert.NoError(t, err)
	})

	t.Run("Item Not Found", func(t *testing.T) {
		l := NewLoader()
		l.Dynamo = &mockDynamo{
			GetItemFunc: func(ctx context.Context, params *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
				return &dynamodb.GetItemOutput{}, nil
			},
		}
		_, err := l.Load(context.Background(), "dynamodb://configs/painel")
		assert.ErrorContains(t, err, "item não encontrado")
	})

	t.Run("Missing Column", func(t *testing.T) {
		l := NewLoader()
		l.Dynamo = &mockDynamo{
			GetItemFunc: func(ctx context.Context, params *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
				return &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: "painel"},
				}}, nil
			},
		}
		_, err := l.Load(context.Background(), "dynamodb://configs/painel")
		assert.ErrorContains(t, err, "coluna 'config'")
	})
}

func TestLoader_SecretsManager(t *testing.T) {
	clearEnv(t)
	l := NewLoader()
	l.Secrets = &mockSecrets{
		GetSecretValueFunc: func(ctx context.Context, params *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
			assert.Equal(t, "painel/prod", *params.SecretId)
			return &secretsmanager.GetSecretValueOutput{
				SecretString: aws.String(`{"backend":{"endpoint":"https://api.sizerpro.com/usuarios"}}`),
			}, nil
		},
	}

	cfg, err := l.Load(context.Background(), "secretsmanager://painel/prod")
	require.NoError(t, err)
	assert.Equal(t, "https://api.sizerpro.com/usuarios", cfg.Backend.Endpoint)

	l.Secrets = &mockSecrets{
		GetSecretValueFunc: func(ctx context.Context, params *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
			return nil, errors.New("AccessDenied")
		},
	}
	_, err = l.Load(context.Background(), "secretsmanager://painel/prod")
	assert.ErrorContains(t, err, "AccessDenied")
}

func TestLoader_SSMEndpoint(t *testing.T) {
	clearEnv(t)
	t.Setenv("PAINEL_ENDPOINT", "ssm:/sizerpro/painel/endpoint")

	l := NewLoader()
	l.SSM = &mockSSM{
		GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput) (*ssm.GetParameterOutput, error) {
			assert.Equal(t, "/sizerpro/painel/endpoint", *params.Name)
			assert.True(t, *params.WithDecryption)
			return &ssm.GetParameterOutput{
				Parameter: &ssmtypes.Parameter{Value: aws.String("https://api.sizerpro.com/usuarios")},
			}, nil
		},
	}

	cfg, err := l.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "https://api.sizerpro.com/usuarios", cfg.Backend.Endpoint)

	l.SSM = &mockSSM{
		GetParameterFunc: func(ctx context.Context, params *ssm.GetParameterInput) (*ssm.GetParameterOutput, error) {
			return &ssm.GetParameterOutput{}, nil
		},
	}
	_, err = l.Load(context.Background(), "")
	assert.ErrorContains(t, err, "sem valor")
}
