package config

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"gopkg.in/yaml.v3"

	"github.com/raywall/painel-usuarios/envloader"
)

// Prefixo de endpoint que deve ser resolvido no SSM Parameter Store.
const ssmPrefix = "ssm:"

// --- Interfaces para Mocking ---

type S3Downloader interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type DynamoGetter interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

type SecretsGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Loader suporta múltiplas fontes de configuração:
//
//	config.yaml | file://config.yaml
//	s3://bucket/caminho/config.yaml
//	dynamodb://tabela/chave?col=config&pk=id
//	secretsmanager://nome-do-segredo
//
// Os clientes AWS são criados sob demanda, apenas quando a fonte exige.
type Loader struct {
	S3      S3Downloader
	Dynamo  DynamoGetter
	Secrets SecretsGetter
	SSM     ParameterGetter

	validator *ConfigValidator
	awsCfg    *aws.Config
}

// NewLoader cria um Loader com clientes AWS preguiçosos.
func NewLoader() *Loader {
	return &Loader{validator: NewValidator()}
}

// Load é o atalho usado pelos binários.
func Load(ctx context.Context, source string) (*AppConfig, error) {
	return NewLoader().Load(ctx, source)
}

// Load lê a fonte (quando informada), aplica variáveis de ambiente,
// resolve o endpoint no SSM e valida o resultado.
func (l *Loader) Load(ctx context.Context, source string) (*AppConfig, error) {
	var cfg AppConfig

	if source != "" {
		raw, err := l.read(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("falha leitura config (%s): %w", source, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("YAML malformado: %w", err)
		}
	}

	if err := envloader.Load(&cfg); err != nil {
		return nil, fmt.Errorf("falha ao aplicar variáveis de ambiente: %w", err)
	}

	if strings.HasPrefix(cfg.Backend.Endpoint, ssmPrefix) {
		endpoint, err := l.resolveParameter(ctx, cfg.Backend.Region, strings.TrimPrefix(cfg.Backend.Endpoint, ssmPrefix))
		if err != nil {
			return nil, fmt.Errorf("falha ao resolver endpoint no SSM: %w", err)
		}
		cfg.Backend.Endpoint = endpoint
	}

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("validação da configuração falhou: %w", err)
	}

	return &cfg, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	switch {
	case strings.HasPrefix(source, "s3://"):
		if l.S3 == nil {
			cfg, err := l.aws(ctx, "")
			if err != nil {
				return nil, err
			}
			l.S3 = s3.NewFromConfig(cfg)
		}
		return l.loadFromS3(ctx, source)

	case strings.HasPrefix(source, "dynamodb://"):
		if l.Dynamo == nil {
			cfg, err := l.aws(ctx, "")
			if err != nil {
				return nil, err
			}
			l.Dynamo = dynamodb.NewFromConfig(cfg)
		}
		return l.loadFromDynamoDB(ctx, source)

	case strings.HasPrefix(source, "secretsmanager://"):
		if l.Secrets == nil {
			cfg, err := l.aws(ctx, "")
			if err != nil {
				return nil, err
			}
			l.Secrets = secretsmanager.NewFromConfig(cfg)
		}
		return l.loadFromSecretsManager(ctx, source)

	default:
		return os.ReadFile(strings.TrimPrefix(source, "file://"))
	}
}

func (l *Loader) aws(ctx context.Context, region string) (aws.Config, error) {
	if l.awsCfg != nil {
		return *l.awsCfg, nil
	}
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("erro config aws: %w", err)
	}
	l.awsCfg = &cfg
	return cfg, nil
}

func (l *Loader) loadFromS3(ctx context.Context, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("URL S3 inválida: %w", err)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")

	out, err := l.S3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (l *Loader) loadFromDynamoDB(ctx context.Context, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("URL DynamoDB inválida: %w", err)
	}

	tableName := u.Host
	pkValue := strings.TrimPrefix(u.Path, "/")

	colName := u.Query().Get("col")
	if colName == "" {
		colName = "config"
	}
	pkName := u.Query().Get("pk")
	if pkName == "" {
		pkName = "id"
	}

	out, err := l.Dynamo.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			pkName: &types.AttributeValueMemberS{Value: pkValue},
		},
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("item não encontrado no DynamoDB")
	}

	var item map[string]interface{}
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, err
	}

	content, ok := item[colName].(string)
	if !ok || content == "" {
		return nil, fmt.Errorf("coluna '%s' inválida ou vazia no DynamoDB", colName)
	}
	return []byte(content), nil
}

func (l *Loader) loadFromSecretsManager(ctx context.Context, uri string) ([]byte, error) {
	secretID := strings.TrimPrefix(uri, "secretsmanager://")
	if secretID == "" {
		return nil, fmt.Errorf("nome do segredo vazio")
	}

	out, err := l.Secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return nil, fmt.Errorf("erro no SecretsManager: %w", err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("segredo '%s' sem SecretString", secretID)
	}
	// JSON é um subconjunto de YAML, então ambos os formatos funcionam
	return []byte(*out.SecretString), nil
}

func (l *Loader) resolveParameter(ctx context.Context, region, name string) (string, error) {
	if l.SSM == nil {
		cfg, err := l.aws(ctx, region)
		if err != nil {
			return "", err
		}
		l.SSM = ssm.NewFromConfig(cfg)
	}

	out, err := l.SSM.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("erro no SSM GetParameter: %w", err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parâmetro '%s' sem valor", name)
	}
	return *out.Parameter.Value, nil
}
