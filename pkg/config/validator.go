package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica).
// Deve ser chamado depois da resolução de referências ssm: no endpoint.
func (cv *ConfigValidator) Validate(cfg *AppConfig) error {
	if err := cv.validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *AppConfig) error {
	u, err := url.Parse(cfg.Backend.Endpoint)
	if err != nil {
		return fmt.Errorf("endpoint inválido: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint deve usar http ou https, recebido '%s'", u.Scheme)
	}

	if cfg.Service.Runtime != "lambda" && (cfg.Service.Port < 1 || cfg.Service.Port > 65535) {
		return fmt.Errorf("porta inválida: %d", cfg.Service.Port)
	}

	if cfg.Backend.Timeout < 0 {
		return fmt.Errorf("timeout não pode ser negativo: %s", cfg.Backend.Timeout)
	}

	return nil
}
