package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const defaultPath = "/usuarios"

// Config representa a lista de servidores do emulador
type Config []ServerConfig

// Load carrega a configuração do arquivo padrão (emulator.yaml) ou via variável de ambiente.
// Retorna um único servidor vazio na porta 4000 se o arquivo não existir.
func Load() Config {
	path := os.Getenv("EMULATOR_CONFIG_PATH")
	if path == "" {
		path = "emulator.yaml"
	}

	var cfg Config
	if err := cfg.LoadFromFile(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Iniciando emulador sem massa de dados")
		return Config{{Port: 4000, Path: defaultPath}}
	}
	return cfg
}

// LoadFromFile aceita JSON ou YAML, escolhido pela extensão do arquivo.
func (cfg *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("erro ao ler arquivo: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("erro ao parsear yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("erro ao parsear json: %w", err)
		}
	}

	for i := range *cfg {
		if (*cfg)[i].Path == "" {
			(*cfg)[i].Path = defaultPath
		}
		if (*cfg)[i].Port <= 0 {
			return fmt.Errorf("servidor %d sem porta válida", i)
		}
	}
	return nil
}
