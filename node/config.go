package node

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dotbitHQ/sub-account-custom-script/script"
)

type Config struct {
	DataDir  string `yaml:"data_dir" env:"SUBACCOUNT_DATA_DIR"`
	LogLevel string `yaml:"log_level" env:"SUBACCOUNT_LOG_LEVEL"`
	FeeTable string `yaml:"fee_table" env:"SUBACCOUNT_FEE_TABLE"`
}

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".sub-account-script"
	}
	return filepath.Join(home, ".sub-account-script")
}

func DefaultConfig() Config {
	return Config{
		DataDir:  DefaultDataDir(),
		LogLevel: "info",
		FeeTable: script.FeeTableFromWitness.String(),
	}
}

// LoadConfig layers defaults, the YAML file at path (if any) and SUBACCOUNT_*
// environment variables. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		raw, err := readFileByPath(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config env: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.FeeTable = strings.ToLower(strings.TrimSpace(cfg.FeeTable))
	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.DataDir) == "" {
		return errors.New("data_dir is required")
	}
	logLevel := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, ok := allowedLogLevels[logLevel]; !ok {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	if _, err := script.ParseFeeTableSource(cfg.FeeTable); err != nil {
		return fmt.Errorf("invalid fee_table: %w", err)
	}
	return nil
}

// FeeTableSource returns the parsed fee_table setting. Call after ValidateConfig.
func (c Config) FeeTableSource() script.FeeTableSource {
	s, err := script.ParseFeeTableSource(c.FeeTable)
	if err != nil {
		return script.FeeTableFromWitness
	}
	return s
}

func readFileByPath(path string) ([]byte, error) {
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	if name == "" || name == "." || name == ".." {
		return nil, fmt.Errorf("invalid file name: %q", name)
	}
	return fs.ReadFile(os.DirFS(dir), name)
}
