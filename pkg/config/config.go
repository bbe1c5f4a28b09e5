package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Session SessionConfig     `yaml:"session"`
	Log     LogConfig         `yaml:"log"`
	Parser  ParserConfig      `yaml:"parser"`
	Eval    EvalConfig        `yaml:"eval"`
	Storage StorageConfig     `yaml:"storage"`
	Sets    map[string]string `yaml:"sets"`
}

type SessionConfig struct {
	ID string `yaml:"id"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ParserConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

type EvalConfig struct {
	// MaxPowerset caps powerset operands. 0 takes the default, -1 lifts the cap.
	MaxPowerset int `yaml:"max_powerset"`
}

type StorageConfig struct {
	// Path of the bolt database; empty keeps sets in memory only.
	Path   string `yaml:"path"`
	Bucket string `yaml:"bucket"`
	Shards int    `yaml:"shards"`
}

// Read loads path, fills in defaults and validates the result.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	cfg.PopulateDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
