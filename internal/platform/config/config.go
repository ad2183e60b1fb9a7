// Package config loads wrangler settings using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables read into the configuration.
// WRANGLER_CHUNK_SIZE maps to chunk.size.
const EnvPrefix = "WRANGLER_"

// DefaultFile is loaded when present and no explicit file is given.
const DefaultFile = "configs/wrangler.yaml"

// Default configuration values.
const (
	DefaultChunkSize         = 1_000_000
	DefaultNegative          = -0.05
	DefaultPositive          = 0.05
	DefaultJobTimeout        = 30 * time.Minute
	DefaultLogFileMaxSizeMB  = 100
	DefaultLogFileMaxBackups = 3
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Chunk     ChunkConfig     `koanf:"chunk"`
	NLP       NLPConfig       `koanf:"nlp"`
	Sentiment SentimentConfig `koanf:"sentiment"`
	Store     StoreConfig     `koanf:"store"`
	Server    ServerConfig    `koanf:"server"`
	Jobs      JobsConfig      `koanf:"jobs"`
	Log       LogConfig       `koanf:"log"`
}

// DataConfig locates the corpus directory.
type DataConfig struct {
	Dir         string `koanf:"dir"         validate:"required"`
	Compression string `koanf:"compression" validate:"required,oneof=bz2 gz zst xz lz4"`
}

// ChunkConfig sets the default chunk size.
type ChunkConfig struct {
	Size int `koanf:"size" validate:"required,min=1"`
}

// NLPConfig selects the entity model.
type NLPConfig struct {
	Model string `koanf:"model" validate:"required"`
}

// SentimentConfig holds the inclusive category thresholds.
type SentimentConfig struct {
	Negative float64 `koanf:"negative" validate:"min=-1,max=1"`
	Positive float64 `koanf:"positive" validate:"min=-1,max=1,gtefield=Negative"`
}

// StoreConfig locates the sqlite job database.
type StoreConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr            string        `koanf:"addr"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
}

// JobsConfig contains job execution settings.
type JobsConfig struct {
	Timeout   time.Duration `koanf:"timeout"    validate:"required,min=1s"`
	OutputDir string        `koanf:"output_dir" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

func defaults() map[string]any {
	return map[string]any{
		"data.dir":         "Data",
		"data.compression": "bz2",

		"chunk.size": DefaultChunkSize,

		"nlp.model": "default",

		"sentiment.negative": DefaultNegative,
		"sentiment.positive": DefaultPositive,

		"store.path": "pipeline.db",

		"server.addr":             ":8080",
		"server.read_timeout":     "30s",
		"server.shutdown_timeout": "10s",

		"jobs.timeout":    DefaultJobTimeout.String(),
		"jobs.output_dir": "output",

		"log.level":            "info",
		"log.format":           "text",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/wrangler.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,
	}
}

// Load builds the configuration with the following precedence (highest to lowest):
//  1. Environment variables (WRANGLER_ prefix)
//  2. The config file: path when given, else configs/wrangler.yaml if it exists
//  3. Default values
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %q: %w", path, err)
		}
	} else if err := loadFileIfExists(k, DefaultFile); err != nil {
		return nil, fmt.Errorf("loading default config: %w", err)
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, EnvPrefix)),
			"_",
			".",
		)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// loadFileIfExists loads a YAML config file if it exists.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return k.Load(file.Provider(path), yaml.Parser())
}
