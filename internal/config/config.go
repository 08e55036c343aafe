// Package config loads the YAML configuration of the ldb tool.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/eigerco/ldb/internal/engine"
	"github.com/eigerco/ldb/pkg/db"
	"github.com/eigerco/ldb/pkg/log"
)

const maxBloomFilterBits = 64

type Config struct {
	Engine string `yaml:"engine"`
	Path   string `yaml:"path"`
	// InMemory ignores Path and opens a throwaway store.
	InMemory bool          `yaml:"in_memory"`
	Options  EngineOptions `yaml:"options"`
	Logger   LoggerConfig  `yaml:"logger"`
}

// EngineOptions mirror db.Options.
type EngineOptions struct {
	CreateIfMissing      bool   `yaml:"create_if_missing"`
	ErrorIfExists        bool   `yaml:"error_if_exists"`
	ParanoidChecks       bool   `yaml:"paranoid_checks"`
	Sync                 bool   `yaml:"sync"`
	CacheCapacity        int    `yaml:"cache_capacity"`
	WriteBufferSize      int    `yaml:"write_buffer_size"`
	MaxOpenFiles         int    `yaml:"max_open_files"`
	BlockSize            int    `yaml:"block_size"`
	BlockRestartInterval int    `yaml:"block_restart_interval"`
	BloomFilterBits      int    `yaml:"bloom_filter_bits"`
	Compression          string `yaml:"compression"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
	// Format is "console" or "json". Empty lets the caller decide.
	Format string `yaml:"format"`
}

// Default returns a config for a pebble database in ./data.
func Default() Config {
	o := db.Default()
	return Config{
		Engine: string(engine.Pebble),
		Path:   "./data",
		Options: EngineOptions{
			CreateIfMissing:      o.CreateIfMissing,
			ErrorIfExists:        o.ErrorIfExists,
			ParanoidChecks:       o.ParanoidChecks,
			Sync:                 o.Sync,
			CacheCapacity:        o.CacheCapacity,
			WriteBufferSize:      o.WriteBufferSize,
			MaxOpenFiles:         o.MaxOpenFiles,
			BlockSize:            o.BlockSize,
			BlockRestartInterval: o.BlockRestartInterval,
			BloomFilterBits:      o.BloomFilterBits,
			Compression:          o.Compression.String(),
		},
		Logger: LoggerConfig{
			Level: "info",
		},
	}
}

// Load reads the config at path over the defaults. A missing file yields
// Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Root.Debug().Str("path", path).Msg("config file not found, using default config")
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c Config) Validate() error {
	if _, err := engine.ParseKind(c.Engine); err != nil {
		return err
	}
	if !c.InMemory && c.Path == "" {
		return errors.New("path is required unless in_memory is set")
	}
	if c.Options.BloomFilterBits < 0 || c.Options.BloomFilterBits > maxBloomFilterBits {
		return fmt.Errorf("bloom_filter_bits must be within [0, %d], got %d", maxBloomFilterBits, c.Options.BloomFilterBits)
	}
	for name, v := range map[string]int{
		"cache_capacity":         c.Options.CacheCapacity,
		"write_buffer_size":      c.Options.WriteBufferSize,
		"max_open_files":         c.Options.MaxOpenFiles,
		"block_size":             c.Options.BlockSize,
		"block_restart_interval": c.Options.BlockRestartInterval,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	if _, err := db.ParseCompression(c.Options.Compression); err != nil {
		return err
	}
	if _, err := log.ParseLogLevel(c.Logger.Level); err != nil {
		return err
	}
	if _, err := log.ParseLoggerType(c.Logger.Format); err != nil {
		return err
	}
	return nil
}

func (c Config) EngineKind() (engine.Kind, error) {
	return engine.ParseKind(c.Engine)
}

// StorePath is the path engines are opened at, empty for in-memory stores.
func (c Config) StorePath() string {
	if c.InMemory {
		return ""
	}
	return c.Path
}

func (c Config) DBOptions() (db.Options, error) {
	compression, err := db.ParseCompression(c.Options.Compression)
	if err != nil {
		return db.Options{}, err
	}
	return db.Options{
		CreateIfMissing:      c.Options.CreateIfMissing,
		ErrorIfExists:        c.Options.ErrorIfExists,
		ParanoidChecks:       c.Options.ParanoidChecks,
		Sync:                 c.Options.Sync,
		CacheCapacity:        c.Options.CacheCapacity,
		WriteBufferSize:      c.Options.WriteBufferSize,
		MaxOpenFiles:         c.Options.MaxOpenFiles,
		BlockSize:            c.Options.BlockSize,
		BlockRestartInterval: c.Options.BlockRestartInterval,
		BloomFilterBits:      c.Options.BloomFilterBits,
		Compression:          compression,
	}, nil
}

func (c Config) LogOptions() (log.Options, error) {
	level, err := log.ParseLogLevel(c.Logger.Level)
	if err != nil {
		return log.Options{}, err
	}
	typ, err := log.ParseLoggerType(c.Logger.Format)
	if err != nil {
		return log.Options{}, err
	}
	return log.Options{LogLevel: level, Type: typ}, nil
}
