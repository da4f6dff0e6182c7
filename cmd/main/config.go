package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/natefinch/atomic"
)

// GenerationConfig holds the training and sampling settings for a run.
type GenerationConfig struct {
	CorpusPath string `json:"corpus_path"`
	Order      int    `json:"order"`
	Seed       string `json:"seed"`
	Count      int    `json:"count"`
	MaxWords   int    `json:"max_words"`
	Tokenizer  string `json:"tokenizer"`
	Normalize  bool   `json:"normalize"`
}

// ServerConfig holds the configuration for the HTTP API.
type ServerConfig struct {
	ApiAddr            string `json:"api_addr"`
	MaxSentences       int    `json:"max_sentences"`
	ShutdownTimeoutSec int    `json:"shutdown_timeout_sec"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	LogLevel     string            `json:"log_level"`
	DatabasePath string            `json:"database_path"`
	Generation   *GenerationConfig `json:"generation_config"`
	Server       *ServerConfig     `json:"server_config"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		DatabasePath: "./data/ngramgen.db",
		Generation: &GenerationConfig{
			CorpusPath: "data/sherlock_holmes.txt",
			Order:      2,
			Seed:       "i confess",
			Count:      10,
			MaxWords:   1000,
			Tokenizer:  "literal",
			Normalize:  false,
		},
		Server: &ServerConfig{
			ApiAddr:            ":7280",
			MaxSentences:       100,
			ShutdownTimeoutSec: 10,
		},
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The run can still proceed with defaults.
				slog.Warn("Failed to write default config file", "path", path, "error", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	// Sections missing from the file keep their defaults.
	defaults := DefaultConfig()
	if config.Generation == nil {
		config.Generation = defaults.Generation
	}
	if config.Server == nil {
		config.Server = defaults.Server
	}

	return config, nil
}
