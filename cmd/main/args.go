package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/CTAG07/ngramgen/pkg/ngram"
)

// ConfigError reports invalid user input detected before any corpus is read.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// isConfigError reports whether err is, or wraps, a ConfigError.
func isConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// applyPositional overrides the generation config with the optional
// positional arguments: [corpus] [n] [seed].
func applyPositional(gen *GenerationConfig, args []string) error {
	if len(args) > 0 {
		gen.CorpusPath = args[0]
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return &ConfigError{Msg: fmt.Sprintf("'n' must be an integer, got %q", args[1])}
		}
		gen.Order = n
	}
	if len(args) > 2 {
		gen.Seed = args[2]
	}
	return nil
}

// seedWords splits a seed sentence on single spaces.
func seedWords(seed string) []string {
	return strings.Split(seed, " ")
}

// validateGeneration checks the settings that must hold before training.
func validateGeneration(gen *GenerationConfig) ([]string, error) {
	if gen.Order < 1 {
		return nil, &ConfigError{Msg: fmt.Sprintf("'n' must be at least 1, got %d", gen.Order)}
	}
	if gen.Count < 0 {
		return nil, &ConfigError{Msg: fmt.Sprintf("count must not be negative, got %d", gen.Count)}
	}
	seed := seedWords(gen.Seed)
	if err := ngram.ValidateSeed(seed, gen.Order); err != nil {
		return nil, &ConfigError{
			Msg: fmt.Sprintf("'seed_sentence' should have at least %d words, but '%s' has length %d", gen.Order, gen.Seed, len(seed)),
			Err: err,
		}
	}
	return seed, nil
}

// parseLogLevel maps a config string to a slog level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLogLevel(level)}))
}
