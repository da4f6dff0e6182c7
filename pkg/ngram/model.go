package ngram

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrInvalidOrder is returned by Train when the context length is below 1.
var ErrInvalidOrder = errors.New("ngram: context length must be at least 1")

// Model maps contexts of Order() words to the distribution of the word that
// followed them in the training corpus.
type Model struct {
	order    int
	tables   map[string]*FrequencyTable
	contexts []string // first-seen order
	logger   *slog.Logger
}

type trainOptions struct {
	logger *slog.Logger
}

// TrainOption configures Train.
type TrainOption func(*trainOptions)

// WithLogger sets the logger used by the model for training and generation
// records. By default, all logs are discarded.
func WithLogger(logger *slog.Logger) TrainOption {
	return func(o *trainOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Key builds the canonical context key for a run of words.
func Key(words []string) string {
	return strings.Join(words, " ")
}

// Train builds a model of context length n from tokens in a single pass.
// A corpus shorter than n+1 tokens yields a model with no contexts. Tokens
// are used as given; empty strings count as words.
func Train(tokens []string, n int, opts ...TrainOption) (*Model, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidOrder, n)
	}

	options := &trainOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(options)
	}

	m := &Model{
		order:  n,
		tables: make(map[string]*FrequencyTable),
		logger: options.logger,
	}

	for i := 0; i+n < len(tokens); i++ {
		key := Key(tokens[i : i+n])
		next := tokens[i+n]

		if table, ok := m.tables[key]; ok {
			table.Observe(next)
		} else {
			m.tables[key] = NewFrequencyTable(next)
			m.contexts = append(m.contexts, key)
		}
	}

	m.logger.Info("Training completed",
		slog.Int("order", n),
		slog.Int("tokens_processed", len(tokens)),
		slog.Int("contexts", len(m.contexts)),
	)

	return m, nil
}

// Order returns the context length n.
func (m *Model) Order() int { return m.order }

// Len returns the number of distinct contexts.
func (m *Model) Len() int { return len(m.contexts) }

// Contexts returns every context key in the order it was first seen.
func (m *Model) Contexts() []string {
	keys := make([]string, len(m.contexts))
	copy(keys, m.contexts)
	return keys
}

// Table returns a copy of the frequency table for a context key. The model
// itself is never exposed for mutation.
func (m *Model) Table(key string) (*FrequencyTable, bool) {
	t, ok := m.tables[key]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// lookup is the non-copying read used during generation.
func (m *Model) lookup(words []string) (*FrequencyTable, bool) {
	t, ok := m.tables[Key(words)]
	return t, ok
}
