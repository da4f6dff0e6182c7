package ngram

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Terminator is the word appended when a context has no recorded
// continuation. It is itself a terminal word, so generation always stops on it.
const Terminator = "."

// DefaultMaxWords bounds the number of words a single generation may append.
const DefaultMaxWords = 1000

// ErrSeedTooShort is returned when the seed has fewer words than the model order.
var ErrSeedTooShort = errors.New("ngram: seed has fewer words than the context length")

// IsTerminal reports whether word ends a sentence.
func IsTerminal(word string) bool {
	switch word {
	case ".", "?", "!":
		return true
	}
	return false
}

// ValidateSeed checks that seed can be used as the starting context of a
// model with context length n.
func ValidateSeed(seed []string, n int) error {
	if len(seed) < n {
		return fmt.Errorf("%w: need at least %d words, got %d", ErrSeedTooShort, n, len(seed))
	}
	return nil
}

type generateOptions struct {
	source   Source
	maxWords int
}

// GenerateOption configures Generate, GenerateWords and GenerateStream.
type GenerateOption func(*generateOptions)

// WithSource sets the random source used for every draw of the call. A source
// shared between concurrent calls must itself be safe for concurrent use.
func WithSource(src Source) GenerateOption {
	return func(o *generateOptions) { o.source = src }
}

// WithMaxWords bounds how many words are appended after the seed. When the
// bound is reached Terminator is appended. Zero removes the bound.
func WithMaxWords(n int) GenerateOption {
	return func(o *generateOptions) { o.maxWords = n }
}

func newGenerateOptions(opts []GenerateOption) *generateOptions {
	options := &generateOptions{maxWords: DefaultMaxWords}
	for _, opt := range opts {
		opt(options)
	}
	if options.source == nil {
		options.source = newCallSource()
	}
	return options
}

// Generate extends seed word by word until a terminal word is appended and
// returns the whole sentence joined by single spaces. The seed slice is not
// modified.
func (m *Model) Generate(seed []string, opts ...GenerateOption) (string, error) {
	words, err := m.GenerateWords(seed, opts...)
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

// GenerateWords is Generate without the final join.
func (m *Model) GenerateWords(seed []string, opts ...GenerateOption) ([]string, error) {
	if err := ValidateSeed(seed, m.order); err != nil {
		return nil, err
	}
	options := newGenerateOptions(opts)

	words := make([]string, len(seed), len(seed)+16)
	copy(words, seed)

	for generated := 0; !IsTerminal(words[len(words)-1]); generated++ {
		if options.maxWords > 0 && generated >= options.maxWords {
			m.logger.Warn("Generation stopped by word limit",
				slog.Int("max_words", options.maxWords),
				slog.Int("order", m.order),
			)
			words = append(words, Terminator)
			break
		}
		words = append(words, m.next(words, options.source))
	}

	m.logger.Debug("Generation completed",
		slog.Int("seed_length", len(seed)),
		slog.Int("generated_length", len(words)-len(seed)),
	)
	return words, nil
}

// next picks the word following the last Order() words of sentence.
func (m *Model) next(sentence []string, src Source) string {
	table, ok := m.lookup(sentence[len(sentence)-m.order:])
	if !ok {
		return Terminator
	}
	return table.Sample(src)
}
