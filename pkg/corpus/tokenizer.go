package corpus

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// Tokenizer turns raw corpus text into the word sequence a model is trained on.
type Tokenizer interface {
	Tokenize(r io.Reader) ([]string, error)
}

// maxLineSize raises bufio.Scanner's default 64KiB limit; some corpora are a
// single long line.
const maxLineSize = 16 << 20

func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}

// LiteralTokenizer joins all lines with a single space and splits the result
// on single spaces. Consecutive, leading or trailing spaces produce
// empty-string tokens, which are kept.
type LiteralTokenizer struct{}

// Tokenize implements Tokenizer.
func (LiteralTokenizer) Tokenize(r io.Reader) ([]string, error) {
	scanner := newLineScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return strings.Split(strings.Join(lines, " "), " "), nil
}

// FieldsTokenizer splits on any run of whitespace and never yields empty tokens.
type FieldsTokenizer struct{}

// Tokenize implements Tokenizer.
func (FieldsTokenizer) Tokenize(r io.Reader) ([]string, error) {
	scanner := newLineScanner(r)
	var tokens []string
	for scanner.Scan() {
		tokens = append(tokens, strings.Fields(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// RegexTokenizer extracts every match of a pattern, by default words and
// single punctuation marks, so sentence-ending punctuation becomes its own
// token.
type RegexTokenizer struct {
	pattern *regexp.Regexp
	lower   bool
}

// RegexOption configures a RegexTokenizer.
type RegexOption func(*RegexTokenizer)

// WithPattern sets the regex used to find tokens.
// Default: `[\w']+|[.,!?;]`
func WithPattern(pattern string) RegexOption {
	return func(t *RegexTokenizer) {
		t.pattern = regexp.MustCompile(pattern)
	}
}

// WithLowercase lowercases every token.
func WithLowercase(lower bool) RegexOption {
	return func(t *RegexTokenizer) {
		t.lower = lower
	}
}

// NewRegexTokenizer creates a tokenizer with default settings, which can be
// overridden by providing one or more RegexOption functions.
func NewRegexTokenizer(opts ...RegexOption) *RegexTokenizer {
	t := &RegexTokenizer{
		// Sequences of word characters OR single instances of common punctuation.
		pattern: regexp.MustCompile(`[\w']+|[.,!?;]`),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize implements Tokenizer.
func (t *RegexTokenizer) Tokenize(r io.Reader) ([]string, error) {
	scanner := newLineScanner(r)
	var tokens []string
	for scanner.Scan() {
		line := scanner.Text()
		if t.lower {
			line = strings.ToLower(line)
		}
		tokens = append(tokens, t.pattern.FindAllString(line, -1)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// TokenizerByName maps a configuration name to a Tokenizer. The second return
// value is false for unknown names.
func TokenizerByName(name string) (Tokenizer, bool) {
	switch strings.ToLower(name) {
	case "", "literal":
		return LiteralTokenizer{}, true
	case "fields":
		return FieldsTokenizer{}, true
	case "regex":
		return NewRegexTokenizer(WithLowercase(true)), true
	}
	return nil, false
}
