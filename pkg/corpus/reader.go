package corpus

import (
	"fmt"
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize wraps r so the text it yields is in Unicode NFC. Decomposed and
// precomposed spellings of the same word then produce the same token.
func Normalize(r io.Reader) io.Reader {
	return transform.NewReader(r, norm.NFC)
}

type readOptions struct {
	normalize bool
	bar       *pb.ProgressBar
}

// ReadOption configures ReadFile and Read.
type ReadOption func(*readOptions)

// WithNormalization enables NFC normalisation of the input.
func WithNormalization(enabled bool) ReadOption {
	return func(o *readOptions) { o.normalize = enabled }
}

// WithProgress reports bytes read to bar. ReadFile sets the bar total to the
// file size.
func WithProgress(bar *pb.ProgressBar) ReadOption {
	return func(o *readOptions) { o.bar = bar }
}

// Read tokenizes everything from r.
func Read(r io.Reader, tok Tokenizer, opts ...ReadOption) ([]string, error) {
	options := &readOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.bar != nil {
		r = options.bar.NewProxyReader(r)
	}
	if options.normalize {
		r = Normalize(r)
	}

	tokens, err := tok.Tokenize(r)
	if err != nil {
		return nil, fmt.Errorf("tokenizer error: %w", err)
	}
	return tokens, nil
}

// ReadFile opens path and tokenizes its contents.
func ReadFile(path string, tok Tokenizer, opts ...ReadOption) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open corpus: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	options := &readOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.bar != nil {
		if info, err := f.Stat(); err == nil {
			options.bar.SetTotal(info.Size())
		}
		defer options.bar.Finish()
	}

	return Read(f, tok, opts...)
}
