package ngram

import (
	"context"
	"log/slog"
)

// GenerateStream runs the same procedure as Generate but delivers words one at
// a time, seed words first. The channel is closed after the terminal word or
// as soon as ctx is cancelled. Seed validation errors are returned before any
// goroutine is started.
func (m *Model) GenerateStream(ctx context.Context, seed []string, opts ...GenerateOption) (<-chan string, error) {
	if err := ValidateSeed(seed, m.order); err != nil {
		return nil, err
	}
	options := newGenerateOptions(opts)

	window := make([]string, len(seed))
	copy(window, seed)

	wordChan := make(chan string)

	go func() {
		defer close(wordChan)

		emit := func(word string) bool {
			select {
			case <-ctx.Done():
				m.logger.DebugContext(ctx, "Generation stream cancelled by context")
				return false
			case wordChan <- word:
				return true
			}
		}

		for _, w := range window {
			if !emit(w) {
				return
			}
		}

		last := window[len(window)-1]
		for generated := 0; !IsTerminal(last); generated++ {
			if options.maxWords > 0 && generated >= options.maxWords {
				m.logger.WarnContext(ctx, "Generation stopped by word limit",
					slog.Int("max_words", options.maxWords),
					slog.Int("order", m.order),
				)
				emit(Terminator)
				return
			}
			last = m.next(window, options.source)
			if !emit(last) {
				return
			}
			// Only the trailing context is needed for lookups.
			window = append(window[len(window)-m.order+1:], last)
		}
	}()

	return wordChan, nil
}
