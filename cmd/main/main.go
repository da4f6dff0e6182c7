package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/CTAG07/ngramgen/pkg/corpus"
	"github.com/CTAG07/ngramgen/pkg/ngram"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// rootFlags holds the flags shared by every command.
type rootFlags struct {
	configPath string
	logLevel   string
	dbPath     string
	count      int
	maxWords   int
	randSeed   uint64
	tokenizer  string
	normalize  bool
	fromDB     []string
	progress   bool
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "ngramgen [corpus] [n] [seed]",
		Short: "Generate sentences from a word n-gram model",
		Long: `
Train a word n-gram model of context length n on a text corpus and print
sentences sampled from it, each starting with the seed sentence. The seed
must have at least n words.`,
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "ngramgen.json", "configuration file (created with defaults if missing)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&flags.dbPath, "db", "", "corpus database path")
	pf.StringVar(&flags.tokenizer, "tokenizer", "", "corpus tokenizer: literal, fields or regex")
	pf.BoolVar(&flags.normalize, "normalize", false, "apply Unicode NFC normalisation to the corpus")
	pf.StringSliceVar(&flags.fromDB, "from-db", nil, "train on stored documents instead of the corpus file ('*' for all)")
	pf.IntVar(&flags.maxWords, "max-words", 0, "maximum words appended per sentence (0 for no limit)")
	pf.Uint64Var(&flags.randSeed, "rand-seed", 0, "seed for reproducible output")
	pf.BoolVar(&flags.progress, "progress", false, "show a progress bar while reading input")

	cmd.Flags().IntVarP(&flags.count, "count", "c", 0, "number of sentences to print")

	cmd.AddCommand(newCorpusCommand(flags), newServeCommand(flags), newVersionCommand())
	return cmd
}

// load builds the effective configuration: defaults, then the config file,
// then flags that were set explicitly, then positional arguments.
func (f *rootFlags) load(cmd *cobra.Command, args []string) (*Config, error) {
	cfg, err := LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("db") {
		cfg.DatabasePath = f.dbPath
	}
	if changed("tokenizer") {
		cfg.Generation.Tokenizer = f.tokenizer
	}
	if changed("normalize") {
		cfg.Generation.Normalize = f.normalize
	}
	if changed("max-words") {
		cfg.Generation.MaxWords = f.maxWords
	}
	if changed("count") {
		cfg.Generation.Count = f.count
	}

	if err = applyPositional(cfg.Generation, args); err != nil {
		return nil, err
	}
	if _, ok := corpus.TokenizerByName(cfg.Generation.Tokenizer); !ok {
		return nil, &ConfigError{Msg: fmt.Sprintf("unknown tokenizer %q", cfg.Generation.Tokenizer)}
	}
	return cfg, nil
}

// generateOptions maps the configuration onto ngram generation options.
func (f *rootFlags) generateOptions(cmd *cobra.Command, cfg *Config) []ngram.GenerateOption {
	opts := []ngram.GenerateOption{ngram.WithMaxWords(cfg.Generation.MaxWords)}
	if cmd.Flags().Changed("rand-seed") {
		opts = append(opts, ngram.WithSource(ngram.NewSource(f.randSeed)))
	}
	return opts
}

// loadTokens reads the training corpus from the file or the document store.
func (f *rootFlags) loadTokens(ctx context.Context, cfg *Config, logger *slog.Logger, stderr io.Writer) ([]string, error) {
	tok, _ := corpus.TokenizerByName(cfg.Generation.Tokenizer)
	opts := []corpus.ReadOption{corpus.WithNormalization(cfg.Generation.Normalize)}

	if len(f.fromDB) > 0 {
		db, store, err := openStore(cfg.DatabasePath, logger)
		if err != nil {
			return nil, err
		}
		defer func() {
			store.Close()
			_ = db.Close()
		}()

		names := f.fromDB
		if len(names) == 1 && names[0] == "*" {
			names = nil
		}
		return store.Tokens(ctx, tok, names, opts...)
	}

	if f.progress {
		opts = append(opts, corpus.WithProgress(newProgressBar(stderr)))
	}
	return corpus.ReadFile(cfg.Generation.CorpusPath, tok, opts...)
}

// trainModel validates the seed, loads the corpus and trains the model.
func (f *rootFlags) trainModel(cmd *cobra.Command, cfg *Config, logger *slog.Logger) (*ngram.Model, []string, error) {
	seed, err := validateGeneration(cfg.Generation)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := f.loadTokens(cmd.Context(), cfg, logger, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load corpus: %w", err)
	}

	model, err := ngram.Train(tokens, cfg.Generation.Order, ngram.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return model, seed, nil
}

func runGenerate(cmd *cobra.Command, flags *rootFlags, args []string) error {
	cfg, err := flags.load(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	model, seed, err := flags.trainModel(cmd, cfg, logger)
	if err != nil {
		return err
	}

	opts := flags.generateOptions(cmd, cfg)
	out := cmd.OutOrStdout()
	for i := 0; i < cfg.Generation.Count; i++ {
		sentence, err := model.Generate(seed, opts...)
		if err != nil {
			return err
		}
		if _, err = fmt.Fprintln(out, sentence); err != nil {
			return err
		}
	}
	return nil
}

func newProgressBar(w io.Writer) *pb.ProgressBar {
	bar := pb.Full.New(0)
	bar.SetWriter(w)
	bar.Set(pb.Bytes, true)
	return bar.Start()
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ngramgen %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		},
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		if isConfigError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
