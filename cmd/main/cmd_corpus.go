package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCorpusCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage corpus documents stored in the database",
	}

	importCmd := &cobra.Command{
		Use:   "import <name> <file>",
		Short: "Store a text file as a named corpus document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, nil)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)

			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("could not open %s: %w", args[1], err)
			}
			defer func(f *os.File) {
				_ = f.Close()
			}(f)

			db, store, err := openStore(cfg.DatabasePath, logger)
			if err != nil {
				return err
			}
			defer func() {
				store.Close()
				_ = db.Close()
			}()

			if !flags.progress {
				return store.PutReader(cmd.Context(), args[0], f)
			}
			bar := newProgressBar(cmd.ErrOrStderr())
			if info, err := f.Stat(); err == nil {
				bar.SetTotal(info.Size())
			}
			defer bar.Finish()
			return store.PutReader(cmd.Context(), args[0], bar.NewProxyReader(f))
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored corpus documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd, nil)
			if err != nil {
				return err
			}
			db, store, err := openStore(cfg.DatabasePath, newLogger(cmd.ErrOrStderr(), cfg.LogLevel))
			if err != nil {
				return err
			}
			defer func() {
				store.Close()
				_ = db.Close()
			}()

			docs, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NAME\tBYTES\tUPDATED")
			for _, doc := range docs {
				_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\n", doc.Name, doc.Bytes, doc.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		},
	}

	removeCmd := &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a stored corpus document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, nil)
			if err != nil {
				return err
			}
			db, store, err := openStore(cfg.DatabasePath, newLogger(cmd.ErrOrStderr(), cfg.LogLevel))
			if err != nil {
				return err
			}
			defer func() {
				store.Close()
				_ = db.Close()
			}()
			return store.Remove(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(importCmd, listCmd, removeCmd)
	return cmd
}
