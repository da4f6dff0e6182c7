package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/CTAG07/ngramgen/pkg/corpus"
)

// openStore opens the corpus database, creating its directory and schema as needed.
func openStore(path string, logger *slog.Logger) (*sql.DB, *corpus.Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := initDB(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = corpus.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	store, err := corpus.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to prepare corpus store: %w", err)
	}
	store.SetLogger(logger)
	return db, store, nil
}
