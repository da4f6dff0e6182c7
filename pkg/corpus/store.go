package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// ErrDocumentNotFound is returned when a named document is not in the store.
var ErrDocumentNotFound = errors.New("corpus: document not found")

// DocumentInfo describes a stored corpus document without its text.
type DocumentInfo struct {
	Name      string    `json:"name"`
	Bytes     int       `json:"bytes"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetupSchema initializes the corpus tables in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const schemaDocuments = `
CREATE TABLE IF NOT EXISTS corpus_documents (
    doc_id     INTEGER PRIMARY KEY,
    doc_name   TEXT NOT NULL UNIQUE,
    doc_text   TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`
	if _, err := db.Exec(schemaDocuments); err != nil {
		return fmt.Errorf("could not create corpus schema: %w", err)
	}
	return nil
}

// Store keeps raw corpus texts in SQLite so a model can be retrained from
// several named documents without the original files.
type Store struct {
	db         *sql.DB
	stmtPut    *sql.Stmt
	stmtGet    *sql.Stmt
	stmtList   *sql.Stmt
	stmtRemove *sql.Stmt
	logger     *slog.Logger
}

// NewStore prepares the statements used by the store. SetupSchema must have
// been called on db first.
func NewStore(db *sql.DB) (*Store, error) {
	stmtPut, err := db.Prepare(`INSERT INTO corpus_documents (doc_name, doc_text, updated_at) VALUES (?, ?, ?)
ON CONFLICT(doc_name) DO UPDATE SET doc_text = excluded.doc_text, updated_at = excluded.updated_at;`)
	if err != nil {
		return nil, err
	}

	stmtGet, err := db.Prepare(`SELECT doc_text FROM corpus_documents WHERE doc_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtList, err := db.Prepare(`SELECT doc_name, length(CAST(doc_text AS BLOB)), updated_at FROM corpus_documents ORDER BY doc_name;`)
	if err != nil {
		return nil, err
	}

	stmtRemove, err := db.Prepare(`DELETE FROM corpus_documents WHERE doc_name = ?;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:         db,
		stmtPut:    stmtPut,
		stmtGet:    stmtGet,
		stmtList:   stmtList,
		stmtRemove: stmtRemove,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases the prepared statements. The database itself is left open.
func (s *Store) Close() {
	_ = s.stmtPut.Close()
	_ = s.stmtGet.Close()
	_ = s.stmtList.Close()
	_ = s.stmtRemove.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Put stores text under name, replacing any previous document of that name.
func (s *Store) Put(ctx context.Context, name, text string) error {
	if name == "" {
		return errors.New("corpus: document name is required")
	}
	if _, err := s.stmtPut.ExecContext(ctx, name, text, time.Now().Unix()); err != nil {
		return fmt.Errorf("could not store document '%s': %w", name, err)
	}
	s.logger.InfoContext(ctx, "Document stored",
		slog.String("document", name),
		slog.Int("bytes", len(text)),
	)
	return nil
}

// PutReader stores everything read from r under name.
func (s *Store) PutReader(ctx context.Context, name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("could not read document '%s': %w", name, err)
	}
	return s.Put(ctx, name, string(data))
}

// Get returns the text of a document.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	var text string
	err := s.stmtGet.QueryRowContext(ctx, name).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: '%s'", ErrDocumentNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("could not load document '%s': %w", name, err)
	}
	return text, nil
}

// List returns every stored document ordered by name.
func (s *Store) List(ctx context.Context) ([]DocumentInfo, error) {
	rows, err := s.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var docs []DocumentInfo
	for rows.Next() {
		var doc DocumentInfo
		var updated int64
		if err = rows.Scan(&doc.Name, &doc.Bytes, &updated); err != nil {
			return nil, err
		}
		doc.UpdatedAt = time.Unix(updated, 0)
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// Remove deletes a document. Removing a missing document returns
// ErrDocumentNotFound.
func (s *Store) Remove(ctx context.Context, name string) error {
	res, err := s.stmtRemove.ExecContext(ctx, name)
	if err != nil {
		return fmt.Errorf("could not remove document '%s': %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: '%s'", ErrDocumentNotFound, name)
	}
	s.logger.InfoContext(ctx, "Document removed", slog.String("document", name))
	return nil
}

// Tokens loads the named documents and tokenizes them as one corpus, joined
// by newlines in the order given. With no names, every document is used in
// name order.
func (s *Store) Tokens(ctx context.Context, tok Tokenizer, names []string, opts ...ReadOption) ([]string, error) {
	if len(names) == 0 {
		docs, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			names = append(names, doc.Name)
		}
	}

	texts := make([]string, 0, len(names))
	for _, name := range names {
		text, err := s.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		texts = append(texts, strings.TrimSuffix(text, "\n"))
	}

	tokens, err := Read(strings.NewReader(strings.Join(texts, "\n")), tok, opts...)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "Corpus loaded from store",
		slog.Int("documents", len(names)),
		slog.Int("tokens", len(tokens)),
	)
	return tokens, nil
}
