// Package storage provides the sqlite-backed transaction store. The default
// DSN is :memory:, which keeps the session-scoped, discarded-on-exit contract
// while still exercising the relational schema; a file path may be configured
// explicitly.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"financas/internal/core"
	"financas/internal/store"

	_ "modernc.org/sqlite"
)

// InMemoryDSN is the default database path: a private in-memory database
// that lives exactly as long as the process.
const InMemoryDSN = ":memory:"

type SQLiteRepository struct {
	db         *sql.DB
	queries    *Queries
	categories []string
	generation atomic.Uint64
}

var _ store.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string, categories []string) (*SQLiteRepository, error) {
	inMemory := dbPath == InMemoryDSN
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if inMemory {
		// Each pooled connection would otherwise get its own private
		// in-memory database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{
		db:         db,
		queries:    New(db),
		categories: categories,
	}

	if err := repo.queries.ReplaceCategories(context.Background(), categories); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed categories: %w", err)
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements store.TransactionWriter.
func (r *SQLiteRepository) Append(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(r.categories); err != nil {
		return "", err
	}
	if err := r.queries.CreateTransaction(ctx, t); err != nil {
		return "", fmt.Errorf("create transaction: %w", err)
	}
	r.generation.Add(1)

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", t.ID,
		"kind", string(t.Kind),
		"description", t.Description,
		"amount_cents", t.Amount.Cents,
		"category", t.Category)

	return t.ID, nil
}

// Delete implements store.TransactionDeleter.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.queries.DeleteTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	r.generation.Add(1)
	return nil
}

// List implements store.TransactionLister.
func (r *SQLiteRepository) List(ctx context.Context) ([]core.Transaction, error) {
	txs, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Categories implements store.TaxonomyReader.
func (r *SQLiteRepository) Categories(ctx context.Context) ([]string, error) {
	cats, err := r.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// Reset implements store.Store.
func (r *SQLiteRepository) Reset(ctx context.Context) error {
	if err := r.queries.DeleteAllTransactions(ctx); err != nil {
		return fmt.Errorf("reset transactions: %w", err)
	}
	r.generation.Add(1)
	return nil
}

// Generation implements store.Store.
func (r *SQLiteRepository) Generation() uint64 {
	return r.generation.Load()
}

// Seed appends demonstration records oldest-last so List keeps them in the
// given order.
func (r *SQLiteRepository) Seed(ctx context.Context, txs []core.Transaction) {
	for i := len(txs) - 1; i >= 0; i-- {
		if _, err := r.Append(ctx, txs[i]); err != nil {
			slog.WarnContext(ctx, "Skipping invalid seed record",
				"description", txs[i].Description, "error", err)
		}
	}
}
