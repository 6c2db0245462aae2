package store

import (
	"context"
	"errors"

	"financas/internal/core"
)

// ErrNotFound is returned when a delete targets an unknown transaction ID.
var ErrNotFound = errors.New("transaction not found")

// Ports for the transaction store backends.
type (
	TransactionWriter interface {
		// Append inserts the transaction at the head of the collection and
		// returns its ID.
		Append(ctx context.Context, t core.Transaction) (id string, err error)
	}

	TransactionDeleter interface {
		// Delete removes the transaction with the given ID. Irreversible
		// within the session.
		Delete(ctx context.Context, id string) error
	}

	TransactionLister interface {
		// List returns the current collection, newest insertion first.
		List(ctx context.Context) ([]core.Transaction, error)
	}

	TaxonomyReader interface {
		// Categories returns the configured category list.
		Categories(ctx context.Context) ([]string, error)
	}

	// Store is the full session store surface the HTTP layer consumes.
	Store interface {
		TransactionWriter
		TransactionDeleter
		TransactionLister
		TaxonomyReader

		// Reset discards every transaction, returning the store to its
		// session-start state. Called on logout.
		Reset(ctx context.Context) error

		// Generation increases on every mutation; derived-stat caches key
		// on it so they re-derive after any change.
		Generation() uint64
	}
)
