package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"ideaforge.app/evaluator/core/db"
	"ideaforge.app/evaluator/internal/store"
)

// StoreProvider exposes the stores a transactional operation may touch.
// Implementations bind every store to the same transaction.
type StoreProvider interface {
	Summaries() store.SummaryStore
	Ideas() store.IdeaStore
}

// TxRunner runs a function against transaction-bound stores. The transaction
// commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

func NewTxRunner(database *db.DB) TxRunner {
	return &dbTxRunner{db: database}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		return fn(store.NewStores(tx))
	})
}
