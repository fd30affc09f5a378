// Package repokit holds the shared seams repo packages build on
// repos see Queryer and TxRunner, never a driver
package repokit

import (
	"context"

	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/store"
	ch "github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/store/ch"
)

// Queryer is the minimal read and write surface for SQL repos
type Queryer = store.RowQuerier

// TxRunner can execute a function inside a transaction
type TxRunner = store.TxRunner

type (
	// Rows is an iterable result set
	Rows = store.Rows

	// Row is one scannable row
	Row = store.Row

	// CommandTag reports what a write statement did
	CommandTag = store.CommandTag
)

// WithTx runs fn inside one transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// PG names the postgres Queryer at a call site without importing a driver
func PG(_ context.Context, q store.RowQuerier) store.RowQuerier { return q }

// TX names the TxRunner the same way
func TX(_ context.Context, tx store.TxRunner) store.TxRunner { return tx }

// CH passes the clickhouse seam through for repos that need columnar reads
func CH(_ context.Context, db *ch.CH) *ch.CH { return db }
