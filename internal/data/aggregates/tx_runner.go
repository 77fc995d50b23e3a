package aggregates

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	dbpkg "github.com/mthstanley/stockpot/internal/data/db"
	domainagg "github.com/mthstanley/stockpot/internal/domain/aggregates"
	"github.com/mthstanley/stockpot/internal/platform/dbctx"
)

// TxRunner provides the transaction boundaries used by aggregate reads and writes.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
	// InReadTx runs fn against a single snapshot. Writes inside fn are not expected.
	InReadTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner returns a transaction runner backed by GORM transactions.
func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	return r.run(ctx, fn)
}

func (r *gormTxRunner) InReadTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if r != nil && r.db != nil && dbpkg.IsPostgres(r.db) {
		return r.run(ctx, fn, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}
	return r.run(ctx, fn)
}

func (r *gormTxRunner) run(ctx context.Context, fn func(dbc dbctx.Context) error, opts ...*sql.TxOptions) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return domainagg.NewError(domainagg.CodeInternal, "aggregate.tx", "transaction runner has nil db", nil)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	}, opts...)
}
