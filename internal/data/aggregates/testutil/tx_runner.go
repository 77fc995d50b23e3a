package testutil

import (
	"context"
	"sync"

	"github.com/mthstanley/stockpot/internal/data/aggregates"
	"github.com/mthstanley/stockpot/internal/platform/dbctx"
)

// InjectedTxRunner runs aggregate bodies without a database and lets tests
// inject begin/commit failures. Read and write boundaries are counted apart.
type InjectedTxRunner struct {
	mu sync.Mutex

	FailBegin  error
	FailCommit error

	BeginCalls     int
	ReadBeginCalls int
	CommitCalls    int
	RollbackCalls  int
}

var _ aggregates.TxRunner = (*InjectedTxRunner)(nil)

func (r *InjectedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.BeginCalls++
	r.mu.Unlock()
	return r.run(ctx, fn)
}

func (r *InjectedTxRunner) InReadTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.ReadBeginCalls++
	r.mu.Unlock()
	return r.run(ctx, fn)
}

func (r *InjectedTxRunner) run(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	failBegin, failCommit := r.FailBegin, r.FailCommit
	r.mu.Unlock()

	if failBegin != nil {
		return failBegin
	}
	var err error
	if fn != nil {
		err = fn(dbctx.Context{Ctx: ctx})
	}
	if err == nil {
		err = failCommit
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.RollbackCalls++
		return err
	}
	r.CommitCalls++
	return nil
}
