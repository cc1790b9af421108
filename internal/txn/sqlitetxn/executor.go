// Package sqlitetxn is the reference Transaction Executor binding: it
// runs a txn.Closure inside a *sql.Tx opened against a sqlitestore.Store,
// retrying on transient SQLITE_BUSY-class failures the way a
// production caller of the teacher's tx.Begin()/Commit()/Rollback()
// idiom would want to, but that the teacher itself (a single local
// desktop process) never needed to add.
package sqlitetxn

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mlmd/store/internal/accessobject/sqlitestore"
	"github.com/mlmd/store/internal/txn"
)

const (
	defaultMaxRetries   = 3
	defaultRetryBackoff = 5 * time.Millisecond
)

// Executor implements txn.Executor against a sqlitestore.Store.
type Executor struct {
	store *sqlitestore.Store
}

func New(store *sqlitestore.Store) *Executor {
	return &Executor{store: store}
}

func (e *Executor) Execute(ctx context.Context, opts txn.Options, fn txn.Closure) error {
	retries := opts.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}
	backoff := opts.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		err := e.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		lastErr = err
		if !isTransient(err) {
			return err
		}

		correlation := uuid.NewString()
		log.Printf("transaction attempt %d failed transiently (correlation=%s): %v", attempt+1, correlation, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return lastErr
}

func (e *Executor) runOnce(ctx context.Context, fn txn.Closure) error {
	tx, err := e.store.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	ao := sqlitestore.Bind(tx)
	if err := fn(ctx, ao); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// isTransient distinguishes storage-connectivity failures (retry) from
// the facade's own business-level status errors (never retry — a
// second attempt at an ALREADY_EXISTS would just fail the same way,
// except for ABORTED's reuse-race, which the caller — not this
// executor — is expected to retry per §5).
func isTransient(err error) bool {
	if status.Code(err) != codes.Unknown {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "locked") || strings.Contains(msg, "busy") || strings.Contains(msg, "SQLITE_BUSY")
}
