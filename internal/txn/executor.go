// Package txn defines the §6.1/§5 Transaction Executor contract: every
// public store operation runs its logic inside exactly one ACID
// transaction, retried according to the executor's policy. The core
// facade (internal/mdstore) depends only on the Executor interface; a
// SQLite-backed implementation lives in the sqlitetxn subpackage.
package txn

import (
	"context"
	"time"

	"github.com/mlmd/store/internal/accessobject"
)

// Options are the caller-supplied transaction knobs (§6.3): retry
// budget and an overall deadline. The zero value means "use the
// executor's defaults".
type Options struct {
	MaxRetries int
	RetryBackoff time.Duration
	Timeout      time.Duration
}

// Closure is the parameterless (save for its two injected arguments)
// unit of work the executor runs inside one transaction. Any returned
// error aborts the transaction; a nil return commits it. No state may
// escape the closure other than through its captured variables — the
// "cross-closure state lives on the stack frame" design note (§9).
type Closure func(ctx context.Context, ao accessobject.AccessObject) error

// Executor runs a Closure inside a single transaction, retrying on
// transient storage errors per its policy. The closure must be
// idempotent-on-retry, which it is by construction across the facade:
// create-or-update semantics plus set-idempotent link inserts.
type Executor interface {
	Execute(ctx context.Context, opts Options, fn Closure) error
}
