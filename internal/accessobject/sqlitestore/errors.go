package sqlitestore

import (
	"errors"

	"github.com/ncruces/go-sqlite3"
)

// isUniqueViolation reports whether err is a SQLite UNIQUE/PRIMARY KEY
// constraint failure, as opposed to a connectivity error or anything
// else the retry executor should see. Callers translate this into
// mderrors.AlreadyExists at the point where the spec's business
// semantics (not the storage error) decide what that means — a silent
// success for idempotent link inserts, an ABORTED race for context
// reuse, or a hard error for duplicate events.
func isUniqueViolation(err error) bool {
	var serr *sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code()
	return code == sqlite3.CONSTRAINT
}
