package sqlitestore

import (
	"context"
	"fmt"
)

// InitMetadataSource creates the schema unconditionally, the way the
// teacher's initProjectDB does for a fresh project database.
func (b *BoundStore) InitMetadataSource(ctx context.Context) error {
	if _, err := b.q.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := b.q.ExecContext(ctx, `DELETE FROM schema_version`); err != nil {
		return fmt.Errorf("reset schema_version: %w", err)
	}
	if _, err := b.q.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, CurrentSchemaVersion); err != nil {
		return fmt.Errorf("set schema_version: %w", err)
	}
	return nil
}

// InitMetadataSourceIfNotExists is idempotent: CREATE TABLE IF NOT
// EXISTS already makes the DDL safe to re-run, so this only adds the
// version bookkeeping when absent. enableUpgradeMigration is accepted
// per the §6.1 contract; physical schema upgrade is a configuration
// knob specified but not designed here (spec.md §1).
func (b *BoundStore) InitMetadataSourceIfNotExists(ctx context.Context, enableUpgradeMigration bool) error {
	if _, err := b.q.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	row := b.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_version`)
	var n int
	if err := row.Scan(&n); err != nil {
		return fmt.Errorf("check schema_version: %w", err)
	}
	if n == 0 {
		if _, err := b.q.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, CurrentSchemaVersion); err != nil {
			return fmt.Errorf("set schema_version: %w", err)
		}
	}
	return nil
}

// DowngradeMetadataSource writes back a lower schema_version marker.
// The caller (internal/mdstore.Store) refuses to hand back a usable
// store after this succeeds, per §4.J.
func (b *BoundStore) DowngradeMetadataSource(ctx context.Context, toSchemaVersion int32) error {
	if _, err := b.q.ExecContext(ctx, `DELETE FROM schema_version`); err != nil {
		return fmt.Errorf("reset schema_version: %w", err)
	}
	if _, err := b.q.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, toSchemaVersion); err != nil {
		return fmt.Errorf("downgrade schema_version: %w", err)
	}
	return nil
}
