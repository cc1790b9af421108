package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlmd/store/internal/accessobject"
	"github.com/mlmd/store/internal/mderrors"
	"github.com/mlmd/store/internal/mdtypes"
)

// CreateContext surfaces a (type_id, name) unique-constraint violation
// as mderrors.AlreadyExists: internal/mdstore's reuse-context path
// (§4.F step 3, §5 "race resolution via ABORTED") depends on being
// able to tell a genuine reuse race apart from any other storage
// failure.
func (b *BoundStore) CreateContext(ctx context.Context, c *mdtypes.Context) (int64, error) {
	res, err := b.q.ExecContext(ctx,
		`INSERT INTO contexts (type_id, name, create_time_since_epoch, last_update_time_since_epoch)
		 VALUES (?, ?, ?, ?)`,
		c.TypeID, c.Name, c.CreateTimeSinceEpoch, c.LastUpdateTimeSinceEpoch,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, mderrors.AlreadyExists("context (type_id=%d, name=%q) already exists", c.TypeID, c.Name)
		}
		return 0, fmt.Errorf("create context: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create context: %w", err)
	}
	if err := writeProperties(ctx, b.q, "context_properties", "context_id", id, c.Properties, c.CustomProperties); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateContext leaves type_id untouched even if the caller's Context
// carries a different one — Open Question (a) in spec.md §9, resolved
// against allowing type_id drift on update (see SPEC_FULL.md).
func (b *BoundStore) UpdateContext(ctx context.Context, c *mdtypes.Context) error {
	_, err := b.q.ExecContext(ctx,
		`UPDATE contexts SET name = ?, last_update_time_since_epoch = ? WHERE id = ?`,
		c.Name, c.LastUpdateTimeSinceEpoch, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update context %d: %w", c.ID, err)
	}
	return writeProperties(ctx, b.q, "context_properties", "context_id", c.ID, c.Properties, c.CustomProperties)
}

const contextSelectColumns = `id, type_id, name, create_time_since_epoch, last_update_time_since_epoch`

func (b *BoundStore) scanContext(ctx context.Context, row *sql.Row) (*mdtypes.Context, error) {
	var c mdtypes.Context
	if err := row.Scan(&c.ID, &c.TypeID, &c.Name, &c.CreateTimeSinceEpoch, &c.LastUpdateTimeSinceEpoch); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan context: %w", err)
	}
	props, custom, err := loadProperties(ctx, b.q, "context_properties", "context_id", c.ID)
	if err != nil {
		return nil, err
	}
	c.Properties, c.CustomProperties = props, custom
	return &c, nil
}

func (b *BoundStore) FindContextsById(ctx context.Context, ids []int64) ([]*mdtypes.Context, error) {
	var out []*mdtypes.Context
	for _, id := range ids {
		row := b.q.QueryRowContext(ctx, `SELECT `+contextSelectColumns+` FROM contexts WHERE id = ?`, id)
		c, err := b.scanContext(ctx, row)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (b *BoundStore) FindContextsByTypeId(ctx context.Context, typeID int64) ([]*mdtypes.Context, error) {
	rows, err := b.q.QueryContext(ctx, `SELECT id FROM contexts WHERE type_id = ?`, typeID)
	if err != nil {
		return nil, fmt.Errorf("find contexts by type: %w", err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	return b.FindContextsById(ctx, ids)
}

func (b *BoundStore) FindContextByTypeIdAndContextName(ctx context.Context, typeID int64, name string) (*mdtypes.Context, error) {
	row := b.q.QueryRowContext(ctx, `SELECT `+contextSelectColumns+` FROM contexts WHERE type_id = ? AND name = ?`, typeID, name)
	return b.scanContext(ctx, row)
}

func (b *BoundStore) ListContexts(ctx context.Context, opts accessobject.ListOptions) ([]*mdtypes.Context, string, error) {
	ids, next, err := listIDs(ctx, b.q, "contexts", opts)
	if err != nil {
		return nil, "", err
	}
	out, err := b.FindContextsById(ctx, ids)
	return out, next, err
}

func (b *BoundStore) FindContextsByArtifact(ctx context.Context, artifactID int64) ([]*mdtypes.Context, error) {
	rows, err := b.q.QueryContext(ctx, `SELECT context_id FROM attributions WHERE artifact_id = ?`, artifactID)
	if err != nil {
		return nil, fmt.Errorf("find contexts by artifact: %w", err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	return b.FindContextsById(ctx, ids)
}

func (b *BoundStore) FindContextsByExecution(ctx context.Context, executionID int64) ([]*mdtypes.Context, error) {
	rows, err := b.q.QueryContext(ctx, `SELECT context_id FROM associations WHERE execution_id = ?`, executionID)
	if err != nil {
		return nil, fmt.Errorf("find contexts by execution: %w", err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	return b.FindContextsById(ctx, ids)
}
