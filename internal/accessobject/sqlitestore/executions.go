package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlmd/store/internal/accessobject"
	"github.com/mlmd/store/internal/mdtypes"
)

func (b *BoundStore) CreateExecution(ctx context.Context, e *mdtypes.Execution) (int64, error) {
	res, err := b.q.ExecContext(ctx,
		`INSERT INTO executions (type_id, name, create_time_since_epoch, last_update_time_since_epoch)
		 VALUES (?, ?, ?, ?)`,
		e.TypeID, e.Name, e.CreateTimeSinceEpoch, e.LastUpdateTimeSinceEpoch,
	)
	if err != nil {
		return 0, fmt.Errorf("create execution: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create execution: %w", err)
	}
	if err := writeProperties(ctx, b.q, "execution_properties", "execution_id", id, e.Properties, e.CustomProperties); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *BoundStore) UpdateExecution(ctx context.Context, e *mdtypes.Execution) error {
	_, err := b.q.ExecContext(ctx,
		`UPDATE executions SET name = ?, last_update_time_since_epoch = ? WHERE id = ?`,
		e.Name, e.LastUpdateTimeSinceEpoch, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update execution %d: %w", e.ID, err)
	}
	return writeProperties(ctx, b.q, "execution_properties", "execution_id", e.ID, e.Properties, e.CustomProperties)
}

const executionSelectColumns = `id, type_id, name, create_time_since_epoch, last_update_time_since_epoch`

func (b *BoundStore) scanExecution(ctx context.Context, row *sql.Row) (*mdtypes.Execution, error) {
	var e mdtypes.Execution
	var name sql.NullString
	if err := row.Scan(&e.ID, &e.TypeID, &name, &e.CreateTimeSinceEpoch, &e.LastUpdateTimeSinceEpoch); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan execution: %w", err)
	}
	if name.Valid {
		e.Name = &name.String
	}
	props, custom, err := loadProperties(ctx, b.q, "execution_properties", "execution_id", e.ID)
	if err != nil {
		return nil, err
	}
	e.Properties, e.CustomProperties = props, custom
	return &e, nil
}

func (b *BoundStore) FindExecutionsById(ctx context.Context, ids []int64) ([]*mdtypes.Execution, error) {
	var out []*mdtypes.Execution
	for _, id := range ids {
		row := b.q.QueryRowContext(ctx, `SELECT `+executionSelectColumns+` FROM executions WHERE id = ?`, id)
		e, err := b.scanExecution(ctx, row)
		if err != nil {
			return nil, err
		}
		if e != nil {
			out = append(out, e)
		}
	}
	return out, nil
}

func (b *BoundStore) FindExecutionsByTypeId(ctx context.Context, typeID int64) ([]*mdtypes.Execution, error) {
	rows, err := b.q.QueryContext(ctx, `SELECT id FROM executions WHERE type_id = ?`, typeID)
	if err != nil {
		return nil, fmt.Errorf("find executions by type: %w", err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	return b.FindExecutionsById(ctx, ids)
}

func (b *BoundStore) FindExecutionByTypeIdAndExecutionName(ctx context.Context, typeID int64, name string) (*mdtypes.Execution, error) {
	row := b.q.QueryRowContext(ctx, `SELECT `+executionSelectColumns+` FROM executions WHERE type_id = ? AND name = ?`, typeID, name)
	return b.scanExecution(ctx, row)
}

func (b *BoundStore) ListExecutions(ctx context.Context, opts accessobject.ListOptions) ([]*mdtypes.Execution, string, error) {
	ids, next, err := listIDs(ctx, b.q, "executions", opts)
	if err != nil {
		return nil, "", err
	}
	out, err := b.FindExecutionsById(ctx, ids)
	return out, next, err
}

func (b *BoundStore) FindExecutionsByContext(ctx context.Context, contextID int64) ([]*mdtypes.Execution, error) {
	rows, err := b.q.QueryContext(ctx, `SELECT execution_id FROM associations WHERE context_id = ?`, contextID)
	if err != nil {
		return nil, fmt.Errorf("find executions by context: %w", err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	return b.FindExecutionsById(ctx, ids)
}
