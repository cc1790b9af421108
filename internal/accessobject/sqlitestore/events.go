package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mlmd/store/internal/mderrors"
	"github.com/mlmd/store/internal/mdtypes"
)

func encodePath(steps []mdtypes.PathStep) (string, error) {
	b, err := json.Marshal(steps)
	if err != nil {
		return "", fmt.Errorf("encode event path: %w", err)
	}
	return string(b), nil
}

func decodePath(raw string) ([]mdtypes.PathStep, error) {
	var steps []mdtypes.PathStep
	if raw == "" {
		return steps, nil
	}
	if err := json.Unmarshal([]byte(raw), &steps); err != nil {
		return nil, fmt.Errorf("decode event path: %w", err)
	}
	return steps, nil
}

// CreateEvent inserts an immutable artifact-execution edge. A
// duplicate (artifact_id, execution_id, kind, path) is rejected by the
// table's UNIQUE constraint (§3.1 "Duplicate events are rejected at the
// storage layer").
func (b *BoundStore) CreateEvent(ctx context.Context, e *mdtypes.Event) error {
	path, err := encodePath(e.Path)
	if err != nil {
		return err
	}
	_, err = b.q.ExecContext(ctx,
		`INSERT INTO events (artifact_id, execution_id, kind, path, milliseconds_since_epoch) VALUES (?, ?, ?, ?, ?)`,
		e.ArtifactID, e.ExecutionID, int(e.Kind), path, e.MillisSinceEpoch,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mderrors.AlreadyExists("duplicate event (artifact=%d, execution=%d, kind=%d)", e.ArtifactID, e.ExecutionID, e.Kind)
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (b *BoundStore) scanEvents(rows *sql.Rows) ([]*mdtypes.Event, error) {
	defer rows.Close()
	var out []*mdtypes.Event
	for rows.Next() {
		var e mdtypes.Event
		var kind int
		var path string
		if err := rows.Scan(&e.ArtifactID, &e.ExecutionID, &kind, &path, &e.MillisSinceEpoch); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Kind = mdtypes.EventKind(kind)
		steps, err := decodePath(path)
		if err != nil {
			return nil, err
		}
		e.Path = steps
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (b *BoundStore) FindEventsByArtifacts(ctx context.Context, artifactIDs []int64) ([]*mdtypes.Event, error) {
	if len(artifactIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(artifactIDs))
	args := make([]any, len(artifactIDs))
	for i, id := range artifactIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	rows, err := b.q.QueryContext(ctx,
		`SELECT artifact_id, execution_id, kind, path, milliseconds_since_epoch FROM events WHERE artifact_id IN (`+strings.Join(placeholders, ",")+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("find events by artifacts: %w", err)
	}
	return b.scanEvents(rows)
}

func (b *BoundStore) FindEventsByExecutions(ctx context.Context, executionIDs []int64) ([]*mdtypes.Event, error) {
	if len(executionIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(executionIDs))
	args := make([]any, len(executionIDs))
	for i, id := range executionIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	rows, err := b.q.QueryContext(ctx,
		`SELECT artifact_id, execution_id, kind, path, milliseconds_since_epoch FROM events WHERE execution_id IN (`+strings.Join(placeholders, ",")+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("find events by executions: %w", err)
	}
	return b.scanEvents(rows)
}
