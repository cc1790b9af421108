package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mlmd/store/internal/accessobject"
	"github.com/mlmd/store/internal/mdtypes"
)

func (b *BoundStore) CreateArtifact(ctx context.Context, a *mdtypes.Artifact) (int64, error) {
	res, err := b.q.ExecContext(ctx,
		`INSERT INTO artifacts (type_id, name, uri, create_time_since_epoch, last_update_time_since_epoch)
		 VALUES (?, ?, ?, ?, ?)`,
		a.TypeID, a.Name, a.URI, a.CreateTimeSinceEpoch, a.LastUpdateTimeSinceEpoch,
	)
	if err != nil {
		return 0, fmt.Errorf("create artifact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create artifact: %w", err)
	}
	if err := writeProperties(ctx, b.q, "artifact_properties", "artifact_id", id, a.Properties, a.CustomProperties); err != nil {
		return 0, err
	}
	return id, nil
}

func (b *BoundStore) UpdateArtifact(ctx context.Context, a *mdtypes.Artifact) error {
	_, err := b.q.ExecContext(ctx,
		`UPDATE artifacts SET name = ?, uri = ?, last_update_time_since_epoch = ? WHERE id = ?`,
		a.Name, a.URI, a.LastUpdateTimeSinceEpoch, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update artifact %d: %w", a.ID, err)
	}
	return writeProperties(ctx, b.q, "artifact_properties", "artifact_id", a.ID, a.Properties, a.CustomProperties)
}

func (b *BoundStore) scanArtifact(ctx context.Context, row *sql.Row) (*mdtypes.Artifact, error) {
	var a mdtypes.Artifact
	var name, uri sql.NullString
	if err := row.Scan(&a.ID, &a.TypeID, &name, &uri, &a.CreateTimeSinceEpoch, &a.LastUpdateTimeSinceEpoch); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan artifact: %w", err)
	}
	if name.Valid {
		a.Name = &name.String
	}
	if uri.Valid {
		a.URI = &uri.String
	}
	props, custom, err := loadProperties(ctx, b.q, "artifact_properties", "artifact_id", a.ID)
	if err != nil {
		return nil, err
	}
	a.Properties, a.CustomProperties = props, custom
	return &a, nil
}

const artifactSelectColumns = `id, type_id, name, uri, create_time_since_epoch, last_update_time_since_epoch`

func (b *BoundStore) FindArtifactsById(ctx context.Context, ids []int64) ([]*mdtypes.Artifact, error) {
	var out []*mdtypes.Artifact
	for _, id := range ids {
		row := b.q.QueryRowContext(ctx, `SELECT `+artifactSelectColumns+` FROM artifacts WHERE id = ?`, id)
		a, err := b.scanArtifact(ctx, row)
		if err != nil {
			return nil, err
		}
		if a != nil {
			out = append(out, a)
		}
	}
	return out, nil
}

func (b *BoundStore) FindArtifactsByURI(ctx context.Context, uris []string) ([]*mdtypes.Artifact, error) {
	if len(uris) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(uris))
	args := make([]any, len(uris))
	for i, u := range uris {
		placeholders[i] = "?"
		args[i] = u
	}
	rows, err := b.q.QueryContext(ctx,
		`SELECT id FROM artifacts WHERE uri IN (`+strings.Join(placeholders, ",")+`)`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("find artifacts by uri: %w", err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	return b.FindArtifactsById(ctx, ids)
}

func (b *BoundStore) FindArtifactsByTypeId(ctx context.Context, typeID int64) ([]*mdtypes.Artifact, error) {
	rows, err := b.q.QueryContext(ctx, `SELECT id FROM artifacts WHERE type_id = ?`, typeID)
	if err != nil {
		return nil, fmt.Errorf("find artifacts by type: %w", err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	return b.FindArtifactsById(ctx, ids)
}

func (b *BoundStore) FindArtifactByTypeIdAndArtifactName(ctx context.Context, typeID int64, name string) (*mdtypes.Artifact, error) {
	row := b.q.QueryRowContext(ctx, `SELECT `+artifactSelectColumns+` FROM artifacts WHERE type_id = ? AND name = ?`, typeID, name)
	return b.scanArtifact(ctx, row)
}

func (b *BoundStore) ListArtifacts(ctx context.Context, opts accessobject.ListOptions) ([]*mdtypes.Artifact, string, error) {
	ids, next, err := listIDs(ctx, b.q, "artifacts", opts)
	if err != nil {
		return nil, "", err
	}
	out, err := b.FindArtifactsById(ctx, ids)
	return out, next, err
}

func (b *BoundStore) FindArtifactsByContext(ctx context.Context, contextID int64) ([]*mdtypes.Artifact, error) {
	rows, err := b.q.QueryContext(ctx, `SELECT artifact_id FROM attributions WHERE context_id = ?`, contextID)
	if err != nil {
		return nil, fmt.Errorf("find artifacts by context: %w", err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	return b.FindArtifactsById(ctx, ids)
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
