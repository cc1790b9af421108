package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlmd/store/internal/mdtypes"
)

func (b *BoundStore) CreateType(ctx context.Context, t *mdtypes.Type) (int64, error) {
	res, err := b.q.ExecContext(ctx,
		`INSERT INTO types (kind, name, version) VALUES (?, ?, ?)`,
		int(t.Kind), t.Name, t.Version,
	)
	if err != nil {
		return 0, fmt.Errorf("create type %q: %w", t.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create type %q: %w", t.Name, err)
	}
	for name, pt := range t.Properties {
		if _, err := b.q.ExecContext(ctx,
			`INSERT INTO type_properties (type_id, name, data_type) VALUES (?, ?, ?)`,
			id, name, int(pt),
		); err != nil {
			return 0, fmt.Errorf("create type property %q.%q: %w", t.Name, name, err)
		}
	}
	return id, nil
}

// UpdateType persists additive-only schema changes: it inserts
// properties present in t.Properties that are not yet stored. The
// consistency checker (internal/mdstore) is what guarantees by the
// time this is called that nothing is removed or retyped.
func (b *BoundStore) UpdateType(ctx context.Context, t *mdtypes.Type) error {
	for name, pt := range t.Properties {
		_, err := b.q.ExecContext(ctx,
			`INSERT INTO type_properties (type_id, name, data_type) VALUES (?, ?, ?)
			 ON CONFLICT(type_id, name) DO NOTHING`,
			t.ID, name, int(pt),
		)
		if err != nil {
			return fmt.Errorf("update type property %q.%q: %w", t.Name, name, err)
		}
	}
	return nil
}

func (b *BoundStore) loadTypeProperties(ctx context.Context, typeID int64) (map[string]mdtypes.PropertyType, error) {
	rows, err := b.q.QueryContext(ctx, `SELECT name, data_type FROM type_properties WHERE type_id = ?`, typeID)
	if err != nil {
		return nil, fmt.Errorf("load type properties: %w", err)
	}
	defer rows.Close()

	props := map[string]mdtypes.PropertyType{}
	for rows.Next() {
		var name string
		var dt int
		if err := rows.Scan(&name, &dt); err != nil {
			return nil, fmt.Errorf("scan type property: %w", err)
		}
		props[name] = mdtypes.PropertyType(dt)
	}
	return props, rows.Err()
}

func (b *BoundStore) scanType(ctx context.Context, row *sql.Row) (*mdtypes.Type, error) {
	var t mdtypes.Type
	var kind int
	var version sql.NullString
	if err := row.Scan(&t.ID, &kind, &t.Name, &version); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan type: %w", err)
	}
	t.Kind = mdtypes.TypeKind(kind)
	if version.Valid {
		t.Version = &version.String
	}
	props, err := b.loadTypeProperties(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Properties = props
	return &t, nil
}

func (b *BoundStore) FindTypeByNameAndVersion(ctx context.Context, kind mdtypes.TypeKind, name string, version *string) (*mdtypes.Type, error) {
	row := b.q.QueryRowContext(ctx,
		`SELECT id, kind, name, version FROM types WHERE kind = ? AND name = ? AND version IS ?`,
		int(kind), name, version,
	)
	return b.scanType(ctx, row)
}

func (b *BoundStore) FindTypeById(ctx context.Context, kind mdtypes.TypeKind, id int64) (*mdtypes.Type, error) {
	row := b.q.QueryRowContext(ctx,
		`SELECT id, kind, name, version FROM types WHERE kind = ? AND id = ?`,
		int(kind), id,
	)
	return b.scanType(ctx, row)
}

func (b *BoundStore) FindTypesById(ctx context.Context, kind mdtypes.TypeKind, ids []int64) ([]*mdtypes.Type, error) {
	var out []*mdtypes.Type
	for _, id := range ids {
		t, err := b.FindTypeById(ctx, kind, id)
		if err != nil {
			return nil, err
		}
		if t != nil {
			out = append(out, t)
		}
	}
	return out, nil
}

// FindTypes returns all types of kind except those whose name is in
// excludeNames — the seeded simple-types catalog (§6.1 "Get{...}Types
// returns all except the seeded simple types").
func (b *BoundStore) FindTypes(ctx context.Context, kind mdtypes.TypeKind, excludeNames []string) ([]*mdtypes.Type, error) {
	excluded := make(map[string]bool, len(excludeNames))
	for _, n := range excludeNames {
		excluded[n] = true
	}

	rows, err := b.q.QueryContext(ctx, `SELECT id, kind, name, version FROM types WHERE kind = ?`, int(kind))
	if err != nil {
		return nil, fmt.Errorf("find types: %w", err)
	}
	var ids []int64
	var names []string
	for rows.Next() {
		var id int64
		var k int
		var name string
		var version sql.NullString
		if err := rows.Scan(&id, &k, &name, &version); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan type: %w", err)
		}
		ids = append(ids, id)
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var out []*mdtypes.Type
	for i, id := range ids {
		if excluded[names[i]] {
			continue
		}
		t, err := b.FindTypeById(ctx, kind, id)
		if err != nil {
			return nil, err
		}
		if t != nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func (b *BoundStore) FindTypeIdByNameAndVersion(ctx context.Context, kind mdtypes.TypeKind, name string, version *string) (int64, bool, error) {
	row := b.q.QueryRowContext(ctx,
		`SELECT id FROM types WHERE kind = ? AND name = ? AND version IS ?`,
		int(kind), name, version,
	)
	var id int64
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("find type id: %w", err)
	}
	return id, true, nil
}

func (b *BoundStore) FindParentTypesByTypeId(ctx context.Context, typeID int64) ([]*mdtypes.Type, error) {
	rows, err := b.q.QueryContext(ctx,
		`SELECT t.id, t.kind, t.name, t.version FROM parent_types pt
		 JOIN types t ON t.id = pt.parent_type_id
		 WHERE pt.child_type_id = ?`,
		typeID,
	)
	if err != nil {
		return nil, fmt.Errorf("find parent types: %w", err)
	}
	defer rows.Close()

	var out []*mdtypes.Type
	for rows.Next() {
		var t mdtypes.Type
		var kind int
		var version sql.NullString
		if err := rows.Scan(&t.ID, &kind, &t.Name, &version); err != nil {
			return nil, fmt.Errorf("scan parent type: %w", err)
		}
		t.Kind = mdtypes.TypeKind(kind)
		if version.Valid {
			t.Version = &version.String
		}
		props, err := b.loadTypeProperties(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.Properties = props
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (b *BoundStore) CreateParentTypeInheritanceLink(ctx context.Context, parentTypeID, childTypeID int64) error {
	_, err := b.q.ExecContext(ctx,
		`INSERT INTO parent_types (parent_type_id, child_type_id) VALUES (?, ?)
		 ON CONFLICT(parent_type_id, child_type_id) DO NOTHING`,
		parentTypeID, childTypeID,
	)
	if err != nil {
		return fmt.Errorf("create parent type link: %w", err)
	}
	return nil
}
