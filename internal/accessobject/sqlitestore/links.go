package sqlitestore

import (
	"context"
	"fmt"

	"github.com/mlmd/store/internal/mderrors"
	"github.com/mlmd/store/internal/mdtypes"
)

// CreateAttribution and CreateAssociation rely on the tables' composite
// primary keys for set semantics: a duplicate insert fails with a
// unique-constraint violation, surfaced here as mderrors.AlreadyExists
// so internal/mdstore's InsertAttributionIfNotExist/
// InsertAssociationIfNotExist helpers can translate it into a silent
// success (§4.E).

func (b *BoundStore) CreateAttribution(ctx context.Context, a *mdtypes.Attribution) error {
	_, err := b.q.ExecContext(ctx,
		`INSERT INTO attributions (context_id, artifact_id) VALUES (?, ?)`,
		a.ContextID, a.ArtifactID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mderrors.AlreadyExists("attribution (context=%d, artifact=%d) already exists", a.ContextID, a.ArtifactID)
		}
		return fmt.Errorf("create attribution: %w", err)
	}
	return nil
}

func (b *BoundStore) CreateAssociation(ctx context.Context, a *mdtypes.Association) error {
	_, err := b.q.ExecContext(ctx,
		`INSERT INTO associations (context_id, execution_id) VALUES (?, ?)`,
		a.ContextID, a.ExecutionID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mderrors.AlreadyExists("association (context=%d, execution=%d) already exists", a.ContextID, a.ExecutionID)
		}
		return fmt.Errorf("create association: %w", err)
	}
	return nil
}

func (b *BoundStore) CreateParentContext(ctx context.Context, pc *mdtypes.ParentContext) error {
	_, err := b.q.ExecContext(ctx,
		`INSERT INTO parent_contexts (parent_context_id, child_context_id) VALUES (?, ?)`,
		pc.ParentContextID, pc.ChildContextID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mderrors.AlreadyExists("parent context link (%d, %d) already exists", pc.ParentContextID, pc.ChildContextID)
		}
		return fmt.Errorf("create parent context link: %w", err)
	}
	return nil
}

func (b *BoundStore) FindParentContextsByContextId(ctx context.Context, contextID int64) ([]*mdtypes.Context, error) {
	rows, err := b.q.QueryContext(ctx, `SELECT parent_context_id FROM parent_contexts WHERE child_context_id = ?`, contextID)
	if err != nil {
		return nil, fmt.Errorf("find parent contexts: %w", err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	return b.FindContextsById(ctx, ids)
}

func (b *BoundStore) FindChildContextsByContextId(ctx context.Context, contextID int64) ([]*mdtypes.Context, error) {
	rows, err := b.q.QueryContext(ctx, `SELECT child_context_id FROM parent_contexts WHERE parent_context_id = ?`, contextID)
	if err != nil {
		return nil, fmt.Errorf("find child contexts: %w", err)
	}
	ids, err := scanIDs(rows)
	if err != nil {
		return nil, err
	}
	return b.FindContextsById(ctx, ids)
}
