package mdstore

import (
	"context"
	"time"

	"github.com/mlmd/store/internal/accessobject"
	"github.com/mlmd/store/internal/mderrors"
	"github.com/mlmd/store/internal/mdtypes"
)

// upsertNamedEntity implements the §4.E create-or-update dispatch
// generically over the three entity variants, per the §9 "variant
// dispatch" design note: one code path, driven by closures supplied by
// each variant's thin wrapper below, instead of three copy-pasted
// upsert functions.
func upsertNamedEntity(ctx context.Context, e mdtypes.NamedEntity, create func(context.Context) (int64, error), update func(context.Context) error) (int64, error) {
	now := time.Now().UnixMilli()
	if e.GetID() == 0 {
		e.SetCreateTime(now)
		e.SetUpdateTime(now)
		id, err := create(ctx)
		if err != nil {
			return 0, err
		}
		e.SetID(id)
		return id, nil
	}

	e.SetUpdateTime(now)
	if err := update(ctx); err != nil {
		return 0, err
	}
	return e.GetID(), nil
}

func UpsertArtifact(ctx context.Context, ao accessobject.AccessObject, a *mdtypes.Artifact) (int64, error) {
	return upsertNamedEntity(ctx, a,
		func(ctx context.Context) (int64, error) { return ao.CreateArtifact(ctx, a) },
		func(ctx context.Context) error { return ao.UpdateArtifact(ctx, a) },
	)
}

func UpsertExecution(ctx context.Context, ao accessobject.AccessObject, e *mdtypes.Execution) (int64, error) {
	return upsertNamedEntity(ctx, e,
		func(ctx context.Context) (int64, error) { return ao.CreateExecution(ctx, e) },
		func(ctx context.Context) error { return ao.UpdateExecution(ctx, e) },
	)
}

// UpsertContext dispatches create-or-update the same way as
// UpsertArtifact/UpsertExecution. Per the §9 Open Question decision,
// an update never changes type_id: sqlitestore.UpdateContext ignores
// whatever the caller put in c.TypeID, silently keeping the stored
// value rather than erroring or applying the change.
func UpsertContext(ctx context.Context, ao accessobject.AccessObject, c *mdtypes.Context) (int64, error) {
	return upsertNamedEntity(ctx, c,
		func(ctx context.Context) (int64, error) { return ao.CreateContext(ctx, c) },
		func(ctx context.Context) error { return ao.UpdateContext(ctx, c) },
	)
}

// InsertAttributionIfNotExist implements §4.E's idempotent link
// insert: create, then swallow already-exists.
func InsertAttributionIfNotExist(ctx context.Context, ao accessobject.AccessObject, a *mdtypes.Attribution) error {
	if err := ao.CreateAttribution(ctx, a); err != nil && !mderrors.IsAlreadyExists(err) {
		return err
	}
	return nil
}

func InsertAssociationIfNotExist(ctx context.Context, ao accessobject.AccessObject, a *mdtypes.Association) error {
	if err := ao.CreateAssociation(ctx, a); err != nil && !mderrors.IsAlreadyExists(err) {
		return err
	}
	return nil
}

func InsertParentContextIfNotExist(ctx context.Context, ao accessobject.AccessObject, pc *mdtypes.ParentContext) error {
	if err := ao.CreateParentContext(ctx, pc); err != nil && !mderrors.IsAlreadyExists(err) {
		return err
	}
	return nil
}

// PutArtifacts upserts each artifact in order. When
// AbortIfLatestUpdatedTimeChanged is set, every artifact that carries
// an id is re-read immediately before its update to detect a
// concurrent modification, and the implementation sleeps 1ms after
// that check (§5 "timestamp monotonicity workaround") so the update's
// timestamp is guaranteed to strictly exceed the value just observed.
// The mismatch itself is FAILED_PRECONDITION, not ABORTED, matching
// `metadata_store.cc`'s `PutArtifacts` (the option name is an
// imperative to the caller, not a claim about the gRPC status it
// surfaces as).
func PutArtifacts(ctx context.Context, ao accessobject.AccessObject, req *PutArtifactsRequest) (*PutArtifactsResponse, error) {
	resp := &PutArtifactsResponse{}
	for _, a := range req.Artifacts {
		if req.Options.AbortIfLatestUpdatedTimeChanged && a.ID != 0 {
			existing, err := ao.FindArtifactsById(ctx, []int64{a.ID})
			if err != nil {
				return nil, err
			}
			if len(existing) == 1 && existing[0].LastUpdateTimeSinceEpoch != a.LastUpdateTimeSinceEpoch {
				return nil, mderrors.FailedPrecondition("artifact %d has a different last_update_time_since_epoch than the stored value", a.ID)
			}
			time.Sleep(time.Millisecond)
		}
		id, err := UpsertArtifact(ctx, ao, a)
		if err != nil {
			return nil, err
		}
		resp.ArtifactIds = append(resp.ArtifactIds, id)
	}
	return resp, nil
}

func PutExecutions(ctx context.Context, ao accessobject.AccessObject, req *PutExecutionsRequest) (*PutExecutionsResponse, error) {
	resp := &PutExecutionsResponse{}
	for _, e := range req.Executions {
		id, err := UpsertExecution(ctx, ao, e)
		if err != nil {
			return nil, err
		}
		resp.ExecutionIds = append(resp.ExecutionIds, id)
	}
	return resp, nil
}

func PutContexts(ctx context.Context, ao accessobject.AccessObject, req *PutContextsRequest) (*PutContextsResponse, error) {
	resp := &PutContextsResponse{}
	for _, c := range req.Contexts {
		id, err := UpsertContext(ctx, ao, c)
		if err != nil {
			return nil, err
		}
		resp.ContextIds = append(resp.ContextIds, id)
	}
	return resp, nil
}

func PutEvents(ctx context.Context, ao accessobject.AccessObject, req *PutEventsRequest) (*PutEventsResponse, error) {
	for _, e := range req.Events {
		if err := ao.CreateEvent(ctx, e); err != nil {
			return nil, err
		}
	}
	return &PutEventsResponse{}, nil
}

func PutAttributionsAndAssociations(ctx context.Context, ao accessobject.AccessObject, req *PutAttributionsAndAssociationsRequest) (*PutAttributionsAndAssociationsResponse, error) {
	for _, a := range req.Attributions {
		if err := InsertAttributionIfNotExist(ctx, ao, a); err != nil {
			return nil, err
		}
	}
	for _, a := range req.Associations {
		if err := InsertAssociationIfNotExist(ctx, ao, a); err != nil {
			return nil, err
		}
	}
	return &PutAttributionsAndAssociationsResponse{}, nil
}

func PutParentContexts(ctx context.Context, ao accessobject.AccessObject, req *PutParentContextsRequest) (*PutParentContextsResponse, error) {
	for _, pc := range req.ParentContexts {
		if err := InsertParentContextIfNotExist(ctx, ao, pc); err != nil {
			return nil, err
		}
	}
	return &PutParentContextsResponse{}, nil
}
