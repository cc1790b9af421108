package mdstore

import (
	"context"

	"github.com/mlmd/store/internal/accessobject"
	"github.com/mlmd/store/internal/mderrors"
	"github.com/mlmd/store/internal/mdtypes"
)

// PutExecution implements §4.F: it atomically records one pipeline
// step — its Execution, the artifacts and events it touched, the
// contexts it ran under, and the links tying them together. Every
// step below runs against the same transaction-bound AccessObject;
// any error aborts the whole write.
func PutExecution(ctx context.Context, ao accessobject.AccessObject, req *PutExecutionRequest) (*PutExecutionResponse, error) {
	if req.Execution == nil {
		return nil, mderrors.InvalidArgument("execution is required")
	}

	executionID, err := UpsertExecution(ctx, ao, req.Execution)
	if err != nil {
		return nil, err
	}

	resp := &PutExecutionResponse{ExecutionId: executionID}

	// resp.ArtifactIds stays positionally aligned with
	// req.ArtifactEventPairs: one entry per pair, using the
	// artifactIDUnset sentinel for a pair that carried neither an
	// artifact nor an event. attributedArtifactIDs holds only the real
	// ids, for the attribution-insertion loop below.
	var attributedArtifactIDs []int64
	for _, pair := range req.ArtifactEventPairs {
		artifactID, err := putArtifactEventPair(ctx, ao, executionID, pair)
		if err != nil {
			return nil, err
		}
		resp.ArtifactIds = append(resp.ArtifactIds, artifactID)
		if artifactID != artifactIDUnset {
			attributedArtifactIDs = append(attributedArtifactIDs, artifactID)
		}
	}

	for _, c := range req.Contexts {
		contextID, err := resolveExecutionContext(ctx, ao, c, req.Options.ReuseContextIfAlreadyExist)
		if err != nil {
			return nil, err
		}
		resp.ContextIds = append(resp.ContextIds, contextID)

		if err := InsertAssociationIfNotExist(ctx, ao, &mdtypes.Association{ContextID: contextID, ExecutionID: executionID}); err != nil {
			return nil, err
		}
		for _, artifactID := range attributedArtifactIDs {
			if err := InsertAttributionIfNotExist(ctx, ao, &mdtypes.Attribution{ContextID: contextID, ArtifactID: artifactID}); err != nil {
				return nil, err
			}
		}
	}

	return resp, nil
}

// artifactIDUnset is the placeholder written into
// PutExecutionResponse.ArtifactIds for an ArtifactAndEvent pair that
// carried neither an artifact nor an event, keeping the response list
// positionally aligned with the request's artifact_event_pairs.
const artifactIDUnset = -1

// putArtifactEventPair implements step 2 of §4.F for one
// (optional artifact, optional event) pair, returning the artifact id
// it produced (artifactIDUnset if the pair carried neither an artifact
// nor an event).
func putArtifactEventPair(ctx context.Context, ao accessobject.AccessObject, executionID int64, pair ArtifactAndEvent) (int64, error) {
	if pair.Artifact == nil && pair.Event == nil {
		return artifactIDUnset, nil
	}
	if pair.Artifact == nil && pair.Event.ArtifactID == 0 {
		return artifactIDUnset, mderrors.InvalidArgument("event has no artifact and no artifact_id")
	}
	if pair.Artifact != nil && pair.Event != nil && pair.Event.ArtifactID != 0 && pair.Artifact.ID != 0 && pair.Event.ArtifactID != pair.Artifact.ID {
		return artifactIDUnset, mderrors.InvalidArgument("artifact and event disagree on artifact id")
	}

	var artifactID int64
	if pair.Artifact != nil {
		id, err := UpsertArtifact(ctx, ao, pair.Artifact)
		if err != nil {
			return 0, err
		}
		artifactID = id
	} else {
		artifactID = pair.Event.ArtifactID
	}

	if pair.Event != nil {
		if pair.Event.ExecutionID != 0 && pair.Event.ExecutionID != executionID {
			return 0, mderrors.InvalidArgument("event execution_id does not match this PutExecution's execution")
		}
		pair.Event.ExecutionID = executionID
		pair.Event.ArtifactID = artifactID
		if err := ao.CreateEvent(ctx, pair.Event); err != nil {
			return 0, err
		}
	}

	return artifactID, nil
}

// resolveExecutionContext implements step 3 of §4.F for one Context
// entry, including the reuse-race-to-ABORTED conversion the §9 design
// note calls out.
func resolveExecutionContext(ctx context.Context, ao accessobject.AccessObject, c *mdtypes.Context, reuse bool) (int64, error) {
	if reuse && c.ID == 0 {
		existing, err := ao.FindContextByTypeIdAndContextName(ctx, c.TypeID, c.Name)
		if err != nil {
			return 0, err
		}
		if existing != nil {
			return existing.ID, nil
		}
	}

	id, err := UpsertContext(ctx, ao, c)
	if err != nil {
		if reuse && mderrors.IsAlreadyExists(err) {
			return 0, mderrors.Aborted("context (%d, %q) was concurrently created; retry to reuse", c.TypeID, c.Name)
		}
		return 0, err
	}
	return id, nil
}
