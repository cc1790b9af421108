package mdstore

import (
	"context"

	"github.com/mlmd/store/internal/accessobject"
	"github.com/mlmd/store/internal/mderrors"
	"github.com/mlmd/store/internal/mdtypes"
)

// GetArtifactsByID implements §4.G's Get*ByID contract: ids that don't
// resolve are silently dropped rather than erroring.
func GetArtifactsByID(ctx context.Context, ao accessobject.AccessObject, req *GetByIDRequest) (*GetArtifactsResponseSingle, error) {
	artifacts, err := ao.FindArtifactsById(ctx, req.Ids)
	if err != nil {
		return nil, err
	}
	return &GetArtifactsResponseSingle{Artifacts: artifacts}, nil
}

func GetExecutionsByID(ctx context.Context, ao accessobject.AccessObject, req *GetByIDRequest) (*GetExecutionsResponseSingle, error) {
	executions, err := ao.FindExecutionsById(ctx, req.Ids)
	if err != nil {
		return nil, err
	}
	return &GetExecutionsResponseSingle{Executions: executions}, nil
}

func GetContextsByID(ctx context.Context, ao accessobject.AccessObject, req *GetByIDRequest) (*GetContextsResponseSingle, error) {
	contexts, err := ao.FindContextsById(ctx, req.Ids)
	if err != nil {
		return nil, err
	}
	return &GetContextsResponseSingle{Contexts: contexts}, nil
}

// GetArtifactsByURI implements §4.G: the deprecated bare uri scalar
// field must be rejected outright, and the URI list is deduplicated
// before the union query runs.
func GetArtifactsByURI(ctx context.Context, ao accessobject.AccessObject, req *GetArtifactsByURIRequest) (*GetArtifactsResponseSingle, error) {
	if req.DeprecatedURI != nil {
		return nil, mderrors.InvalidArgument("the deprecated uri field is not supported; use uris")
	}
	seen := map[string]bool{}
	var deduped []string
	for _, u := range req.URIs {
		if !seen[u] {
			seen[u] = true
			deduped = append(deduped, u)
		}
	}
	artifacts, err := ao.FindArtifactsByURI(ctx, deduped)
	if err != nil {
		return nil, err
	}
	return &GetArtifactsResponseSingle{Artifacts: artifacts}, nil
}

// resolveTypeID implements the §4.G "first resolve type id; if the
// type does not exist, return empty" step shared by every Get*ByType
// and Get*ByTypeAndName endpoint.
func resolveTypeID(ctx context.Context, ao accessobject.AccessObject, kind mdtypes.TypeKind, req *GetByTypeRequest) (int64, bool, error) {
	return ao.FindTypeIdByNameAndVersion(ctx, kind, req.TypeName, req.TypeVersion)
}

func GetArtifactsByType(ctx context.Context, ao accessobject.AccessObject, req *GetByTypeRequest) (*GetArtifactsResponseSingle, error) {
	typeID, ok, err := resolveTypeID(ctx, ao, mdtypes.TypeKindArtifact, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &GetArtifactsResponseSingle{}, nil
	}
	artifacts, err := ao.FindArtifactsByTypeId(ctx, typeID)
	if err != nil {
		return nil, err
	}
	return &GetArtifactsResponseSingle{Artifacts: artifacts}, nil
}

func GetExecutionsByType(ctx context.Context, ao accessobject.AccessObject, req *GetByTypeRequest) (*GetExecutionsResponseSingle, error) {
	typeID, ok, err := resolveTypeID(ctx, ao, mdtypes.TypeKindExecution, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &GetExecutionsResponseSingle{}, nil
	}
	executions, err := ao.FindExecutionsByTypeId(ctx, typeID)
	if err != nil {
		return nil, err
	}
	return &GetExecutionsResponseSingle{Executions: executions}, nil
}

func GetContextsByType(ctx context.Context, ao accessobject.AccessObject, req *GetByTypeRequest) (*GetContextsResponseSingle, error) {
	typeID, ok, err := resolveTypeID(ctx, ao, mdtypes.TypeKindContext, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &GetContextsResponseSingle{}, nil
	}
	contexts, err := ao.FindContextsByTypeId(ctx, typeID)
	if err != nil {
		return nil, err
	}
	return &GetContextsResponseSingle{Contexts: contexts}, nil
}

func GetArtifactByTypeAndName(ctx context.Context, ao accessobject.AccessObject, req *GetByTypeAndNameRequest) (*GetArtifactResponseSingle, error) {
	typeID, ok, err := resolveTypeID(ctx, ao, mdtypes.TypeKindArtifact, &GetByTypeRequest{TypeName: req.TypeName, TypeVersion: req.TypeVersion})
	if err != nil {
		return nil, err
	}
	if !ok {
		return &GetArtifactResponseSingle{}, nil
	}
	a, err := ao.FindArtifactByTypeIdAndArtifactName(ctx, typeID, req.EntityName)
	if err != nil {
		return nil, err
	}
	return &GetArtifactResponseSingle{Artifact: a}, nil
}

func GetExecutionByTypeAndName(ctx context.Context, ao accessobject.AccessObject, req *GetByTypeAndNameRequest) (*GetExecutionResponseSingle, error) {
	typeID, ok, err := resolveTypeID(ctx, ao, mdtypes.TypeKindExecution, &GetByTypeRequest{TypeName: req.TypeName, TypeVersion: req.TypeVersion})
	if err != nil {
		return nil, err
	}
	if !ok {
		return &GetExecutionResponseSingle{}, nil
	}
	e, err := ao.FindExecutionByTypeIdAndExecutionName(ctx, typeID, req.EntityName)
	if err != nil {
		return nil, err
	}
	return &GetExecutionResponseSingle{Execution: e}, nil
}

func GetContextByTypeAndName(ctx context.Context, ao accessobject.AccessObject, req *GetByTypeAndNameRequest) (*GetContextResponseSingle, error) {
	typeID, ok, err := resolveTypeID(ctx, ao, mdtypes.TypeKindContext, &GetByTypeRequest{TypeName: req.TypeName, TypeVersion: req.TypeVersion})
	if err != nil {
		return nil, err
	}
	if !ok {
		return &GetContextResponseSingle{}, nil
	}
	c, err := ao.FindContextByTypeIdAndContextName(ctx, typeID, req.EntityName)
	if err != nil {
		return nil, err
	}
	return &GetContextResponseSingle{Context: c}, nil
}

// GetArtifacts implements §4.G's list contract: paginate when Options
// is supplied, else return everything with no token.
func GetArtifacts(ctx context.Context, ao accessobject.AccessObject, req *GetArtifactsRequest) (*GetArtifactsResponse, error) {
	if req.Options == nil {
		var artifacts []*mdtypes.Artifact
		opts := accessobject.ListOptions{}
		for {
			page, next, err := ao.ListArtifacts(ctx, opts)
			if err != nil {
				return nil, err
			}
			artifacts = append(artifacts, page...)
			if next == "" {
				break
			}
			opts.NextPageToken = next
		}
		return &GetArtifactsResponse{Artifacts: artifacts}, nil
	}
	artifacts, next, err := ao.ListArtifacts(ctx, *req.Options)
	if err != nil {
		return nil, err
	}
	return &GetArtifactsResponse{Artifacts: artifacts, NextPageToken: next}, nil
}

func GetExecutions(ctx context.Context, ao accessobject.AccessObject, req *GetExecutionsRequest) (*GetExecutionsResponse, error) {
	if req.Options == nil {
		var executions []*mdtypes.Execution
		opts := accessobject.ListOptions{}
		for {
			page, next, err := ao.ListExecutions(ctx, opts)
			if err != nil {
				return nil, err
			}
			executions = append(executions, page...)
			if next == "" {
				break
			}
			opts.NextPageToken = next
		}
		return &GetExecutionsResponse{Executions: executions}, nil
	}
	executions, next, err := ao.ListExecutions(ctx, *req.Options)
	if err != nil {
		return nil, err
	}
	return &GetExecutionsResponse{Executions: executions, NextPageToken: next}, nil
}

func GetContexts(ctx context.Context, ao accessobject.AccessObject, req *GetContextsRequest) (*GetContextsResponse, error) {
	if req.Options == nil {
		var contexts []*mdtypes.Context
		opts := accessobject.ListOptions{}
		for {
			page, next, err := ao.ListContexts(ctx, opts)
			if err != nil {
				return nil, err
			}
			contexts = append(contexts, page...)
			if next == "" {
				break
			}
			opts.NextPageToken = next
		}
		return &GetContextsResponse{Contexts: contexts}, nil
	}
	contexts, next, err := ao.ListContexts(ctx, *req.Options)
	if err != nil {
		return nil, err
	}
	return &GetContextsResponse{Contexts: contexts, NextPageToken: next}, nil
}

func GetEventsByArtifactIDs(ctx context.Context, ao accessobject.AccessObject, req *GetEventsByArtifactIDsRequest) (*GetEventsResponse, error) {
	events, err := ao.FindEventsByArtifacts(ctx, req.ArtifactIds)
	if err != nil {
		return nil, err
	}
	return &GetEventsResponse{Events: events}, nil
}

func GetEventsByExecutionIDs(ctx context.Context, ao accessobject.AccessObject, req *GetEventsByExecutionIDsRequest) (*GetEventsResponse, error) {
	events, err := ao.FindEventsByExecutions(ctx, req.ExecutionIds)
	if err != nil {
		return nil, err
	}
	return &GetEventsResponse{Events: events}, nil
}

func GetContextsByArtifact(ctx context.Context, ao accessobject.AccessObject, req *GetContextsByEntityRequest) (*GetContextsByEntityResponse, error) {
	contexts, err := ao.FindContextsByArtifact(ctx, req.EntityId)
	if err != nil {
		return nil, err
	}
	return &GetContextsByEntityResponse{Contexts: contexts}, nil
}

func GetContextsByExecution(ctx context.Context, ao accessobject.AccessObject, req *GetContextsByEntityRequest) (*GetContextsByEntityResponse, error) {
	contexts, err := ao.FindContextsByExecution(ctx, req.EntityId)
	if err != nil {
		return nil, err
	}
	return &GetContextsByEntityResponse{Contexts: contexts}, nil
}

func GetArtifactsByContext(ctx context.Context, ao accessobject.AccessObject, req *GetEntitiesByContextRequest) (*GetArtifactsByContextResponse, error) {
	if req.Options == nil {
		artifacts, err := ao.FindArtifactsByContext(ctx, req.ContextId)
		if err != nil {
			return nil, err
		}
		return &GetArtifactsByContextResponse{Artifacts: artifacts}, nil
	}
	// The Access Object contract (§6.2) does not expose a paginated
	// by-context listing; paginate in-memory over the full result so
	// callers that pass Options still get a consistent page shape.
	artifacts, err := ao.FindArtifactsByContext(ctx, req.ContextId)
	if err != nil {
		return nil, err
	}
	page, next := paginateArtifacts(artifacts, *req.Options)
	return &GetArtifactsByContextResponse{Artifacts: page, NextPageToken: next}, nil
}

func GetExecutionsByContext(ctx context.Context, ao accessobject.AccessObject, req *GetEntitiesByContextRequest) (*GetExecutionsByContextResponse, error) {
	if req.Options == nil {
		executions, err := ao.FindExecutionsByContext(ctx, req.ContextId)
		if err != nil {
			return nil, err
		}
		return &GetExecutionsByContextResponse{Executions: executions}, nil
	}
	executions, err := ao.FindExecutionsByContext(ctx, req.ContextId)
	if err != nil {
		return nil, err
	}
	page, next := paginateExecutions(executions, *req.Options)
	return &GetExecutionsByContextResponse{Executions: page, NextPageToken: next}, nil
}

func GetParentContextsByContext(ctx context.Context, ao accessobject.AccessObject, req *GetContextsByContextRequest) (*GetContextsByContextResponse, error) {
	contexts, err := ao.FindParentContextsByContextId(ctx, req.ContextId)
	if err != nil {
		return nil, err
	}
	return &GetContextsByContextResponse{Contexts: contexts}, nil
}

// GetChildrenContextsByContext is a supplemented feature (SPEC_FULL.md):
// the natural dual of GetParentContextsByContext, backed directly by
// the Access Object's FindChildContextsByContextId.
func GetChildrenContextsByContext(ctx context.Context, ao accessobject.AccessObject, req *GetContextsByContextRequest) (*GetContextsByContextResponse, error) {
	contexts, err := ao.FindChildContextsByContextId(ctx, req.ContextId)
	if err != nil {
		return nil, err
	}
	return &GetContextsByContextResponse{Contexts: contexts}, nil
}

func paginateArtifacts(all []*mdtypes.Artifact, opts accessobject.ListOptions) ([]*mdtypes.Artifact, string) {
	offset := decodeOffset(opts.NextPageToken)
	size := int(opts.MaxResultSize)
	if size <= 0 || offset >= len(all) {
		if offset >= len(all) {
			return nil, ""
		}
		return all[offset:], ""
	}
	end := offset + size
	if end >= len(all) {
		return all[offset:], ""
	}
	return all[offset:end], encodeOffset(end)
}

func paginateExecutions(all []*mdtypes.Execution, opts accessobject.ListOptions) ([]*mdtypes.Execution, string) {
	offset := decodeOffset(opts.NextPageToken)
	size := int(opts.MaxResultSize)
	if size <= 0 || offset >= len(all) {
		if offset >= len(all) {
			return nil, ""
		}
		return all[offset:], ""
	}
	end := offset + size
	if end >= len(all) {
		return all[offset:], ""
	}
	return all[offset:end], encodeOffset(end)
}
