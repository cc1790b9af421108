// Package mdstore implements components C through J of the facade:
// the type consistency checker, type upsert engine, entity upsert
// helpers, composite execution writer, query facade, lineage
// traversal driver, simple-types bootstrap, and the store facade that
// wraps all of it behind a txn.Executor.
package mdstore

import (
	"github.com/mlmd/store/internal/accessobject"
	"github.com/mlmd/store/internal/mdtypes"
)

// --- Type writes (§6.1) ---

type PutTypesRequest struct {
	ArtifactTypes  []*mdtypes.Type
	ExecutionTypes []*mdtypes.Type
	ContextTypes   []*mdtypes.Type
	CanAddFields   bool
	CanOmitFields  bool
	AllFieldsMatch bool
}

type PutTypesResponse struct {
	ArtifactTypeIds  []int64
	ExecutionTypeIds []int64
	ContextTypeIds   []int64
}

type PutTypeRequest struct {
	Type           *mdtypes.Type
	CanAddFields   bool
	CanOmitFields  bool
	AllFieldsMatch bool
}

type PutTypeResponse struct {
	TypeId int64
}

// --- Type reads ---

type GetTypeRequest struct {
	TypeName    string
	TypeVersion *string
}

type GetTypeResponse struct {
	Type *mdtypes.Type
}

type GetTypesByIDRequest struct {
	TypeIds []int64
}

type GetTypesByIDResponse struct {
	Types []*mdtypes.Type
}

type GetTypesRequest struct{}

type GetTypesResponse struct {
	Types []*mdtypes.Type
}

// --- Entity writes ---

type PutArtifactsOptions struct {
	AbortIfLatestUpdatedTimeChanged bool
}

type PutArtifactsRequest struct {
	Artifacts []*mdtypes.Artifact
	Options   PutArtifactsOptions
}

type PutArtifactsResponse struct {
	ArtifactIds []int64
}

type PutExecutionsRequest struct {
	Executions []*mdtypes.Execution
}

type PutExecutionsResponse struct {
	ExecutionIds []int64
}

type PutContextsRequest struct {
	Contexts []*mdtypes.Context
}

type PutContextsResponse struct {
	ContextIds []int64
}

type PutEventsRequest struct {
	Events []*mdtypes.Event
}

type PutEventsResponse struct{}

type PutAttributionsAndAssociationsRequest struct {
	Attributions []*mdtypes.Attribution
	Associations []*mdtypes.Association
}

type PutAttributionsAndAssociationsResponse struct{}

type PutParentContextsRequest struct {
	ParentContexts []*mdtypes.ParentContext
}

type PutParentContextsResponse struct{}

// ArtifactAndEvent is one (optional artifact, optional event) pair in
// a PutExecutionRequest, per §4.F.
type ArtifactAndEvent struct {
	Artifact *mdtypes.Artifact
	Event    *mdtypes.Event
}

type PutExecutionOptions struct {
	ReuseContextIfAlreadyExist bool
}

type PutExecutionRequest struct {
	Execution          *mdtypes.Execution
	ArtifactEventPairs []ArtifactAndEvent
	Contexts           []*mdtypes.Context
	Options            PutExecutionOptions
}

type PutExecutionResponse struct {
	ExecutionId int64
	ArtifactIds []int64
	ContextIds  []int64
}

// --- Entity reads ---

type GetByIDRequest struct {
	Ids []int64
}

type GetArtifactsByURIRequest struct {
	URIs []string
	// DeprecatedURI mirrors the deprecated bare scalar `uri` field
	// (tag #1, §4.G): if a caller sets it, the request is rejected
	// with INVALID_ARGUMENT rather than silently ignored.
	DeprecatedURI *string
}

type GetByTypeRequest struct {
	TypeName    string
	TypeVersion *string
}

type GetByTypeAndNameRequest struct {
	TypeName    string
	TypeVersion *string
	EntityName  string
}

type GetArtifactsRequest struct {
	Options *accessobject.ListOptions
}

type GetArtifactsResponse struct {
	Artifacts     []*mdtypes.Artifact
	NextPageToken string
}

type GetExecutionsRequest struct {
	Options *accessobject.ListOptions
}

type GetExecutionsResponse struct {
	Executions    []*mdtypes.Execution
	NextPageToken string
}

type GetContextsRequest struct {
	Options *accessobject.ListOptions
}

type GetContextsResponse struct {
	Contexts      []*mdtypes.Context
	NextPageToken string
}

type GetArtifactsResponseSingle struct {
	Artifacts []*mdtypes.Artifact
}

type GetExecutionsResponseSingle struct {
	Executions []*mdtypes.Execution
}

type GetContextsResponseSingle struct {
	Contexts []*mdtypes.Context
}

type GetArtifactResponseSingle struct {
	Artifact *mdtypes.Artifact
}

type GetExecutionResponseSingle struct {
	Execution *mdtypes.Execution
}

type GetContextResponseSingle struct {
	Context *mdtypes.Context
}

type GetEventsByArtifactIDsRequest struct {
	ArtifactIds []int64
}

type GetEventsByExecutionIDsRequest struct {
	ExecutionIds []int64
}

type GetEventsResponse struct {
	Events []*mdtypes.Event
}

type GetContextsByEntityRequest struct {
	EntityId int64
}

type GetContextsByEntityResponse struct {
	Contexts []*mdtypes.Context
}

type GetEntitiesByContextRequest struct {
	ContextId int64
	Options   *accessobject.ListOptions
}

type GetArtifactsByContextResponse struct {
	Artifacts     []*mdtypes.Artifact
	NextPageToken string
}

type GetExecutionsByContextResponse struct {
	Executions    []*mdtypes.Execution
	NextPageToken string
}

type GetContextsByContextRequest struct {
	ContextId int64
}

type GetContextsByContextResponse struct {
	Contexts []*mdtypes.Context
}

// --- Lineage ---

// QueryNodesFilter selects the seed artifact set for a lineage walk.
// FilterQuery is opaque to the facade, ferried to the backend's
// ListArtifacts the same way a regular listing filter is.
type QueryNodesFilter struct {
	FilterQuery string
}

// LineageGraphOptions carries the raw, possibly-omitted request-level
// knobs for a lineage walk. MaxNumHops is a pointer because §4.H
// distinguishes three cases the accessobject package's resolved
// LineageStopConditions can't: omitted (nil, use kMax), a valid
// in-range value, and an explicit negative value (INVALID_ARGUMENT).
type LineageGraphOptions struct {
	MaxNumHops         *int32
	BoundaryArtifacts  string
	BoundaryExecutions string
	MaxNodeSize        int32
}

type GetLineageGraphRequest struct {
	QueryNodes *QueryNodesFilter
	Options    LineageGraphOptions
}

type GetLineageGraphResponse struct {
	Subgraph *accessobject.Subgraph
}
