// Package accessobject defines the §6.2 Access Object contract: the
// abstract storage interface the facade (internal/mdstore) is written
// against. The physical backend is out of scope per spec.md §1; this
// package only fixes the shape every backend must expose. A reference
// SQLite binding lives in the sqlitestore subpackage.
package accessobject

import (
	"context"

	"github.com/mlmd/store/internal/mdtypes"
)

// ListOptions carries the opaque pagination/ordering/filter knobs a
// listing request forwards to the backend (§6.3). The facade never
// interprets FilterQuery or NextPageToken on listings it forwards; the
// by-context listings, which the facade pages in memory, use only
// MaxResultSize and the facade's own NextPageToken.
type ListOptions struct {
	MaxResultSize int32
	OrderByField  string
	IsAsc         bool
	NextPageToken string
	FilterQuery   string
}

// LineageStopConditions bounds a lineage traversal (§4.H, §6.3). By
// the time a backend sees this, the facade has already resolved
// MaxNumHops to an in-range value (the "omitted"/negative distinction
// in the request is a facade-level concern, not a storage one).
type LineageStopConditions struct {
	MaxNumHops         int32
	BoundaryArtifacts  string
	BoundaryExecutions string
}

// Subgraph is the induced neighborhood a lineage traversal returns,
// forwarded verbatim as the GetLineageGraph response payload (§4.H).
type Subgraph struct {
	Artifacts    []*mdtypes.Artifact
	Executions   []*mdtypes.Execution
	Events       []*mdtypes.Event
	Contexts     []*mdtypes.Context
	Attributions []*mdtypes.Attribution
	Associations []*mdtypes.Association
}

// AccessObject is the CRUD + lineage-walk surface the facade drives
// inside a single transaction (see internal/txn). Every method
// operates against whatever storage handle the transaction bound it
// to; none of them open or close a transaction themselves.
type AccessObject interface {
	// Schema lifecycle.
	InitMetadataSource(ctx context.Context) error
	InitMetadataSourceIfNotExists(ctx context.Context, enableUpgradeMigration bool) error
	DowngradeMetadataSource(ctx context.Context, toSchemaVersion int32) error

	// Types.
	CreateType(ctx context.Context, t *mdtypes.Type) (int64, error)
	UpdateType(ctx context.Context, t *mdtypes.Type) error
	FindTypeByNameAndVersion(ctx context.Context, kind mdtypes.TypeKind, name string, version *string) (*mdtypes.Type, error)
	FindTypeById(ctx context.Context, kind mdtypes.TypeKind, id int64) (*mdtypes.Type, error)
	FindTypesById(ctx context.Context, kind mdtypes.TypeKind, ids []int64) ([]*mdtypes.Type, error)
	FindTypes(ctx context.Context, kind mdtypes.TypeKind, excludeNames []string) ([]*mdtypes.Type, error)
	FindTypeIdByNameAndVersion(ctx context.Context, kind mdtypes.TypeKind, name string, version *string) (int64, bool, error)
	FindParentTypesByTypeId(ctx context.Context, typeID int64) ([]*mdtypes.Type, error)
	CreateParentTypeInheritanceLink(ctx context.Context, parentTypeID, childTypeID int64) error

	// Artifacts.
	CreateArtifact(ctx context.Context, a *mdtypes.Artifact) (int64, error)
	UpdateArtifact(ctx context.Context, a *mdtypes.Artifact) error
	FindArtifactsById(ctx context.Context, ids []int64) ([]*mdtypes.Artifact, error)
	FindArtifactsByURI(ctx context.Context, uris []string) ([]*mdtypes.Artifact, error)
	FindArtifactsByTypeId(ctx context.Context, typeID int64) ([]*mdtypes.Artifact, error)
	FindArtifactByTypeIdAndArtifactName(ctx context.Context, typeID int64, name string) (*mdtypes.Artifact, error)
	ListArtifacts(ctx context.Context, opts ListOptions) ([]*mdtypes.Artifact, string, error)
	FindArtifactsByContext(ctx context.Context, contextID int64) ([]*mdtypes.Artifact, error)

	// Executions.
	CreateExecution(ctx context.Context, e *mdtypes.Execution) (int64, error)
	UpdateExecution(ctx context.Context, e *mdtypes.Execution) error
	FindExecutionsById(ctx context.Context, ids []int64) ([]*mdtypes.Execution, error)
	FindExecutionsByTypeId(ctx context.Context, typeID int64) ([]*mdtypes.Execution, error)
	FindExecutionByTypeIdAndExecutionName(ctx context.Context, typeID int64, name string) (*mdtypes.Execution, error)
	ListExecutions(ctx context.Context, opts ListOptions) ([]*mdtypes.Execution, string, error)
	FindExecutionsByContext(ctx context.Context, contextID int64) ([]*mdtypes.Execution, error)

	// Contexts.
	CreateContext(ctx context.Context, c *mdtypes.Context) (int64, error)
	UpdateContext(ctx context.Context, c *mdtypes.Context) error
	FindContextsById(ctx context.Context, ids []int64) ([]*mdtypes.Context, error)
	FindContextsByTypeId(ctx context.Context, typeID int64) ([]*mdtypes.Context, error)
	FindContextByTypeIdAndContextName(ctx context.Context, typeID int64, name string) (*mdtypes.Context, error)
	ListContexts(ctx context.Context, opts ListOptions) ([]*mdtypes.Context, string, error)
	FindContextsByArtifact(ctx context.Context, artifactID int64) ([]*mdtypes.Context, error)
	FindContextsByExecution(ctx context.Context, executionID int64) ([]*mdtypes.Context, error)

	// Events.
	CreateEvent(ctx context.Context, e *mdtypes.Event) error
	FindEventsByArtifacts(ctx context.Context, artifactIDs []int64) ([]*mdtypes.Event, error)
	FindEventsByExecutions(ctx context.Context, executionIDs []int64) ([]*mdtypes.Event, error)

	// Links.
	CreateAttribution(ctx context.Context, a *mdtypes.Attribution) error
	CreateAssociation(ctx context.Context, a *mdtypes.Association) error
	CreateParentContext(ctx context.Context, pc *mdtypes.ParentContext) error
	FindParentContextsByContextId(ctx context.Context, contextID int64) ([]*mdtypes.Context, error)
	FindChildContextsByContextId(ctx context.Context, contextID int64) ([]*mdtypes.Context, error)

	// Lineage.
	QueryLineageGraph(ctx context.Context, seeds []*mdtypes.Artifact, maxHops int32, maxNodeSize int32, stop LineageStopConditions) (*Subgraph, error)
}
