package mdstore

import (
	"context"

	"github.com/mlmd/store/internal/accessobject"
	"github.com/mlmd/store/internal/mderrors"
	"github.com/mlmd/store/internal/mdtypes"
	"github.com/mlmd/store/internal/txn"
)

// Store is the §4.J Store Facade: it wraps every operation in
// components C through I inside exactly one transaction run by the
// injected txn.Executor. Store owns no storage handle of its own —
// the executor is the sole point of contact with the backend.
type Store struct {
	executor txn.Executor
}

// MigrationOptions mirrors §6.3's MigrationOptions.
// DowngradeToSchemaVersion < 0 means omitted.
type MigrationOptions struct {
	DowngradeToSchemaVersion int32
}

// runInTxn is the one place every Store method funnels through: open
// a transaction via the executor, run fn against its bound
// AccessObject, and surface either its result or its error. Factoring
// this out is what keeps each public method below a single line of
// glue instead of the same three lines of executor plumbing repeated
// thirty times.
func runInTxn[T any](ctx context.Context, s *Store, opts txn.Options, fn func(context.Context, accessobject.AccessObject) (T, error)) (T, error) {
	var result T
	err := s.executor.Execute(ctx, opts, func(ctx context.Context, ao accessobject.AccessObject) error {
		r, err := fn(ctx, ao)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	return result, err
}

// InitMetadataStore initializes the backend unconditionally, then
// seeds the simple-types catalog, per §4.J.
func InitMetadataStore(ctx context.Context, executor txn.Executor) (*Store, error) {
	s := &Store{executor: executor}
	_, err := runInTxn(ctx, s, txn.Options{}, func(ctx context.Context, ao accessobject.AccessObject) (struct{}, error) {
		if err := ao.InitMetadataSource(ctx); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, seedSimpleTypes(ctx, ao)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// InitMetadataStoreIfNotExists is the idempotent variant: it may
// migrate an existing schema upward when enableUpgradeMigration is
// set, and always re-seeds the simple-types catalog afterward.
func InitMetadataStoreIfNotExists(ctx context.Context, executor txn.Executor, enableUpgradeMigration bool) (*Store, error) {
	s := &Store{executor: executor}
	_, err := runInTxn(ctx, s, txn.Options{}, func(ctx context.Context, ao accessobject.AccessObject) (struct{}, error) {
		if err := ao.InitMetadataSourceIfNotExists(ctx, enableUpgradeMigration); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, seedSimpleTypes(ctx, ao)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Open applies migration, the construction-time entry point
// implementing §4.J's downgrade behavior: a non-negative
// DowngradeToSchemaVersion performs the downgrade and then refuses to
// hand back a usable Store, returning CANCELLED instead. Otherwise it
// behaves like InitMetadataStoreIfNotExists(false).
func Open(ctx context.Context, executor txn.Executor, migration MigrationOptions) (*Store, error) {
	if migration.DowngradeToSchemaVersion >= 0 {
		s := &Store{executor: executor}
		_, err := runInTxn(ctx, s, txn.Options{}, func(ctx context.Context, ao accessobject.AccessObject) (struct{}, error) {
			return struct{}{}, ao.DowngradeMetadataSource(ctx, migration.DowngradeToSchemaVersion)
		})
		if err != nil {
			return nil, err
		}
		return nil, mderrors.Cancelled("metadata source downgraded to schema version %d; use an older client", migration.DowngradeToSchemaVersion)
	}
	return InitMetadataStoreIfNotExists(ctx, executor, false)
}

// --- Type writes ---

func (s *Store) PutTypes(ctx context.Context, opts txn.Options, req *PutTypesRequest) (*PutTypesResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*PutTypesResponse, error) {
		return PutTypes(ctx, ao, req)
	})
}

func (s *Store) PutArtifactType(ctx context.Context, opts txn.Options, req *PutTypeRequest) (*PutTypeResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*PutTypeResponse, error) {
		return PutType(ctx, ao, mdtypes.TypeKindArtifact, req)
	})
}

func (s *Store) PutExecutionType(ctx context.Context, opts txn.Options, req *PutTypeRequest) (*PutTypeResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*PutTypeResponse, error) {
		return PutType(ctx, ao, mdtypes.TypeKindExecution, req)
	})
}

func (s *Store) PutContextType(ctx context.Context, opts txn.Options, req *PutTypeRequest) (*PutTypeResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*PutTypeResponse, error) {
		return PutType(ctx, ao, mdtypes.TypeKindContext, req)
	})
}

// --- Type reads ---

func (s *Store) GetArtifactType(ctx context.Context, opts txn.Options, req *GetTypeRequest) (*GetTypeResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetTypeResponse, error) {
		return GetType(ctx, ao, mdtypes.TypeKindArtifact, req)
	})
}

func (s *Store) GetExecutionType(ctx context.Context, opts txn.Options, req *GetTypeRequest) (*GetTypeResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetTypeResponse, error) {
		return GetType(ctx, ao, mdtypes.TypeKindExecution, req)
	})
}

func (s *Store) GetContextType(ctx context.Context, opts txn.Options, req *GetTypeRequest) (*GetTypeResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetTypeResponse, error) {
		return GetType(ctx, ao, mdtypes.TypeKindContext, req)
	})
}

func (s *Store) GetArtifactTypesByID(ctx context.Context, opts txn.Options, req *GetTypesByIDRequest) (*GetTypesByIDResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetTypesByIDResponse, error) {
		return GetTypesByID(ctx, ao, mdtypes.TypeKindArtifact, req)
	})
}

func (s *Store) GetExecutionTypesByID(ctx context.Context, opts txn.Options, req *GetTypesByIDRequest) (*GetTypesByIDResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetTypesByIDResponse, error) {
		return GetTypesByID(ctx, ao, mdtypes.TypeKindExecution, req)
	})
}

func (s *Store) GetContextTypesByID(ctx context.Context, opts txn.Options, req *GetTypesByIDRequest) (*GetTypesByIDResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetTypesByIDResponse, error) {
		return GetTypesByID(ctx, ao, mdtypes.TypeKindContext, req)
	})
}

func (s *Store) GetArtifactTypes(ctx context.Context, opts txn.Options) (*GetTypesResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetTypesResponse, error) {
		return GetTypes(ctx, ao, mdtypes.TypeKindArtifact)
	})
}

func (s *Store) GetExecutionTypes(ctx context.Context, opts txn.Options) (*GetTypesResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetTypesResponse, error) {
		return GetTypes(ctx, ao, mdtypes.TypeKindExecution)
	})
}

func (s *Store) GetContextTypes(ctx context.Context, opts txn.Options) (*GetTypesResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetTypesResponse, error) {
		return GetTypes(ctx, ao, mdtypes.TypeKindContext)
	})
}

// --- Entity writes ---

func (s *Store) PutArtifacts(ctx context.Context, opts txn.Options, req *PutArtifactsRequest) (*PutArtifactsResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*PutArtifactsResponse, error) {
		return PutArtifacts(ctx, ao, req)
	})
}

func (s *Store) PutExecutions(ctx context.Context, opts txn.Options, req *PutExecutionsRequest) (*PutExecutionsResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*PutExecutionsResponse, error) {
		return PutExecutions(ctx, ao, req)
	})
}

func (s *Store) PutContexts(ctx context.Context, opts txn.Options, req *PutContextsRequest) (*PutContextsResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*PutContextsResponse, error) {
		return PutContexts(ctx, ao, req)
	})
}

func (s *Store) PutEvents(ctx context.Context, opts txn.Options, req *PutEventsRequest) (*PutEventsResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*PutEventsResponse, error) {
		return PutEvents(ctx, ao, req)
	})
}

func (s *Store) PutAttributionsAndAssociations(ctx context.Context, opts txn.Options, req *PutAttributionsAndAssociationsRequest) (*PutAttributionsAndAssociationsResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*PutAttributionsAndAssociationsResponse, error) {
		return PutAttributionsAndAssociations(ctx, ao, req)
	})
}

func (s *Store) PutParentContexts(ctx context.Context, opts txn.Options, req *PutParentContextsRequest) (*PutParentContextsResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*PutParentContextsResponse, error) {
		return PutParentContexts(ctx, ao, req)
	})
}

func (s *Store) PutExecution(ctx context.Context, opts txn.Options, req *PutExecutionRequest) (*PutExecutionResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*PutExecutionResponse, error) {
		return PutExecution(ctx, ao, req)
	})
}

// --- Entity reads ---

func (s *Store) GetArtifactsByID(ctx context.Context, opts txn.Options, req *GetByIDRequest) (*GetArtifactsResponseSingle, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetArtifactsResponseSingle, error) {
		return GetArtifactsByID(ctx, ao, req)
	})
}

func (s *Store) GetExecutionsByID(ctx context.Context, opts txn.Options, req *GetByIDRequest) (*GetExecutionsResponseSingle, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetExecutionsResponseSingle, error) {
		return GetExecutionsByID(ctx, ao, req)
	})
}

func (s *Store) GetContextsByID(ctx context.Context, opts txn.Options, req *GetByIDRequest) (*GetContextsResponseSingle, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetContextsResponseSingle, error) {
		return GetContextsByID(ctx, ao, req)
	})
}

func (s *Store) GetArtifactsByURI(ctx context.Context, opts txn.Options, req *GetArtifactsByURIRequest) (*GetArtifactsResponseSingle, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetArtifactsResponseSingle, error) {
		return GetArtifactsByURI(ctx, ao, req)
	})
}

func (s *Store) GetArtifactsByType(ctx context.Context, opts txn.Options, req *GetByTypeRequest) (*GetArtifactsResponseSingle, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetArtifactsResponseSingle, error) {
		return GetArtifactsByType(ctx, ao, req)
	})
}

func (s *Store) GetExecutionsByType(ctx context.Context, opts txn.Options, req *GetByTypeRequest) (*GetExecutionsResponseSingle, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetExecutionsResponseSingle, error) {
		return GetExecutionsByType(ctx, ao, req)
	})
}

func (s *Store) GetContextsByType(ctx context.Context, opts txn.Options, req *GetByTypeRequest) (*GetContextsResponseSingle, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetContextsResponseSingle, error) {
		return GetContextsByType(ctx, ao, req)
	})
}

func (s *Store) GetArtifactByTypeAndName(ctx context.Context, opts txn.Options, req *GetByTypeAndNameRequest) (*GetArtifactResponseSingle, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetArtifactResponseSingle, error) {
		return GetArtifactByTypeAndName(ctx, ao, req)
	})
}

func (s *Store) GetExecutionByTypeAndName(ctx context.Context, opts txn.Options, req *GetByTypeAndNameRequest) (*GetExecutionResponseSingle, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetExecutionResponseSingle, error) {
		return GetExecutionByTypeAndName(ctx, ao, req)
	})
}

func (s *Store) GetContextByTypeAndName(ctx context.Context, opts txn.Options, req *GetByTypeAndNameRequest) (*GetContextResponseSingle, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetContextResponseSingle, error) {
		return GetContextByTypeAndName(ctx, ao, req)
	})
}

func (s *Store) GetArtifacts(ctx context.Context, opts txn.Options, req *GetArtifactsRequest) (*GetArtifactsResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetArtifactsResponse, error) {
		return GetArtifacts(ctx, ao, req)
	})
}

func (s *Store) GetExecutions(ctx context.Context, opts txn.Options, req *GetExecutionsRequest) (*GetExecutionsResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetExecutionsResponse, error) {
		return GetExecutions(ctx, ao, req)
	})
}

func (s *Store) GetContexts(ctx context.Context, opts txn.Options, req *GetContextsRequest) (*GetContextsResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetContextsResponse, error) {
		return GetContexts(ctx, ao, req)
	})
}

func (s *Store) GetEventsByArtifactIDs(ctx context.Context, opts txn.Options, req *GetEventsByArtifactIDsRequest) (*GetEventsResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetEventsResponse, error) {
		return GetEventsByArtifactIDs(ctx, ao, req)
	})
}

func (s *Store) GetEventsByExecutionIDs(ctx context.Context, opts txn.Options, req *GetEventsByExecutionIDsRequest) (*GetEventsResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetEventsResponse, error) {
		return GetEventsByExecutionIDs(ctx, ao, req)
	})
}

func (s *Store) GetContextsByArtifact(ctx context.Context, opts txn.Options, req *GetContextsByEntityRequest) (*GetContextsByEntityResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetContextsByEntityResponse, error) {
		return GetContextsByArtifact(ctx, ao, req)
	})
}

func (s *Store) GetContextsByExecution(ctx context.Context, opts txn.Options, req *GetContextsByEntityRequest) (*GetContextsByEntityResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetContextsByEntityResponse, error) {
		return GetContextsByExecution(ctx, ao, req)
	})
}

func (s *Store) GetArtifactsByContext(ctx context.Context, opts txn.Options, req *GetEntitiesByContextRequest) (*GetArtifactsByContextResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetArtifactsByContextResponse, error) {
		return GetArtifactsByContext(ctx, ao, req)
	})
}

func (s *Store) GetExecutionsByContext(ctx context.Context, opts txn.Options, req *GetEntitiesByContextRequest) (*GetExecutionsByContextResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetExecutionsByContextResponse, error) {
		return GetExecutionsByContext(ctx, ao, req)
	})
}

func (s *Store) GetParentContextsByContext(ctx context.Context, opts txn.Options, req *GetContextsByContextRequest) (*GetContextsByContextResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetContextsByContextResponse, error) {
		return GetParentContextsByContext(ctx, ao, req)
	})
}

func (s *Store) GetChildrenContextsByContext(ctx context.Context, opts txn.Options, req *GetContextsByContextRequest) (*GetContextsByContextResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetContextsByContextResponse, error) {
		return GetChildrenContextsByContext(ctx, ao, req)
	})
}

func (s *Store) GetLineageGraph(ctx context.Context, opts txn.Options, req *GetLineageGraphRequest) (*GetLineageGraphResponse, error) {
	return runInTxn(ctx, s, opts, func(ctx context.Context, ao accessobject.AccessObject) (*GetLineageGraphResponse, error) {
		return GetLineageGraph(ctx, ao, req)
	})
}
