package mdserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mlmd/store/internal/mdstore"
)

// Tools holds the one dependency every handler needs: the facade.
type Tools struct {
	Store *mdstore.Store
}

// New creates a fully configured MCP server with every facade
// operation registered as one tool, the way the teacher's
// internal/server.New wires storage.MetaStore's operations.
func New(store *mdstore.Store) *mcp.Server {
	t := &Tools{Store: store}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "mdstore-mcp",
		Version: "0.1.0",
	}, nil)

	// Type writes
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "put_artifact_type",
		Description: "Create or evolve an artifact type's property schema",
	}, t.PutArtifactType)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "put_execution_type",
		Description: "Create or evolve an execution type's property schema",
	}, t.PutExecutionType)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "put_context_type",
		Description: "Create or evolve a context type's property schema",
	}, t.PutContextType)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "put_types",
		Description: "Create or evolve a batch of artifact, execution, and context types in one call",
	}, t.PutTypes)

	// Type reads
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_artifact_type",
		Description: "Look up an artifact type by name and optional version",
	}, t.GetArtifactType)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_execution_type",
		Description: "Look up an execution type by name and optional version",
	}, t.GetExecutionType)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_context_type",
		Description: "Look up a context type by name and optional version",
	}, t.GetContextType)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_artifact_types_by_id",
		Description: "Look up artifact types by id",
	}, t.GetArtifactTypesByID)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_execution_types_by_id",
		Description: "Look up execution types by id",
	}, t.GetExecutionTypesByID)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_context_types_by_id",
		Description: "Look up context types by id",
	}, t.GetContextTypesByID)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_artifact_types",
		Description: "List every user-defined artifact type",
	}, t.GetArtifactTypes)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_execution_types",
		Description: "List every user-defined execution type",
	}, t.GetExecutionTypes)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_context_types",
		Description: "List every user-defined context type",
	}, t.GetContextTypes)

	// Entity writes
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "put_artifacts",
		Description: "Create or update a batch of artifacts",
	}, t.PutArtifacts)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "put_executions",
		Description: "Create or update a batch of executions",
	}, t.PutExecutions)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "put_contexts",
		Description: "Create or update a batch of contexts",
	}, t.PutContexts)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "put_events",
		Description: "Record a batch of immutable artifact-execution events",
	}, t.PutEvents)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "put_attributions_and_associations",
		Description: "Link a batch of artifacts and executions into contexts",
	}, t.PutAttributionsAndAssociations)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "put_parent_contexts",
		Description: "Link a batch of child contexts under parent contexts",
	}, t.PutParentContexts)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "put_execution",
		Description: "Atomically upsert an execution together with its input/output artifacts, events, and contexts",
	}, t.PutExecution)

	// Entity reads
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_artifacts_by_id",
		Description: "Look up artifacts by id",
	}, t.GetArtifactsByID)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_executions_by_id",
		Description: "Look up executions by id",
	}, t.GetExecutionsByID)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_contexts_by_id",
		Description: "Look up contexts by id",
	}, t.GetContextsByID)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_artifacts_by_uri",
		Description: "Look up artifacts by one or more URIs",
	}, t.GetArtifactsByURI)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_artifacts_by_type",
		Description: "List artifacts of a given type",
	}, t.GetArtifactsByType)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_executions_by_type",
		Description: "List executions of a given type",
	}, t.GetExecutionsByType)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_contexts_by_type",
		Description: "List contexts of a given type",
	}, t.GetContextsByType)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_artifact_by_type_and_name",
		Description: "Look up a single artifact by type and name",
	}, t.GetArtifactByTypeAndName)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_execution_by_type_and_name",
		Description: "Look up a single execution by type and name",
	}, t.GetExecutionByTypeAndName)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_context_by_type_and_name",
		Description: "Look up a single context by type and name",
	}, t.GetContextByTypeAndName)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_artifacts",
		Description: "Page through every artifact, optionally filtered",
	}, t.GetArtifacts)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_executions",
		Description: "Page through every execution, optionally filtered",
	}, t.GetExecutions)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_contexts",
		Description: "Page through every context, optionally filtered",
	}, t.GetContexts)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_events_by_artifact_ids",
		Description: "Look up events touching the given artifacts",
	}, t.GetEventsByArtifactIDs)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_events_by_execution_ids",
		Description: "Look up events touching the given executions",
	}, t.GetEventsByExecutionIDs)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_contexts_by_artifact",
		Description: "List the contexts an artifact is attributed to",
	}, t.GetContextsByArtifact)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_contexts_by_execution",
		Description: "List the contexts an execution is associated with",
	}, t.GetContextsByExecution)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_artifacts_by_context",
		Description: "Page through the artifacts attributed to a context",
	}, t.GetArtifactsByContext)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_executions_by_context",
		Description: "Page through the executions associated with a context",
	}, t.GetExecutionsByContext)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_parent_contexts_by_context",
		Description: "List a context's direct parent contexts",
	}, t.GetParentContextsByContext)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_children_contexts_by_context",
		Description: "List a context's direct child contexts",
	}, t.GetChildrenContextsByContext)

	// Lineage
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_lineage_graph",
		Description: "Walk the bounded artifact/execution lineage graph from a seed query",
	}, t.GetLineageGraph)

	return srv
}
