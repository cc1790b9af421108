package mdserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mlmd/store/internal/accessobject"
	"github.com/mlmd/store/internal/mdstore"
	"github.com/mlmd/store/internal/mdtypes"
	"github.com/mlmd/store/internal/txn"
)

// ListOptionsJSON is the wire shape of accessobject.ListOptions (§6.3).
// On the plain listings every field is opaque to the facade and only
// ferried to the backend; the by-context listings are paged in memory
// by the facade and use only max_result_size and next_page_token.
type ListOptionsJSON struct {
	MaxResultSize int32  `json:"max_result_size,omitempty"`
	OrderByField  string `json:"order_by_field,omitempty"`
	IsAsc         bool   `json:"is_asc,omitempty"`
	NextPageToken string `json:"next_page_token,omitempty"`
	FilterQuery   string `json:"filter_query,omitempty"`
}

func listOptionsToDomain(o *ListOptionsJSON) *accessobject.ListOptions {
	if o == nil {
		return nil
	}
	return &accessobject.ListOptions{
		MaxResultSize: o.MaxResultSize,
		OrderByField:  o.OrderByField,
		IsAsc:         o.IsAsc,
		NextPageToken: o.NextPageToken,
		FilterQuery:   o.FilterQuery,
	}
}

// --- Entity writes ---

type PutArtifactsInput struct {
	Artifacts                       []ArtifactJSON `json:"artifacts"`
	AbortIfLatestUpdatedTimeChanged bool           `json:"abort_if_latest_updated_time_changed,omitempty"`
}

func (t *Tools) PutArtifacts(ctx context.Context, _ *mcp.CallToolRequest, input PutArtifactsInput) (*mcp.CallToolResult, any, error) {
	req := &mdstore.PutArtifactsRequest{
		Options: mdstore.PutArtifactsOptions{AbortIfLatestUpdatedTimeChanged: input.AbortIfLatestUpdatedTimeChanged},
	}
	for _, wire := range input.Artifacts {
		a, err := artifactToDomain(wire)
		if err != nil {
			return toolStatusError(err)
		}
		req.Artifacts = append(req.Artifacts, a)
	}
	resp, err := t.Store.PutArtifacts(ctx, txn.Options{}, req)
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(resp)
}

type PutExecutionsInput struct {
	Executions []ExecutionJSON `json:"executions"`
}

func (t *Tools) PutExecutions(ctx context.Context, _ *mcp.CallToolRequest, input PutExecutionsInput) (*mcp.CallToolResult, any, error) {
	req := &mdstore.PutExecutionsRequest{}
	for _, wire := range input.Executions {
		e, err := executionToDomain(wire)
		if err != nil {
			return toolStatusError(err)
		}
		req.Executions = append(req.Executions, e)
	}
	resp, err := t.Store.PutExecutions(ctx, txn.Options{}, req)
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(resp)
}

type PutContextsInput struct {
	Contexts []ContextJSON `json:"contexts"`
}

func (t *Tools) PutContexts(ctx context.Context, _ *mcp.CallToolRequest, input PutContextsInput) (*mcp.CallToolResult, any, error) {
	req := &mdstore.PutContextsRequest{}
	for _, wire := range input.Contexts {
		c, err := contextToDomain(wire)
		if err != nil {
			return toolStatusError(err)
		}
		req.Contexts = append(req.Contexts, c)
	}
	resp, err := t.Store.PutContexts(ctx, txn.Options{}, req)
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(resp)
}

type PutEventsInput struct {
	Events []EventJSON `json:"events"`
}

func (t *Tools) PutEvents(ctx context.Context, _ *mcp.CallToolRequest, input PutEventsInput) (*mcp.CallToolResult, any, error) {
	req := &mdstore.PutEventsRequest{}
	for _, wire := range input.Events {
		e, err := eventToDomain(wire)
		if err != nil {
			return toolStatusError(err)
		}
		req.Events = append(req.Events, e)
	}
	resp, err := t.Store.PutEvents(ctx, txn.Options{}, req)
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(resp)
}

// AttributionJSON/AssociationJSON are the wire shapes of the
// corresponding set-semantics links (§3.1).
type AttributionJSON struct {
	ContextId  int64 `json:"context_id"`
	ArtifactId int64 `json:"artifact_id"`
}

type AssociationJSON struct {
	ContextId   int64 `json:"context_id"`
	ExecutionId int64 `json:"execution_id"`
}

type PutAttributionsAndAssociationsInput struct {
	Attributions []AttributionJSON `json:"attributions,omitempty"`
	Associations []AssociationJSON `json:"associations,omitempty"`
}

func (t *Tools) PutAttributionsAndAssociations(ctx context.Context, _ *mcp.CallToolRequest, input PutAttributionsAndAssociationsInput) (*mcp.CallToolResult, any, error) {
	req := &mdstore.PutAttributionsAndAssociationsRequest{}
	for _, a := range input.Attributions {
		req.Attributions = append(req.Attributions, &mdtypes.Attribution{ContextID: a.ContextId, ArtifactID: a.ArtifactId})
	}
	for _, a := range input.Associations {
		req.Associations = append(req.Associations, &mdtypes.Association{ContextID: a.ContextId, ExecutionID: a.ExecutionId})
	}
	resp, err := t.Store.PutAttributionsAndAssociations(ctx, txn.Options{}, req)
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(resp)
}

type ParentContextJSON struct {
	ParentContextId int64 `json:"parent_context_id"`
	ChildContextId  int64 `json:"child_context_id"`
}

type PutParentContextsInput struct {
	ParentContexts []ParentContextJSON `json:"parent_contexts"`
}

func (t *Tools) PutParentContexts(ctx context.Context, _ *mcp.CallToolRequest, input PutParentContextsInput) (*mcp.CallToolResult, any, error) {
	req := &mdstore.PutParentContextsRequest{}
	for _, pc := range input.ParentContexts {
		req.ParentContexts = append(req.ParentContexts, &mdtypes.ParentContext{ParentContextID: pc.ParentContextId, ChildContextID: pc.ChildContextId})
	}
	resp, err := t.Store.PutParentContexts(ctx, txn.Options{}, req)
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(resp)
}

// ArtifactAndEventJSON is the wire shape of one (optional artifact,
// optional event) pair in a PutExecution call (§4.F).
type ArtifactAndEventJSON struct {
	Artifact *ArtifactJSON `json:"artifact,omitempty"`
	Event    *EventJSON    `json:"event,omitempty"`
}

type PutExecutionInput struct {
	Execution                 ExecutionJSON          `json:"execution"`
	ArtifactEventPairs        []ArtifactAndEventJSON `json:"artifact_event_pairs,omitempty"`
	Contexts                  []ContextJSON          `json:"contexts,omitempty"`
	ReuseContextIfAlreadyExist bool                  `json:"reuse_context_if_already_exist,omitempty"`
}

func (t *Tools) PutExecution(ctx context.Context, _ *mcp.CallToolRequest, input PutExecutionInput) (*mcp.CallToolResult, any, error) {
	exec, err := executionToDomain(input.Execution)
	if err != nil {
		return toolStatusError(err)
	}
	req := &mdstore.PutExecutionRequest{
		Execution: exec,
		Options:   mdstore.PutExecutionOptions{ReuseContextIfAlreadyExist: input.ReuseContextIfAlreadyExist},
	}
	for _, pair := range input.ArtifactEventPairs {
		var ae mdstore.ArtifactAndEvent
		if pair.Artifact != nil {
			a, err := artifactToDomain(*pair.Artifact)
			if err != nil {
				return toolStatusError(err)
			}
			ae.Artifact = a
		}
		if pair.Event != nil {
			e, err := eventToDomain(*pair.Event)
			if err != nil {
				return toolStatusError(err)
			}
			ae.Event = e
		}
		req.ArtifactEventPairs = append(req.ArtifactEventPairs, ae)
	}
	for _, wire := range input.Contexts {
		c, err := contextToDomain(wire)
		if err != nil {
			return toolStatusError(err)
		}
		req.Contexts = append(req.Contexts, c)
	}
	resp, err := t.Store.PutExecution(ctx, txn.Options{}, req)
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(resp)
}

// --- Entity reads ---

type GetByIDInput struct {
	Ids []int64 `json:"ids"`
}

func (t *Tools) GetArtifactsByID(ctx context.Context, _ *mcp.CallToolRequest, input GetByIDInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetArtifactsByID(ctx, txn.Options{}, &mdstore.GetByIDRequest{Ids: input.Ids})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(artifactsFromDomain(resp.Artifacts))
}

func (t *Tools) GetExecutionsByID(ctx context.Context, _ *mcp.CallToolRequest, input GetByIDInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetExecutionsByID(ctx, txn.Options{}, &mdstore.GetByIDRequest{Ids: input.Ids})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(executionsFromDomain(resp.Executions))
}

func (t *Tools) GetContextsByID(ctx context.Context, _ *mcp.CallToolRequest, input GetByIDInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetContextsByID(ctx, txn.Options{}, &mdstore.GetByIDRequest{Ids: input.Ids})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(contextsFromDomain(resp.Contexts))
}

type GetArtifactsByURIInput struct {
	Uris []string `json:"uris"`
}

func (t *Tools) GetArtifactsByURI(ctx context.Context, _ *mcp.CallToolRequest, input GetArtifactsByURIInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetArtifactsByURI(ctx, txn.Options{}, &mdstore.GetArtifactsByURIRequest{URIs: input.Uris})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(artifactsFromDomain(resp.Artifacts))
}

type GetByTypeInput struct {
	TypeName    string `json:"type_name"`
	TypeVersion string `json:"type_version,omitempty"`
}

func (in GetByTypeInput) toRequest() *mdstore.GetByTypeRequest {
	return &mdstore.GetByTypeRequest{TypeName: in.TypeName, TypeVersion: mdtypes.NormalizeVersion(in.TypeVersion)}
}

func (t *Tools) GetArtifactsByType(ctx context.Context, _ *mcp.CallToolRequest, input GetByTypeInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetArtifactsByType(ctx, txn.Options{}, input.toRequest())
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(artifactsFromDomain(resp.Artifacts))
}

func (t *Tools) GetExecutionsByType(ctx context.Context, _ *mcp.CallToolRequest, input GetByTypeInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetExecutionsByType(ctx, txn.Options{}, input.toRequest())
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(executionsFromDomain(resp.Executions))
}

func (t *Tools) GetContextsByType(ctx context.Context, _ *mcp.CallToolRequest, input GetByTypeInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetContextsByType(ctx, txn.Options{}, input.toRequest())
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(contextsFromDomain(resp.Contexts))
}

type GetByTypeAndNameInput struct {
	TypeName    string `json:"type_name"`
	TypeVersion string `json:"type_version,omitempty"`
	EntityName  string `json:"entity_name"`
}

func (in GetByTypeAndNameInput) toRequest() *mdstore.GetByTypeAndNameRequest {
	return &mdstore.GetByTypeAndNameRequest{
		TypeName:    in.TypeName,
		TypeVersion: mdtypes.NormalizeVersion(in.TypeVersion),
		EntityName:  in.EntityName,
	}
}

func (t *Tools) GetArtifactByTypeAndName(ctx context.Context, _ *mcp.CallToolRequest, input GetByTypeAndNameInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetArtifactByTypeAndName(ctx, txn.Options{}, input.toRequest())
	if err != nil {
		return toolStatusError(err)
	}
	if resp.Artifact == nil {
		return toolJSON(nil)
	}
	return toolJSON(artifactFromDomain(resp.Artifact))
}

func (t *Tools) GetExecutionByTypeAndName(ctx context.Context, _ *mcp.CallToolRequest, input GetByTypeAndNameInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetExecutionByTypeAndName(ctx, txn.Options{}, input.toRequest())
	if err != nil {
		return toolStatusError(err)
	}
	if resp.Execution == nil {
		return toolJSON(nil)
	}
	return toolJSON(executionFromDomain(resp.Execution))
}

func (t *Tools) GetContextByTypeAndName(ctx context.Context, _ *mcp.CallToolRequest, input GetByTypeAndNameInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetContextByTypeAndName(ctx, txn.Options{}, input.toRequest())
	if err != nil {
		return toolStatusError(err)
	}
	if resp.Context == nil {
		return toolJSON(nil)
	}
	return toolJSON(contextFromDomain(resp.Context))
}

type GetArtifactsInput struct {
	Options *ListOptionsJSON `json:"options,omitempty"`
}

func (t *Tools) GetArtifacts(ctx context.Context, _ *mcp.CallToolRequest, input GetArtifactsInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetArtifacts(ctx, txn.Options{}, &mdstore.GetArtifactsRequest{Options: listOptionsToDomain(input.Options)})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(struct {
		Artifacts     []ArtifactJSON `json:"artifacts"`
		NextPageToken string         `json:"next_page_token,omitempty"`
	}{artifactsFromDomain(resp.Artifacts), resp.NextPageToken})
}

type GetExecutionsInput struct {
	Options *ListOptionsJSON `json:"options,omitempty"`
}

func (t *Tools) GetExecutions(ctx context.Context, _ *mcp.CallToolRequest, input GetExecutionsInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetExecutions(ctx, txn.Options{}, &mdstore.GetExecutionsRequest{Options: listOptionsToDomain(input.Options)})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(struct {
		Executions    []ExecutionJSON `json:"executions"`
		NextPageToken string          `json:"next_page_token,omitempty"`
	}{executionsFromDomain(resp.Executions), resp.NextPageToken})
}

type GetContextsInput struct {
	Options *ListOptionsJSON `json:"options,omitempty"`
}

func (t *Tools) GetContexts(ctx context.Context, _ *mcp.CallToolRequest, input GetContextsInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetContexts(ctx, txn.Options{}, &mdstore.GetContextsRequest{Options: listOptionsToDomain(input.Options)})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(struct {
		Contexts      []ContextJSON `json:"contexts"`
		NextPageToken string        `json:"next_page_token,omitempty"`
	}{contextsFromDomain(resp.Contexts), resp.NextPageToken})
}

type GetEventsByArtifactIDsInput struct {
	ArtifactIds []int64 `json:"artifact_ids"`
}

func (t *Tools) GetEventsByArtifactIDs(ctx context.Context, _ *mcp.CallToolRequest, input GetEventsByArtifactIDsInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetEventsByArtifactIDs(ctx, txn.Options{}, &mdstore.GetEventsByArtifactIDsRequest{ArtifactIds: input.ArtifactIds})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(eventsFromDomain(resp.Events))
}

type GetEventsByExecutionIDsInput struct {
	ExecutionIds []int64 `json:"execution_ids"`
}

func (t *Tools) GetEventsByExecutionIDs(ctx context.Context, _ *mcp.CallToolRequest, input GetEventsByExecutionIDsInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetEventsByExecutionIDs(ctx, txn.Options{}, &mdstore.GetEventsByExecutionIDsRequest{ExecutionIds: input.ExecutionIds})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(eventsFromDomain(resp.Events))
}

type GetContextsByEntityInput struct {
	EntityId int64 `json:"entity_id"`
}

func (t *Tools) GetContextsByArtifact(ctx context.Context, _ *mcp.CallToolRequest, input GetContextsByEntityInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetContextsByArtifact(ctx, txn.Options{}, &mdstore.GetContextsByEntityRequest{EntityId: input.EntityId})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(contextsFromDomain(resp.Contexts))
}

func (t *Tools) GetContextsByExecution(ctx context.Context, _ *mcp.CallToolRequest, input GetContextsByEntityInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetContextsByExecution(ctx, txn.Options{}, &mdstore.GetContextsByEntityRequest{EntityId: input.EntityId})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(contextsFromDomain(resp.Contexts))
}

type GetEntitiesByContextInput struct {
	ContextId int64            `json:"context_id"`
	Options   *ListOptionsJSON `json:"options,omitempty"`
}

func (t *Tools) GetArtifactsByContext(ctx context.Context, _ *mcp.CallToolRequest, input GetEntitiesByContextInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetArtifactsByContext(ctx, txn.Options{}, &mdstore.GetEntitiesByContextRequest{ContextId: input.ContextId, Options: listOptionsToDomain(input.Options)})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(struct {
		Artifacts     []ArtifactJSON `json:"artifacts"`
		NextPageToken string         `json:"next_page_token,omitempty"`
	}{artifactsFromDomain(resp.Artifacts), resp.NextPageToken})
}

func (t *Tools) GetExecutionsByContext(ctx context.Context, _ *mcp.CallToolRequest, input GetEntitiesByContextInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetExecutionsByContext(ctx, txn.Options{}, &mdstore.GetEntitiesByContextRequest{ContextId: input.ContextId, Options: listOptionsToDomain(input.Options)})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(struct {
		Executions    []ExecutionJSON `json:"executions"`
		NextPageToken string          `json:"next_page_token,omitempty"`
	}{executionsFromDomain(resp.Executions), resp.NextPageToken})
}

type GetContextsByContextInput struct {
	ContextId int64 `json:"context_id"`
}

func (t *Tools) GetParentContextsByContext(ctx context.Context, _ *mcp.CallToolRequest, input GetContextsByContextInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetParentContextsByContext(ctx, txn.Options{}, &mdstore.GetContextsByContextRequest{ContextId: input.ContextId})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(contextsFromDomain(resp.Contexts))
}

func (t *Tools) GetChildrenContextsByContext(ctx context.Context, _ *mcp.CallToolRequest, input GetContextsByContextInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetChildrenContextsByContext(ctx, txn.Options{}, &mdstore.GetContextsByContextRequest{ContextId: input.ContextId})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(contextsFromDomain(resp.Contexts))
}

// --- Lineage ---

type QueryNodesFilterJSON struct {
	FilterQuery string `json:"filter_query"`
}

type LineageStopConditionsJSON struct {
	MaxNumHops         *int32 `json:"max_num_hops,omitempty"`
	BoundaryArtifacts  string `json:"boundary_artifacts,omitempty"`
	BoundaryExecutions string `json:"boundary_executions,omitempty"`
}

type GetLineageGraphInput struct {
	QueryNodes    *QueryNodesFilterJSON     `json:"query_nodes"`
	StopConditions LineageStopConditionsJSON `json:"stop_conditions,omitempty"`
	MaxNodeSize   int32                     `json:"max_node_size,omitempty"`
}

func (t *Tools) GetLineageGraph(ctx context.Context, _ *mcp.CallToolRequest, input GetLineageGraphInput) (*mcp.CallToolResult, any, error) {
	req := &mdstore.GetLineageGraphRequest{
		Options: mdstore.LineageGraphOptions{
			MaxNumHops:         input.StopConditions.MaxNumHops,
			BoundaryArtifacts:  input.StopConditions.BoundaryArtifacts,
			BoundaryExecutions: input.StopConditions.BoundaryExecutions,
			MaxNodeSize:        input.MaxNodeSize,
		},
	}
	if input.QueryNodes != nil {
		req.QueryNodes = &mdstore.QueryNodesFilter{FilterQuery: input.QueryNodes.FilterQuery}
	}
	resp, err := t.Store.GetLineageGraph(ctx, txn.Options{}, req)
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(subgraphFromDomain(resp.Subgraph))
}

// SubgraphJSON is the wire shape of the lineage traversal's induced
// neighborhood (§4.H), returned verbatim from the Access Object.
type SubgraphJSON struct {
	Artifacts    []ArtifactJSON     `json:"artifacts,omitempty"`
	Executions   []ExecutionJSON    `json:"executions,omitempty"`
	Events       []EventJSON        `json:"events,omitempty"`
	Contexts     []ContextJSON      `json:"contexts,omitempty"`
	Attributions []AttributionJSON  `json:"attributions,omitempty"`
	Associations []AssociationJSON  `json:"associations,omitempty"`
}

func subgraphFromDomain(s *accessobject.Subgraph) SubgraphJSON {
	if s == nil {
		return SubgraphJSON{}
	}
	out := SubgraphJSON{
		Artifacts:  artifactsFromDomain(s.Artifacts),
		Executions: executionsFromDomain(s.Executions),
		Events:     eventsFromDomain(s.Events),
		Contexts:   contextsFromDomain(s.Contexts),
	}
	for _, a := range s.Attributions {
		out.Attributions = append(out.Attributions, AttributionJSON{ContextId: a.ContextID, ArtifactId: a.ArtifactID})
	}
	for _, a := range s.Associations {
		out.Associations = append(out.Associations, AssociationJSON{ContextId: a.ContextID, ExecutionId: a.ExecutionID})
	}
	return out
}
