package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mlmd/store/internal/accessobject/sqlitestore"
	"github.com/mlmd/store/internal/mdserver"
	"github.com/mlmd/store/internal/mdstore"
	"github.com/mlmd/store/internal/txn/sqlitetxn"
)

// setupIntegration creates a real MCP server, backed by a fresh SQLite
// file, and returns a connected client session the same way the
// teacher's integration test wires its in-memory transport.
func setupIntegration(t *testing.T) (*mcp.ClientSession, func()) {
	t.Helper()

	dir, err := os.MkdirTemp("", "mdstore-integration-*")
	if err != nil {
		t.Fatal(err)
	}

	backing, err := sqlitestore.Open(filepath.Join(dir, "metadata.sqlite"))
	if err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}

	executor := sqlitetxn.New(backing)
	ctx := context.Background()
	store, err := mdstore.InitMetadataStore(ctx, executor)
	if err != nil {
		backing.Close()
		os.RemoveAll(dir)
		t.Fatal(err)
	}

	srv := mdserver.New(store)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	if _, err := srv.Connect(ctx, serverTransport, nil); err != nil {
		backing.Close()
		os.RemoveAll(dir)
		t.Fatalf("server connect: %v", err)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		backing.Close()
		os.RemoveAll(dir)
		t.Fatalf("client connect: %v", err)
	}

	cleanup := func() {
		session.Close()
		backing.Close()
		os.RemoveAll(dir)
	}
	return session, cleanup
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if len(result.Content) == 0 {
		t.Fatalf("CallTool(%s): empty content", name)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent, got %T", name, result.Content[0])
	}
	if result.IsError {
		t.Fatalf("CallTool(%s) returned error: %s", name, tc.Text)
	}
	return tc.Text
}

func callToolExpectError(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): protocol error: %v", name, err)
	}
	if !result.IsError {
		tc := result.Content[0].(*mcp.TextContent)
		t.Fatalf("CallTool(%s): expected error but got success: %s", name, tc.Text)
	}
	tc := result.Content[0].(*mcp.TextContent)
	return tc.Text
}

func TestIntegration_ListTools(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	result, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	expectedTools := []string{
		"put_artifact_type", "put_execution_type", "put_context_type", "put_types",
		"get_artifact_type", "get_execution_type", "get_context_type",
		"get_artifact_types_by_id", "get_execution_types_by_id", "get_context_types_by_id",
		"get_artifact_types", "get_execution_types", "get_context_types",
		"put_artifacts", "put_executions", "put_contexts", "put_events",
		"put_attributions_and_associations", "put_parent_contexts", "put_execution",
		"get_artifacts_by_id", "get_executions_by_id", "get_contexts_by_id",
		"get_artifacts_by_uri", "get_artifacts_by_type", "get_executions_by_type", "get_contexts_by_type",
		"get_artifact_by_type_and_name", "get_execution_by_type_and_name", "get_context_by_type_and_name",
		"get_artifacts", "get_executions", "get_contexts",
		"get_events_by_artifact_ids", "get_events_by_execution_ids",
		"get_contexts_by_artifact", "get_contexts_by_execution",
		"get_artifacts_by_context", "get_executions_by_context",
		"get_parent_contexts_by_context", "get_children_contexts_by_context",
		"get_lineage_graph",
	}

	toolNames := make(map[string]bool)
	for _, tool := range result.Tools {
		toolNames[tool.Name] = true
	}

	for _, name := range expectedTools {
		if !toolNames[name] {
			t.Errorf("Missing tool: %s", name)
		}
	}
	if len(result.Tools) != len(expectedTools) {
		t.Errorf("Expected %d tools, got %d", len(expectedTools), len(result.Tools))
	}
}

// TestIntegration_TypeEvolution exercises scenario 1/2 of the spec's
// §8 testable properties: widening a type's schema across two calls
// preserves its id, and a kind conflict on a third call fails.
func TestIntegration_TypeEvolution(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	text := callTool(t, session, "put_artifact_type", map[string]any{
		"type": map[string]any{
			"name":       "Img",
			"properties": map[string]any{"u": "STRING"},
		},
	})
	var first struct {
		TypeId int64 `json:"TypeId"`
	}
	if err := json.Unmarshal([]byte(text), &first); err != nil {
		t.Fatalf("parse put_artifact_type: %v", err)
	}
	if first.TypeId == 0 {
		t.Fatalf("expected a nonzero type id, got %q", text)
	}

	text = callTool(t, session, "put_artifact_type", map[string]any{
		"type": map[string]any{
			"name":       "Img",
			"properties": map[string]any{"u": "STRING", "w": "INT"},
		},
		"can_add_fields":  true,
		"can_omit_fields": true,
	})
	var second struct {
		TypeId int64 `json:"TypeId"`
	}
	if err := json.Unmarshal([]byte(text), &second); err != nil {
		t.Fatalf("parse second put_artifact_type: %v", err)
	}
	if second.TypeId != first.TypeId {
		t.Errorf("widening should keep type_id %d, got %d", first.TypeId, second.TypeId)
	}

	text = callTool(t, session, "get_artifact_type", map[string]any{"name": "Img"})
	var got struct {
		Properties map[string]string `json:"properties"`
	}
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("parse get_artifact_type: %v", err)
	}
	if got.Properties["u"] != "STRING" || got.Properties["w"] != "INT" {
		t.Errorf("expected {u:STRING, w:INT}, got %v", got.Properties)
	}

	errText := callToolExpectError(t, session, "put_artifact_type", map[string]any{
		"type": map[string]any{
			"name":       "Img",
			"properties": map[string]any{"u": "INT"},
		},
	})
	if !strings.Contains(strings.ToLower(errText), "conflict") {
		t.Errorf("expected a kind-conflict message, got %q", errText)
	}
}

// TestIntegration_CompositeExecution exercises scenario 3 of §8: a
// single put_execution call records an execution, one output
// artifact, its event, and a context, then the links are visible
// through the read endpoints.
func TestIntegration_CompositeExecution(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	callTool(t, session, "put_execution_type", map[string]any{
		"type": map[string]any{"name": "Trainer"},
	})
	callTool(t, session, "put_artifact_type", map[string]any{
		"type": map[string]any{"name": "ModelArtifact"},
	})
	callTool(t, session, "put_context_type", map[string]any{
		"type": map[string]any{"name": "Run"},
	})

	execTypeText := callTool(t, session, "get_execution_type", map[string]any{"name": "Trainer"})
	var execType struct {
		Id int64 `json:"id"`
	}
	json.Unmarshal([]byte(execTypeText), &execType)

	artifactTypeText := callTool(t, session, "get_artifact_type", map[string]any{"name": "ModelArtifact"})
	var artifactType struct {
		Id int64 `json:"id"`
	}
	json.Unmarshal([]byte(artifactTypeText), &artifactType)

	contextTypeText := callTool(t, session, "get_context_type", map[string]any{"name": "Run"})
	var contextType struct {
		Id int64 `json:"id"`
	}
	json.Unmarshal([]byte(contextTypeText), &contextType)

	text := callTool(t, session, "put_execution", map[string]any{
		"execution": map[string]any{"type_id": execType.Id},
		"artifact_event_pairs": []any{
			map[string]any{
				"artifact": map[string]any{"type_id": artifactType.Id, "uri": "x"},
				"event":    map[string]any{"kind": "OUTPUT"},
			},
		},
		"contexts": []any{
			map[string]any{"type_id": contextType.Id, "name": "run-42"},
		},
	})
	var putResp struct {
		ExecutionId int64   `json:"ExecutionId"`
		ArtifactIds []int64 `json:"ArtifactIds"`
		ContextIds  []int64 `json:"ContextIds"`
	}
	if err := json.Unmarshal([]byte(text), &putResp); err != nil {
		t.Fatalf("parse put_execution: %v", err)
	}
	if len(putResp.ArtifactIds) != 1 || len(putResp.ContextIds) != 1 {
		t.Fatalf("expected one artifact and one context id, got %+v", putResp)
	}

	text = callTool(t, session, "get_events_by_execution_ids", map[string]any{
		"execution_ids": []any{putResp.ExecutionId},
	})
	var events []struct {
		ArtifactId  int64 `json:"artifact_id"`
		ExecutionId int64 `json:"execution_id"`
	}
	if err := json.Unmarshal([]byte(text), &events); err != nil {
		t.Fatalf("parse get_events_by_execution_ids: %v", err)
	}
	if len(events) != 1 || events[0].ArtifactId != putResp.ArtifactIds[0] || events[0].ExecutionId != putResp.ExecutionId {
		t.Fatalf("expected one event linking execution and artifact, got %+v", events)
	}

	text = callTool(t, session, "get_contexts_by_artifact", map[string]any{
		"entity_id": putResp.ArtifactIds[0],
	})
	var contexts []struct {
		Id int64 `json:"id"`
	}
	if err := json.Unmarshal([]byte(text), &contexts); err != nil {
		t.Fatalf("parse get_contexts_by_artifact: %v", err)
	}
	found := false
	for _, c := range contexts {
		if c.Id == putResp.ContextIds[0] {
			found = true
		}
	}
	if !found {
		t.Errorf("expected context %d among %+v", putResp.ContextIds[0], contexts)
	}
}

// TestIntegration_UpdateTimestampMonotonic exercises §8 property 2:
// two successive put_artifacts calls on the same id strictly increase
// last_update_time_since_epoch.
func TestIntegration_UpdateTimestampMonotonic(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	callTool(t, session, "put_artifact_type", map[string]any{
		"type": map[string]any{"name": "Thing"},
	})
	typeText := callTool(t, session, "get_artifact_type", map[string]any{"name": "Thing"})
	var artifactType struct {
		Id int64 `json:"id"`
	}
	json.Unmarshal([]byte(typeText), &artifactType)

	text := callTool(t, session, "put_artifacts", map[string]any{
		"artifacts": []any{map[string]any{"type_id": artifactType.Id, "name": "a1"}},
	})
	var first struct {
		ArtifactIds []int64 `json:"ArtifactIds"`
	}
	json.Unmarshal([]byte(text), &first)

	idsText := callTool(t, session, "get_artifacts_by_id", map[string]any{"ids": []any{first.ArtifactIds[0]}})
	var firstArtifacts []struct {
		Id                       int64 `json:"id"`
		TypeId                   int64 `json:"type_id"`
		LastUpdateTimeSinceEpoch int64 `json:"last_update_time_since_epoch"`
	}
	json.Unmarshal([]byte(idsText), &firstArtifacts)

	text = callTool(t, session, "put_artifacts", map[string]any{
		"artifacts": []any{map[string]any{
			"id": first.ArtifactIds[0], "type_id": artifactType.Id, "name": "a1",
		}},
	})
	var second struct {
		ArtifactIds []int64 `json:"ArtifactIds"`
	}
	json.Unmarshal([]byte(text), &second)

	idsText = callTool(t, session, "get_artifacts_by_id", map[string]any{"ids": []any{second.ArtifactIds[0]}})
	var secondArtifacts []struct {
		LastUpdateTimeSinceEpoch int64 `json:"last_update_time_since_epoch"`
	}
	json.Unmarshal([]byte(idsText), &secondArtifacts)

	if secondArtifacts[0].LastUpdateTimeSinceEpoch <= firstArtifacts[0].LastUpdateTimeSinceEpoch {
		t.Errorf("expected strictly increasing update time, got %d then %d",
			firstArtifacts[0].LastUpdateTimeSinceEpoch, secondArtifacts[0].LastUpdateTimeSinceEpoch)
	}
}

// TestIntegration_LineageNotFound exercises §4.H: a seed filter
// matching nothing is a NOT_FOUND error, not an empty success.
func TestIntegration_LineageNotFound(t *testing.T) {
	session, cleanup := setupIntegration(t)
	defer cleanup()

	errText := callToolExpectError(t, session, "get_lineage_graph", map[string]any{
		"query_nodes": map[string]any{"filter_query": "name = 'does-not-exist'"},
	})
	if !strings.Contains(errText, "does not match any nodes") {
		t.Errorf("expected a not-found message, got %q", errText)
	}
}
