package mdserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mlmd/store/internal/mdstore"
	"github.com/mlmd/store/internal/mdtypes"
	"github.com/mlmd/store/internal/txn"
)

type PutTypeInput struct {
	Type           TypeJSON `json:"type"`
	CanAddFields   *bool    `json:"can_add_fields,omitempty" jsonschema:"Allow the incoming schema to add new properties (default true)"`
	CanOmitFields  *bool    `json:"can_omit_fields,omitempty" jsonschema:"Allow the incoming schema to omit stored properties (default true)"`
	AllFieldsMatch *bool    `json:"all_fields_match,omitempty" jsonschema:"Must resolve to true; false is unimplemented (default true)"`
}

func (in PutTypeInput) toRequest() (*mdstore.PutTypeRequest, error) {
	t, err := typeToDomain(in.Type)
	if err != nil {
		return nil, err
	}
	return &mdstore.PutTypeRequest{
		Type:           t,
		CanAddFields:   boolOrDefault(in.CanAddFields, true),
		CanOmitFields:  boolOrDefault(in.CanOmitFields, true),
		AllFieldsMatch: boolOrDefault(in.AllFieldsMatch, true),
	}, nil
}

func (t *Tools) PutArtifactType(ctx context.Context, _ *mcp.CallToolRequest, input PutTypeInput) (*mcp.CallToolResult, any, error) {
	req, err := input.toRequest()
	if err != nil {
		return toolStatusError(err)
	}
	resp, err := t.Store.PutArtifactType(ctx, txn.Options{}, req)
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(resp)
}

func (t *Tools) PutExecutionType(ctx context.Context, _ *mcp.CallToolRequest, input PutTypeInput) (*mcp.CallToolResult, any, error) {
	req, err := input.toRequest()
	if err != nil {
		return toolStatusError(err)
	}
	resp, err := t.Store.PutExecutionType(ctx, txn.Options{}, req)
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(resp)
}

func (t *Tools) PutContextType(ctx context.Context, _ *mcp.CallToolRequest, input PutTypeInput) (*mcp.CallToolResult, any, error) {
	req, err := input.toRequest()
	if err != nil {
		return toolStatusError(err)
	}
	resp, err := t.Store.PutContextType(ctx, txn.Options{}, req)
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(resp)
}

type PutTypesInput struct {
	ArtifactTypes  []TypeJSON `json:"artifact_types,omitempty"`
	ExecutionTypes []TypeJSON `json:"execution_types,omitempty"`
	ContextTypes   []TypeJSON `json:"context_types,omitempty"`
	CanAddFields   *bool      `json:"can_add_fields,omitempty"`
	CanOmitFields  *bool      `json:"can_omit_fields,omitempty"`
	AllFieldsMatch *bool      `json:"all_fields_match,omitempty"`
}

func (t *Tools) PutTypes(ctx context.Context, _ *mcp.CallToolRequest, input PutTypesInput) (*mcp.CallToolResult, any, error) {
	req := &mdstore.PutTypesRequest{
		CanAddFields:   boolOrDefault(input.CanAddFields, true),
		CanOmitFields:  boolOrDefault(input.CanOmitFields, true),
		AllFieldsMatch: boolOrDefault(input.AllFieldsMatch, true),
	}
	for _, wire := range input.ArtifactTypes {
		d, err := typeToDomain(wire)
		if err != nil {
			return toolStatusError(err)
		}
		req.ArtifactTypes = append(req.ArtifactTypes, d)
	}
	for _, wire := range input.ExecutionTypes {
		d, err := typeToDomain(wire)
		if err != nil {
			return toolStatusError(err)
		}
		req.ExecutionTypes = append(req.ExecutionTypes, d)
	}
	for _, wire := range input.ContextTypes {
		d, err := typeToDomain(wire)
		if err != nil {
			return toolStatusError(err)
		}
		req.ContextTypes = append(req.ContextTypes, d)
	}
	resp, err := t.Store.PutTypes(ctx, txn.Options{}, req)
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(resp)
}

type GetTypeInput struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

func (in GetTypeInput) toRequest() *mdstore.GetTypeRequest {
	return &mdstore.GetTypeRequest{TypeName: in.Name, TypeVersion: mdtypes.NormalizeVersion(in.Version)}
}

func (t *Tools) GetArtifactType(ctx context.Context, _ *mcp.CallToolRequest, input GetTypeInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetArtifactType(ctx, txn.Options{}, input.toRequest())
	if err != nil {
		return toolStatusError(err)
	}
	if resp.Type == nil {
		return toolJSON(nil)
	}
	return toolJSON(typeFromDomain(resp.Type))
}

func (t *Tools) GetExecutionType(ctx context.Context, _ *mcp.CallToolRequest, input GetTypeInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetExecutionType(ctx, txn.Options{}, input.toRequest())
	if err != nil {
		return toolStatusError(err)
	}
	if resp.Type == nil {
		return toolJSON(nil)
	}
	return toolJSON(typeFromDomain(resp.Type))
}

func (t *Tools) GetContextType(ctx context.Context, _ *mcp.CallToolRequest, input GetTypeInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetContextType(ctx, txn.Options{}, input.toRequest())
	if err != nil {
		return toolStatusError(err)
	}
	if resp.Type == nil {
		return toolJSON(nil)
	}
	return toolJSON(typeFromDomain(resp.Type))
}

type GetTypesByIDInput struct {
	TypeIds []int64 `json:"type_ids"`
}

func (t *Tools) GetArtifactTypesByID(ctx context.Context, _ *mcp.CallToolRequest, input GetTypesByIDInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetArtifactTypesByID(ctx, txn.Options{}, &mdstore.GetTypesByIDRequest{TypeIds: input.TypeIds})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(typesFromDomain(resp.Types))
}

func (t *Tools) GetExecutionTypesByID(ctx context.Context, _ *mcp.CallToolRequest, input GetTypesByIDInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetExecutionTypesByID(ctx, txn.Options{}, &mdstore.GetTypesByIDRequest{TypeIds: input.TypeIds})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(typesFromDomain(resp.Types))
}

func (t *Tools) GetContextTypesByID(ctx context.Context, _ *mcp.CallToolRequest, input GetTypesByIDInput) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetContextTypesByID(ctx, txn.Options{}, &mdstore.GetTypesByIDRequest{TypeIds: input.TypeIds})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(typesFromDomain(resp.Types))
}

func (t *Tools) GetArtifactTypes(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetArtifactTypes(ctx, txn.Options{})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(typesFromDomain(resp.Types))
}

func (t *Tools) GetExecutionTypes(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetExecutionTypes(ctx, txn.Options{})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(typesFromDomain(resp.Types))
}

func (t *Tools) GetContextTypes(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	resp, err := t.Store.GetContextTypes(ctx, txn.Options{})
	if err != nil {
		return toolStatusError(err)
	}
	return toolJSON(typesFromDomain(resp.Types))
}
