package mdstore

import (
	"context"

	"github.com/mlmd/store/internal/accessobject"
	"github.com/mlmd/store/internal/mderrors"
	"github.com/mlmd/store/internal/mdtypes"
)

// upsertType implements §4.D's per-variant type upsert: find-or-create
// by (name, version), run the consistency checker when a stored type
// already exists, persist the merged schema, then apply base-type
// linking. It returns the resulting type id.
func upsertType(ctx context.Context, ao accessobject.AccessObject, kind mdtypes.TypeKind, incoming *mdtypes.Type, canAddFields, canOmitFields, allFieldsMatch bool) (int64, error) {
	if !allFieldsMatch {
		return 0, mderrors.Unimplemented("all_fields_match=false is not supported")
	}

	stored, err := ao.FindTypeByNameAndVersion(ctx, kind, incoming.Name, incoming.Version)
	if err != nil {
		return 0, err
	}

	var typeID int64
	if stored == nil {
		incoming.Kind = kind
		id, err := ao.CreateType(ctx, incoming)
		if err != nil {
			return 0, err
		}
		typeID = id
	} else {
		merged, err := checkTypeConsistency(stored, incoming, canAddFields, canOmitFields)
		if err != nil {
			return 0, err
		}
		if merged != stored {
			merged.Kind = kind
			if err := ao.UpdateType(ctx, merged); err != nil {
				return 0, err
			}
		}
		typeID = stored.ID
	}

	if err := linkBaseType(ctx, ao, kind, typeID, incoming.RequestedBaseType); err != nil {
		return 0, err
	}
	return typeID, nil
}

// linkBaseType implements §4.D's base-type linking step. requested is
// the request's base_type descriptor: nil means "no descriptor", a
// pointer to BaseTypeUnset means the reserved sentinel was requested
// explicitly.
func linkBaseType(ctx context.Context, ao accessobject.AccessObject, kind mdtypes.TypeKind, typeID int64, requested *mdtypes.BaseType) error {
	if requested == nil {
		return nil
	}
	if *requested == mdtypes.BaseTypeUnset {
		return mderrors.Unimplemented("deletion of a base-type link is not supported")
	}

	parents, err := ao.FindParentTypesByTypeId(ctx, typeID)
	if err != nil {
		return err
	}
	if len(parents) > 1 {
		return mderrors.FailedPrecondition("type %d has more than one parent type", typeID)
	}

	requestedName := mdtypes.BaseTypeName(*requested)
	if len(parents) == 1 {
		if parents[0].Name == requestedName {
			return nil
		}
		return mderrors.Unimplemented("updating an existing base-type link is not supported")
	}

	parentID, found, err := ao.FindTypeIdByNameAndVersion(ctx, kind, requestedName, nil)
	if err != nil {
		return err
	}
	if !found {
		return mderrors.FailedPrecondition("base type %q is not a known system type", requestedName)
	}
	return ao.CreateParentTypeInheritanceLink(ctx, parentID, typeID)
}

// resolveBaseType implements §4.D's "set-base-type on reads" step: it
// populates t.BaseType by resolving t's ParentType link and mapping
// the parent's name through the closed system-type mapping.
func resolveBaseType(ctx context.Context, ao accessobject.AccessObject, t *mdtypes.Type) error {
	parents, err := ao.FindParentTypesByTypeId(ctx, t.ID)
	if err != nil {
		return err
	}
	if len(parents) == 0 {
		t.BaseType = mdtypes.BaseTypeUnset
		return nil
	}
	bt, ok := mdtypes.BaseTypeByName(parents[0].Name)
	if !ok {
		return mderrors.FailedPrecondition("type %d has an unrecognized base type %q", t.ID, parents[0].Name)
	}
	t.BaseType = bt
	return nil
}

func resolveBaseTypes(ctx context.Context, ao accessobject.AccessObject, types []*mdtypes.Type) error {
	for _, t := range types {
		if err := resolveBaseType(ctx, ao, t); err != nil {
			return err
		}
	}
	return nil
}

// PutType upserts a single type of the given variant, per
// PutArtifactType/PutExecutionType/PutContextType (§6.1).
func PutType(ctx context.Context, ao accessobject.AccessObject, kind mdtypes.TypeKind, req *PutTypeRequest) (*PutTypeResponse, error) {
	id, err := upsertType(ctx, ao, kind, req.Type, req.CanAddFields, req.CanOmitFields, req.AllFieldsMatch)
	if err != nil {
		return nil, err
	}
	return &PutTypeResponse{TypeId: id}, nil
}

// PutTypes upserts the artifact/execution/context sub-lists of a
// single request. The enclosing transaction (internal/txn) is what
// makes this all-or-nothing across the three sub-lists, per the §9
// Open Question decision to preserve that behavior.
func PutTypes(ctx context.Context, ao accessobject.AccessObject, req *PutTypesRequest) (*PutTypesResponse, error) {
	resp := &PutTypesResponse{}
	for _, t := range req.ArtifactTypes {
		id, err := upsertType(ctx, ao, mdtypes.TypeKindArtifact, t, req.CanAddFields, req.CanOmitFields, req.AllFieldsMatch)
		if err != nil {
			return nil, err
		}
		resp.ArtifactTypeIds = append(resp.ArtifactTypeIds, id)
	}
	for _, t := range req.ExecutionTypes {
		id, err := upsertType(ctx, ao, mdtypes.TypeKindExecution, t, req.CanAddFields, req.CanOmitFields, req.AllFieldsMatch)
		if err != nil {
			return nil, err
		}
		resp.ExecutionTypeIds = append(resp.ExecutionTypeIds, id)
	}
	for _, t := range req.ContextTypes {
		id, err := upsertType(ctx, ao, mdtypes.TypeKindContext, t, req.CanAddFields, req.CanOmitFields, req.AllFieldsMatch)
		if err != nil {
			return nil, err
		}
		resp.ContextTypeIds = append(resp.ContextTypeIds, id)
	}
	return resp, nil
}

// GetType resolves a single type by name(+version) or reports empty,
// per the §4.G "missing entities return an empty result" contract.
func GetType(ctx context.Context, ao accessobject.AccessObject, kind mdtypes.TypeKind, req *GetTypeRequest) (*GetTypeResponse, error) {
	t, err := ao.FindTypeByNameAndVersion(ctx, kind, req.TypeName, req.TypeVersion)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return &GetTypeResponse{}, nil
	}
	if err := resolveBaseType(ctx, ao, t); err != nil {
		return nil, err
	}
	return &GetTypeResponse{Type: t}, nil
}

// GetTypesByID resolves types by id, silently dropping not-found ids.
func GetTypesByID(ctx context.Context, ao accessobject.AccessObject, kind mdtypes.TypeKind, req *GetTypesByIDRequest) (*GetTypesByIDResponse, error) {
	types, err := ao.FindTypesById(ctx, kind, req.TypeIds)
	if err != nil {
		return nil, err
	}
	if err := resolveBaseTypes(ctx, ao, types); err != nil {
		return nil, err
	}
	return &GetTypesByIDResponse{Types: types}, nil
}

// GetTypes returns every type of the given variant, excluding the
// seeded simple-types catalog (§6.1 "Get{...}Types returns all except
// the seeded simple types").
func GetTypes(ctx context.Context, ao accessobject.AccessObject, kind mdtypes.TypeKind) (*GetTypesResponse, error) {
	types, err := ao.FindTypes(ctx, kind, SimpleTypeNames(kind))
	if err != nil {
		return nil, err
	}
	if err := resolveBaseTypes(ctx, ao, types); err != nil {
		return nil, err
	}
	return &GetTypesResponse{Types: types}, nil
}
