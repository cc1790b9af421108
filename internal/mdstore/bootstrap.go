package mdstore

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/mlmd/store/internal/accessobject"
	"github.com/mlmd/store/internal/mdtypes"
)

// simpleType describes one entry of the seeded catalog (§9
// "Simple-types bootstrap on every init").
type simpleType struct {
	kind       mdtypes.TypeKind
	name       string
	properties map[string]mdtypes.PropertyType
}

// simpleTypesCatalog is the fixed set of well-known types every store
// is seeded with, modeled on the base-type names the closed
// mdtypes.BaseType mapping already recognizes (Dataset, Model,
// Metrics, Statistics, Schema) plus a generic String artifact type
// used by simple pass-through pipeline steps, a ComponentRun execution
// type, and Pipeline/PipelineRun context types.
var simpleTypesCatalog = []simpleType{
	{kind: mdtypes.TypeKindArtifact, name: "Dataset", properties: map[string]mdtypes.PropertyType{
		"span":        mdtypes.PropertyTypeInt,
		"version":     mdtypes.PropertyTypeInt,
		"split_names": mdtypes.PropertyTypeString,
	}},
	{kind: mdtypes.TypeKindArtifact, name: "Model", properties: map[string]mdtypes.PropertyType{
		"version":   mdtypes.PropertyTypeInt,
		"framework": mdtypes.PropertyTypeString,
	}},
	{kind: mdtypes.TypeKindArtifact, name: "Metrics", properties: map[string]mdtypes.PropertyType{
		"span": mdtypes.PropertyTypeInt,
	}},
	{kind: mdtypes.TypeKindArtifact, name: "Statistics", properties: map[string]mdtypes.PropertyType{
		"span": mdtypes.PropertyTypeInt,
	}},
	{kind: mdtypes.TypeKindArtifact, name: "Schema", properties: map[string]mdtypes.PropertyType{
		"version": mdtypes.PropertyTypeInt,
	}},
	{kind: mdtypes.TypeKindArtifact, name: "String", properties: map[string]mdtypes.PropertyType{}},
	{kind: mdtypes.TypeKindExecution, name: "ComponentRun", properties: map[string]mdtypes.PropertyType{
		"state": mdtypes.PropertyTypeString,
	}},
	{kind: mdtypes.TypeKindContext, name: "Pipeline", properties: map[string]mdtypes.PropertyType{}},
	{kind: mdtypes.TypeKindContext, name: "PipelineRun", properties: map[string]mdtypes.PropertyType{
		"pipeline_run_id": mdtypes.PropertyTypeString,
	}},
}

// SimpleTypeNames returns the excluded-list of simple-type names for
// the given variant, the list every Get{...}Types read filters out
// (§6.1).
func SimpleTypeNames(kind mdtypes.TypeKind) []string {
	var names []string
	for _, st := range simpleTypesCatalog {
		if st.kind == kind {
			names = append(names, st.name)
		}
	}
	return names
}

// bootstrapGroup deduplicates concurrent bootstrap calls within one
// process: two callers racing InitMetadataStore against the same
// backend collapse into a single upsert pass per catalog entry,
// narrowing (not eliminating — cross-process races still rely on the
// storage layer's unique (name, version) constraint, per §9's noted
// open issue) the double-insert window.
var bootstrapGroup singleflight.Group

// seedSimpleTypes re-upserts the catalog, per §9 "re-upserted on both
// Init and InitIfNotExists".
func seedSimpleTypes(ctx context.Context, ao accessobject.AccessObject) error {
	for _, st := range simpleTypesCatalog {
		key := st.kind.String() + ":" + st.name
		_, err, _ := bootstrapGroup.Do(key, func() (any, error) {
			t := &mdtypes.Type{
				Kind:       st.kind,
				Name:       st.name,
				Properties: st.properties,
			}
			_, err := upsertType(ctx, ao, st.kind, t, true, true, true)
			return nil, err
		})
		if err != nil {
			return err
		}
	}
	return nil
}
