package mdserver

import (
	"fmt"
	"strings"

	"github.com/mlmd/store/internal/mderrors"
	"github.com/mlmd/store/internal/mdtypes"
)

// PropertyValueJSON is the wire shape of mdtypes.PropertyValue: exactly
// one of the typed fields is meaningful, selected by Kind.
type PropertyValueJSON struct {
	Kind   string         `json:"kind" jsonschema:"Property kind: INT, DOUBLE, STRING, or STRUCT"`
	Int    *int64         `json:"int_value,omitempty"`
	Double *float64       `json:"double_value,omitempty"`
	String *string        `json:"string_value,omitempty"`
	Struct map[string]any `json:"struct_value,omitempty"`
}

func propertyValueToDomain(p PropertyValueJSON) (mdtypes.PropertyValue, error) {
	switch strings.ToUpper(p.Kind) {
	case "INT":
		if p.Int == nil {
			return mdtypes.PropertyValue{}, mderrors.InvalidArgument("property kind INT requires int_value")
		}
		return mdtypes.IntProperty(*p.Int), nil
	case "DOUBLE":
		if p.Double == nil {
			return mdtypes.PropertyValue{}, mderrors.InvalidArgument("property kind DOUBLE requires double_value")
		}
		return mdtypes.DoubleProperty(*p.Double), nil
	case "STRING":
		if p.String == nil {
			return mdtypes.PropertyValue{}, mderrors.InvalidArgument("property kind STRING requires string_value")
		}
		return mdtypes.StringProperty(*p.String), nil
	case "STRUCT":
		return mdtypes.StructProperty(p.Struct), nil
	default:
		return mdtypes.PropertyValue{}, mderrors.InvalidArgument("unknown property kind %q", p.Kind)
	}
}

func propertyValueFromDomain(v mdtypes.PropertyValue) PropertyValueJSON {
	out := PropertyValueJSON{Kind: v.Kind.String()}
	switch v.Kind {
	case mdtypes.PropertyTypeInt:
		out.Int = &v.IntValue
	case mdtypes.PropertyTypeDouble:
		out.Double = &v.DoubleValue
	case mdtypes.PropertyTypeString:
		out.String = &v.StringValue
	case mdtypes.PropertyTypeStruct:
		out.Struct = v.StructValue
	}
	return out
}

func propertiesToDomain(props map[string]PropertyValueJSON) (map[string]mdtypes.PropertyValue, error) {
	if props == nil {
		return nil, nil
	}
	out := make(map[string]mdtypes.PropertyValue, len(props))
	for name, pv := range props {
		v, err := propertyValueToDomain(pv)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

func propertiesFromDomain(props map[string]mdtypes.PropertyValue) map[string]PropertyValueJSON {
	if props == nil {
		return nil
	}
	out := make(map[string]PropertyValueJSON, len(props))
	for name, v := range props {
		out[name] = propertyValueFromDomain(v)
	}
	return out
}

// propertyKindByName/propertyKindName convert a type schema's kind
// enum to/from the wire's upper-case string form.
func propertyKindByName(name string) (mdtypes.PropertyType, error) {
	switch strings.ToUpper(name) {
	case "INT":
		return mdtypes.PropertyTypeInt, nil
	case "DOUBLE":
		return mdtypes.PropertyTypeDouble, nil
	case "STRING":
		return mdtypes.PropertyTypeString, nil
	case "STRUCT":
		return mdtypes.PropertyTypeStruct, nil
	default:
		return mdtypes.PropertyTypeUnknown, mderrors.InvalidArgument("unknown property kind %q", name)
	}
}

func schemaToDomain(schema map[string]string) (map[string]mdtypes.PropertyType, error) {
	if schema == nil {
		return nil, nil
	}
	out := make(map[string]mdtypes.PropertyType, len(schema))
	for name, kind := range schema {
		pt, err := propertyKindByName(kind)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		out[name] = pt
	}
	return out, nil
}

func schemaFromDomain(schema map[string]mdtypes.PropertyType) map[string]string {
	if schema == nil {
		return nil
	}
	out := make(map[string]string, len(schema))
	for name, kind := range schema {
		out[name] = kind.String()
	}
	return out
}

// TypeJSON is the wire shape of mdtypes.Type. BaseType is populated on
// reads; on writes it is interpreted as the base_type descriptor
// (§4.D), with the empty string meaning "no descriptor" and the
// literal "UNSET" meaning the reserved sentinel.
type TypeJSON struct {
	Id         int64             `json:"id,omitempty"`
	Name       string            `json:"name"`
	Version    string            `json:"version,omitempty"`
	Properties map[string]string `json:"properties,omitempty" jsonschema:"Property name to kind (INT, DOUBLE, STRING, STRUCT)"`
	BaseType   string            `json:"base_type,omitempty" jsonschema:"System base type name (Dataset, Model, Metrics, Statistics, Schema), or UNSET"`
}

func typeToDomain(t TypeJSON) (*mdtypes.Type, error) {
	props, err := schemaToDomain(t.Properties)
	if err != nil {
		return nil, err
	}
	domain := &mdtypes.Type{
		ID:         t.Id,
		Name:       t.Name,
		Version:    mdtypes.NormalizeVersion(t.Version),
		Properties: props,
	}
	if t.BaseType != "" {
		if strings.ToUpper(t.BaseType) == "UNSET" {
			unset := mdtypes.BaseTypeUnset
			domain.RequestedBaseType = &unset
		} else {
			bt, ok := mdtypes.BaseTypeByName(t.BaseType)
			if !ok {
				return nil, mderrors.InvalidArgument("unknown base_type %q", t.BaseType)
			}
			domain.RequestedBaseType = &bt
		}
	}
	return domain, nil
}

func typeFromDomain(t *mdtypes.Type) TypeJSON {
	return TypeJSON{
		Id:         t.ID,
		Name:       t.Name,
		Version:    mdtypes.VersionOrEmpty(t.Version),
		Properties: schemaFromDomain(t.Properties),
		BaseType:   mdtypes.BaseTypeName(t.BaseType),
	}
}

func typesFromDomain(types []*mdtypes.Type) []TypeJSON {
	out := make([]TypeJSON, 0, len(types))
	for _, t := range types {
		out = append(out, typeFromDomain(t))
	}
	return out
}

// ArtifactJSON is the wire shape of mdtypes.Artifact.
type ArtifactJSON struct {
	Id                       int64                        `json:"id,omitempty"`
	TypeId                   int64                        `json:"type_id"`
	Name                     string                       `json:"name,omitempty"`
	Uri                      string                       `json:"uri,omitempty"`
	Properties               map[string]PropertyValueJSON `json:"properties,omitempty"`
	CustomProperties         map[string]PropertyValueJSON `json:"custom_properties,omitempty"`
	CreateTimeSinceEpoch     int64                        `json:"create_time_since_epoch,omitempty"`
	LastUpdateTimeSinceEpoch int64                        `json:"last_update_time_since_epoch,omitempty"`
}

func artifactToDomain(a ArtifactJSON) (*mdtypes.Artifact, error) {
	props, err := propertiesToDomain(a.Properties)
	if err != nil {
		return nil, err
	}
	custom, err := propertiesToDomain(a.CustomProperties)
	if err != nil {
		return nil, err
	}
	out := &mdtypes.Artifact{
		ID:                       a.Id,
		TypeID:                   a.TypeId,
		Properties:               props,
		CustomProperties:         custom,
		LastUpdateTimeSinceEpoch: a.LastUpdateTimeSinceEpoch,
	}
	if a.Name != "" {
		out.Name = &a.Name
	}
	if a.Uri != "" {
		out.URI = &a.Uri
	}
	return out, nil
}

func artifactFromDomain(a *mdtypes.Artifact) ArtifactJSON {
	out := ArtifactJSON{
		Id:                       a.ID,
		TypeId:                   a.TypeID,
		Properties:               propertiesFromDomain(a.Properties),
		CustomProperties:         propertiesFromDomain(a.CustomProperties),
		CreateTimeSinceEpoch:     a.CreateTimeSinceEpoch,
		LastUpdateTimeSinceEpoch: a.LastUpdateTimeSinceEpoch,
	}
	if a.Name != nil {
		out.Name = *a.Name
	}
	if a.URI != nil {
		out.Uri = *a.URI
	}
	return out
}

func artifactsFromDomain(artifacts []*mdtypes.Artifact) []ArtifactJSON {
	out := make([]ArtifactJSON, 0, len(artifacts))
	for _, a := range artifacts {
		out = append(out, artifactFromDomain(a))
	}
	return out
}

// ExecutionJSON is the wire shape of mdtypes.Execution.
type ExecutionJSON struct {
	Id                       int64                        `json:"id,omitempty"`
	TypeId                   int64                        `json:"type_id"`
	Name                     string                       `json:"name,omitempty"`
	Properties               map[string]PropertyValueJSON `json:"properties,omitempty"`
	CustomProperties         map[string]PropertyValueJSON `json:"custom_properties,omitempty"`
	CreateTimeSinceEpoch     int64                        `json:"create_time_since_epoch,omitempty"`
	LastUpdateTimeSinceEpoch int64                        `json:"last_update_time_since_epoch,omitempty"`
}

func executionToDomain(e ExecutionJSON) (*mdtypes.Execution, error) {
	props, err := propertiesToDomain(e.Properties)
	if err != nil {
		return nil, err
	}
	custom, err := propertiesToDomain(e.CustomProperties)
	if err != nil {
		return nil, err
	}
	out := &mdtypes.Execution{
		ID:                       e.Id,
		TypeID:                   e.TypeId,
		Properties:               props,
		CustomProperties:         custom,
		LastUpdateTimeSinceEpoch: e.LastUpdateTimeSinceEpoch,
	}
	if e.Name != "" {
		out.Name = &e.Name
	}
	return out, nil
}

func executionFromDomain(e *mdtypes.Execution) ExecutionJSON {
	out := ExecutionJSON{
		Id:                       e.ID,
		TypeId:                   e.TypeID,
		Properties:               propertiesFromDomain(e.Properties),
		CustomProperties:         propertiesFromDomain(e.CustomProperties),
		CreateTimeSinceEpoch:     e.CreateTimeSinceEpoch,
		LastUpdateTimeSinceEpoch: e.LastUpdateTimeSinceEpoch,
	}
	if e.Name != nil {
		out.Name = *e.Name
	}
	return out
}

func executionsFromDomain(executions []*mdtypes.Execution) []ExecutionJSON {
	out := make([]ExecutionJSON, 0, len(executions))
	for _, e := range executions {
		out = append(out, executionFromDomain(e))
	}
	return out
}

// ContextJSON is the wire shape of mdtypes.Context. Name is mandatory,
// unlike Artifact/Execution (§3.1).
type ContextJSON struct {
	Id                       int64                        `json:"id,omitempty"`
	TypeId                   int64                        `json:"type_id"`
	Name                     string                       `json:"name"`
	Properties               map[string]PropertyValueJSON `json:"properties,omitempty"`
	CustomProperties         map[string]PropertyValueJSON `json:"custom_properties,omitempty"`
	CreateTimeSinceEpoch     int64                        `json:"create_time_since_epoch,omitempty"`
	LastUpdateTimeSinceEpoch int64                        `json:"last_update_time_since_epoch,omitempty"`
}

func contextToDomain(c ContextJSON) (*mdtypes.Context, error) {
	props, err := propertiesToDomain(c.Properties)
	if err != nil {
		return nil, err
	}
	custom, err := propertiesToDomain(c.CustomProperties)
	if err != nil {
		return nil, err
	}
	return &mdtypes.Context{
		ID:                       c.Id,
		TypeID:                   c.TypeId,
		Name:                     c.Name,
		Properties:               props,
		CustomProperties:         custom,
		LastUpdateTimeSinceEpoch: c.LastUpdateTimeSinceEpoch,
	}, nil
}

func contextFromDomain(c *mdtypes.Context) ContextJSON {
	return ContextJSON{
		Id:                       c.ID,
		TypeId:                   c.TypeID,
		Name:                     c.Name,
		Properties:               propertiesFromDomain(c.Properties),
		CustomProperties:         propertiesFromDomain(c.CustomProperties),
		CreateTimeSinceEpoch:     c.CreateTimeSinceEpoch,
		LastUpdateTimeSinceEpoch: c.LastUpdateTimeSinceEpoch,
	}
}

func contextsFromDomain(contexts []*mdtypes.Context) []ContextJSON {
	out := make([]ContextJSON, 0, len(contexts))
	for _, c := range contexts {
		out = append(out, contextFromDomain(c))
	}
	return out
}

// PathStepJSON is the wire shape of mdtypes.PathStep: exactly one of
// Key/Index is set.
type PathStepJSON struct {
	Key   string `json:"key,omitempty"`
	Index *int64 `json:"index,omitempty"`
}

// EventJSON is the wire shape of mdtypes.Event.
type EventJSON struct {
	ArtifactId       int64          `json:"artifact_id,omitempty"`
	ExecutionId      int64          `json:"execution_id,omitempty"`
	Kind             string         `json:"kind" jsonschema:"Event role: DECLARED_INPUT, DECLARED_OUTPUT, INPUT, OUTPUT, INTERNAL_INPUT, INTERNAL_OUTPUT"`
	Path             []PathStepJSON `json:"path,omitempty"`
	MillisSinceEpoch int64          `json:"milliseconds_since_epoch,omitempty"`
}

var eventKindNames = map[string]mdtypes.EventKind{
	"DECLARED_INPUT":  mdtypes.EventKindDeclaredInput,
	"DECLARED_OUTPUT": mdtypes.EventKindDeclaredOutput,
	"INPUT":           mdtypes.EventKindInput,
	"OUTPUT":          mdtypes.EventKindOutput,
	"INTERNAL_INPUT":  mdtypes.EventKindInternalInput,
	"INTERNAL_OUTPUT": mdtypes.EventKindInternalOutput,
}

var eventKindStrings = func() map[mdtypes.EventKind]string {
	m := make(map[mdtypes.EventKind]string, len(eventKindNames))
	for name, k := range eventKindNames {
		m[k] = name
	}
	return m
}()

func eventToDomain(e EventJSON) (*mdtypes.Event, error) {
	kind, ok := eventKindNames[strings.ToUpper(e.Kind)]
	if !ok {
		return nil, mderrors.InvalidArgument("unknown event kind %q", e.Kind)
	}
	steps := make([]mdtypes.PathStep, 0, len(e.Path))
	for _, s := range e.Path {
		steps = append(steps, mdtypes.PathStep{Key: s.Key, Index: s.Index})
	}
	return &mdtypes.Event{
		ArtifactID:       e.ArtifactId,
		ExecutionID:      e.ExecutionId,
		Kind:             kind,
		Path:             steps,
		MillisSinceEpoch: e.MillisSinceEpoch,
	}, nil
}

func eventFromDomain(e *mdtypes.Event) EventJSON {
	steps := make([]PathStepJSON, 0, len(e.Path))
	for _, s := range e.Path {
		steps = append(steps, PathStepJSON{Key: s.Key, Index: s.Index})
	}
	return EventJSON{
		ArtifactId:       e.ArtifactID,
		ExecutionId:      e.ExecutionID,
		Kind:             eventKindStrings[e.Kind],
		Path:             steps,
		MillisSinceEpoch: e.MillisSinceEpoch,
	}
}

func eventsFromDomain(events []*mdtypes.Event) []EventJSON {
	out := make([]EventJSON, 0, len(events))
	for _, e := range events {
		out = append(out, eventFromDomain(e))
	}
	return out
}
