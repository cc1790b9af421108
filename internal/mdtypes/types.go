// Package mdtypes defines the entities of the metadata graph: types,
// artifacts, executions, contexts, events, and the links between them.
package mdtypes

// PropertyType is the closed enum of property-value kinds a Type's
// schema can declare for a property name.
type PropertyType int

const (
	PropertyTypeUnknown PropertyType = iota
	PropertyTypeInt
	PropertyTypeDouble
	PropertyTypeString
	PropertyTypeStruct
)

func (p PropertyType) String() string {
	switch p {
	case PropertyTypeInt:
		return "INT"
	case PropertyTypeDouble:
		return "DOUBLE"
	case PropertyTypeString:
		return "STRING"
	case PropertyTypeStruct:
		return "STRUCT"
	default:
		return "UNKNOWN"
	}
}

// TypeKind distinguishes the three disjoint type namespaces.
type TypeKind int

const (
	TypeKindUnknown TypeKind = iota
	TypeKindArtifact
	TypeKindExecution
	TypeKindContext
)

func (k TypeKind) String() string {
	switch k {
	case TypeKindArtifact:
		return "ArtifactType"
	case TypeKindExecution:
		return "ExecutionType"
	case TypeKindContext:
		return "ContextType"
	default:
		return "UnknownType"
	}
}

// BaseType is the closed mapping between system-type names and the
// SystemTypeExtension enum referenced by a type's base_type link.
type BaseType int

const (
	// BaseTypeUnset is the reserved sentinel: requesting it is unimplemented.
	BaseTypeUnset BaseType = iota
	BaseTypeDataset
	BaseTypeModel
	BaseTypeMetrics
	BaseTypeStatistics
	BaseTypeSchema
)

var baseTypeNames = map[BaseType]string{
	BaseTypeDataset:    "Dataset",
	BaseTypeModel:      "Model",
	BaseTypeMetrics:    "Metrics",
	BaseTypeStatistics: "Statistics",
	BaseTypeSchema:     "Schema",
}

var baseTypeByName = func() map[string]BaseType {
	m := make(map[string]BaseType, len(baseTypeNames))
	for bt, name := range baseTypeNames {
		m[name] = bt
	}
	return m
}()

// BaseTypeName returns the system-type name for a BaseType, or "" if unset
// or unrecognized.
func BaseTypeName(bt BaseType) string {
	return baseTypeNames[bt]
}

// BaseTypeByName resolves a system-type name to its enum value. ok is false
// for names outside the closed mapping.
func BaseTypeByName(name string) (BaseType, bool) {
	bt, ok := baseTypeByName[name]
	return bt, ok
}

// PropertyValue is a sum type over the four PropertyType kinds. Only the
// field matching Kind is meaningful.
type PropertyValue struct {
	Kind        PropertyType
	IntValue    int64
	DoubleValue float64
	StringValue string
	StructValue map[string]any
}

func IntProperty(v int64) PropertyValue      { return PropertyValue{Kind: PropertyTypeInt, IntValue: v} }
func DoubleProperty(v float64) PropertyValue { return PropertyValue{Kind: PropertyTypeDouble, DoubleValue: v} }
func StringProperty(v string) PropertyValue  { return PropertyValue{Kind: PropertyTypeString, StringValue: v} }
func StructProperty(v map[string]any) PropertyValue {
	return PropertyValue{Kind: PropertyTypeStruct, StructValue: v}
}

// Type is a name+version-keyed schema for one of the three type
// namespaces (Kind). Version is represented by *string: nil means
// absent. An empty string is coerced to absent at the API boundary,
// never stored as-is (§9 "Optional version").
type Type struct {
	ID         int64
	Kind       TypeKind
	Name       string
	Version    *string
	Properties map[string]PropertyType

	// BaseType is populated on reads by resolving the type's ParentType
	// link (§4.D "Set-base-type on reads"). BaseTypeUnset means no parent.
	BaseType BaseType

	// RequestedBaseType is input-only: the base_type descriptor carried
	// by a PutType-family request, distinct from BaseType above. nil
	// means the request carries no descriptor at all (no-op); a
	// non-nil pointer to BaseTypeUnset means the caller explicitly
	// requested the reserved sentinel (unimplemented, §4.D).
	RequestedBaseType *BaseType
}

// NormalizeVersion coerces an empty-string version to absent, per §9.
func NormalizeVersion(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// VersionOrEmpty returns the dereferenced version, or "" if absent.
func VersionOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
