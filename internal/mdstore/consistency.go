package mdstore

import (
	"github.com/mlmd/store/internal/mderrors"
	"github.com/mlmd/store/internal/mdtypes"
)

// checkTypeConsistency implements §4.C: it compares a stored type S
// against an incoming type T and either returns the merged schema S
// should be persisted as, or an ALREADY_EXISTS error. It never widens
// or narrows a property's kind — a kind collision is always a failure.
func checkTypeConsistency(stored, incoming *mdtypes.Type, canAddFields, canOmitFields bool) (*mdtypes.Type, error) {
	if stored.Name != incoming.Name {
		return nil, mderrors.AlreadyExists("type name conflict: stored=%q incoming=%q", stored.Name, incoming.Name)
	}

	omitted := 0
	for name, kind := range stored.Properties {
		incomingKind, ok := incoming.Properties[name]
		if !ok {
			omitted++
			continue
		}
		if incomingKind != kind {
			return nil, mderrors.AlreadyExists("property %q kind conflict: stored=%s incoming=%s", name, kind, incomingKind)
		}
	}
	if omitted > 0 && !canOmitFields {
		return nil, mderrors.AlreadyExists("incoming type %q omits %d stored properties", incoming.Name, omitted)
	}

	if len(stored.Properties)-omitted == len(incoming.Properties) {
		return stored, nil
	}

	if !canAddFields {
		return nil, mderrors.AlreadyExists("incoming type %q adds new properties", incoming.Name)
	}

	merged := &mdtypes.Type{
		ID:         stored.ID,
		Kind:       stored.Kind,
		Name:       stored.Name,
		Version:    stored.Version,
		Properties: make(map[string]mdtypes.PropertyType, len(stored.Properties)+len(incoming.Properties)),
		BaseType:   stored.BaseType,
	}
	for name, kind := range stored.Properties {
		merged.Properties[name] = kind
	}
	for name, kind := range incoming.Properties {
		if _, ok := merged.Properties[name]; !ok {
			merged.Properties[name] = kind
		}
	}
	return merged, nil
}
