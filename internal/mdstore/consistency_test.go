package mdstore

import (
	"testing"

	"github.com/mlmd/store/internal/mderrors"
	"github.com/mlmd/store/internal/mdtypes"
)

func typeWithProps(name string, props map[string]mdtypes.PropertyType) *mdtypes.Type {
	return &mdtypes.Type{ID: 1, Kind: mdtypes.TypeKindArtifact, Name: name, Properties: props}
}

func TestCheckTypeConsistency_ExactMatch(t *testing.T) {
	stored := typeWithProps("Img", map[string]mdtypes.PropertyType{"w": mdtypes.PropertyTypeInt})
	incoming := typeWithProps("Img", map[string]mdtypes.PropertyType{"w": mdtypes.PropertyTypeInt})

	merged, err := checkTypeConsistency(stored, incoming, false, false)
	if err != nil {
		t.Fatalf("checkTypeConsistency: %v", err)
	}
	if len(merged.Properties) != 1 {
		t.Errorf("Properties = %v, want 1 entry", merged.Properties)
	}
}

func TestCheckTypeConsistency_NameMismatch(t *testing.T) {
	stored := typeWithProps("Img", nil)
	incoming := typeWithProps("Other", nil)

	if _, err := checkTypeConsistency(stored, incoming, true, true); !mderrors.IsAlreadyExists(err) {
		t.Fatalf("err = %v, want AlreadyExists", err)
	}
}

func TestCheckTypeConsistency_KindConflict(t *testing.T) {
	stored := typeWithProps("Img", map[string]mdtypes.PropertyType{"u": mdtypes.PropertyTypeString})
	incoming := typeWithProps("Img", map[string]mdtypes.PropertyType{"u": mdtypes.PropertyTypeInt})

	if _, err := checkTypeConsistency(stored, incoming, true, true); !mderrors.IsAlreadyExists(err) {
		t.Fatalf("err = %v, want AlreadyExists", err)
	}
}

func TestCheckTypeConsistency_AddField(t *testing.T) {
	stored := typeWithProps("Img", map[string]mdtypes.PropertyType{"u": mdtypes.PropertyTypeString})
	incoming := typeWithProps("Img", map[string]mdtypes.PropertyType{
		"u": mdtypes.PropertyTypeString,
		"w": mdtypes.PropertyTypeInt,
	})

	if _, err := checkTypeConsistency(stored, incoming, false, false); !mderrors.IsAlreadyExists(err) {
		t.Fatalf("err = %v, want AlreadyExists when can_add_fields is false", err)
	}

	merged, err := checkTypeConsistency(stored, incoming, true, false)
	if err != nil {
		t.Fatalf("checkTypeConsistency: %v", err)
	}
	if len(merged.Properties) != 2 {
		t.Errorf("Properties = %v, want 2 entries", merged.Properties)
	}
}

func TestCheckTypeConsistency_OmitField(t *testing.T) {
	stored := typeWithProps("Img", map[string]mdtypes.PropertyType{
		"u": mdtypes.PropertyTypeString,
		"w": mdtypes.PropertyTypeInt,
	})
	incoming := typeWithProps("Img", map[string]mdtypes.PropertyType{"u": mdtypes.PropertyTypeString})

	if _, err := checkTypeConsistency(stored, incoming, false, false); !mderrors.IsAlreadyExists(err) {
		t.Fatalf("err = %v, want AlreadyExists when can_omit_fields is false", err)
	}

	merged, err := checkTypeConsistency(stored, incoming, false, true)
	if err != nil {
		t.Fatalf("checkTypeConsistency: %v", err)
	}
	if len(merged.Properties) != 2 {
		t.Errorf("Properties = %v, want the stored schema kept in full", merged.Properties)
	}
}
