package mdtypes

import "testing"

func TestNormalizeVersion(t *testing.T) {
	if v := NormalizeVersion(""); v != nil {
		t.Errorf("NormalizeVersion(\"\") = %v, want nil", v)
	}
	v := NormalizeVersion("v2")
	if v == nil || *v != "v2" {
		t.Errorf("NormalizeVersion(\"v2\") = %v, want \"v2\"", v)
	}
}

func TestVersionOrEmpty(t *testing.T) {
	if got := VersionOrEmpty(nil); got != "" {
		t.Errorf("VersionOrEmpty(nil) = %q, want \"\"", got)
	}
	v := "v3"
	if got := VersionOrEmpty(&v); got != "v3" {
		t.Errorf("VersionOrEmpty(&v) = %q, want %q", got, v)
	}
}

func TestBaseTypeNameRoundTrip(t *testing.T) {
	for _, bt := range []BaseType{BaseTypeDataset, BaseTypeModel, BaseTypeMetrics, BaseTypeStatistics, BaseTypeSchema} {
		name := BaseTypeName(bt)
		if name == "" {
			t.Fatalf("BaseTypeName(%v) returned empty", bt)
		}
		got, ok := BaseTypeByName(name)
		if !ok || got != bt {
			t.Errorf("BaseTypeByName(%q) = (%v, %v), want (%v, true)", name, got, ok, bt)
		}
	}
}

func TestBaseTypeName_Unset(t *testing.T) {
	if got := BaseTypeName(BaseTypeUnset); got != "" {
		t.Errorf("BaseTypeName(BaseTypeUnset) = %q, want empty", got)
	}
}

func TestBaseTypeByName_Unknown(t *testing.T) {
	if _, ok := BaseTypeByName("NotARealType"); ok {
		t.Error("BaseTypeByName should reject an unrecognized name")
	}
}

func TestArtifactSatisfiesNamedEntity(t *testing.T) {
	var _ NamedEntity = &Artifact{}
	var _ NamedEntity = &Execution{}
	var _ NamedEntity = &Context{}
}

func TestContextGetName_AlwaysNonNil(t *testing.T) {
	c := &Context{Name: "run-1"}
	got := c.GetName()
	if got == nil || *got != "run-1" {
		t.Errorf("Context.GetName() = %v, want pointer to %q", got, "run-1")
	}
}
