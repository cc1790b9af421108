package mdstore

import (
	"sort"
	"testing"

	"github.com/mlmd/store/internal/mdtypes"
)

func TestSimpleTypeNames_PartitionsByKind(t *testing.T) {
	artifacts := SimpleTypeNames(mdtypes.TypeKindArtifact)
	executions := SimpleTypeNames(mdtypes.TypeKindExecution)
	contexts := SimpleTypeNames(mdtypes.TypeKindContext)

	wantArtifacts := []string{"Dataset", "Model", "Metrics", "Statistics", "Schema", "String"}
	sort.Strings(artifacts)
	sort.Strings(wantArtifacts)
	if !equalStrings(artifacts, wantArtifacts) {
		t.Errorf("artifact simple types = %v, want %v", artifacts, wantArtifacts)
	}

	if !equalStrings(sortedCopy(executions), []string{"ComponentRun"}) {
		t.Errorf("execution simple types = %v, want [ComponentRun]", executions)
	}

	wantContexts := []string{"Pipeline", "PipelineRun"}
	sort.Strings(contexts)
	if !equalStrings(contexts, wantContexts) {
		t.Errorf("context simple types = %v, want %v", contexts, wantContexts)
	}
}

func TestSimpleTypeNames_UnknownKindIsEmpty(t *testing.T) {
	if got := SimpleTypeNames(mdtypes.TypeKindUnknown); len(got) != 0 {
		t.Errorf("SimpleTypeNames(Unknown) = %v, want empty", got)
	}
}

func sortedCopy(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
