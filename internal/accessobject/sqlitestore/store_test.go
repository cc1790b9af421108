package sqlitestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mlmd/store/internal/accessobject"
	"github.com/mlmd/store/internal/mdtypes"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	dir, err := os.MkdirTemp("", "mdstore-sqlite-test-*")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	s, err := Open(filepath.Join(dir, "metadata.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.BindUnbound().InitMetadataSource(context.Background()); err != nil {
		t.Fatalf("InitMetadataSource: %v", err)
	}
	return s
}

func TestInitMetadataSource_CreatesSchema(t *testing.T) {
	s := tempStore(t)
	ao := s.BindUnbound()

	id, err := ao.CreateType(context.Background(), &mdtypes.Type{
		Kind: mdtypes.TypeKindArtifact,
		Name: "Dataset",
	})
	if err != nil {
		t.Fatalf("CreateType: %v", err)
	}
	if id == 0 {
		t.Error("expected a nonzero type id")
	}
}

func TestCreateAndFindArtifact(t *testing.T) {
	s := tempStore(t)
	ao := s.BindUnbound()
	ctx := context.Background()

	typeID, err := ao.CreateType(ctx, &mdtypes.Type{Kind: mdtypes.TypeKindArtifact, Name: "Img"})
	if err != nil {
		t.Fatalf("CreateType: %v", err)
	}

	name := "img-1"
	uri := "gs://bucket/img-1.png"
	id, err := ao.CreateArtifact(ctx, &mdtypes.Artifact{
		TypeID:                   typeID,
		Name:                     &name,
		URI:                      &uri,
		CreateTimeSinceEpoch:     1000,
		LastUpdateTimeSinceEpoch: 1000,
		Properties:               map[string]mdtypes.PropertyValue{"w": mdtypes.IntProperty(128)},
	})
	if err != nil {
		t.Fatalf("CreateArtifact: %v", err)
	}

	got, err := ao.FindArtifactsById(ctx, []int64{id})
	if err != nil {
		t.Fatalf("FindArtifactsById: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d artifacts, want 1", len(got))
	}
	if got[0].Name == nil || *got[0].Name != name {
		t.Errorf("Name = %v, want %q", got[0].Name, name)
	}
	if got[0].Properties["w"].IntValue != 128 {
		t.Errorf("Properties[w] = %+v, want IntValue=128", got[0].Properties["w"])
	}

	byURI, err := ao.FindArtifactsByURI(ctx, []string{uri})
	if err != nil {
		t.Fatalf("FindArtifactsByURI: %v", err)
	}
	if len(byURI) != 1 || byURI[0].ID != id {
		t.Errorf("FindArtifactsByURI returned %+v, want artifact %d", byURI, id)
	}
}

func TestCreateContext_DuplicateNameIsAlreadyExists(t *testing.T) {
	s := tempStore(t)
	ao := s.BindUnbound()
	ctx := context.Background()

	typeID, err := ao.CreateType(ctx, &mdtypes.Type{Kind: mdtypes.TypeKindContext, Name: "Pipeline"})
	if err != nil {
		t.Fatalf("CreateType: %v", err)
	}

	c := &mdtypes.Context{TypeID: typeID, Name: "run-1", CreateTimeSinceEpoch: 1, LastUpdateTimeSinceEpoch: 1}
	if _, err := ao.CreateContext(ctx, c); err != nil {
		t.Fatalf("CreateContext: %v", err)
	}
	if _, err := ao.CreateContext(ctx, c); err == nil {
		t.Fatal("expected a duplicate (type_id, name) insert to fail")
	}
}

func TestListArtifacts_FiltersByName(t *testing.T) {
	s := tempStore(t)
	ao := s.BindUnbound()
	ctx := context.Background()

	typeID, err := ao.CreateType(ctx, &mdtypes.Type{Kind: mdtypes.TypeKindArtifact, Name: "Img"})
	if err != nil {
		t.Fatalf("CreateType: %v", err)
	}
	for _, n := range []string{"a", "b"} {
		name := n
		if _, err := ao.CreateArtifact(ctx, &mdtypes.Artifact{
			TypeID: typeID, Name: &name, CreateTimeSinceEpoch: 1, LastUpdateTimeSinceEpoch: 1,
		}); err != nil {
			t.Fatalf("CreateArtifact(%q): %v", n, err)
		}
	}

	matched, _, err := ao.ListArtifacts(ctx, accessobject.ListOptions{FilterQuery: `name = "b"`})
	if err != nil {
		t.Fatalf("ListArtifacts: %v", err)
	}
	if len(matched) != 1 || matched[0].Name == nil || *matched[0].Name != "b" {
		t.Fatalf("ListArtifacts filtered = %+v, want exactly artifact %q", matched, "b")
	}
}
