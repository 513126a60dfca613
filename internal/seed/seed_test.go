package seed

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"clubroster/internal/model"
	"clubroster/internal/store"
)

type memberShape struct {
	ID, Name, Avatar, Intro string
	Editable                bool
	Created                 string
	Tags                    []model.Tag
}

func shape(s store.Seed) ([]model.Tag, []memberShape) {
	tags := append([]model.Tag{}, s.Tags...)
	var ms []memberShape
	for _, m := range s.Members {
		ms = append(ms, memberShape{
			ID:       m.ID,
			Name:     m.Name,
			Avatar:   m.Avatar,
			Intro:    m.Introduction,
			Editable: m.IsEditable,
			Created:  m.CreatedAt.UTC().String(),
			Tags:     append([]model.Tag{}, m.Tags...),
		})
	}
	return tags, ms
}

func TestDefault_IsValidStoreSeed(t *testing.T) {
	s, err := store.New(Default())
	if err != nil {
		t.Fatalf("default seed rejected: %v", err)
	}
	snap := s.Snapshot()
	if len(snap.Members) != 3 || len(snap.Tags) != 6 {
		t.Fatalf("unexpected default sizes: members=%d tags=%d", len(snap.Members), len(snap.Tags))
	}
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	got, err := Load(context.Background(), "  ")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, Default()) {
		t.Fatalf("expected default seed")
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := Default()
	// A member whose tag copy has drifted from the tag list must survive as-is.
	src.Members[2].Tags[0].Name = "old name"
	src.Members = append(src.Members, model.Member{ID: "bare", Name: "No Tags"})

	for _, name := range []string{"seed.json", "seed.sqlite", "nested/seed.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			if err := Save(ctx, path, src); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := Load(ctx, path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			wantTags, wantMembers := shape(src)
			gotTags, gotMembers := shape(got)
			if !reflect.DeepEqual(gotTags, wantTags) {
				t.Fatalf("tags differ:\n got %+v\nwant %+v", gotTags, wantTags)
			}
			if !reflect.DeepEqual(gotMembers, wantMembers) {
				t.Fatalf("members differ:\n got %+v\nwant %+v", gotMembers, wantMembers)
			}
		})
	}
}

func TestSave_SQLiteReplacesPreviousExport(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seed.sqlite")
	if err := Save(ctx, path, Default()); err != nil {
		t.Fatalf("save: %v", err)
	}
	small := store.Seed{Tags: []model.Tag{{ID: "x", Name: "X", Category: model.CategoryOther}}}
	if err := Save(ctx, path, small); err != nil {
		t.Fatalf("save again: %v", err)
	}
	got, err := Load(ctx, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Tags) != 1 || len(got.Members) != 0 {
		t.Fatalf("stale rows survived: tags=%d members=%d", len(got.Tags), len(got.Members))
	}
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	if _, err := Load(ctx, filepath.Join(dir, "seed.yaml")); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	if _, err := Load(ctx, filepath.Join(dir, "missing.sqlite")); err == nil {
		t.Fatalf("expected missing file error")
	}
	if _, err := os.Stat(filepath.Join(dir, "missing.sqlite")); !os.IsNotExist(err) {
		t.Fatalf("load created a database file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(ctx, bad); err == nil {
		t.Fatalf("expected parse error")
	}
}
