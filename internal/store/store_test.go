package store

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"clubroster/internal/model"
)

func testSeed() Seed {
	tags := []model.Tag{
		{ID: "1", Name: "Captain", Category: model.CategoryPosition, Color: "#1976d2"},
		{ID: "2", Name: "Games", Category: model.CategoryHobby, Color: "#f57c00"},
	}
	return Seed{
		Tags: tags,
		Members: []model.Member{
			{ID: "a", Name: "A", Tags: []model.Tag{tags[0]}, IsEditable: true},
			{ID: "b", Name: "B", Tags: []model.Tag{tags[1]}, IsEditable: true},
			{ID: "c", Name: "C", IsEditable: false},
		},
	}
}

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func memberIDs(ms []model.Member) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ID)
	}
	return out
}

func mustStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := New(testSeed(), opts...)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestNew_RejectsInvalidSeed(t *testing.T) {
	cases := []struct {
		name string
		seed Seed
	}{
		{"duplicate member", Seed{Members: []model.Member{{ID: "x"}, {ID: "x"}}}},
		{"duplicate tag", Seed{Tags: []model.Tag{
			{ID: "t", Category: model.CategoryOther},
			{ID: "t", Category: model.CategoryHobby},
		}}},
		{"bad category", Seed{Tags: []model.Tag{{ID: "t", Category: "sport"}}}},
		{"missing member id", Seed{Members: []model.Member{{Name: "nobody"}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.seed)
			var se *SeedError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SeedError, got %v", err)
			}
		})
	}
}

func TestNew_CopiesSeed(t *testing.T) {
	seed := testSeed()
	s, err := New(seed)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	seed.Members[0].Name = "mutated"
	seed.Members[0].Tags[0].Name = "mutated"

	got, _ := s.Snapshot().Member("a")
	if got.Name != "A" || got.Tags[0].Name != "Captain" {
		t.Fatalf("store shares memory with seed: %+v", got)
	}
}

func TestAddMember_AppendsWithFreshID(t *testing.T) {
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	s := mustStore(t, WithClock(func() time.Time { return now }))
	before := s.Snapshot()

	m := s.AddMember(model.MemberFormData{Name: "D", Avatar: "https://example.com/d.png", Tags: []string{"2"}})

	after := s.Snapshot()
	if len(after.Members) != len(before.Members)+1 {
		t.Fatalf("expected %d members, got %d", len(before.Members)+1, len(after.Members))
	}
	if before.MemberIndex(m.ID) >= 0 {
		t.Fatalf("new id %q already present", m.ID)
	}
	last := after.Members[len(after.Members)-1]
	if last.ID != m.ID {
		t.Fatalf("expected new member last, got %q", last.ID)
	}
	if !last.IsEditable || !last.CreatedAt.Equal(now) {
		t.Fatalf("unexpected defaults: editable=%v createdAt=%v", last.IsEditable, last.CreatedAt)
	}
	if len(last.Tags) != 1 || last.Tags[0].Name != "Games" {
		t.Fatalf("unexpected tags: %+v", last.Tags)
	}
	if after.Version <= before.Version {
		t.Fatalf("version did not advance")
	}
}

func TestAddMember_SkipsTakenIDs(t *testing.T) {
	ids := []string{"a", "b", "fresh"}
	s := mustStore(t, WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	m := s.AddMember(model.MemberFormData{Name: "D"})
	if m.ID != "fresh" {
		t.Fatalf("expected fresh id, got %q", m.ID)
	}
}

func TestAddMember_DropsUnknownTags(t *testing.T) {
	s := mustStore(t)
	m := s.AddMember(model.MemberFormData{Name: "D", Tags: []string{"1", "999"}})
	if len(m.Tags) != 1 || m.Tags[0].ID != "1" {
		t.Fatalf("expected exactly tag 1, got %+v", m.Tags)
	}
}

func TestUpdateMember_PreservesIdentityFields(t *testing.T) {
	s := mustStore(t)
	before, _ := s.Snapshot().Member("c")

	ok := s.UpdateMember("c", model.MemberFormData{
		Name:         "C2",
		Avatar:       "data:image/png;base64,AA==",
		Introduction: "hello",
		Tags:         []string{"2", "1"},
	})
	if !ok {
		t.Fatalf("expected update to apply")
	}
	snap := s.Snapshot()
	got, _ := snap.Member("c")
	if got.Name != "C2" || got.Avatar != "data:image/png;base64,AA==" || got.Introduction != "hello" {
		t.Fatalf("fields not replaced: %+v", got)
	}
	if got.ID != before.ID || got.IsEditable != before.IsEditable || !got.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("identity fields changed: %+v", got)
	}
	if !reflect.DeepEqual(got.TagIDs(), []string{"2", "1"}) {
		t.Fatalf("unexpected tag order: %v", got.TagIDs())
	}
	if snap.MemberIndex("c") != 2 {
		t.Fatalf("member moved during update")
	}
}

func TestUpdateMember_UnknownIDIsNoop(t *testing.T) {
	s := mustStore(t)
	before := s.Snapshot()

	if s.UpdateMember("nope", model.MemberFormData{Name: "X"}) {
		t.Fatalf("expected no-op")
	}
	after := s.Snapshot()
	if !reflect.DeepEqual(before.Members, after.Members) || after.Version != before.Version {
		t.Fatalf("members changed on unknown update")
	}
}

func TestUpdateMember_RefreshesSelection(t *testing.T) {
	s := mustStore(t)
	if !s.SelectMember("b") {
		t.Fatalf("select failed")
	}
	s.UpdateMember("b", model.MemberFormData{Name: "B2", Tags: []string{"1"}})

	sel := s.Snapshot().Selected
	if sel == nil || sel.Name != "B2" || len(sel.Tags) != 1 || sel.Tags[0].ID != "1" {
		t.Fatalf("selection not refreshed: %+v", sel)
	}

	// Updating another member leaves the selection alone.
	s.UpdateMember("a", model.MemberFormData{Name: "A2"})
	if got := s.Snapshot().Selected; got == nil || got.ID != "b" || got.Name != "B2" {
		t.Fatalf("unexpected selection: %+v", got)
	}

	s.ClearSelection()
	if s.Snapshot().Selected != nil {
		t.Fatalf("selection not cleared")
	}
}

func TestAddTag_AppearsInGroup(t *testing.T) {
	s := mustStore(t, WithIDGenerator(seqIDs("tag")))
	before := len(s.Snapshot().Tags)

	tag, ok := s.AddTag(model.TagFormData{Name: "Music", Category: model.CategoryHobby})
	if !ok {
		t.Fatalf("AddTag rejected a valid category")
	}

	snap := s.Snapshot()
	if len(snap.Tags) != before+1 {
		t.Fatalf("expected %d tags, got %d", before+1, len(snap.Tags))
	}
	for _, g := range GroupTags(snap.Tags) {
		if g.Category != model.CategoryHobby {
			continue
		}
		if g.Tags[len(g.Tags)-1].ID != tag.ID {
			t.Fatalf("new tag not last in hobby bucket: %+v", g.Tags)
		}
		return
	}
	t.Fatalf("hobby bucket missing")
}

func TestAddTag_AllowsDuplicateNames(t *testing.T) {
	s := mustStore(t)
	a, _ := s.AddTag(model.TagFormData{Name: "Games", Category: model.CategoryHobby})
	if a.ID == "2" {
		t.Fatalf("expected a new id")
	}
	if got := len(s.Snapshot().Tags); got != 3 {
		t.Fatalf("expected 3 tags, got %d", got)
	}
}

func TestAddTag_RejectsUnknownCategory(t *testing.T) {
	s := mustStore(t)
	before := s.Snapshot()

	for _, c := range []model.Category{"sport", ""} {
		if _, ok := s.AddTag(model.TagFormData{Name: "Sport", Category: c}); ok {
			t.Fatalf("category %q accepted", c)
		}
	}
	after := s.Snapshot()
	if len(after.Tags) != len(before.Tags) || after.Version != before.Version {
		t.Fatalf("rejected tag changed the state: tags=%d version=%d", len(after.Tags), after.Version)
	}
	// The state stays loadable as a seed.
	if _, err := New(s.Seed()); err != nil {
		t.Fatalf("state no longer a valid seed: %v", err)
	}
}

func TestReorderMembers_MovesSingleElement(t *testing.T) {
	cases := []struct {
		old, new int
		want     []string
	}{
		{0, 2, []string{"b", "c", "a"}},
		{2, 0, []string{"c", "a", "b"}},
		{0, 1, []string{"b", "a", "c"}},
		{1, 1, []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d_to_%d", tc.old, tc.new), func(t *testing.T) {
			s := mustStore(t)
			if !s.ReorderMembers(tc.old, tc.new) {
				t.Fatalf("reorder rejected")
			}
			if got := memberIDs(s.Snapshot().Members); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestReorderMembers_PreservesMultiset(t *testing.T) {
	seed := testSeed()
	for i := 0; i < 5; i++ {
		seed.Members = append(seed.Members, model.Member{ID: fmt.Sprintf("m%d", i)})
	}
	n := len(seed.Members)
	for old := 0; old < n; old++ {
		for nw := 0; nw < n; nw++ {
			s, err := New(seed)
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			s.ReorderMembers(old, nw)
			got := memberIDs(s.Snapshot().Members)
			if len(got) != n {
				t.Fatalf("len changed: %d", len(got))
			}
			seen := map[string]int{}
			for _, id := range got {
				seen[id]++
			}
			for _, m := range seed.Members {
				if seen[m.ID] != 1 {
					t.Fatalf("reorder(%d,%d) lost or duplicated %q: %v", old, nw, m.ID, got)
				}
			}
			if got[nw] != seed.Members[old].ID {
				t.Fatalf("reorder(%d,%d): expected %q at %d, got %v", old, nw, seed.Members[old].ID, nw, got)
			}
		}
	}
}

func TestReorderMembers_SameIndexKeepsVersion(t *testing.T) {
	s := mustStore(t)
	v := s.Snapshot().Version
	s.ReorderMembers(1, 1)
	if s.Snapshot().Version != v {
		t.Fatalf("no-op reorder published a snapshot")
	}
}

func TestReorderMembers_OutOfRangeIgnored(t *testing.T) {
	s := mustStore(t)
	for _, p := range [][2]int{{-1, 0}, {0, 3}, {3, 3}} {
		if s.ReorderMembers(p[0], p[1]) {
			t.Fatalf("reorder(%d,%d) should be rejected", p[0], p[1])
		}
	}
	if got := memberIDs(s.Snapshot().Members); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("order changed: %v", got)
	}
}

func TestSnapshot_UnaffectedByLaterMutations(t *testing.T) {
	s := mustStore(t)
	old := s.Snapshot()

	s.ReorderMembers(0, 2)
	s.UpdateMember("a", model.MemberFormData{Name: "changed"})
	s.AddTag(model.TagFormData{Name: "New", Category: model.CategoryOther})

	if got := memberIDs(old.Members); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("old snapshot order changed: %v", got)
	}
	if old.Members[0].Name != "A" {
		t.Fatalf("old snapshot member changed: %+v", old.Members[0])
	}
	if len(old.Tags) != 2 {
		t.Fatalf("old snapshot tags changed: %d", len(old.Tags))
	}
}

func TestSelectMember_Unknown(t *testing.T) {
	s := mustStore(t)
	if s.SelectMember("zzz") {
		t.Fatalf("expected false for unknown member")
	}
	if s.Snapshot().Selected != nil {
		t.Fatalf("unexpected selection")
	}
}
