package store

import (
	"reflect"
	"testing"

	"clubroster/internal/model"
)

func TestMove_DoesNotAliasInput(t *testing.T) {
	in := []string{"a", "b", "c", "d"}
	out := Move(in, 3, 1)
	if !reflect.DeepEqual(out, []string{"a", "d", "b", "c"}) {
		t.Fatalf("unexpected result: %v", out)
	}
	if !reflect.DeepEqual(in, []string{"a", "b", "c", "d"}) {
		t.Fatalf("input modified: %v", in)
	}
}

func TestDropIndices(t *testing.T) {
	members := []model.Member{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	cases := []struct {
		name           string
		active, over   string
		wantOld, wantN int
		wantOK         bool
	}{
		{"down", "a", "c", 0, 2, true},
		{"up", "c", "b", 2, 1, true},
		{"onto self", "b", "b", 0, 0, false},
		{"no target", "b", "", 0, 0, false},
		{"unknown source", "x", "a", 0, 0, false},
		{"unknown target", "a", "x", 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o, n, ok := DropIndices(members, tc.active, tc.over)
			if ok != tc.wantOK || o != tc.wantOld || n != tc.wantN {
				t.Fatalf("got (%d,%d,%v), want (%d,%d,%v)", o, n, ok, tc.wantOld, tc.wantN, tc.wantOK)
			}
		})
	}
}

func TestDropThenReorder_MatchesDragResult(t *testing.T) {
	s := mustStore(t)
	snap := s.Snapshot()
	o, n, ok := DropIndices(snap.Members, "a", "c")
	if !ok {
		t.Fatalf("expected a move")
	}
	s.ReorderMembers(o, n)
	if got := memberIDs(s.Snapshot().Members); !reflect.DeepEqual(got, []string{"b", "c", "a"}) {
		t.Fatalf("got %v", got)
	}
}
