package form

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"clubroster/internal/model"
)

func TestMemberDraft_FormDataTrimsAndCopies(t *testing.T) {
	d := MemberDraft{
		Name:         "  Hanako ",
		Avatar:       " https://example.com/a.png ",
		Introduction: "hi\n\n    code\n",
		TagIDs:       []string{"1", "4"},
	}
	got, err := d.FormData()
	if err != nil {
		t.Fatalf("form data: %v", err)
	}
	want := model.MemberFormData{
		Name:         "Hanako",
		Avatar:       "https://example.com/a.png",
		Introduction: "hi\n\n    code\n",
		Tags:         []string{"1", "4"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	got.Tags[0] = "changed"
	if d.TagIDs[0] != "1" {
		t.Fatalf("form data aliases the draft")
	}
}

func TestMemberDraft_BlankIntroductionBecomesEmpty(t *testing.T) {
	got, err := MemberDraft{Name: "A", Avatar: "https://example.com/a.png", Introduction: " \n\t"}.FormData()
	if err != nil {
		t.Fatalf("form data: %v", err)
	}
	if got.Introduction != "" {
		t.Fatalf("expected empty introduction, got %q", got.Introduction)
	}
}

func TestMemberDraft_RejectsOverlongFields(t *testing.T) {
	_, err := MemberDraft{
		Name:         strings.Repeat("名", 81),
		Avatar:       "https://example.com/a.png",
		Introduction: strings.Repeat("x", 4001),
	}.FormData()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if ve.Fields["name"] == "" || ve.Fields["introduction"] == "" {
		t.Fatalf("unexpected fields: %v", ve.Fields)
	}
}

func TestMemberDraft_ValidateRequiresNameAndAvatar(t *testing.T) {
	_, err := MemberDraft{Name: "   "}.FormData()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if ve.Fields["name"] != "is required" || ve.Fields["avatar"] != "is required" {
		t.Fatalf("unexpected fields: %v", ve.Fields)
	}
	if ve.Error() != "avatar is required; name is required" {
		t.Fatalf("unexpected message: %q", ve.Error())
	}
}

func TestMemberDraft_ToggleTag(t *testing.T) {
	var d MemberDraft
	d.ToggleTag("a")
	d.ToggleTag("b")
	d.ToggleTag("c")
	shared := d.TagIDs
	d.ToggleTag("b")
	if !reflect.DeepEqual(d.TagIDs, []string{"a", "c"}) {
		t.Fatalf("got %v", d.TagIDs)
	}
	if !reflect.DeepEqual(shared, []string{"a", "b", "c"}) {
		t.Fatalf("toggle mutated previous slice: %v", shared)
	}
	if d.HasTag("b") || !d.HasTag("c") {
		t.Fatalf("HasTag mismatch")
	}
}

func TestDraftFromMember(t *testing.T) {
	m := model.Member{
		ID:     "1",
		Name:   "Taro",
		Avatar: "https://x",
		Tags:   []model.Tag{{ID: "1"}, {ID: "6"}},
	}
	d := DraftFromMember(m)
	if d.Name != "Taro" || !reflect.DeepEqual(d.TagIDs, []string{"1", "6"}) {
		t.Fatalf("unexpected draft: %+v", d)
	}
	d.Reset()
	if d.Name != "" || d.TagIDs != nil {
		t.Fatalf("reset left state: %+v", d)
	}
}

func TestTagDraft(t *testing.T) {
	d := NewTagDraft()
	if d.Category != model.CategoryOther || d.Color != DefaultColors[0] {
		t.Fatalf("unexpected defaults: %+v", d)
	}

	d.CycleCategory(1)
	if d.Category != model.CategoryPosition {
		t.Fatalf("expected wrap to position, got %q", d.Category)
	}
	d.CycleCategory(-1)
	if d.Category != model.CategoryOther {
		t.Fatalf("expected other, got %q", d.Category)
	}
	d.CycleColor(-1)
	if d.Color != DefaultColors[len(DefaultColors)-1] {
		t.Fatalf("expected last color, got %q", d.Color)
	}

	if _, err := d.FormData(); err == nil {
		t.Fatalf("expected error for blank name")
	}
	d.Name = "  Music  "
	d.Category = model.CategoryHobby
	got, err := d.FormData()
	if err != nil {
		t.Fatalf("form data: %v", err)
	}
	if got.Name != "Music" || got.Category != model.CategoryHobby {
		t.Fatalf("unexpected form data: %+v", got)
	}

	d.Color = "blue"
	var ve *ValidationError
	if _, err := d.FormData(); !errors.As(err, &ve) || ve.Fields["color"] == "" {
		t.Fatalf("expected color error, got %v", err)
	}
	d.Category = "sport"
	d.Color = ""
	if _, err := d.FormData(); !errors.As(err, &ve) || ve.Fields["category"] == "" {
		t.Fatalf("expected category error, got %v", err)
	}

	d.Reset()
	if d != NewTagDraft() {
		t.Fatalf("reset mismatch: %+v", d)
	}
}
