// Package form holds the add/edit drafts the TUI edits before submitting to
// the store.
package form

import (
	"strings"

	"clubroster/internal/avatar"
	"clubroster/internal/model"
)

// MemberDraft is unsaved add/edit state. It never touches the store until
// FormData is submitted.
type MemberDraft struct {
	Name         string   `json:"name" validate:"required,max=80"`
	Avatar       string   `json:"avatar" validate:"required"`
	Introduction string   `json:"introduction" validate:"max=4000"`
	TagIDs       []string `json:"tags" validate:"dive,required"`
}

// DraftFromMember seeds an edit draft from an existing member.
func DraftFromMember(m model.Member) MemberDraft {
	return MemberDraft{
		Name:         m.Name,
		Avatar:       m.Avatar,
		Introduction: m.Introduction,
		TagIDs:       m.TagIDs(),
	}
}

func (d *MemberDraft) Reset() { *d = MemberDraft{} }

// ToggleTag selects or deselects a tag id, keeping selection order.
func (d *MemberDraft) ToggleTag(id string) {
	for i, cur := range d.TagIDs {
		if cur == id {
			d.TagIDs = append(d.TagIDs[:i:i], d.TagIDs[i+1:]...)
			return
		}
	}
	d.TagIDs = append(d.TagIDs, id)
}

func (d MemberDraft) HasTag(id string) bool {
	for _, cur := range d.TagIDs {
		if cur == id {
			return true
		}
	}
	return false
}

// SetAvatar resolves input (URL, data URL or image path) into an embedded
// reference and stores it in the draft.
func (d *MemberDraft) SetAvatar(input string, maxPixels int) error {
	ref, err := avatar.Resolve(input, maxPixels)
	if err != nil {
		return err
	}
	d.Avatar = ref
	return nil
}

// normalized trims name and avatar. The introduction keeps its whitespace; a
// blank one becomes empty.
func (d MemberDraft) normalized() MemberDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Avatar = strings.TrimSpace(d.Avatar)
	if strings.TrimSpace(d.Introduction) == "" {
		d.Introduction = ""
	}
	return d
}

// FormData validates the draft and returns the submission for the store.
func (d MemberDraft) FormData() (model.MemberFormData, error) {
	n := d.normalized()
	if err := check(n); err != nil {
		return model.MemberFormData{}, err
	}
	return model.MemberFormData{
		Name:         n.Name,
		Avatar:       n.Avatar,
		Introduction: n.Introduction,
		Tags:         append([]string(nil), n.TagIDs...),
	}, nil
}
