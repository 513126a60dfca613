package form

import (
	"strings"

	"clubroster/internal/model"
)

// DefaultColors is the palette offered when creating a tag.
var DefaultColors = []string{
	"#1976d2", // blue
	"#388e3c", // green
	"#d32f2f", // red
	"#f57c00", // orange
	"#7b1fa2", // purple
	"#00796b", // teal
}

type TagDraft struct {
	Name     string         `json:"name" validate:"required,max=40"`
	Category model.Category `json:"category" validate:"required,oneof=position hobby other"`
	Color    string         `json:"color" validate:"omitempty,hexcolor"`
}

// NewTagDraft returns the reset state of the tag form.
func NewTagDraft() TagDraft {
	return TagDraft{Category: model.CategoryOther, Color: DefaultColors[0]}
}

func (d *TagDraft) Reset() { *d = NewTagDraft() }

// CycleCategory steps through model.Categories by delta, wrapping around.
func (d *TagDraft) CycleCategory(delta int) {
	n := len(model.Categories)
	idx := 0
	for i, c := range model.Categories {
		if c == d.Category {
			idx = i
			break
		}
	}
	d.Category = model.Categories[((idx+delta)%n+n)%n]
}

// CycleColor steps through DefaultColors by delta, wrapping around.
func (d *TagDraft) CycleColor(delta int) {
	n := len(DefaultColors)
	idx := 0
	for i, c := range DefaultColors {
		if strings.EqualFold(c, d.Color) {
			idx = i
			break
		}
	}
	d.Color = DefaultColors[((idx+delta)%n+n)%n]
}

// FormData validates the draft and returns the submission for the store.
// The name is trimmed.
func (d TagDraft) FormData() (model.TagFormData, error) {
	d.Name = strings.TrimSpace(d.Name)
	if err := check(d); err != nil {
		return model.TagFormData{}, err
	}
	return model.TagFormData{Name: d.Name, Category: d.Category, Color: d.Color}, nil
}
