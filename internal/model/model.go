package model

import "time"

type Category string

const (
	CategoryPosition Category = "position"
	CategoryHobby    Category = "hobby"
	CategoryOther    Category = "other"
)

// Categories lists every tag category in display order.
var Categories = []Category{CategoryPosition, CategoryHobby, CategoryOther}

func (c Category) Valid() bool {
	switch c {
	case CategoryPosition, CategoryHobby, CategoryOther:
		return true
	}
	return false
}

// Label is the capitalized display name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryPosition:
		return "Position"
	case CategoryHobby:
		return "Hobby"
	case CategoryOther:
		return "Other"
	}
	return string(c)
}

type Tag struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Color    string   `json:"color,omitempty"`
}

type Member struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Avatar       string    `json:"avatar"`
	Introduction string    `json:"introduction"`
	Tags         []Tag     `json:"tags"`
	IsEditable   bool      `json:"isEditable"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasTag reports whether the member carries a tag with the given id.
func (m Member) HasTag(id string) bool {
	for _, t := range m.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

// TagIDs returns the member's tag ids in order.
func (m Member) TagIDs() []string {
	ids := make([]string, 0, len(m.Tags))
	for _, t := range m.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// MemberFormData is a submitted add/edit form. Tags holds tag ids, not tags.
type MemberFormData struct {
	Name         string   `json:"name"`
	Avatar       string   `json:"avatar"`
	Introduction string   `json:"introduction"`
	Tags         []string `json:"tags"`
}

type TagFormData struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Color    string   `json:"color,omitempty"`
}
