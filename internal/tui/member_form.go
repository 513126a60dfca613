package tui

import (
	"strings"

	"clubroster/internal/avatar"
	"clubroster/internal/form"
	"clubroster/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type memberField int

const (
	fieldName memberField = iota
	fieldAvatar
	fieldIntro
	fieldTags
	memberFieldCount
)

// memberForm edits a form.MemberDraft. It is shared by the add view and the
// edit mode of the detail view; the draft is only submitted on ctrl+s.
type memberForm struct {
	draft form.MemberDraft

	name   textinput.Model
	avatar textinput.Model
	intro  textarea.Model

	focus     memberField
	tagCursor int

	// loaded is the draft as passed to load. An input still showing its
	// loaded content submits the loaded value verbatim.
	loaded      form.MemberDraft
	loadedName  string
	loadedIntro string
}

func newMemberForm() memberForm {
	f := memberForm{}

	f.name = textinput.New()
	f.name.Placeholder = "Name"
	f.name.CharLimit = 0
	f.name.Width = 40

	f.avatar = textinput.New()
	f.avatar.Placeholder = "Image path or URL (enter to load, ctrl+o to browse)"
	f.avatar.CharLimit = 0
	f.avatar.Width = 60

	f.intro = textarea.New()
	f.intro.Placeholder = "Introduction (markdown)"
	f.intro.CharLimit = 0
	f.intro.MaxHeight = 0
	f.intro.SetWidth(60)
	f.intro.SetHeight(5)
	f.intro.ShowLineNumbers = false

	f.setFocus(fieldName)
	return f
}

// load replaces the draft and the input contents.
func (f *memberForm) load(d form.MemberDraft) {
	f.draft = d
	f.loaded = d
	f.name.SetValue(d.Name)
	f.name.CursorEnd()
	f.avatar.SetValue("")
	f.intro.SetValue(d.Introduction)
	f.loadedName = f.name.Value()
	f.loadedIntro = f.intro.Value()
	f.tagCursor = 0
	f.setFocus(fieldName)
}

func (f *memberForm) reset() {
	f.load(form.MemberDraft{})
}

func (f *memberForm) setFocus(fd memberField) {
	f.focus = fd
	f.name.Blur()
	f.avatar.Blur()
	f.intro.Blur()
	switch fd {
	case fieldName:
		f.name.Focus()
	case fieldAvatar:
		f.avatar.Focus()
	case fieldIntro:
		f.intro.Focus()
	}
}

func (f *memberForm) cycleFocus(delta int) {
	n := int(memberFieldCount)
	f.setFocus(memberField(((int(f.focus)+delta)%n + n) % n))
}

// applyAvatarInput resolves pending text in the avatar field into the draft.
func (f *memberForm) applyAvatarInput(maxPixels int) error {
	in := strings.TrimSpace(f.avatar.Value())
	if in == "" {
		return nil
	}
	if err := f.draft.SetAvatar(in, maxPixels); err != nil {
		return err
	}
	f.avatar.SetValue("")
	return nil
}

// setAvatarFile embeds an image chosen in the file picker.
func (f *memberForm) setAvatarFile(path string, maxPixels int) error {
	ref, err := avatar.FromFile(path, maxPixels)
	if err != nil {
		return err
	}
	f.draft.Avatar = ref
	f.avatar.SetValue("")
	return nil
}

// submission syncs the inputs into the draft and returns validated form data.
func (f *memberForm) submission(maxPixels int) (model.MemberFormData, error) {
	if err := f.applyAvatarInput(maxPixels); err != nil {
		return model.MemberFormData{}, err
	}
	f.draft.Name = f.name.Value()
	if f.draft.Name == f.loadedName {
		f.draft.Name = f.loaded.Name
	}
	f.draft.Introduction = f.intro.Value()
	if f.draft.Introduction == f.loadedIntro {
		f.draft.Introduction = f.loaded.Introduction
	}
	return f.draft.FormData()
}

// update handles a key inside the form. Submit/cancel/file-picker keys are
// handled by the caller before this is reached.
func (f memberForm) update(msg tea.Msg, tags []model.Tag, maxPixels int) (memberForm, tea.Cmd, error) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab":
			f.cycleFocus(1)
			return f, nil, nil
		case "shift+tab":
			f.cycleFocus(-1)
			return f, nil, nil
		}

		switch f.focus {
		case fieldAvatar:
			if k.String() == "enter" {
				return f, nil, f.applyAvatarInput(maxPixels)
			}
		case fieldName:
			if k.String() == "enter" {
				f.cycleFocus(1)
				return f, nil, nil
			}
		case fieldTags:
			switch k.String() {
			case "up", "k":
				if f.tagCursor > 0 {
					f.tagCursor--
				}
			case "down", "j":
				if f.tagCursor < len(tags)-1 {
					f.tagCursor++
				}
			case " ", "x":
				if f.tagCursor >= 0 && f.tagCursor < len(tags) {
					f.draft.ToggleTag(tags[f.tagCursor].ID)
				}
			}
			return f, nil, nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldAvatar:
		f.avatar, cmd = f.avatar.Update(msg)
	case fieldIntro:
		f.intro, cmd = f.intro.Update(msg)
	}
	return f, cmd, nil
}

func (f memberForm) view(width int, tags []model.Tag) string {
	bodyW := width - 4
	if bodyW < 20 {
		bodyW = 20
	}
	label := func(fd memberField, s string) string {
		st := styleMuted()
		if f.focus == fd {
			st = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
		}
		return st.Render(s)
	}

	var b strings.Builder
	b.WriteString(label(fieldName, "Name") + "\n")
	b.WriteString(renderInputLine(bodyW, f.name.View()) + "\n\n")

	b.WriteString(label(fieldAvatar, "Profile image") + "  " + styleMuted().Render(avatar.Summary(f.draft.Avatar)) + "\n")
	b.WriteString(renderInputLine(bodyW, f.avatar.View()) + "\n\n")

	b.WriteString(label(fieldIntro, "Introduction") + "\n")
	f.intro.SetWidth(bodyW)
	b.WriteString(f.intro.View() + "\n\n")

	b.WriteString(label(fieldTags, "Tags") + "\n")
	if len(tags) == 0 {
		b.WriteString(styleMuted().Render("  (no tags yet; press esc and t to add some)") + "\n")
	}
	for i, t := range tags {
		box := "[ ]"
		if f.draft.HasTag(t.ID) {
			box = "[x]"
		}
		cursor := "  "
		if f.focus == fieldTags && i == f.tagCursor {
			cursor = "› "
		}
		line := cursor + box + " " + tagChip(t) + " " + styleMuted().Render(t.Category.Label())
		b.WriteString(truncateLine(line, bodyW) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
