package tui

import (
	"strings"

	"clubroster/internal/form"
	"clubroster/internal/model"
	"clubroster/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tagField int

const (
	tagFieldName tagField = iota
	tagFieldCategory
	tagFieldColor
	tagFieldCount
)

// tagForm is the "add tag" part of the tag management view.
type tagForm struct {
	draft form.TagDraft
	name  textinput.Model
	focus tagField
}

func newTagForm() tagForm {
	f := tagForm{draft: form.NewTagDraft()}
	f.name = textinput.New()
	f.name.Placeholder = "Tag name"
	f.name.CharLimit = 40
	f.name.Width = 30
	f.name.Focus()
	return f
}

func (f *tagForm) reset() {
	f.draft.Reset()
	f.name.SetValue("")
	f.focus = tagFieldName
	f.name.Focus()
}

func (f *tagForm) cycleFocus(delta int) {
	n := int(tagFieldCount)
	f.focus = tagField(((int(f.focus)+delta)%n + n) % n)
	if f.focus == tagFieldName {
		f.name.Focus()
	} else {
		f.name.Blur()
	}
}

func (f *tagForm) submission() (model.TagFormData, error) {
	f.draft.Name = f.name.Value()
	return f.draft.FormData()
}

// update handles keys other than submit/back.
func (f tagForm) update(msg tea.Msg) (tagForm, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "down":
			f.cycleFocus(1)
			return f, nil
		case "shift+tab", "up":
			f.cycleFocus(-1)
			return f, nil
		}
		switch f.focus {
		case tagFieldCategory:
			switch k.String() {
			case "left", "h":
				f.draft.CycleCategory(-1)
			case "right", "l", " ":
				f.draft.CycleCategory(1)
			}
			return f, nil
		case tagFieldColor:
			switch k.String() {
			case "left", "h":
				f.draft.CycleColor(-1)
			case "right", "l", " ":
				f.draft.CycleColor(1)
			}
			return f, nil
		}
	}
	var cmd tea.Cmd
	f.name, cmd = f.name.Update(msg)
	return f, cmd
}

func (f tagForm) view(width int) string {
	bodyW := width - 4
	if bodyW < 20 {
		bodyW = 20
	}
	label := func(fd tagField, s string) string {
		st := styleMuted()
		if f.focus == fd {
			st = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
		}
		return st.Render(s)
	}

	swatch := lipgloss.NewStyle().Background(lipgloss.Color(f.draft.Color)).Render("  ")
	lines := []string{
		styleTitle().Render("Add new tag"),
		label(tagFieldName, "Name"),
		renderInputLine(bodyW, f.name.View()),
		label(tagFieldCategory, "Category") + "  ‹ " + f.draft.Category.Label() + " ›",
		label(tagFieldColor, "Color") + "     ‹ " + swatch + " " + f.draft.Color + " ›",
	}
	return strings.Join(lines, "\n")
}

// renderTagGroups shows every category, including empty ones, with its tags as chips.
func renderTagGroups(tags []model.Tag, width int) string {
	var b strings.Builder
	b.WriteString(styleTitle().Render("Existing tags") + "\n")
	for _, g := range store.GroupTags(tags) {
		b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render(g.Category.Label()) + "\n")
		if len(g.Tags) == 0 {
			b.WriteString(styleMuted().Render("  (none)") + "\n")
			continue
		}
		b.WriteString("  " + wrapChips(g.Tags, width-2) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// wrapChips lays chips out left to right, breaking lines at width.
func wrapChips(tags []model.Tag, width int) string {
	var lines []string
	cur, curW := "", 0
	for _, t := range tags {
		chip := tagChip(t)
		w := lipgloss.Width(chip)
		if curW > 0 && curW+1+w > width {
			lines = append(lines, cur)
			cur, curW = "", 0
		}
		if curW > 0 {
			cur += " "
			curW++
		}
		cur += chip
		curW += w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return strings.Join(lines, "\n  ")
}
