package tui

import (
	"strings"

	"clubroster/internal/avatar"

	"github.com/charmbracelet/lipgloss"
)

// renderDetailBody is the read-only member profile shown in the detail view.
func (m appModel) renderDetailBody() string {
	sel, ok := m.selectedMember()
	if !ok {
		return ""
	}
	bodyW := m.width - 2
	if bodyW < 20 {
		bodyW = 20
	}

	var b strings.Builder
	name := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render(sel.Name)
	if !sel.IsEditable {
		name += " " + styleMuted().Render("(read-only)")
	}
	b.WriteString(name + "\n")
	if !sel.CreatedAt.IsZero() {
		b.WriteString(styleMuted().Render("Joined "+sel.CreatedAt.Local().Format("2006-01-02")) + "\n")
	}
	b.WriteString(styleMuted().Render("Avatar: "+truncateLine(avatar.Summary(sel.Avatar), bodyW-8)) + "\n\n")

	if len(sel.Tags) > 0 {
		b.WriteString(wrapChips(sel.Tags, bodyW) + "\n\n")
	}

	intro := strings.TrimSpace(sel.Introduction)
	if intro == "" {
		b.WriteString(styleMuted().Render("No introduction yet."))
	} else {
		b.WriteString(strings.TrimRight(renderMarkdown(intro, bodyW, markdownStyle(m.opts.MarkdownStyle)), "\n"))
	}
	return b.String()
}
