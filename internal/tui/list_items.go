package tui

import (
	"fmt"
	"io"
	"strings"

	"clubroster/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type memberItem struct {
	member model.Member
}

func (i memberItem) FilterValue() string { return i.member.Name }
func (i memberItem) Title() string       { return i.member.Name }
func (i memberItem) Description() string { return i.member.Introduction }

func memberItems(members []model.Member) []list.Item {
	items := make([]list.Item, 0, len(members))
	for _, m := range members {
		items = append(items, memberItem{member: m})
	}
	return items
}

// memberCardDelegate renders each member as a two-line card: a handle, the
// name and tag chips, then the first line of the introduction.
type memberCardDelegate struct {
	grabbedID string
}

func (d memberCardDelegate) Height() int  { return 2 }
func (d memberCardDelegate) Spacing() int { return 1 }
func (d memberCardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d memberCardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(memberItem)
	if !ok {
		return
	}
	contentW := m.Width() - 2
	if contentW < 10 {
		contentW = 10
	}

	selected := index == m.Index()
	grabbed := d.grabbedID != "" && it.member.ID == d.grabbedID

	handle := "  "
	bar := lipgloss.NewStyle().Foreground(colorCardBorder).Render("│")
	switch {
	case grabbed:
		handle = "≡ "
		bar = lipgloss.NewStyle().Foreground(colorAccent).Render("┃")
	case selected && d.grabbedID != "":
		// Drop target while dragging.
		handle = "→ "
		bar = lipgloss.NewStyle().Foreground(colorAccent).Render("┃")
	case selected:
		bar = lipgloss.NewStyle().Foreground(colorSelectedBdr).Render("┃")
	}

	name := lipgloss.NewStyle().Bold(true).Render(it.member.Name)
	first := handle + name
	if chips := tagChips(it.member.Tags); chips != "" {
		first += "  " + chips
	}
	if !it.member.IsEditable {
		first += " " + styleMuted().Render("(read-only)")
	}
	intro, _, _ := strings.Cut(strings.TrimSpace(it.member.Introduction), "\n")
	second := "  " + styleMuted().Render(intro)

	lineStyle := lipgloss.NewStyle()
	switch {
	case grabbed:
		lineStyle = lineStyle.Background(colorGrabbedBg)
	case selected:
		lineStyle = lineStyle.Background(colorSelectedBg).Foreground(colorSelectedFg)
	}

	lines := []string{first, second}
	for i, ln := range lines {
		ln = truncateLine(ln, contentW)
		if pad := contentW - xansi.StringWidth(ln); pad > 0 {
			ln += strings.Repeat(" ", pad)
		}
		lines[i] = bar + " " + lineStyle.Render(ln)
	}
	fmt.Fprint(w, strings.Join(lines, "\n"))
}

func newMemberList(members []model.Member) list.Model {
	l := list.New(memberItems(members), memberCardDelegate{}, 80, 20)
	l.Title = "Members"
	// The app renders its own header and footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	// Filtering would hide members and break index-based reordering.
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("member", "members")
	// Quitting is handled by the app so "q" cannot end a drag mid-way.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	// Emacs-style navigation aliases.
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(cursorUpKeys, "ctrl+p")...)
	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(cursorDownKeys, "ctrl+n")...)
	return l
}

func selectMemberByID(l *list.Model, id string) {
	for i, item := range l.Items() {
		if it, ok := item.(memberItem); ok && it.member.ID == id {
			l.Select(i)
			return
		}
	}
}

func selectedMemberID(l list.Model) string {
	if it, ok := l.SelectedItem().(memberItem); ok {
		return it.member.ID
	}
	return ""
}
