package tui

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"clubroster/internal/avatar"
	"clubroster/internal/form"
	"clubroster/internal/model"
	"clubroster/internal/store"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type view int

const (
	viewMembers view = iota
	viewDetail
	viewAddMember
	viewTags
)

const (
	headerHeight = 2
	footerHeight = 2
)

type appModel struct {
	st   *store.Store
	snap store.Snapshot
	opts Options
	log  *slog.Logger

	width  int
	height int

	view view

	membersList list.Model
	// grabbedID is the member being dragged; the list cursor is the drop target.
	grabbedID string

	detail  viewport.Model
	editing bool

	memberForm memberForm
	tagForm    tagForm

	picker        filepicker.Model
	picking       bool
	pickerLastDir string

	status    string
	statusErr bool
}

func newAppModel(st *store.Store, opts Options) (appModel, error) {
	if st == nil {
		return appModel{}, store.ErrNoStore
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := appModel{
		st:         st,
		opts:       opts,
		log:        log,
		view:       viewMembers,
		detail:     viewport.New(80, 20),
		memberForm: newMemberForm(),
		tagForm:    newTagForm(),
	}
	m.snap = st.Snapshot()
	m.membersList = newMemberList(m.snap.Members)
	m.resize(80, 24)
	return m, nil
}

func (m appModel) Init() tea.Cmd { return nil }

func (m *appModel) resize(w, h int) {
	m.width, m.height = w, h
	bodyH := h - headerHeight - footerHeight
	if bodyH < 3 {
		bodyH = 3
	}
	m.membersList.SetSize(w, bodyH)
	m.detail.Width = w
	m.detail.Height = bodyH
	m.picker.Height = filePickerHeight(h)
}

// refresh pulls the latest snapshot into the list, keeping the cursor on keepID
// when it is still present.
func (m *appModel) refresh(keepID string) {
	m.snap = m.st.Snapshot()
	idx := m.membersList.Index()
	m.membersList.SetItems(memberItems(m.snap.Members))
	m.membersList.SetDelegate(memberCardDelegate{grabbedID: m.grabbedID})
	if keepID != "" {
		selectMemberByID(&m.membersList, keepID)
	} else if n := len(m.snap.Members); n > 0 {
		if idx >= n {
			idx = n - 1
		}
		m.membersList.Select(idx)
	}
	if m.view == viewDetail {
		m.detail.SetContent(m.renderDetailBody())
	}
}

func (m *appModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *appModel) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m appModel) maxAvatarPixels() int {
	if m.opts.AvatarMaxPixels < 0 {
		return 0
	}
	return m.opts.AvatarMaxPixels
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(ws.Width, ws.Height)
		if m.view == viewDetail {
			m.detail.SetContent(m.renderDetailBody())
		}
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		if k.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.status = ""
		m.statusErr = false
	}

	if m.picking {
		return m.updatePicker(msg)
	}

	switch m.view {
	case viewDetail:
		return m.updateDetail(msg)
	case viewAddMember:
		return m.updateAddMember(msg)
	case viewTags:
		return m.updateTags(msg)
	default:
		return m.updateMembers(msg)
	}
}

func (m appModel) updateMembers(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.membersList, cmd = m.membersList.Update(msg)
		return m, cmd
	}

	if m.grabbedID != "" {
		switch k.String() {
		case " ", "enter":
			m.dropGrabbed()
			return m, nil
		case "esc":
			id := m.grabbedID
			m.grabbedID = ""
			m.refresh(id)
			m.setStatus("Move cancelled")
			return m, nil
		case "q", "a", "t", "shift+up", "shift+down", "K", "J":
			return m, nil
		}
		var cmd tea.Cmd
		m.membersList, cmd = m.membersList.Update(msg)
		return m, cmd
	}

	switch k.String() {
	case "q":
		return m, tea.Quit
	case " ":
		if id := selectedMemberID(m.membersList); id != "" {
			m.grabbedID = id
			m.refresh(id)
			m.setStatus("Moving; pick a position and press space")
		}
		return m, nil
	case "shift+up", "K":
		m.moveSelected(-1)
		return m, nil
	case "shift+down", "J":
		m.moveSelected(1)
		return m, nil
	case "enter":
		id := selectedMemberID(m.membersList)
		if id == "" || !m.st.SelectMember(id) {
			return m, nil
		}
		m.editing = false
		m.view = viewDetail
		m.refresh(id)
		m.detail.GotoTop()
		return m, nil
	case "a":
		m.memberForm.reset()
		m.view = viewAddMember
		return m, nil
	case "t":
		m.tagForm.reset()
		m.view = viewTags
		return m, nil
	}

	var cmd tea.Cmd
	m.membersList, cmd = m.membersList.Update(msg)
	return m, cmd
}

// dropGrabbed completes a drag onto the member under the cursor.
func (m *appModel) dropGrabbed() {
	active := m.grabbedID
	over := selectedMemberID(m.membersList)
	m.grabbedID = ""

	oldIndex, newIndex, ok := store.DropIndices(m.snap.Members, active, over)
	if ok && m.st.ReorderMembers(oldIndex, newIndex) {
		m.log.Debug("member dropped", "id", active, "old", oldIndex, "new", newIndex)
	}
	m.refresh(active)
}

func (m *appModel) moveSelected(delta int) {
	id := selectedMemberID(m.membersList)
	idx := m.snap.MemberIndex(id)
	if idx < 0 {
		return
	}
	if m.st.ReorderMembers(idx, idx+delta) {
		m.refresh(id)
	}
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	sel := m.snap.Selected
	if sel == nil {
		m.view = viewMembers
		return m, nil
	}

	if m.editing {
		if k, ok := msg.(tea.KeyMsg); ok {
			switch k.String() {
			case "ctrl+s":
				data, err := m.memberForm.submission(m.maxAvatarPixels())
				if err != nil {
					m.setError(err)
					return m, nil
				}
				m.st.UpdateMember(sel.ID, data)
				m.editing = false
				m.refresh(sel.ID)
				m.setStatus("Saved")
				return m, nil
			case "esc":
				m.editing = false
				m.memberForm.reset()
				m.setStatus("Edit discarded")
				return m, nil
			case "ctrl+o":
				return m, m.openFilePicker()
			}
		}
		var (
			cmd tea.Cmd
			err error
		)
		m.memberForm, cmd, err = m.memberForm.update(msg, m.snap.Tags, m.maxAvatarPixels())
		if err != nil {
			m.setError(err)
		}
		return m, cmd
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc", "q":
			id := sel.ID
			m.st.ClearSelection()
			m.view = viewMembers
			m.refresh(id)
			return m, nil
		case "e":
			if !sel.IsEditable {
				m.setStatus("This member is read-only")
				return m, nil
			}
			m.memberForm.load(form.DraftFromMember(*sel))
			m.editing = true
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m appModel) updateAddMember(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "ctrl+s":
			data, err := m.memberForm.submission(m.maxAvatarPixels())
			if err != nil {
				m.setError(err)
				return m, nil
			}
			added := m.st.AddMember(data)
			m.memberForm.reset()
			m.view = viewMembers
			m.refresh(added.ID)
			m.setStatus("Added " + added.Name)
			return m, nil
		case "esc":
			m.memberForm.reset()
			m.view = viewMembers
			return m, nil
		case "ctrl+o":
			return m, m.openFilePicker()
		}
	}
	var (
		cmd tea.Cmd
		err error
	)
	m.memberForm, cmd, err = m.memberForm.update(msg, m.snap.Tags, m.maxAvatarPixels())
	if err != nil {
		m.setError(err)
	}
	return m, cmd
}

func (m appModel) updateTags(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter", "ctrl+s":
			data, err := m.tagForm.submission()
			if err != nil {
				m.setError(err)
				return m, nil
			}
			tag, ok := m.st.AddTag(data)
			if !ok {
				m.setStatus("Unknown category: " + string(data.Category))
				m.statusErr = true
				return m, nil
			}
			m.tagForm.reset()
			m.refresh(selectedMemberID(m.membersList))
			m.setStatus("Added tag " + tag.Name + " (" + tag.Category.Label() + ")")
			return m, nil
		case "esc":
			m.tagForm.reset()
			m.view = viewMembers
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.tagForm, cmd = m.tagForm.update(msg)
	return m, cmd
}

func filePickerHeight(screenH int) int {
	h := screenH - 10
	if h < 6 {
		h = 6
	}
	if h > 18 {
		h = 18
	}
	return h
}

func (m *appModel) openFilePicker() tea.Cmd {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.ShowHidden = false
	fp.ShowPermissions = false
	fp.ShowSize = true
	fp.AutoHeight = false
	fp.Height = filePickerHeight(m.height)
	fp.Cursor = "›"
	fp.KeyMap.Back = key.NewBinding(
		key.WithKeys("h", "backspace", "left"),
		key.WithHelp("h", "up"),
	)

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(colorAccent)
	fp.Styles.DisabledFile = styleMuted()
	fp.Styles.DisabledSelected = styleMuted()
	fp.Styles.FileSize = styleMuted().Width(fp.Styles.FileSize.GetWidth()).Align(lipgloss.Right)

	startDir := strings.TrimSpace(m.pickerLastDir)
	if startDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			startDir = home
		}
	}
	if startDir == "" {
		startDir = "."
	}
	fp.CurrentDirectory = startDir

	m.picker = fp
	m.picking = true
	return fp.Init()
}

func (m appModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && (k.String() == "esc" || k.String() == "q") {
		m.picking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		m.pickerLastDir = m.picker.CurrentDirectory
		if err := m.memberForm.setAvatarFile(path, m.maxAvatarPixels()); err != nil {
			m.setError(err)
			return m, nil
		}
		m.log.Debug("avatar embedded", "path", path, "media_type", avatar.MediaType(m.memberForm.draft.Avatar))
		m.setStatus("Loaded " + path)
		return m, nil
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.setStatus(path + " is not an image")
	}
	return m, cmd
}

func (m appModel) View() string {
	var body, help string
	switch {
	case m.picking:
		body = styleTitle().Render("Choose a profile image") + "\n" +
			styleMuted().Render(m.picker.CurrentDirectory) + "\n\n" + m.picker.View()
		help = "enter: choose  h/left: up a directory  esc: cancel"
	case m.view == viewDetail && m.editing:
		body = styleTitle().Render("Edit member") + "\n\n" + m.memberForm.view(m.width, m.snap.Tags)
		help = "tab: next field  space: toggle tag  ctrl+o: browse image  ctrl+s: save  esc: discard"
	case m.view == viewDetail:
		body = m.detail.View()
		help = "e: edit  ↑/↓: scroll  esc: back"
	case m.view == viewAddMember:
		body = styleTitle().Render("Add member") + "\n\n" + m.memberForm.view(m.width, m.snap.Tags)
		help = "tab: next field  space: toggle tag  ctrl+o: browse image  ctrl+s: add  esc: cancel"
	case m.view == viewTags:
		body = m.tagForm.view(m.width) + "\n\n" + renderTagGroups(m.snap.Tags, m.width)
		help = "tab: next field  ←/→: change  enter: add tag  esc: back"
	default:
		if len(m.snap.Members) == 0 {
			body = styleMuted().Render("No members yet. Press a to add one.")
		} else {
			body = m.membersList.View()
		}
		if m.grabbedID != "" {
			help = "↑/↓: choose position  space: drop  esc: cancel"
		} else {
			help = "space: grab  shift+↑/↓: move  enter: open  a: add  t: tags  q: quit"
		}
	}

	header := styleTitle().Render("Club roster") + "  " +
		styleMuted().Render(memberCountLabel(len(m.snap.Members)))

	footer := styleMuted().Render(help)
	if m.status != "" {
		st := styleMuted()
		if m.statusErr {
			st = styleError()
		}
		footer = st.Render(truncateLine(m.status, m.width)) + "\n" + footer
	} else {
		footer = "\n" + footer
	}

	bodyH := m.height - headerHeight - footerHeight
	body = clampLines(body, bodyH)
	return header + "\n\n" + body + "\n" + footer
}

func memberCountLabel(n int) string {
	if n == 1 {
		return "1 member"
	}
	return strconv.Itoa(n) + " members"
}

// clampLines keeps at most n lines of s, padding shorter content.
func clampLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// selectedMember returns the detail-view member, if any.
func (m appModel) selectedMember() (model.Member, bool) {
	if m.snap.Selected == nil {
		return model.Member{}, false
	}
	return *m.snap.Selected, true
}
