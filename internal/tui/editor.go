package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tunjipaul/folio/pkg/client"
)

type editorMode int

const (
	modeList editorMode = iota
	modeForm
	modeConfirm
)

// -- messages --

// editorMsg is implemented by results addressed to one editor.
type editorMsg interface {
	editorKind() string
}

type editorLoadedMsg struct {
	kind    string
	records []record
	err     error
}

type editorSavedMsg struct {
	kind    string
	created bool
	err     error
}

type editorDeletedMsg struct {
	kind string
	err  error
}

func (m editorLoadedMsg) editorKind() string  { return m.kind }
func (m editorSavedMsg) editorKind() string   { return m.kind }
func (m editorDeletedMsg) editorKind() string { return m.kind }

// -- model --

// editorModel is the list/form editor shared by the content tabs.
type editorModel struct {
	client    *client.Client
	res       resource
	records   []record
	cursor    int
	mode      editorMode
	values    []string
	focus     int
	editingID int // 0 while creating
	loading   bool
	saving    bool
	status    string
	err       error
	width     int
	height    int
}

func newEditorModel(c *client.Client, res resource) editorModel {
	return editorModel{client: c, res: res}
}

func (m editorModel) Init() tea.Cmd {
	return m.load()
}

func (m editorModel) load() tea.Cmd {
	c, res := m.client, m.res
	return func() tea.Msg {
		records, err := res.list(context.Background(), c)
		return editorLoadedMsg{kind: res.kind(), records: records, err: err}
	}
}

// editing returns true while keystrokes belong to the editor.
func (m editorModel) editing() bool {
	return m.mode != modeList
}

func (m editorModel) Update(msg tea.Msg) (editorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case editorMsg:
		if msg.editorKind() != m.res.kind() {
			return m, nil
		}
		return m.handleResult(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.formKeys(msg)
		case modeConfirm:
			return m.confirmKeys(msg)
		default:
			return m.listKeys(msg)
		}
	}
	return m, nil
}

func (m editorModel) handleResult(msg editorMsg) (editorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case editorLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.records = msg.records
		if m.cursor >= len(m.records) {
			m.cursor = max(len(m.records)-1, 0)
		}

	case editorSavedMsg:
		m.saving = false
		if msg.err != nil {
			// Stay in the form so the input can be corrected.
			m.err = msg.err
			return m, nil
		}
		m.mode = modeList
		m.values = nil
		m.err = nil
		if msg.created {
			m.status = m.res.kind() + " created"
		} else {
			m.status = m.res.kind() + " updated"
		}
		m.loading = true
		return m, m.load()

	case editorDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = m.res.kind() + " deleted"
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

func (m editorModel) listKeys(msg tea.KeyMsg) (editorModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "n":
		m.openForm(0, m.res.defaults())
	case "e", "enter":
		if r, ok := m.selected(); ok {
			m.openForm(r.id, r.values)
		}
	case "d":
		if _, ok := m.selected(); ok {
			m.mode = modeConfirm
			m.status = ""
		}
	case "r":
		m.loading = true
		m.err = nil
		return m, m.load()
	}
	return m, nil
}

func (m *editorModel) openForm(id int, values []string) {
	m.mode = modeForm
	m.editingID = id
	m.values = append([]string(nil), values...)
	for len(m.values) < len(m.res.fields()) {
		m.values = append(m.values, "")
	}
	m.focus = 0
	m.status = ""
	m.err = nil
}

func (m editorModel) selected() (record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.records) {
		return record{}, false
	}
	return m.records[m.cursor], true
}

func (m editorModel) formKeys(msg tea.KeyMsg) (editorModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	fields := m.res.fields()
	n := len(fields)
	spec := fields[m.focus]

	switch key := msg.String(); key {
	case "ctrl+s":
		return m.submit()
	case "esc":
		m.mode = modeList
		m.values = nil
		m.err = nil
	case "tab", "down":
		m.focus = (m.focus + 1) % n
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + n) % n
	case "enter":
		if spec.multiline {
			m.values[m.focus] += "\n"
		} else {
			m.focus = (m.focus + 1) % n
		}
	default:
		if len(spec.choices) > 0 {
			switch key {
			case "h", "left":
				m.values[m.focus] = cycle(spec.choices, m.values[m.focus], -1)
			case "l", "right":
				m.values[m.focus] = cycle(spec.choices, m.values[m.focus], 1)
			}
			return m, nil
		}
		m.values[m.focus] = editKey(m.values[m.focus], msg)
	}
	return m, nil
}

func (m editorModel) submit() (editorModel, tea.Cmd) {
	m.saving = true
	m.err = nil
	c, res, id := m.client, m.res, m.editingID
	values := append([]string(nil), m.values...)
	return m, func() tea.Msg {
		err := res.save(context.Background(), c, id, values)
		return editorSavedMsg{kind: res.kind(), created: id == 0, err: err}
	}
}

func (m editorModel) confirmKeys(msg tea.KeyMsg) (editorModel, tea.Cmd) {
	m.mode = modeList
	r, ok := m.selected()
	if msg.String() != "y" || !ok {
		return m, nil
	}
	c, res := m.client, m.res
	return m, func() tea.Msg {
		err := res.remove(context.Background(), c, r.id)
		return editorDeletedMsg{kind: res.kind(), err: err}
	}
}

func (m editorModel) View() string {
	if m.mode == modeForm {
		return m.formView()
	}

	var b strings.Builder
	if m.loading && len(m.records) == 0 {
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}
	if len(m.records) == 0 && m.err == nil {
		b.WriteString("\n " + dimStyle.Render("no "+m.res.kind()+" entries yet, press n to add one") + "\n")
	}

	titleWidth := 36
	if m.width > 0 {
		titleWidth = max(m.width/2-6, 12)
	}
	for i, r := range m.records {
		cursor := " "
		title := normalStyle.Render(fmt.Sprintf("%-*s", titleWidth, truncStr(oneLine(r.title), titleWidth)))
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			title = selectedStyle.Render(fmt.Sprintf("%-*s", titleWidth, truncStr(oneLine(r.title), titleWidth)))
		}
		meta := metaStyle.Render(truncStr(oneLine(r.meta), max(m.width-titleWidth-12, 10)))
		fmt.Fprintf(&b, " %s %s  %s  %s\n", cursor, metaStyle.Render(fmt.Sprintf("#%-3d", r.id)), title, meta)
	}

	if m.mode == modeConfirm {
		if r, ok := m.selected(); ok {
			b.WriteString("\n " + warnStyle.Render(fmt.Sprintf("delete %q? y to confirm, any key to cancel", truncStr(oneLine(r.title), 40))) + "\n")
		}
	}
	if line := statusLine(m.status, m.err); line != "" {
		b.WriteString("\n" + line + "\n")
	}
	return b.String()
}

func (m editorModel) formView() string {
	var b strings.Builder
	heading := "new " + m.res.kind()
	if m.editingID != 0 {
		heading = fmt.Sprintf("edit %s #%d", m.res.kind(), m.editingID)
	}
	b.WriteString(" " + titleStyle.Render(heading) + "\n\n")

	for i, spec := range m.res.fields() {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}
		value := m.values[i]
		if len(spec.choices) > 0 {
			fmt.Fprintf(&b, "%s %s: %s  %s\n", cursor, style.Render(spec.label),
				CategoryStyle(value).Render(value), dimStyle.Render("(h/l to cycle)"))
			continue
		}
		if i == m.focus {
			value += "█"
		}
		if spec.multiline {
			value = strings.ReplaceAll(value, "\n", "\n    ")
		}
		fmt.Fprintf(&b, "%s %s: %s\n", cursor, style.Render(spec.label), value)
	}

	b.WriteString("\n")
	switch {
	case m.saving:
		b.WriteString(" " + dimStyle.Render("saving..."))
	case m.err != nil:
		b.WriteString(statusLine("", m.err))
	}
	return b.String()
}

func (m editorModel) helpKeys() string {
	switch m.mode {
	case modeForm:
		return helpBar("tab", "next", "ctrl+s", "save", "esc", "cancel")
	case modeConfirm:
		return helpBar("y", "delete", "any", "cancel")
	}
	return helpBar("1-7", "tabs", "j/k", "nav", "n", "new", "e", "edit", "d", "delete", "r", "refresh", "h", "help", "q", "quit")
}
