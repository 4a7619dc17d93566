package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tunjipaul/folio/internal/browser"
	"github.com/tunjipaul/folio/pkg/client"
	"github.com/tunjipaul/folio/pkg/domain"
)

type resumeMode int

const (
	resumeNormal resumeMode = iota
	resumePath
	resumeConfirm
)

// -- messages --

type resumeLoadedMsg struct {
	files *domain.ResumeFiles
	err   error
}

// resumeDoneMsg reports the outcome of an upload, delete, save or open.
// reload is set when the slots may have changed.
type resumeDoneMsg struct {
	status string
	reload bool
	err    error
}

// -- model --

type resumeModel struct {
	client  *client.Client
	files   domain.ResumeFiles
	cursor  int
	mode    resumeMode
	path    string
	saveDir string
	busy    bool
	status  string
	err     error
	width   int
}

func newResumeModel(c *client.Client) resumeModel {
	return resumeModel{client: c, saveDir: "."}
}

func (m resumeModel) Init() tea.Cmd {
	return m.load()
}

func (m resumeModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		files, err := c.CurrentDocuments(context.Background())
		return resumeLoadedMsg{files: files, err: err}
	}
}

// editing returns true while a path is being typed or a delete confirmed.
func (m resumeModel) editing() bool {
	return m.mode != resumeNormal
}

func (m resumeModel) docType() domain.DocType {
	return domain.DocTypes[m.cursor]
}

func (m resumeModel) Update(msg tea.Msg) (resumeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case resumeLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.files = *msg.files

	case resumeDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = msg.status
		if msg.reload {
			return m, m.load()
		}

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch m.mode {
		case resumePath:
			return m.pathKeys(msg)
		case resumeConfirm:
			m.mode = resumeNormal
			if msg.String() == "y" {
				return m.start(m.remove(m.docType()))
			}
			return m, nil
		default:
			return m.navKeys(msg)
		}
	}
	return m, nil
}

func (m resumeModel) start(cmd tea.Cmd) (resumeModel, tea.Cmd) {
	m.busy = true
	m.status = ""
	m.err = nil
	return m, cmd
}

func (m resumeModel) navKeys(msg tea.KeyMsg) (resumeModel, tea.Cmd) {
	t := m.docType()
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(domain.DocTypes)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "u":
		m.mode = resumePath
		m.path = ""
		m.status = ""
		m.err = nil
	case "x":
		if m.files.Has(t) {
			m.mode = resumeConfirm
		}
	case "s":
		if m.files.Has(t) {
			return m.start(m.save(t))
		}
	case "o":
		url := m.client.DocumentURL(t)
		return m, func() tea.Msg {
			if err := browser.Open(url); err != nil {
				return resumeDoneMsg{err: err}
			}
			return resumeDoneMsg{status: "opened " + url}
		}
	case "r":
		m.err = nil
		return m, m.load()
	}
	return m, nil
}

func (m resumeModel) pathKeys(msg tea.KeyMsg) (resumeModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = resumeNormal
	case "enter":
		path := strings.TrimSpace(m.path)
		m.mode = resumeNormal
		if path == "" {
			return m, nil
		}
		return m.start(m.upload(m.docType(), path))
	default:
		m.path = editKey(m.path, msg)
	}
	return m, nil
}

func (m resumeModel) upload(t domain.DocType, path string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		path, err := expandHome(path)
		if err != nil {
			return resumeDoneMsg{err: err}
		}
		f, err := os.Open(path)
		if err != nil {
			return resumeDoneMsg{err: err}
		}
		defer f.Close() //nolint:errcheck
		res, err := c.UploadDocument(context.Background(), t, filepath.Base(path), f)
		if err != nil {
			return resumeDoneMsg{err: err}
		}
		status := res.Message
		if status == "" {
			status = string(t) + " uploaded"
		}
		return resumeDoneMsg{status: status, reload: true}
	}
}

func (m resumeModel) remove(t domain.DocType) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		if err := c.DeleteDocument(context.Background(), t); err != nil {
			return resumeDoneMsg{err: err}
		}
		return resumeDoneMsg{status: string(t) + " deleted", reload: true}
	}
}

func (m resumeModel) save(t domain.DocType) tea.Cmd {
	c, dir := m.client, m.saveDir
	return func() tea.Msg {
		dest, err := c.SaveDocument(context.Background(), t, dir)
		if err != nil {
			return resumeDoneMsg{err: err}
		}
		return resumeDoneMsg{status: "saved " + dest}
	}
}

func expandHome(path string) (string, error) {
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, rest), nil
	}
	return path, nil
}

func (m resumeModel) View() string {
	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("documents") + "\n\n")
	for i, t := range domain.DocTypes {
		cursor := " "
		label := normalStyle.Render(fmt.Sprintf("%-8s", t))
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
			label = selectedStyle.Render(fmt.Sprintf("%-8s", t))
		}
		state := dimStyle.Render("not uploaded")
		if name := m.slot(t); name != "" {
			state = okStyle.Render(name)
		}
		fmt.Fprintf(&b, " %s %s  %s\n", cursor, label, state)
	}

	switch m.mode {
	case resumePath:
		b.WriteString("\n " + sectionHeaderStyle.Render(fmt.Sprintf("upload %s from (.pdf)", m.docType())) + "\n")
		b.WriteString(" " + inputPromptStyle.Render("> ") + m.path + "█\n")
	case resumeConfirm:
		b.WriteString("\n " + warnStyle.Render(fmt.Sprintf("delete the current %s? y to confirm", m.docType())) + "\n")
	}
	if m.busy {
		b.WriteString("\n " + dimStyle.Render("working...") + "\n")
	}
	if line := statusLine(m.status, m.err); line != "" {
		b.WriteString("\n" + line + "\n")
	}
	return b.String()
}

func (m resumeModel) slot(t domain.DocType) string {
	var p *string
	switch t {
	case domain.DocResume:
		p = m.files.Resume
	case domain.DocCV:
		p = m.files.CV
	}
	if p == nil {
		return ""
	}
	return *p
}

func (m resumeModel) helpKeys() string {
	switch m.mode {
	case resumePath:
		return helpBar("enter", "upload", "esc", "cancel")
	case resumeConfirm:
		return helpBar("y", "delete", "any", "cancel")
	}
	return helpBar("1-7", "tabs", "j/k", "nav", "u", "upload", "x", "delete", "s", "save", "o", "open", "r", "refresh", "q", "quit")
}
