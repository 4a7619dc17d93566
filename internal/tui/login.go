package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tunjipaul/folio/pkg/client"
	"github.com/tunjipaul/folio/pkg/domain"
)

type loginField int

const (
	fieldEmail loginField = iota
	fieldPassword
	numLoginFields
)

type loginDoneMsg struct {
	grant *domain.LoginResponse
	err   error
}

type loginModel struct {
	client     *client.Client
	fields     [numLoginFields]string
	focus      loginField
	notice     string
	err        error
	submitting bool
}

func newLoginModel(c *client.Client, email, notice string) loginModel {
	m := loginModel{client: c, notice: notice}
	m.fields[fieldEmail] = email
	if email != "" {
		m.focus = fieldPassword
	}
	return m
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			m.fields[fieldPassword] = ""
			m.focus = fieldPassword
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		m.err = nil
		switch msg.String() {
		case "tab", "down", "shift+tab", "up":
			m.focus = (m.focus + 1) % numLoginFields
		case "enter", "ctrl+s":
			if m.focus == fieldEmail && msg.String() == "enter" {
				m.focus = fieldPassword
				return m, nil
			}
			return m.submit()
		default:
			f := &m.fields[m.focus]
			*f = editKey(*f, msg)
		}
	}
	return m, nil
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.fields[fieldEmail])
	password := m.fields[fieldPassword]
	if email == "" || password == "" {
		m.err = fmt.Errorf("email and password are required")
		return m, nil
	}
	m.submitting = true
	m.notice = ""
	c := m.client
	return m, func() tea.Msg {
		grant, err := c.Login(context.Background(), email, password)
		return loginDoneMsg{grant: grant, err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("admin login") + "\n\n")
	if m.notice != "" {
		b.WriteString(" " + warnStyle.Render(m.notice) + "\n\n")
	}

	labels := [numLoginFields]string{"email", "password"}
	for i := loginField(0); i < numLoginFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}
		value := m.fields[i]
		if i == fieldPassword {
			value = maskRunes(value)
		}
		if i == m.focus {
			value += "█"
		}
		fmt.Fprintf(&b, " %s %s: %s\n", cursor, style.Render(fmt.Sprintf("%-8s", labels[i])), value)
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(" " + dimStyle.Render("signing in..."))
	case m.err != nil:
		b.WriteString(statusLine("", m.err))
	}
	return b.String()
}
