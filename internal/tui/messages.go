package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tunjipaul/folio/pkg/client"
	"github.com/tunjipaul/folio/pkg/domain"
)

type inboxMode int

const (
	inboxList inboxMode = iota
	inboxDetail
	inboxReply
	inboxConfirm
)

// -- messages --

type inboxLoadedMsg struct {
	msgs []domain.Message
	err  error
}

type inboxReadMsg struct {
	msg *domain.Message
	err error
}

type inboxDeletedMsg struct {
	id  int
	err error
}

type inboxRepliedMsg struct {
	to  string
	err error
}

type inboxCopiedMsg struct {
	email string
	err   error
}

// -- model --

type messagesModel struct {
	client *client.Client
	msgs   []domain.Message
	cursor int
	mode   inboxMode
	back   inboxMode // mode to return to after a reply or confirm
	reply  string
	busy   bool
	status string
	err    error
	width  int
	height int
}

func newMessagesModel(c *client.Client) messagesModel {
	return messagesModel{client: c}
}

func (m messagesModel) Init() tea.Cmd {
	return m.load()
}

func (m messagesModel) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		msgs, err := c.ListMessages(context.Background())
		return inboxLoadedMsg{msgs: msgs, err: err}
	}
}

// editing returns true while the reply box has focus.
func (m messagesModel) editing() bool {
	return m.mode == inboxReply || m.mode == inboxConfirm
}

// unread returns the number of unread messages loaded.
func (m messagesModel) unread() int {
	return domain.UnreadCount(m.msgs)
}

func (m messagesModel) Update(msg tea.Msg) (messagesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case inboxLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.msgs = msg.msgs
		if m.cursor >= len(m.msgs) {
			m.cursor = max(len(m.msgs)-1, 0)
		}
		if len(m.msgs) == 0 && m.mode == inboxDetail {
			m.mode = inboxList
		}

	case inboxReadMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		for i := range m.msgs {
			if m.msgs[i].ID == msg.msg.ID {
				m.msgs[i].IsRead = msg.msg.IsRead
			}
		}

	case inboxDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = inboxList
		m.status = "message deleted"
		return m, m.load()

	case inboxRepliedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.reply = ""
		m.mode = m.back
		m.status = "reply sent to " + msg.to

	case inboxCopiedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = "copied " + msg.email
		}

	case tea.KeyMsg:
		m.status = ""
		switch m.mode {
		case inboxReply:
			return m.replyKeys(msg)
		case inboxConfirm:
			return m.confirmKeys(msg)
		default:
			return m.navKeys(msg)
		}
	}
	return m, nil
}

func (m messagesModel) selected() (domain.Message, bool) {
	if m.cursor < 0 || m.cursor >= len(m.msgs) {
		return domain.Message{}, false
	}
	return m.msgs[m.cursor], true
}

func (m messagesModel) navKeys(msg tea.KeyMsg) (messagesModel, tea.Cmd) {
	sel, ok := m.selected()
	switch msg.String() {
	case "j", "down":
		if m.mode == inboxList && m.cursor < len(m.msgs)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.mode == inboxList && m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if !ok || m.mode != inboxList {
			return m, nil
		}
		m.mode = inboxDetail
		if !sel.IsRead {
			return m, m.markRead(sel.ID, true)
		}
	case "u":
		if ok {
			return m, m.markRead(sel.ID, !sel.IsRead)
		}
	case "esc":
		m.mode = inboxList
		m.err = nil
	case "r":
		if ok {
			m.back = m.mode
			m.mode = inboxReply
			m.reply = ""
			m.err = nil
		}
	case "c":
		if ok {
			email := sel.Email
			return m, func() tea.Msg {
				return inboxCopiedMsg{email: email, err: clipboard.WriteAll(email)}
			}
		}
	case "d":
		if ok {
			m.back = m.mode
			m.mode = inboxConfirm
		}
	case "R":
		m.err = nil
		return m, m.load()
	}
	return m, nil
}

func (m messagesModel) markRead(id int, read bool) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		msg, err := c.MarkMessageRead(context.Background(), id, read)
		return inboxReadMsg{msg: msg, err: err}
	}
}

func (m messagesModel) replyKeys(msg tea.KeyMsg) (messagesModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.mode = m.back
		m.err = nil
	case "ctrl+s":
		sel, ok := m.selected()
		if !ok {
			m.mode = inboxList
			return m, nil
		}
		text := strings.TrimSpace(m.reply)
		if text == "" {
			m.status = "reply is empty"
			return m, nil
		}
		m.busy = true
		m.err = nil
		c := m.client
		reply := domain.Reply{MessageID: sel.ID, RecipientEmail: sel.Email, ReplyText: text}
		return m, func() tea.Msg {
			_, err := c.ReplyToMessage(context.Background(), reply)
			return inboxRepliedMsg{to: reply.RecipientEmail, err: err}
		}
	case "enter":
		m.reply += "\n"
	default:
		m.reply = editKey(m.reply, msg)
	}
	return m, nil
}

func (m messagesModel) confirmKeys(msg tea.KeyMsg) (messagesModel, tea.Cmd) {
	m.mode = m.back
	sel, ok := m.selected()
	if msg.String() != "y" || !ok {
		return m, nil
	}
	c, id := m.client, sel.ID
	return m, func() tea.Msg {
		return inboxDeletedMsg{id: id, err: c.DeleteMessage(context.Background(), id)}
	}
}

func (m messagesModel) View() string {
	var b strings.Builder
	switch {
	case m.mode == inboxList || (m.mode == inboxConfirm && m.back == inboxList):
		m.listView(&b)
	default:
		m.detailView(&b)
	}

	if m.mode == inboxConfirm {
		if sel, ok := m.selected(); ok {
			b.WriteString("\n " + warnStyle.Render(fmt.Sprintf("delete message from %s? y to confirm", sel.Name)) + "\n")
		}
	}
	if line := statusLine(m.status, m.err); line != "" {
		b.WriteString("\n" + line + "\n")
	}
	return b.String()
}

func (m messagesModel) listView(b *strings.Builder) {
	if len(m.msgs) == 0 {
		b.WriteString("\n " + dimStyle.Render("inbox is empty") + "\n")
		return
	}
	fmt.Fprintf(b, " %s\n", sectionHeaderStyle.Render(fmt.Sprintf("%d messages, %d unread", len(m.msgs), m.unread())))
	subjectWidth := max(m.width-48, 16)
	for i, msg := range m.msgs {
		cursor := " "
		if i == m.cursor {
			cursor = accentStyle.Render("▸")
		}
		dot := " "
		name := normalStyle.Render(fmt.Sprintf("%-18s", truncStr(msg.Name, 18)))
		if !msg.IsRead {
			dot = unreadStyle.Render("●")
			name = selectedStyle.Render(fmt.Sprintf("%-18s", truncStr(msg.Name, 18)))
		}
		subject := dimStyle.Render(truncStr(oneLine(msg.Subject), subjectWidth))
		fmt.Fprintf(b, " %s %s %s  %s  %s\n", cursor, dot, name, subject, metaStyle.Render(formatTime(msg.CreatedAt)))
	}
}

func (m messagesModel) detailView(b *strings.Builder) {
	sel, ok := m.selected()
	if !ok {
		return
	}
	fmt.Fprintf(b, " %s\n", titleStyle.Render(sel.Subject))
	fmt.Fprintf(b, " %s %s  %s\n\n", normalStyle.Render(sel.Name), dimStyle.Render("<"+sel.Email+">"), metaStyle.Render(formatTime(sel.CreatedAt)))
	for _, line := range strings.Split(sel.Message, "\n") {
		b.WriteString(" " + normalStyle.Render(line) + "\n")
	}

	if m.mode == inboxReply {
		b.WriteString("\n " + sectionHeaderStyle.Render("reply to "+sel.Email) + "\n")
		if m.reply == "" {
			b.WriteString(" " + inputPromptStyle.Render("> ") + inputPlaceholderStyle.Render("write a reply...") + "█\n")
		} else {
			body := strings.ReplaceAll(m.reply, "\n", "\n   ")
			b.WriteString(" " + inputPromptStyle.Render("> ") + body + "█\n")
		}
		if m.busy {
			b.WriteString(" " + dimStyle.Render("sending...") + "\n")
		}
	}
}

func (m messagesModel) helpKeys() string {
	switch m.mode {
	case inboxReply:
		return helpBar("enter", "newline", "ctrl+s", "send", "esc", "cancel")
	case inboxConfirm:
		return helpBar("y", "delete", "any", "cancel")
	case inboxDetail:
		return helpBar("1-7", "tabs", "r", "reply", "c", "copy email", "u", "unread", "d", "delete", "esc", "back")
	}
	return helpBar("1-7", "tabs", "j/k", "nav", "enter", "open", "r", "reply", "c", "copy email", "d", "delete", "R", "refresh", "q", "quit")
}
