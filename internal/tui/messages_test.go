package tui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tunjipaul/folio/pkg/domain"
)

func testInbox() []domain.Message {
	return []domain.Message{
		{ID: 1, Name: "Ada Lovelace", Email: "ada@example.com", Subject: "Collab?", Message: "Hi Tunji,\nlet's build.", CreatedAt: time.Now().Add(-2 * time.Hour)},
		{ID: 2, Name: "Bo", Email: "bo@example.com", Subject: "Thanks", Message: "Great site", IsRead: true},
	}
}

func newTestMessages() messagesModel {
	m := newMessagesModel(nil)
	m.width = 100
	m, _ = m.Update(inboxLoadedMsg{msgs: testInbox()})
	return m
}

func TestMessagesListView(t *testing.T) {
	m := newTestMessages()
	view := m.View()
	for _, want := range []string{"2 messages, 1 unread", "Ada Lovelace", "Collab?", "2h ago"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestMessagesOpenMarksUnreadAsRead(t *testing.T) {
	m := newTestMessages()
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != inboxDetail {
		t.Fatalf("mode = %d, want detail", m.mode)
	}
	if cmd == nil {
		t.Fatal("opening an unread message should mark it read")
	}
	if view := m.View(); !strings.Contains(view, "let's build.") || !strings.Contains(view, "<ada@example.com>") {
		t.Errorf("detail view missing body or sender:\n%s", view)
	}

	m, _ = m.Update(inboxReadMsg{msg: &domain.Message{ID: 1, IsRead: true}})
	if m.unread() != 0 {
		t.Errorf("unread = %d, want 0", m.unread())
	}

	// Back to list, open the already-read one: no request.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = m.Update(keyRunes("j"))
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("opening a read message should not send a request")
	}
}

func TestMessagesReplyFlow(t *testing.T) {
	m := newTestMessages()
	m, _ = m.Update(keyRunes("r"))
	if m.mode != inboxReply || !m.editing() {
		t.Fatalf("mode = %d, want reply", m.mode)
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil || m.status != "reply is empty" {
		t.Errorf("empty reply: cmd=%v status=%q", cmd != nil, m.status)
	}

	m, _ = m.Update(keyRunes("Thanks!"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(keyRunes("Tunji"))
	if m.reply != "Thanks!\nTunji" {
		t.Fatalf("reply = %q", m.reply)
	}
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil || !m.busy {
		t.Fatal("ctrl+s should send the reply")
	}

	m, _ = m.Update(inboxRepliedMsg{to: "ada@example.com"})
	if m.mode != inboxList || m.reply != "" {
		t.Errorf("after send: mode=%d reply=%q", m.mode, m.reply)
	}
	if !strings.Contains(m.View(), "reply sent to ada@example.com") {
		t.Errorf("expected confirmation:\n%s", m.View())
	}
}

func TestMessagesReplyFailureKeepsDraft(t *testing.T) {
	m := newTestMessages()
	m, _ = m.Update(keyRunes("r"))
	m, _ = m.Update(keyRunes("draft"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = m.Update(inboxRepliedMsg{err: errors.New("Failed to send email")})
	if m.mode != inboxReply || m.reply != "draft" {
		t.Errorf("mode=%d reply=%q, want draft kept", m.mode, m.reply)
	}
}

func TestMessagesDeleteConfirm(t *testing.T) {
	m := newTestMessages()
	m, _ = m.Update(keyRunes("d"))
	if m.mode != inboxConfirm {
		t.Fatalf("mode = %d, want confirm", m.mode)
	}
	if !strings.Contains(m.View(), "delete message from Ada Lovelace?") {
		t.Errorf("expected prompt:\n%s", m.View())
	}
	_, cmd := m.Update(keyRunes("y"))
	if cmd == nil {
		t.Error("y should delete")
	}

	m, _ = m.Update(inboxDeletedMsg{id: 1})
	if m.status != "message deleted" {
		t.Errorf("status = %q", m.status)
	}
}

func TestMessagesMarkReadThroughClient(t *testing.T) {
	var body map[string]bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/messages/1" {
			http.NotFound(w, r)
			return
		}
		json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
		json.NewEncoder(w).Encode(domain.Message{ID: 1, IsRead: true}) //nolint:errcheck
	}))
	defer srv.Close()

	m := newMessagesModel(newAuthedClient(t, srv.URL))
	m, _ = m.Update(inboxLoadedMsg{msgs: testInbox()})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := cmd().(inboxReadMsg)
	if !ok || msg.err != nil {
		t.Fatalf("cmd() = %+v", msg)
	}
	if !body["is_read"] {
		t.Errorf("body = %v, want is_read=true", body)
	}
}
