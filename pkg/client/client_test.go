package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tunjipaul/folio/pkg/domain"
	"github.com/tunjipaul/folio/pkg/session"
)

// newTestClient returns a client over an in-memory session holding tok,
// and a counter of logout hook calls.
func newTestClient(t *testing.T, baseURL, tok string) (*Client, *atomic.Int32) {
	t.Helper()
	store := session.NewStore(session.NewMemoryStorage())
	if tok != "" {
		if err := store.Set(tok, time.Hour, "a@b.com"); err != nil {
			t.Fatalf("store.Set() error: %v", err)
		}
	}
	var logouts atomic.Int32
	c := New(baseURL, store, WithLogoutHook(func() { logouts.Add(1) }))
	return c, &logouts
}

func assertCleared(t *testing.T, c *Client) {
	t.Helper()
	r, err := c.Session().Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !r.Empty() {
		t.Errorf("session = %+v, want all slots cleared", r)
	}
}

func TestRequestAttachesBearerAndReturnsBody(t *testing.T) {
	var gotAuth, gotType, gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/skills" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode([]domain.Skill{ //nolint:errcheck
			{ID: 1, Name: "Go", Category: "Backend"},
			{ID: 2, Name: "React", Category: "Frontend"},
		})
	}))
	defer srv.Close()

	c, logouts := newTestClient(t, srv.URL, "abc123")
	res, err := c.Request(context.Background(), "/api/skills", RequestOptions{})
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer abc123")
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotType)
	}
	if gotID == "" {
		t.Error("X-Request-ID was not sent")
	}

	var skills []domain.Skill
	if err := res.Decode(&skills); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(skills) != 2 || skills[0].Name != "Go" {
		t.Errorf("skills = %+v, want [Go React]", skills)
	}
	if logouts.Load() != 0 {
		t.Errorf("logout hook called %d times, want 0", logouts.Load())
	}
}

func TestRequestExpiredSessionSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	now := time.Now()
	store := session.NewStore(session.NewMemoryStorage(), session.WithClock(func() time.Time { return now }))
	if err := store.Set("abc123", -time.Minute, "a@b.com"); err != nil {
		t.Fatalf("store.Set() error: %v", err)
	}
	var logouts atomic.Int32
	c := New(srv.URL, store, WithLogoutHook(func() { logouts.Add(1) }))

	_, err := c.Request(context.Background(), "/api/projects", RequestOptions{})
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("error = %v, want ErrSessionExpired", err)
	}
	if hits.Load() != 0 {
		t.Errorf("server hit %d times, want 0", hits.Load())
	}
	if logouts.Load() != 1 {
		t.Errorf("logout hook called %d times, want 1", logouts.Load())
	}
	assertCleared(t, c)
}

func TestRequestNoSessionIsExpired(t *testing.T) {
	c, _ := newTestClient(t, "http://127.0.0.1:0", "")
	for _, call := range []func() error{
		func() error { _, err := c.Request(context.Background(), "/api/hero", RequestOptions{}); return err },
		func() error { _, err := c.Upload(context.Background(), "/api/resume/upload", NewForm()); return err },
		func() error { _, err := c.Download(context.Background(), "/api/resume/download/cv"); return err },
	} {
		if err := call(); !errors.Is(err, ErrSessionExpired) {
			t.Errorf("error = %v, want ErrSessionExpired", err)
		}
	}
}

func TestRequestUnauthorizedClearsSession(t *testing.T) {
	bodies := []string{
		`{"detail":"Token has expired"}`,
		`not json at all`,
		``,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				io.WriteString(w, body) //nolint:errcheck
			}))
			defer srv.Close()

			c, logouts := newTestClient(t, srv.URL, "abc123")
			_, err := c.Request(context.Background(), "/api/messages", RequestOptions{})
			if !errors.Is(err, ErrAuthenticationFailed) {
				t.Fatalf("error = %v, want ErrAuthenticationFailed", err)
			}
			if errors.Is(err, ErrRequestFailed) {
				t.Error("401 must not surface as a generic request failure")
			}
			if logouts.Load() != 1 {
				t.Errorf("logout hook called %d times, want 1", logouts.Load())
			}
			assertCleared(t, c)
		})
	}
}

func TestRequestNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, "tok")
	res, err := c.Request(context.Background(), "/api/skills/4", RequestOptions{Method: http.MethodDelete})
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	if !res.Empty() {
		t.Errorf("Empty() = false, want true for 204")
	}
	var out []domain.Skill
	if err := res.Decode(&out); err != nil {
		t.Errorf("Decode() on empty result error: %v", err)
	}
}

func TestRequestFailureMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"structured detail", http.StatusNotFound, `{"detail":"Skill not found"}`, "Skill not found"},
		{"unparseable body", http.StatusInternalServerError, `<html>oops</html>`, "Request failed with status 500"},
		{"empty body", http.StatusBadGateway, ``, "Request failed with status 502"},
		{"validation array", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","name"],"msg":"field required"}]}`, "Request failed with status 422"},
		{"empty detail", http.StatusBadRequest, `{"detail":""}`, "Request failed with status 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body) //nolint:errcheck
			}))
			defer srv.Close()

			c, logouts := newTestClient(t, srv.URL, "tok")
			_, err := c.Request(context.Background(), "/api/skills", RequestOptions{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrRequestFailed) {
				t.Errorf("errors.Is(err, ErrRequestFailed) = false for %v", err)
			}
			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("error %T is not *RequestError", err)
			}
			if reqErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", reqErr.Message, tt.wantMsg)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
			if !IsStatus(err, tt.status) {
				t.Errorf("IsStatus(err, %d) = false", tt.status)
			}
			if logouts.Load() != 0 {
				t.Error("non-401 failure must not log out")
			}
			if c.Session().Token() != "tok" {
				t.Error("non-401 failure must keep the session")
			}
		})
	}
}

func TestRequestMergesHeadersAndSendsBody(t *testing.T) {
	var got struct {
		method, trace, auth string
		body               domain.SkillInput
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.trace = r.Header.Get("X-Trace-ID")
		got.auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got.body) //nolint:errcheck
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id":9}`) //nolint:errcheck
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, "tok")
	header := http.Header{}
	header.Set("X-Trace-ID", "trace-1")
	header.Set("Authorization", "Bearer caller-supplied")
	_, err := c.Request(context.Background(), "/api/skills", RequestOptions{
		Method: http.MethodPost,
		Header: header,
		Body:   domain.SkillInput{Name: "Go", Category: "Backend"},
	})
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	if got.method != http.MethodPost {
		t.Errorf("method = %q, want POST", got.method)
	}
	if got.trace != "trace-1" {
		t.Errorf("X-Trace-ID = %q, want trace-1", got.trace)
	}
	if got.auth != "Bearer tok" {
		t.Errorf("Authorization = %q, want the session token to win", got.auth)
	}
	if got.body.Name != "Go" {
		t.Errorf("body.Name = %q, want Go", got.body.Name)
	}
}

func TestRequestInvalidJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"id":`) //nolint:errcheck
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, "tok")
	_, err := c.Request(context.Background(), "/api/hero", RequestOptions{})
	if err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	if errors.Is(err, ErrRequestFailed) || IsSessionEnded(err) {
		t.Errorf("parse failure classified as %v, want a plain transport error", err)
	}
}

func TestRequestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, logouts := newTestClient(t, url, "tok")
	_, err := c.Request(context.Background(), "/api/hero", RequestOptions{})
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	if !strings.Contains(err.Error(), "do request") {
		t.Errorf("error = %q, want it to contain 'do request'", err.Error())
	}
	if logouts.Load() != 0 {
		t.Error("transport failure must not log out")
	}
}

func TestRequestCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Second) // slow server
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, "tok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	if _, err := c.ListSkills(ctx); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	c, logouts := newTestClient(t, "http://example.invalid", "tok")
	c.Logout()
	c.Logout()
	assertCleared(t, c)
	if logouts.Load() != 2 {
		t.Errorf("logout hook called %d times, want 2", logouts.Load())
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

// expiredClient returns a client whose session expired a minute ago.
func expiredClient(t *testing.T) (*Client, *atomic.Int32) {
	t.Helper()
	now := time.Now()
	store := session.NewStore(session.NewMemoryStorage(), session.WithClock(func() time.Time { return now }))
	if err := store.Set("abc123", -time.Minute, "a@b.com"); err != nil {
		t.Fatalf("store.Set() error: %v", err)
	}
	var logouts atomic.Int32
	c := New("http://127.0.0.1:0", store, WithLogoutHook(func() { logouts.Add(1) }))
	return c, &logouts
}

func TestExpiredSessionWinsOverBadPayload(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Client) error
	}{
		{"unencodable body", func(c *Client) error {
			_, err := c.Request(context.Background(), "/api/skills", RequestOptions{Method: http.MethodPost, Body: make(chan int)})
			return err
		}},
		{"unreadable upload", func(c *Client) error {
			form := NewForm().AddFile("file", "cv.pdf", failingReader{})
			_, err := c.Upload(context.Background(), "/api/resume/upload", form)
			return err
		}},
		{"nil upload form", func(c *Client) error {
			_, err := c.Upload(context.Background(), "/api/resume/upload", nil)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, logouts := expiredClient(t)
			if err := tt.call(c); !errors.Is(err, ErrSessionExpired) {
				t.Fatalf("error = %v, want ErrSessionExpired", err)
			}
			if logouts.Load() != 1 {
				t.Errorf("logout hook called %d times, want 1", logouts.Load())
			}
			assertCleared(t, c)
		})
	}
}

func TestClearDuringRequestKeepsInFlightCredentials(t *testing.T) {
	var c *Client
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := c.Session().Clear(); err != nil {
			t.Errorf("Clear() error: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"name":"Go","category":"Backend"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c, logouts := newTestClient(t, srv.URL, "tok")
	res, err := c.Request(context.Background(), "/api/skills/1", RequestOptions{})
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok")
	}
	var skill domain.Skill
	if err := res.Decode(&skill); err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if skill.Name != "Go" {
		t.Errorf("skill.Name = %q, want Go", skill.Name)
	}
	if logouts.Load() != 0 {
		t.Errorf("logout hook called %d times, want 0", logouts.Load())
	}
	assertCleared(t, c)
}

func TestSetLogoutHookWhileLoggingOut(t *testing.T) {
	c, _ := newTestClient(t, "http://127.0.0.1:0", "tok")
	var calls atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.SetLogoutHook(func() { calls.Add(1) })
		}()
		go func() {
			defer wg.Done()
			c.Logout()
		}()
	}
	wg.Wait()

	c.SetLogoutHook(nil)
	before := calls.Load()
	c.Logout()
	if calls.Load() != before {
		t.Errorf("cleared hook still ran: %d calls, want %d", calls.Load(), before)
	}
}
