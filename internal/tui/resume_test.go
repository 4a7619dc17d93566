package tui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tunjipaul/folio/pkg/domain"
)

func strPtr(s string) *string { return &s }

func TestResumeView(t *testing.T) {
	m := newResumeModel(nil)
	m, _ = m.Update(resumeLoadedMsg{files: &domain.ResumeFiles{Resume: strPtr("resume.pdf")}})
	view := m.View()
	if !strings.Contains(view, "resume.pdf") || !strings.Contains(view, "not uploaded") {
		t.Errorf("expected one uploaded and one empty slot:\n%s", view)
	}
}

func TestResumeDeleteNeedsFile(t *testing.T) {
	m := newResumeModel(nil)
	m, _ = m.Update(resumeLoadedMsg{files: &domain.ResumeFiles{Resume: strPtr("resume.pdf")}})

	m, _ = m.Update(keyRunes("j")) // cv: empty
	m, _ = m.Update(keyRunes("x"))
	if m.mode != resumeNormal {
		t.Errorf("x on an empty slot: mode = %d, want normal", m.mode)
	}

	m, _ = m.Update(keyRunes("k"))
	m, _ = m.Update(keyRunes("x"))
	if m.mode != resumeConfirm || !m.editing() {
		t.Fatalf("mode = %d, want confirm", m.mode)
	}
	m, cmd := m.Update(keyRunes("y"))
	if cmd == nil || !m.busy {
		t.Error("y should delete")
	}
}

func TestResumeUploadPathEntry(t *testing.T) {
	m := newResumeModel(nil)
	m, _ = m.Update(keyRunes("u"))
	if m.mode != resumePath {
		t.Fatalf("mode = %d, want path", m.mode)
	}
	m, _ = m.Update(keyRunes("~/cv.pdf"))
	if !strings.Contains(m.View(), "~/cv.pdf") {
		t.Errorf("path not echoed:\n%s", m.View())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != resumeNormal {
		t.Errorf("esc: mode = %d", m.mode)
	}

	// Empty path does nothing.
	m, _ = m.Update(keyRunes("u"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty path should not upload")
	}
}

func TestResumeUploadThroughClient(t *testing.T) {
	var gotType, gotName string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/resume/upload":
			gotType = r.FormValue("type")
			if _, hdr, err := r.FormFile("file"); err == nil {
				gotName = hdr.Filename
			}
			io.WriteString(w, `{"message":"CV uploaded successfully","filename":"cv.pdf","type":"cv"}`) //nolint:errcheck
		case "/api/resume/current":
			io.WriteString(w, `{"resume":null,"cv":"cv.pdf"}`) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	pdf := filepath.Join(t.TempDir(), "cv.pdf")
	if err := os.WriteFile(pdf, []byte("%PDF-1.7"), 0o600); err != nil {
		t.Fatal(err)
	}

	m := newResumeModel(newAuthedClient(t, srv.URL))
	m, _ = m.Update(keyRunes("j"))
	m, _ = m.Update(keyRunes("u"))
	m, _ = m.Update(keyRunes(pdf))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should upload")
	}

	done, ok := cmd().(resumeDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("upload result = %+v", done)
	}
	if gotType != "cv" || gotName != "cv.pdf" {
		t.Errorf("form type=%q file=%q", gotType, gotName)
	}

	m, cmd = m.Update(done)
	if m.status != "CV uploaded successfully" || cmd == nil {
		t.Errorf("status=%q reload=%v", m.status, cmd != nil)
	}
	m, _ = m.Update(cmd())
	if !m.files.Has(domain.DocCV) {
		t.Error("reload should show the uploaded cv")
	}
}

func TestResumeUploadRejectsNonPDF(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { hits++ }))
	defer srv.Close()

	doc := filepath.Join(t.TempDir(), "cv.docx")
	if err := os.WriteFile(doc, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	m := newResumeModel(newAuthedClient(t, srv.URL))
	done := m.upload(domain.DocCV, doc)().(resumeDoneMsg)
	if done.err == nil || !strings.Contains(done.err.Error(), "only PDF files are allowed") {
		t.Errorf("err = %v", done.err)
	}
	if hits != 0 {
		t.Errorf("server hit %d times, want 0", hits)
	}
}

func TestResumeSaveThroughClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="Tunji_Resume.pdf"`)
		io.WriteString(w, "%PDF") //nolint:errcheck
	}))
	defer srv.Close()

	m := newResumeModel(newAuthedClient(t, srv.URL))
	m.saveDir = t.TempDir()
	m.files = domain.ResumeFiles{Resume: strPtr("resume.pdf")}
	_, cmd := m.Update(keyRunes("s"))
	if cmd == nil {
		t.Fatal("s should download")
	}
	done := cmd().(resumeDoneMsg)
	if done.err != nil {
		t.Fatalf("save error: %v", done.err)
	}
	if _, err := os.Stat(filepath.Join(m.saveDir, "Tunji_Resume.pdf")); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}
