package browser

import (
	"strings"
	"testing"
)

func TestOpenRejectsNonWebURLs(t *testing.T) {
	called := false
	orig := start
	start = func(string, ...string) error { called = true; return nil }
	t.Cleanup(func() { start = orig })

	for _, u := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "localhost:8000", "https://"} {
		if err := Open(u); err == nil {
			t.Errorf("Open(%q) = nil, want error", u)
		}
	}
	if called {
		t.Error("opener ran for a rejected URL")
	}
}

func TestOpenRunsOpener(t *testing.T) {
	var got []string
	orig := start
	start = func(name string, args ...string) error {
		got = append([]string{name}, args...)
		return nil
	}
	t.Cleanup(func() { start = orig })

	if err := Open("http://localhost:8000/api/resume/download/cv"); err != nil {
		if strings.Contains(err.Error(), "unsupported OS") {
			t.Skip(err)
		}
		t.Fatalf("Open() error: %v", err)
	}
	if len(got) == 0 || got[len(got)-1] != "http://localhost:8000/api/resume/download/cv" {
		t.Errorf("opener args = %v", got)
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantErr  bool
	}{
		{"darwin", "open", false},
		{"linux", "xdg-open", false},
		{"windows", "rundll32", false},
		{"plan9", "", true},
	}
	for _, tt := range tests {
		name, args, err := command(tt.goos, "https://tunji.dev")
		if (err != nil) != tt.wantErr {
			t.Errorf("command(%q) error = %v, wantErr %v", tt.goos, err, tt.wantErr)
			continue
		}
		if name != tt.wantName {
			t.Errorf("command(%q) = %q, want %q", tt.goos, name, tt.wantName)
		}
		if !tt.wantErr && args[len(args)-1] != "https://tunji.dev" {
			t.Errorf("command(%q) args = %v", tt.goos, args)
		}
	}
}
