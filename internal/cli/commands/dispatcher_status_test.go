package commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"SmartDocs/internal/cli/auth"
	"SmartDocs/internal/config"
)

func TestDispatch_UnknownAndHelp(t *testing.T) {
	withTempConfig(t)
	buf := captureOut(t)
	cfg := &config.Config{ServerURL: "http://localhost:0"}

	if code := Dispatch(context.Background(), cfg, []string{"no-such-cmd"}); code != 2 {
		t.Fatalf("unknown command: expected exit 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "Unknown command: no-such-cmd") {
		t.Fatalf("expected unknown-command message, got: %s", buf.String())
	}

	buf.Reset()
	if code := Dispatch(context.Background(), cfg, []string{"help"}); code != 0 {
		t.Fatalf("help: expected exit 0, got %d", code)
	}
	out := buf.String()
	for _, name := range []string{"login", "register", "list", "upload", "get", "rm", "grant", "status"} {
		if !strings.Contains(out, name) {
			t.Fatalf("help output missing %q:\n%s", name, out)
		}
	}

	buf.Reset()
	if code := Dispatch(context.Background(), cfg, []string{"help", "grant"}); code != 0 {
		t.Fatalf("help grant: expected exit 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "grant <document-id>") {
		t.Fatalf("expected grant usage, got: %s", buf.String())
	}
}

func TestDispatch_UsageExitCode(t *testing.T) {
	withTempConfig(t)
	buf := captureOut(t)
	cfg := &config.Config{ServerURL: "http://localhost:0"}

	// rm with no args returns ErrUsage, dispatcher prints usage and exits 2
	if code := Dispatch(context.Background(), cfg, []string{"rm"}); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "Usage: rm <document-id>") {
		t.Fatalf("expected usage line, got: %s", buf.String())
	}
}

func TestStatus_Run(t *testing.T) {
	withTempConfig(t)
	buf := captureOut(t)

	t.Run("logged in", func(t *testing.T) {
		_ = auth.SaveToken("tok-1")
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie("auth_token"); err != nil || c.Value != "tok-1" {
				t.Fatalf("expected auth cookie on request")
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":7,"username":"carol","full_name":"Carol C","role":"Executive"}`))
		}))
		defer ts.Close()

		buf.Reset()
		if err := (statusCmd{}).Run(context.Background(), &config.Config{ServerURL: ts.URL}, nil); err != nil {
			t.Fatalf("status failed: %v", err)
		}
		if got := buf.String(); !strings.Contains(got, "carol") || !strings.Contains(got, "Executive") {
			t.Fatalf("unexpected status output: %s", got)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		}))
		defer ts.Close()

		buf.Reset()
		if err := (statusCmd{}).Run(context.Background(), &config.Config{ServerURL: ts.URL}, nil); err != nil {
			t.Fatalf("status must not error on 401: %v", err)
		}
		if !strings.Contains(buf.String(), "Not logged in") {
			t.Fatalf("expected not-logged-in message, got: %s", buf.String())
		}
	})

	t.Run("server unreachable falls back to last login", func(t *testing.T) {
		if err := auth.SaveLastLogin("carol"); err != nil {
			t.Fatalf("saving login: %v", err)
		}
		buf.Reset()
		cfg := &config.Config{ServerURL: "http://127.0.0.1:1"}
		if err := (statusCmd{}).Run(context.Background(), cfg, nil); err != nil {
			t.Fatalf("status must fall back, got: %v", err)
		}
		if got := buf.String(); !strings.Contains(got, "carol") {
			t.Fatalf("expected last login in output, got: %s", got)
		}
	})

	t.Run("server unreachable without a stored login errors", func(t *testing.T) {
		withTempConfig(t) // fresh config dir, no last_login
		cfg := &config.Config{ServerURL: "http://127.0.0.1:1"}
		if err := (statusCmd{}).Run(context.Background(), cfg, nil); err == nil {
			t.Fatalf("expected network error without a fallback login")
		}
	})

	t.Run("extra args", func(t *testing.T) {
		if err := (statusCmd{}).Run(context.Background(), &config.Config{}, []string{"x"}); err != ErrUsage {
			t.Fatalf("expected ErrUsage, got %v", err)
		}
	})
}
