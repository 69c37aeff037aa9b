package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"SmartDocs/internal/cli/auth"
)

// setTempCfg points the config directory at a temp dir.
func setTempCfg(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return dir
}

func TestPostJSON_SendsToken_And_ParsesBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c := r.Header.Get("Cookie"); !strings.Contains(c, "auth_token=tok123") {
			t.Fatalf("Cookie header missing token, got: %q", c)
		}
		var m map[string]any
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			t.Fatalf("bad json: %v", err)
		}
		if m["x"] != float64(1) { // JSON number decodes as float64
			t.Fatalf("unexpected payload: %#v", m)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	resp, body, err := PostJSON(context.Background(), ts.URL+"/api", map[string]any{"x": 1}, "tok123")
	if err != nil {
		t.Fatalf("PostJSON err: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	if strings.TrimSpace(string(body)) != `{"ok":true}` {
		t.Fatalf("body: %s", string(body))
	}
}

func TestPostJSON_NoToken_NoCookieHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c := r.Header.Get("Cookie"); c != "" {
			t.Fatalf("Cookie must be empty when token not provided, got: %q", c)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	if _, _, err := PostJSON(context.Background(), ts.URL, map[string]any{"x": 1}, ""); err != nil {
		t.Fatalf("PostJSON err: %v", err)
	}
}

func TestPostJSON_MarshalAndRequestErrors(t *testing.T) {
	// a chan in the payload fails json.Marshal
	if _, _, err := PostJSON(context.Background(), "http://example.invalid", map[string]any{"c": make(chan int)}, ""); err == nil {
		t.Fatalf("expected marshal error")
	}
	// invalid URL fails request construction
	if _, _, err := PostJSON(context.Background(), "http://[::1", map[string]any{"a": 1}, ""); err == nil {
		t.Fatalf("expected new request error for invalid URL")
	}
	// unreachable address
	if _, _, err := PostJSON(context.Background(), "http://127.0.0.1:1", map[string]any{"a": 1}, ""); err == nil {
		t.Fatalf("expected network error for unreachable URL")
	}
}

func TestGetJSONAndDelete_PassToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Cookie"), "auth_token=tok") {
			t.Fatalf("missing auth cookie on %s", r.Method)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	if _, _, err := GetJSON(context.Background(), ts.URL, "tok"); err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if _, _, err := Delete(context.Background(), ts.URL, "tok"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestDownload_LeavesBodyOpen(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("stream me"))
	}))
	defer ts.Close()

	resp, err := Download(context.Background(), ts.URL, "")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil || string(data) != "stream me" {
		t.Fatalf("body: %q %v", string(data), err)
	}
}

func TestPostFile_MultipartFieldsAndRepeats(t *testing.T) {
	src := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(src, []byte("file body"), 0o600); err != nil {
		t.Fatalf("write src: %v", err)
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data;") {
			t.Fatalf("not multipart: %s", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.FormValue("title") != "T" {
			t.Fatalf("title: %q", r.FormValue("title"))
		}
		// empty values are skipped entirely
		if _, ok := r.MultipartForm.Value["description"]; ok {
			t.Fatalf("empty field must be omitted")
		}
		if roles := r.MultipartForm.Value["access_roles"]; len(roles) != 2 {
			t.Fatalf("access_roles: %v", roles)
		}
		f, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("file part: %v", err)
		}
		defer f.Close()
		if header.Filename != "doc.txt" {
			t.Fatalf("filename: %s", header.Filename)
		}
		data, _ := io.ReadAll(f)
		if string(data) != "file body" {
			t.Fatalf("file content: %q", string(data))
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))
	defer ts.Close()

	fields := map[string][]string{
		"title":        {"T"},
		"description":  {""},
		"access_roles": {"HR Executive", "Executive"},
	}
	resp, _, err := PostFile(context.Background(), ts.URL, src, fields, "tok")
	if err != nil {
		t.Fatalf("PostFile: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status: %d", resp.StatusCode)
	}
}

func TestPostFile_MissingLocalFile(t *testing.T) {
	_, _, err := PostFile(context.Background(), "http://example.invalid", filepath.Join(t.TempDir(), "nope"), nil, "")
	if err == nil {
		t.Fatalf("expected error for missing local file")
	}
}

func TestPersistAuthFromResponse(t *testing.T) {
	setTempCfg(t)

	t.Run("saves the auth cookie", func(t *testing.T) {
		resp := &http.Response{Header: http.Header{}}
		resp.Header.Add("Set-Cookie", (&http.Cookie{Name: "auth_token", Value: "tok-abc"}).String())
		if err := PersistAuthFromResponse(resp); err != nil {
			t.Fatalf("persist: %v", err)
		}
		tok, err := auth.LoadToken()
		if err != nil || tok != "tok-abc" {
			t.Fatalf("token not saved, got %q err=%v", tok, err)
		}
	})

	t.Run("auth_token as a later cookie", func(t *testing.T) {
		resp := &http.Response{Header: http.Header{}}
		resp.Header.Add("Set-Cookie", (&http.Cookie{Name: "other", Value: "abc"}).String())
		resp.Header.Add("Set-Cookie", (&http.Cookie{Name: "auth_token", Value: "tok-2"}).String())
		if err := PersistAuthFromResponse(resp); err != nil {
			t.Fatalf("persist second cookie: %v", err)
		}
	})

	t.Run("no cookie", func(t *testing.T) {
		resp := &http.Response{Header: http.Header{}}
		if err := PersistAuthFromResponse(resp); err == nil {
			t.Fatalf("expected error when no auth cookie")
		}
	})

	t.Run("empty value", func(t *testing.T) {
		resp := &http.Response{Header: http.Header{}}
		resp.Header.Add("Set-Cookie", (&http.Cookie{Name: "auth_token", Value: ""}).String())
		if err := PersistAuthFromResponse(resp); err == nil {
			t.Fatalf("expected error for empty auth_token cookie value")
		}
	})
}
