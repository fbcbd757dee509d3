package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"dashboard/domain"
)

func writeSettings(t *testing.T, s Settings) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := saveSettings(path, s); err != nil {
		t.Fatalf("saveSettings: %v", err)
	}
	return path
}

func run(t *testing.T, settingsPath string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)
	root.SetArgs(append([]string{"--config", settingsPath}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestLoadSettingsMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("DASHCTL_SERVER", "")
	s, err := loadSettings(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Server != "http://localhost:8080" || s.Sync != "local" || s.Upload.Kind != "form" {
		t.Fatalf("got %+v", s)
	}
}

func TestLoadSettingsFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
cache_dir = "/tmp/dash"
sync = "write-through"

[upload]
kind = "s3"
bucket = "media"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DASHCTL_SERVER", "http://dash.internal")

	s, err := loadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.CacheDir != "/tmp/dash" || s.Sync != "write-through" {
		t.Fatalf("got %+v", s)
	}
	if s.Upload.Kind != "s3" || s.Upload.Bucket != "media" || s.Upload.Region != "us-east-1" {
		t.Fatalf("upload = %+v", s.Upload)
	}
	if s.Server != "http://dash.internal" {
		t.Fatalf("server = %q", s.Server)
	}
}

func TestLoadSettingsRejectsBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("sync = "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadSettings(path); err == nil {
		t.Fatal("expected error")
	}
}

func TestFooterEditIsCachedAndShown(t *testing.T) {
	t.Setenv("DASHCTL_SERVER", "")
	path := writeSettings(t, Settings{CacheDir: t.TempDir(), Sync: "local"})

	if _, _, err := run(t, path, "footer", "email", "me@site.dev"); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, path, "show", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var cfg domain.Configuration
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	if cfg.Footer.Email != "me@site.dev" || cfg.Footer.Phone != domain.Default().Footer.Phone {
		t.Fatalf("footer = %+v", cfg.Footer)
	}
}

func TestShowPlainText(t *testing.T) {
	path := writeSettings(t, Settings{CacheDir: t.TempDir()})
	out, _, err := run(t, path, "show")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Header", "Welcome to My Dashboard", "[0]", "Footer"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("output contains ANSI escapes with NO_COLOR set")
	}
}

func TestLinkCommands(t *testing.T) {
	path := writeSettings(t, Settings{CacheDir: t.TempDir()})

	if _, _, err := run(t, path, "link", "add", "Blog", "/blog"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, path, "link", "set", "0", "label", "Start"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, path, "link", "rm", "1"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, path, "link", "set", "42", "label", "x"); err == nil {
		t.Fatal("expected out of range error")
	}
	if _, _, err := run(t, path, "link", "set", "zero", "label", "x"); err == nil {
		t.Fatal("expected parse error")
	}

	out, _, err := run(t, path, "show", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var cfg domain.Configuration
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatal(err)
	}
	links := cfg.Navbar.Links
	if len(links) != 3 || links[0].Label != "Start" || links[2].Label != "Blog" {
		t.Fatalf("links = %+v", links)
	}
}

func TestHeaderNeedsAFlag(t *testing.T) {
	path := writeSettings(t, Settings{CacheDir: t.TempDir()})
	if _, _, err := run(t, path, "header"); err == nil {
		t.Fatal("expected error")
	}
}

type fakeServer struct {
	mu    sync.Mutex
	types []string
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.types = append(f.types, req.Type)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.Component{ID: "1", Type: req.Type, Data: req.Data})
	default:
		_, _ = io.WriteString(w, `[{"id":"1","type":"header","data":{"title":"Remote"}}]`)
	}
}

func TestPushPullAndComponents(t *testing.T) {
	remote := &fakeServer{}
	srv := httptest.NewServer(remote)
	defer srv.Close()
	t.Setenv("DASHCTL_SERVER", "")
	path := writeSettings(t, Settings{CacheDir: t.TempDir(), Server: srv.URL})

	if _, _, err := run(t, path, "push"); err != nil {
		t.Fatal(err)
	}
	if len(remote.types) != 3 {
		t.Fatalf("pushed %v", remote.types)
	}

	out, _, err := run(t, path, "pull", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"Remote"`) {
		t.Fatalf("pull output: %s", out)
	}

	out, _, err = run(t, path, "components")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "header") || !strings.Contains(out, `{"title":"Remote"}`) {
		t.Fatalf("components output: %s", out)
	}
}

func TestWriteThroughFailureIsAWarning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"message":"down"}`)
	}))
	defer srv.Close()
	t.Setenv("DASHCTL_SERVER", "")
	path := writeSettings(t, Settings{CacheDir: t.TempDir(), Server: srv.URL, Sync: "write-through"})

	_, stderr, err := run(t, path, "footer", "phone", "555")
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if !strings.Contains(stderr, "server not updated") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestUploadSetsHeaderImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"secure_url":"https://cdn.example.com/logo.png"}`)
	}))
	defer srv.Close()

	img := filepath.Join(t.TempDir(), "logo.png")
	if err := os.WriteFile(img, []byte("png"), 0o600); err != nil {
		t.Fatal(err)
	}
	path := writeSettings(t, Settings{
		CacheDir: t.TempDir(),
		Upload:   UploadSettings{Kind: "form", Endpoint: srv.URL, Preset: "dash"},
	})

	out, _, err := run(t, path, "upload", img, "--json")
	if err != nil {
		t.Fatal(err)
	}
	var cfg domain.Configuration
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Header.ImageURL != "https://cdn.example.com/logo.png" {
		t.Fatalf("image = %q", cfg.Header.ImageURL)
	}
}

func TestUploaderSelection(t *testing.T) {
	if _, err := (UploadSettings{Kind: "form"}).uploader(t.Context()); err == nil {
		t.Error("form without endpoint accepted")
	}
	if _, err := (UploadSettings{Kind: "s3"}).uploader(t.Context()); err == nil {
		t.Error("s3 without bucket accepted")
	}
	if _, err := (UploadSettings{Kind: "ftp"}).uploader(t.Context()); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestInitWritesSettings(t *testing.T) {
	t.Setenv("DASHCTL_SERVER", "")
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if _, _, err := run(t, path, "init", "--server", "http://x"); err != nil {
		t.Fatal(err)
	}
	s, err := loadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Server != "http://x" {
		t.Fatalf("server = %q", s.Server)
	}
	if _, _, err := run(t, path, "init"); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
}

func TestPreviewMarkdown(t *testing.T) {
	cfg := domain.Default()
	cfg.Footer.Address = "1 Main St\nSpringfield"
	md := previewMarkdown(cfg)
	for _, want := range []string{"# Welcome to My Dashboard", "- [About](/about)", "1 Main St  \nSpringfield"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestPreviewCommand(t *testing.T) {
	path := writeSettings(t, Settings{CacheDir: t.TempDir()})
	if _, _, err := run(t, path, "header", "--title", "Terminal Site"); err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, path, "preview")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Terminal Site") {
		t.Fatalf("preview output:\n%s", out)
	}
}
