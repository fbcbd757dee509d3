package localcache

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"dashboard/domain"

	"github.com/labstack/gommon/log"
)

func quietLogger(buf *bytes.Buffer) *log.Logger {
	l := log.New("test")
	l.SetOutput(buf)
	return l
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	c := New(t.TempDir())
	if got := c.Load(); !reflect.DeepEqual(got, domain.Default()) {
		t.Fatalf("got %+v, want defaults", got)
	}
}

func TestLoadCorruptReturnsDefaultsAndLogs(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	c := New(dir, WithLogger(quietLogger(&buf)))
	if err := os.WriteFile(c.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if got := c.Load(); !reflect.DeepEqual(got, domain.Default()) {
		t.Fatalf("got %+v, want defaults", got)
	}
	if !strings.Contains(buf.String(), "error loading saved data") {
		t.Fatalf("expected parse failure to be logged, got %q", buf.String())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := New(t.TempDir())
	cfg := domain.Configuration{
		Header: domain.Header{Title: "My Site", ImageURL: "https://img/x.png"},
		Navbar: domain.Navbar{Links: []domain.Link{{Label: "Docs", URL: "/docs"}}},
		Footer: domain.Footer{Email: "a@b.com", Phone: "", Address: "line 1\nline 2"},
	}
	if err := c.Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := c.Load(); !reflect.DeepEqual(got, cfg) {
		t.Fatalf("got %+v, want %+v", got, cfg)
	}
}

func TestSaveEmptyLinksRoundTrip(t *testing.T) {
	c := New(t.TempDir())
	cfg := domain.Default()
	cfg.Navbar.Links = []domain.Link{}
	if err := c.Save(cfg); err != nil {
		t.Fatal(err)
	}
	if got := c.Load(); len(got.Navbar.Links) != 0 {
		t.Fatalf("links = %+v, want empty", got.Navbar.Links)
	}
}

func TestSaveNilLinksLoadsEmpty(t *testing.T) {
	c := New(t.TempDir())
	cfg := domain.Default()
	cfg.Navbar.Links = nil
	if err := c.Save(cfg); err != nil {
		t.Fatal(err)
	}
	if got := c.Load(); len(got.Navbar.Links) != 0 {
		t.Fatalf("links = %+v, want none", got.Navbar.Links)
	}
}

func TestLoadPartialFillsSections(t *testing.T) {
	c := New(t.TempDir())
	if err := os.WriteFile(c.Path(), []byte(`{"footer":{"email":"x@y.z"}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	got := c.Load()
	want := domain.Default()
	want.Footer.Email = "x@y.z"
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSaveFailureIsReturned(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	c := New(filepath.Join(blocker, "sub"))
	if err := c.Save(domain.Default()); err == nil {
		t.Fatal("expected error when cache dir cannot be created")
	}
}

func TestCustomKeyAndClear(t *testing.T) {
	dir := t.TempDir()
	c := New(dir, WithKey("other"))
	if filepath.Base(c.Path()) != "other.json" {
		t.Fatalf("path = %s", c.Path())
	}
	cfg := domain.Default()
	cfg.Header.Title = "kept"
	if err := c.Save(cfg); err != nil {
		t.Fatal(err)
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if got := c.Load(); got.Header.Title != domain.Default().Header.Title {
		t.Fatalf("title after clear = %q", got.Header.Title)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("clearing twice: %v", err)
	}
}
