// Package localcache keeps the last known dashboard configuration in a
// single durable slot on disk.
package localcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"dashboard/domain"

	"github.com/labstack/gommon/log"
)

// DefaultKey names the slot holding the serialized configuration.
const DefaultKey = "dashboardData"

// Cache is the durable copy of a Configuration.
type Cache interface {
	Load() domain.Configuration
	Save(cfg domain.Configuration) error
}

// FileCache stores the configuration as JSON in <dir>/<key>.json.
type FileCache struct {
	dir    string
	key    string
	logger *log.Logger
}

type Option func(*FileCache)

func WithKey(key string) Option {
	return func(c *FileCache) { c.key = key }
}

func WithLogger(l *log.Logger) Option {
	return func(c *FileCache) { c.logger = l }
}

func New(dir string, opts ...Option) *FileCache {
	c := &FileCache{
		dir:    dir,
		key:    DefaultKey,
		logger: log.New("localcache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Path returns the file backing the slot.
func (c *FileCache) Path() string {
	return filepath.Join(c.dir, c.key+".json")
}

// Load returns the stored configuration. A missing or unreadable slot
// yields the defaults; sections missing from the stored value are filled
// from the defaults.
func (c *FileCache) Load() domain.Configuration {
	data, err := os.ReadFile(c.Path())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Errorf("error loading saved data: %v", err)
		}
		return domain.Default()
	}

	var p domain.Patch
	if err := json.Unmarshal(data, &p); err != nil {
		c.logger.Errorf("error loading saved data: %v", err)
		return domain.Default()
	}
	return domain.Merge(domain.Default(), p)
}

// Save replaces the stored configuration. The write goes through a temp
// file and a rename so a failed save never leaves a truncated slot.
func (c *FileCache) Save(cfg domain.Configuration) error {
	// A null link list would read back as the default links.
	if cfg.Navbar.Links == nil {
		cfg.Navbar.Links = []domain.Link{}
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, c.key+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), c.Path()); err != nil {
		return fmt.Errorf("replacing %s: %w", c.Path(), err)
	}
	return nil
}

// Clear removes the slot so the next Load returns the defaults.
func (c *FileCache) Clear() error {
	if err := os.Remove(c.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
