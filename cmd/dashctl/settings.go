package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"dashboard/media"

	"github.com/BurntSushi/toml"
)

// Settings is the dashctl configuration file.
type Settings struct {
	CacheDir string         `toml:"cache_dir"`
	Server   string         `toml:"server"`
	Sync     string         `toml:"sync"`
	Upload   UploadSettings `toml:"upload"`
}

// UploadSettings selects the media host for header images.
type UploadSettings struct {
	Kind       string `toml:"kind"` // "form" or "s3"
	Endpoint   string `toml:"endpoint,omitempty"`
	Preset     string `toml:"preset,omitempty"`
	Bucket     string `toml:"bucket,omitempty"`
	Prefix     string `toml:"prefix,omitempty"`
	Region     string `toml:"region,omitempty"`
	S3Endpoint string `toml:"s3_endpoint,omitempty"`
	PublicURL  string `toml:"public_url,omitempty"`
}

func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dashctl"
	}
	return filepath.Join(home, ".local", "state", "dashctl")
}

func defaultSettingsPath() string {
	return filepath.Join(stateDir(), "config.toml")
}

func defaultSettings() Settings {
	return Settings{
		CacheDir: stateDir(),
		Server:   "http://localhost:8080",
		Sync:     "local",
		Upload:   UploadSettings{Kind: "form", Region: "us-east-1"},
	}
}

// loadSettings reads path on top of the defaults. A missing file is not an
// error. DASHCTL_SERVER overrides the server URL.
func loadSettings(path string) (Settings, error) {
	s := defaultSettings()
	if _, err := toml.DecodeFile(path, &s); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if v := os.Getenv("DASHCTL_SERVER"); v != "" {
		s.Server = v
	}
	return s, nil
}

func saveSettings(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(s)
}

func (u UploadSettings) uploader(ctx context.Context) (media.Uploader, error) {
	switch u.Kind {
	case "", "form":
		if u.Endpoint == "" {
			return nil, errors.New("upload.endpoint is not configured")
		}
		return media.NewFormUploader(u.Endpoint, u.Preset), nil
	case "s3":
		if u.Bucket == "" {
			return nil, errors.New("upload.bucket is not configured")
		}
		return media.NewS3Uploader(ctx, u.Bucket, u.Prefix, u.Region, u.S3Endpoint, u.PublicURL)
	}
	return nil, fmt.Errorf("unknown upload kind %q", u.Kind)
}
