// Package dashboard holds the live, editable dashboard configuration.
//
// A State is created from a local cache, updated one section at a time and
// written through to the cache after every accepted change. Failures of the
// durable copy are logged and remembered but never returned: the in-memory
// configuration stays authoritative for the session.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"dashboard/domain"
	"dashboard/localcache"
	"dashboard/media"

	"github.com/labstack/gommon/log"
)

var (
	ErrLinkIndexOutOfRange = errors.New("navbar link index out of range")
	ErrUnknownField        = errors.New("unknown field")
)

// LinkField names an editable field of a navbar link.
type LinkField string

const (
	LinkLabel LinkField = "label"
	LinkURL   LinkField = "url"
)

// FooterField names an editable field of the footer.
type FooterField string

const (
	FooterEmail   FooterField = "email"
	FooterPhone   FooterField = "phone"
	FooterAddress FooterField = "address"
)

type State struct {
	mu     sync.Mutex
	cfg    domain.Configuration
	cache  localcache.Cache
	logger *log.Logger

	remote      Syncer
	policy      Policy
	syncTimeout time.Duration

	persistErr error
	syncErr    error
}

type Option func(*State)

func WithLogger(l *log.Logger) Option {
	return func(s *State) { s.logger = l }
}

// WithRemote attaches a remote store and the policy deciding when it is
// written to.
func WithRemote(r Syncer, p Policy) Option {
	return func(s *State) {
		s.remote = r
		s.policy = p
	}
}

func WithSyncTimeout(d time.Duration) Option {
	return func(s *State) { s.syncTimeout = d }
}

// New loads the initial configuration from cache.
func New(cache localcache.Cache, opts ...Option) *State {
	s := &State{
		cache:       cache,
		logger:      log.New("dashboard"),
		policy:      PolicyLocalOnly,
		syncTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg = domain.Merge(domain.Default(), cache.Load().AsPatch())
	return s
}

// Config returns a copy of the current configuration.
func (s *State) Config() domain.Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// PersistErr is the error of the most recent cache write, or nil.
func (s *State) PersistErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}

// SyncErr is the error of the most recent remote push, or nil.
func (s *State) SyncErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncErr
}

// UpdateHeader merges p into the header. It always succeeds.
func (s *State) UpdateHeader(p domain.HeaderPatch) {
	s.apply(func(domain.Configuration) (domain.Patch, error) {
		return domain.Patch{Header: &p}, nil
	})
}

// UpdateNavbarLink sets one field of the link at index. Indexes outside the
// current list are rejected; use AppendNavbarLink to grow it.
func (s *State) UpdateNavbarLink(index int, field LinkField, value string) error {
	return s.apply(func(cur domain.Configuration) (domain.Patch, error) {
		links := cur.Navbar.Links
		if index < 0 || index >= len(links) {
			return domain.Patch{}, fmt.Errorf("%w: %d (have %d links)", ErrLinkIndexOutOfRange, index, len(links))
		}
		switch field {
		case LinkLabel:
			links[index].Label = value
		case LinkURL:
			links[index].URL = value
		default:
			return domain.Patch{}, fmt.Errorf("%w: navbar link %q", ErrUnknownField, field)
		}
		return domain.Patch{Navbar: &domain.NavbarPatch{Links: links}}, nil
	})
}

func (s *State) AppendNavbarLink(l domain.Link) {
	s.apply(func(cur domain.Configuration) (domain.Patch, error) {
		links := append(cur.Navbar.Links, l)
		return domain.Patch{Navbar: &domain.NavbarPatch{Links: links}}, nil
	})
}

func (s *State) RemoveNavbarLink(index int) error {
	return s.apply(func(cur domain.Configuration) (domain.Patch, error) {
		links := cur.Navbar.Links
		if index < 0 || index >= len(links) {
			return domain.Patch{}, fmt.Errorf("%w: %d (have %d links)", ErrLinkIndexOutOfRange, index, len(links))
		}
		links = append(links[:index], links[index+1:]...)
		return domain.Patch{Navbar: &domain.NavbarPatch{Links: links}}, nil
	})
}

// UpdateFooter sets exactly one footer field.
func (s *State) UpdateFooter(field FooterField, value string) error {
	return s.apply(func(domain.Configuration) (domain.Patch, error) {
		var f domain.FooterPatch
		switch field {
		case FooterEmail:
			f.Email = &value
		case FooterPhone:
			f.Phone = &value
		case FooterAddress:
			f.Address = &value
		default:
			return domain.Patch{}, fmt.Errorf("%w: footer %q", ErrUnknownField, field)
		}
		return domain.Patch{Footer: &f}, nil
	})
}

// Replace applies an arbitrary patch, e.g. one pulled from the server.
func (s *State) Replace(p domain.Patch) {
	s.apply(func(domain.Configuration) (domain.Patch, error) { return p, nil })
}

// Reset discards every edit and returns to the defaults.
func (s *State) Reset() {
	s.Replace(domain.Default().AsPatch())
}

// UploadHeaderImage sends one file to the media host and points the header
// image at the returned URL. On failure the header keeps its old image.
func (s *State) UploadHeaderImage(ctx context.Context, up media.Uploader, name string, r io.Reader) error {
	url, err := up.Upload(ctx, name, r)
	if err != nil {
		s.logger.Errorf("upload error: %v", err)
		return fmt.Errorf("uploading header image: %w", err)
	}
	s.UpdateHeader(domain.HeaderPatch{ImageURL: &url})
	return nil
}

// apply computes a partial from a private copy of the current configuration
// and commits defaults ⊕ current ⊕ partial. A rejected partial leaves the
// state and the cache untouched. The cache write happens under the lock; a
// write-through push runs after it is released, on a copy of the result.
func (s *State) apply(build func(cur domain.Configuration) (domain.Patch, error)) error {
	s.mu.Lock()
	partial, err := build(s.cfg.Clone())
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.cfg = domain.Merge(domain.Default(), s.cfg.AsPatch(), partial)
	s.save()
	snapshot := s.cfg.Clone()
	s.mu.Unlock()

	s.sync(snapshot)
	return nil
}

func (s *State) save() {
	s.persistErr = s.cache.Save(s.cfg)
	if s.persistErr != nil {
		s.logger.Errorf("error saving dashboard data: %v", s.persistErr)
	}
}

func (s *State) sync(cfg domain.Configuration) {
	if s.remote == nil || s.policy != PolicyWriteThrough {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
	defer cancel()
	err := s.remote.PushConfiguration(ctx, cfg)
	if err != nil {
		s.logger.Errorf("error syncing dashboard data: %v", err)
	}

	s.mu.Lock()
	s.syncErr = err
	s.mu.Unlock()
}
