package dashboard

import (
	"context"
	"fmt"

	"dashboard/domain"
)

// Syncer pushes and pulls the dashboard sections to and from the remote
// component store. *client.HTTPClient implements it.
type Syncer interface {
	PushConfiguration(ctx context.Context, cfg domain.Configuration) error
	PullPatch(ctx context.Context) (domain.Patch, error)
}

// Policy decides when local edits reach the remote store.
type Policy string

const (
	// PolicyLocalOnly keeps edits in the local cache; Push must be called
	// explicitly.
	PolicyLocalOnly Policy = "local"
	// PolicyWriteThrough pushes every edit right after the local save.
	PolicyWriteThrough Policy = "write-through"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyLocalOnly:
		return PolicyLocalOnly, nil
	case PolicyWriteThrough:
		return PolicyWriteThrough, nil
	}
	return "", fmt.Errorf("unknown sync policy %q", s)
}

// Push sends the current configuration to r regardless of policy.
func (s *State) Push(ctx context.Context, r Syncer) error {
	cfg := s.Config()
	if err := r.PushConfiguration(ctx, cfg); err != nil {
		return fmt.Errorf("pushing dashboard: %w", err)
	}
	return nil
}

// Pull merges the sections stored remotely into the state. Sections the
// server does not have keep their local values.
func (s *State) Pull(ctx context.Context, r Syncer) error {
	p, err := r.PullPatch(ctx)
	if err != nil {
		return fmt.Errorf("pulling dashboard: %w", err)
	}
	s.Replace(p)
	return nil
}
