// Package media uploads header images to an external host and hands back
// the public URL. Nothing else about the host is visible to callers.
package media

import (
	"context"
	"errors"
	"io"
)

// Uploader stores one file and returns the URL it is served from.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}

var ErrNoURL = errors.New("media: upload response has no url")
