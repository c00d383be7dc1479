//go:build !linux

package button

import "github.com/rs/zerolog"

// Watcher is never created on this platform.
type Watcher struct{}

// Open always fails; GPIO character devices are Linux-only.
func Open(Config, Presser, zerolog.Logger) (*Watcher, error) {
	return nil, ErrUnavailable
}

func (w *Watcher) Close() error { return nil }
