// Package button wires the physical counter button to the game.
package button

import (
	"errors"
	"time"
)

// ErrUnavailable means this build or host has no GPIO support.
var ErrUnavailable = errors.New("gpio unavailable")

// Presser receives one call per accepted button press.
type Presser interface {
	Press() (int, bool)
}

// Config selects the GPIO line and its debounce period.
type Config struct {
	Chip     string
	Pin      int
	Debounce time.Duration
}
