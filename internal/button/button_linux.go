//go:build linux

package button

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/warthog618/go-gpiocdev"
)

// Watcher holds the requested GPIO line.
type Watcher struct {
	line *gpiocdev.Line
}

// Open requests the button line as a pulled-up input and calls p.Press on
// every falling edge. Debouncing is done by the kernel.
func Open(cfg Config, p Presser, log zerolog.Logger) (*Watcher, error) {
	handler := func(evt gpiocdev.LineEvent) {
		if evt.Type != gpiocdev.LineEventFallingEdge {
			return
		}
		if count, ok := p.Press(); ok {
			log.Info().Int("count", count).Msg("button press")
		}
	}
	line, err := gpiocdev.RequestLine(cfg.Chip, cfg.Pin,
		gpiocdev.WithConsumer("agilegame"),
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithDebounce(cfg.Debounce),
		gpiocdev.WithEventHandler(handler),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: request %s line %d: %v", ErrUnavailable, cfg.Chip, cfg.Pin, err)
	}
	return &Watcher{line: line}, nil
}

// Close releases the line.
func (w *Watcher) Close() error {
	return w.line.Close()
}
