package button

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingPresser struct{ n int }

func (c *countingPresser) Press() (int, bool) {
	c.n++
	return c.n, true
}

func TestOpen_MissingChipIsUnavailable(t *testing.T) {
	p := &countingPresser{}
	w, err := Open(Config{Chip: "gpiochip-does-not-exist", Pin: 17, Debounce: 20 * time.Millisecond}, p, zerolog.Nop())
	if err == nil {
		_ = w.Close()
		t.Fatal("Open should fail for a missing chip")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err %v, want ErrUnavailable", err)
	}
	if p.n != 0 {
		t.Errorf("presser called %d times, want 0", p.n)
	}
}
